package errcode

import "fmt"

// StoreErr enumerates category-2 invariant violations in the backing
// store — corrupt on-disk records that should be structurally impossible
// given what BatchWrite itself ever writes.
type StoreErr int

const (
	ErrorCorruptCoinRecord StoreErr = StoreErrorBase + iota
	ErrorCorruptNameRecord
	ErrorCorruptNameHistory

	ErrorNotExistInStoreMap
)

var storeErrorToString = map[StoreErr]string{
	ErrorCorruptCoinRecord:  "coin record failed to decode",
	ErrorCorruptNameRecord:  "name record failed to decode",
	ErrorCorruptNameHistory: "name history record failed to decode",
}

func (e StoreErr) String() string {
	if s, ok := storeErrorToString[e]; ok {
		return s
	}
	return fmt.Sprintf("Unknown code (%d)", e)
}
