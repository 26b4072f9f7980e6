package errcode

import "fmt"

// ViewErr enumerates the cache view's own invariant violations: the
// exclusive-modifier discipline (invariant M) and the name-history
// consistency checks SetName/DeleteName enforce.
type ViewErr int

const (
	ErrorModifierAlreadyLive ViewErr = ViewErrorBase + iota
	ErrorModifierAlreadyClosed
	ErrorReleaseWithNoModifier
	ErrorNameHistoryMismatch
	ErrorNameDoesNotExist
	ErrorDeleteNameWithHistory

	ErrorNotExistInViewMap
)

var viewErrorToString = map[ViewErr]string{
	ErrorModifierAlreadyLive:   "Modify called while another modifier is still live",
	ErrorModifierAlreadyClosed: "modifier closed twice",
	ErrorReleaseWithNoModifier: "release called with no live modifier",
	ErrorNameHistoryMismatch:   "undo does not match name history top",
	ErrorNameDoesNotExist:      "name does not currently exist",
	ErrorDeleteNameWithHistory: "DeleteName called with non-empty history",
}

func (e ViewErr) String() string {
	if s, ok := viewErrorToString[e]; ok {
		return s
	}
	return fmt.Sprintf("Unknown code (%d)", e)
}
