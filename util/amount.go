package util

import "fmt"

// Amount is a quantity of the chain's native unit, denominated in its
// smallest indivisible part (a "satoshi"-equivalent for this chain).
type Amount int64

const (
	// Coin is one whole coin unit expressed in Amount's base unit.
	Coin     Amount = 100000000
	Cent     Amount = Coin / 100
	MaxMoney Amount = 21000000 * Coin
)

// MoneyRange reports whether amt is within the representable supply range.
func MoneyRange(amt Amount) bool {
	return amt >= 0 && amt <= MaxMoney
}

func (amt Amount) String() string {
	return fmt.Sprintf("%d.%08d", int64(amt)/int64(Coin), int64(amt)%int64(Coin))
}
