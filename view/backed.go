package view

import (
	"github.com/josephbisch/deb-namecoin-core/model/coin"
	"github.com/josephbisch/deb-namecoin-core/model/names"
	"github.com/josephbisch/deb-namecoin-core/util"
)

// Backed is a thin forwarding view that holds a parent and delegates every
// method to it. It exists so higher layers can be re-pointed at a different
// backend (e.g. from the on-disk store to an in-memory test store) without
// being rewritten — CCoinsViewBacked in the original.
type Backed struct {
	base View
}

func NewBacked(base View) *Backed {
	return &Backed{base: base}
}

// SetBackend re-points this view at a different parent.
func (b *Backed) SetBackend(base View) {
	b.base = base
}

func (b *Backed) GetCoins(txid util.Hash) (*coin.Coins, bool) { return b.base.GetCoins(txid) }
func (b *Backed) HaveCoins(txid util.Hash) bool               { return b.base.HaveCoins(txid) }
func (b *Backed) GetBestBlock() util.Hash                     { return b.base.GetBestBlock() }
func (b *Backed) GetName(name string) (names.Data, bool)      { return b.base.GetName(name) }
func (b *Backed) GetNameHistory(name string) (*names.History, bool) {
	return b.base.GetNameHistory(name)
}
func (b *Backed) GetNamesForHeight(height int32) (map[string]bool, bool) {
	return b.base.GetNamesForHeight(height)
}
func (b *Backed) IterateNames() names.Iterator { return b.base.IterateNames() }
func (b *Backed) BatchWrite(coins CoinDelta, bestBlock util.Hash, nameDelta *names.Cache) bool {
	return b.base.BatchWrite(coins, bestBlock, nameDelta)
}
func (b *Backed) GetStats() (Stats, bool) { return b.base.GetStats() }
func (b *Backed) ValidateNameDB() bool    { return b.base.ValidateNameDB() }
