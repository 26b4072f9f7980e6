package view

import (
	"github.com/josephbisch/deb-namecoin-core/model/coin"
	"github.com/josephbisch/deb-namecoin-core/util"
)

// Modifier is the scoped exclusive-mutation token returned by
// CacheView.Modify (SPEC_FULL §4.5), grounded on CCoinsModifier. It is
// non-copyable by convention: callers must pass it by pointer and never
// retain two live handles for the same view. Close (or Drop, its alias)
// must run on every exit path — normal return or panic recovery — to
// release the view's single modifier slot and reconcile dynamicUsage;
// callers without a defer/finally should wrap acquisition in their own
// guard.
type Modifier struct {
	view     *CacheView
	txid     util.Hash
	preUsage int64
	closed   bool
}

// Coins dereferences the modifier to the mutable record. Valid until Close.
func (m *Modifier) Coins() *coin.Coins {
	return m.view.coins[m.txid].Coins
}

// Close releases the modifier: trims the record, reconciles dynamicUsage,
// and erases the entry if it ended up FRESH-and-pruned. Safe to call at
// most once; a second call panics, matching the single-owner contract.
func (m *Modifier) Close() {
	if m.closed {
		panic("view: Modifier closed twice")
	}
	m.closed = true
	m.view.release(m.txid, m.preUsage)
}

// Drop is an alias for Close, named to match the "drop a modifier"
// phrasing used throughout SPEC_FULL.
func (m *Modifier) Drop() {
	m.Close()
}
