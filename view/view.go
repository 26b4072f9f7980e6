// Package view defines the abstract read/write surface the coin and name
// cache is built on (SPEC_FULL §4.2), and the two canonical implementations
// the spec calls for: a forwarding "backed" view and the cache view itself.
// Grounded on CCoinsView / CCoinsViewBacked / CCoinsViewCache in
// src/coins.cpp (original_source).
package view

import (
	"github.com/josephbisch/deb-namecoin-core/model/coin"
	"github.com/josephbisch/deb-namecoin-core/model/names"
	"github.com/josephbisch/deb-namecoin-core/util"
)

// Stats summarizes a View's contents, used for diagnostics (e.g. the
// cmd/namecached debug REPL's "stats" command).
type Stats struct {
	CoinCount int64
	NameCount int64
	TotalSize int64
}

// CoinDelta is the staged set of per-txid coin changes a child view hands
// to BatchWrite — the wire type for CCoinsMap.
type CoinDelta map[util.Hash]*Entry

// Entry pairs a coin record with its DIRTY/FRESH flags (SPEC_FULL §3).
type Entry struct {
	Coins *coin.Coins
	Dirty bool
	Fresh bool
}

// View is the 10-method read/write capability set every layer of the stack
// implements. The zero-value behavior (returning "not found"/false/empty)
// is provided by Base so implementations only need to override what they
// can actually answer.
type View interface {
	GetCoins(txid util.Hash) (*coin.Coins, bool)
	HaveCoins(txid util.Hash) bool
	GetBestBlock() util.Hash

	GetName(name string) (names.Data, bool)
	GetNameHistory(name string) (*names.History, bool)
	GetNamesForHeight(height int32) (map[string]bool, bool)
	IterateNames() names.Iterator

	BatchWrite(coins CoinDelta, bestBlock util.Hash, nameDelta *names.Cache) bool

	GetStats() (Stats, bool)
	ValidateNameDB() bool
}

// Base gives every method of View its default "nothing here" answer; embed
// it in a concrete implementation and override selectively.
type Base struct{}

func (Base) GetCoins(util.Hash) (*coin.Coins, bool)   { return nil, false }
func (Base) HaveCoins(util.Hash) bool                 { return false }
func (Base) GetBestBlock() util.Hash                  { return util.HashZero }
func (Base) GetName(string) (names.Data, bool)        { return names.Data{}, false }
func (Base) GetNameHistory(string) (*names.History, bool) {
	return nil, false
}
func (Base) GetNamesForHeight(int32) (map[string]bool, bool) { return nil, false }

// IterateNames has no meaningful empty iterator on a default implementation
// — the spec calls this fatal, since a view advertising no name index at
// all should never be asked to walk one.
func (Base) IterateNames() names.Iterator {
	panic("view: IterateNames called on a view with no name index")
}

func (Base) BatchWrite(CoinDelta, util.Hash, *names.Cache) bool { return false }
func (Base) GetStats() (Stats, bool)                            { return Stats{}, false }
func (Base) ValidateNameDB() bool                               { return false }
