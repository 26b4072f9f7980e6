package store

import (
	lru "github.com/hashicorp/golang-lru"

	"github.com/josephbisch/deb-namecoin-core/model/coin"
	"github.com/josephbisch/deb-namecoin-core/model/names"
	"github.com/josephbisch/deb-namecoin-core/util"
	"github.com/josephbisch/deb-namecoin-core/view"
)

// LRUFront is a bounded in-memory read accelerant sitting below the
// cache-view stack (SPEC_FULL §4.9), grounded on model/utxo/lrucache.go's
// CoinsLruCache. Unlike a CacheView it stages nothing: every write still
// goes straight to the wrapped backing store, and the LRU only remembers
// recently-read coin records to save a leveldb round trip.
type LRUFront struct {
	view.Base
	backing *LevelDBStore
	coins   *lru.Cache
}

// NewLRUFront wraps backing with an LRU of the given coin-record capacity.
func NewLRUFront(backing *LevelDBStore, capacity int) (*LRUFront, error) {
	c, err := lru.New(capacity)
	if err != nil {
		return nil, err
	}
	return &LRUFront{backing: backing, coins: c}, nil
}

func (f *LRUFront) GetCoins(txid util.Hash) (*coin.Coins, bool) {
	if cached, ok := f.coins.Get(txid); ok {
		return cached.(*coin.Coins).DeepCopy(), true
	}
	c, ok := f.backing.GetCoins(txid)
	if !ok {
		return nil, false
	}
	f.coins.Add(txid, c)
	return c.DeepCopy(), true
}

func (f *LRUFront) HaveCoins(txid util.Hash) bool {
	if _, ok := f.coins.Get(txid); ok {
		return true
	}
	return f.backing.HaveCoins(txid)
}

func (f *LRUFront) GetBestBlock() util.Hash { return f.backing.GetBestBlock() }

func (f *LRUFront) GetName(name string) (names.Data, bool) { return f.backing.GetName(name) }

func (f *LRUFront) GetNameHistory(name string) (*names.History, bool) {
	return f.backing.GetNameHistory(name)
}

func (f *LRUFront) GetNamesForHeight(height int32) (map[string]bool, bool) {
	return f.backing.GetNamesForHeight(height)
}

func (f *LRUFront) IterateNames() names.Iterator { return f.backing.IterateNames() }

// BatchWrite passes straight through to the backing store, then evicts
// every touched txid from the LRU so a later read doesn't serve a stale
// copy — the original CoinsLruCache instead updates entries in place, but
// this front never stages writes of its own, so dropping the entry and
// letting the next GetCoins repopulate it is simpler and just as correct.
func (f *LRUFront) BatchWrite(coins view.CoinDelta, bestBlock util.Hash, nameDelta *names.Cache) bool {
	touched := make([]util.Hash, 0, len(coins))
	for txid := range coins {
		touched = append(touched, txid)
	}
	ok := f.backing.BatchWrite(coins, bestBlock, nameDelta)
	for _, txid := range touched {
		f.coins.Remove(txid)
	}
	return ok
}

func (f *LRUFront) GetStats() (view.Stats, bool) { return f.backing.GetStats() }

func (f *LRUFront) ValidateNameDB() bool { return f.backing.ValidateNameDB() }
