package view

import (
	"fmt"

	"github.com/josephbisch/deb-namecoin-core/model/coin"
	"github.com/josephbisch/deb-namecoin-core/model/names"
	"github.com/josephbisch/deb-namecoin-core/model/txout"
	"github.com/josephbisch/deb-namecoin-core/util"
)

// CacheView is the in-memory, write-through layer above a backing View:
// SPEC_FULL §4.4, grounded directly on CCoinsViewCache in
// src/coins.cpp (original_source). Every coin lookup either answers from
// the coins map or delegates to the parent and remembers the answer; every
// name lookup only ever remembers *changes*, never clean reads (the
// "delta-only discipline" SPEC_FULL's open question resolves in favor of
// preserving).
type CacheView struct {
	base View

	coins        map[util.Hash]*Entry
	names        *names.Cache
	bestBlock    util.Hash
	dynamicUsage int64
	hasModifier  bool

	nameHistoryEnabled bool
}

// NewCacheView wraps base. nameHistoryEnabled controls whether SetName
// maintains history stacks (SPEC_FULL's per-instance replacement for the
// original's process-wide fNameHistory global).
func NewCacheView(base View, nameHistoryEnabled bool) *CacheView {
	return &CacheView{
		base:               base,
		coins:              make(map[util.Hash]*Entry),
		names:              names.NewCache(),
		nameHistoryEnabled: nameHistoryEnabled,
	}
}

// DynamicMemoryUsage reports the running total of bytes held by this
// layer's coin records, for the caller's own eviction policy.
func (c *CacheView) DynamicMemoryUsage() int64 {
	return c.dynamicUsage
}

// fetch is the internal read path (§4.4): return the cached entry if one
// exists, else ask the parent and remember the answer — but a genuine miss
// must stay a miss, never get inserted, so a later Modify can still decide
// FRESH correctly (the "absence preservation" property in SPEC_FULL §8).
func (c *CacheView) fetch(txid util.Hash) (*Entry, bool) {
	if e, ok := c.coins[txid]; ok {
		return e, true
	}
	parentCoins, ok := c.base.GetCoins(txid)
	if !ok {
		return nil, false
	}
	entry := &Entry{Coins: parentCoins}
	if parentCoins.IsPruned() {
		entry.Fresh = true
	}
	c.coins[txid] = entry
	c.dynamicUsage += entry.Coins.DynamicMemoryUsage()
	return entry, true
}

// GetCoins returns a copy of txid's record, safe for the caller to mutate
// without disturbing the cache.
func (c *CacheView) GetCoins(txid util.Hash) (*coin.Coins, bool) {
	entry, ok := c.fetch(txid)
	if !ok {
		return nil, false
	}
	return entry.Coins.DeepCopy(), true
}

// AccessCoins hands back a pointer with this cache view's lifetime — faster
// than GetCoins, but callers must not mutate it outside of Modify.
func (c *CacheView) AccessCoins(txid util.Hash) *coin.Coins {
	entry, ok := c.fetch(txid)
	if !ok {
		return nil
	}
	return entry.Coins
}

// HaveCoins treats a pruned-but-present entry as absent; this is cheaper
// than a full IsPruned check and is correct because only a reorg replaces
// Outputs wholesale (a plain spend just nils individual slots then trims).
func (c *CacheView) HaveCoins(txid util.Hash) bool {
	entry, ok := c.fetch(txid)
	return ok && len(entry.Coins.Outputs) > 0
}

func (c *CacheView) GetBestBlock() util.Hash {
	if c.bestBlock.IsNull() {
		c.bestBlock = c.base.GetBestBlock()
	}
	return c.bestBlock
}

func (c *CacheView) SetBestBlock(h util.Hash) {
	c.bestBlock = h
}

// Modify returns an exclusive mutation token for txid (SPEC_FULL §4.5). At
// most one modifier may be live per cache view at a time (invariant M);
// violating that is a programming error and panics.
func (c *CacheView) Modify(txid util.Hash) *Modifier {
	if c.hasModifier {
		panic("view: Modify called while another modifier is still live")
	}

	entry, existed := c.coins[txid]
	var preUsage int64
	if !existed {
		entry = &Entry{}
		c.coins[txid] = entry
		parentCoins, ok := c.base.GetCoins(txid)
		if !ok {
			entry.Coins = &coin.Coins{}
			entry.Fresh = true
		} else {
			entry.Coins = parentCoins
			if entry.Coins.IsPruned() {
				entry.Fresh = true
			}
		}
	} else {
		preUsage = entry.Coins.DynamicMemoryUsage()
	}
	entry.Dirty = true
	c.hasModifier = true

	return &Modifier{view: c, txid: txid, preUsage: preUsage}
}

// release is invoked by Modifier.Close/Drop (§4.4/§4.5): re-apply the
// tail-trim invariant, reconcile dynamicUsage, and erase the entry if it
// turned out FRESH-and-pruned (it never needed to exist below us).
func (c *CacheView) release(txid util.Hash, preUsage int64) {
	if !c.hasModifier {
		panic("view: release called with no live modifier")
	}
	c.hasModifier = false

	entry := c.coins[txid]
	entry.Coins.Trim()
	c.dynamicUsage -= preUsage
	if entry.Fresh && entry.Coins.IsPruned() {
		delete(c.coins, txid)
	} else {
		c.dynamicUsage += entry.Coins.DynamicMemoryUsage()
	}
}

// BatchWrite absorbs a child cache view's staged coin and name deltas
// (§4.4). It requires no modifier to be live. The incoming coins map is
// fully drained as it is processed, mirroring the original's behavior of
// erasing every entry (dirty or not) as it iterates.
func (c *CacheView) BatchWrite(coins CoinDelta, bestBlock util.Hash, nameDelta *names.Cache) bool {
	if c.hasModifier {
		panic("view: BatchWrite called while a modifier is still live")
	}

	for txid, item := range coins {
		if item.Dirty {
			local, ok := c.coins[txid]
			if !ok {
				if !item.Coins.IsPruned() {
					if !item.Fresh {
						panic("view: BatchWrite expected FRESH on a non-pruned new entry")
					}
					entry := &Entry{Coins: item.Coins, Dirty: true, Fresh: true}
					c.coins[txid] = entry
					c.dynamicUsage += entry.Coins.DynamicMemoryUsage()
				}
			} else if local.Fresh && item.Coins.IsPruned() {
				c.dynamicUsage -= local.Coins.DynamicMemoryUsage()
				delete(c.coins, txid)
			} else {
				c.dynamicUsage -= local.Coins.DynamicMemoryUsage()
				local.Coins = item.Coins
				c.dynamicUsage += local.Coins.DynamicMemoryUsage()
				local.Dirty = true
			}
		}
		delete(coins, txid)
	}

	c.bestBlock = bestBlock
	c.names.Apply(nameDelta)
	return true
}

// Flush collapses this layer into its parent via BatchWrite, then clears
// all local state (§4.4). Idempotent: flushing an already-empty cache is a
// no-op that still reports the parent's (trivial) success.
func (c *CacheView) Flush() bool {
	ok := c.base.BatchWrite(c.coins, c.bestBlock, c.names)
	c.coins = make(map[util.Hash]*Entry)
	c.dynamicUsage = 0
	c.names.Clear()
	return ok
}

// GetCacheSize reports how many coin entries this layer holds; name
// changes are not counted (carried over from the original, which tracks
// coin cache size only).
func (c *CacheView) GetCacheSize() int {
	return len(c.coins)
}

// --- name operations (§4.4) ---

func (c *CacheView) GetName(name string) (names.Data, bool) {
	if c.names.IsDeleted(name) {
		return names.Data{}, false
	}
	if d, ok := c.names.Get(name); ok {
		return d, true
	}
	return c.base.GetName(name)
}

func (c *CacheView) GetNameHistory(name string) (*names.History, bool) {
	if h, ok := c.names.GetHistory(name); ok {
		return h, true
	}
	return c.base.GetNameHistory(name)
}

func (c *CacheView) GetNamesForHeight(height int32) (map[string]bool, bool) {
	result := map[string]bool{}
	if base, ok := c.base.GetNamesForHeight(height); ok {
		for n := range base {
			result[n] = true
		}
	}
	c.names.UpdateNamesForHeight(height, result)
	return result, true
}

func (c *CacheView) IterateNames() names.Iterator {
	return c.names.IterateNames(c.base.IterateNames())
}

// SetName stages name -> data (§4.4). undo indicates this call is
// reconstructing a prior state (a disconnected block) rather than applying
// a new registration/update going forward.
func (c *CacheView) SetName(name string, data names.Data, undo bool) {
	oldData, exists := c.GetName(name)
	if exists {
		c.names.RemoveExpireIndex(name, oldData.Height)

		if c.nameHistoryEnabled {
			hist, ok := c.GetNameHistory(name)
			if !ok || hist == nil {
				hist = &names.History{}
			} else {
				hist = hist.Clone()
			}
			if undo {
				if _, popped := hist.Pop(data); !popped {
					panic(fmt.Sprintf("view: SetName undo for %q does not match history top", name))
				}
			} else {
				hist.Push(oldData)
			}
			c.names.SetHistory(name, hist)
		}
	} else if undo {
		panic(fmt.Sprintf("view: SetName undo for %q but name does not currently exist", name))
	}

	c.names.Set(name, data)
	c.names.AddExpireIndex(name, data.Height)
}

// DeleteName stages name's removal (§4.4). The name must currently exist,
// and — if history is enabled — its history must already be empty.
func (c *CacheView) DeleteName(name string) {
	oldData, exists := c.GetName(name)
	if !exists {
		panic(fmt.Sprintf("view: DeleteName for %q but name does not exist", name))
	}
	c.names.RemoveExpireIndex(name, oldData.Height)

	if c.nameHistoryEnabled {
		if hist, ok := c.GetNameHistory(name); ok && !hist.Empty() {
			panic(fmt.Sprintf("view: DeleteName for %q with non-empty history", name))
		}
	}

	c.names.Remove(name)
}

func (c *CacheView) GetStats() (Stats, bool) {
	return Stats{CoinCount: int64(len(c.coins)), TotalSize: c.dynamicUsage}, true
}

func (c *CacheView) ValidateNameDB() bool {
	return c.base.ValidateNameDB()
}

// --- validator-facing helpers (§4.4) ---

// GetOutputFor resolves an input's previous output. Absence or an
// already-spent slot is a programming error: callers must have already
// checked HaveInputs.
func (c *CacheView) GetOutputFor(in coin.Input) *txout.TxOut {
	coins := c.AccessCoins(in.PrevOut.TxID)
	if coins == nil || !coins.IsAvailable(in.PrevOut.Index) {
		panic("view: GetOutputFor on an unavailable coin")
	}
	return coins.Outputs[in.PrevOut.Index]
}

// GetValueIn sums the resolved input values; 0 for a coinbase.
func (c *CacheView) GetValueIn(tx coin.InputSet) util.Amount {
	if tx.IsCoinBase {
		return 0
	}
	var total util.Amount
	for _, in := range tx.Inputs {
		total += c.GetOutputFor(in).Value
	}
	return total
}

// HaveInputs reports whether every non-coinbase input resolves to an
// available output.
func (c *CacheView) HaveInputs(tx coin.InputSet) bool {
	if tx.IsCoinBase {
		return true
	}
	for _, in := range tx.Inputs {
		coins := c.AccessCoins(in.PrevOut.TxID)
		if coins == nil || !coins.IsAvailable(in.PrevOut.Index) {
			return false
		}
	}
	return true
}

// GetPriority computes Bitcoin Core's coin-age transaction priority: the
// sum over inputs of value*age, run through the priority-compression
// function. Coinbase transactions have zero priority.
func (c *CacheView) GetPriority(tx coin.InputSet, atHeight int32) float64 {
	if tx.IsCoinBase {
		return 0
	}
	var sum float64
	for _, in := range tx.Inputs {
		coins := c.AccessCoins(in.PrevOut.TxID)
		if coins == nil || !coins.IsAvailable(in.PrevOut.Index) {
			continue
		}
		if coins.Height <= atHeight {
			age := atHeight - coins.Height
			sum += float64(coins.Outputs[in.PrevOut.Index].Value) * float64(age)
		}
	}
	return coin.ComputePriority(sum, tx.SerializedSize, 0)
}
