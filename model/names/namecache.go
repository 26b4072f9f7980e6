package names

import (
	"github.com/google/btree"
)

type changeKind int

const (
	changeSet changeKind = iota
	changeDeleted
)

type change struct {
	kind changeKind
	data Data
}

// nameItem orders staged names lexically inside the delta's btree.BTree so
// IterateNames can walk the cache's changes and the backing store's
// iterator in lockstep, merge-join style.
type nameItem string

func (n nameItem) Less(than btree.Item) bool {
	return string(n) < string(than.(nameItem))
}

// expireDelta records, for one expiration height, which names the cache has
// newly scheduled to expire there and which it has removed from that
// bucket — relative to whatever the backing store says for that height.
type expireDelta struct {
	added   map[string]bool
	removed map[string]bool
}

func newExpireDelta() *expireDelta {
	return &expireDelta{added: map[string]bool{}, removed: map[string]bool{}}
}

// Cache is the staged, in-memory set of name changes layered over a
// backing name store: SPEC_FULL §3's NameCache. It never memoizes a clean
// read — only changes are kept (see SPEC_FULL's delta-only discussion).
type Cache struct {
	changes     map[string]change
	history     map[string]*History
	expireIndex map[int32]*expireDelta
	order       *btree.BTree
}

func NewCache() *Cache {
	return &Cache{
		changes:     make(map[string]change),
		history:     make(map[string]*History),
		expireIndex: make(map[int32]*expireDelta),
		order:       btree.New(32),
	}
}

func (c *Cache) Empty() bool {
	return len(c.changes) == 0 && len(c.history) == 0 && len(c.expireIndex) == 0
}

// IsDeleted reports whether the cache records name as explicitly removed
// (invariant N1: such a name must never fall through to the backing store).
func (c *Cache) IsDeleted(name string) bool {
	ch, ok := c.changes[name]
	return ok && ch.kind == changeDeleted
}

// Get returns the staged Data for name, if the cache has a set(..) entry.
func (c *Cache) Get(name string) (Data, bool) {
	ch, ok := c.changes[name]
	if !ok || ch.kind != changeSet {
		return Data{}, false
	}
	return ch.data, true
}

// GetHistory returns the staged history stack for name, if any.
func (c *Cache) GetHistory(name string) (*History, bool) {
	h, ok := c.history[name]
	return h, ok
}

func (c *Cache) SetHistory(name string, h *History) {
	c.history[name] = h
}

// Set stages name -> data, replacing whatever change was staged before.
func (c *Cache) Set(name string, data Data) {
	c.changes[name] = change{kind: changeSet, data: data}
	c.order.ReplaceOrInsert(nameItem(name))
}

// Remove stages name as deleted (invariant N2: callers must have already
// removed the old expire-index entry).
func (c *Cache) Remove(name string) {
	c.changes[name] = change{kind: changeDeleted}
	c.order.ReplaceOrInsert(nameItem(name))
}

func (c *Cache) expireDeltaAt(height int32) *expireDelta {
	d, ok := c.expireIndex[height]
	if !ok {
		d = newExpireDelta()
		c.expireIndex[height] = d
	}
	return d
}

// AddExpireIndex schedules name to expire at height in the delta.
func (c *Cache) AddExpireIndex(name string, height int32) {
	d := c.expireDeltaAt(height)
	delete(d.removed, name)
	d.added[name] = true
}

// RemoveExpireIndex un-schedules name from height's expiry bucket.
func (c *Cache) RemoveExpireIndex(name string, height int32) {
	d := c.expireDeltaAt(height)
	delete(d.added, name)
	d.removed[name] = true
}

// UpdateNamesForHeight applies this cache's delta for height onto a base
// set read from the backing store.
func (c *Cache) UpdateNamesForHeight(height int32, base map[string]bool) {
	d, ok := c.expireIndex[height]
	if !ok {
		return
	}
	for n := range d.removed {
		delete(base, n)
	}
	for n := range d.added {
		base[n] = true
	}
}

// Iterator walks names in lexical order.
type Iterator interface {
	Next() (name string, data Data, ok bool)
}

type sliceIterator struct {
	names []string
	data  map[string]Data
	pos   int
}

func (it *sliceIterator) Next() (string, Data, bool) {
	if it.pos >= len(it.names) {
		return "", Data{}, false
	}
	n := it.names[it.pos]
	it.pos++
	return n, it.data[n], true
}

// changedNamesInOrder walks the delta's ordering btree ascending, giving the
// set of names touched by this cache layer in lexical order. The backing
// store's own iterator is assumed sorted by name (the leveldb store walks
// its resident name-ordered btree index); merging
// the two ascending streams below is a classic sorted merge-join rather
// than a full materialize-then-sort.
func (c *Cache) changedNamesInOrder() []string {
	names := make([]string, 0, c.order.Len())
	c.order.Ascend(func(item btree.Item) bool {
		names = append(names, string(item.(nameItem)))
		return true
	})
	return names
}

// IterateNames produces an iterator merging, in name order, base (the
// backing store's iterator, assumed already sorted by name) with this
// cache's delta, honoring deletions. base may be nil if there is no
// backing data at all.
func (c *Cache) IterateNames(base Iterator) Iterator {
	changed := c.changedNamesInOrder()

	baseName, baseData, baseOK := "", Data{}, false
	if base != nil {
		baseName, baseData, baseOK = base.Next()
	}

	var names []string
	data := make(map[string]Data)
	ci := 0
	for ci < len(changed) || baseOK {
		switch {
		case ci >= len(changed):
			names = append(names, baseName)
			data[baseName] = baseData
			baseName, baseData, baseOK = base.Next()
		case !baseOK || changed[ci] < baseName:
			name := changed[ci]
			ci++
			ch := c.changes[name]
			if ch.kind == changeDeleted {
				continue
			}
			names = append(names, name)
			data[name] = ch.data
		case changed[ci] > baseName:
			names = append(names, baseName)
			data[baseName] = baseData
			baseName, baseData, baseOK = base.Next()
		default: // same name staged and in backing store: cache wins
			name := changed[ci]
			ci++
			ch := c.changes[name]
			if ch.kind != changeDeleted {
				names = append(names, name)
				data[name] = ch.data
			}
			baseName, baseData, baseOK = base.Next()
		}
	}
	return &sliceIterator{names: names, data: data}
}

// NameChange describes one name's staged change, for a backing store's
// BatchWrite to persist (store.LevelDBStore is the only caller: the
// in-memory CacheView instead merges whole Cache values via Apply).
type NameChange struct {
	Deleted bool
	Data    Data
}

// ChangedNames returns every name this cache layer has staged a set or
// delete for.
func (c *Cache) ChangedNames() map[string]NameChange {
	out := make(map[string]NameChange, len(c.changes))
	for name, ch := range c.changes {
		out[name] = NameChange{Deleted: ch.kind == changeDeleted, Data: ch.data}
	}
	return out
}

// ExpireIndexChange is one height's added/removed names within this
// cache's expire-index delta.
type ExpireIndexChange struct {
	Added   []string
	Removed []string
}

// ExpireIndexChanges returns the per-height expire-index delta, for a
// backing store's BatchWrite to persist.
func (c *Cache) ExpireIndexChanges() map[int32]ExpireIndexChange {
	out := make(map[int32]ExpireIndexChange, len(c.expireIndex))
	for height, d := range c.expireIndex {
		change := ExpireIndexChange{}
		for n := range d.added {
			change.Added = append(change.Added, n)
		}
		for n := range d.removed {
			change.Removed = append(change.Removed, n)
		}
		out[height] = change
	}
	return out
}

// Apply merges child's deltas into c — set/delete, history, and
// expire-index changes all combine associatively (SPEC_FULL §4.4
// batch_write's name-side step).
func (c *Cache) Apply(child *Cache) {
	for name, ch := range child.changes {
		c.changes[name] = ch
		c.order.ReplaceOrInsert(nameItem(name))
	}
	for name, h := range child.history {
		c.history[name] = h
	}
	for height, delta := range child.expireIndex {
		d := c.expireDeltaAt(height)
		for n := range delta.removed {
			delete(d.added, n)
			d.removed[n] = true
		}
		for n := range delta.added {
			delete(d.removed, n)
			d.added[n] = true
		}
	}
}

func (c *Cache) Clear() {
	c.changes = make(map[string]change)
	c.history = make(map[string]*History)
	c.expireIndex = make(map[int32]*expireDelta)
	c.order = btree.New(32)
}
