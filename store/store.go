package store

import (
	"bytes"
	"encoding/binary"

	"github.com/google/btree"

	"github.com/josephbisch/deb-namecoin-core/model/coin"
	"github.com/josephbisch/deb-namecoin-core/model/names"
	"github.com/josephbisch/deb-namecoin-core/util"
	"github.com/josephbisch/deb-namecoin-core/view"
)

const (
	prefixCoin       byte = 'c'
	prefixName       byte = 'n'
	prefixHistory    byte = 'h'
	prefixExpireName byte = 'x'
	keyBestBlock          = "B"
)

func coinKey(txid util.Hash) []byte {
	return append([]byte{prefixCoin}, txid[:]...)
}

func nameKey(name string) []byte {
	return append([]byte{prefixName}, []byte(name)...)
}

func historyKey(name string) []byte {
	return append([]byte{prefixHistory}, []byte(name)...)
}

func expireKey(height int32, name string) []byte {
	k := make([]byte, 1+4+len(name))
	k[0] = prefixExpireName
	binary.BigEndian.PutUint32(k[1:5], uint32(height))
	copy(k[5:], name)
	return k
}

func expirePrefix(height int32) []byte {
	k := make([]byte, 1+4)
	k[0] = prefixExpireName
	binary.BigEndian.PutUint32(k[1:5], uint32(height))
	return k
}

// nameOrderItem orders names lexically inside the store's in-memory index
// (SPEC_FULL §4.8: "iterate_names driven by a google/btree B-tree keeping
// keys in name order"). Keeping this index resident means IterateNames
// never has to pay for a fresh leveldb range scan plus sort on every call;
// BatchWrite keeps it in sync incrementally as names are set/removed.
type nameOrderItem string

func (n nameOrderItem) Less(than btree.Item) bool {
	return string(n) < string(than.(nameOrderItem))
}

// LevelDBStore is the bottom-of-the-stack View: every coin and name record
// it answers comes straight from leveldb (SPEC_FULL §4.8), grounded on
// persist/db.DBWrapper plus the key-prefix conventions of
// model/utxo/coindb.go.
type LevelDBStore struct {
	view.Base
	dbw       *dbWrapper
	nameOrder *btree.BTree
}

// Open creates or opens a leveldb-backed store at o.Path and builds its
// in-memory name-order index from whatever is already on disk.
func Open(o Options) (*LevelDBStore, error) {
	dbw, err := openDBWrapper(o)
	if err != nil {
		return nil, err
	}
	s := &LevelDBStore{dbw: dbw, nameOrder: btree.New(32)}
	it := dbw.iterateRange([]byte{prefixName})
	defer it.Release()
	for it.Next() {
		s.nameOrder.ReplaceOrInsert(nameOrderItem(string(it.Key()[1:])))
	}
	return s, nil
}

func (s *LevelDBStore) Close() {
	s.dbw.close()
}

func (s *LevelDBStore) GetCoins(txid util.Hash) (*coin.Coins, bool) {
	val, err := s.dbw.read(coinKey(txid))
	if err != nil {
		return nil, false
	}
	c := &coin.Coins{}
	if err := c.Decode(bytes.NewReader(val)); err != nil {
		panic("store: corrupt coin record: " + err.Error())
	}
	return c, true
}

func (s *LevelDBStore) HaveCoins(txid util.Hash) bool {
	_, err := s.dbw.db.Get(coinKey(txid), nil)
	return err == nil
}

func (s *LevelDBStore) GetBestBlock() util.Hash {
	val, err := s.dbw.read([]byte(keyBestBlock))
	if err != nil || len(val) != util.Hash256Size {
		return util.HashZero
	}
	var h util.Hash
	copy(h[:], val)
	return h
}

func (s *LevelDBStore) GetName(name string) (names.Data, bool) {
	val, err := s.dbw.read(nameKey(name))
	if err != nil {
		return names.Data{}, false
	}
	d, err := names.DecodeData(bytes.NewReader(val))
	if err != nil {
		panic("store: corrupt name record: " + err.Error())
	}
	return d, true
}

func (s *LevelDBStore) GetNameHistory(name string) (*names.History, bool) {
	val, err := s.dbw.read(historyKey(name))
	if err != nil {
		return nil, false
	}
	h, err := names.DecodeHistory(bytes.NewReader(val))
	if err != nil {
		panic("store: corrupt name history record: " + err.Error())
	}
	return h, true
}

func (s *LevelDBStore) GetNamesForHeight(height int32) (map[string]bool, bool) {
	result := map[string]bool{}
	it := s.dbw.iterateRange(expirePrefix(height))
	defer it.Release()
	for it.Next() {
		result[string(it.Key()[5:])] = true
	}
	return result, true
}

type storeIterator struct {
	store *LevelDBStore
	names []string
	pos   int
}

func (it *storeIterator) Next() (string, names.Data, bool) {
	for it.pos < len(it.names) {
		name := it.names[it.pos]
		it.pos++
		if d, ok := it.store.GetName(name); ok {
			return name, d, true
		}
		// Stale index entry (a name was removed but the index wasn't
		// updated yet, e.g. mid-open); skip it rather than fail the walk.
	}
	return "", names.Data{}, false
}

func (s *LevelDBStore) IterateNames() names.Iterator {
	all := make([]string, 0, s.nameOrder.Len())
	s.nameOrder.Ascend(func(item btree.Item) bool {
		all = append(all, string(item.(nameOrderItem)))
		return true
	})
	return &storeIterator{store: s, names: all}
}

// BatchWrite persists a flushed cache view's coin and name deltas in one
// leveldb batch (SPEC_FULL §4.8), keeping nameOrder in lockstep.
func (s *LevelDBStore) BatchWrite(coins view.CoinDelta, bestBlock util.Hash, nameDelta *names.Cache) bool {
	b := newBatch(s.dbw)

	for txid, entry := range coins {
		if entry.Dirty {
			if entry.Coins.IsPruned() {
				b.delete(coinKey(txid))
			} else {
				var buf bytes.Buffer
				if err := entry.Coins.Encode(&buf); err != nil {
					panic("store: encoding coin record: " + err.Error())
				}
				b.put(coinKey(txid), buf.Bytes())
			}
		}
		delete(coins, txid)
	}

	if !bestBlock.IsNull() {
		b.put([]byte(keyBestBlock), bestBlock[:])
	}

	s.applyNameDelta(b, nameDelta)

	if err := s.dbw.writeBatch(b, false); err != nil {
		return false
	}
	return true
}

func (s *LevelDBStore) applyNameDelta(b *batch, delta *names.Cache) {
	if delta == nil {
		return
	}
	for name, changed := range delta.ChangedNames() {
		if changed.Deleted {
			b.delete(nameKey(name))
			b.delete(historyKey(name))
			s.nameOrder.Delete(nameOrderItem(name))
			continue
		}
		var buf bytes.Buffer
		if err := changed.Data.Encode(&buf); err != nil {
			panic("store: encoding name record: " + err.Error())
		}
		b.put(nameKey(name), buf.Bytes())
		s.nameOrder.ReplaceOrInsert(nameOrderItem(name))

		if hist, ok := delta.GetHistory(name); ok {
			var hbuf bytes.Buffer
			if err := names.EncodeHistory(&hbuf, hist); err != nil {
				panic("store: encoding name history: " + err.Error())
			}
			b.put(historyKey(name), hbuf.Bytes())
		}
	}
	for height, change := range delta.ExpireIndexChanges() {
		for _, n := range change.Removed {
			b.delete(expireKey(height, n))
		}
		for _, n := range change.Added {
			b.put(expireKey(height, n), []byte{1})
		}
	}
}

// GetStats counts coin and name entries and estimates their on-disk size
// via leveldb's own range-size accounting, mirroring DBWrapper.EstimateSize.
func (s *LevelDBStore) GetStats() (view.Stats, bool) {
	stats := view.Stats{}
	it := s.dbw.iterateRange([]byte{prefixCoin})
	for it.Next() {
		stats.CoinCount++
	}
	it.Release()

	it = s.dbw.iterateRange([]byte{prefixName})
	for it.Next() {
		stats.NameCount++
	}
	it.Release()

	stats.TotalSize = int64(s.dbw.estimateSize([]byte{prefixCoin}, []byte{prefixCoin + 1}))
	stats.TotalSize += int64(s.dbw.estimateSize([]byte{prefixName}, []byte{prefixName + 1}))
	return stats, true
}

// ValidateNameDB walks the name and name-history key ranges and confirms
// every history record belongs to a name that still exists, mirroring the
// sanity check the teacher's DBWrapper leaves to its callers.
func (s *LevelDBStore) ValidateNameDB() bool {
	it := s.dbw.iterateRange([]byte{prefixHistory})
	defer it.Release()
	for it.Next() {
		name := string(it.Key()[1:])
		if _, ok := s.GetName(name); !ok {
			return false
		}
	}
	return true
}
