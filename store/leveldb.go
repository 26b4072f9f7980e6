// Package store holds the two bottom layers of the stack: a leveldb-backed
// View (SPEC_FULL §4.8) and an optional LRU-fronted decorator in front of
// it (§4.9). Grounded on the teacher's persist/db package, adapted from its
// generic DBWrapper/BatchWrapper/IterWrapper trio to this module's key
// scheme.
package store

import (
	"crypto/rand"
	"os"

	"github.com/pkg/errors"
	lvldb "github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/filter"
	"github.com/syndtr/goleveldb/leveldb/iterator"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/storage"
	lvlutil "github.com/syndtr/goleveldb/leveldb/util"
)

const (
	obfuscateKeyKey = "\000obfuscate_key"
	obfuscateKeyLen = 8
)

// dbWrapper is the leveldb handle plus the obfuscation key applied to
// every value on read and write, carried over from the teacher's
// DBWrapper.
type dbWrapper struct {
	db           *lvldb.DB
	readOption   opt.ReadOptions
	iterOption   opt.ReadOptions
	writeOption  opt.WriteOptions
	syncOption   opt.WriteOptions
	obfuscateKey []byte
}

// Options configures a backing store's leveldb instance.
type Options struct {
	Path          string
	CacheSize     int
	Wipe          bool
	DontObfuscate bool
}

func getLevelOptions(cacheSize int) opt.Options {
	var o opt.Options
	o.BlockCacher = opt.LRUCacher
	if cacheSize > 0 {
		o.BlockCacheCapacity = cacheSize / 2
		o.WriteBuffer = cacheSize / 4
	}
	o.Filter = filter.NewBloomFilter(10)
	o.Compression = opt.NoCompression
	o.OpenFilesCacheCapacity = 64
	return o
}

func genObfuscateKey() []byte {
	buf := make([]byte, obfuscateKeyLen)
	if _, err := rand.Read(buf); err != nil {
		panic("store: failed to read random bytes for obfuscation key")
	}
	return buf
}

func xor(val, key []byte) {
	if len(key) == 0 {
		return
	}
	for i, j := 0, 0; i < len(val); i, j = i+1, (j+1)%len(key) {
		val[i] ^= key[j]
	}
}

func openDBWrapper(o Options) (*dbWrapper, error) {
	opts := getLevelOptions(o.CacheSize)
	if o.Wipe {
		if err := wipe(o.Path); err != nil {
			return nil, errors.Wrap(err, "store: wiping existing database")
		}
	}
	if err := os.MkdirAll(o.Path, 0740); err != nil && !os.IsExist(err) {
		return nil, errors.Wrap(err, "store: creating database directory")
	}

	db, err := lvldb.OpenFile(o.Path, &opts)
	if err != nil {
		return nil, errors.Wrap(err, "store: opening leveldb")
	}

	dbw := &dbWrapper{
		db: db,
		readOption: opt.ReadOptions{
			Strict: opt.StrictJournalChecksum | opt.StrictBlockChecksum,
		},
		iterOption: opt.ReadOptions{
			DontFillCache: true,
			Strict:        opt.StrictJournalChecksum | opt.StrictBlockChecksum,
		},
		syncOption: opt.WriteOptions{Sync: true},
	}

	if key, err := dbw.read([]byte(obfuscateKeyKey)); err == nil {
		dbw.obfuscateKey = key
	} else if !o.DontObfuscate && dbw.isEmpty() {
		key := genObfuscateKey()
		if err := dbw.write([]byte(obfuscateKeyKey), key, true); err != nil {
			return nil, errors.Wrap(err, "store: persisting obfuscation key")
		}
		dbw.obfuscateKey = key
	}
	return dbw, nil
}

func wipe(path string) error {
	st, err := storage.OpenFile(path, false)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer st.Close()
	fds, err := st.List(storage.TypeAll)
	if err != nil {
		return err
	}
	for _, fd := range fds {
		if err := st.Remove(fd); err != nil {
			return err
		}
	}
	return nil
}

func (dbw *dbWrapper) read(key []byte) ([]byte, error) {
	value, err := dbw.db.Get(key, &dbw.readOption)
	if err != nil {
		return nil, err
	}
	out := append([]byte(nil), value...)
	xor(out, dbw.obfuscateKey)
	return out, nil
}

func (dbw *dbWrapper) write(key, val []byte, sync bool) error {
	b := newBatch(dbw)
	b.put(key, val)
	return dbw.writeBatch(b, sync)
}

func (dbw *dbWrapper) erase(key []byte, sync bool) error {
	b := newBatch(dbw)
	b.delete(key)
	return dbw.writeBatch(b, sync)
}

func (dbw *dbWrapper) writeBatch(b *batch, sync bool) error {
	opts := dbw.writeOption
	if sync {
		opts = dbw.syncOption
	}
	return dbw.db.Write(&b.inner, &opts)
}

func (dbw *dbWrapper) isEmpty() bool {
	it := dbw.db.NewIterator(nil, &dbw.iterOption)
	defer it.Release()
	return !it.First()
}

// iterateRange returns a raw leveldb iterator limited to keys with prefix.
func (dbw *dbWrapper) iterateRange(prefix []byte) iterator.Iterator {
	return dbw.db.NewIterator(lvlutil.BytesPrefix(prefix), &dbw.iterOption)
}

func (dbw *dbWrapper) estimateSize(begin, end []byte) uint64 {
	r := []lvlutil.Range{{Start: begin, Limit: end}}
	sizes, err := dbw.db.SizeOf(r)
	if err != nil {
		return 0
	}
	return uint64(sizes.Sum())
}

func (dbw *dbWrapper) close() {
	if dbw.db != nil {
		dbw.db.Close()
	}
}

// batch accumulates puts/deletes for one atomic write, XOR-obfuscating
// values as they're added (mirroring BatchWrapper.Write in the teacher).
type batch struct {
	inner  lvldb.Batch
	parent *dbWrapper
}

func newBatch(parent *dbWrapper) *batch {
	return &batch{parent: parent}
}

func (b *batch) put(key, val []byte) {
	obfuscated := append([]byte(nil), val...)
	xor(obfuscated, b.parent.obfuscateKey)
	b.inner.Put(key, obfuscated)
}

func (b *batch) delete(key []byte) {
	b.inner.Delete(key)
}
