package store

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josephbisch/deb-namecoin-core/model/coin"
	"github.com/josephbisch/deb-namecoin-core/model/names"
	"github.com/josephbisch/deb-namecoin-core/model/script"
	"github.com/josephbisch/deb-namecoin-core/model/txout"
	"github.com/josephbisch/deb-namecoin-core/util"
	"github.com/josephbisch/deb-namecoin-core/view"
)

func hash(b byte) util.Hash {
	var h util.Hash
	h[0] = b
	return h
}

func openTestStore(t *testing.T) *LevelDBStore {
	t.Helper()
	s, err := Open(Options{Path: t.TempDir()})
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return s
}

func mkCoins(v util.Amount) *coin.Coins {
	return &coin.Coins{
		Outputs: []*txout.TxOut{txout.NewTxOut(v, script.NewScriptRaw([]byte{0x51}))},
		Height:  10,
	}
}

func TestOpenEmptyStoreHasNoCoinsOrNames(t *testing.T) {
	s := openTestStore(t)
	_, ok := s.GetCoins(hash(1))
	assert.False(t, ok)
	assert.False(t, s.HaveCoins(hash(1)))
	assert.Equal(t, util.HashZero, s.GetBestBlock())
}

func TestBatchWritePersistsCoinsAndBestBlock(t *testing.T) {
	s := openTestStore(t)
	txid := hash(1)
	delta := view.CoinDelta{txid: {Coins: mkCoins(5), Dirty: true}}

	ok := s.BatchWrite(delta, hash(9), nil)
	assert.True(t, ok)
	assert.Equal(t, 0, len(delta), "BatchWrite must drain the incoming map")

	got, ok := s.GetCoins(txid)
	require.True(t, ok)
	assert.Equal(t, util.Amount(5), got.Outputs[0].Value)
	assert.True(t, s.HaveCoins(txid))
	assert.Equal(t, hash(9), s.GetBestBlock())
}

func TestBatchWriteDeletesPrunedCoins(t *testing.T) {
	s := openTestStore(t)
	txid := hash(2)
	s.BatchWrite(view.CoinDelta{txid: {Coins: mkCoins(5), Dirty: true}}, util.HashZero, nil)
	require.True(t, s.HaveCoins(txid))

	pruned := &coin.Coins{}
	s.BatchWrite(view.CoinDelta{txid: {Coins: pruned, Dirty: true}}, util.HashZero, nil)
	assert.False(t, s.HaveCoins(txid))
}

func TestBatchWritePersistsNameAndHistory(t *testing.T) {
	s := openTestStore(t)
	nc := names.NewCache()
	nc.Set("d/example", names.Data{Value: []byte("v1"), Height: 1})
	h := &names.History{}
	h.Push(names.Data{Value: []byte("v0"), Height: 0})
	nc.SetHistory("d/example", h)
	nc.AddExpireIndex("d/example", 100)

	ok := s.BatchWrite(view.CoinDelta{}, util.HashZero, nc)
	assert.True(t, ok)

	d, ok := s.GetName("d/example")
	require.True(t, ok)
	assert.Equal(t, []byte("v1"), d.Value)

	hist, ok := s.GetNameHistory("d/example")
	require.True(t, ok)
	assert.False(t, hist.Empty())

	names2, ok := s.GetNamesForHeight(100)
	require.True(t, ok)
	assert.True(t, names2["d/example"])
}

func TestBatchWriteRemovesName(t *testing.T) {
	s := openTestStore(t)
	nc := names.NewCache()
	nc.Set("d/example", names.Data{Value: []byte("v1"), Height: 1})
	s.BatchWrite(view.CoinDelta{}, util.HashZero, nc)
	_, ok := s.GetName("d/example")
	require.True(t, ok)

	nc2 := names.NewCache()
	nc2.Remove("d/example")
	s.BatchWrite(view.CoinDelta{}, util.HashZero, nc2)
	_, ok = s.GetName("d/example")
	assert.False(t, ok)
}

func TestIterateNamesFollowsNameOrderAfterWrites(t *testing.T) {
	s := openTestStore(t)
	nc := names.NewCache()
	nc.Set("charlie", names.Data{Value: []byte("c")})
	nc.Set("alpha", names.Data{Value: []byte("a")})
	nc.Set("bravo", names.Data{Value: []byte("b")})
	s.BatchWrite(view.CoinDelta{}, util.HashZero, nc)

	it := s.IterateNames()
	var got []string
	for {
		name, _, ok := it.Next()
		if !ok {
			break
		}
		got = append(got, name)
	}
	assert.Equal(t, []string{"alpha", "bravo", "charlie"}, got)
}

func TestReopenRebuildsNameOrderIndex(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(Options{Path: dir})
	require.NoError(t, err)
	nc := names.NewCache()
	nc.Set("a", names.Data{Value: []byte("1")})
	nc.Set("b", names.Data{Value: []byte("2")})
	s.BatchWrite(view.CoinDelta{}, util.HashZero, nc)
	s.Close()

	s2, err := Open(Options{Path: dir})
	require.NoError(t, err)
	defer s2.Close()

	it := s2.IterateNames()
	var got []string
	for {
		name, _, ok := it.Next()
		if !ok {
			break
		}
		got = append(got, name)
	}
	assert.Equal(t, []string{"a", "b"}, got)
}

func TestGetStatsCountsCoinsAndNames(t *testing.T) {
	s := openTestStore(t)
	s.BatchWrite(view.CoinDelta{hash(1): {Coins: mkCoins(1), Dirty: true}}, util.HashZero, nil)
	nc := names.NewCache()
	nc.Set("a", names.Data{Value: []byte("1")})
	s.BatchWrite(view.CoinDelta{}, util.HashZero, nc)

	stats, ok := s.GetStats()
	require.True(t, ok)
	assert.Equal(t, int64(1), stats.CoinCount)
	assert.Equal(t, int64(1), stats.NameCount)
}

func TestValidateNameDBDetectsOrphanedHistory(t *testing.T) {
	s := openTestStore(t)
	nc := names.NewCache()
	nc.Set("a", names.Data{Value: []byte("1")})
	h := &names.History{}
	h.Push(names.Data{Value: []byte("0")})
	nc.SetHistory("a", h)
	s.BatchWrite(view.CoinDelta{}, util.HashZero, nc)
	assert.True(t, s.ValidateNameDB())

	// BatchWrite always keeps a name's history key in lockstep with its name
	// key, so an orphan can only arise from a history record written without
	// a matching name record; inject one directly below the public API.
	var buf bytes.Buffer
	require.NoError(t, names.EncodeHistory(&buf, h))
	require.NoError(t, s.dbw.write(historyKey("orphan"), buf.Bytes(), false))
	assert.False(t, s.ValidateNameDB(), "history with no matching name must fail validation")
}
