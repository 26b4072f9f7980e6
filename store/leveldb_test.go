package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestXorIsItsOwnInverse(t *testing.T) {
	key := []byte{1, 2, 3}
	val := []byte("hello world")
	orig := append([]byte(nil), val...)

	xor(val, key)
	assert.NotEqual(t, orig, val)
	xor(val, key)
	assert.Equal(t, orig, val)
}

func TestXorNoopOnEmptyKey(t *testing.T) {
	val := []byte("unchanged")
	orig := append([]byte(nil), val...)
	xor(val, nil)
	assert.Equal(t, orig, val)
}

func TestGenObfuscateKeyProducesFullLengthDistinctKeys(t *testing.T) {
	a := genObfuscateKey()
	b := genObfuscateKey()
	assert.Equal(t, obfuscateKeyLen, len(a))
	assert.NotEqual(t, a, b, "two keys drawn from crypto/rand should not collide")
}

func TestOpenDBWrapperPersistsObfuscationKeyAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	dbw, err := openDBWrapper(Options{Path: dir})
	require.NoError(t, err)
	key := dbw.obfuscateKey
	assert.Equal(t, obfuscateKeyLen, len(key))
	dbw.close()

	dbw2, err := openDBWrapper(Options{Path: dir})
	require.NoError(t, err)
	defer dbw2.close()
	assert.Equal(t, key, dbw2.obfuscateKey)
}

func TestDontObfuscateLeavesKeyNil(t *testing.T) {
	dbw, err := openDBWrapper(Options{Path: t.TempDir(), DontObfuscate: true})
	require.NoError(t, err)
	defer dbw.close()
	assert.Nil(t, dbw.obfuscateKey)
}

func TestWriteReadRoundTripsThroughObfuscation(t *testing.T) {
	dbw, err := openDBWrapper(Options{Path: t.TempDir()})
	require.NoError(t, err)
	defer dbw.close()

	require.NoError(t, dbw.write([]byte("k"), []byte("value"), false))
	got, err := dbw.read([]byte("k"))
	require.NoError(t, err)
	assert.Equal(t, []byte("value"), got)
}

func TestEraseRemovesKey(t *testing.T) {
	dbw, err := openDBWrapper(Options{Path: t.TempDir()})
	require.NoError(t, err)
	defer dbw.close()

	require.NoError(t, dbw.write([]byte("k"), []byte("v"), false))
	require.NoError(t, dbw.erase([]byte("k"), false))
	_, err = dbw.read([]byte("k"))
	assert.Error(t, err)
}

func TestIsEmptyReflectsWrites(t *testing.T) {
	dbw, err := openDBWrapper(Options{Path: t.TempDir()})
	require.NoError(t, err)
	defer dbw.close()

	// The obfuscation key itself was just persisted, so a freshly opened
	// store is never reported empty once key persistence has run.
	require.NoError(t, dbw.erase([]byte(obfuscateKeyKey), false))
	assert.True(t, dbw.isEmpty())

	require.NoError(t, dbw.write([]byte("k"), []byte("v"), false))
	assert.False(t, dbw.isEmpty())
}

func TestIterateRangeRespectsPrefix(t *testing.T) {
	dbw, err := openDBWrapper(Options{Path: t.TempDir()})
	require.NoError(t, err)
	defer dbw.close()

	require.NoError(t, dbw.write([]byte("a1"), []byte("1"), false))
	require.NoError(t, dbw.write([]byte("a2"), []byte("2"), false))
	require.NoError(t, dbw.write([]byte("b1"), []byte("3"), false))

	it := dbw.iterateRange([]byte("a"))
	defer it.Release()
	count := 0
	for it.Next() {
		count++
	}
	assert.Equal(t, 2, count)
}

func TestWipeRemovesAllExistingFiles(t *testing.T) {
	dir := t.TempDir()
	dbw, err := openDBWrapper(Options{Path: dir})
	require.NoError(t, err)
	require.NoError(t, dbw.write([]byte("k"), []byte("v"), false))
	dbw.close()

	dbw2, err := openDBWrapper(Options{Path: dir, Wipe: true})
	require.NoError(t, err)
	defer dbw2.close()

	_, err = dbw2.read([]byte("k"))
	assert.Error(t, err, "a wiped store must not retain prior keys")
}
