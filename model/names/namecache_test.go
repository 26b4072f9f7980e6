package names

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetGetRemove(t *testing.T) {
	c := NewCache()
	assert.True(t, c.Empty())

	c.Set("d/example", Data{Value: []byte("v1"), Height: 10})
	d, ok := c.Get("d/example")
	assert.True(t, ok)
	assert.Equal(t, int32(10), d.Height)
	assert.False(t, c.IsDeleted("d/example"))

	c.Remove("d/example")
	assert.True(t, c.IsDeleted("d/example"))
	_, ok = c.Get("d/example")
	assert.False(t, ok)
}

func TestHistoryPushPopRoundTrip(t *testing.T) {
	h := &History{}
	assert.True(t, h.Empty())

	d1 := Data{Value: []byte("first"), Height: 1}
	h.Push(d1)
	assert.False(t, h.Empty())

	got, ok := h.Pop(d1)
	assert.True(t, ok)
	assert.Equal(t, d1, got)
	assert.True(t, h.Empty())
}

func TestHistoryPopMismatchFails(t *testing.T) {
	h := &History{}
	h.Push(Data{Value: []byte("a"), Height: 1})
	_, ok := h.Pop(Data{Value: []byte("b"), Height: 1})
	assert.False(t, ok)
}

func TestHistoryCloneIsIndependent(t *testing.T) {
	h := &History{}
	h.Push(Data{Value: []byte("a"), Height: 1})
	clone := h.Clone()
	clone.Push(Data{Value: []byte("b"), Height: 2})
	assert.Equal(t, 1, len(h.entries))
	assert.Equal(t, 2, len(clone.entries))
}

type fixedIterator struct {
	names []string
	data  []Data
	pos   int
}

func (it *fixedIterator) Next() (string, Data, bool) {
	if it.pos >= len(it.names) {
		return "", Data{}, false
	}
	n, d := it.names[it.pos], it.data[it.pos]
	it.pos++
	return n, d, true
}

func TestIterateNamesMergesCacheAndBase(t *testing.T) {
	c := NewCache()
	c.Set("b", Data{Value: []byte("from-cache"), Height: 1})
	c.Remove("d")

	base := &fixedIterator{
		names: []string{"a", "b", "d", "e"},
		data: []Data{
			{Value: []byte("base-a")},
			{Value: []byte("base-b")},
			{Value: []byte("base-d")},
			{Value: []byte("base-e")},
		},
	}

	it := c.IterateNames(base)
	var got []string
	for {
		name, _, ok := it.Next()
		if !ok {
			break
		}
		got = append(got, name)
	}
	// "d" is deleted in the cache and must not appear; "b" comes from the
	// cache (its value differs from base, proving the cache won).
	assert.Equal(t, []string{"a", "b", "e"}, got)
}

func TestIterateNamesCacheWinsOnOverlap(t *testing.T) {
	c := NewCache()
	c.Set("m", Data{Value: []byte("cache-value"), Height: 5})

	base := &fixedIterator{names: []string{"m"}, data: []Data{{Value: []byte("base-value"), Height: 1}}}
	it := c.IterateNames(base)
	name, d, ok := it.Next()
	assert.True(t, ok)
	assert.Equal(t, "m", name)
	assert.Equal(t, []byte("cache-value"), d.Value)

	_, _, ok = it.Next()
	assert.False(t, ok)
}

func TestExpireIndexAddRemove(t *testing.T) {
	c := NewCache()
	c.AddExpireIndex("n1", 100)
	base := map[string]bool{}
	c.UpdateNamesForHeight(100, base)
	assert.True(t, base["n1"])

	c.RemoveExpireIndex("n1", 100)
	base2 := map[string]bool{"n1": true}
	c.UpdateNamesForHeight(100, base2)
	assert.False(t, base2["n1"])
}

func TestApplyMergesChildDelta(t *testing.T) {
	parent := NewCache()
	child := NewCache()
	child.Set("x", Data{Value: []byte("v"), Height: 1})
	child.AddExpireIndex("x", 1)

	parent.Apply(child)
	d, ok := parent.Get("x")
	assert.True(t, ok)
	assert.Equal(t, []byte("v"), d.Value)

	changes := parent.ExpireIndexChanges()
	assert.Contains(t, changes[1].Added, "x")
}

func TestChangedNamesReflectsSetAndRemove(t *testing.T) {
	c := NewCache()
	c.Set("a", Data{Value: []byte("1"), Height: 1})
	c.Remove("b")

	changes := c.ChangedNames()
	assert.False(t, changes["a"].Deleted)
	assert.True(t, changes["b"].Deleted)
}

func TestClearEmptiesCache(t *testing.T) {
	c := NewCache()
	c.Set("a", Data{Value: []byte("1")})
	c.AddExpireIndex("a", 1)
	c.Clear()
	assert.True(t, c.Empty())
}
