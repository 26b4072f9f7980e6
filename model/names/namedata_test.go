package names

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDataEncodeDecodeRoundTrip(t *testing.T) {
	d := Data{Value: []byte("namecoin"), Height: 12345}
	var buf bytes.Buffer
	assert.NoError(t, d.Encode(&buf))

	got, err := DecodeData(&buf)
	assert.NoError(t, err)
	assert.Equal(t, d, got)
}

func TestHistoryEncodeDecodeRoundTrip(t *testing.T) {
	h := &History{}
	h.Push(Data{Value: []byte("v1"), Height: 1})
	h.Push(Data{Value: []byte("v2"), Height: 2})

	var buf bytes.Buffer
	assert.NoError(t, EncodeHistory(&buf, h))

	got, err := DecodeHistory(&buf)
	assert.NoError(t, err)
	assert.Equal(t, 2, len(got.entries))
	assert.True(t, got.entries[0].Equal(Data{Value: []byte("v1"), Height: 1}))
}

func TestEncodeHistoryNilWritesZero(t *testing.T) {
	var buf bytes.Buffer
	assert.NoError(t, EncodeHistory(&buf, nil))
	got, err := DecodeHistory(&buf)
	assert.NoError(t, err)
	assert.True(t, got.Empty())
}

func TestDataEqual(t *testing.T) {
	a := Data{Value: []byte("x"), Height: 1}
	b := Data{Value: []byte("x"), Height: 1}
	c := Data{Value: []byte("y"), Height: 1}
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}
