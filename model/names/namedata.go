// Package names models the registered-name side of the chainstate cache:
// current data records, their history stacks, and the expiration-height
// index. Grounded on the CNameData/CNameHistory/CNameCache usage visible in
// src/coins.cpp (original_source) — the concrete name types were not part
// of the retrieved C++ sources, so their shape here follows the spec's data
// model (payload + creation height) directly.
package names

import (
	"bytes"
	"io"

	"github.com/josephbisch/deb-namecoin-core/util"
)

// Data is a name's current payload: the registered value and the block
// height at which that registration took effect (used to compute expiry).
type Data struct {
	Value  []byte
	Height int32
}

func (d Data) Equal(other Data) bool {
	return d.Height == other.Height && bytes.Equal(d.Value, other.Value)
}

// Encode/Decode give Data an on-disk form for the name store, mirroring
// the coin record's varint-length-prefixed style.
func (d Data) Encode(w io.Writer) error {
	if err := util.WriteVarInt(w, uint64(uint32(d.Height))); err != nil {
		return err
	}
	return util.WriteVarBytes(w, d.Value)
}

func DecodeData(r io.Reader) (Data, error) {
	height, err := util.ReadVarInt(r)
	if err != nil {
		return Data{}, err
	}
	value, err := util.ReadVarBytes(r, 1<<20, "nameValue")
	if err != nil {
		return Data{}, err
	}
	return Data{Value: value, Height: int32(height)}, nil
}

// EncodeHistory/DecodeHistory serialize a History stack oldest-first.
func EncodeHistory(w io.Writer, h *History) error {
	if h == nil {
		return util.WriteVarInt(w, 0)
	}
	if err := util.WriteVarInt(w, uint64(len(h.entries))); err != nil {
		return err
	}
	for _, d := range h.entries {
		if err := d.Encode(w); err != nil {
			return err
		}
	}
	return nil
}

func DecodeHistory(r io.Reader) (*History, error) {
	count, err := util.ReadVarInt(r)
	if err != nil {
		return nil, err
	}
	h := &History{entries: make([]Data, 0, count)}
	for i := uint64(0); i < count; i++ {
		d, err := DecodeData(r)
		if err != nil {
			return nil, err
		}
		h.entries = append(h.entries, d)
	}
	return h, nil
}

// History is a stack of prior Data records for one name, used to replay a
// name's past values across a reorg. Push happens going forward in time;
// Pop happens when undoing.
type History struct {
	entries []Data
}

func (h *History) Empty() bool {
	return h == nil || len(h.entries) == 0
}

func (h *History) Push(d Data) {
	h.entries = append(h.entries, d)
}

// Pop removes and returns the top entry, which must equal expect — undoing
// a SetName is only valid if the history top really is the data being
// restored (SPEC_FULL's resolution of the open question in coins.cpp, which
// only asserted this in the original).
func (h *History) Pop(expect Data) (Data, bool) {
	if h.Empty() {
		return Data{}, false
	}
	top := h.entries[len(h.entries)-1]
	if !top.Equal(expect) {
		return Data{}, false
	}
	h.entries = h.entries[:len(h.entries)-1]
	return top, true
}

func (h *History) Clone() *History {
	if h == nil {
		return &History{}
	}
	out := &History{entries: make([]Data, len(h.entries))}
	copy(out.entries, h.entries)
	return out
}
