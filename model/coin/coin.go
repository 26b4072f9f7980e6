// Package coin implements the per-transaction unspent-output record (the
// Namecoin/Bitcoin-Core CCoins type): a coinbase flag, creation height, tx
// version, and a slice of possibly-null outputs with a tail-trim invariant.
// Grounded directly on src/coins.cpp's CCoins::Spend/CalcMaskSize from
// original_source, adapted to Go slices instead of a null-padded C++ vector.
package coin

import (
	"io"

	"github.com/josephbisch/deb-namecoin-core/model/txout"
	"github.com/josephbisch/deb-namecoin-core/util"
)

// TxInUndo captures everything needed to restore one spent output: the
// output itself, and — only when the spend emptied the record entirely —
// the record's coinbase/height/version metadata (invariant P in SPEC_FULL).
type TxInUndo struct {
	TxOut      txout.TxOut
	HasMeta    bool
	Height     int32
	IsCoinBase bool
	Version    int32
}

// Coins is the still-unspent output set of one transaction.
type Coins struct {
	IsCoinBase bool
	Height     int32
	Version    int32
	Outputs    []*txout.TxOut // nil entry == spent/absent output
}

// New wraps the outputs of a freshly-confirmed transaction.
func New(outputs []*txout.TxOut, height int32, isCoinBase bool, version int32) *Coins {
	return &Coins{
		IsCoinBase: isCoinBase,
		Height:     height,
		Version:    version,
		Outputs:    outputs,
	}
}

// IsAvailable reports whether output i exists and has not been spent.
func (c *Coins) IsAvailable(i int) bool {
	return i >= 0 && i < len(c.Outputs) && c.Outputs[i] != nil
}

// IsPruned reports whether every output has been spent, i.e. this record
// carries no more information and may be removed from storage.
func (c *Coins) IsPruned() bool {
	return len(c.Outputs) == 0
}

// cleanup re-establishes the tail-trim invariant: Outputs has no trailing
// nil entries after a Spend.
func (c *Coins) cleanup() {
	n := len(c.Outputs)
	for n > 0 && c.Outputs[n-1] == nil {
		n--
	}
	c.Outputs = c.Outputs[:n]
}

// Trim re-applies the tail-trim invariant; exported so a cache view's
// modifier can re-establish it unconditionally on release, even when the
// caller mutated Outputs directly rather than through Spend.
func (c *Coins) Trim() {
	c.cleanup()
}

// Spend removes output i. If undo is non-nil, the removed output (and, if
// the record becomes pruned as a result, the coinbase/height/version
// metadata) is captured there so a reorg can reconstruct the record later.
func (c *Coins) Spend(i int, undo *TxInUndo) bool {
	if !c.IsAvailable(i) {
		return false
	}
	if undo != nil {
		undo.TxOut = *c.Outputs[i]
	}
	c.Outputs[i] = nil
	c.cleanup()
	if undo != nil && c.IsPruned() {
		undo.HasMeta = true
		undo.Height = c.Height
		undo.IsCoinBase = c.IsCoinBase
		undo.Version = c.Version
	}
	return true
}

// CalcMaskSize is the accounting for the compact on-wire form: outputs 0
// and 1 are encoded separately, the rest are covered by a bitmask. It
// returns the mask length truncated to its last nonzero byte and the count
// of nonzero bytes within, matching CCoins::CalcMaskSize exactly.
func (c *Coins) CalcMaskSize() (nBytes, nNonzeroBytes uint32) {
	lastUsedByte := uint32(0)
	for b := 0; 2+b*8 < len(c.Outputs); b++ {
		isZero := true
		for i := 0; i < 8 && 2+b*8+i < len(c.Outputs); i++ {
			if c.Outputs[2+b*8+i] != nil {
				isZero = false
			}
		}
		if !isZero {
			lastUsedByte = uint32(b) + 1
			nNonzeroBytes++
		}
	}
	nBytes += lastUsedByte
	return
}

// DeepCopy returns an independent record sharing no slice backing with c.
func (c *Coins) DeepCopy() *Coins {
	out := &Coins{IsCoinBase: c.IsCoinBase, Height: c.Height, Version: c.Version}
	out.Outputs = make([]*txout.TxOut, len(c.Outputs))
	for i, o := range c.Outputs {
		if o == nil {
			continue
		}
		cp := *o
		out.Outputs[i] = &cp
	}
	return out
}

// Encode writes the on-disk form of c: version, a height/coinbase code,
// a presence bitmap, and the available outputs in order. Unlike
// CCoins::Serialize this does not fold the first two outputs' presence
// into the header code — the store this backs is this module's own, not
// an on-wire format other nodes must parse — but it keeps the same shape:
// a version, a combined height/coinbase field, then a compact bitmap
// before the output bodies.
func (c *Coins) Encode(w io.Writer) error {
	if err := util.WriteVarInt(w, uint64(c.Version)); err != nil {
		return err
	}
	code := uint64(c.Height) << 1
	if c.IsCoinBase {
		code |= 1
	}
	if err := util.WriteVarInt(w, code); err != nil {
		return err
	}
	if err := util.WriteVarInt(w, uint64(len(c.Outputs))); err != nil {
		return err
	}
	nBytes := (len(c.Outputs) + 7) / 8
	for b := 0; b < nBytes; b++ {
		var avail byte
		for i := 0; i < 8 && b*8+i < len(c.Outputs); i++ {
			if c.Outputs[b*8+i] != nil {
				avail |= 1 << uint(i)
			}
		}
		if err := util.BinarySerializer.PutUint8(w, avail); err != nil {
			return err
		}
	}
	for _, o := range c.Outputs {
		if o == nil {
			continue
		}
		if err := o.Encode(w); err != nil {
			return err
		}
	}
	return nil
}

// Decode is Encode's inverse.
func (c *Coins) Decode(r io.Reader) error {
	version, err := util.ReadVarInt(r)
	if err != nil {
		return err
	}
	c.Version = int32(version)

	code, err := util.ReadVarInt(r)
	if err != nil {
		return err
	}
	c.IsCoinBase = code&1 != 0
	c.Height = int32(code >> 1)

	count, err := util.ReadVarInt(r)
	if err != nil {
		return err
	}
	n := int(count)
	nBytes := (n + 7) / 8
	mask := make([]byte, nBytes)
	for b := 0; b < nBytes; b++ {
		avail, err := util.BinarySerializer.Uint8(r)
		if err != nil {
			return err
		}
		mask[b] = avail
	}

	c.Outputs = make([]*txout.TxOut, n)
	for i := 0; i < n; i++ {
		if mask[i/8]&(1<<uint(i%8)) == 0 {
			continue
		}
		o := &txout.TxOut{}
		if err := o.Decode(r); err != nil {
			return err
		}
		c.Outputs[i] = o
	}
	return nil
}

// DynamicMemoryUsage is a rough accounting of the bytes this record holds,
// used by the cache view to track cachedCoinsUsage for eviction decisions.
func (c *Coins) DynamicMemoryUsage() int64 {
	usage := int64(16 + 8*len(c.Outputs))
	for _, o := range c.Outputs {
		if o == nil {
			continue
		}
		usage += 8
		if o.ScriptPubKey != nil {
			usage += int64(o.ScriptPubKey.Size())
		}
	}
	return usage
}
