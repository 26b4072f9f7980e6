// Package txout holds the compact present-output record stored inside a
// coin entry: a value and a locking script. Grounded on the teacher's
// model/txout package, trimmed to the fields the coin cache actually reads.
package txout

import (
	"encoding/binary"
	"io"

	"github.com/josephbisch/deb-namecoin-core/model/script"
	"github.com/josephbisch/deb-namecoin-core/util"
)

type TxOut struct {
	Value        util.Amount
	ScriptPubKey *script.Script
}

func NewTxOut(value util.Amount, pubKey *script.Script) *TxOut {
	return &TxOut{Value: value, ScriptPubKey: pubKey}
}

func (out *TxOut) GetValue() util.Amount {
	return out.Value
}

func (out *TxOut) GetScriptPubKey() *script.Script {
	return out.ScriptPubKey
}

func (out *TxOut) EncodeSize() uint32 {
	return 8 + out.ScriptPubKey.EncodeSize()
}

func (out *TxOut) Encode(w io.Writer) error {
	if err := util.BinarySerializer.PutUint64(w, binary.LittleEndian, uint64(out.Value)); err != nil {
		return err
	}
	return out.ScriptPubKey.Encode(w)
}

func (out *TxOut) Decode(r io.Reader) error {
	v, err := util.BinarySerializer.Uint64(r, binary.LittleEndian)
	if err != nil {
		return err
	}
	out.Value = util.Amount(v)
	out.ScriptPubKey = script.NewEmptyScript()
	return out.ScriptPubKey.Decode(r)
}
