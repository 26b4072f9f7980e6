// Package script carries just enough of a locking script to support the
// coin cache: the raw bytes and an unspendable-output test (an OP_RETURN
// prefix or an oversized script). Script
// parsing and verification are out of scope for the cache and live with the
// validator instead.
package script

import (
	"io"

	"github.com/josephbisch/deb-namecoin-core/util"
)

// OpReturn marks a provably-unspendable output; kept here rather than in a
// full opcode table since it is the only opcode the cache cares about.
const OpReturn = 0x6a

const MaxScriptSize = 10000

type Script struct {
	data []byte
}

func NewScriptRaw(data []byte) *Script {
	return &Script{data: data}
}

func NewEmptyScript() *Script {
	return &Script{}
}

func (s *Script) GetData() []byte {
	return s.data
}

func (s *Script) Size() int {
	if s == nil {
		return 0
	}
	return len(s.data)
}

// IsUnspendable mirrors CScript::IsUnspendable: an OP_RETURN-prefixed script,
// or one too large to ever be relayed/spent.
func (s *Script) IsUnspendable() bool {
	if s == nil {
		return true
	}
	return (s.Size() > 0 && s.data[0] == OpReturn) || s.Size() > MaxScriptSize
}

func (s *Script) EncodeSize() uint32 {
	return uint32(util.VarIntSerializeSize(uint64(len(s.data)))) + uint32(len(s.data))
}

func (s *Script) Encode(w io.Writer) error {
	return util.WriteVarBytes(w, s.data)
}

func (s *Script) Decode(r io.Reader) error {
	b, err := util.ReadVarBytes(r, MaxScriptSize, "scriptPubKey")
	if err != nil {
		return err
	}
	s.data = b
	return nil
}
