package coin

import "github.com/josephbisch/deb-namecoin-core/util"

// Outpoint names one output of one transaction: which coin record, and
// which slot inside its Outputs. Block/tx parsing lives with the
// validator; the cache only needs enough of a transaction's shape to
// resolve its inputs against the UTXO set.
type Outpoint struct {
	TxID  util.Hash
	Index int
}

// Input is the minimal shape of a transaction input the cache's helpers
// need: which prior output it spends.
type Input struct {
	PrevOut Outpoint
}

// InputSet is the minimal shape of a transaction the cache's helpers
// (GetOutputFor/GetValueIn/HaveInputs/GetPriority) need: whether it is a
// coinbase, its spent inputs, and its serialized size (used by the
// priority-compression function).
type InputSet struct {
	IsCoinBase     bool
	Inputs         []Input
	SerializedSize int
}

// ComputePriority mirrors CTransaction::ComputePriority: inputs' coin-age
// value is divided by the transaction's serialized size, with a small
// additive correction (currentPriority) carried over from any already-known
// partial computation.
func ComputePriority(inputAgeValueSum float64, serializedSize int, currentPriority float64) float64 {
	if serializedSize <= 0 {
		return currentPriority
	}
	return currentPriority + inputAgeValueSum/float64(serializedSize)
}
