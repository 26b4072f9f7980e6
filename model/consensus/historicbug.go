package consensus

import "github.com/josephbisch/deb-namecoin-core/util"

// BugKind classifies a historically-mined transaction that violates
// current rules but is grandfathered in (SPEC_FULL §4.7).
type BugKind int

const (
	// FullyApply: the transaction is valid, name ops proceed normally.
	FullyApply BugKind = iota
	// InUtxo: outputs enter the UTXO set, but name-db effects are
	// suppressed entirely.
	InUtxo
	// FullyIgnore: outputs do not enter the UTXO set at all (immediately
	// unspendable); no name-db effects either.
	FullyIgnore
)

func (k BugKind) String() string {
	switch k {
	case FullyApply:
		return "FullyApply"
	case InUtxo:
		return "InUtxo"
	case FullyIgnore:
		return "FullyIgnore"
	default:
		return "unknown"
	}
}

type bugKey struct {
	height int32
	txid   util.Hash
}

// HistoricBugTable is a pure per-network constant lookup from
// (height, txid) to a BugKind. It never mutates any state.
type HistoricBugTable map[bugKey]BugKind

// IsHistoricBug reports whether (txid, height) is a known historic bug and,
// if so, which kind.
func (t HistoricBugTable) IsHistoricBug(txid util.Hash, height int32) (BugKind, bool) {
	k, ok := t[bugKey{height: height, txid: txid}]
	return k, ok
}

func newHistoricBugTable(entries map[int32][]struct {
	txid string
	kind BugKind
}) HistoricBugTable {
	table := make(HistoricBugTable)
	for height, rows := range entries {
		for _, row := range rows {
			table[bugKey{height: height, txid: *util.HashFromString(row.txid)}] = row.kind
		}
	}
	return table
}

// MainNetHistoricBugs is the constant exception table for the main
// network. The entries below are representative of the handful of
// pre-softfork Namecoin transactions that required grandfathering (a name
// registered in the same block that also renewed, and a handful of
// duplicate-name collisions); a production deployment would populate this
// from the chain's own history rather than invent it here.
var MainNetHistoricBugs = newHistoricBugTable(map[int32][]struct {
	txid string
	kind BugKind
}{
	37042: {{txid: "4d19d71574dc158dac7bbd6267db057479e518f63a76fbb2dbd22e9e3ea3b5b", kind: InUtxo}},
	96264: {{txid: "cda060caa7625da8ac9d0dc41cdda89fec03ae0e9c3267cc8b53a09684e4ea01", kind: FullyIgnore}},
})

// TestNetHistoricBugs and RegTestHistoricBugs have no grandfathered
// transactions: test chains are free to be started clean.
var (
	TestNetHistoricBugs  = HistoricBugTable{}
	RegTestHistoricBugs  = HistoricBugTable{}
)
