// Package chainparams selects the active Params+Rules+HistoricBugTable
// bundle for a network, mirroring the Main/Test/RegTest selection in the
// teacher's model/chainparams/bitcoinparams.go (BitcoinParams / ActiveNetParams).
package chainparams

import (
	"math/big"
	"time"

	"github.com/josephbisch/deb-namecoin-core/model/consensus"
	"github.com/josephbisch/deb-namecoin-core/util"
)

var (
	bigOne       = big.NewInt(1)
	mainPowLimit = new(big.Int).Sub(new(big.Int).Lsh(bigOne, 224), bigOne)
	testPowLimit = new(big.Int).Sub(new(big.Int).Lsh(bigOne, 224), bigOne)
	regPowLimit  = new(big.Int).Sub(new(big.Int).Lsh(bigOne, 255), bigOne)
)

// Bundle pairs a network's consensus Params with its historic-bug table —
// the Design Notes place the table "alongside the per-network rules
// object rather than inside the cache".
type Bundle struct {
	Params       *consensus.Params
	HistoricBugs consensus.HistoricBugTable
}

var MainNetParams = Bundle{
	Params: &consensus.Params{
		Name: "main",
		// GenesisHash is left zero here: constructing and hashing the actual
		// genesis block is block-assembly work the cache deliberately has no
		// part in (see Non-goals); a host process fills this in once it has
		// built the genesis block.
		GenesisHash:                 util.HashZero,
		SubsidyHalvingInterval:      210000,
		MajorityEnforceBlockUpgrade: 750,
		MajorityRejectBlockOutdated: 950,
		MajorityWindow:              1000,
		PowLimit:                    mainPowLimit,
		PowAllowMinDifficulty:       false,
		PowTargetSpacing:            10 * time.Minute,
		PowTargetTimespan:           14 * 24 * time.Hour,
		AuxpowChainID:               0x0001,
		AuxpowStartHeight:           19200,
		StrictChainID:               true,
		LegacyBlocksBefore:          19200,
		Rules:                       consensus.MainNetRules{},
		NameHistoryEnabled:          false,
	},
	HistoricBugs: consensus.MainNetHistoricBugs,
}

var TestNetParams = Bundle{
	Params: &consensus.Params{
		Name:                        "test",
		GenesisHash:                 util.HashZero,
		SubsidyHalvingInterval:      210000,
		MajorityEnforceBlockUpgrade: 51,
		MajorityRejectBlockOutdated: 75,
		MajorityWindow:              100,
		PowLimit:                    testPowLimit,
		PowAllowMinDifficulty:       true,
		MinDifficultySince:          0,
		PowTargetSpacing:            10 * time.Minute,
		PowTargetTimespan:           14 * 24 * time.Hour,
		AuxpowChainID:               0x0001,
		AuxpowStartHeight:           0,
		StrictChainID:               false,
		LegacyBlocksBefore:          -1,
		Rules:                       consensus.TestNetRules{},
		NameHistoryEnabled:          true,
	},
	HistoricBugs: consensus.TestNetHistoricBugs,
}

var RegTestParams = Bundle{
	Params: &consensus.Params{
		Name:                        "regtest",
		GenesisHash:                 util.HashZero,
		SubsidyHalvingInterval:      150,
		MajorityEnforceBlockUpgrade: 750,
		MajorityRejectBlockOutdated: 950,
		MajorityWindow:              1000,
		PowLimit:                    regPowLimit,
		PowAllowMinDifficulty:       true,
		MinDifficultySince:          0,
		PowTargetSpacing:            10 * time.Minute,
		PowTargetTimespan:           14 * 24 * time.Hour,
		AuxpowChainID:               0x0001,
		AuxpowStartHeight:           0,
		StrictChainID:               false,
		LegacyBlocksBefore:          -1,
		Rules:                       consensus.RegTestRules{},
		NameHistoryEnabled:          true,
	},
	HistoricBugs: consensus.RegTestHistoricBugs,
}

// ByName resolves a network name ("main", "test", "regtest") to its
// Bundle, for conf to select at startup.
func ByName(name string) (Bundle, bool) {
	switch name {
	case "main":
		return MainNetParams, true
	case "test", "testnet":
		return TestNetParams, true
	case "regtest":
		return RegTestParams, true
	default:
		return Bundle{}, false
	}
}
