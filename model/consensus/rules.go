// Package consensus holds the cache's consensus-adjacent, functionally
// pure dependencies: name-expiration depth, minimum name-locked amount,
// the wider per-network parameter set, and the historic-bug exception
// table. Grounded on src/consensus/params.h (original_source)'s
// ConsensusRules/MainNetConsensus/TestNetConsensus/RegTestConsensus
// hierarchy, adapted from C++ virtual inheritance to a small Go interface
// plus value receivers — SPEC_FULL's resolution of the "name history
// toggle" open question also lives here, as a field on Params rather than
// a process-wide global.
package consensus

import (
	"math/big"
	"time"

	"github.com/josephbisch/deb-namecoin-core/util"
)

// Rules exposes the height-parameterised behaviour that can't be expressed
// as a flat constant.
type Rules interface {
	// NameExpirationDepth returns the expiration depth for names at the
	// given height. Monotonicity invariant: h - NameExpirationDepth(h) is
	// non-decreasing in h (relied on by expiration processing).
	NameExpirationDepth(height int32) int32
	// MinNameCoinAmount returns the minimum amount that must be locked in
	// a name output at the given height.
	MinNameCoinAmount(height int32) util.Amount
}

// MainNetRules implements Rules for the main network.
type MainNetRules struct{}

func (MainNetRules) NameExpirationDepth(height int32) int32 {
	// It is assumed (in name-expiration processing) that
	// "height - NameExpirationDepth(height)" is increasing.
	if height < 24000 {
		return 12000
	}
	if height < 48000 {
		return height - 12000
	}
	return 36000
}

func (MainNetRules) MinNameCoinAmount(height int32) util.Amount {
	if height < 212500 {
		return 0
	}
	return util.Coin / 100
}

// TestNetRules inherits MainNet's expiration depth but always requires the
// post-212500 minimum name-coin amount.
type TestNetRules struct {
	MainNetRules
}

func (TestNetRules) MinNameCoinAmount(int32) util.Amount {
	return util.Coin / 100
}

// RegTestRules inherits TestNet's minimum amount but uses a short, fixed
// expiration depth suitable for fast local test chains.
type RegTestRules struct {
	TestNetRules
}

func (RegTestRules) NameExpirationDepth(int32) int32 {
	return 30
}

// BIP9-style deployment position, carried from the teacher's
// model/consensus/param.go for the majority/versionbits surface that
// Params still exposes even though the cache itself never reads it.
type DeploymentPos int

type Deployment struct {
	Bit       int
	StartTime int64
	Timeout   int64
}

// Params is the per-network parameter bundle: genesis identity, subsidy
// schedule, majority-voting thresholds, proof-of-work parameters, auxpow
// parameters, and the active Rules implementation plus the name-history
// toggle. Grounded on Consensus::Params in src/consensus/params.h, folded
// together with the teacher's Go-side Param struct in
// model/consensus/param.go.
type Params struct {
	Name string

	GenesisHash            util.Hash
	SubsidyHalvingInterval int

	MajorityEnforceBlockUpgrade int
	MajorityRejectBlockOutdated int
	MajorityWindow              int

	PowLimit                  *big.Int
	PowAllowMinDifficulty     bool
	MinDifficultySince        int64
	PowTargetSpacing          time.Duration
	PowTargetTimespan         time.Duration

	AuxpowChainID       int32
	AuxpowStartHeight   int32
	StrictChainID       bool
	LegacyBlocksBefore  int32 // negative sentinel: always allow legacy blocks

	Rules Rules

	// NameHistoryEnabled governs whether CacheView maintains per-name
	// history stacks. SPEC_FULL moves this off the process-wide global the
	// original used (fNameHistory) and onto the consensus parameters so
	// tests can vary it without mutating shared state.
	NameHistoryEnabled bool
}

// DifficultyAdjustmentInterval is nPowTargetTimespan / nPowTargetSpacing.
func (p *Params) DifficultyAdjustmentInterval() int64 {
	return int64(p.PowTargetTimespan / p.PowTargetSpacing)
}

// AllowMinDifficultyBlocks reports whether a minimum-difficulty block is
// permitted at blockTime.
func (p *Params) AllowMinDifficultyBlocks(blockTime int64) bool {
	if !p.PowAllowMinDifficulty {
		return false
	}
	return blockTime > p.MinDifficultySince
}

// AllowLegacyBlocks reports whether a legacy (non-auxpow) block version is
// permitted at height.
func (p *Params) AllowLegacyBlocks(height int32) bool {
	if p.LegacyBlocksBefore < 0 {
		return true
	}
	return height < p.LegacyBlocksBefore
}
