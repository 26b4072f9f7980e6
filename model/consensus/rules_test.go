package consensus

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/josephbisch/deb-namecoin-core/util"
)

func TestMainNetExpirationDepthMonotonic(t *testing.T) {
	r := MainNetRules{}
	var prev int32 = math.MinInt32
	for h := int32(0); h < 60000; h += 1000 {
		cur := h - r.NameExpirationDepth(h)
		assert.GreaterOrEqual(t, cur, prev, "h - depth(h) must be non-decreasing at height %d", h)
		prev = cur
	}
}

func TestMainNetMinNameCoinAmount(t *testing.T) {
	r := MainNetRules{}
	assert.Equal(t, util.Amount(0), r.MinNameCoinAmount(1))
	assert.Equal(t, util.Amount(util.Coin/100), r.MinNameCoinAmount(300000))
}

func TestTestNetAlwaysRequiresMinAmount(t *testing.T) {
	r := TestNetRules{}
	assert.Equal(t, util.Amount(util.Coin/100), r.MinNameCoinAmount(0))
}

func TestRegTestShortExpiration(t *testing.T) {
	r := RegTestRules{}
	assert.Equal(t, int32(30), r.NameExpirationDepth(100))
}

func TestParamsDifficultyAdjustmentInterval(t *testing.T) {
	p := &Params{
		PowTargetTimespan: 14 * 24 * time.Hour,
		PowTargetSpacing:  10 * time.Minute,
	}
	assert.Equal(t, int64(2016), p.DifficultyAdjustmentInterval())
}

func TestAllowLegacyBlocksNegativeSentinel(t *testing.T) {
	p := &Params{LegacyBlocksBefore: -1}
	assert.True(t, p.AllowLegacyBlocks(1_000_000))
}

func TestAllowLegacyBlocksBeforeThreshold(t *testing.T) {
	p := &Params{LegacyBlocksBefore: 100}
	assert.True(t, p.AllowLegacyBlocks(50))
	assert.False(t, p.AllowLegacyBlocks(150))
}

func TestAllowMinDifficultyBlocks(t *testing.T) {
	p := &Params{PowAllowMinDifficulty: false}
	assert.False(t, p.AllowMinDifficultyBlocks(1000))

	p2 := &Params{PowAllowMinDifficulty: true, MinDifficultySince: 500}
	assert.True(t, p2.AllowMinDifficultyBlocks(1000))
	assert.False(t, p2.AllowMinDifficultyBlocks(100))
}
