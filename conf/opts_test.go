package conf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseArgsDefaults(t *testing.T) {
	opts, err := ParseArgs([]string{"--datadir=/tmp/chainstate"})
	assert.NoError(t, err)
	assert.Equal(t, "/tmp/chainstate", opts.DataDir)
	assert.Equal(t, "main", opts.Network())
	assert.Equal(t, 67108864, opts.DBCacheSize)
}

func TestNetworkPrecedence(t *testing.T) {
	opts := &Opts{TestNet: true, RegTest: true}
	assert.Equal(t, "regtest", opts.Network())

	opts = &Opts{TestNet: true}
	assert.Equal(t, "test", opts.Network())

	opts = &Opts{}
	assert.Equal(t, "main", opts.Network())
}

func TestChainParamsResolvesBundle(t *testing.T) {
	opts := &Opts{RegTest: true}
	bundle, err := opts.ChainParams()
	assert.NoError(t, err)
	assert.Equal(t, "regtest", bundle.Params.Name)
}
