// Package conf holds the cache's startup configuration: CLI flags parsed
// with github.com/jessevdk/go-flags (matching the teacher's conf/opts.go)
// layered over a YAML file read with github.com/spf13/viper (matching
// conf/init.go), resolving to a chainparams.Bundle and store.Options the
// rest of the program can use directly.
package conf

import (
	"fmt"
	"os"

	"github.com/jessevdk/go-flags"
)

// Opts is the flag surface cmd/namecached accepts, grounded on the
// teacher's conf/opts.go Opts struct, narrowed to this cache's own
// concerns (network selection, name-history toggle, cache sizing) in
// place of the teacher's P2P/relay-policy flags.
type Opts struct {
	DataDir     string `long:"datadir" description:"data directory for the leveldb chainstate"`
	ConfigFile  string `long:"conf" description:"path to a YAML config file layered under these flags"`
	TestNet     bool   `long:"testnet" description:"use the test network"`
	RegTest     bool   `long:"regtest" description:"use a local regression-test network"`
	NameHistory bool   `long:"namehistory" description:"maintain per-name history stacks"`
	DBCacheSize int    `long:"dbcachesize" default:"67108864" description:"leveldb block cache + write buffer size, in bytes"`
	LRUSize     int    `long:"lrusize" default:"100000" description:"number of coin records kept in the LRU read accelerant"`
	LogLevel    string `long:"loglevel" default:"info" description:"log level: emergency, alert, critical, error, warn, notice, info, debug"`
}

// ParseArgs parses args (typically os.Args[1:]) into Opts.
func ParseArgs(args []string) (*Opts, error) {
	opts := &Opts{}
	_, err := flags.ParseArgs(opts, args)
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		return nil, err
	}
	return opts, nil
}

func (o *Opts) String() string {
	return fmt.Sprintf("datadir:%s testnet:%v regtest:%v namehistory:%v",
		o.DataDir, o.TestNet, o.RegTest, o.NameHistory)
}

// Network resolves the selected network name from the TestNet/RegTest
// flags, defaulting to "main". RegTest and TestNet are mutually
// exclusive; RegTest wins if both are somehow set, matching the
// teacher's own flag precedence in conf/opts.go.
func (o *Opts) Network() string {
	switch {
	case o.RegTest:
		return "regtest"
	case o.TestNet:
		return "test"
	default:
		return "main"
	}
}
