package conf

import (
	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/josephbisch/deb-namecoin-core/model/chainparams"
	"github.com/josephbisch/deb-namecoin-core/store"
)

// FileConfig is the subset of Opts a YAML file (read via viper, matching
// conf/init.go) can also supply. LoadFile applies it after the flags are
// parsed: datadir, dbcachesize and lrusize only fill fields that are still
// zero (the last two have non-zero flag defaults, so ParseArgs output keeps
// its values); network and namehistory can only switch a setting on; a
// non-empty loglevel replaces the flag's value.
type FileConfig struct {
	DataDir     string `mapstructure:"datadir"`
	Network     string `mapstructure:"network"`
	NameHistory bool   `mapstructure:"namehistory"`
	DBCacheSize int    `mapstructure:"dbcachesize"`
	LRUSize     int    `mapstructure:"lrusize"`
	LogLevel    string `mapstructure:"loglevel"`
}

// LoadFile reads a YAML config at path via viper and overlays it onto o —
// used for defaults a deployment wants to set once rather than repeat on
// every invocation's command line.
func LoadFile(o *Opts, path string) error {
	if path == "" {
		return nil
	}
	viper.SetConfigFile(path)
	viper.SetConfigType("yaml")
	if err := viper.ReadInConfig(); err != nil {
		return errors.Wrap(err, "conf: reading config file")
	}
	var fc FileConfig
	if err := viper.Unmarshal(&fc); err != nil {
		return errors.Wrap(err, "conf: parsing config file")
	}

	if o.DataDir == "" {
		o.DataDir = fc.DataDir
	}
	if fc.Network == "test" {
		o.TestNet = true
	}
	if fc.Network == "regtest" {
		o.RegTest = true
	}
	if fc.NameHistory {
		o.NameHistory = true
	}
	if o.DBCacheSize == 0 {
		o.DBCacheSize = fc.DBCacheSize
	}
	if o.LRUSize == 0 {
		o.LRUSize = fc.LRUSize
	}
	if fc.LogLevel != "" {
		o.LogLevel = fc.LogLevel
	}
	return nil
}

// ChainParams resolves o's selected network to its chainparams.Bundle.
func (o *Opts) ChainParams() (chainparams.Bundle, error) {
	bundle, ok := chainparams.ByName(o.Network())
	if !ok {
		return chainparams.Bundle{}, errors.Errorf("conf: unrecognized network %q", o.Network())
	}
	return bundle, nil
}

// StoreOptions builds the leveldb store.Options this configuration
// implies.
func (o *Opts) StoreOptions() store.Options {
	return store.Options{
		Path:      o.DataDir,
		CacheSize: o.DBCacheSize,
	}
}
