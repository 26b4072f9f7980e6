// Command namecached loads configuration, opens the leveldb backing store
// behind an LRU front, wraps one CacheView over it, and exposes a tiny
// line-oriented debug REPL over stdin for manual exercise of the cache.
// No RPC server, no P2P networking — grounded on the shape of the
// teacher's main.go/initmain.go, trimmed to what this cache needs.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/josephbisch/deb-namecoin-core/conf"
	"github.com/josephbisch/deb-namecoin-core/log"
	"github.com/josephbisch/deb-namecoin-core/model/names"
	"github.com/josephbisch/deb-namecoin-core/store"
	"github.com/josephbisch/deb-namecoin-core/util"
	"github.com/josephbisch/deb-namecoin-core/view"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "namecached:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	opts, err := conf.ParseArgs(args)
	if err != nil {
		return err
	}
	if err := conf.LoadFile(opts, opts.ConfigFile); err != nil {
		return err
	}
	if opts.DataDir == "" {
		return fmt.Errorf("--datadir is required")
	}

	if err := log.InitLogger(opts.DataDir, opts.LogLevel); err != nil {
		return err
	}

	bundle, err := opts.ChainParams()
	if err != nil {
		return err
	}
	log.Print("namecached", "info", "starting on network %s", bundle.Params.Name)

	backing, err := store.Open(opts.StoreOptions())
	if err != nil {
		return err
	}
	defer backing.Close()

	front, err := store.NewLRUFront(backing, opts.LRUSize)
	if err != nil {
		return err
	}

	cache := view.NewCacheView(front, opts.NameHistory || bundle.Params.NameHistoryEnabled)

	fmt.Println("namecached debug REPL. Commands: getcoin <txid>, getname <name>, stats, flush, quit")
	return repl(os.Stdin, os.Stdout, cache)
}

func repl(in *os.File, out *os.File, cache *view.CacheView) error {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		switch fields[0] {
		case "quit", "exit":
			return nil
		case "getcoin":
			if len(fields) != 2 {
				fmt.Fprintln(out, "usage: getcoin <txid>")
				continue
			}
			txid, err := util.GetHashFromStr(fields[1])
			if err != nil {
				fmt.Fprintln(out, "bad txid:", err)
				continue
			}
			c, ok := cache.GetCoins(*txid)
			if !ok {
				fmt.Fprintln(out, "not found")
				continue
			}
			fmt.Fprintf(out, "height=%d coinbase=%v outputs=%d\n", c.Height, c.IsCoinBase, len(c.Outputs))
		case "getname":
			if len(fields) != 2 {
				fmt.Fprintln(out, "usage: getname <name>")
				continue
			}
			d, ok := cache.GetName(fields[1])
			if !ok {
				fmt.Fprintln(out, "not found")
				continue
			}
			fmt.Fprintf(out, "height=%d value=%q\n", d.Height, string(d.Value))
		case "setname":
			if len(fields) != 4 {
				fmt.Fprintln(out, "usage: setname <name> <value> <height>")
				continue
			}
			height, err := strconv.Atoi(fields[3])
			if err != nil {
				fmt.Fprintln(out, "bad height:", err)
				continue
			}
			cache.SetName(fields[1], names.Data{Value: []byte(fields[2]), Height: int32(height)}, false)
			fmt.Fprintln(out, "ok")
		case "stats":
			st, _ := cache.GetStats()
			fmt.Fprintf(out, "coins=%d size=%d\n", st.CoinCount, st.TotalSize)
		case "flush":
			fmt.Fprintln(out, "ok:", cache.Flush())
		default:
			fmt.Fprintln(out, "unknown command:", fields[0])
		}
	}
	return scanner.Err()
}
