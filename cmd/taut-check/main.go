// taut-check verifies proof document files. Each argument is a JSON
// proof document; files are checked concurrently and the exit status is
// nonzero if any proof fails. With -watch the tool keeps running and
// re-verifies a file whenever it changes on disk.
//
// Flags:
//
//	-watch   keep running and re-verify files on change.
//	-v       verbose logging.
//	-version print version information.
package main

import (
	"flag"
	"fmt"
	"os"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/taut-lang/taut/internal/cli"
	"github.com/taut-lang/taut/internal/proof"
	"github.com/taut-lang/taut/internal/watch"
)

func main() {
	var (
		watchMode   bool
		verbose     bool
		showVersion bool
	)
	flag.BoolVar(&watchMode, "watch", false, "re-verify files when they change")
	flag.BoolVar(&verbose, "v", false, "verbose logging")
	flag.BoolVar(&showVersion, "version", false, "print version information")
	flag.Parse()

	if showVersion {
		cli.PrintVersion("taut-check", false)
		return
	}
	if flag.NArg() == 0 {
		cli.ExitWithError("usage: taut-check [flags] <proof.json> ...")
	}
	log := cli.NewLogger(verbose, false)

	if !checkAll(flag.Args(), log) && !watchMode {
		os.Exit(1)
	}
	if !watchMode {
		return
	}

	watcher, err := watch.New()
	if err != nil {
		cli.ExitWithError("starting watcher: %v", err)
	}
	defer watcher.Close()
	for _, path := range flag.Args() {
		if err := watcher.Add(path); err != nil {
			cli.ExitWithError("watching %s: %v", path, err)
		}
	}
	log.Info("watching %d file(s)", flag.NArg())

	events := watch.Debounce(watcher.Events(), 200*time.Millisecond)
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			if ev.Op&(watch.OpWrite|watch.OpCreate) != 0 {
				checkFile(ev.Path, log)
			}
		case err := <-watcher.Errors():
			log.Error("watch: %v", err)
		}
	}
}

// checkAll verifies every file concurrently and reports per-file results.
func checkAll(paths []string, log *cli.Logger) bool {
	var g errgroup.Group
	var mu sync.Mutex
	allValid := true
	for _, path := range paths {
		g.Go(func() error {
			ok := checkFile(path, log)
			mu.Lock()
			allValid = allValid && ok
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return allValid
}

func checkFile(path string, log *cli.Logger) bool {
	f, err := os.Open(path)
	if err != nil {
		fmt.Printf("%s: error: %v\n", path, err)
		return false
	}
	defer f.Close()
	p, err := proof.ReadDocument(f)
	if err != nil {
		fmt.Printf("%s: error: %v\n", path, err)
		return false
	}
	if !p.IsValid() {
		fmt.Printf("%s: INVALID proof of %s\n", path, p.Statement)
		return false
	}
	log.Debug("%s: %d lines", path, len(p.Lines))
	fmt.Printf("%s: ok (%s)\n", path, p.Statement)
	return true
}
