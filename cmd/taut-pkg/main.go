// taut-pkg resolves lemma-library requirements against a published index.
// Each argument is "name@constraint" (constraint optional, any version by
// default); the output pins one version per library, dependencies
// included.
//
// Flags:
//
//	-index   path to the JSON library index (required).
//	-lowest  prefer the lowest satisfying versions instead of the highest.
//	-json    emit the resolution as JSON.
//	-version print version information.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/taut-lang/taut/internal/cli"
	"github.com/taut-lang/taut/internal/library"
)

func main() {
	var (
		indexPath   string
		lowest      bool
		jsonOutput  bool
		showVersion bool
	)
	flag.StringVar(&indexPath, "index", "", "path to the JSON library index")
	flag.BoolVar(&lowest, "lowest", false, "prefer lowest satisfying versions")
	flag.BoolVar(&jsonOutput, "json", false, "emit JSON output")
	flag.BoolVar(&showVersion, "version", false, "print version information")
	flag.Parse()

	if showVersion {
		cli.PrintVersion("taut-pkg", jsonOutput)
		return
	}
	if indexPath == "" || flag.NArg() == 0 {
		cli.ExitWithError("usage: taut-pkg -index <index.json> <name[@constraint]> ...")
	}

	idx, err := library.LoadIndex(indexPath)
	if err != nil {
		cli.ExitWithError("%v", err)
	}
	reqs := make([]library.Requirement, 0, flag.NArg())
	for _, arg := range flag.Args() {
		name, constraint := arg, ""
		if at := strings.IndexByte(arg, '@'); at >= 0 {
			name, constraint = arg[:at], arg[at+1:]
		}
		reqs = append(reqs, library.Requirement{Name: library.Name(name), Constraint: constraint})
	}

	resolver := library.NewResolver(idx, library.Options{PreferHigher: !lowest})
	resolution, err := resolver.Resolve(reqs)
	if err != nil {
		cli.ExitWithError("%v", err)
	}

	if jsonOutput {
		if err := json.NewEncoder(os.Stdout).Encode(resolution); err != nil {
			cli.ExitWithError("%v", err)
		}
		return
	}
	names := make([]string, 0, len(resolution))
	for n := range resolution {
		names = append(names, string(n))
	}
	sort.Strings(names)
	for _, n := range names {
		fmt.Printf("%s %s\n", n, resolution[library.Name(n)])
	}
}
