// taut-table prints the truth table of a propositional formula.
//
// Flags:
//
//	-props   also print tautology/contradiction/satisfiability flags.
//	-version print version information.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/taut-lang/taut/internal/cli"
	"github.com/taut-lang/taut/internal/formula"
	"github.com/taut-lang/taut/internal/semantics"
)

func main() {
	var (
		props       bool
		showVersion bool
	)
	flag.BoolVar(&props, "props", false, "print semantic classification")
	flag.BoolVar(&showVersion, "version", false, "print version information")
	flag.Parse()

	if showVersion {
		cli.PrintVersion("taut-table", false)
		return
	}
	if flag.NArg() != 1 {
		cli.ExitWithError("usage: taut-table [flags] <formula>")
	}
	f, err := formula.Parse(flag.Arg(0))
	if err != nil {
		cli.ExitWithError("%v", err)
	}
	if err := semantics.WriteTruthTable(os.Stdout, f); err != nil {
		cli.ExitWithError("%v", err)
	}
	if props {
		fmt.Printf("tautology: %t\n", semantics.IsTautology(f))
		fmt.Printf("contradiction: %t\n", semantics.IsContradiction(f))
		fmt.Printf("satisfiable: %t\n", semantics.IsSatisfiable(f))
	}
}
