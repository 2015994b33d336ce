// taut-prove proves a propositional formula over {->, ~} or reports a
// counterexample. With -sound the argument is read as an inference rule
// "A1,A2=>C" and proved as a sound inference instead.
//
// Flags:
//
//	-json    emit the proof document or counterexample as JSON.
//	-sound   treat the argument as a rule and prove the sound inference.
//	-v       verbose logging.
//	-version print version information.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/taut-lang/taut/internal/cli"
	"github.com/taut-lang/taut/internal/formula"
	"github.com/taut-lang/taut/internal/proof"
	"github.com/taut-lang/taut/internal/tautology"
)

func main() {
	var (
		jsonOutput  bool
		soundRule   bool
		verbose     bool
		showVersion bool
	)
	flag.BoolVar(&jsonOutput, "json", false, "emit JSON output")
	flag.BoolVar(&soundRule, "sound", false, "prove a sound inference rule of the form A1,A2=>C")
	flag.BoolVar(&verbose, "v", false, "verbose logging")
	flag.BoolVar(&showVersion, "version", false, "print version information")
	flag.Parse()

	if showVersion {
		cli.PrintVersion("taut-prove", jsonOutput)
		return
	}
	if flag.NArg() != 1 {
		cli.ExitWithError("usage: taut-prove [flags] <formula>")
	}
	log := cli.NewLogger(verbose, false)
	input := flag.Arg(0)

	if soundRule {
		rule, err := parseRule(input)
		if err != nil {
			cli.ExitWithError("%v", err)
		}
		p, err := tautology.ProveSoundInference(rule)
		if err != nil {
			cli.ExitWithError("%v", err)
		}
		log.Info("proved %s in %d lines", rule, len(p.Lines))
		emitProof(p, jsonOutput)
		return
	}

	f, err := formula.Parse(input)
	if err != nil {
		cli.ExitWithError("%v", err)
	}
	p, counterexample, err := tautology.ProofOrCounterexample(f)
	if err != nil {
		cli.ExitWithError("%v", err)
	}
	if p == nil {
		if jsonOutput {
			_ = json.NewEncoder(os.Stdout).Encode(map[string]interface{}{"counterexample": counterexample})
		} else {
			fmt.Printf("not a tautology; counterexample: %s\n", counterexample)
		}
		os.Exit(1)
	}
	log.Info("proved %s in %d lines", f, len(p.Lines))
	emitProof(p, jsonOutput)
}

func emitProof(p *proof.Proof, jsonOutput bool) {
	if jsonOutput {
		if err := proof.WriteDocument(os.Stdout, p); err != nil {
			cli.ExitWithError("%v", err)
		}
		return
	}
	fmt.Print(p)
}

// parseRule reads "A1,A2=>C"; the assumption list may be empty.
func parseRule(s string) (*proof.InferenceRule, error) {
	parts := strings.SplitN(s, "=>", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("rule must have the form A1,A2=>C, got %q", s)
	}
	var assumptions []*formula.Formula
	if head := strings.TrimSpace(parts[0]); head != "" {
		for _, a := range strings.Split(head, ",") {
			f, err := formula.Parse(strings.TrimSpace(a))
			if err != nil {
				return nil, err
			}
			assumptions = append(assumptions, f)
		}
	}
	conclusion, err := formula.Parse(strings.TrimSpace(parts[1]))
	if err != nil {
		return nil, err
	}
	return proof.NewRule(assumptions, conclusion), nil
}
