package proof

import (
	"fmt"

	"github.com/taut-lang/taut/internal/formula"
)

// ProveSpecialization converts a valid proof of an inference rule into a
// proof of the given specialization of that rule, via the same allowed
// rules. Every line formula is rewritten under the specialization binding;
// justifications and citations are unchanged.
func ProveSpecialization(p *Proof, specialization *InferenceRule) (*Proof, error) {
	if !p.IsValid() {
		return nil, fmt.Errorf("proof: cannot specialize an invalid proof of %s", errRule(p.Statement))
	}
	binding, ok := p.Statement.SpecializationMap(specialization)
	if !ok {
		return nil, fmt.Errorf("proof: %s is not a specialization of %s",
			errRule(specialization), errRule(p.Statement))
	}
	lines := make([]Line, len(p.Lines))
	for i, l := range p.Lines {
		lines[i] = Line{
			Formula:   l.Formula.SubstituteVariables(binding),
			Rule:      l.Rule,
			Citations: l.Citations,
		}
	}
	return &Proof{
		Statement: p.Statement.Specialize(binding),
		Rules:     p.Rules,
		Lines:     lines,
	}, nil
}

// InlineProofOnce replaces line i of main, which must be justified by the
// lemma's statement rule, with the lines of the lemma proof specialized to
// the exact rule instance used at that line. Lines before i are kept
// verbatim. Each lemma assumption line either restates an assumption of
// main's statement (kept as an assumption) or matches one of line i's
// cited antecedents (replaced by a copy of that earlier, already-justified
// line). Derived lemma lines are re-emitted with citations shifted into
// the spliced region. Citations of later lines are resolved through an
// explicit old-to-new index table. The allowed-rule set of the result is
// the union of both proofs' rules.
func InlineProofOnce(main *Proof, i int, lemma *Proof) (*Proof, error) {
	if i < 0 || i >= len(main.Lines) {
		return nil, fmt.Errorf("proof: inline target %d out of range (%d lines)", i, len(main.Lines))
	}
	target := main.Lines[i]
	if target.IsAssumption() || !target.Rule.Equal(lemma.Statement) {
		return nil, fmt.Errorf("proof: line %d is not justified by the lemma rule %s", i, errRule(lemma.Statement))
	}
	specialized, err := ProveSpecialization(lemma, main.RuleFor(i))
	if err != nil {
		return nil, err
	}

	lines := make([]Line, 0, len(main.Lines)+len(specialized.Lines)-1)
	lines = append(lines, main.Lines[:i]...)

	for _, l := range specialized.Lines {
		switch {
		case !l.IsAssumption():
			shifted := make([]int, len(l.Citations))
			for j, c := range l.Citations {
				shifted[j] = c + i
			}
			lines = append(lines, Line{Formula: l.Formula, Rule: l.Rule, Citations: shifted})
		case isStatementAssumption(main, l.Formula):
			lines = append(lines, AssumptionLine(l.Formula))
		default:
			// The assumption must be one of the antecedents line i cited;
			// repeat that earlier line (its own citations point strictly
			// before i and stay valid).
			cited, ok := citedLineFor(main, target.Citations, l)
			if !ok {
				return nil, fmt.Errorf("proof: lemma assumption %s has no justification at line %d", l.Formula, i)
			}
			lines = append(lines, cited)
		}
	}

	// Each lemma line emits exactly one output line, so the translation of
	// an old index x is x itself before the splice and x plus the growth
	// after it.
	growth := len(specialized.Lines) - 1
	oldToNew := make([]int, len(main.Lines))
	for old := range main.Lines {
		if old < i {
			oldToNew[old] = old
		} else {
			oldToNew[old] = old + growth
		}
	}
	for _, l := range main.Lines[i+1:] {
		if l.IsAssumption() {
			lines = append(lines, l)
			continue
		}
		translated := make([]int, len(l.Citations))
		for j, c := range l.Citations {
			translated[j] = oldToNew[c]
		}
		lines = append(lines, Line{Formula: l.Formula, Rule: l.Rule, Citations: translated})
	}

	return &Proof{
		Statement: main.Statement,
		Rules:     main.Rules.Union(specialized.Rules),
		Lines:     lines,
	}, nil
}

// isStatementAssumption reports whether f literally appears among the
// declared assumptions of p's statement.
func isStatementAssumption(p *Proof, f *formula.Formula) bool {
	for _, a := range p.Statement.Assumptions {
		if f.Equal(a) {
			return true
		}
	}
	return false
}

// citedLineFor finds, among the lines cited by the replaced line, the one
// whose formula equals the lemma assumption l and returns a copy of it.
func citedLineFor(main *Proof, citations []int, l Line) (Line, bool) {
	for _, c := range citations {
		if main.Lines[c].Formula.Equal(l.Formula) {
			return main.Lines[c], true
		}
	}
	return Line{}, false
}

// InlineProof eliminates every use of the lemma's statement rule from
// main by repeatedly inlining the lemma proof at the first remaining use,
// then removes that rule from the allowed set. The lemma proof must not
// use its own statement rule, which guarantees each pass strictly reduces
// the number of uses.
func InlineProof(main *Proof, lemma *Proof) (*Proof, error) {
	rule := lemma.Statement
	if firstUseOfRule(lemma, rule) >= 0 {
		return nil, fmt.Errorf("proof: lemma proof of %s uses its own rule", errRule(rule))
	}
	current := main
	for {
		i := firstUseOfRule(current, rule)
		if i < 0 {
			break
		}
		next, err := InlineProofOnce(current, i, lemma)
		if err != nil {
			return nil, err
		}
		current = next
	}
	return &Proof{
		Statement: current.Statement,
		Rules:     current.Rules.Without(rule),
		Lines:     current.Lines,
	}, nil
}

// firstUseOfRule returns the index of the first line justified by rule,
// or -1 if the proof has none.
func firstUseOfRule(p *Proof, rule *InferenceRule) int {
	for i, l := range p.Lines {
		if !l.IsAssumption() && l.Rule.Equal(rule) {
			return i
		}
	}
	return -1
}
