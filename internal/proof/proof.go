package proof

import (
	"fmt"
	"strings"

	"github.com/taut-lang/taut/internal/formula"
)

// Line is one step of a linear proof. A line either restates an
// assumption of the proof's statement (Rule nil, no citations) or derives
// its formula by a specialization of Rule whose assumptions are supplied,
// in order, by the formulas of the cited earlier lines.
type Line struct {
	Formula   *formula.Formula
	Rule      *InferenceRule
	Citations []int
}

// AssumptionLine builds a line justified as a statement assumption.
func AssumptionLine(f *formula.Formula) Line {
	return Line{Formula: f}
}

// DerivedLine builds a line justified by a rule applied to earlier lines.
func DerivedLine(f *formula.Formula, rule *InferenceRule, citations ...int) Line {
	if len(citations) == 0 {
		citations = []int{}
	}
	return Line{Formula: f, Rule: rule, Citations: citations}
}

// IsAssumption reports whether the line is justified as an assumption of
// the enclosing proof's statement.
func (l Line) IsAssumption() bool {
	return l.Rule == nil
}

// String renders the line's formula and, for derived lines, its
// justification.
func (l Line) String() string {
	if l.IsAssumption() {
		return l.Formula.String()
	}
	out := l.Formula.String() + "    by " + l.Rule.String()
	if len(l.Citations) > 0 {
		cited := make([]string, len(l.Citations))
		for i, c := range l.Citations {
			cited[i] = fmt.Sprintf("%d", c)
		}
		out += " on " + strings.Join(cited, ",")
	}
	return out
}

// Proof is an immutable purported derivation of Statement.Conclusion from
// Statement.Assumptions, where each derived line applies a specialization
// of one of the allowed Rules to earlier lines.
type Proof struct {
	Statement *InferenceRule
	Rules     RuleSet
	Lines     []Line
}

// New constructs a proof. The line slice is copied.
func New(statement *InferenceRule, rules RuleSet, lines []Line) *Proof {
	copied := make([]Line, len(lines))
	copy(copied, lines)
	return &Proof{Statement: statement, Rules: rules, Lines: copied}
}

// String renders the statement, the allowed rules and the numbered lines.
func (p *Proof) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Proof of %s via:\n", p.Statement)
	for _, r := range p.Rules.Sorted() {
		fmt.Fprintf(&b, "  %s\n", r)
	}
	b.WriteString("Lines:\n")
	for i, l := range p.Lines {
		fmt.Fprintf(&b, "%3d) %s\n", i, l)
	}
	return b.String()
}

// RuleFor reconstructs the rule instance used at line i: the formulas of
// the cited lines, in citation order, as assumptions and the line's own
// formula as conclusion. It returns nil for assumption lines. The result
// is a fresh value; nothing is cached.
func (p *Proof) RuleFor(i int) *InferenceRule {
	line := p.Lines[i]
	if line.IsAssumption() {
		return nil
	}
	assumptions := make([]*formula.Formula, len(line.Citations))
	for j, c := range line.Citations {
		assumptions[j] = p.Lines[c].Formula
	}
	return &InferenceRule{Assumptions: assumptions, Conclusion: line.Formula}
}

// IsLineValid checks line i in isolation. An assumption line is valid iff
// its formula literally appears among the statement's assumptions. A
// derived line is valid iff its rule is one of the allowed rules, every
// citation points strictly earlier, and the reconstructed rule instance
// is a specialization of the declared rule.
func (p *Proof) IsLineValid(i int) bool {
	line := p.Lines[i]
	if line.IsAssumption() {
		for _, a := range p.Statement.Assumptions {
			if line.Formula.Equal(a) {
				return true
			}
		}
		return false
	}
	if !p.Rules.Contains(line.Rule) {
		return false
	}
	for _, c := range line.Citations {
		if c < 0 || c >= i {
			return false
		}
	}
	return p.RuleFor(i).IsSpecializationOf(line.Rule)
}

// IsValid reports whether every line is valid and the final line
// concludes the statement's conclusion.
func (p *Proof) IsValid() bool {
	if len(p.Lines) == 0 {
		return false
	}
	for i := range p.Lines {
		if !p.IsLineValid(i) {
			return false
		}
	}
	return p.Lines[len(p.Lines)-1].Formula.Equal(p.Statement.Conclusion)
}
