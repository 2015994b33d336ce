// Package deduction implements proof-surgery maneuvers over valid proofs:
// corollary derivation, proof combination, the deduction theorem
// (assumption removal), and proofs from inconsistency or by
// contradiction. Every maneuver consumes valid proofs and produces a new
// valid proof; precondition violations are reported as errors before any
// lines are built.
package deduction

import (
	"fmt"

	"github.com/taut-lang/taut/internal/axioms"
	"github.com/taut-lang/taut/internal/formula"
	"github.com/taut-lang/taut/internal/proof"
)

// ProveCorollary converts a proof of some formula A into a proof of
// consequent, given an assumptionless rule of which (A->consequent) is a
// specialization. Two lines are appended: the conditional instance and a
// modus-ponens application against the proof's final line.
func ProveCorollary(antecedentProof *proof.Proof, consequent *formula.Formula, conditional *proof.InferenceRule) (*proof.Proof, error) {
	if !antecedentProof.IsValid() {
		return nil, fmt.Errorf("deduction: corollary requires a valid antecedent proof")
	}
	implication := formula.Implies(antecedentProof.Statement.Conclusion, consequent)
	instance := proof.NewRule(nil, implication)
	if !instance.IsSpecializationOf(conditional) {
		return nil, fmt.Errorf("deduction: %s is not an instance of the conditional rule %s",
			implication, conditional)
	}

	n := len(antecedentProof.Lines)
	lines := make([]proof.Line, 0, n+2)
	lines = append(lines, antecedentProof.Lines...)
	lines = append(lines, proof.DerivedLine(implication, conditional))
	lines = append(lines, proof.DerivedLine(consequent, axioms.MP, n-1, n))

	statement := proof.NewRule(antecedentProof.Statement.Assumptions, consequent)
	rules := antecedentProof.Rules.With(conditional, axioms.MP)
	return proof.New(statement, rules, lines), nil
}

// CombineProofs merges proofs of two formulas A and B, from the same
// assumptions and rules, into a proof of consequent, given an
// assumptionless rule of which (A->(B->consequent)) is a specialization.
// The B-proof's citations are shifted past the A-proof, then three lines
// derive the double conditional, (B->consequent), and consequent.
func CombineProofs(firstProof, secondProof *proof.Proof, consequent *formula.Formula, doubleConditional *proof.InferenceRule) (*proof.Proof, error) {
	if !firstProof.IsValid() || !secondProof.IsValid() {
		return nil, fmt.Errorf("deduction: combine requires two valid proofs")
	}
	if !sameAssumptions(firstProof.Statement.Assumptions, secondProof.Statement.Assumptions) {
		return nil, fmt.Errorf("deduction: combined proofs must share their assumption list")
	}
	if !firstProof.Rules.Equal(secondProof.Rules) {
		return nil, fmt.Errorf("deduction: combined proofs must share their allowed rules")
	}
	first := firstProof.Statement.Conclusion
	second := secondProof.Statement.Conclusion
	chained := formula.Implies(first, formula.Implies(second, consequent))
	if !proof.NewRule(nil, chained).IsSpecializationOf(doubleConditional) {
		return nil, fmt.Errorf("deduction: %s is not an instance of the double conditional rule %s",
			chained, doubleConditional)
	}

	firstLen := len(firstProof.Lines)
	combinedLen := firstLen + len(secondProof.Lines)
	lines := make([]proof.Line, 0, combinedLen+3)
	lines = append(lines, firstProof.Lines...)
	for _, l := range secondProof.Lines {
		if l.IsAssumption() {
			lines = append(lines, l)
			continue
		}
		shifted := make([]int, len(l.Citations))
		for j, c := range l.Citations {
			shifted[j] = c + firstLen
		}
		lines = append(lines, proof.Line{Formula: l.Formula, Rule: l.Rule, Citations: shifted})
	}
	lines = append(lines, proof.DerivedLine(chained, doubleConditional))
	lines = append(lines, proof.DerivedLine(formula.Implies(second, consequent), axioms.MP, firstLen-1, combinedLen))
	lines = append(lines, proof.DerivedLine(consequent, axioms.MP, combinedLen-1, combinedLen+1))

	statement := proof.NewRule(firstProof.Statement.Assumptions, consequent)
	rules := firstProof.Rules.With(doubleConditional, axioms.MP)
	return proof.New(statement, rules, lines), nil
}

// RemoveAssumption implements the deduction theorem: a valid proof of C
// whose last declared assumption is phi, via modus ponens and otherwise
// assumptionless rules, becomes a proof of (phi->C) from the remaining
// assumptions. Every original line is rewritten into one of three
// patterns and an old-to-new index table tracks where each original
// line's (phi->line) form landed; later citations are always resolved
// through the table.
func RemoveAssumption(p *proof.Proof) (*proof.Proof, error) {
	if !p.IsValid() {
		return nil, fmt.Errorf("deduction: cannot remove an assumption of an invalid proof")
	}
	if len(p.Statement.Assumptions) == 0 {
		return nil, fmt.Errorf("deduction: proof of %s has no assumption to remove", p.Statement.Conclusion)
	}
	for _, r := range p.Rules.Sorted() {
		if !r.Equal(axioms.MP) && len(r.Assumptions) > 0 {
			return nil, fmt.Errorf("deduction: rule %s has assumptions and is not modus ponens", r)
		}
	}

	phi := p.Statement.Assumptions[len(p.Statement.Assumptions)-1]
	remaining := p.Statement.Assumptions[:len(p.Statement.Assumptions)-1]
	statement := proof.NewRule(remaining, formula.Implies(phi, p.Statement.Conclusion))
	rules := p.Rules.With(axioms.MP, axioms.I0, axioms.I1, axioms.D)

	// table[i] is the new index of the line concluding (phi->formula(i)).
	table := make([]int, len(p.Lines))
	var lines []proof.Line

	for i, l := range p.Lines {
		switch {
		case l.Formula.Equal(phi):
			// The assumption being discharged proves itself.
			lines = append(lines, proof.DerivedLine(formula.Implies(phi, phi), axioms.I0))
			table[i] = len(lines) - 1

		case l.IsAssumption() || !l.Rule.Equal(axioms.MP):
			// Keep the line, then weaken it under phi.
			lines = append(lines, l)
			kept := len(lines) - 1
			weakened := formula.Implies(l.Formula, formula.Implies(phi, l.Formula))
			lines = append(lines, proof.DerivedLine(weakened, axioms.I1))
			lines = append(lines, proof.DerivedLine(formula.Implies(phi, l.Formula), axioms.MP, kept, kept+1))
			table[i] = len(lines) - 1

		default:
			// Modus ponens on eta1 and (eta1->formula): distribute phi.
			eta1 := p.Lines[l.Citations[0]].Formula
			phiToEta1 := formula.Implies(phi, eta1)
			phiToLine := formula.Implies(phi, l.Formula)
			phiToImpl := formula.Implies(phi, formula.Implies(eta1, l.Formula))
			dist := formula.Implies(phiToImpl, formula.Implies(phiToEta1, phiToLine))
			lines = append(lines, proof.DerivedLine(dist, axioms.D))
			distIdx := len(lines) - 1
			lines = append(lines, proof.DerivedLine(formula.Implies(phiToEta1, phiToLine), axioms.MP, table[l.Citations[1]], distIdx))
			lines = append(lines, proof.DerivedLine(phiToLine, axioms.MP, table[l.Citations[0]], distIdx+1))
			table[i] = len(lines) - 1
		}
	}
	return proof.New(statement, rules, lines), nil
}

// ProofFromInconsistency combines a proof of some formula A and a proof of
// ~A, from the same assumptions and rules, into a proof of any desired
// conclusion via the contradiction schema.
func ProofFromInconsistency(affirmation, negation *proof.Proof, conclusion *formula.Formula) (*proof.Proof, error) {
	if !affirmation.IsValid() || !negation.IsValid() {
		return nil, fmt.Errorf("deduction: inconsistency requires two valid proofs")
	}
	if !negation.Statement.Conclusion.Equal(formula.Not(affirmation.Statement.Conclusion)) {
		return nil, fmt.Errorf("deduction: %s does not negate %s",
			negation.Statement.Conclusion, affirmation.Statement.Conclusion)
	}
	return CombineProofs(negation, affirmation, conclusion, axioms.I2)
}

// ProveByContradiction converts a proof of the fixed absurdity ~(p->p),
// the last assumption of which is ~psi, into a proof of psi from the
// remaining assumptions: the assumption is removed to obtain
// (~psi->~(p->p)), which is combined with a one-line proof of (p->p)
// through the contraposition schema.
func ProveByContradiction(p *proof.Proof) (*proof.Proof, error) {
	absurdity := formula.Not(formula.Implies(formula.Var("p"), formula.Var("p")))
	if !p.IsValid() || !p.Statement.Conclusion.Equal(absurdity) {
		return nil, fmt.Errorf("deduction: contradiction requires a valid proof of %s", absurdity)
	}
	if len(p.Statement.Assumptions) == 0 {
		return nil, fmt.Errorf("deduction: contradiction requires at least one assumption")
	}
	last := p.Statement.Assumptions[len(p.Statement.Assumptions)-1]
	if !formula.IsUnary(last.Root) {
		return nil, fmt.Errorf("deduction: last assumption %s is not a negation", last)
	}

	rules := p.Rules.With(axioms.MP, axioms.I0, axioms.I1, axioms.D, axioms.N)
	removed, err := RemoveAssumption(proof.New(p.Statement, rules, p.Lines))
	if err != nil {
		return nil, err
	}

	selfImplication := formula.Implies(formula.Var("p"), formula.Var("p"))
	remaining := p.Statement.Assumptions[:len(p.Statement.Assumptions)-1]
	selfProof := proof.New(
		proof.NewRule(remaining, selfImplication),
		removed.Rules,
		[]proof.Line{proof.DerivedLine(selfImplication, axioms.I0)},
	)
	return CombineProofs(removed, selfProof, last.First, axioms.N)
}

// sameAssumptions reports element-wise equality of two assumption lists.
func sameAssumptions(a, b []*formula.Formula) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}
