// Package axioms supplies the fixed rule constants of the Hilbert-style
// axiomatic system the prover generates proofs in: modus ponens plus a
// small library of assumptionless schemas. The proof engine treats these
// as opaque inference rules; only their shapes matter to the surgery
// maneuvers, which is why each schema documents the shape it is used for.
package axioms

import (
	"github.com/taut-lang/taut/internal/proof"
)

var (
	// MP is modus ponens: from p and (p->q), conclude q.
	MP = proof.MustRule([]string{"p", "(p->q)"}, "q")

	// I0 is self-implication.
	I0 = proof.MustRule(nil, "(p->p)")

	// I1 weakens a proved formula under an arbitrary antecedent.
	I1 = proof.MustRule(nil, "(q->(p->q))")

	// D distributes an antecedent over an implication; the deduction
	// theorem's modus-ponens case is built on it.
	D = proof.MustRule(nil, "((p->(q->r))->((p->q)->(p->r)))")

	// I2 concludes anything from a negated antecedent.
	I2 = proof.MustRule(nil, "(~p->(p->q))")

	// N is the contraposition schema used by proof by contradiction.
	N = proof.MustRule(nil, "((~q->~p)->(p->q))")

	// NI derives the negation of an implication from a true antecedent
	// and a false consequent.
	NI = proof.MustRule(nil, "(p->(~q->~(p->q)))")

	// NN introduces a double negation.
	NN = proof.MustRule(nil, "(p->~~p)")

	// R merges the two branches of a case split.
	R = proof.MustRule(nil, "((q->p)->((~q->p)->p))")
)

// System returns the axiomatic system the tautology prover proves in:
// modus ponens and the schemas above.
func System() proof.RuleSet {
	return proof.NewRuleSet(MP, I0, I1, D, I2, N, NI, NN, R)
}

// Hilbert returns the minimal deduction-theorem basis: modus ponens with
// self-implication, weakening and distribution.
func Hilbert() proof.RuleSet {
	return proof.NewRuleSet(MP, I0, I1, D)
}
