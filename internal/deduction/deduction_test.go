package deduction

import (
	"testing"

	"github.com/taut-lang/taut/internal/axioms"
	"github.com/taut-lang/taut/internal/formula"
	"github.com/taut-lang/taut/internal/proof"
)

// assumptionProof builds the trivial proof of one of its own assumptions.
func assumptionProof(assumptions []string, conclusion string, rules proof.RuleSet) *proof.Proof {
	parsed := make([]*formula.Formula, len(assumptions))
	for i, s := range assumptions {
		parsed[i] = formula.MustParse(s)
	}
	statement := proof.NewRule(parsed, formula.MustParse(conclusion))
	return proof.New(statement, rules, []proof.Line{
		proof.AssumptionLine(formula.MustParse(conclusion)),
	})
}

func TestProveCorollary(t *testing.T) {
	base := assumptionProof([]string{"q"}, "q", proof.NewRuleSet())
	got, err := ProveCorollary(base, formula.MustParse("(p->q)"), axioms.I1)
	if err != nil {
		t.Fatalf("ProveCorollary failed: %v", err)
	}
	if !got.IsValid() {
		t.Errorf("corollary proof invalid:\n%s", got)
	}
	if got.Statement.Conclusion.String() != "(p->q)" {
		t.Errorf("conclusion = %s, want (p->q)", got.Statement.Conclusion)
	}
	if len(got.Statement.Assumptions) != 1 || got.Statement.Assumptions[0].String() != "q" {
		t.Errorf("assumptions changed: %s", got.Statement)
	}
}

func TestProveCorollaryRejectsNonInstance(t *testing.T) {
	base := assumptionProof([]string{"q"}, "q", proof.NewRuleSet())
	if _, err := ProveCorollary(base, formula.MustParse("(p->q)"), axioms.I0); err == nil {
		t.Error("conditional that does not generalize the implication accepted")
	}
}

func TestCombineProofs(t *testing.T) {
	assumptions := []string{"p", "(p->q)"}
	first := assumptionProof(assumptions, "p", proof.NewRuleSet())
	second := assumptionProof(assumptions, "(p->q)", proof.NewRuleSet())
	chain := proof.MustRule(nil, "(p->((p->q)->q))")

	got, err := CombineProofs(first, second, formula.MustParse("q"), chain)
	if err != nil {
		t.Fatalf("CombineProofs failed: %v", err)
	}
	if !got.IsValid() {
		t.Errorf("combined proof invalid:\n%s", got)
	}
	if got.Statement.Conclusion.String() != "q" {
		t.Errorf("conclusion = %s, want q", got.Statement.Conclusion)
	}
}

func TestCombineProofsRejectsMismatchedAssumptions(t *testing.T) {
	first := assumptionProof([]string{"p"}, "p", proof.NewRuleSet())
	second := assumptionProof([]string{"(p->q)"}, "(p->q)", proof.NewRuleSet())
	chain := proof.MustRule(nil, "(p->((p->q)->q))")
	if _, err := CombineProofs(first, second, formula.MustParse("q"), chain); err == nil {
		t.Error("proofs with different assumption lists combined")
	}
}

func TestRemoveAssumption(t *testing.T) {
	// A modus ponens step where the discharged assumption is both cited and
	// equal to one line, exercising all three rewriting patterns.
	statement := proof.MustRule([]string{"p", "(p->q)"}, "q")
	p := proof.New(statement, proof.NewRuleSet(axioms.MP), []proof.Line{
		proof.AssumptionLine(formula.MustParse("p")),
		proof.AssumptionLine(formula.MustParse("(p->q)")),
		proof.DerivedLine(formula.MustParse("q"), axioms.MP, 0, 1),
	})
	if !p.IsValid() {
		t.Fatalf("fixture invalid:\n%s", p)
	}

	got, err := RemoveAssumption(p)
	if err != nil {
		t.Fatalf("RemoveAssumption failed: %v", err)
	}
	if !got.IsValid() {
		t.Errorf("result invalid:\n%s", got)
	}
	if got.Statement.Conclusion.String() != "((p->q)->q)" {
		t.Errorf("conclusion = %s, want ((p->q)->q)", got.Statement.Conclusion)
	}
	if len(got.Statement.Assumptions) != 1 || got.Statement.Assumptions[0].String() != "p" {
		t.Errorf("remaining assumptions wrong: %s", got.Statement)
	}
}

func TestRemoveOnlyAssumption(t *testing.T) {
	p := assumptionProof([]string{"q"}, "q", proof.NewRuleSet())
	got, err := RemoveAssumption(p)
	if err != nil {
		t.Fatalf("RemoveAssumption failed: %v", err)
	}
	if !got.IsValid() {
		t.Errorf("result invalid:\n%s", got)
	}
	if got.Statement.Conclusion.String() != "(q->q)" || len(got.Statement.Assumptions) != 0 {
		t.Errorf("statement = %s, want [] ==> (q->q)", got.Statement)
	}
}

func TestRemoveAssumptionPreconditions(t *testing.T) {
	andIntro := proof.MustRule([]string{"p", "q"}, "(p&q)")
	p := proof.New(
		proof.MustRule([]string{"p", "q"}, "(p&q)"),
		proof.NewRuleSet(andIntro),
		[]proof.Line{
			proof.AssumptionLine(formula.MustParse("p")),
			proof.AssumptionLine(formula.MustParse("q")),
			proof.DerivedLine(formula.MustParse("(p&q)"), andIntro, 0, 1),
		},
	)
	if _, err := RemoveAssumption(p); err == nil {
		t.Error("proof using a rule with assumptions other than modus ponens accepted")
	}

	axiomOnly := proof.New(axioms.I0, proof.NewRuleSet(axioms.I0), []proof.Line{
		proof.DerivedLine(formula.MustParse("(p->p)"), axioms.I0),
	})
	if _, err := RemoveAssumption(axiomOnly); err == nil {
		t.Error("assumptionless proof accepted")
	}
}

func TestProofFromInconsistency(t *testing.T) {
	assumptions := []string{"p", "~p"}
	affirmation := assumptionProof(assumptions, "p", proof.NewRuleSet())
	negation := assumptionProof(assumptions, "~p", proof.NewRuleSet())

	got, err := ProofFromInconsistency(affirmation, negation, formula.MustParse("q"))
	if err != nil {
		t.Fatalf("ProofFromInconsistency failed: %v", err)
	}
	if !got.IsValid() {
		t.Errorf("result invalid:\n%s", got)
	}
	if got.Statement.Conclusion.String() != "q" {
		t.Errorf("conclusion = %s, want q", got.Statement.Conclusion)
	}
}

func TestProofFromInconsistencyRejectsNonNegation(t *testing.T) {
	assumptions := []string{"p", "q"}
	affirmation := assumptionProof(assumptions, "p", proof.NewRuleSet())
	other := assumptionProof(assumptions, "q", proof.NewRuleSet())
	if _, err := ProofFromInconsistency(affirmation, other, formula.MustParse("r")); err == nil {
		t.Error("proofs that do not contradict accepted")
	}
}

func TestProveByContradiction(t *testing.T) {
	p := assumptionProof([]string{"~(p->p)", "~q"}, "~(p->p)", proof.NewRuleSet())
	got, err := ProveByContradiction(p)
	if err != nil {
		t.Fatalf("ProveByContradiction failed: %v", err)
	}
	if !got.IsValid() {
		t.Errorf("result invalid:\n%s", got)
	}
	if got.Statement.Conclusion.String() != "q" {
		t.Errorf("conclusion = %s, want q", got.Statement.Conclusion)
	}
	if len(got.Statement.Assumptions) != 1 || got.Statement.Assumptions[0].String() != "~(p->p)" {
		t.Errorf("remaining assumptions wrong: %s", got.Statement)
	}
}

func TestProveByContradictionPreconditions(t *testing.T) {
	// Conclusion is not the absurdity.
	if _, err := ProveByContradiction(assumptionProof([]string{"~q"}, "~q", proof.NewRuleSet())); err == nil {
		t.Error("proof of a non-absurdity accepted")
	}
	// Last assumption is not a negation.
	p := assumptionProof([]string{"~(p->p)", "q"}, "~(p->p)", proof.NewRuleSet())
	if _, err := ProveByContradiction(p); err == nil {
		t.Error("non-negated last assumption accepted")
	}
}
