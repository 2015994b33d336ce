package proof

import (
	"testing"

	"github.com/taut-lang/taut/internal/formula"
)

var (
	andIntro = MustRule([]string{"p", "q"}, "(p&q)")
	andSwap  = MustRule([]string{"p", "q"}, "(q&p)")
	orDup    = MustRule([]string{"p"}, "(p|p)")
	andDup   = MustRule([]string{"p"}, "(p&p)")
)

// andSwapProof proves [p, q] ==> (q&p) from the and-introduction rule.
func andSwapProof() *Proof {
	return New(andSwap, NewRuleSet(andIntro), []Line{
		AssumptionLine(formula.MustParse("p")),
		AssumptionLine(formula.MustParse("q")),
		DerivedLine(formula.MustParse("(q&p)"), andIntro, 1, 0),
	})
}

// andDupProof proves [p] ==> (p&p) from the and-introduction rule.
func andDupProof() *Proof {
	return New(andDup, NewRuleSet(andIntro), []Line{
		AssumptionLine(formula.MustParse("p")),
		DerivedLine(formula.MustParse("(p&p)"), andIntro, 0, 0),
	})
}

func TestProveSpecialization(t *testing.T) {
	instance := MustRule([]string{"~r", "(s|t)"}, "((s|t)&~r)")
	got, err := ProveSpecialization(andSwapProof(), instance)
	if err != nil {
		t.Fatalf("ProveSpecialization failed: %v", err)
	}
	if !got.Statement.Equal(instance) {
		t.Errorf("statement = %s, want %s", got.Statement, instance)
	}
	if !got.IsValid() {
		t.Errorf("specialized proof invalid:\n%s", got)
	}
}

func TestProveSpecializationErrors(t *testing.T) {
	// Not a specialization of the statement.
	if _, err := ProveSpecialization(andSwapProof(), MustRule([]string{"r", "s"}, "(r&s)")); err == nil {
		t.Error("non-specialization accepted")
	}
	// Invalid input proof.
	broken := New(andSwap, NewRuleSet(), []Line{
		AssumptionLine(formula.MustParse("p")),
	})
	if _, err := ProveSpecialization(broken, andSwap); err == nil {
		t.Error("invalid proof accepted")
	}
}

func TestInlineProofOnce(t *testing.T) {
	lemma := andSwapProof()
	main := New(MustRule([]string{"r", "s"}, "(s&r)"), NewRuleSet(andSwap), []Line{
		AssumptionLine(formula.MustParse("r")),
		AssumptionLine(formula.MustParse("s")),
		DerivedLine(formula.MustParse("(s&r)"), andSwap, 0, 1),
	})
	if !main.IsValid() {
		t.Fatalf("fixture invalid:\n%s", main)
	}

	got, err := InlineProofOnce(main, 2, lemma)
	if err != nil {
		t.Fatalf("InlineProofOnce failed: %v", err)
	}
	if !got.Statement.Equal(main.Statement) {
		t.Errorf("statement changed to %s", got.Statement)
	}
	if !got.IsValid() {
		t.Errorf("inlined proof invalid:\n%s", got)
	}
	if !got.Rules.Contains(andIntro) {
		t.Error("lemma's rules not merged into the result")
	}
	if len(got.Lines) != len(main.Lines)+len(lemma.Lines)-1 {
		t.Errorf("result has %d lines, want %d", len(got.Lines), len(main.Lines)+len(lemma.Lines)-1)
	}
}

func TestInlineProofOnceRejectsWrongLine(t *testing.T) {
	lemma := andSwapProof()
	main := New(MustRule([]string{"r", "s"}, "(s&r)"), NewRuleSet(andSwap), []Line{
		AssumptionLine(formula.MustParse("r")),
		AssumptionLine(formula.MustParse("s")),
		DerivedLine(formula.MustParse("(s&r)"), andSwap, 0, 1),
	})
	if _, err := InlineProofOnce(main, 0, lemma); err == nil {
		t.Error("inlining at an assumption line succeeded")
	}
	if _, err := InlineProofOnce(main, 7, lemma); err == nil {
		t.Error("inlining out of range succeeded")
	}
}

func TestInlineProof(t *testing.T) {
	// The inlined assumption is justified by an earlier derived line, not a
	// statement assumption, so the splice has to repeat that line.
	main := New(MustRule([]string{"r"}, "((r|r)&(r|r))"), NewRuleSet(orDup, andDup), []Line{
		AssumptionLine(formula.MustParse("r")),
		DerivedLine(formula.MustParse("(r|r)"), orDup, 0),
		DerivedLine(formula.MustParse("((r|r)&(r|r))"), andDup, 1),
	})
	if !main.IsValid() {
		t.Fatalf("fixture invalid:\n%s", main)
	}

	got, err := InlineProof(main, andDupProof())
	if err != nil {
		t.Fatalf("InlineProof failed: %v", err)
	}
	if !got.IsValid() {
		t.Errorf("result invalid:\n%s", got)
	}
	if got.Rules.Contains(andDup) {
		t.Error("lemma rule still in the allowed set")
	}
	if !got.Rules.Contains(orDup) || !got.Rules.Contains(andIntro) {
		t.Errorf("rules = %v", got.Rules)
	}
	if i := firstUseOfRule(got, andDup); i >= 0 {
		t.Errorf("lemma rule still used at line %d", i)
	}
}

func TestInlineProofRejectsSelfUsingLemma(t *testing.T) {
	selfUsing := New(andDup, NewRuleSet(andDup), []Line{
		AssumptionLine(formula.MustParse("p")),
		DerivedLine(formula.MustParse("(p&p)"), andDup, 0),
	})
	main := New(MustRule([]string{"r"}, "(r&r)"), NewRuleSet(andDup), []Line{
		AssumptionLine(formula.MustParse("r")),
		DerivedLine(formula.MustParse("(r&r)"), andDup, 0),
	})
	if _, err := InlineProof(main, selfUsing); err == nil {
		t.Error("self-using lemma accepted")
	}
}
