// Package tautology implements the tautology theorem constructively: for
// any formula over {->, ~} that holds in every model it synthesizes a
// complete proof in the fixed axiomatic system, and for any finite set of
// such formulas it decides between a satisfying model and a proof of
// absurdity. The construction is an exhaustive case split over the
// formula's variables, merging branch proofs with the deduction theorem;
// its exponential cost is inherent to truth-table case analysis.
package tautology

import (
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/taut-lang/taut/internal/axioms"
	"github.com/taut-lang/taut/internal/deduction"
	"github.com/taut-lang/taut/internal/formula"
	"github.com/taut-lang/taut/internal/proof"
	"github.com/taut-lang/taut/internal/semantics"
)

// restrictedOperators reports whether f uses only implication and
// negation, the operator set the axiomatic system speaks.
func restrictedOperators(f *formula.Formula) bool {
	for op := range f.Operators() {
		if op != "->" && op != "~" {
			return false
		}
	}
	return true
}

// FormulaeCapturingModel computes the formulas that pin down the given
// model: each variable assigned true appears as itself and each variable
// assigned false negated, ordered alphabetically by variable name.
func FormulaeCapturingModel(m semantics.Model) []*formula.Formula {
	captured := make([]*formula.Formula, 0, len(m))
	for _, name := range m.Variables() {
		literal := formula.Var(name)
		if !m[name] {
			literal = formula.Not(literal)
		}
		captured = append(captured, literal)
	}
	return captured
}

// ProveInModel proves f if it holds in m and ~f otherwise, from the
// formulas capturing m, via the fixed axiomatic system. f must use only
// implication and negation and m must assign all of its variables.
func ProveInModel(f *formula.Formula, m semantics.Model) (*proof.Proof, error) {
	if !restrictedOperators(f) {
		return nil, fmt.Errorf("tautology: %s uses operators beyond -> and ~", f)
	}
	return proveInModel(f, FormulaeCapturingModel(m), m)
}

func proveInModel(f *formula.Formula, captured []*formula.Formula, m semantics.Model) (*proof.Proof, error) {
	if formula.IsVariable(f.Root) {
		value, ok := m[f.Root]
		if !ok {
			return nil, fmt.Errorf("tautology: variable %q is not assigned by the model", f.Root)
		}
		literal := f
		if !value {
			literal = formula.Not(f)
		}
		// The capturing formulas contain exactly this literal.
		return proof.New(
			proof.NewRule(captured, literal),
			axioms.System(),
			[]proof.Line{proof.AssumptionLine(literal)},
		), nil
	}

	if formula.IsUnary(f.Root) {
		value, err := semantics.Evaluate(f, m)
		if err != nil {
			return nil, err
		}
		inner, err := proveInModel(f.First, captured, m)
		if err != nil {
			return nil, err
		}
		if value {
			// f = ~phi with phi false: the recursion already proved ~phi.
			return inner, nil
		}
		// f = ~phi with phi true: lift the proof of phi to ~~phi.
		return deduction.ProveCorollary(inner, formula.Not(f), axioms.NN)
	}

	// Implication.
	value, err := semantics.Evaluate(f, m)
	if err != nil {
		return nil, err
	}
	if value {
		antecedent, err := semantics.Evaluate(f.First, m)
		if err != nil {
			return nil, err
		}
		if !antecedent {
			notFirst, err := proveInModel(formula.Not(f.First), captured, m)
			if err != nil {
				return nil, err
			}
			return deduction.ProveCorollary(notFirst, f, axioms.I2)
		}
		second, err := proveInModel(f.Second, captured, m)
		if err != nil {
			return nil, err
		}
		return deduction.ProveCorollary(second, f, axioms.I1)
	}
	// False implication: true antecedent, false consequent.
	first, err := proveInModel(f.First, captured, m)
	if err != nil {
		return nil, err
	}
	notSecond, err := proveInModel(f.Second, captured, m)
	if err != nil {
		return nil, err
	}
	return deduction.CombineProofs(first, notSecond, formula.Not(f), axioms.NI)
}

// ReduceAssumption merges a proof of some conclusion whose last assumption
// is psi with a proof of the same conclusion whose last assumption is
// ~psi into a proof of the conclusion from only the shared assumptions:
// both differing assumptions are removed with the deduction theorem and
// the results combined through the case-split schema.
func ReduceAssumption(fromAffirmation, fromNegation *proof.Proof) (*proof.Proof, error) {
	if !fromAffirmation.IsValid() || !fromNegation.IsValid() {
		return nil, fmt.Errorf("tautology: case split requires two valid proofs")
	}
	if !fromAffirmation.Statement.Conclusion.Equal(fromNegation.Statement.Conclusion) {
		return nil, fmt.Errorf("tautology: case-split branches prove different conclusions")
	}
	na, nn := len(fromAffirmation.Statement.Assumptions), len(fromNegation.Statement.Assumptions)
	if na == 0 || nn == 0 || na != nn {
		return nil, fmt.Errorf("tautology: case-split branches must share all but a last assumption")
	}
	last := fromAffirmation.Statement.Assumptions[na-1]
	if !fromNegation.Statement.Assumptions[nn-1].Equal(formula.Not(last)) {
		return nil, fmt.Errorf("tautology: branch assumptions %s and %s do not split a case",
			last, fromNegation.Statement.Assumptions[nn-1])
	}

	affirm, err := deduction.RemoveAssumption(fromAffirmation)
	if err != nil {
		return nil, err
	}
	negate, err := deduction.RemoveAssumption(fromNegation)
	if err != nil {
		return nil, err
	}
	return deduction.CombineProofs(affirm, negate, fromAffirmation.Statement.Conclusion, axioms.R)
}

// ProveTautology proves the given tautology over {->, ~} from the
// formulas capturing the given model, which must cover an alphabetical
// prefix of the tautology's variables; an empty or nil model yields an
// assumptionless proof. Unassigned variables are split on recursively,
// true branch then false branch, and the branches merged with
// ReduceAssumption. The two top-level branches run concurrently; they
// work on disjoint copies of the partial model.
func ProveTautology(t *formula.Formula, m semantics.Model) (*proof.Proof, error) {
	if !restrictedOperators(t) {
		return nil, fmt.Errorf("tautology: %s uses operators beyond -> and ~", t)
	}
	if !semantics.IsTautology(t) {
		return nil, fmt.Errorf("tautology: %s is not a tautology", t)
	}
	vars := semantics.SortedVariables(t)
	if len(m) > len(vars) {
		return nil, fmt.Errorf("tautology: model assigns more variables than %s has", t)
	}
	for _, name := range vars[:len(m)] {
		if _, ok := m[name]; !ok {
			return nil, fmt.Errorf("tautology: model must cover an alphabetical prefix of the variables, missing %q", name)
		}
	}
	return proveTautology(t, vars, m.Clone(), true)
}

func proveTautology(t *formula.Formula, vars []string, m semantics.Model, parallel bool) (*proof.Proof, error) {
	if len(m) == len(vars) {
		return ProveInModel(t, m)
	}
	next := vars[len(m)]

	affirmed := m.Clone()
	affirmed[next] = true
	negated := m.Clone()
	negated[next] = false

	var fromAffirmation, fromNegation *proof.Proof
	if parallel {
		var g errgroup.Group
		g.Go(func() error {
			var err error
			fromAffirmation, err = proveTautology(t, vars, affirmed, false)
			return err
		})
		g.Go(func() error {
			var err error
			fromNegation, err = proveTautology(t, vars, negated, false)
			return err
		})
		if err := g.Wait(); err != nil {
			return nil, err
		}
	} else {
		var err error
		if fromAffirmation, err = proveTautology(t, vars, affirmed, false); err != nil {
			return nil, err
		}
		if fromNegation, err = proveTautology(t, vars, negated, false); err != nil {
			return nil, err
		}
	}
	return ReduceAssumption(fromAffirmation, fromNegation)
}

// ProofOrCounterexample either proves the given formula over {->, ~} or
// returns the first model, in enumeration order, in which it does not
// hold. Exactly one of the results is non-nil.
func ProofOrCounterexample(f *formula.Formula) (*proof.Proof, semantics.Model, error) {
	if !restrictedOperators(f) {
		return nil, nil, fmt.Errorf("tautology: %s uses operators beyond -> and ~", f)
	}
	counterexample, err := semantics.FirstCounterexample(f)
	if err != nil {
		return nil, nil, err
	}
	if counterexample != nil {
		return nil, counterexample, nil
	}
	p, err := ProveTautology(f, nil)
	if err != nil {
		return nil, nil, err
	}
	return p, nil, nil
}

// ProveSoundInference proves the given semantically sound rule over
// {->, ~}: its implication-chain encoding is proved as a tautology, then
// each outer implication is stripped by re-asserting its antecedent as an
// assumption and applying modus ponens, restoring the rule's assumption
// list.
func ProveSoundInference(r *proof.InferenceRule) (*proof.Proof, error) {
	for _, f := range append(append([]*formula.Formula{}, r.Assumptions...), r.Conclusion) {
		if !restrictedOperators(f) {
			return nil, fmt.Errorf("tautology: %s uses operators beyond -> and ~", f)
		}
	}
	if !semantics.IsSoundInference(r) {
		return nil, fmt.Errorf("tautology: rule %s is not sound", r)
	}

	encoded := r.EncodeAsFormula()
	chain, err := ProveTautology(encoded, nil)
	if err != nil {
		return nil, err
	}

	lines := append([]proof.Line{}, chain.Lines...)
	conclusion := encoded
	for range r.Assumptions {
		last := len(lines) - 1
		antecedent, consequent := conclusion.First, conclusion.Second
		lines = append(lines, proof.AssumptionLine(antecedent))
		lines = append(lines, proof.DerivedLine(consequent, axioms.MP, last+1, last))
		conclusion = consequent
	}
	return proof.New(proof.NewRule(r.Assumptions, conclusion), chain.Rules, lines), nil
}

// ModelOrInconsistency either finds a model in which every given formula
// holds or proves the fixed absurdity ~(p->p) from the formulas. Exactly
// one of the results is non-nil.
func ModelOrInconsistency(formulas []*formula.Formula) (semantics.Model, *proof.Proof, error) {
	union := make(map[string]struct{})
	for _, f := range formulas {
		if !restrictedOperators(f) {
			return nil, nil, fmt.Errorf("tautology: %s uses operators beyond -> and ~", f)
		}
		for name := range f.Variables() {
			union[name] = struct{}{}
		}
	}
	vars := make([]string, 0, len(union))
	for name := range union {
		vars = append(vars, name)
	}
	sort.Strings(vars)

	models := semantics.AllModels(vars)
	if len(vars) == 0 {
		models = []semantics.Model{{}}
	}
	for _, m := range models {
		satisfied := true
		for _, f := range formulas {
			value, err := semantics.Evaluate(f, m)
			if err != nil {
				return nil, nil, err
			}
			if !value {
				satisfied = false
				break
			}
		}
		if satisfied {
			return m, nil, nil
		}
	}

	absurdity := formula.Not(formula.Implies(formula.Var("p"), formula.Var("p")))
	p, err := ProveSoundInference(proof.NewRule(formulas, absurdity))
	if err != nil {
		return nil, nil, err
	}
	return nil, p, nil
}
