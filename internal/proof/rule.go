// Package proof implements the deductive core of the taut toolkit:
// inference rules with a unification-style specialization matcher, linear
// Hilbert-style proofs with per-line validity checking, and structural
// proof transformations (specialization, lemma inlining).
//
// Every value in this package is immutable after construction. All
// transformations build fresh values, sharing formula and rule subvalues
// where they are structurally identical.
package proof

import (
	"fmt"
	"strings"

	"github.com/taut-lang/taut/internal/formula"
)

// SpecializationMap binds variable names to the formulas substituted for
// them when a general formula or rule is specialized.
type SpecializationMap map[string]*formula.Formula

// MergeSpecializationMaps merges two variable bindings. The merge succeeds
// iff every variable present in both maps is bound to equal formulas; the
// result is the union of the entries. ok mirrors the matcher convention:
// a failed input (ok=false upstream) must be propagated by the caller by
// not calling merge at all, so both arguments here are taken to be
// successful matches.
func MergeSpecializationMaps(a, b SpecializationMap) (SpecializationMap, bool) {
	merged := make(SpecializationMap, len(a)+len(b))
	for name, f := range a {
		merged[name] = f
	}
	for name, f := range b {
		if bound, ok := merged[name]; ok && !bound.Equal(f) {
			return nil, false
		}
		merged[name] = f
	}
	return merged, true
}

// FormulaSpecializationMap computes the minimal variable binding under
// which general specializes to specialization: substituting the binding
// into general yields exactly specialization. ok is false when no such
// binding exists. This is the single matching primitive the checker and
// all proof surgery are built on.
func FormulaSpecializationMap(general, specialization *formula.Formula) (SpecializationMap, bool) {
	switch {
	case formula.IsVariable(general.Root):
		return SpecializationMap{general.Root: specialization}, true
	case formula.IsConstant(general.Root):
		if specialization.Root == general.Root {
			return SpecializationMap{}, true
		}
		return nil, false
	case formula.IsUnary(general.Root):
		if specialization.Root != general.Root {
			return nil, false
		}
		return FormulaSpecializationMap(general.First, specialization.First)
	}
	// Binary root: roots must match, then the two child matches merge.
	if specialization.Root != general.Root {
		return nil, false
	}
	left, ok := FormulaSpecializationMap(general.First, specialization.First)
	if !ok {
		return nil, false
	}
	right, ok := FormulaSpecializationMap(general.Second, specialization.Second)
	if !ok {
		return nil, false
	}
	return MergeSpecializationMaps(left, right)
}

// InferenceRule is an immutable inference rule: zero or more assumption
// formulas and one conclusion. A rule with no assumptions is an axiom
// schema; any specialization of its conclusion is unconditionally
// provable.
type InferenceRule struct {
	Assumptions []*formula.Formula
	Conclusion  *formula.Formula
}

// NewRule constructs an inference rule. The assumption slice is copied so
// the rule cannot be mutated through the argument.
func NewRule(assumptions []*formula.Formula, conclusion *formula.Formula) *InferenceRule {
	copied := make([]*formula.Formula, len(assumptions))
	copy(copied, assumptions)
	return &InferenceRule{Assumptions: copied, Conclusion: conclusion}
}

// MustRule builds a rule from canonical formula strings; it panics on
// malformed input and exists for fixed rule constants.
func MustRule(assumptions []string, conclusion string) *InferenceRule {
	parsed := make([]*formula.Formula, len(assumptions))
	for i, s := range assumptions {
		parsed[i] = formula.MustParse(s)
	}
	return &InferenceRule{Assumptions: parsed, Conclusion: formula.MustParse(conclusion)}
}

// String renders the rule as its assumptions followed by its conclusion,
// e.g. "[p, (p->q)] ==> q". The rendering is injective and doubles as the
// rule's identity for set membership.
func (r *InferenceRule) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, a := range r.Assumptions {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(a.String())
	}
	b.WriteString("] ==> ")
	b.WriteString(r.Conclusion.String())
	return b.String()
}

// Equal reports structural equality: same assumptions in the same order
// and the same conclusion.
func (r *InferenceRule) Equal(other *InferenceRule) bool {
	if r == other {
		return true
	}
	if r == nil || other == nil {
		return false
	}
	if len(r.Assumptions) != len(other.Assumptions) {
		return false
	}
	for i, a := range r.Assumptions {
		if !a.Equal(other.Assumptions[i]) {
			return false
		}
	}
	return r.Conclusion.Equal(other.Conclusion)
}

// Variables returns the set of variables occurring in the rule's
// assumptions and conclusion.
func (r *InferenceRule) Variables() map[string]struct{} {
	vars := make(map[string]struct{})
	for _, a := range r.Assumptions {
		for name := range a.Variables() {
			vars[name] = struct{}{}
		}
	}
	for name := range r.Conclusion.Variables() {
		vars[name] = struct{}{}
	}
	return vars
}

// Specialize substitutes the binding into every assumption and the
// conclusion, producing the specialized rule.
func (r *InferenceRule) Specialize(m SpecializationMap) *InferenceRule {
	assumptions := make([]*formula.Formula, len(r.Assumptions))
	for i, a := range r.Assumptions {
		assumptions[i] = a.SubstituteVariables(m)
	}
	return &InferenceRule{
		Assumptions: assumptions,
		Conclusion:  r.Conclusion.SubstituteVariables(m),
	}
}

// SpecializationMap computes the minimal binding under which r
// specializes to specialization: assumption-by-assumption matches are
// merged positionally and then merged with the conclusion match. A
// mismatch in assumption count fails immediately.
func (r *InferenceRule) SpecializationMap(specialization *InferenceRule) (SpecializationMap, bool) {
	if len(r.Assumptions) != len(specialization.Assumptions) {
		return nil, false
	}
	merged := SpecializationMap{}
	for i, a := range r.Assumptions {
		m, ok := FormulaSpecializationMap(a, specialization.Assumptions[i])
		if !ok {
			return nil, false
		}
		if merged, ok = MergeSpecializationMaps(merged, m); !ok {
			return nil, false
		}
	}
	m, ok := FormulaSpecializationMap(r.Conclusion, specialization.Conclusion)
	if !ok {
		return nil, false
	}
	return MergeSpecializationMaps(merged, m)
}

// IsSpecializationOf reports whether r is a specialization of general.
func (r *InferenceRule) IsSpecializationOf(general *InferenceRule) bool {
	_, ok := general.SpecializationMap(r)
	return ok
}

// EncodeAsFormula right-folds the rule's assumptions onto its conclusion
// as nested implications; the leftmost assumption becomes the outermost
// antecedent. A rule without assumptions encodes as its conclusion.
func (r *InferenceRule) EncodeAsFormula() *formula.Formula {
	encoded := r.Conclusion
	for i := len(r.Assumptions) - 1; i >= 0; i-- {
		encoded = formula.Implies(r.Assumptions[i], encoded)
	}
	return encoded
}

// errRule formats a rule for error messages.
func errRule(r *InferenceRule) string {
	if r == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%q", r.String())
}
