package semantics

import (
	"sort"

	"github.com/taut-lang/taut/internal/proof"
)

// EvaluateInference reports whether the rule holds in the given model:
// either some assumption is false in it, or the conclusion is true.
func EvaluateInference(r *proof.InferenceRule, m Model) (bool, error) {
	for _, a := range r.Assumptions {
		value, err := Evaluate(a, m)
		if err != nil {
			return false, err
		}
		if !value {
			return true, nil
		}
	}
	return Evaluate(r.Conclusion, m)
}

// IsSoundInference reports whether the rule holds in every model over its
// variables, i.e. whether its conclusion semantically follows from its
// assumptions.
func IsSoundInference(r *proof.InferenceRule) bool {
	set := r.Variables()
	vars := make([]string, 0, len(set))
	for name := range set {
		vars = append(vars, name)
	}
	sort.Strings(vars)
	models := AllModels(vars)
	if len(models) == 0 {
		models = []Model{{}}
	}
	for _, m := range models {
		holds, err := EvaluateInference(r, m)
		if err != nil || !holds {
			return false
		}
	}
	return true
}
