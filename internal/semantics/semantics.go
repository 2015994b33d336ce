// Package semantics implements truth-table semantics for propositional
// formulas: evaluation under a model, enumeration of all models over a
// variable list, tautology/contradiction/satisfiability classification,
// soundness checking of inference rules, and DNF synthesis.
package semantics

import (
	"fmt"
	"sort"

	"github.com/taut-lang/taut/internal/formula"
)

// Model assigns a truth value to each variable it is defined over.
type Model map[string]bool

// IsModel reports whether m is a model: every key must be a variable name.
func IsModel(m Model) bool {
	for name := range m {
		if !formula.IsVariable(name) {
			return false
		}
	}
	return true
}

// Variables returns the variables m is defined over, sorted.
func (m Model) Variables() []string {
	vars := make([]string, 0, len(m))
	for name := range m {
		vars = append(vars, name)
	}
	sort.Strings(vars)
	return vars
}

// Clone returns a copy of m; a nil model clones to an empty one.
func (m Model) Clone() Model {
	out := make(Model, len(m)+1)
	for name, value := range m {
		out[name] = value
	}
	return out
}

// String renders the model with variables in sorted order, e.g.
// "{p: T, q: F}".
func (m Model) String() string {
	out := "{"
	for i, name := range m.Variables() {
		if i > 0 {
			out += ", "
		}
		value := "F"
		if m[name] {
			value = "T"
		}
		out += name + ": " + value
	}
	return out + "}"
}

// Evaluate computes the truth value of f in m. The model must assign
// every variable of f.
func Evaluate(f *formula.Formula, m Model) (bool, error) {
	switch {
	case formula.IsConstant(f.Root):
		return f.Root == "T", nil
	case formula.IsVariable(f.Root):
		value, ok := m[f.Root]
		if !ok {
			return false, fmt.Errorf("semantics: variable %q is not assigned by the model", f.Root)
		}
		return value, nil
	case formula.IsUnary(f.Root):
		value, err := Evaluate(f.First, m)
		return !value, err
	}
	left, err := Evaluate(f.First, m)
	if err != nil {
		return false, err
	}
	right, err := Evaluate(f.Second, m)
	if err != nil {
		return false, err
	}
	switch f.Root {
	case "&":
		return left && right, nil
	case "|":
		return left || right, nil
	case "->":
		return !left || right, nil
	case "+":
		return left != right, nil
	case "<->":
		return left == right, nil
	case "-&":
		return !(left && right), nil
	case "-|":
		return !(left || right), nil
	}
	return false, fmt.Errorf("semantics: unknown operator %q", f.Root)
}

// AllModels returns every model over the given variables, in lexicographic
// order with false preceding true: the first variable varies slowest.
func AllModels(variables []string) []Model {
	n := len(variables)
	if n == 0 {
		return nil
	}
	models := make([]Model, 0, 1<<uint(n))
	for k := 0; k < 1<<uint(n); k++ {
		m := make(Model, n)
		for i, name := range variables {
			m[name] = k>>(uint(n-1-i))&1 == 1
		}
		models = append(models, m)
	}
	return models
}

// TruthValues computes the truth value of f in each of the given models,
// in order.
func TruthValues(f *formula.Formula, models []Model) ([]bool, error) {
	values := make([]bool, len(models))
	for i, m := range models {
		value, err := Evaluate(f, m)
		if err != nil {
			return nil, err
		}
		values[i] = value
	}
	return values, nil
}

// SortedVariables returns the variables of f in alphabetical order.
func SortedVariables(f *formula.Formula) []string {
	set := f.Variables()
	vars := make([]string, 0, len(set))
	for name := range set {
		vars = append(vars, name)
	}
	sort.Strings(vars)
	return vars
}

// IsTautology reports whether f holds in every model over its variables.
func IsTautology(f *formula.Formula) bool {
	return holdsEverywhere(f, true)
}

// IsContradiction reports whether f holds in no model over its variables.
func IsContradiction(f *formula.Formula) bool {
	return holdsEverywhere(f, false)
}

// IsSatisfiable reports whether f holds in at least one model over its
// variables.
func IsSatisfiable(f *formula.Formula) bool {
	return !IsContradiction(f)
}

func holdsEverywhere(f *formula.Formula, want bool) bool {
	vars := SortedVariables(f)
	if len(vars) == 0 {
		value, err := Evaluate(f, nil)
		return err == nil && value == want
	}
	for _, m := range AllModels(vars) {
		value, err := Evaluate(f, m)
		if err != nil || value != want {
			return false
		}
	}
	return true
}

// FirstCounterexample returns the first model, in AllModels order over the
// sorted variables of f, in which f does not hold, or nil if f is a
// tautology.
func FirstCounterexample(f *formula.Formula) (Model, error) {
	vars := SortedVariables(f)
	if len(vars) == 0 {
		value, err := Evaluate(f, nil)
		if err != nil {
			return nil, err
		}
		if !value {
			return Model{}, nil
		}
		return nil, nil
	}
	for _, m := range AllModels(vars) {
		value, err := Evaluate(f, m)
		if err != nil {
			return nil, err
		}
		if !value {
			return m, nil
		}
	}
	return nil, nil
}
