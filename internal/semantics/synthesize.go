package semantics

import (
	"github.com/taut-lang/taut/internal/formula"
)

// SynthesizeForModel builds a conjunctive clause that holds exactly in the
// given model: each true variable appears as itself and each false
// variable negated.
func SynthesizeForModel(m Model) *formula.Formula {
	var clause *formula.Formula
	for _, name := range m.Variables() {
		literal := formula.Var(name)
		if !m[name] {
			literal = formula.Not(literal)
		}
		if clause == nil {
			clause = literal
		} else {
			clause = formula.Binary("&", clause, literal)
		}
	}
	return clause
}

// Synthesize builds a DNF formula over the given variables whose truth
// value in the k-th model of AllModels(variables) is values[k]. The
// variable list must be non-empty and values must have one entry per
// model.
func Synthesize(variables []string, values []bool) *formula.Formula {
	models := AllModels(variables)
	var dnf *formula.Formula
	for i, m := range models {
		if !values[i] {
			continue
		}
		clause := SynthesizeForModel(m)
		if dnf == nil {
			dnf = clause
		} else {
			dnf = formula.Binary("|", dnf, clause)
		}
	}
	if dnf == nil {
		// All-false spec: an unsatisfiable disjunction over the variables.
		for _, name := range variables {
			clause := formula.Binary("&", formula.Var(name), formula.Not(formula.Var(name)))
			if dnf == nil {
				dnf = clause
			} else {
				dnf = formula.Binary("|", dnf, clause)
			}
		}
	}
	return dnf
}
