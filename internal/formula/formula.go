// Package formula implements the syntactic layer of propositional logic
// for the taut toolkit: immutable formula trees, token classification,
// the canonical string form, parsing, and substitution of variables and
// operators.
//
// Formulas are value-like: once constructed they are never mutated, and
// every derived formula is a fresh tree that may share subtrees with its
// inputs. Equality is defined by the canonical string form, which is
// injective over well-formed formulas.
package formula

import (
	"strings"
)

// Token classification. The token vocabulary is fixed: variables are a
// letter in 'p'..'z' optionally followed by digits, constants are 'T' and
// 'F', the only unary operator is '~', and the binary operators are
// '&', '|', '->', '+', '<->', '-&' and '-|'.

// IsVariable reports whether s is an atomic proposition name.
func IsVariable(s string) bool {
	if len(s) == 0 || s[0] < 'p' || s[0] > 'z' {
		return false
	}
	for i := 1; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// IsConstant reports whether s is one of the truth constants.
func IsConstant(s string) bool {
	return s == "T" || s == "F"
}

// IsUnary reports whether s is a unary operator.
func IsUnary(s string) bool {
	return s == "~"
}

// IsBinary reports whether s is a binary operator.
func IsBinary(s string) bool {
	switch s {
	case "&", "|", "->", "+", "<->", "-&", "-|":
		return true
	}
	return false
}

// Formula is an immutable propositional formula in tree form. Root holds
// the token at the root of the tree; First is the operand of a unary or
// binary root, and Second the right operand of a binary root. For
// variables and constants both operands are nil.
type Formula struct {
	Root   string
	First  *Formula
	Second *Formula
}

// Var constructs an atomic proposition.
func Var(name string) *Formula { return &Formula{Root: name} }

// Const constructs a truth constant ("T" or "F").
func Const(name string) *Formula { return &Formula{Root: name} }

// Not constructs the negation of f.
func Not(f *Formula) *Formula { return &Formula{Root: "~", First: f} }

// Implies constructs the implication (l->r).
func Implies(l, r *Formula) *Formula {
	return &Formula{Root: "->", First: l, Second: r}
}

// Binary constructs a formula with the given binary operator at the root.
func Binary(op string, l, r *Formula) *Formula {
	return &Formula{Root: op, First: l, Second: r}
}

// String renders the canonical form of the formula: variables and
// constants as themselves, unary application without parentheses and
// binary application fully parenthesized. The rendering is injective.
func (f *Formula) String() string {
	var b strings.Builder
	f.render(&b)
	return b.String()
}

func (f *Formula) render(b *strings.Builder) {
	switch {
	case IsVariable(f.Root) || IsConstant(f.Root):
		b.WriteString(f.Root)
	case IsUnary(f.Root):
		b.WriteString(f.Root)
		f.First.render(b)
	default:
		b.WriteByte('(')
		f.First.render(b)
		b.WriteString(f.Root)
		f.Second.render(b)
		b.WriteByte(')')
	}
}

// Equal reports whether f and other denote the same formula.
func (f *Formula) Equal(other *Formula) bool {
	if f == other {
		return true
	}
	if f == nil || other == nil {
		return false
	}
	if f.Root != other.Root {
		return false
	}
	if (f.First == nil) != (other.First == nil) || (f.Second == nil) != (other.Second == nil) {
		return false
	}
	if f.First != nil && !f.First.Equal(other.First) {
		return false
	}
	if f.Second != nil && !f.Second.Equal(other.Second) {
		return false
	}
	return true
}

// Variables returns the set of atomic propositions occurring in f.
func (f *Formula) Variables() map[string]struct{} {
	vars := make(map[string]struct{})
	f.collectVariables(vars)
	return vars
}

func (f *Formula) collectVariables(vars map[string]struct{}) {
	if IsVariable(f.Root) {
		vars[f.Root] = struct{}{}
		return
	}
	if f.First != nil {
		f.First.collectVariables(vars)
	}
	if f.Second != nil {
		f.Second.collectVariables(vars)
	}
}

// Operators returns the set of operators occurring in f. Following the
// usual convention the constants 'T' and 'F' count as operators.
func (f *Formula) Operators() map[string]struct{} {
	ops := make(map[string]struct{})
	f.collectOperators(ops)
	return ops
}

func (f *Formula) collectOperators(ops map[string]struct{}) {
	if !IsVariable(f.Root) {
		ops[f.Root] = struct{}{}
	}
	if f.First != nil {
		f.First.collectOperators(ops)
	}
	if f.Second != nil {
		f.Second.collectOperators(ops)
	}
}

// SubstituteVariables returns the formula obtained by simultaneously
// replacing every occurrence of each variable that is a key in m with the
// formula it is mapped to. Variables not present in m are kept; the
// substituted subtrees are shared, not copied.
func (f *Formula) SubstituteVariables(m map[string]*Formula) *Formula {
	if len(m) == 0 {
		return f
	}
	if IsVariable(f.Root) {
		if repl, ok := m[f.Root]; ok {
			return repl
		}
		return f
	}
	if IsConstant(f.Root) {
		return f
	}
	if IsUnary(f.Root) {
		return &Formula{Root: f.Root, First: f.First.SubstituteVariables(m)}
	}
	return &Formula{
		Root:   f.Root,
		First:  f.First.SubstituteVariables(m),
		Second: f.Second.SubstituteVariables(m),
	}
}

// SubstituteOperators returns the formula obtained by replacing every
// occurrence of each constant or operator that is a key in m with the
// formula it is mapped to, in which 'p' stands for the first operand and
// 'q' for the second. Replacement templates must use no variables beyond
// 'p' and 'q'.
func (f *Formula) SubstituteOperators(m map[string]*Formula) *Formula {
	if IsVariable(f.Root) {
		return f
	}
	if IsConstant(f.Root) {
		if repl, ok := m[f.Root]; ok {
			return repl
		}
		return f
	}
	if IsUnary(f.Root) {
		first := f.First.SubstituteOperators(m)
		if repl, ok := m[f.Root]; ok {
			return repl.SubstituteVariables(map[string]*Formula{"p": first})
		}
		return &Formula{Root: f.Root, First: first}
	}
	first := f.First.SubstituteOperators(m)
	second := f.Second.SubstituteOperators(m)
	if repl, ok := m[f.Root]; ok {
		return repl.SubstituteVariables(map[string]*Formula{"p": first, "q": second})
	}
	return &Formula{Root: f.Root, First: first, Second: second}
}
