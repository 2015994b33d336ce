package formula

import (
	"testing"
)

func TestConversionOutput(t *testing.T) {
	tests := []struct {
		name    string
		convert func(*Formula) *Formula
		input   string
		want    string
	}{
		{"ToNotAndOr", ToNotAndOr, "(p->q)", "(~p|q)"},
		{"ToNotAndOr", ToNotAndOr, "(p-&q)", "~(p&q)"},
		{"ToNotAnd", ToNotAnd, "(p|q)", "~(~p&~q)"},
		{"ToNand", ToNand, "~p", "(p-&p)"},
		{"ToImpliesNot", ToImpliesNot, "(p&q)", "~(p->~q)"},
		{"ToImpliesNot", ToImpliesNot, "(p|q)", "(~p->q)"},
		{"ToImpliesFalse", ToImpliesFalse, "~p", "(p->F)"},
	}
	for _, tt := range tests {
		t.Run(tt.name+"/"+tt.input, func(t *testing.T) {
			got := tt.convert(MustParse(tt.input)).String()
			if got != tt.want {
				t.Errorf("%s(%s) = %s, want %s", tt.name, tt.input, got, tt.want)
			}
		})
	}
}

func TestConversionOperatorSets(t *testing.T) {
	inputs := []string{
		"(p->q)",
		"((p+q)<->(r-&s))",
		"(~p-|(q&r))",
		"((T->p)|F)",
	}
	tests := []struct {
		name    string
		convert func(*Formula) *Formula
		allowed []string
	}{
		{"ToNotAndOr", ToNotAndOr, []string{"~", "&", "|"}},
		{"ToNotAnd", ToNotAnd, []string{"~", "&"}},
		{"ToNand", ToNand, []string{"-&"}},
		{"ToImpliesNot", ToImpliesNot, []string{"->", "~"}},
		{"ToImpliesFalse", ToImpliesFalse, []string{"->", "F"}},
	}
	for _, tt := range tests {
		allowed := make(map[string]bool, len(tt.allowed))
		for _, op := range tt.allowed {
			allowed[op] = true
		}
		for _, input := range inputs {
			f := MustParse(input)
			got := tt.convert(f)
			for op := range got.Operators() {
				if !allowed[op] {
					t.Errorf("%s(%s) = %s uses operator %q", tt.name, input, got, op)
				}
			}
			if !equivalent(t, f, got) {
				t.Errorf("%s(%s) = %s is not equivalent to its input", tt.name, input, got)
			}
		}
	}
}

// equivalent brute-forces the truth tables of a and b over the union of
// their variables.
func equivalent(t *testing.T, a, b *Formula) bool {
	t.Helper()
	vars := make([]string, 0, 4)
	seen := make(map[string]bool)
	for _, f := range []*Formula{a, b} {
		for name := range f.Variables() {
			if !seen[name] {
				seen[name] = true
				vars = append(vars, name)
			}
		}
	}
	for k := 0; k < 1<<uint(len(vars)); k++ {
		m := make(map[string]bool, len(vars))
		for i, name := range vars {
			m[name] = k>>uint(i)&1 == 1
		}
		if evalIn(t, a, m) != evalIn(t, b, m) {
			return false
		}
	}
	return true
}

func evalIn(t *testing.T, f *Formula, m map[string]bool) bool {
	t.Helper()
	switch {
	case IsConstant(f.Root):
		return f.Root == "T"
	case IsVariable(f.Root):
		return m[f.Root]
	case IsUnary(f.Root):
		return !evalIn(t, f.First, m)
	}
	left, right := evalIn(t, f.First, m), evalIn(t, f.Second, m)
	switch f.Root {
	case "&":
		return left && right
	case "|":
		return left || right
	case "->":
		return !left || right
	case "+":
		return left != right
	case "<->":
		return left == right
	case "-&":
		return !(left && right)
	case "-|":
		return !(left || right)
	}
	t.Fatalf("unknown operator %q", f.Root)
	return false
}
