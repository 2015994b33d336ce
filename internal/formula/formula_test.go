package formula

import (
	"testing"
)

func TestTokenClassification(t *testing.T) {
	tests := []struct {
		token    string
		variable bool
		constant bool
		unary    bool
		binary   bool
	}{
		{token: "p", variable: true},
		{token: "q76", variable: true},
		{token: "z", variable: true},
		{token: "a"},
		{token: "p7x"},
		{token: "T", constant: true},
		{token: "F", constant: true},
		{token: "~", unary: true},
		{token: "&", binary: true},
		{token: "|", binary: true},
		{token: "->", binary: true},
		{token: "+", binary: true},
		{token: "<->", binary: true},
		{token: "-&", binary: true},
		{token: "-|", binary: true},
		{token: "-"},
		{token: ""},
	}
	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			if got := IsVariable(tt.token); got != tt.variable {
				t.Errorf("IsVariable(%q) = %v, want %v", tt.token, got, tt.variable)
			}
			if got := IsConstant(tt.token); got != tt.constant {
				t.Errorf("IsConstant(%q) = %v, want %v", tt.token, got, tt.constant)
			}
			if got := IsUnary(tt.token); got != tt.unary {
				t.Errorf("IsUnary(%q) = %v, want %v", tt.token, got, tt.unary)
			}
			if got := IsBinary(tt.token); got != tt.binary {
				t.Errorf("IsBinary(%q) = %v, want %v", tt.token, got, tt.binary)
			}
		})
	}
}

func TestParseRoundTrip(t *testing.T) {
	tests := []string{
		"p",
		"q76",
		"T",
		"F",
		"~p",
		"~~x12",
		"(p->q)",
		"(p->(q->r))",
		"((p->q)->r)",
		"~(p&q76)",
		"(p<->~q)",
		"((p-&q)-|(r+s))",
		"(~p|~~q)",
	}
	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			f, err := Parse(input)
			if err != nil {
				t.Fatalf("Parse(%q) failed: %v", input, err)
			}
			if got := f.String(); got != input {
				t.Errorf("Parse(%q).String() = %q", input, got)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []string{
		"",
		"(p->q",
		"(p->)",
		"p->q",
		"(pq)",
		"(p->q))",
		"A",
		"~",
		"(p<-q)",
	}
	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			if _, err := Parse(input); err == nil {
				t.Errorf("Parse(%q) succeeded, want error", input)
			}
		})
	}
}

func TestParsePrefix(t *testing.T) {
	f, rest, err := ParsePrefix("x12->q")
	if err != nil {
		t.Fatalf("ParsePrefix failed: %v", err)
	}
	if f.String() != "x12" || rest != "->q" {
		t.Errorf("ParsePrefix = (%s, %q), want (x12, \"->q\")", f, rest)
	}
}

func TestVariablesAndOperators(t *testing.T) {
	f := MustParse("((p->q76)&~(p|T))")
	vars := f.Variables()
	if len(vars) != 2 {
		t.Fatalf("Variables() = %v, want {p, q76}", vars)
	}
	for _, name := range []string{"p", "q76"} {
		if _, ok := vars[name]; !ok {
			t.Errorf("Variables() missing %q", name)
		}
	}
	ops := f.Operators()
	for _, op := range []string{"->", "&", "~", "|", "T"} {
		if _, ok := ops[op]; !ok {
			t.Errorf("Operators() missing %q", op)
		}
	}
	if len(ops) != 5 {
		t.Errorf("Operators() = %v, want 5 entries", ops)
	}
}

func TestSubstituteVariables(t *testing.T) {
	f := MustParse("((p->p)|z)")
	got := f.SubstituteVariables(map[string]*Formula{"p": MustParse("(q&r)")})
	want := "(((q&r)->(q&r))|z)"
	if got.String() != want {
		t.Errorf("SubstituteVariables = %s, want %s", got, want)
	}
	// The receiver is untouched.
	if f.String() != "((p->p)|z)" {
		t.Errorf("receiver mutated to %s", f)
	}
}

func TestSubstituteOperators(t *testing.T) {
	f := MustParse("((x&y)&~z)")
	got := f.SubstituteOperators(map[string]*Formula{"&": MustParse("~(~p|~q)")})
	want := "~(~~(~x|~y)|~~z)"
	if got.String() != want {
		t.Errorf("SubstituteOperators = %s, want %s", got, want)
	}
}

func TestEqual(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"p", "p", true},
		{"p", "q", false},
		{"(p->q)", "(p->q)", true},
		{"(p->q)", "(p&q)", false},
		{"~~p", "~p", false},
	}
	for _, tt := range tests {
		if got := MustParse(tt.a).Equal(MustParse(tt.b)); got != tt.want {
			t.Errorf("Equal(%s, %s) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}
