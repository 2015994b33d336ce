package proof

import (
	"bytes"
	"strings"
	"testing"

	"github.com/taut-lang/taut/internal/formula"
)

func TestDocumentRoundTrip(t *testing.T) {
	original := mpChain()
	var buf bytes.Buffer
	if err := WriteDocument(&buf, original); err != nil {
		t.Fatalf("WriteDocument failed: %v", err)
	}
	decoded, err := ReadDocument(&buf)
	if err != nil {
		t.Fatalf("ReadDocument failed: %v", err)
	}
	if !decoded.Statement.Equal(original.Statement) {
		t.Errorf("statement = %s, want %s", decoded.Statement, original.Statement)
	}
	if !decoded.Rules.Equal(original.Rules) {
		t.Errorf("rules = %v, want %v", decoded.Rules, original.Rules)
	}
	if len(decoded.Lines) != len(original.Lines) {
		t.Fatalf("lines = %d, want %d", len(decoded.Lines), len(original.Lines))
	}
	if !decoded.IsValid() {
		t.Errorf("decoded proof invalid:\n%s", decoded)
	}
}

func TestDecodeReusesRuleValues(t *testing.T) {
	doc := Encode(mpChain())
	decoded, err := Decode(doc)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	for i, l := range decoded.Lines {
		if l.IsAssumption() {
			continue
		}
		if member := decoded.Rules[l.Rule.String()]; member != l.Rule {
			t.Errorf("line %d carries a rule value distinct from the set member", i)
		}
	}
}

func TestReadDocumentErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"not json", "{"},
		{"bad conclusion", `{"statement": {"assumptions": [], "conclusion": "p->"}, "rules": [], "lines": []}`},
		{"bad line formula", `{
			"statement": {"assumptions": [], "conclusion": "(p->p)"},
			"rules": [],
			"lines": [{"formula": "(p->"}]
		}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ReadDocument(strings.NewReader(tt.input)); err == nil {
				t.Error("ReadDocument succeeded, want error")
			}
		})
	}
}

func TestEncodeDeterministic(t *testing.T) {
	p := New(
		MustRule(nil, "(p->p)"),
		NewRuleSet(testMP, testI0, testI1),
		[]Line{DerivedLine(formula.MustParse("(p->p)"), testI0)},
	)
	first := Encode(p)
	for i := 0; i < 8; i++ {
		again := Encode(p)
		for j := range first.Rules {
			if again.Rules[j].Conclusion != first.Rules[j].Conclusion {
				t.Fatalf("rule order differs across encodings at %d", j)
			}
		}
	}
	// Axiom lines keep an empty citation list rather than null.
	if first.Lines[0].Citations == nil {
		t.Error("axiom line encoded with nil citations")
	}
}
