package proof

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/taut-lang/taut/internal/formula"
)

// Document is the stable JSON form of a proof, with formulas rendered in
// canonical string form. It is the interchange format of the taut-check
// tool and the HTTP service.
type Document struct {
	Statement RuleDocument   `json:"statement"`
	Rules     []RuleDocument `json:"rules"`
	Lines     []LineDocument `json:"lines"`
}

// RuleDocument is the JSON form of an inference rule.
type RuleDocument struct {
	Assumptions []string `json:"assumptions"`
	Conclusion  string   `json:"conclusion"`
}

// LineDocument is the JSON form of a proof line. Assumption lines omit
// both the rule and the citations.
type LineDocument struct {
	Formula   string        `json:"formula"`
	Rule      *RuleDocument `json:"rule,omitempty"`
	Citations []int         `json:"citations,omitempty"`
}

// EncodeRule renders a rule into its document form.
func EncodeRule(r *InferenceRule) RuleDocument {
	doc := RuleDocument{
		Assumptions: make([]string, len(r.Assumptions)),
		Conclusion:  r.Conclusion.String(),
	}
	for i, a := range r.Assumptions {
		doc.Assumptions[i] = a.String()
	}
	return doc
}

// DecodeRule parses a rule document.
func DecodeRule(doc RuleDocument) (*InferenceRule, error) {
	assumptions := make([]*formula.Formula, len(doc.Assumptions))
	for i, s := range doc.Assumptions {
		f, err := formula.Parse(s)
		if err != nil {
			return nil, fmt.Errorf("proof: bad assumption %q: %w", s, err)
		}
		assumptions[i] = f
	}
	conclusion, err := formula.Parse(doc.Conclusion)
	if err != nil {
		return nil, fmt.Errorf("proof: bad conclusion %q: %w", doc.Conclusion, err)
	}
	return &InferenceRule{Assumptions: assumptions, Conclusion: conclusion}, nil
}

// Encode renders a proof into its document form. Rules are emitted in
// their canonical order so encoding is deterministic.
func Encode(p *Proof) Document {
	doc := Document{Statement: EncodeRule(p.Statement)}
	for _, r := range p.Rules.Sorted() {
		doc.Rules = append(doc.Rules, EncodeRule(r))
	}
	for _, l := range p.Lines {
		ld := LineDocument{Formula: l.Formula.String()}
		if !l.IsAssumption() {
			rd := EncodeRule(l.Rule)
			ld.Rule = &rd
			ld.Citations = l.Citations
			if ld.Citations == nil {
				ld.Citations = []int{}
			}
		}
		doc.Lines = append(doc.Lines, ld)
	}
	return doc
}

// Decode parses a proof document back into a proof value. Line rules must
// already appear in the document's rule list; the shared values are
// reused so rule identity survives the round trip.
func Decode(doc Document) (*Proof, error) {
	statement, err := DecodeRule(doc.Statement)
	if err != nil {
		return nil, err
	}
	rules := make(RuleSet, len(doc.Rules))
	for _, rd := range doc.Rules {
		r, err := DecodeRule(rd)
		if err != nil {
			return nil, err
		}
		rules[r.String()] = r
	}
	lines := make([]Line, len(doc.Lines))
	for i, ld := range doc.Lines {
		f, err := formula.Parse(ld.Formula)
		if err != nil {
			return nil, fmt.Errorf("proof: bad formula at line %d: %w", i, err)
		}
		if ld.Rule == nil {
			lines[i] = AssumptionLine(f)
			continue
		}
		r, err := DecodeRule(*ld.Rule)
		if err != nil {
			return nil, fmt.Errorf("proof: bad rule at line %d: %w", i, err)
		}
		if member, ok := rules[r.String()]; ok {
			r = member
		}
		citations := ld.Citations
		if citations == nil {
			citations = []int{}
		}
		lines[i] = Line{Formula: f, Rule: r, Citations: citations}
	}
	return &Proof{Statement: statement, Rules: rules, Lines: lines}, nil
}

// ReadDocument decodes a proof document from JSON.
func ReadDocument(r io.Reader) (*Proof, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("proof: decoding document: %w", err)
	}
	return Decode(doc)
}

// WriteDocument encodes p as indented JSON.
func WriteDocument(w io.Writer, p *Proof) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(Encode(p))
}
