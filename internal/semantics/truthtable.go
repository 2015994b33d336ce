package semantics

import (
	"fmt"
	"io"
	"strings"

	"github.com/taut-lang/taut/internal/formula"
)

// WriteTruthTable writes the truth table of f to w, one row per model over
// the sorted variables of f, with a Markdown-style header:
//
//	| p | q76 | ~(p&q76) |
//	|---|-----|----------|
//	| F | F   | T        |
func WriteTruthTable(w io.Writer, f *formula.Formula) error {
	vars := SortedVariables(f)
	rendered := f.String()

	headers := append(append([]string{}, vars...), rendered)
	if _, err := fmt.Fprintf(w, "|%s|\n", strings.Join(pad(headers, headers), "|")); err != nil {
		return err
	}
	rules := make([]string, len(headers))
	for i, h := range headers {
		rules[i] = strings.Repeat("-", len(h)+2)
	}
	if _, err := fmt.Fprintf(w, "|%s|\n", strings.Join(rules, "|")); err != nil {
		return err
	}

	models := AllModels(vars)
	if len(vars) == 0 {
		models = []Model{{}}
	}
	for _, m := range models {
		value, err := Evaluate(f, m)
		if err != nil {
			return err
		}
		cells := make([]string, 0, len(headers))
		for _, name := range vars {
			cells = append(cells, letter(m[name]))
		}
		cells = append(cells, letter(value))
		if _, err := fmt.Fprintf(w, "|%s|\n", strings.Join(pad(cells, headers), "|")); err != nil {
			return err
		}
	}
	return nil
}

func letter(b bool) string {
	if b {
		return "T"
	}
	return "F"
}

// pad renders each cell as " value " padded to the width of its column
// header.
func pad(cells, headers []string) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = " " + c + strings.Repeat(" ", len(headers[i])-len(c)) + " "
	}
	return out
}
