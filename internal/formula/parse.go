package formula

import (
	"fmt"
)

// Parse errors.
var (
	ErrEmptyInput     = fmt.Errorf("formula: empty input")
	ErrIllegalToken   = fmt.Errorf("formula: illegal token")
	ErrMissingParen   = fmt.Errorf("formula: missing closing parenthesis")
	ErrTrailingInput  = fmt.Errorf("formula: trailing input after formula")
	ErrMissingOperand = fmt.Errorf("formula: operator is missing an operand")
)

// ParsePrefix parses the longest prefix of s that is a canonical formula.
// It returns the parsed formula and the unparsed suffix. If no prefix of s
// is a formula, it returns an error describing the first offending token.
func ParsePrefix(s string) (*Formula, string, error) {
	if s == "" {
		return nil, "", ErrEmptyInput
	}
	c := s[0]
	switch {
	case c >= 'p' && c <= 'z':
		return parseVariable(s)
	case IsConstant(string(c)):
		return &Formula{Root: string(c)}, s[1:], nil
	case IsUnary(string(c)):
		operand, rest, err := ParsePrefix(s[1:])
		if err != nil {
			return nil, "", fmt.Errorf("%w: %q", ErrMissingOperand, s)
		}
		return &Formula{Root: "~", First: operand}, rest, nil
	case c == '(':
		return parseBinary(s)
	}
	return nil, "", fmt.Errorf("%w: %q", ErrIllegalToken, string(c))
}

// parseVariable consumes a variable name: one letter plus any digits.
func parseVariable(s string) (*Formula, string, error) {
	end := 1
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	return &Formula{Root: s[:end]}, s[end:], nil
}

// parseBinary consumes a parenthesized binary application. s starts at the
// opening parenthesis.
func parseBinary(s string) (*Formula, string, error) {
	left, rest, err := ParsePrefix(s[1:])
	if err != nil {
		return nil, "", err
	}
	op, rest, err := parseBinaryOperator(rest)
	if err != nil {
		return nil, "", err
	}
	right, rest, err := ParsePrefix(rest)
	if err != nil {
		return nil, "", err
	}
	if rest == "" || rest[0] != ')' {
		return nil, "", ErrMissingParen
	}
	return &Formula{Root: op, First: left, Second: right}, rest[1:], nil
}

// parseBinaryOperator consumes a binary operator token at the front of s.
// Operator tokens are one to three characters; the longest match wins so
// that '<->' is not read as an illegal '<' and '->' is not split.
func parseBinaryOperator(s string) (string, string, error) {
	for _, width := range []int{3, 2, 1} {
		if len(s) >= width && IsBinary(s[:width]) {
			return s[:width], s[width:], nil
		}
	}
	return "", "", fmt.Errorf("%w: expected binary operator at %q", ErrIllegalToken, s)
}

// Parse parses s, which must be exactly the canonical form of a formula.
func Parse(s string) (*Formula, error) {
	f, rest, err := ParsePrefix(s)
	if err != nil {
		return nil, err
	}
	if rest != "" {
		return nil, fmt.Errorf("%w: %q", ErrTrailingInput, rest)
	}
	return f, nil
}

// MustParse is Parse for trusted, fixed inputs such as axiom schemas; it
// panics on malformed input.
func MustParse(s string) *Formula {
	f, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return f
}

// IsFormula reports whether s is the canonical form of some formula.
func IsFormula(s string) bool {
	_, err := Parse(s)
	return err == nil
}
