package proof

import (
	"sort"
)

// RuleSet is a set of inference rules keyed by their canonical rendering.
// Keying on the rendered form gives cheap equality and hashing without
// deep tree comparison on every membership test.
type RuleSet map[string]*InferenceRule

// NewRuleSet builds a set from the given rules.
func NewRuleSet(rules ...*InferenceRule) RuleSet {
	s := make(RuleSet, len(rules))
	for _, r := range rules {
		s[r.String()] = r
	}
	return s
}

// Contains reports whether r is a member of the set.
func (s RuleSet) Contains(r *InferenceRule) bool {
	_, ok := s[r.String()]
	return ok
}

// Union returns a new set holding the members of both sets.
func (s RuleSet) Union(other RuleSet) RuleSet {
	merged := make(RuleSet, len(s)+len(other))
	for k, r := range s {
		merged[k] = r
	}
	for k, r := range other {
		merged[k] = r
	}
	return merged
}

// With returns a new set that additionally contains the given rules.
func (s RuleSet) With(rules ...*InferenceRule) RuleSet {
	return s.Union(NewRuleSet(rules...))
}

// Without returns a new set with r removed.
func (s RuleSet) Without(r *InferenceRule) RuleSet {
	out := make(RuleSet, len(s))
	for k, member := range s {
		if k != r.String() {
			out[k] = member
		}
	}
	return out
}

// Equal reports whether both sets have exactly the same members.
func (s RuleSet) Equal(other RuleSet) bool {
	if len(s) != len(other) {
		return false
	}
	for k := range s {
		if _, ok := other[k]; !ok {
			return false
		}
	}
	return true
}

// Sorted returns the members ordered by their canonical rendering, for
// deterministic display and encoding.
func (s RuleSet) Sorted() []*InferenceRule {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	rules := make([]*InferenceRule, len(keys))
	for i, k := range keys {
		rules[i] = s[k]
	}
	return rules
}
