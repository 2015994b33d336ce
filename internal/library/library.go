// Package library manages versioned lemma libraries: named collections of
// proved inference rules that other libraries may build on. A library
// declares semver constraints on the libraries whose rules its proofs
// cite, and the resolver pins one version per library so that a proof
// checked against "dedukt >=1.2.0" means the same thing on every machine.
package library

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	semver "github.com/Masterminds/semver/v3"

	"github.com/taut-lang/taut/internal/proof"
)

// Name identifies a lemma library.
type Name string

// Version is a semantic version string.
type Version string

// Dependency declares a constraint on another lemma library.
type Dependency struct {
	Name       Name   `json:"name"`
	Constraint string `json:"constraint"` // SemVer range, e.g. ">=1.2.0, <2.0.0"
}

// Release is one published version of a lemma library: the rules it
// proves and the libraries those proofs cite.
type Release struct {
	Name         Name                 `json:"name"`
	Version      Version              `json:"version"`
	Rules        []proof.RuleDocument `json:"rules"`
	Dependencies []Dependency         `json:"dependencies,omitempty"`
}

// Index lists all published releases per library.
type Index map[Name][]Release

// LoadIndex reads an index from a JSON file.
func LoadIndex(path string) (Index, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("library: reading index: %w", err)
	}
	var releases []Release
	if err := json.Unmarshal(data, &releases); err != nil {
		return nil, fmt.Errorf("library: parsing index: %w", err)
	}
	idx := make(Index)
	for _, rel := range releases {
		if _, err := semver.NewVersion(string(rel.Version)); err != nil {
			return nil, fmt.Errorf("library: release %s@%s: invalid version: %w", rel.Name, rel.Version, err)
		}
		idx[rel.Name] = append(idx[rel.Name], rel)
	}
	return idx, nil
}

// RuleSet decodes the release's rules into a rule set.
func (r Release) RuleSet() (proof.RuleSet, error) {
	set := make(proof.RuleSet, len(r.Rules))
	for _, rd := range r.Rules {
		rule, err := proof.DecodeRule(rd)
		if err != nil {
			return nil, fmt.Errorf("library: %s@%s: %w", r.Name, r.Version, err)
		}
		set[rule.String()] = rule
	}
	return set, nil
}

// Requirement is a root constraint for resolution.
type Requirement struct {
	Name       Name
	Constraint string
}

// Resolution pins one version per library.
type Resolution map[Name]Version

// ConflictError indicates that the constraints cannot be satisfied.
type ConflictError struct {
	Library Name
	Reason  string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("resolution conflict for %s: %s", e.Library, e.Reason)
}

// CycleError indicates a dependency cycle between libraries.
type CycleError struct {
	Stack []Name
}

func (e *CycleError) Error() string {
	parts := make([]string, len(e.Stack))
	for i, n := range e.Stack {
		parts[i] = string(n)
	}
	return fmt.Sprintf("library dependency cycle: %s", strings.Join(parts, " -> "))
}

// Options controls resolution behavior.
type Options struct {
	// PreferHigher picks the highest satisfying versions when true, the
	// lowest otherwise.
	PreferHigher bool
	// MaxDepth bounds the dependency chain; 0 means unlimited.
	MaxDepth int
}

// Resolver pins library versions against an index with backtracking.
type Resolver struct {
	index Index
	opts  Options
}

// NewResolver constructs a resolver over the given index.
func NewResolver(index Index, opts Options) *Resolver {
	return &Resolver{index: index, opts: opts}
}

// Resolve computes a version pinning that satisfies every requirement and
// all transitive dependencies. Multiple constraints on the same library
// are intersected.
func (r *Resolver) Resolve(reqs []Requirement) (Resolution, error) {
	merged := make(map[Name]*semver.Constraints)
	for _, q := range reqs {
		c, err := parseConstraint(q.Constraint)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", q.Name, err)
		}
		if existing, ok := merged[q.Name]; ok {
			// The semver package has no constraint intersection; AND-join
			// the textual forms and re-parse.
			joined, err := semver.NewConstraint(existing.String() + ", " + c.String())
			if err != nil {
				return nil, fmt.Errorf("%s: %w", q.Name, err)
			}
			merged[q.Name] = joined
		} else {
			merged[q.Name] = c
		}
	}

	roots := make([]Name, 0, len(merged))
	for n := range merged {
		roots = append(roots, n)
	}
	sort.Slice(roots, func(i, j int) bool { return roots[i] < roots[j] })

	result := make(Resolution)
	visiting := make(map[Name]bool)
	for _, root := range roots {
		if _, ok := result[root]; ok {
			continue
		}
		if err := r.pin(root, merged[root], result, visiting, 0); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// pin chooses a version of lib satisfying con plus its transitive
// dependencies, backtracking across candidate versions.
func (r *Resolver) pin(lib Name, con *semver.Constraints, out Resolution, visiting map[Name]bool, depth int) error {
	if r.opts.MaxDepth > 0 && depth > r.opts.MaxDepth {
		return &ConflictError{Library: lib, Reason: "max depth exceeded"}
	}
	if visiting[lib] {
		stack := make([]Name, 0, len(visiting)+1)
		for n, active := range visiting {
			if active {
				stack = append(stack, n)
			}
		}
		stack = append(stack, lib)
		sort.Slice(stack, func(i, j int) bool { return stack[i] < stack[j] })
		return &CycleError{Stack: stack}
	}
	if v, ok := out[lib]; ok {
		sv, err := semver.NewVersion(string(v))
		if err != nil {
			return fmt.Errorf("%s pinned invalid version: %w", lib, err)
		}
		if con != nil && !con.Check(sv) {
			return &ConflictError{Library: lib, Reason: fmt.Sprintf("pinned %s violates %s", v, con.String())}
		}
		return nil
	}

	releases := r.index[lib]
	if len(releases) == 0 {
		return &ConflictError{Library: lib, Reason: "no versions in index"}
	}
	type candidate struct {
		rel Release
		sv  *semver.Version
	}
	candidates := make([]candidate, len(releases))
	for i, rel := range releases {
		sv, err := semver.NewVersion(string(rel.Version))
		if err != nil {
			return fmt.Errorf("library: %s@%s: invalid version: %w", rel.Name, rel.Version, err)
		}
		candidates[i] = candidate{rel: rel, sv: sv}
	}
	sort.Slice(candidates, func(i, j int) bool {
		if r.opts.PreferHigher {
			return candidates[i].sv.GreaterThan(candidates[j].sv)
		}
		return candidates[i].sv.LessThan(candidates[j].sv)
	})

	for _, c := range candidates {
		if con != nil && !con.Check(c.sv) {
			continue
		}
		// A failed dependency walk may already have pinned transitive
		// libraries; snapshot so rejecting this candidate discards them.
		snapshot := cloneResolution(out)
		out[lib] = c.rel.Version
		visiting[lib] = true
		depsOK := true
		for _, d := range c.rel.Dependencies {
			dc, err := parseConstraint(d.Constraint)
			if err != nil {
				depsOK = false
				break
			}
			if err := r.pin(d.Name, dc, out, visiting, depth+1); err != nil {
				// Only an unsatisfied constraint is worth backtracking
				// over; cycles and malformed entries abort resolution.
				var conflict *ConflictError
				if !errors.As(err, &conflict) {
					visiting[lib] = false
					restoreResolution(out, snapshot)
					return err
				}
				depsOK = false
				break
			}
		}
		visiting[lib] = false
		if depsOK {
			return nil
		}
		restoreResolution(out, snapshot)
	}
	reason := "no candidate satisfies the constraints"
	if con != nil {
		reason = fmt.Sprintf("no candidate satisfies %s", con.String())
	}
	return &ConflictError{Library: lib, Reason: reason}
}

func parseConstraint(expr string) (*semver.Constraints, error) {
	if strings.TrimSpace(expr) == "" {
		return semver.NewConstraint(">=0.0.0")
	}
	return semver.NewConstraint(expr)
}

func cloneResolution(out Resolution) Resolution {
	cloned := make(Resolution, len(out))
	for k, v := range out {
		cloned[k] = v
	}
	return cloned
}

func restoreResolution(out, snapshot Resolution) {
	for k := range out {
		delete(out, k)
	}
	for k, v := range snapshot {
		out[k] = v
	}
}
