// Package registry owns the stateCode -> rule.StateRule mapping the rest of
// the engine looks rules up through: construct once from in-process data,
// validate everything up front, never mutate again, and additionally
// partition states into implemented versus stub coverage.
package registry

import (
	"fmt"
	"sort"
	"strings"

	"github.com/vehiclex/taxengine/pkg/rule"
)

// allStateCodes is the canonical, frozen list of the 50 U.S. state codes the
// registry always reports from GetAllStateCodes. The District of Columbia
// and territories are out of scope.
var allStateCodes = [50]string{
	"AL", "AK", "AZ", "AR", "CA", "CO", "CT", "DE", "FL", "GA",
	"HI", "ID", "IL", "IN", "IA", "KS", "KY", "LA", "ME", "MD",
	"MA", "MI", "MN", "MS", "MO", "MT", "NE", "NV", "NH", "NJ",
	"NM", "NY", "NC", "ND", "OH", "OK", "OR", "PA", "RI", "SC",
	"SD", "TN", "TX", "UT", "VT", "VA", "WA", "WV", "WI", "WY",
}

// Registry is the immutable, process-wide rule lookup table. The zero value
// is not usable; construct with New.
type Registry struct {
	rules map[string]rule.StateRule
}

// New builds a Registry from a map of state code to StateRule, validating
// every rule via rule.StateRule.Validate. A structurally invalid rule is
// fatal — New panics, since an invalid rule must never ship, and this is
// the single validation pass the rest of the engine relies on.
//
// Keys are expected in canonical uppercase form; lowercase or mixed-case
// keys are rejected since GetRulesForState is the only supported path for
// case-insensitive lookup.
func New(rules map[string]rule.StateRule) *Registry {
	normalized := make(map[string]rule.StateRule, len(rules))
	for code, r := range rules {
		canon := strings.ToUpper(code)
		if canon != code {
			panic(fmt.Sprintf("registry: key %q is not canonical uppercase", code))
		}
		if r.StateCode != canon {
			panic(fmt.Sprintf("registry: rule for key %q carries StateCode %q", code, r.StateCode))
		}
		if err := r.Validate(); err != nil {
			panic(fmt.Sprintf("registry: invalid rule: %v", err))
		}
		normalized[canon] = r
	}
	return &Registry{rules: normalized}
}

// GetRulesForState looks up the rule for a state code. Lookup is
// case-insensitive; an unknown or malformed (non two-letter) code returns
// (zero value, false), never a panic — only load-time validation failures
// are fatal.
func (reg *Registry) GetRulesForState(code string) (rule.StateRule, bool) {
	if len(code) != 2 {
		return rule.StateRule{}, false
	}
	r, ok := reg.rules[strings.ToUpper(code)]
	return r, ok
}

// GetAllStateCodes returns a fresh copy of the 50 canonical state codes, so
// callers can mutate the slice they receive without corrupting shared state.
func GetAllStateCodes() []string {
	out := make([]string, len(allStateCodes))
	copy(out, allStateCodes[:])
	return out
}

// GetAllStateCodes is the Registry-method form of the package-level
// GetAllStateCodes, provided so callers holding only a *Registry do not need
// a second import alias to enumerate state codes.
func (reg *Registry) GetAllStateCodes() []string {
	return GetAllStateCodes()
}

// IsStateImplemented reports whether a state's rule is fully implemented
// rather than a STUB placeholder. Unknown codes are not implemented.
func (reg *Registry) IsStateImplemented(code string) bool {
	r, ok := reg.GetRulesForState(code)
	return ok && r.Status != rule.StatusStub
}

// GetImplementedStates returns the sorted list of canonical codes whose rule
// is loaded and not a stub.
func (reg *Registry) GetImplementedStates() []string {
	var out []string
	for _, code := range allStateCodes {
		if reg.IsStateImplemented(code) {
			out = append(out, code)
		}
	}
	sort.Strings(out)
	return out
}

// GetStubStates returns the sorted list of canonical codes that are either
// unloaded or explicitly marked STUB. Together with GetImplementedStates
// this always partitions GetAllStateCodes.
func (reg *Registry) GetStubStates() []string {
	var out []string
	for _, code := range allStateCodes {
		if !reg.IsStateImplemented(code) {
			out = append(out, code)
		}
	}
	sort.Strings(out)
	return out
}
