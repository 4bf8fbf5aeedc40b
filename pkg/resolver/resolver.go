// Package resolver implements the multi-state primary-state resolution
// layer: given a dealer rooftop's configuration and a deal's party
// information, it decides which state's StateRule governs the calculation.
// Resolution never fails — missing inputs fall back to whatever state
// information is present, and an invalid (not two-character) party state
// code is treated the same as a missing one.
package resolver

import "sort"

// TaxPerspective is a rooftop's default stance on which state should govern
// a deal absent an override.
type TaxPerspective string

const (
	PerspectiveDealerState      TaxPerspective = "DEALER_STATE"
	PerspectiveRegistrationState TaxPerspective = "REGISTRATION_STATE"
	PerspectiveBuyerState       TaxPerspective = "BUYER_STATE"
)

// StateOverride narrows or forces primary-state selection for a specific
// state code, independent of the rooftop's default perspective.
type StateOverride struct {
	DisallowPrimary bool
	ForcePrimary    bool
}

// RooftopConfig describes a dealer site: its home state, its default
// perspective, which registration states it is willing to transact for, and
// any per-state overrides to that default behavior.
type RooftopConfig struct {
	ID                        string
	Name                      string
	DealerStateCode           string
	DefaultTaxPerspective     TaxPerspective
	AllowedRegistrationStates map[string]bool
	StateOverrides            map[string]StateOverride
}

// DealParties carries the two party-state facts a deal supplies: where the
// buyer resides and where the vehicle will be registered. Either may be
// empty; ResolveTaxContext fills the gap from whichever one is present.
type DealParties struct {
	BuyerResidenceState string
	RegistrationState   string
}

// TaxContext is the resolver's output: the primary state whose StateRule
// governs the deal, plus every other state code involved (for reciprocity
// and multi-state diagnostics).
type TaxContext struct {
	PrimaryStateCode        string
	DealerStateCode         string
	BuyerResidenceStateCode string
	RegistrationStateCode   string
}

func override(cfg RooftopConfig, state string) (StateOverride, bool) {
	if state == "" || cfg.StateOverrides == nil {
		return StateOverride{}, false
	}
	o, ok := cfg.StateOverrides[state]
	return o, ok
}

func allowedRegistration(cfg RooftopConfig, state string) bool {
	if cfg.AllowedRegistrationStates == nil {
		return false
	}
	return cfg.AllowedRegistrationStates[state]
}

// ResolveTaxContext runs a fixed-order precedence list: force overrides
// first (registration wins over buyer-residence when both are forced and
// distinct), then the rooftop's declared perspective, then the fallback
// chain for missing party state. The result depends only on (rooftop,
// parties); calling twice with the same inputs yields identical output.
func ResolveTaxContext(cfg RooftopConfig, parties DealParties) TaxContext {
	for _, code := range []*string{&parties.BuyerResidenceState, &parties.RegistrationState} {
		if len(*code) != 2 {
			*code = ""
		}
	}

	buyer := parties.BuyerResidenceState
	registration := parties.RegistrationState
	dealer := cfg.DealerStateCode

	primary := resolvePrimary(cfg, parties)

	ctx := TaxContext{
		PrimaryStateCode:        primary,
		DealerStateCode:         dealer,
		BuyerResidenceStateCode: buyer,
		RegistrationStateCode:   registration,
	}
	fillFallbacks(&ctx)
	return ctx
}

// resolvePrimary runs the force-override and perspective decision steps.
// The missing-input fallback is applied afterward by fillFallbacks, since
// it governs TaxContext's other three fields too, not just primary.
func resolvePrimary(cfg RooftopConfig, parties DealParties) string {
	buyer := parties.BuyerResidenceState
	registration := parties.RegistrationState
	dealer := cfg.DealerStateCode

	// Force overrides. Registration wins when both registration and buyer
	// residence carry a forcePrimary override and are distinct.
	if o, ok := override(cfg, registration); ok && o.ForcePrimary {
		return registration
	}
	if buyer != dealer {
		if o, ok := override(cfg, buyer); ok && o.ForcePrimary {
			return buyer
		}
	}

	// Rooftop perspective.
	switch cfg.DefaultTaxPerspective {
	case PerspectiveRegistrationState:
		if registration != "" {
			if o, ok := override(cfg, registration); ok && o.DisallowPrimary {
				return dealer
			}
			return registration
		}
		return dealer
	case PerspectiveDealerState:
		if o, ok := override(cfg, registration); ok && o.DisallowPrimary {
			return registration
		}
		return dealer
	case PerspectiveBuyerState:
		if buyer != "" && buyer != dealer && allowedRegistration(cfg, buyer) {
			return buyer
		}
		if registration != "" {
			return registration
		}
		return dealer
	default:
		return dealer
	}
}

// fillFallbacks fills in missing party state: a missing buyer residence
// defaults to the registration state, a missing registration state defaults
// to buyer residence, and if both are missing they default to the dealer
// state. PrimaryStateCode is left untouched; it was already resolved from
// whatever inputs were actually present.
func fillFallbacks(ctx *TaxContext) {
	if ctx.BuyerResidenceStateCode == "" && ctx.RegistrationStateCode == "" {
		ctx.BuyerResidenceStateCode = ctx.DealerStateCode
		ctx.RegistrationStateCode = ctx.DealerStateCode
		return
	}
	if ctx.BuyerResidenceStateCode == "" {
		ctx.BuyerResidenceStateCode = ctx.RegistrationStateCode
	}
	if ctx.RegistrationStateCode == "" {
		ctx.RegistrationStateCode = ctx.BuyerResidenceStateCode
	}
}

// IsMultiStateDeal reports whether any two of the four TaxContext state
// codes differ.
func IsMultiStateDeal(ctx TaxContext) bool {
	codes := []string{ctx.PrimaryStateCode, ctx.DealerStateCode, ctx.BuyerResidenceStateCode, ctx.RegistrationStateCode}
	for i := 1; i < len(codes); i++ {
		if codes[i] != codes[0] {
			return true
		}
	}
	return false
}

// GetInvolvedStates returns the sorted, de-duplicated list of state codes
// present in a TaxContext.
func GetInvolvedStates(ctx TaxContext) []string {
	set := map[string]bool{
		ctx.PrimaryStateCode:        true,
		ctx.DealerStateCode:         true,
		ctx.BuyerResidenceStateCode: true,
		ctx.RegistrationStateCode:   true,
	}
	var out []string
	for code := range set {
		if code != "" {
			out = append(out, code)
		}
	}
	sort.Strings(out)
	return out
}

// CreateSimpleRooftopConfig builds a single-state, dealer-perspective
// rooftop — the common case where a dealer only transacts within its home
// state.
func CreateSimpleRooftopConfig(state string, name string) RooftopConfig {
	if name == "" {
		name = state + " Rooftop"
	}
	return RooftopConfig{
		ID:                    state + "-simple",
		Name:                  name,
		DealerStateCode:       state,
		DefaultTaxPerspective: PerspectiveDealerState,
		AllowedRegistrationStates: map[string]bool{
			state: true,
		},
	}
}

// CreateMultiStateRooftopConfig builds a rooftop that additionally
// transacts for a set of out-of-state registrations, defaulting to
// registration-state perspective — the common cross-border-dealer case.
func CreateMultiStateRooftopConfig(state string, additional []string, perspective TaxPerspective, name string) RooftopConfig {
	if name == "" {
		name = state + " Multi-State Rooftop"
	}
	if perspective == "" {
		perspective = PerspectiveRegistrationState
	}
	allowed := map[string]bool{state: true}
	for _, s := range additional {
		allowed[s] = true
	}
	return RooftopConfig{
		ID:                        state + "-multi",
		Name:                      name,
		DealerStateCode:           state,
		DefaultTaxPerspective:     perspective,
		AllowedRegistrationStates: allowed,
	}
}
