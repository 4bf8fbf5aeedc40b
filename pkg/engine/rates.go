package engine

import (
	"github.com/vehiclex/taxengine/pkg/deal"
	"github.com/vehiclex/taxengine/pkg/rule"
)

// rateComponentSpec is the composer's output: a rate with its label, ready
// for the tax applier to multiply against a base. isState marks the
// component the state-only trade-in credit and the luxury-tier override
// apply to.
type rateComponentSpec struct {
	label   deal.RateLabel
	rate    float64
	isState bool
}

// composeRates turns the caller's raw rate components into the
// scheme-filtered, luxury-adjusted, surcharge-injected set the tax applier
// multiplies against a base. Special schemes (TAVT/HUT/DMV privilege tax)
// ignore the caller's rates entirely; apply.go computes their amount
// directly from the rule's SpecialSchemeConfig, so for them composeRates
// returns no caller rates — only the lease surcharge component, when the
// deal is a lease and the rule declares one.
func composeRates(r rule.StateRule, in deal.DealInput, br baseResult) []rateComponentSpec {
	switch r.VehicleTaxScheme {
	case rule.SchemeSpecialTAVT, rule.SchemeSpecialHUT, rule.SchemeDMVPrivilegeTax:
		return injectLeaseSurcharge(r, in, nil)
	}

	var specs []rateComponentSpec
	for _, rc := range in.Rates {
		specs = append(specs, rateComponentSpec{label: rc.Label, rate: rc.Rate, isState: rc.Label.Kind == deal.RateLabelState})
	}

	switch r.VehicleTaxScheme {
	case rule.SchemeStateOnly:
		filtered := filterByKind(specs, deal.RateLabelState)
		if len(filtered) == 0 && !r.VehicleUsesLocalSalesTax {
			filtered = specs
		}
		specs = filtered
	case rule.SchemeLocalOnly:
		specs = excludeKind(specs, deal.RateLabelState)
	case rule.SchemeStatePlusLocal:
		// pass through unchanged
	}

	specs = applyLuxuryTier(r, in, specs)
	specs = injectLeaseSurcharge(r, in, specs)
	return specs
}

func filterByKind(specs []rateComponentSpec, kind deal.RateLabelKind) []rateComponentSpec {
	var out []rateComponentSpec
	for _, s := range specs {
		if s.label.Kind == kind {
			out = append(out, s)
		}
	}
	return out
}

func excludeKind(specs []rateComponentSpec, kind deal.RateLabelKind) []rateComponentSpec {
	var out []rateComponentSpec
	for _, s := range specs {
		if s.label.Kind != kind {
			out = append(out, s)
		}
	}
	return out
}

// applyLuxuryTier applies the luxury-tier rate override: the trigger is the
// pre-trade-in sale price plus doc fee, not the post-admission vehicle
// base; the threshold comparison is inclusive (>=).
func applyLuxuryTier(r rule.StateRule, in deal.DealInput, specs []rateComponentSpec) []rateComponentSpec {
	if !r.Extras.HasLuxuryTier || in.Mode != rule.ModeRetail {
		return specs
	}
	trigger := in.VehiclePrice.Add(in.DocFee)
	if !trigger.GreaterThanOrEqual(r.Extras.LuxuryThreshold) {
		return specs
	}
	out := make([]rateComponentSpec, len(specs))
	copy(out, specs)
	for i := range out {
		if out[i].isState {
			out[i].rate = r.Extras.LuxuryRate
		}
	}
	return out
}

func injectLeaseSurcharge(r rule.StateRule, in deal.DealInput, specs []rateComponentSpec) []rateComponentSpec {
	if in.Mode != rule.ModeLease || r.LeaseRules.SurchargeRate == 0 {
		return specs
	}
	return append(specs, rateComponentSpec{
		label: deal.NewRateLabel(r.LeaseRules.SurchargeLabel),
		rate:  r.LeaseRules.SurchargeRate,
	})
}

// warrantyRate returns the rate a service-contract/warranty sub-base should
// use: the rule's flat warranty rate when a luxury tier is configured,
// otherwise the ordinary state rate found among specs.
func warrantyRate(r rule.StateRule, specs []rateComponentSpec) float64 {
	if r.Extras.HasLuxuryTier {
		return r.Extras.WarrantyRate
	}
	for _, s := range specs {
		if s.isState {
			return s.rate
		}
	}
	return 0
}
