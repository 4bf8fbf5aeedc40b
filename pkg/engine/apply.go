package engine

import (
	"github.com/vehiclex/taxengine/pkg/deal"
	"github.com/vehiclex/taxengine/pkg/money"
	"github.com/vehiclex/taxengine/pkg/rule"
)

// applyStandardScheme handles the three non-special schemes: multiply each
// composed rate component by its base, narrowing the state component for
// the state-only trade-in credit and splitting out a separate warranty
// sub-base when the rule has a luxury tier.
func applyStandardScheme(r rule.StateRule, specs []rateComponentSpec, br baseResult) TaxSummary {
	fullBase := br.bases.TotalTaxableBase

	stateBase := fullBase
	localBase := fullBase
	if r.Extras.HasLuxuryTier {
		stateBase = stateBase.Sub(br.taxableServiceContracts)
	}
	if r.VehicleTaxScheme == rule.SchemeStatePlusLocal && r.Extras.TradeInStateRateOnly {
		stateBase = stateBase.Sub(br.debug.AppliedTradeInStateOnly)
	}

	var components []ComponentTax
	warrantyAdded := false
	for _, spec := range specs {
		base := localBase
		if spec.isState {
			base = stateBase
		}
		amount := base.MulRate(decimalFromFloat(spec.rate)).RoundToCent()
		components = append(components, ComponentTax{Label: spec.label, Rate: spec.rate, Amount: amount})

		if spec.isState && r.Extras.HasLuxuryTier && !warrantyAdded && !br.taxableServiceContracts.IsZero() {
			wRate := warrantyRate(r, specs)
			wAmount := br.taxableServiceContracts.MulRate(decimalFromFloat(wRate)).RoundToCent()
			components = append(components, ComponentTax{Label: spec.label, Rate: wRate, Amount: wAmount})
			warrantyAdded = true
		}
	}

	return TaxSummary{ComponentTaxes: components, TotalTax: sumComponents(components)}
}

// applySpecialScheme handles the TAVT/HUT/DMV-privilege-tax schemes: each
// replaces ordinary sales tax with a single flat-rate component computed
// directly from the scheme's typed config, ignoring the caller's rates
// entirely.
func applySpecialScheme(r rule.StateRule, in deal.DealInput, br baseResult) TaxSummary {
	switch r.SpecialScheme.Kind {
	case rule.SchemeConfigTAVT:
		return applyTAVT(r, in)
	case rule.SchemeConfigHUT:
		return applyHUT(r, in, br)
	case rule.SchemeConfigPrivilege:
		return applyPrivilege(r, br)
	default:
		return TaxSummary{}
	}
}

func applyTAVT(r rule.StateRule, in deal.DealInput) TaxSummary {
	cfg := r.SpecialScheme.TAVT
	base := in.VehiclePrice
	if cfg.AllowTradeInCredit {
		base = base.Sub(admitTradeIn(r.TradeInPolicy, in.TradeInValue))
	}
	amount := base.MulRate(decimalFromFloat(cfg.Rate)).RoundToCent()
	label := deal.NewRateLabel("TAVT")
	c := ComponentTax{Label: label, Rate: cfg.Rate, Amount: amount}
	return TaxSummary{ComponentTaxes: []ComponentTax{c}, TotalTax: amount}
}

func applyHUT(r rule.StateRule, in deal.DealInput, br baseResult) TaxSummary {
	cfg := r.SpecialScheme.HUT
	tradeIn := admitTradeIn(r.TradeInPolicy, in.TradeInValue)

	var base money.Money
	if cfg.ApplyToNetPriceOnly {
		base = in.VehiclePrice.Sub(tradeIn)
	} else {
		base = in.VehiclePrice.Add(in.DocFee).Sub(tradeIn).Add(in.NegativeEquity).Add(br.taxableRebates)
	}
	amount := base.MulRate(decimalFromFloat(cfg.BaseRate)).RoundToCent()
	label := deal.NewRateLabel("HUT")
	c := ComponentTax{Label: label, Rate: cfg.BaseRate, Amount: amount}
	return TaxSummary{ComponentTaxes: []ComponentTax{c}, TotalTax: amount}
}

func applyPrivilege(r rule.StateRule, br baseResult) TaxSummary {
	cfg := r.SpecialScheme.Privilege
	amount := br.bases.VehicleBase.MulRate(decimalFromFloat(cfg.Rate)).RoundToCent()
	label := deal.NewRateLabel("DMV_PRIVILEGE")
	c := ComponentTax{Label: label, Rate: cfg.Rate, Amount: amount}
	return TaxSummary{ComponentTaxes: []ComponentTax{c}, TotalTax: amount}
}

func isSpecialScheme(scheme rule.VehicleTaxScheme) bool {
	switch scheme {
	case rule.SchemeSpecialTAVT, rule.SchemeSpecialHUT, rule.SchemeDMVPrivilegeTax:
		return true
	default:
		return false
	}
}
