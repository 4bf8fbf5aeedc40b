package engine

import (
	"github.com/vehiclex/taxengine/pkg/deal"
	"github.com/vehiclex/taxengine/pkg/money"
	"github.com/vehiclex/taxengine/pkg/rule"
)

// applyComponentsToBase multiplies every composed rate component against a
// single flat base, rounding each to the cent. Used by the lease timing
// partition, where (unlike the retail standard-scheme path) the same base
// applies to every component within a bucket.
func applyComponentsToBase(specs []rateComponentSpec, base money.Money) TaxSummary {
	components := make([]ComponentTax, 0, len(specs))
	for _, s := range specs {
		amount := base.MulRate(decimalFromFloat(s.rate)).RoundToCent()
		components = append(components, ComponentTax{Label: s.label, Rate: s.rate, Amount: amount})
	}
	return TaxSummary{ComponentTaxes: components, TotalTax: sumComponents(components)}
}

// buildLeasePartition dispatches to one of the three lease timing methods,
// each a thin config over one shared accumulation pattern: the method just
// decides which aggregates land in the upfront bucket versus the
// per-period bucket.
func buildLeasePartition(r rule.StateRule, in deal.DealInput, specs []rateComponentSpec, br baseResult) LeaseBreakdown {
	switch r.LeaseRules.Method {
	case rule.LeaseMethodFullUpfront:
		return fullUpfrontPartition(specs, br)
	case rule.LeaseMethodHybrid:
		return hybridPartition(r, in, specs, br)
	default:
		return monthlyPartition(r, in, specs, br)
	}
}

func fullUpfrontPartition(specs []rateComponentSpec, br baseResult) LeaseBreakdown {
	upfrontBase := br.bases.TotalTaxableBase
	upfrontTaxes := applyComponentsToBase(specs, upfrontBase)
	return LeaseBreakdown{
		UpfrontTaxableBase:          upfrontBase,
		UpfrontTaxes:                upfrontTaxes,
		PaymentTaxableBasePerPeriod: money.Zero(),
		PaymentTaxesPerPeriod:       TaxSummary{},
		TotalTaxOverTerm:           upfrontTaxes.TotalTax,
	}
}

func monthlyPartition(r rule.StateRule, in deal.DealInput, specs []rateComponentSpec, br baseResult) LeaseBreakdown {
	upfrontBase := money.Zero()
	if r.LeaseRules.TaxFeesUpfront {
		upfrontBase = br.bases.FeesBase.Add(br.bases.ProductsBase)
	}
	upfrontTaxes := applyComponentsToBase(specs, upfrontBase)

	periodBase := in.BasePayment
	periodTaxes := applyComponentsToBase(specs, periodBase)

	total := upfrontTaxes.TotalTax.Add(periodTaxes.TotalTax.MulRate(decimalFromInt(in.PaymentCount)).RoundToCent())

	return LeaseBreakdown{
		UpfrontTaxableBase:          upfrontBase,
		UpfrontTaxes:                upfrontTaxes,
		PaymentTaxableBasePerPeriod: periodBase,
		PaymentTaxesPerPeriod:       periodTaxes,
		TotalTaxOverTerm:           total,
	}
}

func hybridPartition(r rule.StateRule, in deal.DealInput, specs []rateComponentSpec, br baseResult) LeaseBreakdown {
	upfrontBase := br.bases.FeesBase
	if r.LeaseRules.TaxCapReduction {
		upfrontBase = upfrontBase.Add(br.taxableCapReductionCash)
	}
	upfrontTaxes := applyComponentsToBase(specs, upfrontBase)

	periodBase := in.BasePayment
	periodTaxes := applyComponentsToBase(specs, periodBase)

	total := upfrontTaxes.TotalTax.Add(periodTaxes.TotalTax.MulRate(decimalFromInt(in.PaymentCount)).RoundToCent())

	return LeaseBreakdown{
		UpfrontTaxableBase:          upfrontBase,
		UpfrontTaxes:                upfrontTaxes,
		PaymentTaxableBasePerPeriod: periodBase,
		PaymentTaxesPerPeriod:       periodTaxes,
		TotalTaxOverTerm:           total,
	}
}
