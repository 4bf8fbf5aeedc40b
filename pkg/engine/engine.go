package engine

import (
	"github.com/google/uuid"

	"github.com/vehiclex/taxengine/pkg/deal"
	"github.com/vehiclex/taxengine/pkg/engineerr"
	"github.com/vehiclex/taxengine/pkg/rule"
)

// CalculateTax is the engine's single entry point: it runs the full pipeline
// (base builder, rate composer, tax applier, reciprocity resolver, result
// assembler) over a normalized DealInput and a loaded StateRule. The caller
// is responsible for looking up the rule via the registry first — a STUB or
// unimplemented rule is rejected here, not silently calculated against.
func CalculateTax(input deal.DealInput, r rule.StateRule) (TaxCalculationResult, error) {
	if r.Status == rule.StatusStub {
		return TaxCalculationResult{}, engineerr.StubState(r.StateCode)
	}

	in, err := deal.Normalize(input)
	if err != nil {
		return TaxCalculationResult{}, err
	}

	if in.Mode == rule.ModeLease && !isSpecialScheme(r.VehicleTaxScheme) && len(in.Rates) == 0 {
		return TaxCalculationResult{}, engineerr.InvalidRates("lease deal requires at least one rate component")
	}

	br := buildBase(r, in)

	var raw TaxSummary
	var leaseBreakdown *LeaseBreakdown
	var specs []rateComponentSpec

	if isSpecialScheme(r.VehicleTaxScheme) {
		raw = applySpecialScheme(r, in, br)
	} else {
		specs = composeRates(r, in, br)
		if in.Mode == rule.ModeRetail && len(specs) == 0 {
			return TaxCalculationResult{}, engineerr.InvalidRates("no rate components available for state-dependent scheme")
		}
		raw = applyStandardScheme(r, specs, br)
	}

	if in.Mode == rule.ModeLease && !isSpecialScheme(r.VehicleTaxScheme) {
		partition := buildLeasePartition(r, in, specs, br)
		leaseBreakdown = &partition
	}

	rawTotal := raw.TotalTax
	if leaseBreakdown != nil {
		rawTotal = leaseBreakdown.TotalTaxOverTerm
	}

	reciprocityCredit := resolveReciprocity(r, in, in.Mode, rawTotal, stateRateOf(specs), br.bases.VehicleBase)
	br.debug.ReciprocityCredit = reciprocityCredit

	taxes := finalizeTotalTax(raw, reciprocityCredit, in.TaxAlreadyCollected)

	if leaseBreakdown != nil {
		adjustedUpfront := finalizeTotalTax(leaseBreakdown.UpfrontTaxes, reciprocityCredit, in.TaxAlreadyCollected)
		leaseBreakdown.UpfrontTaxes = adjustedUpfront
		leaseBreakdown.TotalTaxOverTerm = adjustedUpfront.TotalTax.Add(
			leaseBreakdown.PaymentTaxesPerPeriod.TotalTax.MulRate(decimalFromInt(in.PaymentCount)).RoundToCent(),
		)
		taxes.TotalTax = leaseBreakdown.TotalTaxOverTerm
	}

	debug := br.debug
	debug.CalculationID = uuid.New().String()
	debug.RuleVersion = r.Version

	result := TaxCalculationResult{
		Mode:           in.Mode,
		Bases:          br.bases,
		Taxes:          taxes,
		LeaseBreakdown: leaseBreakdown,
		Debug:          debug,
	}
	return result, nil
}
