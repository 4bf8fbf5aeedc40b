package engine

import (
	"github.com/vehiclex/taxengine/pkg/deal"
	"github.com/vehiclex/taxengine/pkg/money"
	"github.com/vehiclex/taxengine/pkg/rule"
)

// buildBase computes vehicleBase, feesBase, productsBase plus the debug
// entries the result assembler later surfaces, from (rule, input, mode).
// Retail and lease share the rebate-split and fee/product-taxability
// lookups (via rule.ProductTaxability); they differ in which admission
// fields apply to trade-in and negative equity.
func buildBase(r rule.StateRule, in deal.DealInput) baseResult {
	if in.Mode == deal.ModeLease {
		return buildLeaseBase(r, in)
	}
	return buildRetailBase(r, in)
}

func buildRetailBase(r rule.StateRule, in deal.DealInput) baseResult {
	var br baseResult

	appliedTradeIn := admitTradeIn(r.TradeInPolicy, in.TradeInValue)
	stateRateOnly := r.VehicleTaxScheme == rule.SchemeStatePlusLocal && r.Extras.TradeInStateRateOnly

	nonTaxableRebates, taxableRebates := splitRebates(r, in.RebateManufacturer, in.RebateDealer)
	br.debug.AppliedRebatesNonTaxable = nonTaxableRebates
	br.debug.AppliedRebatesTaxable = taxableRebates
	br.taxableRebates = taxableRebates

	vehicleBase := in.VehiclePrice
	if stateRateOnly {
		br.debug.AppliedTradeInStateOnly = appliedTradeIn
	} else {
		vehicleBase = vehicleBase.Sub(appliedTradeIn)
		br.debug.AppliedTradeIn = appliedTradeIn
	}
	vehicleBase = vehicleBase.Sub(nonTaxableRebates)

	if r.TaxOnAccessories {
		vehicleBase = vehicleBase.Add(in.AccessoriesAmount)
		br.taxableAccessories = in.AccessoriesAmount
	}
	if r.TaxOnNegativeEquity {
		vehicleBase = vehicleBase.Add(in.NegativeEquity)
		br.taxableNegativeEquity = in.NegativeEquity
	}
	br.bases.VehicleBase = vehicleBase

	feesBase, taxableDocFee, taxableFees := computeFeesBase(r, rule.ModeRetail, in.DocFee, in.OtherFees, &br.debug)
	br.bases.FeesBase = feesBase
	br.taxableDocFee = taxableDocFee
	br.taxableFees = taxableFees
	br.debug.TaxableDocFee = taxableDocFee
	br.debug.TaxableFees = taxableFees

	productsBase, taxableSC, taxableGap := computeProductsBase(r, rule.ModeRetail, in.ServiceContracts, in.Gap)
	br.bases.ProductsBase = productsBase
	br.taxableServiceContracts = taxableSC
	br.taxableGap = taxableGap
	br.debug.TaxableServiceContracts = taxableSC
	br.debug.TaxableGap = taxableGap

	br.bases.TotalTaxableBase = br.bases.VehicleBase.Add(br.bases.FeesBase).Add(br.bases.ProductsBase)
	return br
}

// buildLeaseBase mirrors buildRetailBase for leases: the payment-stream
// aggregate (basePayment * paymentCount) stands in for vehicle price,
// cap-cost reduction items substitute for trade-in/rebate, and every
// fee/product taxability lookup goes through the lease-specific rules.
func buildLeaseBase(r rule.StateRule, in deal.DealInput) baseResult {
	var br baseResult

	paymentStream := in.BasePayment.MulRate(decimalFromInt(in.PaymentCount)).RoundToCent()

	tradeIn := leaseTradeInCredit(r, in.CapReductionTradeIn)
	br.debug.AppliedTradeIn = tradeIn

	nonTaxableRebates, taxableRebates := leaseRebateSplit(r, in.CapReductionRebateManufacturer, in.CapReductionRebateDealer)
	br.debug.AppliedRebatesNonTaxable = nonTaxableRebates
	br.debug.AppliedRebatesTaxable = taxableRebates
	br.taxableRebates = taxableRebates

	vehicleBase := paymentStream.Sub(tradeIn).Sub(nonTaxableRebates)
	if r.LeaseRules.NegativeEquityTaxable {
		vehicleBase = vehicleBase.Add(in.NegativeEquity)
		br.taxableNegativeEquity = in.NegativeEquity
	}
	br.bases.VehicleBase = vehicleBase

	br.taxableCapReductionCash = leaseCashAdmission(r, in.CapReductionCash)
	br.capCostReductionTotal = money.Sum(in.CapReductionCash, in.CapReductionTradeIn, in.CapReductionRebateManufacturer, in.CapReductionRebateDealer)

	feesBase, taxableDocFee, taxableFees := computeFeesBase(r, rule.ModeLease, in.DocFee, in.OtherFees, &br.debug)
	br.bases.FeesBase = feesBase
	br.taxableDocFee = taxableDocFee
	br.taxableFees = taxableFees
	br.debug.TaxableDocFee = taxableDocFee
	br.debug.TaxableFees = taxableFees

	productsBase, taxableSC, taxableGap := computeProductsBase(r, rule.ModeLease, in.ServiceContracts, in.Gap)
	br.bases.ProductsBase = productsBase
	br.taxableServiceContracts = taxableSC
	br.taxableGap = taxableGap
	br.debug.TaxableServiceContracts = taxableSC
	br.debug.TaxableGap = taxableGap

	br.bases.TotalTaxableBase = br.bases.VehicleBase.Add(br.bases.FeesBase).Add(br.bases.ProductsBase)
	return br
}

func admitTradeIn(policy rule.TradeInPolicy, tradeInValue money.Money) money.Money {
	switch policy.Type {
	case rule.TradeInFull:
		return tradeInValue
	case rule.TradeInCapped:
		return money.Min(tradeInValue, policy.CapAmount)
	case rule.TradeInPercent:
		return tradeInValue.MulRate(decimalFromFloat(policy.Fraction)).RoundToCent()
	default:
		return money.Zero()
	}
}

func leaseTradeInCredit(r rule.StateRule, capReductionTradeIn money.Money) money.Money {
	switch r.LeaseRules.TradeInCredit {
	case rule.LeaseTradeInFull:
		return capReductionTradeIn
	case rule.LeaseTradeInFollowRetail:
		return admitTradeIn(r.TradeInPolicy, capReductionTradeIn)
	case rule.LeaseTradeInCapCostOnly, rule.LeaseTradeInNone:
		return money.Zero()
	default:
		return money.Zero()
	}
}

func leaseCashAdmission(r rule.StateRule, capReductionCash money.Money) money.Money {
	if r.LeaseRules.TaxCapReduction {
		return capReductionCash
	}
	return money.Zero()
}

// splitRebates applies the retail rebate table: a non-taxable rebate is
// subtracted from the base, a taxable rebate stays in (and is reported, but
// not subtracted).
func splitRebates(r rule.StateRule, manufacturer, dealerRebate money.Money) (nonTaxable, taxable money.Money) {
	if tax, ok := r.Rebates[rule.RebateManufacturer]; ok && !tax.Taxable {
		nonTaxable = nonTaxable.Add(manufacturer)
	} else {
		taxable = taxable.Add(manufacturer)
	}
	if tax, ok := r.Rebates[rule.RebateDealer]; ok && !tax.Taxable {
		nonTaxable = nonTaxable.Add(dealerRebate)
	} else {
		taxable = taxable.Add(dealerRebate)
	}
	return nonTaxable, taxable
}

// leaseRebateSplit applies LeaseRules.RebateBehavior: an Always* behavior
// overrides the retail table outright; FollowRetailRule defers to it.
func leaseRebateSplit(r rule.StateRule, manufacturer, dealerRebate money.Money) (nonTaxable, taxable money.Money) {
	switch r.LeaseRules.RebateBehavior {
	case rule.LeaseRebateAlwaysNonTaxable:
		return money.Sum(manufacturer, dealerRebate), money.Zero()
	case rule.LeaseRebateAlwaysTaxable:
		return money.Zero(), money.Sum(manufacturer, dealerRebate)
	default:
		return splitRebates(r, manufacturer, dealerRebate)
	}
}

func computeFeesBase(r rule.StateRule, mode rule.DealMode, docFee money.Money, fees []deal.FeeLine, debug *DebugTrace) (money.Money, money.Money, []FeeAmount) {
	taxableDocFee := money.Zero()
	if taxable, _ := r.ProductTaxability(mode, rule.FeeDocFee); taxable {
		taxableDocFee = docFee
	}

	var taxableFees []FeeAmount
	total := taxableDocFee
	for _, fee := range fees {
		taxable, known := r.ProductTaxability(mode, fee.Code)
		if !known {
			debug.note("unknown fee code " + string(fee.Code) + " treated as non-taxable")
			continue
		}
		if taxable {
			taxableFees = append(taxableFees, FeeAmount{Code: fee.Code, Amount: fee.Amount})
			total = total.Add(fee.Amount)
		}
	}
	return total, taxableDocFee, taxableFees
}

func computeProductsBase(r rule.StateRule, mode rule.DealMode, serviceContracts, gap money.Money) (money.Money, money.Money, money.Money) {
	taxableSC := money.Zero()
	if taxable, _ := r.ProductTaxability(mode, rule.FeeServiceContract); taxable {
		taxableSC = serviceContracts
	}
	taxableGap := money.Zero()
	if taxable, _ := r.ProductTaxability(mode, rule.FeeGAP); taxable {
		taxableGap = gap
	}
	return taxableSC.Add(taxableGap), taxableSC, taxableGap
}
