// Package engine implements the calculation pipeline: base builder, rate
// composer, tax applier, reciprocity resolver, and result assembler that
// together turn a (StateRule, DealInput) pair into a
// TaxCalculationResult — one file per pipeline stage, a single exported
// entry point tying them together.
package engine

import (
	"github.com/vehiclex/taxengine/pkg/deal"
	"github.com/vehiclex/taxengine/pkg/money"
	"github.com/vehiclex/taxengine/pkg/rule"
)

// ComponentTax is one line of the composed tax — one jurisdictional rate
// applied to its base.
type ComponentTax struct {
	Label  deal.RateLabel
	Rate   float64
	Amount money.Money
}

// TaxSummary bundles a list of component taxes with their total, used both
// for the overall result and for each half of a lease's timing partition.
type TaxSummary struct {
	ComponentTaxes []ComponentTax
	TotalTax       money.Money
}

func sumComponents(cs []ComponentTax) money.Money {
	amounts := make([]money.Money, len(cs))
	for i, c := range cs {
		amounts[i] = c.Amount
	}
	return money.Sum(amounts...)
}

// Bases is the taxable-base decomposition: TotalTaxableBase must always
// equal the sum of the other three.
type Bases struct {
	VehicleBase      money.Money
	FeesBase         money.Money
	ProductsBase     money.Money
	TotalTaxableBase money.Money
}

// FeeAmount names one taxable fee line in the debug trace.
type FeeAmount struct {
	Code   rule.FeeCode
	Amount money.Money
}

// DebugTrace explains which admissions and credits the engine applied, plus
// a structured CalculationID and RuleVersion for correlating a result back
// to the rule version that produced it.
type DebugTrace struct {
	AppliedTradeIn           money.Money
	AppliedTradeInStateOnly  money.Money
	AppliedRebatesNonTaxable money.Money
	AppliedRebatesTaxable    money.Money
	TaxableDocFee            money.Money
	TaxableFees              []FeeAmount
	TaxableServiceContracts  money.Money
	TaxableGap               money.Money
	ReciprocityCredit        money.Money
	Notes                    []string

	CalculationID string
	RuleVersion   int
}

func (d *DebugTrace) note(msg string) {
	d.Notes = append(d.Notes, msg)
}

// LeaseBreakdown is the lease-specific timing partition: the portion of tax
// due at signing versus spread across the payment stream.
type LeaseBreakdown struct {
	UpfrontTaxableBase          money.Money
	UpfrontTaxes                TaxSummary
	PaymentTaxableBasePerPeriod money.Money
	PaymentTaxesPerPeriod       TaxSummary
	TotalTaxOverTerm            money.Money
}

// TaxCalculationResult is the complete, decomposed output of a single
// calculation call.
type TaxCalculationResult struct {
	Mode           rule.DealMode
	Bases          Bases
	Taxes          TaxSummary
	LeaseBreakdown *LeaseBreakdown
	Debug          DebugTrace
}

// baseResult is the Base Builder's internal output, consumed by the rate
// composer and tax applier. It is not part of the public result shape.
type baseResult struct {
	bases Bases
	debug DebugTrace

	// Pass-through aggregates the later stages need but that are not part of
	// Bases itself.
	taxableDocFee           money.Money
	taxableFees             []FeeAmount
	taxableServiceContracts money.Money
	taxableGap              money.Money
	taxableAccessories      money.Money
	taxableNegativeEquity   money.Money
	taxableRebates          money.Money

	// Lease-only aggregates used by the timing partition in lease.go.
	taxableCapReductionCash money.Money
	capCostReductionTotal   money.Money
}
