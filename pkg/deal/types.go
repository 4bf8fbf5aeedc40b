// Package deal defines the caller-supplied transaction description and the
// normalization step that validates and coerces it before the engine runs.
package deal

import (
	"math"

	"github.com/vehiclex/taxengine/pkg/engineerr"
	"github.com/vehiclex/taxengine/pkg/money"
	"github.com/vehiclex/taxengine/pkg/rule"
)

// DealMode mirrors rule.DealMode at the input boundary so callers never need
// to import the rule package just to build a DealInput.
type DealMode = rule.DealMode

const (
	ModeRetail DealMode = rule.ModeRetail
	ModeLease  DealMode = rule.ModeLease
)

// RateLabel classifies a caller-supplied rate component. Other carries the
// raw string for any label the engine doesn't specially recognize, so an
// unfamiliar jurisdiction tag from the caller survives instead of being
// dropped or misclassified.
type RateLabel struct {
	Kind  RateLabelKind
	Other string
}

type RateLabelKind string

const (
	RateLabelState    RateLabelKind = "STATE"
	RateLabelCounty   RateLabelKind = "COUNTY"
	RateLabelCity     RateLabelKind = "CITY"
	RateLabelTransit  RateLabelKind = "TRANSIT"
	RateLabelOtherTag RateLabelKind = "OTHER"
)

// NewRateLabel classifies a raw string into a RateLabel, preserving unknown
// values in Other rather than dropping them.
func NewRateLabel(raw string) RateLabel {
	switch raw {
	case string(RateLabelState), string(RateLabelCounty), string(RateLabelCity), string(RateLabelTransit):
		return RateLabel{Kind: RateLabelKind(raw)}
	default:
		return RateLabel{Kind: RateLabelOtherTag, Other: raw}
	}
}

func (l RateLabel) String() string {
	if l.Kind == RateLabelOtherTag {
		return l.Other
	}
	return string(l.Kind)
}

// RateComponent is one caller-supplied jurisdictional rate.
type RateComponent struct {
	Label RateLabel
	Rate  float64
}

// FeeLine is one entry of DealInput.OtherFees.
type FeeLine struct {
	Code   rule.FeeCode
	Amount money.Money
}

// OriginTaxInfo describes tax already paid to another state, feeding the
// reciprocity resolver.
type OriginTaxInfo struct {
	StateCode     string
	Amount        money.Money
	EffectiveRate float64
	TaxPaidDate   string // ISO YYYY-MM-DD
}

// DealInput is the caller-supplied, pre-normalization transaction
// description. Lease fields are ignored (and zero-filled by Normalize) when
// Mode is ModeRetail. Under ModeLease, Normalize zero-fills only
// AccessoriesAmount; the other retail fields are kept as supplied.
type DealInput struct {
	StateCode string
	AsOfDate  string // ISO YYYY-MM-DD
	Mode      DealMode

	// Retail fields.
	VehiclePrice        money.Money
	AccessoriesAmount   money.Money
	TradeInValue        money.Money
	RebateManufacturer  money.Money
	RebateDealer        money.Money
	DocFee              money.Money
	OtherFees           []FeeLine
	ServiceContracts    money.Money
	Gap                 money.Money
	NegativeEquity      money.Money
	TaxAlreadyCollected money.Money

	// Lease fields.
	GrossCapCost                   money.Money
	CapReductionCash               money.Money
	CapReductionTradeIn            money.Money
	CapReductionRebateManufacturer money.Money
	CapReductionRebateDealer       money.Money
	BasePayment                    money.Money
	PaymentCount                   int

	Rates []RateComponent

	OriginTaxInfo *OriginTaxInfo
}

// Normalize validates a DealInput and coerces it into the shape the engine
// expects: non-negativity is already enforced by money.Money itself for
// every field of that type, so Normalize's own job is lease-field zero-fill
// under retail mode (and AccessoriesAmount zero-fill under lease mode) plus
// the mode-specific required-field checks. It returns a copy with lease
// fields zeroed under ModeRetail; the original is never mutated. The engine, not Normalize, is responsible for
// rejecting an empty rate list — a special-scheme rule ignores the caller's
// rates entirely, so that check depends on the rule and belongs in
// CalculateTax.
func Normalize(in DealInput) (DealInput, error) {
	if len(in.StateCode) != 2 {
		return DealInput{}, engineerr.InvalidInput("stateCode", "must be a two-letter state code")
	}

	out := in

	switch in.Mode {
	case ModeRetail:
		out.GrossCapCost = money.Zero()
		out.CapReductionCash = money.Zero()
		out.CapReductionTradeIn = money.Zero()
		out.CapReductionRebateManufacturer = money.Zero()
		out.CapReductionRebateDealer = money.Zero()
		out.BasePayment = money.Zero()
		out.PaymentCount = 0
	case ModeLease:
		out.AccessoriesAmount = money.Zero()
		if in.PaymentCount <= 0 {
			return DealInput{}, engineerr.InvalidInput("paymentCount", "must be positive for a lease")
		}
	default:
		return DealInput{}, engineerr.InvalidInput("mode", "must be RETAIL or LEASE")
	}

	for _, fee := range in.OtherFees {
		if fee.Code == "" {
			return DealInput{}, engineerr.InvalidInput("otherFees", "fee line missing a code")
		}
	}

	for _, rc := range in.Rates {
		if math.IsNaN(rc.Rate) || math.IsInf(rc.Rate, 0) {
			return DealInput{}, engineerr.Overflow("rate component is not a finite number")
		}
	}

	return out, nil
}
