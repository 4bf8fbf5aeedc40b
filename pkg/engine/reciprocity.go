package engine

import (
	"time"

	"github.com/vehiclex/taxengine/pkg/deal"
	"github.com/vehiclex/taxengine/pkg/money"
	"github.com/vehiclex/taxengine/pkg/rule"
)

const isoDateLayout = "2006-01-02"

// resolveReciprocity runs the reciprocity credit algorithm: scope and
// enablement gate first, then a per-origin override can disallow or rewrite
// the default behavior, then the home-state behavior determines the credit
// shape, then the proof requirement and tax-due basis are applied.
func resolveReciprocity(r rule.StateRule, in deal.DealInput, mode rule.DealMode, totalTaxBeforeCredit money.Money, stateRate float64, vehicleBase money.Money) money.Money {
	recip := r.Reciprocity
	if !recip.Enabled {
		return money.Zero()
	}
	if !scopeIncludes(recip.Scope, mode) {
		return money.Zero()
	}

	origin := in.OriginTaxInfo
	originState := ""
	if origin != nil {
		originState = origin.StateCode
	}

	scope := recip.Scope
	homeStateBehavior := recip.HomeStateBehavior
	basis := recip.Basis
	capAtThisStatesTax := recip.CapAtThisStatesTax
	requireProof := recip.RequireProofOfTaxPaid

	override, overrideFound := recip.FindOverride(originState)
	if overrideFound {
		if override.DisallowCredit {
			return money.Zero()
		}
		if override.ModeOverride != nil {
			scope = *override.ModeOverride
		}
		if override.ScopeOverride != nil {
			scope = *override.ScopeOverride
		}
		if !scopeIncludes(scope, mode) {
			return money.Zero()
		}
		if override.MaxAgeDaysSinceTaxPaid != nil && origin != nil {
			if expired(in.AsOfDate, origin.TaxPaidDate, *override.MaxAgeDaysSinceTaxPaid) {
				return money.Zero()
			}
		}
	}

	if requireProof && origin == nil {
		return money.Zero()
	}

	switch homeStateBehavior {
	case rule.ReciprocityNone:
		return money.Zero()
	case rule.ReciprocityHomeStateOnly:
		// The override match itself carries the "buyer's home state matches
		// the declared origin" fact — the caller only supplies OriginTaxInfo
		// for the state the buyer actually resides in.
		if overrideFound {
			return totalTaxBeforeCredit
		}
		return money.Zero()
	case rule.ReciprocityCreditFull:
		if origin == nil {
			return money.Zero()
		}
		paid := reciprocityAmount(basis, *origin)
		if capAtThisStatesTax {
			return money.Min(paid, totalTaxBeforeCredit)
		}
		return paid
	case rule.ReciprocityCreditUpToStateRate:
		if origin == nil {
			return money.Zero()
		}
		paid := reciprocityAmount(basis, *origin)
		cap := vehicleBase.MulRate(decimalFromFloat(stateRate)).RoundToCent()
		return money.Min(paid, cap)
	default:
		return money.Zero()
	}
}

func reciprocityAmount(basis rule.ReciprocityBasis, origin deal.OriginTaxInfo) money.Money {
	if basis == rule.ReciprocityBasisTaxDue {
		return origin.Amount.MulRate(decimalFromFloat(origin.EffectiveRate)).RoundToCent()
	}
	return origin.Amount
}

func scopeIncludes(scope rule.ReciprocityScope, mode rule.DealMode) bool {
	switch scope {
	case rule.ReciprocityBoth:
		return true
	case rule.ReciprocityRetailOnly:
		return mode == rule.ModeRetail
	case rule.ReciprocityLeaseOnly:
		return mode == rule.ModeLease
	default:
		return false
	}
}

// expired reports whether the calendar-day gap between taxPaidDate and
// asOfDate exceeds maxAgeDays. An unparseable date is treated as expired,
// since a reciprocity credit must never be granted on an indeterminate
// basis.
func expired(asOfDate, taxPaidDate string, maxAgeDays int) bool {
	asOf, err := time.Parse(isoDateLayout, asOfDate)
	if err != nil {
		return true
	}
	paid, err := time.Parse(isoDateLayout, taxPaidDate)
	if err != nil {
		return true
	}
	days := int(asOf.Sub(paid).Hours() / 24)
	return days > maxAgeDays
}
