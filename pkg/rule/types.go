// Package rule defines the declarative state-rule model that drives the
// motor-vehicle tax engine: trade-in policy, rebate taxability, fee
// taxability, vehicle tax scheme, lease rules, special schemes (TAVT, HUT,
// DMV privilege tax), and reciprocity. A StateRule is pure data — one per
// state — loaded once at process start and never mutated; the engine in
// pkg/engine is the only thing that interprets it.
//
// The shape favors a rich typed struct per state over an opaque bag of
// interface{} values, so every field the engine reads is compiler-checked.
package rule

import "github.com/vehiclex/taxengine/pkg/money"

// DealMode distinguishes a retail purchase from a lease. Several rule
// sub-structs (rebate behavior, fee taxability, trade-in credit) branch on
// this, since the same state often taxes the two transaction shapes
// differently.
type DealMode string

const (
	ModeRetail DealMode = "RETAIL"
	ModeLease  DealMode = "LEASE"
)

// TradeInPolicyType is the admission rule for trade-in value into the
// taxable base.
type TradeInPolicyType string

const (
	TradeInFull    TradeInPolicyType = "FULL"
	TradeInCapped  TradeInPolicyType = "CAPPED"
	TradeInPercent TradeInPolicyType = "PERCENT"
	TradeInNone    TradeInPolicyType = "NONE"
)

// TradeInPolicy admits some, all, or none of a trade-in's value as a credit
// against the taxable base. Capped and Percent carry the parameter that
// determines how much of the trade-in value is admitted.
type TradeInPolicy struct {
	Type TradeInPolicyType

	// CapAmount is used when Type == TradeInCapped: the credit is
	// min(tradeInValue, CapAmount).
	CapAmount money.Money

	// Fraction is used when Type == TradeInPercent, in [0, 1]: the credit is
	// tradeInValue * Fraction.
	Fraction float64
}

// RebateSource distinguishes who funded a rebate — this matters because many
// states tax manufacturer and dealer rebates differently.
type RebateSource string

const (
	RebateManufacturer RebateSource = "MANUFACTURER"
	RebateDealer       RebateSource = "DEALER"
)

// RebateTaxability records whether a rebate from a given source is taxable.
// Taxable == true means the rebate does NOT reduce the base (the customer is
// taxed as if they paid the pre-rebate price); Taxable == false means the
// rebate is subtracted from the base before tax.
type RebateTaxability struct {
	Taxable bool
	Notes   string
}

// FeeCode enumerates the fee/product line items a deal can carry. Unknown
// codes supplied by a caller are treated as non-taxable and recorded in the
// debug trace — see pkg/engine's base builder.
type FeeCode string

const (
	FeeDocFee           FeeCode = "DOC_FEE"
	FeeTitle            FeeCode = "TITLE"
	FeeRegistration     FeeCode = "REG"
	FeeServiceContract  FeeCode = "SERVICE_CONTRACT"
	FeeGAP              FeeCode = "GAP"
	FeeAcquisitionFee   FeeCode = "ACQUISITION_FEE"
	FeeDispositionFee   FeeCode = "DISPOSITION_FEE"
	FeeExciseTax        FeeCode = "EXCISE_TAX"
	FeeExcessMileage    FeeCode = "EXCESS_MILEAGE"
	FeeExtendedWarranty FeeCode = "EXTENDED_WARRANTY"
	FeeAccessories      FeeCode = "ACCESSORIES"
)

// FeeTaxRule records whether a specific fee/product code is taxable under a
// given rule (retail or lease — the two are kept in separate maps on
// StateRule / LeaseRules since states frequently diverge between them).
type FeeTaxRule struct {
	Taxable bool
	Notes   string
}

// VehicleTaxScheme selects how the vehicle-price component of the base is
// taxed. SpecialTAVT, SpecialHUT and DMVPrivilegeTax replace ordinary sales
// tax with a scheme-specific computation (see SpecialSchemeConfig).
type VehicleTaxScheme string

const (
	SchemeStateOnly        VehicleTaxScheme = "STATE_ONLY"
	SchemeStatePlusLocal   VehicleTaxScheme = "STATE_PLUS_LOCAL"
	SchemeLocalOnly        VehicleTaxScheme = "LOCAL_ONLY"
	SchemeSpecialTAVT      VehicleTaxScheme = "SPECIAL_TAVT"
	SchemeSpecialHUT       VehicleTaxScheme = "SPECIAL_HUT"
	SchemeDMVPrivilegeTax  VehicleTaxScheme = "DMV_PRIVILEGE_TAX"
)

// LeaseMethod selects which timing partition a lease uses to split tax
// between the amount due at signing ("upfront") and the amount spread across
// the payment stream.
type LeaseMethod string

const (
	LeaseMethodMonthly     LeaseMethod = "MONTHLY"
	LeaseMethodFullUpfront LeaseMethod = "FULL_UPFRONT"
	LeaseMethodHybrid      LeaseMethod = "HYBRID"
)

// LeaseRebateBehavior controls whether lease rebates follow the retail
// rebate-taxability table or are unconditionally taxable/non-taxable.
type LeaseRebateBehavior string

const (
	LeaseRebateAlwaysTaxable    LeaseRebateBehavior = "ALWAYS_TAXABLE"
	LeaseRebateAlwaysNonTaxable LeaseRebateBehavior = "ALWAYS_NON_TAXABLE"
	LeaseRebateFollowRetail     LeaseRebateBehavior = "FOLLOW_RETAIL_RULE"
)

// LeaseDocFeeTaxability controls whether a lease's documentary fee follows
// the retail docFeeTaxable flag or is forced on/off for leases.
type LeaseDocFeeTaxability string

const (
	LeaseDocFeeAlways       LeaseDocFeeTaxability = "ALWAYS"
	LeaseDocFeeNever        LeaseDocFeeTaxability = "NEVER"
	LeaseDocFeeFollowRetail LeaseDocFeeTaxability = "FOLLOW_RETAIL_RULE"
)

// LeaseTradeInCredit controls how a lease applies trade-in equity.
type LeaseTradeInCredit string

const (
	LeaseTradeInFull         LeaseTradeInCredit = "FULL"
	LeaseTradeInNone         LeaseTradeInCredit = "NONE"
	LeaseTradeInCapCostOnly  LeaseTradeInCredit = "CAP_COST_ONLY"
	LeaseTradeInFollowRetail LeaseTradeInCredit = "FOLLOW_RETAIL_RULE"
)

// LeaseSpecialScheme names a lease-specific scheme for a state. The engine
// carries it on the rule but does not read it: lease timing is determined by
// LeaseRules.Method alone, and lease-only rate components come from
// SurchargeRate/SurchargeLabel.
type LeaseSpecialScheme string

const (
	LeaseSchemeNone           LeaseSpecialScheme = "NONE"
	LeaseSchemeMDUpfrontGain  LeaseSpecialScheme = "MD_UPFRONT_GAIN"
	LeaseSchemeNYMTR          LeaseSpecialScheme = "NY_MTR"
	LeaseSchemePALeaseTax     LeaseSpecialScheme = "PA_LEASE_TAX"
)

// TitleFeeRule records, independent of taxability, how a titling-related
// lease fee flows through cap cost and timing. The engine does not read
// LeaseRules.TitleFeeRules; lease fee taxability comes from
// LeaseRules.FeeTaxRules and timing from LeaseRules.Method.
type TitleFeeRule struct {
	Taxable           bool
	IncludedInCapCost bool
	IncludedInUpfront bool
	IncludedInMonthly bool
}

// LeaseRules is the full set of lease-specific overrides a StateRule carries.
type LeaseRules struct {
	Method             LeaseMethod
	TaxCapReduction    bool
	RebateBehavior     LeaseRebateBehavior
	DocFeeTaxability   LeaseDocFeeTaxability
	TradeInCredit      LeaseTradeInCredit
	NegativeEquityTaxable bool
	FeeTaxRules        map[FeeCode]FeeTaxRule
	TitleFeeRules      map[FeeCode]TitleFeeRule
	TaxFeesUpfront     bool
	SpecialScheme      LeaseSpecialScheme

	// SurchargeRate/SurchargeLabel inject an additional lease-only rate
	// component (e.g. PA's 3% motor-vehicle lease tax, NY's 0.375% MCTD
	// surcharge) alongside the ordinary rate list. A zero SurchargeRate means
	// no surcharge applies.
	SurchargeRate  float64
	SurchargeLabel string
}

// ReciprocityScope limits which deal modes a reciprocity credit can apply to.
type ReciprocityScope string

const (
	ReciprocityRetailOnly ReciprocityScope = "RETAIL"
	ReciprocityLeaseOnly  ReciprocityScope = "LEASE"
	ReciprocityBoth       ReciprocityScope = "BOTH"
)

// ReciprocityHomeStateBehavior selects how a home-state credit is computed.
type ReciprocityHomeStateBehavior string

const (
	ReciprocityNone                 ReciprocityHomeStateBehavior = "NONE"
	ReciprocityCreditUpToStateRate  ReciprocityHomeStateBehavior = "CREDIT_UP_TO_STATE_RATE"
	ReciprocityCreditFull           ReciprocityHomeStateBehavior = "CREDIT_FULL"
	ReciprocityHomeStateOnly        ReciprocityHomeStateBehavior = "HOME_STATE_ONLY"
)

// ReciprocityBasis selects whether the credit is computed from tax actually
// paid at origin, or tax nominally due there.
type ReciprocityBasis string

const (
	ReciprocityBasisTaxPaid ReciprocityBasis = "TAX_PAID"
	ReciprocityBasisTaxDue  ReciprocityBasis = "TAX_DUE"
)

// ReciprocityOverride narrows or replaces the default reciprocity behavior
// for tax paid in a specific origin state.
type ReciprocityOverride struct {
	OriginState            string
	DisallowCredit         bool
	ModeOverride           *ReciprocityScope
	ScopeOverride          *ReciprocityScope
	MaxAgeDaysSinceTaxPaid *int
}

// Reciprocity is the full reciprocity configuration for a StateRule.
type Reciprocity struct {
	Enabled               bool
	Scope                 ReciprocityScope
	HomeStateBehavior     ReciprocityHomeStateBehavior
	RequireProofOfTaxPaid bool
	Basis                 ReciprocityBasis
	CapAtThisStatesTax    bool
	HasLeaseException     bool
	Overrides             []ReciprocityOverride
}

// FindOverride returns the override for the given origin state, if any.
func (r Reciprocity) FindOverride(originState string) (ReciprocityOverride, bool) {
	for _, o := range r.Overrides {
		if o.OriginState == originState {
			return o, true
		}
	}
	return ReciprocityOverride{}, false
}

// RuleExtras carries the small set of advisory scalars the engine actually
// reads out of an otherwise free-form per-state configuration. Everything
// else the source data might carry (jurisdiction rate tables, advisory
// notes) stays informational and is not modeled here — see Notes.
type RuleExtras struct {
	// LuxuryThreshold/LuxuryRate implement a two-tier rate (e.g. CT): when
	// the pre-trade-in sale price plus doc fee is >= LuxuryThreshold, the
	// state rate component uses LuxuryRate instead of the rule's standard
	// rate.
	HasLuxuryTier    bool
	LuxuryThreshold  money.Money
	LuxuryRate       float64

	// WarrantyRate, when HasLuxuryTier is set, is the flat rate applied to
	// service-contract/warranty sub-bases regardless of whether the overall
	// deal crossed the luxury threshold — the warranty exception.
	WarrantyRate float64

	// DocFeeCap is informational: some states cap the doc fee a dealer may
	// charge. The engine does not enforce the cap (it trusts the caller's
	// docFee amount) but carries it for diagnostics.
	DocFeeCap money.Money

	// TradeInStateRateOnly marks rules (e.g. AL) where the admitted trade-in
	// credit reduces only the state-rate component, not local components.
	TradeInStateRateOnly bool

	// Notes is a free-form advisory map for anything else the source data
	// carries that the engine does not interpret.
	Notes map[string]string
}

// SpecialSchemeConfig is the typed sum type replacing the source's
// dynamically-typed per-scheme bag (gaTAVT, ncHUT, wvPrivilege, ...). Exactly
// one of the embedded configs is meaningful, selected by Kind.
type SpecialSchemeConfig struct {
	Kind      SpecialSchemeKind
	TAVT      TAVTConfig
	HUT       HUTConfig
	Privilege PrivilegeConfig
}

// SpecialSchemeKind discriminates SpecialSchemeConfig.
type SpecialSchemeKind string

const (
	SchemeConfigNone      SpecialSchemeKind = "NONE"
	SchemeConfigTAVT      SpecialSchemeKind = "TAVT"
	SchemeConfigHUT       SpecialSchemeKind = "HUT"
	SchemeConfigPrivilege SpecialSchemeKind = "PRIVILEGE"
)

// TAVTConfig configures a Title Ad Valorem Tax scheme (Georgia-style): a
// single rate on fair-market value less an optional trade-in credit, which
// replaces sales tax entirely for both retail and lease.
type TAVTConfig struct {
	Rate                float64
	AllowTradeInCredit  bool
}

// HUTConfig configures a Highway Use Tax scheme (North Carolina-style): a
// single flat rate on a narrowed base and no local component.
// MaxReciprocityAgeDays is informational: the engine does not read it, and
// the reciprocity age window is taken from the matching
// ReciprocityOverride.MaxAgeDaysSinceTaxPaid.
type HUTConfig struct {
	BaseRate              float64
	ApplyToNetPriceOnly   bool
	MaxReciprocityAgeDays int
}

// PrivilegeConfig configures a DMV privilege tax scheme (West Virginia
// style): a single registration-time rate against the vehicle base,
// separate from any local sales tax.
type PrivilegeConfig struct {
	Rate float64
}

// RuleStatus marks whether a StateRule is a fully implemented rule or a
// placeholder stub — see pkg/registry.
type RuleStatus string

const (
	StatusImplemented RuleStatus = "IMPLEMENTED"
	StatusStub        RuleStatus = "STUB"
)

// StateRule is the complete declarative tax rule for one state. It is
// immutable after construction; pkg/registry loads and validates a
// map[string]StateRule once at process start.
type StateRule struct {
	StateCode string
	Version   int
	Status    RuleStatus

	TradeInPolicy TradeInPolicy
	Rebates       map[RebateSource]RebateTaxability

	DocFeeTaxable bool
	FeeTaxRules   map[FeeCode]FeeTaxRule

	TaxOnAccessories      bool
	TaxOnNegativeEquity   bool
	TaxOnServiceContracts bool
	TaxOnGap              bool

	VehicleTaxScheme       VehicleTaxScheme
	VehicleUsesLocalSalesTax bool

	LeaseRules  LeaseRules
	Reciprocity Reciprocity
	Extras      RuleExtras
	SpecialScheme SpecialSchemeConfig
}

// ProductTaxability is the single place retail and lease fee/product
// taxability is decided: one function with explicit mode-dispatch
// precedence, rather than two ad hoc tables the caller has to know to pick
// between.
func (r StateRule) ProductTaxability(mode DealMode, code FeeCode) (taxable bool, known bool) {
	switch code {
	case FeeDocFee:
		if mode == ModeLease {
			switch r.LeaseRules.DocFeeTaxability {
			case LeaseDocFeeAlways:
				return true, true
			case LeaseDocFeeNever:
				return false, true
			}
		}
		return r.DocFeeTaxable, true
	case FeeServiceContract:
		if mode == ModeLease {
			if rule, ok := r.LeaseRules.FeeTaxRules[code]; ok {
				return rule.Taxable, true
			}
		}
		return r.TaxOnServiceContracts, true
	case FeeGAP:
		if mode == ModeLease {
			if rule, ok := r.LeaseRules.FeeTaxRules[code]; ok {
				return rule.Taxable, true
			}
		}
		return r.TaxOnGap, true
	case FeeAccessories:
		if mode == ModeLease {
			if rule, ok := r.LeaseRules.FeeTaxRules[code]; ok {
				return rule.Taxable, true
			}
		}
		return r.TaxOnAccessories, true
	default:
		if mode == ModeLease {
			if rule, ok := r.LeaseRules.FeeTaxRules[code]; ok {
				return rule.Taxable, true
			}
			return false, false
		}
		if rule, ok := r.FeeTaxRules[code]; ok {
			return rule.Taxable, true
		}
		return false, false
	}
}
