// Package ruledata supplies concrete StateRule instances: enough states to
// exercise every scheme and lease method the engine implements, plus STUB
// placeholders for the rest of the 50 so the registry's coverage invariant
// holds. This is sample data, not the engine's core — production rule data
// for all 50 states is maintained and deployed separately from this module.
package ruledata

import (
	"github.com/vehiclex/taxengine/pkg/money"
	"github.com/vehiclex/taxengine/pkg/registry"
	"github.com/vehiclex/taxengine/pkg/rule"
)

var implementedBuilders = map[string]func() rule.StateRule{
	"CT": connecticut,
	"GA": georgia,
	"MD": maryland,
	"IA": iowa,
	"NC": northCarolina,
	"NY": newYork,
	"OH": ohio,
	"PA": pennsylvania,
	"WA": washington,
	"WV": westVirginia,
	"AL": alabama,
}

// BuildRegistry constructs the full 50-state registry: the implemented
// states above, and a STUB for every remaining canonical code.
func BuildRegistry() *registry.Registry {
	rules := make(map[string]rule.StateRule, 50)
	for _, code := range registry.GetAllStateCodes() {
		if build, ok := implementedBuilders[code]; ok {
			rules[code] = build()
		} else {
			rules[code] = stub(code)
		}
	}
	return registry.New(rules)
}

func stub(code string) rule.StateRule {
	return rule.StateRule{
		StateCode:     code,
		Version:       0,
		Status:        rule.StatusStub,
		TradeInPolicy: rule.TradeInPolicy{Type: rule.TradeInFull},
		Rebates: map[rule.RebateSource]rule.RebateTaxability{
			rule.RebateManufacturer: {Taxable: false},
			rule.RebateDealer:       {Taxable: false},
		},
		VehicleTaxScheme: rule.SchemeStatePlusLocal,
		LeaseRules: rule.LeaseRules{
			Method:         rule.LeaseMethodMonthly,
			RebateBehavior: rule.LeaseRebateFollowRetail,
		},
		Reciprocity: rule.Reciprocity{HomeStateBehavior: rule.ReciprocityNone},
	}
}

// connecticut models CT's two-tier (6.35%/7.75%) luxury threshold and flat
// warranty-rate exception.
func connecticut() rule.StateRule {
	return rule.StateRule{
		StateCode:                "CT",
		Version:                  1,
		Status:                   rule.StatusImplemented,
		TradeInPolicy:            rule.TradeInPolicy{Type: rule.TradeInFull},
		Rebates: map[rule.RebateSource]rule.RebateTaxability{
			rule.RebateManufacturer: {Taxable: false},
			rule.RebateDealer:       {Taxable: false},
		},
		DocFeeTaxable:            true,
		TaxOnServiceContracts:    true,
		VehicleTaxScheme:         rule.SchemeStateOnly,
		VehicleUsesLocalSalesTax: false,
		LeaseRules: rule.LeaseRules{
			Method:         rule.LeaseMethodMonthly,
			RebateBehavior: rule.LeaseRebateFollowRetail,
		},
		Reciprocity: rule.Reciprocity{HomeStateBehavior: rule.ReciprocityNone},
		Extras: rule.RuleExtras{
			HasLuxuryTier:   true,
			LuxuryThreshold: money.NewFromFloat(50000),
			LuxuryRate:      0.0775,
			WarrantyRate:    0.0635,
		},
	}
}

// georgia models the title ad-valorem tax that replaces sales tax entirely.
func georgia() rule.StateRule {
	return rule.StateRule{
		StateCode:        "GA",
		Version:          1,
		Status:           rule.StatusImplemented,
		TradeInPolicy:    rule.TradeInPolicy{Type: rule.TradeInFull},
		Rebates: map[rule.RebateSource]rule.RebateTaxability{
			rule.RebateManufacturer: {Taxable: false},
			rule.RebateDealer:       {Taxable: false},
		},
		VehicleTaxScheme: rule.SchemeSpecialTAVT,
		SpecialScheme: rule.SpecialSchemeConfig{
			Kind: rule.SchemeConfigTAVT,
			TAVT: rule.TAVTConfig{Rate: 0.07, AllowTradeInCredit: true},
		},
		LeaseRules: rule.LeaseRules{
			Method:         rule.LeaseMethodFullUpfront,
			RebateBehavior: rule.LeaseRebateFollowRetail,
		},
		Reciprocity: rule.Reciprocity{HomeStateBehavior: rule.ReciprocityNone},
	}
}

// maryland models post-HB754 Maryland: no trade-in credit at all, and
// manufacturer rebates remain in the titling-tax base.
func maryland() rule.StateRule {
	return rule.StateRule{
		StateCode:        "MD",
		Version:          1,
		Status:           rule.StatusImplemented,
		TradeInPolicy:    rule.TradeInPolicy{Type: rule.TradeInNone},
		Rebates: map[rule.RebateSource]rule.RebateTaxability{
			rule.RebateManufacturer: {Taxable: true},
			rule.RebateDealer:       {Taxable: true},
		},
		VehicleTaxScheme:         rule.SchemeStateOnly,
		VehicleUsesLocalSalesTax: false,
		LeaseRules: rule.LeaseRules{
			Method:         rule.LeaseMethodFullUpfront,
			RebateBehavior: rule.LeaseRebateAlwaysTaxable,
			SpecialScheme:  rule.LeaseSchemeMDUpfrontGain,
		},
		Reciprocity: rule.Reciprocity{HomeStateBehavior: rule.ReciprocityNone},
		Extras:      rule.RuleExtras{Notes: map[string]string{"law": "post-HB754"}},
	}
}

// iowa models the ordinary state-plus-local retail/lease path. Iowa's
// one-time registration fee, whose trade-in treatment flips sign between
// retail and lease, is a narrower fee computation than the typed
// SpecialSchemeConfig variants this engine declares (TAVT/HUT/Privilege)
// and is intentionally not modeled — see DESIGN.md.
func iowa() rule.StateRule {
	return rule.StateRule{
		StateCode:     "IA",
		Version:       1,
		Status:        rule.StatusImplemented,
		TradeInPolicy: rule.TradeInPolicy{Type: rule.TradeInFull},
		Rebates: map[rule.RebateSource]rule.RebateTaxability{
			rule.RebateManufacturer: {Taxable: false},
			rule.RebateDealer:       {Taxable: false},
		},
		DocFeeTaxable:            true,
		VehicleTaxScheme:         rule.SchemeStatePlusLocal,
		VehicleUsesLocalSalesTax: true,
		LeaseRules: rule.LeaseRules{
			Method:         rule.LeaseMethodMonthly,
			RebateBehavior: rule.LeaseRebateFollowRetail,
			TradeInCredit:  rule.LeaseTradeInNone,
		},
		Reciprocity: rule.Reciprocity{HomeStateBehavior: rule.ReciprocityNone},
	}
}

// northCarolina models the Highway Use Tax: a flat 3% on net price only, no
// local component, with a 90-day reciprocity window.
func northCarolina() rule.StateRule {
	maxAge := 90
	return rule.StateRule{
		StateCode:             "NC",
		Version:               1,
		Status:                rule.StatusImplemented,
		TradeInPolicy:         rule.TradeInPolicy{Type: rule.TradeInFull},
		Rebates: map[rule.RebateSource]rule.RebateTaxability{
			rule.RebateManufacturer: {Taxable: false},
			rule.RebateDealer:       {Taxable: false},
		},
		TaxOnServiceContracts: true,
		TaxOnGap:              true,
		VehicleTaxScheme:      rule.SchemeSpecialHUT,
		SpecialScheme: rule.SpecialSchemeConfig{
			Kind: rule.SchemeConfigHUT,
			HUT: rule.HUTConfig{
				BaseRate:              0.03,
				ApplyToNetPriceOnly:   true,
				MaxReciprocityAgeDays: 90,
			},
		},
		LeaseRules: rule.LeaseRules{
			Method:         rule.LeaseMethodFullUpfront,
			RebateBehavior: rule.LeaseRebateFollowRetail,
		},
		Reciprocity: rule.Reciprocity{
			Enabled:            true,
			Scope:              rule.ReciprocityBoth,
			HomeStateBehavior:  rule.ReciprocityCreditFull,
			Basis:              rule.ReciprocityBasisTaxPaid,
			CapAtThisStatesTax: true,
			Overrides: []rule.ReciprocityOverride{
				{OriginState: "SC", MaxAgeDaysSinceTaxPaid: &maxAge},
			},
		},
	}
}

// newYork models an NYC-rate retail deal where the dealer rebate stays
// taxable.
func newYork() rule.StateRule {
	return rule.StateRule{
		StateCode:     "NY",
		Version:       1,
		Status:        rule.StatusImplemented,
		TradeInPolicy: rule.TradeInPolicy{Type: rule.TradeInFull},
		Rebates: map[rule.RebateSource]rule.RebateTaxability{
			rule.RebateManufacturer: {Taxable: false},
			rule.RebateDealer:       {Taxable: true},
		},
		VehicleTaxScheme:         rule.SchemeStateOnly,
		VehicleUsesLocalSalesTax: false,
		LeaseRules: rule.LeaseRules{
			Method:         rule.LeaseMethodMonthly,
			RebateBehavior: rule.LeaseRebateFollowRetail,
			SurchargeRate:  0.00375,
			SurchargeLabel: "MCTD",
			SpecialScheme:  rule.LeaseSchemeNYMTR,
		},
		Reciprocity: rule.Reciprocity{HomeStateBehavior: rule.ReciprocityNone},
	}
}

// ohio models an ordinary state-plus-local retail/lease deal with full
// trade-in credit (Ohio's new-vs-used rate distinction is a deal-level
// attribute this engine's DealInput does not carry; see DESIGN.md).
func ohio() rule.StateRule {
	return rule.StateRule{
		StateCode:     "OH",
		Version:       1,
		Status:        rule.StatusImplemented,
		TradeInPolicy: rule.TradeInPolicy{Type: rule.TradeInFull},
		Rebates: map[rule.RebateSource]rule.RebateTaxability{
			rule.RebateManufacturer: {Taxable: false},
			rule.RebateDealer:       {Taxable: false},
		},
		VehicleTaxScheme:         rule.SchemeStatePlusLocal,
		VehicleUsesLocalSalesTax: true,
		LeaseRules: rule.LeaseRules{
			Method:         rule.LeaseMethodMonthly,
			RebateBehavior: rule.LeaseRebateFollowRetail,
		},
		Reciprocity: rule.Reciprocity{HomeStateBehavior: rule.ReciprocityNone},
	}
}

// pennsylvania models the dual lease tax (6% sales + 3% motor-vehicle lease
// tax) on a hybrid-timed lease.
func pennsylvania() rule.StateRule {
	return rule.StateRule{
		StateCode:     "PA",
		Version:       1,
		Status:        rule.StatusImplemented,
		TradeInPolicy: rule.TradeInPolicy{Type: rule.TradeInFull},
		Rebates: map[rule.RebateSource]rule.RebateTaxability{
			rule.RebateManufacturer: {Taxable: false},
			rule.RebateDealer:       {Taxable: false},
		},
		VehicleTaxScheme:         rule.SchemeStateOnly,
		VehicleUsesLocalSalesTax: false,
		LeaseRules: rule.LeaseRules{
			Method:          rule.LeaseMethodHybrid,
			TaxCapReduction: true,
			RebateBehavior:  rule.LeaseRebateFollowRetail,
			SurchargeRate:   0.03,
			SurchargeLabel:  "MVLT",
			SpecialScheme:   rule.LeaseSchemePALeaseTax,
		},
		Reciprocity: rule.Reciprocity{HomeStateBehavior: rule.ReciprocityNone},
	}
}

// washington models the Oregon-resident home-state exemption.
func washington() rule.StateRule {
	return rule.StateRule{
		StateCode:     "WA",
		Version:       1,
		Status:        rule.StatusImplemented,
		TradeInPolicy: rule.TradeInPolicy{Type: rule.TradeInFull},
		Rebates: map[rule.RebateSource]rule.RebateTaxability{
			rule.RebateManufacturer: {Taxable: false},
			rule.RebateDealer:       {Taxable: false},
		},
		VehicleTaxScheme:         rule.SchemeStatePlusLocal,
		VehicleUsesLocalSalesTax: true,
		LeaseRules: rule.LeaseRules{
			Method:         rule.LeaseMethodMonthly,
			RebateBehavior: rule.LeaseRebateFollowRetail,
		},
		Reciprocity: rule.Reciprocity{
			Enabled:               true,
			Scope:                 rule.ReciprocityRetailOnly,
			HomeStateBehavior:     rule.ReciprocityHomeStateOnly,
			RequireProofOfTaxPaid: true,
			Basis:                 rule.ReciprocityBasisTaxPaid,
			Overrides: []rule.ReciprocityOverride{
				{OriginState: "OR"},
			},
		},
	}
}

// westVirginia models the DMV privilege tax: a flat registration-time rate
// against the vehicle base.
func westVirginia() rule.StateRule {
	return rule.StateRule{
		StateCode:     "WV",
		Version:       1,
		Status:        rule.StatusImplemented,
		TradeInPolicy: rule.TradeInPolicy{Type: rule.TradeInFull},
		Rebates: map[rule.RebateSource]rule.RebateTaxability{
			rule.RebateManufacturer: {Taxable: false},
			rule.RebateDealer:       {Taxable: false},
		},
		VehicleTaxScheme: rule.SchemeDMVPrivilegeTax,
		SpecialScheme: rule.SpecialSchemeConfig{
			Kind:      rule.SchemeConfigPrivilege,
			Privilege: rule.PrivilegeConfig{Rate: 0.05},
		},
		LeaseRules: rule.LeaseRules{
			Method:         rule.LeaseMethodFullUpfront,
			RebateBehavior: rule.LeaseRebateFollowRetail,
		},
		Reciprocity: rule.Reciprocity{HomeStateBehavior: rule.ReciprocityNone},
	}
}

// alabama models the state-rate-only trade-in credit: the admitted trade-in
// reduces the state component but not local components.
func alabama() rule.StateRule {
	return rule.StateRule{
		StateCode:     "AL",
		Version:       1,
		Status:        rule.StatusImplemented,
		TradeInPolicy: rule.TradeInPolicy{Type: rule.TradeInFull},
		Rebates: map[rule.RebateSource]rule.RebateTaxability{
			rule.RebateManufacturer: {Taxable: false},
			rule.RebateDealer:       {Taxable: false},
		},
		VehicleTaxScheme:         rule.SchemeStatePlusLocal,
		VehicleUsesLocalSalesTax: true,
		LeaseRules: rule.LeaseRules{
			Method:         rule.LeaseMethodMonthly,
			RebateBehavior: rule.LeaseRebateFollowRetail,
		},
		Reciprocity: rule.Reciprocity{HomeStateBehavior: rule.ReciprocityNone},
		Extras:      rule.RuleExtras{TradeInStateRateOnly: true},
	}
}
