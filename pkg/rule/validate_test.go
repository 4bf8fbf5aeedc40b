package rule

import "testing"

func minimalValidRule() StateRule {
	return StateRule{
		StateCode:     "NY",
		Version:       1,
		Status:        StatusImplemented,
		TradeInPolicy: TradeInPolicy{Type: TradeInFull},
		Rebates: map[RebateSource]RebateTaxability{
			RebateManufacturer: {Taxable: false},
			RebateDealer:       {Taxable: true},
		},
		VehicleTaxScheme: SchemeStatePlusLocal,
		LeaseRules: LeaseRules{
			Method:         LeaseMethodMonthly,
			RebateBehavior: LeaseRebateFollowRetail,
		},
		Reciprocity: Reciprocity{HomeStateBehavior: ReciprocityNone},
	}
}

func TestValidateAcceptsMinimalRule(t *testing.T) {
	if err := minimalValidRule().Validate(); err != nil {
		t.Fatalf("expected valid rule, got %v", err)
	}
}

func TestValidateRejectsBadStateCode(t *testing.T) {
	r := minimalValidRule()
	r.StateCode = "NEWYORK"
	if err := r.Validate(); err == nil {
		t.Fatal("expected error for bad state code")
	}
}

func TestValidateRejectsEmptyRebates(t *testing.T) {
	r := minimalValidRule()
	r.Rebates = nil
	if err := r.Validate(); err == nil {
		t.Fatal("expected error for empty rebates")
	}
}

func TestValidateRejectsUnknownScheme(t *testing.T) {
	r := minimalValidRule()
	r.VehicleTaxScheme = "BOGUS"
	if err := r.Validate(); err == nil {
		t.Fatal("expected error for unknown scheme")
	}
}

func TestValidateRequiresSchemeConfigForTAVT(t *testing.T) {
	r := minimalValidRule()
	r.VehicleTaxScheme = SchemeSpecialTAVT
	if err := r.Validate(); err == nil {
		t.Fatal("expected error: TAVT scheme without TAVT config")
	}
	r.SpecialScheme = SpecialSchemeConfig{Kind: SchemeConfigTAVT, TAVT: TAVTConfig{Rate: 0.07}}
	if err := r.Validate(); err != nil {
		t.Fatalf("expected valid after adding TAVT config, got %v", err)
	}
}

func TestValidateRejectsBadTradeInPercent(t *testing.T) {
	r := minimalValidRule()
	r.TradeInPolicy = TradeInPolicy{Type: TradeInPercent, Fraction: 1.5}
	if err := r.Validate(); err == nil {
		t.Fatal("expected error for out-of-range trade-in fraction")
	}
}
