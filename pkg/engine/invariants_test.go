package engine_test

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/vehiclex/taxengine/pkg/deal"
	"github.com/vehiclex/taxengine/pkg/engine"
	"github.com/vehiclex/taxengine/pkg/engineerr"
	"github.com/vehiclex/taxengine/pkg/money"
	"github.com/vehiclex/taxengine/pkg/registry"
	"github.com/vehiclex/taxengine/pkg/ruledata"
)

func baseCase(t *testing.T, code string) (deal.DealInput, engine.TaxCalculationResult) {
	t.Helper()
	reg := ruledata.BuildRegistry()
	r, ok := reg.GetRulesForState(code)
	if !ok {
		t.Fatalf("no rule for %s", code)
	}
	in := deal.DealInput{
		StateCode:    code,
		Mode:         deal.ModeRetail,
		VehiclePrice: money.NewFromFloat(25000),
		DocFee:       money.NewFromFloat(300),
		TradeInValue: money.NewFromFloat(4000),
		Rates:        []deal.RateComponent{{Label: deal.NewRateLabel("STATE"), Rate: 0.06}},
	}
	result, err := engine.CalculateTax(in, r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return in, result
}

func TestBaseSumInvariant(t *testing.T) {
	for _, code := range []string{"OH", "IA", "NY", "MD"} {
		_, result := baseCase(t, code)
		sum := result.Bases.VehicleBase.Add(result.Bases.FeesBase).Add(result.Bases.ProductsBase)
		if sum.Cmp(result.Bases.TotalTaxableBase) != 0 {
			t.Errorf("%s: expected totalTaxableBase %s to equal sum %s", code, result.Bases.TotalTaxableBase, sum)
		}
	}
}

func TestNonNegativityInvariant(t *testing.T) {
	_, result := baseCase(t, "OH")
	if result.Bases.VehicleBase.LessThan(money.Zero()) || result.Taxes.TotalTax.LessThan(money.Zero()) {
		t.Fatal("expected all amounts to be non-negative")
	}
	for _, c := range result.Taxes.ComponentTaxes {
		if c.Amount.LessThan(money.Zero()) {
			t.Fatalf("component %v is negative", c)
		}
	}
}

func TestLeaseTotalInvariant(t *testing.T) {
	reg := ruledata.BuildRegistry()
	r, _ := reg.GetRulesForState("OH")
	in := deal.DealInput{
		StateCode:    "OH",
		Mode:         deal.ModeLease,
		BasePayment:  money.NewFromFloat(350),
		PaymentCount: 24,
		Rates:        []deal.RateComponent{{Label: deal.NewRateLabel("STATE"), Rate: 0.075}},
	}
	result, err := engine.CalculateTax(in, r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lb := result.LeaseBreakdown
	if lb == nil {
		t.Fatal("expected lease breakdown")
	}
	want := lb.UpfrontTaxes.TotalTax.Add(lb.PaymentTaxesPerPeriod.TotalTax.MulRate(decimal.NewFromInt(24)).RoundToCent())
	if lb.TotalTaxOverTerm.Cmp(want) != 0 {
		t.Fatalf("expected totalTaxOverTerm %s, got %s", want, lb.TotalTaxOverTerm)
	}
}

func TestReciprocityCapInvariant(t *testing.T) {
	reg := ruledata.BuildRegistry()
	r, _ := reg.GetRulesForState("NC")
	in := deal.DealInput{
		StateCode:    "NC",
		Mode:         deal.ModeRetail,
		AsOfDate:     "2026-07-29",
		VehiclePrice: money.NewFromFloat(10000),
		Rates:        []deal.RateComponent{{Label: deal.NewRateLabel("STATE"), Rate: 0.03}},
		OriginTaxInfo: &deal.OriginTaxInfo{
			StateCode:   "SC",
			Amount:      money.NewFromFloat(5000),
			TaxPaidDate: "2026-07-28",
		},
	}
	result, err := engine.CalculateTax(in, r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	componentSum := money.Zero()
	for _, c := range result.Taxes.ComponentTaxes {
		componentSum = componentSum.Add(c.Amount)
	}
	if result.Debug.ReciprocityCredit.Cmp(componentSum) > 0 {
		t.Fatalf("reciprocity credit %s exceeds component sum %s", result.Debug.ReciprocityCredit, componentSum)
	}
}

func TestRebateConservationInvariant(t *testing.T) {
	reg := ruledata.BuildRegistry()
	r, _ := reg.GetRulesForState("MD")
	in := deal.DealInput{
		StateCode:          "MD",
		Mode:               deal.ModeRetail,
		VehiclePrice:       money.NewFromFloat(30000),
		RebateManufacturer: money.NewFromFloat(2000),
		RebateDealer:       money.NewFromFloat(500),
		Rates:              []deal.RateComponent{{Label: deal.NewRateLabel("STATE"), Rate: 0.065}},
	}
	result, err := engine.CalculateTax(in, r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sum := result.Debug.AppliedRebatesNonTaxable.Add(result.Debug.AppliedRebatesTaxable)
	want := in.RebateManufacturer.Add(in.RebateDealer)
	if sum.Cmp(want) != 0 {
		t.Fatalf("expected rebate conservation %s, got %s", want, sum)
	}
}

func TestTradeInMonotonicityInvariant(t *testing.T) {
	reg := ruledata.BuildRegistry()
	r, _ := reg.GetRulesForState("OH")

	calc := func(tradeIn float64) money.Money {
		in := deal.DealInput{
			StateCode:    "OH",
			Mode:         deal.ModeRetail,
			VehiclePrice: money.NewFromFloat(30000),
			TradeInValue: money.NewFromFloat(tradeIn),
			Rates:        []deal.RateComponent{{Label: deal.NewRateLabel("STATE"), Rate: 0.075}},
		}
		result, err := engine.CalculateTax(in, r)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		return result.Taxes.TotalTax
	}

	low := calc(1000)
	high := calc(5000)
	if high.Cmp(low) > 0 {
		t.Fatalf("expected tax to be non-increasing in trade-in value, got low=%s high=%s", low, high)
	}
}

func TestLuxuryThresholdMonotonicityInvariant(t *testing.T) {
	reg := ruledata.BuildRegistry()
	r, _ := reg.GetRulesForState("CT")

	calc := func(price float64) money.Money {
		in := deal.DealInput{
			StateCode:    "CT",
			Mode:         deal.ModeRetail,
			VehiclePrice: money.NewFromFloat(price),
			Rates:        []deal.RateComponent{{Label: deal.NewRateLabel("STATE"), Rate: 0.0635}},
		}
		result, err := engine.CalculateTax(in, r)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		return result.Taxes.TotalTax
	}

	below := calc(49999)
	atThreshold := calc(50000)
	if atThreshold.Cmp(below) < 0 {
		t.Fatalf("expected tax to be non-decreasing across the luxury threshold, got below=%s at=%s", below, atThreshold)
	}
}

func TestCaseInsensitiveLookupInvariant(t *testing.T) {
	reg := ruledata.BuildRegistry()
	for _, code := range []string{"NY", "ny", "Ny"} {
		if _, ok := reg.GetRulesForState(code); !ok {
			t.Errorf("expected %q to resolve", code)
		}
	}
}

func TestResolverCoverageInvariant(t *testing.T) {
	reg := ruledata.BuildRegistry()
	all := registry.GetAllStateCodes()
	implemented := reg.GetImplementedStates()
	stubs := reg.GetStubStates()
	if len(implemented)+len(stubs) != len(all) {
		t.Fatalf("implemented(%d) + stub(%d) != all(%d)", len(implemented), len(stubs), len(all))
	}
	seen := map[string]bool{}
	for _, c := range implemented {
		seen[c] = true
	}
	for _, c := range stubs {
		if seen[c] {
			t.Errorf("%s counted as both implemented and stub", c)
		}
	}
}

func TestUnknownStateIsRejected(t *testing.T) {
	reg := ruledata.BuildRegistry()
	_, ok := reg.GetRulesForState("ZZ")
	if ok {
		t.Fatal("expected ZZ to be absent from the registry")
	}
}

func TestStubStateIsRejectedByCalculator(t *testing.T) {
	reg := ruledata.BuildRegistry()
	r, ok := reg.GetRulesForState("WY")
	if !ok {
		t.Fatal("expected WY to be loaded as a stub")
	}
	in := deal.DealInput{
		StateCode:    "WY",
		Mode:         deal.ModeRetail,
		VehiclePrice: money.NewFromFloat(20000),
		Rates:        []deal.RateComponent{{Label: deal.NewRateLabel("STATE"), Rate: 0.04}},
	}
	_, err := engine.CalculateTax(in, r)
	if err == nil {
		t.Fatal("expected an error calculating against a stub state")
	}
	var engErr *engineerr.Error
	if !asEngineErr(err, &engErr) {
		t.Fatalf("expected *engineerr.Error, got %T", err)
	}
	if engErr.Kind != engineerr.KindStubState {
		t.Fatalf("expected StubState kind, got %s", engErr.Kind)
	}
}

func asEngineErr(err error, target **engineerr.Error) bool {
	e, ok := err.(*engineerr.Error)
	if !ok {
		return false
	}
	*target = e
	return true
}
