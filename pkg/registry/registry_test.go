package registry

import (
	"testing"

	"github.com/vehiclex/taxengine/pkg/rule"
)

func testRule(code string, status rule.RuleStatus) rule.StateRule {
	return rule.StateRule{
		StateCode:     code,
		Version:       1,
		Status:        status,
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

func TestCaseInsensitiveLookup(t *testing.T) {
	reg := New(map[string]rule.StateRule{"NY": testRule("NY", rule.StatusImplemented)})
	for _, code := range []string{"NY", "ny", "Ny", "nY"} {
		if _, ok := reg.GetRulesForState(code); !ok {
			t.Errorf("expected lookup %q to succeed", code)
		}
	}
}

func TestUnknownStateReturnsAbsent(t *testing.T) {
	reg := New(map[string]rule.StateRule{"NY": testRule("NY", rule.StatusImplemented)})
	if _, ok := reg.GetRulesForState("ZZ"); ok {
		t.Error("expected unknown state to be absent")
	}
	if _, ok := reg.GetRulesForState("N"); ok {
		t.Error("expected malformed code to be absent")
	}
}

func TestImplementedStubPartition(t *testing.T) {
	rules := map[string]rule.StateRule{
		"NY": testRule("NY", rule.StatusImplemented),
		"GA": testRule("GA", rule.StatusStub),
	}
	reg := New(rules)

	all := GetAllStateCodes()
	implemented := reg.GetImplementedStates()
	stubs := reg.GetStubStates()

	if len(implemented)+len(stubs) != len(all) {
		t.Fatalf("implemented(%d) + stubs(%d) != all(%d)", len(implemented), len(stubs), len(all))
	}

	seen := map[string]bool{}
	for _, c := range implemented {
		seen[c] = true
	}
	for _, c := range stubs {
		if seen[c] {
			t.Errorf("state %s appears in both implemented and stub sets", c)
		}
	}

	foundNY := false
	for _, c := range implemented {
		if c == "NY" {
			foundNY = true
		}
	}
	if !foundNY {
		t.Error("expected NY in implemented states")
	}
}

func TestGetAllStateCodesReturnsFreshCopy(t *testing.T) {
	a := GetAllStateCodes()
	a[0] = "ZZ"
	b := GetAllStateCodes()
	if b[0] == "ZZ" {
		t.Error("expected GetAllStateCodes to return an independent copy each call")
	}
}

func TestNewPanicsOnInvalidRule(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected panic on invalid rule")
		}
	}()
	bad := testRule("NY", rule.StatusImplemented)
	bad.Rebates = nil
	New(map[string]rule.StateRule{"NY": bad})
}
