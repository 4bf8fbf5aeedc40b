package resolver

import "testing"

func TestRegistrationWinsTieBreakOnForcedOverride(t *testing.T) {
	cfg := RooftopConfig{
		ID:                    "tie-break",
		DealerStateCode:       "CA",
		DefaultTaxPerspective: PerspectiveDealerState,
		StateOverrides: map[string]StateOverride{
			"NV": {ForcePrimary: true},
			"AZ": {ForcePrimary: true},
		},
	}
	parties := DealParties{
		BuyerResidenceState: "AZ",
		RegistrationState:   "NV",
	}

	ctx := ResolveTaxContext(cfg, parties)
	if ctx.PrimaryStateCode != "NV" {
		t.Fatalf("expected registration state NV to win tie-break, got %s", ctx.PrimaryStateCode)
	}
}

func TestDealerPerspectiveDefaultsToDealerState(t *testing.T) {
	cfg := CreateSimpleRooftopConfig("OH", "")
	ctx := ResolveTaxContext(cfg, DealParties{})
	if ctx.PrimaryStateCode != "OH" {
		t.Fatalf("expected OH, got %s", ctx.PrimaryStateCode)
	}
	if ctx.BuyerResidenceStateCode != "OH" || ctx.RegistrationStateCode != "OH" {
		t.Fatalf("expected fallback to dealer state when parties empty, got %+v", ctx)
	}
}

func TestRegistrationPerspectiveUsesRegistrationState(t *testing.T) {
	cfg := CreateMultiStateRooftopConfig("OH", []string{"KY", "IN"}, PerspectiveRegistrationState, "")
	ctx := ResolveTaxContext(cfg, DealParties{RegistrationState: "KY"})
	if ctx.PrimaryStateCode != "KY" {
		t.Fatalf("expected KY, got %s", ctx.PrimaryStateCode)
	}
}

func TestRegistrationPerspectiveFallsBackToDealerWhenMissing(t *testing.T) {
	cfg := CreateMultiStateRooftopConfig("OH", []string{"KY"}, PerspectiveRegistrationState, "")
	ctx := ResolveTaxContext(cfg, DealParties{})
	if ctx.PrimaryStateCode != "OH" {
		t.Fatalf("expected dealer fallback OH, got %s", ctx.PrimaryStateCode)
	}
}

func TestBuyerPerspectiveRequiresAllowedRegistration(t *testing.T) {
	cfg := CreateMultiStateRooftopConfig("OH", []string{"KY"}, PerspectiveBuyerState, "")
	ctx := ResolveTaxContext(cfg, DealParties{BuyerResidenceState: "KY", RegistrationState: "KY"})
	if ctx.PrimaryStateCode != "KY" {
		t.Fatalf("expected KY, got %s", ctx.PrimaryStateCode)
	}

	ctx2 := ResolveTaxContext(cfg, DealParties{BuyerResidenceState: "TX", RegistrationState: "TX"})
	if ctx2.PrimaryStateCode != "TX" {
		t.Fatalf("expected fallback to registration state TX, got %s", ctx2.PrimaryStateCode)
	}
}

func TestDisallowPrimaryOverrideBlocksRegistrationState(t *testing.T) {
	cfg := RooftopConfig{
		DealerStateCode:       "OH",
		DefaultTaxPerspective: PerspectiveRegistrationState,
		StateOverrides: map[string]StateOverride{
			"KY": {DisallowPrimary: true},
		},
	}
	ctx := ResolveTaxContext(cfg, DealParties{RegistrationState: "KY"})
	if ctx.PrimaryStateCode != "OH" {
		t.Fatalf("expected disallow override to force dealer state OH, got %s", ctx.PrimaryStateCode)
	}
}

func TestFallbackFillsMissingBuyerFromRegistration(t *testing.T) {
	cfg := CreateSimpleRooftopConfig("TX", "")
	ctx := ResolveTaxContext(cfg, DealParties{RegistrationState: "TX"})
	if ctx.BuyerResidenceStateCode != "TX" {
		t.Fatalf("expected buyer residence to fall back to registration state, got %s", ctx.BuyerResidenceStateCode)
	}
}

func TestFallbackFillsMissingRegistrationFromBuyer(t *testing.T) {
	cfg := CreateSimpleRooftopConfig("TX", "")
	ctx := ResolveTaxContext(cfg, DealParties{BuyerResidenceState: "TX"})
	if ctx.RegistrationStateCode != "TX" {
		t.Fatalf("expected registration to fall back to buyer residence, got %s", ctx.RegistrationStateCode)
	}
}

func TestResolveTaxContextIsIdempotent(t *testing.T) {
	cfg := CreateMultiStateRooftopConfig("OH", []string{"KY"}, PerspectiveRegistrationState, "")
	parties := DealParties{BuyerResidenceState: "KY", RegistrationState: "KY"}
	first := ResolveTaxContext(cfg, parties)
	second := ResolveTaxContext(cfg, parties)
	if first != second {
		t.Fatalf("expected identical results, got %+v vs %+v", first, second)
	}
}

func TestIsMultiStateDeal(t *testing.T) {
	same := TaxContext{PrimaryStateCode: "OH", DealerStateCode: "OH", BuyerResidenceStateCode: "OH", RegistrationStateCode: "OH"}
	if IsMultiStateDeal(same) {
		t.Error("expected single-state context to not be multi-state")
	}
	diff := same
	diff.RegistrationStateCode = "KY"
	if !IsMultiStateDeal(diff) {
		t.Error("expected differing registration state to be multi-state")
	}
}

func TestGetInvolvedStatesSortedAndDeduped(t *testing.T) {
	ctx := TaxContext{PrimaryStateCode: "KY", DealerStateCode: "OH", BuyerResidenceStateCode: "KY", RegistrationStateCode: "KY"}
	states := GetInvolvedStates(ctx)
	if len(states) != 2 || states[0] != "KY" || states[1] != "OH" {
		t.Fatalf("expected [KY OH], got %v", states)
	}
}
