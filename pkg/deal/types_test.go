package deal

import (
	"math"
	"testing"

	"github.com/vehiclex/taxengine/pkg/money"
)

func TestNormalizeZeroFillsLeaseFieldsForRetail(t *testing.T) {
	in := DealInput{
		StateCode:     "CT",
		Mode:          ModeRetail,
		VehiclePrice:  money.NewFromFloat(30000),
		GrossCapCost:  money.NewFromFloat(99999),
		BasePayment:   money.NewFromFloat(400),
		PaymentCount:  36,
	}
	out, err := Normalize(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !out.GrossCapCost.IsZero() || !out.BasePayment.IsZero() || out.PaymentCount != 0 {
		t.Fatalf("expected lease fields zero-filled under retail, got %+v", out)
	}
}

func TestNormalizeRejectsMissingPaymentCountForLease(t *testing.T) {
	in := DealInput{
		StateCode:    "CT",
		Mode:         ModeLease,
		BasePayment:  money.NewFromFloat(400),
		PaymentCount: 0,
		Rates:        []RateComponent{{Label: NewRateLabel("STATE"), Rate: 0.0635}},
	}
	if _, err := Normalize(in); err == nil {
		t.Fatal("expected error for non-positive paymentCount under lease")
	}
}

func TestNormalizeRejectsBadStateCode(t *testing.T) {
	in := DealInput{StateCode: "CONNECTICUT", Mode: ModeRetail}
	if _, err := Normalize(in); err == nil {
		t.Fatal("expected error for malformed state code")
	}
}

func TestNormalizeRejectsNonFiniteRate(t *testing.T) {
	in := DealInput{
		StateCode:    "CT",
		Mode:         ModeRetail,
		VehiclePrice: money.NewFromFloat(30000),
		Rates:        []RateComponent{{Label: NewRateLabel("STATE"), Rate: math.Inf(1)}},
	}
	if _, err := Normalize(in); err == nil {
		t.Fatal("expected an error for a non-finite rate component")
	}
}

func TestNewRateLabelPreservesUnknown(t *testing.T) {
	l := NewRateLabel("MCTD")
	if l.Kind != RateLabelOtherTag || l.Other != "MCTD" {
		t.Fatalf("expected OTHER(MCTD), got %+v", l)
	}
	if l.String() != "MCTD" {
		t.Fatalf("expected String() to surface raw label, got %s", l.String())
	}
}

func TestNormalizeAccessoriesZeroedForLease(t *testing.T) {
	in := DealInput{
		StateCode:         "CT",
		Mode:              ModeLease,
		AccessoriesAmount: money.NewFromFloat(500),
		BasePayment:       money.NewFromFloat(400),
		PaymentCount:      36,
		Rates:             []RateComponent{{Label: NewRateLabel("STATE"), Rate: 0.0635}},
	}
	out, err := Normalize(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !out.AccessoriesAmount.IsZero() {
		t.Fatalf("expected accessories zeroed under lease mode, got %v", out.AccessoriesAmount)
	}
}
