// Package money provides the fixed-point monetary type used throughout the
// tax engine. All amounts are non-negative decimal values with four
// fractional digits of internal precision; presentation (and the tax amounts
// that flow into a TaxCalculationResult) round to the cent using banker's
// rounding (round-half-to-even), never native binary floating point.
//
// Money deliberately has no notion of currency — the engine is scoped to
// U.S. dollar transactions, so a bare decimal amount is sufficient and a
// currency tag would be dead weight on every value in the pipeline.
package money

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// internalScale is the number of fractional digits Money retains internally.
// Intermediate sums carry this precision and are never rounded; only final
// component amounts round to the cent (scale 2) via RoundToCent.
const internalScale = 4

// centScale is the presentation/ledger precision: two fractional digits.
const centScale = 2

// Money is a non-negative fixed-point monetary amount. The zero value is
// zero dollars and is safe to use directly.
type Money struct {
	d decimal.Decimal
}

// Zero is the additive identity.
func Zero() Money {
	return Money{d: decimal.Zero}
}

// New wraps a decimal.Decimal as Money, rejecting negative amounts with a
// plain error rather than silently propagating them. The amount is truncated
// to internalScale fractional digits.
func New(d decimal.Decimal) (Money, error) {
	if d.IsNegative() {
		return Money{}, fmt.Errorf("money: negative amount %s", d.String())
	}
	return Money{d: d.Truncate(internalScale)}, nil
}

// MustNew is New but panics on a negative amount. Reserved for literal
// amounts constructed in rule data and tests, where negativity is a
// programmer error rather than bad input.
func MustNew(d decimal.Decimal) Money {
	m, err := New(d)
	if err != nil {
		panic(err)
	}
	return m
}

// NewFromFloat builds Money from a float64 literal, for rule data and tests
// where a decimal string would be unwieldy. Never use this for caller input —
// see NewFromString for that path.
func NewFromFloat(f float64) Money {
	return MustNew(decimal.NewFromFloat(f))
}

// NewFromString parses a caller-supplied decimal string into Money. It
// returns an error instead of panicking on malformed or negative input.
func NewFromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("money: %w", err)
	}
	return New(d)
}

// Decimal exposes the underlying decimal.Decimal for callers (rate
// multiplication, serialization) that need the raw value.
func (m Money) Decimal() decimal.Decimal {
	return m.d
}

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool {
	return m.d.IsZero()
}

// Add returns m + other. Since both operands are non-negative, the sum is
// always representable as Money without a fallibility check.
func (m Money) Add(other Money) Money {
	return Money{d: m.d.Add(other.d).Truncate(internalScale)}
}

// Sub returns m - other, floored at zero. Used wherever a subtraction must
// never drive an amount negative — vehicle base after trade-in/rebate
// admission, totalTax after reciprocity credit and taxAlreadyCollected.
func (m Money) Sub(other Money) Money {
	d := m.d.Sub(other.d)
	if d.IsNegative() {
		d = decimal.Zero
	}
	return Money{d: d.Truncate(internalScale)}
}

// Min returns the smaller of m and other.
func Min(a, b Money) Money {
	if a.d.LessThan(b.d) {
		return a
	}
	return b
}

// Sum adds a list of Money values, starting from zero.
func Sum(ms ...Money) Money {
	total := Zero()
	for _, m := range ms {
		total = total.Add(m)
	}
	return total
}

// MulRate multiplies a Money base by a decimal rate fraction, returning the
// product truncated to six fractional digits (two more than internalScale)
// and not rounded to the cent. Rounding to the cent happens once, at the point a
// value becomes a final component amount — see RoundToCent — not on every
// intermediate multiplication; intermediate sums stay at internal precision
// so rounding error never compounds across a multi-step calculation.
func (m Money) MulRate(rate decimal.Decimal) Money {
	return Money{d: m.d.Mul(rate).Truncate(internalScale + 2)}
}

// RoundToCent applies banker's rounding (round-half-to-even) to the cent and
// returns the result as Money. This is the only rounding operation the
// engine performs on a tax amount, applied exactly once to each final
// component amount and to totals derived from them.
func (m Money) RoundToCent() Money {
	return Money{d: m.d.RoundBank(centScale)}
}

// Cmp compares two Money values the way decimal.Decimal.Cmp does: -1, 0, 1.
func (m Money) Cmp(other Money) int {
	return m.d.Cmp(other.d)
}

// GreaterThanOrEqual reports whether m >= other.
func (m Money) GreaterThanOrEqual(other Money) bool {
	return m.d.Cmp(other.d) >= 0
}

// LessThan reports whether m < other.
func (m Money) LessThan(other Money) bool {
	return m.d.Cmp(other.d) < 0
}

// String renders the amount to two decimal places, e.g. "1936.75".
func (m Money) String() string {
	return m.d.RoundBank(centScale).StringFixed(centScale)
}

// MarshalJSON renders Money as a JSON number with cent precision. External
// callers of the wire bridge receive monetary fields as plain JSON numbers,
// not strings.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.d.RoundBank(centScale).StringFixed(centScale)), nil
}

// UnmarshalJSON parses a JSON number (or numeric string) into Money,
// rejecting negative amounts.
func (m *Money) UnmarshalJSON(data []byte) error {
	d, err := decimal.NewFromString(string(data))
	if err != nil {
		// fall back to quoted-string form, tolerant of either wire shape
		var s string
		if uerr := json.Unmarshal(data, &s); uerr != nil {
			return fmt.Errorf("money: %w", err)
		}
		d, err = decimal.NewFromString(s)
		if err != nil {
			return fmt.Errorf("money: %w", err)
		}
	}
	parsed, err := New(d)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
