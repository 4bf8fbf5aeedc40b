// Package engineerr defines the typed error kinds a single tax calculation
// call can fail with. Every failure is deterministic and per-call; there is
// no partial result and no recovery inside the engine.
package engineerr

import "fmt"

// Kind enumerates the ways a single calculation call can fail.
type Kind string

const (
	KindUnknownState        Kind = "UNKNOWN_STATE"
	KindStubState           Kind = "STUB_STATE"
	KindInvalidRule         Kind = "INVALID_RULE"
	KindInvalidInput        Kind = "INVALID_INPUT"
	KindInvalidRates        Kind = "INVALID_RATES"
	KindOverflowOrNonFinite Kind = "OVERFLOW_OR_NON_FINITE"
)

// Error is the single error type the calculator returns. Field is the
// offending input field when applicable, empty otherwise.
type Error struct {
	Kind    Kind
	Field   string
	Message string
}

func (e *Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s (field %q)", e.Kind, e.Message, e.Field)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Is supports errors.Is(err, &Error{Kind: ...}) comparisons against a kind,
// ignoring Field and Message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func NewField(kind Kind, field, message string) *Error {
	return &Error{Kind: kind, Field: field, Message: message}
}

func UnknownState(code string) *Error {
	return NewField(KindUnknownState, "stateCode", fmt.Sprintf("no rule loaded for state %q", code))
}

func StubState(code string) *Error {
	return NewField(KindStubState, "stateCode", fmt.Sprintf("state %q rule is a stub, not implemented", code))
}

func InvalidInput(field, message string) *Error {
	return NewField(KindInvalidInput, field, message)
}

func InvalidRates(message string) *Error {
	return New(KindInvalidRates, message)
}

func Overflow(message string) *Error {
	return New(KindOverflowOrNonFinite, message)
}
