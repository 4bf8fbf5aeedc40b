package engine

import (
	"github.com/vehiclex/taxengine/pkg/deal"
	"github.com/vehiclex/taxengine/pkg/engineerr"
	"github.com/vehiclex/taxengine/pkg/registry"
)

// CalculateTaxForState resolves a state code against the registry and runs
// CalculateTax against the result, reporting engineerr.UnknownState when the
// registry has no rule loaded for that code. Callers that already hold a
// resolved rule.StateRule (for example from a TaxContext) should call
// CalculateTax directly instead.
func CalculateTaxForState(reg *registry.Registry, code string, input deal.DealInput) (TaxCalculationResult, error) {
	r, ok := reg.GetRulesForState(code)
	if !ok {
		return TaxCalculationResult{}, engineerr.UnknownState(code)
	}
	return CalculateTax(input, r)
}
