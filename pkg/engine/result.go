package engine

import (
	"github.com/vehiclex/taxengine/pkg/money"
)

// finalizeTotalTax applies reciprocity and already-collected tax against the
// raw component-tax total:
// totalTax = sum(componentTaxes.amount) - reciprocityCredit - taxAlreadyCollected,
// floored at 0.
func finalizeTotalTax(raw TaxSummary, reciprocityCredit, taxAlreadyCollected money.Money) TaxSummary {
	total := raw.TotalTax.Sub(reciprocityCredit).Sub(taxAlreadyCollected)
	return TaxSummary{ComponentTaxes: raw.ComponentTaxes, TotalTax: total}
}

// stateRateOf returns the rate of the first state-labeled component in
// specs, used by the reciprocity resolver's CreditUpToStateRate behavior.
func stateRateOf(specs []rateComponentSpec) float64 {
	for _, s := range specs {
		if s.isState {
			return s.rate
		}
	}
	return 0
}
