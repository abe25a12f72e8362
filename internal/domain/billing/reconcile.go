package billing

import "github.com/sangkips/billdesk-api/internal/domain/enum"

// Reconcile returns a copy of lines with every display price re-derived
// from the stored base price under mode. Nothing else changes.
func Reconcile(lines []LineItem, mode enum.TaxMode) []LineItem {
	out := make([]LineItem, len(lines))
	for i, line := range lines {
		line.DisplayPrice = line.DisplayPriceFor(mode)
		out[i] = line
	}
	return out
}
