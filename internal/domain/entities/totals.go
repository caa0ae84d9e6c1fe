package entities

import "github.com/shopspring/decimal"

// Totals is the derived monetary summary for a quote snapshot. It is never
// persisted; it is recomputed on demand from the quote's line items.
//
// Invariant: Total == sum(LineSubtotals) + ImplementationPrice.
type Totals struct {
	LineSubtotals       map[string]decimal.Decimal
	ImplementationPrice decimal.Decimal
	Total               decimal.Decimal
}

// ComputeTotals derives Totals from a quote. It is a total function: it never
// errors, a quote without line items contributes zero, and negative inputs
// pass through unchanged (non-negativity is validated upstream).
//
// Subtotals here are recomputed from quantity x unit price; this is the one
// explicit recomputation path. Line items with the same category accumulate
// into a single subtotal.
func ComputeTotals(q Quote) Totals {
	subtotals := make(map[string]decimal.Decimal, len(q.LineItems))
	total := q.ImplementationPrice

	for _, item := range q.LineItems {
		subtotal := item.UnitPrice.Mul(decimal.NewFromInt(item.Quantity))
		subtotals[item.Category] = subtotals[item.Category].Add(subtotal)
		total = total.Add(subtotal)
	}

	return Totals{
		LineSubtotals:       subtotals,
		ImplementationPrice: q.ImplementationPrice,
		Total:               total,
	}
}
