// Package pricing computes the monetary breakdown of a set of cart lines.
// All amounts are int64 minor units (paise).
package pricing

import "artmart-core/internal/domain"

// TaxRatePercent is the GST rate applied to the post-discount subtotal.
const TaxRatePercent = 18

// Totals is the aggregated result of pricing a list of line items.
type Totals struct {
	SubtotalCents int64 `json:"subtotalCents"`
	DiscountCents int64 `json:"discountCents"`
	TaxCents      int64 `json:"taxCents"`
	TotalCents    int64 `json:"totalCents"`
}

// Compute prices the given lines with a whole-number discount percent.
// discountPercent is clamped to [0, 100], so the total can never go negative.
// Pure and deterministic.
func Compute(items []domain.LineItem, discountPercent int) Totals {
	if discountPercent < 0 {
		discountPercent = 0
	}
	if discountPercent > 100 {
		discountPercent = 100
	}

	var subtotal int64
	for _, it := range items {
		subtotal += it.UnitPriceCents * int64(it.Quantity)
	}
	discount := subtotal * int64(discountPercent) / 100
	tax := (subtotal - discount) * TaxRatePercent / 100

	return Totals{
		SubtotalCents: subtotal,
		DiscountCents: discount,
		TaxCents:      tax,
		TotalCents:    subtotal - discount + tax,
	}
}
