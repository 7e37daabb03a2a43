package domain

import "time"

// ItemRef is how the storefront identifies an artwork when adding it to the cart.
type ItemRef struct {
	ID             int64  `json:"id"`
	Title          string `json:"title"`
	ArtistName     string `json:"artistName"`
	ArtistHandle   string `json:"artistHandle"`
	Category       string `json:"category"`
	UnitPriceCents int64  `json:"unitPriceCents"`
	ImageURL       string `json:"imageUrl"`
}

// LineItem is one artwork plus quantity, held in the cart or frozen into an order.
// Quantity is always >= 1 while the item is present; a mutation that would drive
// it to zero removes the entry instead.
type LineItem struct {
	ID             int64     `json:"id"`
	Title          string    `json:"title"`
	ArtistName     string    `json:"artistName"`
	ArtistHandle   string    `json:"artistHandle"`
	Category       string    `json:"category"`
	UnitPriceCents int64     `json:"unitPriceCents"`
	ImageURL       string    `json:"imageUrl"`
	Quantity       int       `json:"quantity"`
	AddedAt        time.Time `json:"addedAt"`
}

// NewLineItem builds a fresh cart line from an artwork reference with quantity 1.
func NewLineItem(ref ItemRef, addedAt time.Time) LineItem {
	return LineItem{
		ID:             ref.ID,
		Title:          ref.Title,
		ArtistName:     ref.ArtistName,
		ArtistHandle:   ref.ArtistHandle,
		Category:       ref.Category,
		UnitPriceCents: ref.UnitPriceCents,
		ImageURL:       ref.ImageURL,
		Quantity:       1,
		AddedAt:        addedAt,
	}
}

// CloneLineItems returns an independent copy of the slice so callers can never
// reach into a store's live cache.
func CloneLineItems(items []LineItem) []LineItem {
	out := make([]LineItem, len(items))
	copy(out, items)
	return out
}
