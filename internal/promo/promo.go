// Package promo resolves promo codes to whole-number discount percentages.
package promo

import "strings"

// Resolver maps a promo code to a discount percent. Implementations decide
// where codes come from; a backend promotions service can be dropped in
// without touching the cart or order stores.
type Resolver interface {
	Resolve(code string) (percent int, ok bool)
}

// Static resolves against a fixed, case-insensitive code table.
type Static struct {
	codes map[string]int
}

// NewStatic returns the resolver with the storefront's built-in codes.
func NewStatic() *Static {
	return &Static{codes: map[string]int{
		"ARTIST10":  10,
		"WELCOME20": 20,
	}}
}

func (s *Static) Resolve(code string) (int, bool) {
	pct, ok := s.codes[strings.ToUpper(strings.TrimSpace(code))]
	return pct, ok
}
