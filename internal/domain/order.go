package domain

import "time"

// OrderStatus is the closed set of states an order moves through.
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusConfirmed OrderStatus = "confirmed"
	StatusShipped   OrderStatus = "shipped"
	StatusDelivered OrderStatus = "delivered"
	StatusCancelled OrderStatus = "cancelled"
)

// Valid reports whether s is one of the known statuses.
func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further transition is allowed out of s.
func (s OrderStatus) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// CanTransitionTo reports whether moving from s to next is legal.
// Cancellation is reachable from any non-terminal state; delivered and
// cancelled are terminal. A same-status move is allowed as a no-op.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	if !s.Valid() || !next.Valid() {
		return false
	}
	if s == next {
		return true
	}
	if s.Terminal() {
		return false
	}
	if next == StatusCancelled {
		return true
	}
	switch s {
	case StatusPending:
		return next == StatusConfirmed
	case StatusConfirmed:
		return next == StatusShipped
	case StatusShipped:
		return next == StatusDelivered
	}
	return false
}

// ShippingAddress carries the delivery details captured at checkout.
// All fields are required together or the address is not accepted at all.
type ShippingAddress struct {
	Name       string `json:"name"`
	Address    string `json:"address"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postalCode"`
	Phone      string `json:"phone"`
}

// Complete reports whether every field is filled in.
func (a ShippingAddress) Complete() bool {
	return a.Name != "" && a.Address != "" && a.City != "" &&
		a.State != "" && a.PostalCode != "" && a.Phone != ""
}

// Order is an immutable checkout record. Items is a frozen copy of the cart
// lines at checkout time; Status is the only field mutated after creation.
// TotalCents = SubtotalCents - DiscountCents + TaxCents.
type Order struct {
	ID                string           `json:"id"`
	Items             []LineItem       `json:"items"`
	SubtotalCents     int64            `json:"subtotalCents"`
	DiscountCents     int64            `json:"discountCents"`
	TaxCents          int64            `json:"taxCents"`
	TotalCents        int64            `json:"totalCents"`
	DiscountPercent   int              `json:"discountPercent"`
	Status            OrderStatus      `json:"status"`
	CreatedAt         time.Time        `json:"createdAt"`
	EstimatedDelivery time.Time        `json:"estimatedDelivery"`
	ShippingAddress   *ShippingAddress `json:"shippingAddress,omitempty"`
}
