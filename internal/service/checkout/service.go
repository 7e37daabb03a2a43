// Package checkout turns the current cart into a persisted order.
package checkout

import (
	"context"
	"errors"
	"log"

	"artmart-core/internal/domain"
	"artmart-core/internal/promo"
)

var (
	// ErrUnknownPromo indicates the promo code did not resolve to a discount.
	ErrUnknownPromo = errors.New("unknown promo code")
	// ErrIncompleteAddress indicates a shipping address with missing fields.
	// An address is optional, but once given it must be complete.
	ErrIncompleteAddress = errors.New("incomplete shipping address")
)

type cartStore interface {
	Items() []domain.LineItem
	Clear(ctx context.Context) error
}

type orderStore interface {
	CreateOrder(items []domain.LineItem, discountPercent int, addr *domain.ShippingAddress) domain.Order
	SaveOrder(ctx context.Context, order domain.Order) error
}

type Service struct {
	cart   cartStore
	orders orderStore
	promos promo.Resolver
	logger *log.Logger
}

func New(cart cartStore, orders orderStore, promos promo.Resolver, logger *log.Logger) *Service {
	return &Service{cart: cart, orders: orders, promos: promos, logger: logger}
}

// Checkout resolves the promo code, snapshots the cart into a new order,
// persists it, and empties the cart. If persisting fails the cart is left
// untouched so the buyer can retry.
func (s *Service) Checkout(ctx context.Context, promoCode string, addr *domain.ShippingAddress) (domain.Order, error) {
	discount := 0
	if promoCode != "" {
		pct, ok := s.promos.Resolve(promoCode)
		if !ok {
			return domain.Order{}, ErrUnknownPromo
		}
		discount = pct
	}

	if addr != nil && !addr.Complete() {
		return domain.Order{}, ErrIncompleteAddress
	}

	order := s.orders.CreateOrder(s.cart.Items(), discount, addr)
	if err := s.orders.SaveOrder(ctx, order); err != nil {
		return domain.Order{}, err
	}

	// The order is committed at this point. A cart that refuses to clear is
	// logged, not surfaced: the buyer already has their order.
	if err := s.cart.Clear(ctx); err != nil {
		s.logger.Printf("clear cart after order %s: %v", order.ID, err)
	}

	return order, nil
}
