// Package order builds immutable checkout records and keeps the persisted
// order history, most recent first.
package order

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"artmart-core/internal/domain"
	"artmart-core/internal/pricing"
	"artmart-core/internal/repository/slot"
)

// DefaultSlotKey is the slot the order collection persists under.
const DefaultSlotKey = "artmart:orders"

// deliveryWindow is added to the creation time for the delivery estimate.
const deliveryWindow = 7 * 24 * time.Hour

type Store struct {
	repo  slot.Repository
	key   string
	now   func() time.Time
	newID func(t time.Time) string
}

func NewStore(repo slot.Repository, key string) *Store {
	return &Store{repo: repo, key: key, now: time.Now, newID: newOrderID}
}

// newOrderID concatenates the creation timestamp with a random suffix, so
// ids sort roughly by creation time and never collide.
func newOrderID(t time.Time) string {
	return fmt.Sprintf("%d-%s", t.UnixMilli(), uuid.NewString()[:8])
}

// CreateOrder builds an order from a snapshot of cart lines. It deep-copies
// the items, prices them, and stamps id, status and delivery estimate. It
// does not persist; callers confirm with SaveOrder once they are ready.
func (s *Store) CreateOrder(items []domain.LineItem, discountPercent int, addr *domain.ShippingAddress) domain.Order {
	now := s.now()
	totals := pricing.Compute(items, discountPercent)

	var shipping *domain.ShippingAddress
	if addr != nil {
		copied := *addr
		shipping = &copied
	}

	return domain.Order{
		ID:                s.newID(now),
		Items:             domain.CloneLineItems(items),
		SubtotalCents:     totals.SubtotalCents,
		DiscountCents:     totals.DiscountCents,
		TaxCents:          totals.TaxCents,
		TotalCents:        totals.TotalCents,
		DiscountPercent:   discountPercent,
		Status:            domain.StatusConfirmed,
		CreatedAt:         now,
		EstimatedDelivery: now.Add(deliveryWindow),
		ShippingAddress:   shipping,
	}
}

// SaveOrder prepends the order to the persisted collection and writes the
// whole collection back in one shot.
func (s *Store) SaveOrder(ctx context.Context, order domain.Order) error {
	orders := s.load(ctx)
	next := make([]domain.Order, 0, len(orders)+1)
	next = append(next, order)
	next = append(next, orders...)
	return s.persist(ctx, next)
}

// Orders returns the persisted collection, most recent first. Missing or
// corrupt storage yields an empty collection.
func (s *Store) Orders(ctx context.Context) []domain.Order {
	return s.load(ctx)
}

// OrderByID returns the order with the given id, or domain.ErrNotFound.
func (s *Store) OrderByID(ctx context.Context, id string) (*domain.Order, error) {
	for _, o := range s.load(ctx) {
		if o.ID == id {
			return &o, nil
		}
	}
	return nil, domain.ErrNotFound
}

// UpdateOrderStatus transitions the order's status in place within the
// persisted collection. Illegal moves return domain.ErrInvalidTransition;
// a same-status update succeeds without rewriting storage.
func (s *Store) UpdateOrderStatus(ctx context.Context, id string, status domain.OrderStatus) error {
	orders := s.load(ctx)
	for i := range orders {
		if orders[i].ID != id {
			continue
		}
		if !orders[i].Status.CanTransitionTo(status) {
			return domain.ErrInvalidTransition
		}
		if orders[i].Status == status {
			return nil
		}
		orders[i].Status = status
		return s.persist(ctx, orders)
	}
	return domain.ErrNotFound
}

// OrdersByStatus filters the persisted collection, keeping recency order.
func (s *Store) OrdersByStatus(ctx context.Context, status domain.OrderStatus) []domain.Order {
	var out []domain.Order
	for _, o := range s.load(ctx) {
		if o.Status == status {
			out = append(out, o)
		}
	}
	return out
}

// TotalOrders is the number of persisted orders.
func (s *Store) TotalOrders(ctx context.Context) int {
	return len(s.load(ctx))
}

// TotalSpentCents sums the grand total across all persisted orders.
func (s *Store) TotalSpentCents(ctx context.Context) int64 {
	var sum int64
	for _, o := range s.load(ctx) {
		sum += o.TotalCents
	}
	return sum
}

func (s *Store) load(ctx context.Context) []domain.Order {
	raw, err := s.repo.Read(ctx, s.key)
	if err != nil {
		return nil
	}
	var orders []domain.Order
	if err := json.Unmarshal(raw, &orders); err != nil {
		return nil
	}
	return orders
}

func (s *Store) persist(ctx context.Context, orders []domain.Order) error {
	raw, err := json.Marshal(orders)
	if err != nil {
		return err
	}
	return s.repo.Write(ctx, s.key, raw)
}
