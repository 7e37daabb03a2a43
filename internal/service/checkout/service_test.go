package checkout

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"
	"time"

	"artmart-core/internal/domain"
)

type stubCart struct {
	items    []domain.LineItem
	clearErr error
	cleared  bool
}

func (s *stubCart) Items() []domain.LineItem { return s.items }

func (s *stubCart) Clear(_ context.Context) error {
	if s.clearErr != nil {
		return s.clearErr
	}
	s.cleared = true
	return nil
}

type stubOrders struct {
	saveErr      error
	created      *domain.Order
	saved        *domain.Order
	lastDiscount int
	lastAddr     *domain.ShippingAddress
}

func (s *stubOrders) CreateOrder(items []domain.LineItem, discountPercent int, addr *domain.ShippingAddress) domain.Order {
	s.lastDiscount = discountPercent
	s.lastAddr = addr
	o := domain.Order{
		ID:        "1700000000000-abcd1234",
		Items:     domain.CloneLineItems(items),
		Status:    domain.StatusConfirmed,
		CreatedAt: time.Now(),
	}
	s.created = &o
	return o
}

func (s *stubOrders) SaveOrder(_ context.Context, order domain.Order) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saved = &order
	return nil
}

type stubPromos struct{ codes map[string]int }

func (s *stubPromos) Resolve(code string) (int, bool) {
	pct, ok := s.codes[code]
	return pct, ok
}

func testLogger() *log.Logger { return log.New(io.Discard, "", 0) }

func TestCheckoutHappyPath(t *testing.T) {
	cart := &stubCart{items: []domain.LineItem{{ID: 1, UnitPriceCents: 1000, Quantity: 2}}}
	orders := &stubOrders{}
	svc := New(cart, orders, &stubPromos{codes: map[string]int{"ARTIST10": 10}}, testLogger())

	got, err := svc.Checkout(context.Background(), "ARTIST10", nil)
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}
	if got.ID == "" || orders.saved == nil || orders.saved.ID != got.ID {
		t.Fatalf("expected order saved, got %+v", got)
	}
	if orders.lastDiscount != 10 {
		t.Fatalf("expected resolved 10%% discount, got %d", orders.lastDiscount)
	}
	if !cart.cleared {
		t.Fatalf("expected cart cleared after checkout")
	}
}

func TestCheckoutNoPromo(t *testing.T) {
	cart := &stubCart{}
	orders := &stubOrders{}
	svc := New(cart, orders, &stubPromos{}, testLogger())

	if _, err := svc.Checkout(context.Background(), "", nil); err != nil {
		t.Fatalf("checkout without promo: %v", err)
	}
	if orders.lastDiscount != 0 {
		t.Fatalf("expected no discount, got %d", orders.lastDiscount)
	}
}

func TestCheckoutUnknownPromo(t *testing.T) {
	cart := &stubCart{}
	orders := &stubOrders{}
	svc := New(cart, orders, &stubPromos{}, testLogger())

	_, err := svc.Checkout(context.Background(), "BOGUS", nil)
	if !errors.Is(err, ErrUnknownPromo) {
		t.Fatalf("expected ErrUnknownPromo, got %v", err)
	}
	if orders.saved != nil || cart.cleared {
		t.Fatalf("nothing must be saved or cleared on a bad promo")
	}
}

func TestCheckoutIncompleteAddress(t *testing.T) {
	svc := New(&stubCart{}, &stubOrders{}, &stubPromos{}, testLogger())
	_, err := svc.Checkout(context.Background(), "", &domain.ShippingAddress{Name: "Asha Rao"})
	if !errors.Is(err, ErrIncompleteAddress) {
		t.Fatalf("expected ErrIncompleteAddress, got %v", err)
	}
}

func TestCheckoutSaveFailureKeepsCart(t *testing.T) {
	cart := &stubCart{items: []domain.LineItem{{ID: 1, UnitPriceCents: 1000, Quantity: 1}}}
	orders := &stubOrders{saveErr: errors.New("storage unavailable")}
	svc := New(cart, orders, &stubPromos{}, testLogger())

	if _, err := svc.Checkout(context.Background(), "", nil); err == nil {
		t.Fatalf("expected save failure to surface")
	}
	if cart.cleared {
		t.Fatalf("cart must survive a failed order write")
	}
}

func TestCheckoutClearFailureStillReturnsOrder(t *testing.T) {
	cart := &stubCart{clearErr: errors.New("storage unavailable")}
	orders := &stubOrders{}
	svc := New(cart, orders, &stubPromos{}, testLogger())

	got, err := svc.Checkout(context.Background(), "", nil)
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}
	if got.ID == "" || orders.saved == nil {
		t.Fatalf("expected committed order despite clear failure")
	}
}
