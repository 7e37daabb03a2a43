// Package cart owns the mutable pre-checkout collection of line items.
//
// The store keeps its state in memory and writes the full snapshot to its
// slot after every mutation. If the write fails the in-memory state is left
// as it was before the call.
package cart

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"artmart-core/internal/domain"
	"artmart-core/internal/repository/slot"
)

// DefaultSlotKey is the slot the cart persists itself under.
const DefaultSlotKey = "artmart:cart"

type Store struct {
	mu    sync.Mutex
	repo  slot.Repository
	key   string
	items []domain.LineItem
	now   func() time.Time
}

// NewStore builds a cart store over the given slot key and loads whatever
// is persisted there. A missing, unreadable or corrupt slot yields an empty
// cart rather than an error, so the storefront always gets a usable view.
func NewStore(ctx context.Context, repo slot.Repository, key string) *Store {
	s := &Store{repo: repo, key: key, now: time.Now}
	s.items = loadItems(ctx, repo, key)
	return s
}

func loadItems(ctx context.Context, repo slot.Repository, key string) []domain.LineItem {
	raw, err := repo.Read(ctx, key)
	if err != nil {
		return nil
	}
	var items []domain.LineItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}
	for _, it := range items {
		if it.Quantity < 1 {
			return nil
		}
	}
	return items
}

// Items returns a snapshot copy of the cart lines in insertion order.
func (s *Store) Items() []domain.LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.CloneLineItems(s.items)
}

// AddItem merges the artwork into the cart: an id already present gets its
// quantity bumped by one in place, a new id is appended with quantity 1.
func (s *Store) AddItem(ctx context.Context, ref domain.ItemRef) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := domain.CloneLineItems(s.items)
	found := false
	for i := range next {
		if next[i].ID == ref.ID {
			next[i].Quantity++
			found = true
			break
		}
	}
	if !found {
		next = append(next, domain.NewLineItem(ref, s.now()))
	}
	return s.commit(ctx, next)
}

// RemoveItem deletes the line with the given id. Removing an absent id is a
// benign no-op.
func (s *Store) RemoveItem(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]domain.LineItem, 0, len(s.items))
	for _, it := range s.items {
		if it.ID != id {
			next = append(next, it)
		}
	}
	return s.commit(ctx, next)
}

// SetQuantity sets the line's quantity to an absolute value. A quantity of
// zero or less removes the line. Returns domain.ErrNotFound if the id is not
// in the cart.
func (s *Store) SetQuantity(ctx context.Context, id int64, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i := range s.items {
		if s.items[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return domain.ErrNotFound
	}

	next := domain.CloneLineItems(s.items)
	if quantity <= 0 {
		next = append(next[:idx], next[idx+1:]...)
	} else {
		next[idx].Quantity = quantity
	}
	return s.commit(ctx, next)
}

// Clear empties the cart and erases its slot.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.Delete(ctx, s.key); err != nil {
		return err
	}
	s.items = nil
	return nil
}

// ItemCount is the total unit count across all lines, not the line count.
func (s *Store) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, it := range s.items {
		count += it.Quantity
	}
	return count
}

// TotalCents is the cart subtotal before discount and tax.
func (s *Store) TotalCents() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	var total int64
	for _, it := range s.items {
		total += it.UnitPriceCents * int64(it.Quantity)
	}
	return total
}

// commit persists next and only then swaps it in. Callers hold s.mu.
func (s *Store) commit(ctx context.Context, next []domain.LineItem) error {
	raw, err := json.Marshal(next)
	if err != nil {
		return err
	}
	if err := s.repo.Write(ctx, s.key, raw); err != nil {
		return err
	}
	s.items = next
	return nil
}
