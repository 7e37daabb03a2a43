package cart

import (
	"context"
	"errors"
	"testing"
	"time"

	"artmart-core/internal/domain"
	"artmart-core/internal/repository/slot"
)

type failingRepo struct {
	slot.Repository
	writeErr  error
	deleteErr error
}

func (r *failingRepo) Write(ctx context.Context, key string, value []byte) error {
	if r.writeErr != nil {
		return r.writeErr
	}
	return r.Repository.Write(ctx, key, value)
}

func (r *failingRepo) Delete(ctx context.Context, key string) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	return r.Repository.Delete(ctx, key)
}

func artworkRef(id int64, priceCents int64) domain.ItemRef {
	return domain.ItemRef{
		ID:             id,
		Title:          "Sunset Over Bandra",
		ArtistName:     "Asha Rao",
		ArtistHandle:   "asharao",
		Category:       "painting",
		UnitPriceCents: priceCents,
		ImageURL:       "https://cdn.example.com/art/1.jpg",
	}
}

func newTestStore(t *testing.T) (*Store, slot.Repository) {
	t.Helper()
	repo := slot.NewMemory()
	return NewStore(context.Background(), repo, DefaultSlotKey), repo
}

func TestAddItemMergesById(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	if err := store.AddItem(ctx, artworkRef(1, 100000)); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := store.AddItem(ctx, artworkRef(1, 100000)); err != nil {
		t.Fatalf("add again: %v", err)
	}

	items := store.Items()
	if len(items) != 1 {
		t.Fatalf("expected one line, got %d", len(items))
	}
	if items[0].Quantity != 2 {
		t.Fatalf("expected quantity 2, got %d", items[0].Quantity)
	}
	if store.ItemCount() != 2 {
		t.Fatalf("expected item count 2, got %d", store.ItemCount())
	}
	if store.TotalCents() != 200000 {
		t.Fatalf("expected total 200000, got %d", store.TotalCents())
	}
}

func TestAddItemPreservesInsertionOrder(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	for _, id := range []int64{3, 1, 2} {
		if err := store.AddItem(ctx, artworkRef(id, 1000)); err != nil {
			t.Fatalf("add %d: %v", id, err)
		}
	}
	if err := store.AddItem(ctx, artworkRef(3, 1000)); err != nil {
		t.Fatalf("re-add: %v", err)
	}

	items := store.Items()
	if len(items) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(items))
	}
	if items[0].ID != 3 || items[1].ID != 1 || items[2].ID != 2 {
		t.Fatalf("updating an existing line must not move it: %+v", items)
	}
	if items[0].Quantity != 2 {
		t.Fatalf("expected merged quantity 2, got %d", items[0].Quantity)
	}
}

func TestSetQuantity(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)
	if err := store.AddItem(ctx, artworkRef(1, 1000)); err != nil {
		t.Fatalf("add: %v", err)
	}

	if err := store.SetQuantity(ctx, 1, 5); err != nil {
		t.Fatalf("set quantity: %v", err)
	}
	if items := store.Items(); items[0].Quantity != 5 {
		t.Fatalf("expected absolute set to 5, got %d", items[0].Quantity)
	}

	if err := store.SetQuantity(ctx, 1, 0); err != nil {
		t.Fatalf("set quantity to zero: %v", err)
	}
	if items := store.Items(); len(items) != 0 {
		t.Fatalf("zero quantity must remove the line, got %+v", items)
	}

	if err := store.SetQuantity(ctx, 42, 3); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown id, got %v", err)
	}
}

func TestRemoveItem(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)
	if err := store.AddItem(ctx, artworkRef(1, 1000)); err != nil {
		t.Fatalf("add: %v", err)
	}

	if err := store.RemoveItem(ctx, 1); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(store.Items()) != 0 {
		t.Fatalf("expected empty cart")
	}

	if err := store.RemoveItem(ctx, 1); err != nil {
		t.Fatalf("removing an absent id must succeed, got %v", err)
	}
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	repo := slot.NewMemory()
	store := NewStore(ctx, repo, DefaultSlotKey)
	if err := store.AddItem(ctx, artworkRef(1, 1000)); err != nil {
		t.Fatalf("add: %v", err)
	}

	if err := store.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if len(store.Items()) != 0 || store.TotalCents() != 0 {
		t.Fatalf("expected cleared cart")
	}
	if _, err := repo.Read(ctx, DefaultSlotKey); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("clear must erase the slot, got %v", err)
	}
}

func TestPersistAcrossStores(t *testing.T) {
	ctx := context.Background()
	repo := slot.NewMemory()

	store := NewStore(ctx, repo, DefaultSlotKey)
	if err := store.AddItem(ctx, artworkRef(1, 250000)); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := store.AddItem(ctx, artworkRef(2, 99000)); err != nil {
		t.Fatalf("add: %v", err)
	}

	reloaded := NewStore(ctx, repo, DefaultSlotKey)
	items := reloaded.Items()
	if len(items) != 2 || items[0].ID != 1 || items[1].ID != 2 {
		t.Fatalf("expected persisted cart to reload, got %+v", items)
	}
	if reloaded.TotalCents() != 349000 {
		t.Fatalf("expected total 349000, got %d", reloaded.TotalCents())
	}
}

func TestCorruptSlotLoadsEmpty(t *testing.T) {
	ctx := context.Background()
	repo := slot.NewMemory()
	if err := repo.Write(ctx, DefaultSlotKey, []byte(`{not json`)); err != nil {
		t.Fatalf("seed corrupt slot: %v", err)
	}

	store := NewStore(ctx, repo, DefaultSlotKey)
	if len(store.Items()) != 0 {
		t.Fatalf("corrupt slot must load as empty cart")
	}
}

func TestInvalidQuantityInSlotLoadsEmpty(t *testing.T) {
	ctx := context.Background()
	repo := slot.NewMemory()
	if err := repo.Write(ctx, DefaultSlotKey, []byte(`[{"id":1,"quantity":0}]`)); err != nil {
		t.Fatalf("seed slot: %v", err)
	}

	store := NewStore(ctx, repo, DefaultSlotKey)
	if len(store.Items()) != 0 {
		t.Fatalf("slot violating the quantity invariant must load as empty cart")
	}
}

func TestWriteFailureLeavesStateUnchanged(t *testing.T) {
	ctx := context.Background()
	mem := slot.NewMemory()
	repo := &failingRepo{Repository: mem}
	store := NewStore(ctx, repo, DefaultSlotKey)
	if err := store.AddItem(ctx, artworkRef(1, 1000)); err != nil {
		t.Fatalf("add: %v", err)
	}

	repo.writeErr = errors.New("quota exceeded")
	if err := store.AddItem(ctx, artworkRef(2, 2000)); err == nil {
		t.Fatalf("expected write failure to surface")
	}
	if items := store.Items(); len(items) != 1 || items[0].ID != 1 || items[0].Quantity != 1 {
		t.Fatalf("failed mutation must not change state, got %+v", items)
	}

	repo.deleteErr = errors.New("storage unavailable")
	if err := store.Clear(ctx); err == nil {
		t.Fatalf("expected clear failure to surface")
	}
	if len(store.Items()) != 1 {
		t.Fatalf("failed clear must not change state")
	}
}

func TestItemsReturnsCopy(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)
	if err := store.AddItem(ctx, artworkRef(1, 1000)); err != nil {
		t.Fatalf("add: %v", err)
	}

	snapshot := store.Items()
	snapshot[0].Quantity = 99
	if store.Items()[0].Quantity != 1 {
		t.Fatalf("mutating a snapshot must not affect the store")
	}
}

func TestTotalIdempotent(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)
	if err := store.AddItem(ctx, artworkRef(1, 123400)); err != nil {
		t.Fatalf("add: %v", err)
	}
	first := store.TotalCents()
	second := store.TotalCents()
	if first != second {
		t.Fatalf("total changed without mutation: %d then %d", first, second)
	}
}

func TestAddItemStampsAddedAt(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)
	fixed := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	store.now = func() time.Time { return fixed }

	if err := store.AddItem(ctx, artworkRef(1, 1000)); err != nil {
		t.Fatalf("add: %v", err)
	}
	if got := store.Items()[0].AddedAt; !got.Equal(fixed) {
		t.Fatalf("expected addedAt %v, got %v", fixed, got)
	}
}
