package slot

import (
	"context"
	"sync"

	"artmart-core/internal/domain"
)

type memoryRepo struct {
	mu    sync.RWMutex
	slots map[string][]byte
}

// NewMemory returns a process-local Repository. Used in tests and when the
// service runs without a database.
func NewMemory() Repository {
	return &memoryRepo{slots: make(map[string][]byte)}
}

func (r *memoryRepo) Read(_ context.Context, key string) ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	value, ok := r.slots[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

func (r *memoryRepo) Write(_ context.Context, key string, value []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := make([]byte, len(value))
	copy(stored, value)
	r.slots[key] = stored
	return nil
}

func (r *memoryRepo) Delete(_ context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.slots, key)
	return nil
}
