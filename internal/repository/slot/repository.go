// Package slot persists whole JSON snapshots under fixed string keys.
// Each store owns exactly one key and always writes its full state, so a
// write either lands completely or not at all.
package slot

import "context"

type Repository interface {
	// Read returns the stored value for key, or domain.ErrNotFound if the
	// slot has never been written (or was deleted).
	Read(ctx context.Context, key string) ([]byte, error)
	// Write replaces the slot's value in a single upsert.
	Write(ctx context.Context, key string, value []byte) error
	// Delete erases the slot. Deleting an absent slot is not an error.
	Delete(ctx context.Context, key string) error
}
