package store

import (
	"context"
	"errors"
)

// ErrUnavailable is returned when the backing store cannot be reached or the
// write cannot be committed. State prior to the failed write remains
// authoritative.
var ErrUnavailable = errors.New("store unavailable")

// Cell is a single-value persistent slot supporting atomic get/replace of a
// structured record.
type Cell interface {
	// Get returns the stored value and whether the slot has ever been set.
	Get(ctx context.Context) ([]byte, bool, error)
	// Set replaces the slot's value.
	Set(ctx context.Context, value []byte) error
}

// Map is a persistent map keyed by string, surviving process restarts.
type Map interface {
	// Get returns the value for key and whether the key is present.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Insert sets the value for key, overwriting any previous value.
	Insert(ctx context.Context, key string, value []byte) error
	// Remove deletes the key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error
	// Contains reports whether the key is present.
	Contains(ctx context.Context, key string) (bool, error)
	// Len returns the number of keys.
	Len(ctx context.Context) (int64, error)
}
