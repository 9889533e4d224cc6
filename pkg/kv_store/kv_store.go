package kv_store

import "context"

// Store is a durable string-to-string store. A value is durable once Set returns without error.
type Store interface {
	// Get returns the value stored under key. The boolean is false when the key has never been set
	// or was deleted.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
}
