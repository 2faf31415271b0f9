package repository

import "context"

// SlotStore is a durable key-value store holding one text value per key.
// Get returns domain.ErrSlotNotFound when the key has never been written.
type SlotStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// Pinger is implemented by slot stores that can report backend reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}
