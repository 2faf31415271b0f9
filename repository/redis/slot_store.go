package redis

import (
	"context"
	"errors"
	"fmt"

	redislib "github.com/redis/go-redis/v9"

	"github.com/fastygo/tasknest/domain"
	"github.com/fastygo/tasknest/repository"
)

type slotStore struct {
	client *redislib.Client
	prefix string
}

// NewSlotStore creates a Redis-backed slot store. Slots never expire.
func NewSlotStore(client *redislib.Client, prefix string) repository.SlotStore {
	if prefix == "" {
		prefix = "tasknest:"
	}
	return &slotStore{
		client: client,
		prefix: prefix,
	}
}

func (r *slotStore) Get(ctx context.Context, key string) (string, error) {
	result, err := r.client.Get(ctx, r.key(key)).Result()
	if err != nil {
		if errors.Is(err, redislib.Nil) {
			return "", domain.ErrSlotNotFound
		}
		return "", err
	}
	return result, nil
}

func (r *slotStore) Set(ctx context.Context, key, value string) error {
	return r.client.Set(ctx, r.key(key), value, 0).Err()
}

func (r *slotStore) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *slotStore) key(id string) string {
	return fmt.Sprintf("%s%s", r.prefix, id)
}

var _ repository.Pinger = (*slotStore)(nil)
