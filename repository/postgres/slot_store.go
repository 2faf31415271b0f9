package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fastygo/tasknest/domain"
	"github.com/fastygo/tasknest/repository"
)

type slotStore struct {
	pool *pgxpool.Pool
}

// NewSlotStore returns a Postgres-backed SlotStore over the kv_slots table.
func NewSlotStore(pool *pgxpool.Pool) repository.SlotStore {
	return &slotStore{pool: pool}
}

func (r *slotStore) Get(ctx context.Context, key string) (string, error) {
	const query = `
	SELECT value
	FROM kv_slots
	WHERE key = $1
	`
	var value string
	if err := r.pool.QueryRow(ctx, query, key).Scan(&value); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", domain.ErrSlotNotFound
		}
		return "", err
	}
	return value, nil
}

func (r *slotStore) Set(ctx context.Context, key, value string) error {
	const query = `
	INSERT INTO kv_slots (key, value, updated_at)
	VALUES ($1, $2, NOW())
	ON CONFLICT (key) DO UPDATE
	SET value = EXCLUDED.value,
	    updated_at = EXCLUDED.updated_at
	`
	_, err := r.pool.Exec(ctx, query, key, value)
	return err
}

func (r *slotStore) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

var _ repository.Pinger = (*slotStore)(nil)
