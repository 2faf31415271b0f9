package bolt

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/tasknest/domain"
)

func openTestStore(t *testing.T, path string) *SlotStore {
	t.Helper()
	store, err := Open(path, "")
	require.NoError(t, err)
	return store
}

func TestSlotStoreGetMissing(t *testing.T) {
	store := openTestStore(t, filepath.Join(t.TempDir(), "data", "tasks.db"))
	defer store.Close()

	_, err := store.Get(context.Background(), "tasknest_tasks")
	assert.ErrorIs(t, err, domain.ErrSlotNotFound)
}

func TestSlotStoreSetGetSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.db")
	ctx := context.Background()

	store := openTestStore(t, path)
	require.NoError(t, store.Set(ctx, "tasknest_tasks", `[{"id":"1"}]`))
	require.NoError(t, store.Set(ctx, "tasknest_tasks", `[]`))
	require.NoError(t, store.Close())

	reopened := openTestStore(t, path)
	defer reopened.Close()

	value, err := reopened.Get(ctx, "tasknest_tasks")
	require.NoError(t, err)
	assert.Equal(t, `[]`, value)
	assert.NoError(t, reopened.Ping(ctx))
}

func TestSlotStoreClosed(t *testing.T) {
	var store *SlotStore
	assert.Error(t, store.Set(context.Background(), "k", "v"))
	assert.NoError(t, store.Close())
}
