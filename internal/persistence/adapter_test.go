package persistence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/fastygo/tasknest/domain"
	"github.com/fastygo/tasknest/repository/file"
)

type failingSlots struct {
	getErr error
	setErr error
	value  string
}

func (f *failingSlots) Get(ctx context.Context, key string) (string, error) {
	if f.getErr != nil {
		return "", f.getErr
	}
	return f.value, nil
}

func (f *failingSlots) Set(ctx context.Context, key, value string) error {
	return f.setErr
}

func newFileAdapter(t *testing.T) (*Adapter, *file.SlotStore) {
	t.Helper()
	slots, err := file.NewSlotStore(afero.NewMemMapFs(), "/tasknest")
	require.NoError(t, err)
	return New(slots, "", nil), slots
}

func sampleTasks() []domain.Task {
	zone := time.FixedZone("UTC+3", 3*60*60)
	created := time.Date(2024, 3, 4, 10, 11, 12, 123456789, zone)
	due := time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)
	completed := created.Add(90 * time.Minute)
	return []domain.Task{
		{
			ID:          "b",
			Title:       "Read chapter 3",
			Category:    domain.CategoryLearning,
			Priority:    domain.PriorityLow,
			Status:      domain.StatusCompleted,
			CreatedAt:   created,
			CompletedAt: &completed,
		},
		{
			ID:          "a",
			Title:       "Pay rent",
			Description: "before the 10th",
			Category:    domain.CategoryPersonal,
			Priority:    domain.PriorityHigh,
			Status:      domain.StatusPending,
			DueDate:     &due,
			CreatedAt:   created.Add(-time.Hour),
		},
	}
}

func TestAdapterRoundTrip(t *testing.T) {
	adapter, _ := newFileAdapter(t)
	ctx := context.Background()
	want := sampleTasks()

	require.True(t, adapter.Save(ctx, want).OK())

	got, result := adapter.Load(ctx)
	require.True(t, result.OK())
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i].ID, got[i].ID)
		assert.Equal(t, want[i].Title, got[i].Title)
		assert.Equal(t, want[i].Description, got[i].Description)
		assert.Equal(t, want[i].Category, got[i].Category)
		assert.Equal(t, want[i].Priority, got[i].Priority)
		assert.Equal(t, want[i].Status, got[i].Status)
		assert.True(t, want[i].CreatedAt.Equal(got[i].CreatedAt))
		assertSameInstant(t, want[i].DueDate, got[i].DueDate)
		assertSameInstant(t, want[i].CompletedAt, got[i].CompletedAt)
	}
}

func assertSameInstant(t *testing.T, want, got *time.Time) {
	t.Helper()
	if want == nil {
		assert.Nil(t, got)
		return
	}
	require.NotNil(t, got)
	assert.True(t, want.Equal(*got), "want %s got %s", want, got)
}

func TestAdapterLoadMissingSlot(t *testing.T) {
	adapter, _ := newFileAdapter(t)

	tasks, result := adapter.Load(context.Background())
	assert.True(t, result.OK())
	assert.NotNil(t, tasks)
	assert.Empty(t, tasks)
}

func TestAdapterLoadCorruptData(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	adapter := New(&failingSlots{value: "{not json"}, DefaultKey, zap.New(core))

	tasks, result := adapter.Load(context.Background())
	assert.Empty(t, tasks)
	assert.False(t, result.OK())
	assert.True(t, domain.IsDomainError(result.Err, domain.ErrCodeInvalid))
	assert.Equal(t, 1, logs.FilterMessage("failed to load tasks").Len())
}

func TestAdapterLoadBadTimestamp(t *testing.T) {
	adapter := New(&failingSlots{value: `[{"id":"x","title":"t","createdAt":"yesterday"}]`}, "", nil)

	tasks, result := adapter.Load(context.Background())
	assert.Empty(t, tasks)
	assert.False(t, result.OK())
}

func TestAdapterSaveFailureIsSwallowed(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	quota := errors.New("quota exceeded")
	adapter := New(&failingSlots{setErr: quota}, "", zap.New(core))

	result := adapter.Save(context.Background(), sampleTasks())
	assert.False(t, result.OK())
	assert.ErrorIs(t, result.Err, quota)

	entries := logs.FilterMessage("failed to save tasks").All()
	require.Len(t, entries, 1)
	assert.Equal(t, int64(2), entries[0].ContextMap()["count"])
}

func TestAdapterStorageUnavailable(t *testing.T) {
	adapter := New(&failingSlots{getErr: domain.ErrStorageUnavailable}, "", nil)

	tasks, result := adapter.Load(context.Background())
	assert.Empty(t, tasks)
	assert.True(t, domain.IsDomainError(result.Err, domain.ErrCodeUnavailable))
}

func TestEncodeLayout(t *testing.T) {
	payload, err := Encode(sampleTasks()[:1])
	require.NoError(t, err)
	assert.Contains(t, payload, `"createdAt":"2024-03-04T10:11:12.123456789+03:00"`)
	assert.Contains(t, payload, `"completedAt":`)
	assert.NotContains(t, payload, `"dueDate"`)
	assert.NotContains(t, payload, `"description"`)
}
