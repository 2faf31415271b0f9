package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/tasknest/domain"
	taskUC "github.com/fastygo/tasknest/usecase/task"
)

var cliNow = time.Date(2024, 6, 14, 9, 0, 0, 0, time.UTC)

type result struct {
	stdout string
	stderr string
	err    error
}

func run(t *testing.T, dir string, args ...string) result {
	t.Helper()
	var stdout, stderr bytes.Buffer
	c := New(&stdout, &stderr, taskUC.WithClock(func() time.Time { return cliNow }))
	args = append(args, "--backend=file", "--file-dir="+dir, "--timezone=UTC")
	err := c.Execute(context.Background(), args)
	return result{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func decode[T any](t *testing.T, raw string) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal([]byte(raw), &out), raw)
	return out
}

func TestAddCompleteDeleteRoundTrip(t *testing.T) {
	dir := t.TempDir()

	res := run(t, dir, "add", "Buy", "milk", "-c", "personal", "-p", "high", "--due", "2024-06-13", "--json")
	require.NoError(t, res.err)
	created := decode[domain.Task](t, res.stdout)
	assert.Equal(t, "Buy milk", created.Title)
	assert.Equal(t, domain.StatusPending, created.Status)
	assert.Contains(t, res.stderr, "Task Created")
	assert.Contains(t, res.stderr, `"Buy milk" has been added to your tasks.`)

	res = run(t, dir, "overdue", "--json")
	require.NoError(t, res.err)
	assert.Len(t, decode[[]domain.Task](t, res.stdout), 1)

	res = run(t, dir, "complete", created.ID, "--json")
	require.NoError(t, res.err)
	completed := decode[domain.Task](t, res.stdout)
	assert.Equal(t, domain.StatusCompleted, completed.Status)
	require.NotNil(t, completed.CompletedAt)
	assert.True(t, completed.CompletedAt.Equal(cliNow))
	assert.Contains(t, res.stderr, `Great job completing "Buy milk"!`)

	res = run(t, dir, "stats", "--json")
	require.NoError(t, res.err)
	stats := decode[domain.TaskAnalytics](t, res.stdout)
	assert.Equal(t, 1, stats.TotalTasks)
	assert.Equal(t, 1, stats.CompletedTasks)
	assert.Equal(t, 0, stats.OverdueTasksCount)
	assert.InDelta(t, 100.0, stats.CompletionRate, 0.0001)
	require.Len(t, stats.WeeklyProgress, 7)
	assert.Equal(t, "2024-06-14", stats.WeeklyProgress[6].Day)
	assert.Equal(t, 1, stats.WeeklyProgress[6].Completed)

	res = run(t, dir, "delete", created.ID)
	require.NoError(t, res.err)
	assert.Contains(t, res.stderr, `"Buy milk" has been removed.`)

	res = run(t, dir, "show", created.ID)
	assert.ErrorIs(t, res.err, domain.ErrTaskNotFound)
}

func TestListFilters(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, run(t, dir, "add", "Quarterly report", "-c", "work").err)
	require.NoError(t, run(t, dir, "add", "Morning run", "-c", "health", "-s", "in-progress").err)

	res := run(t, dir, "list", "--json")
	require.NoError(t, res.err)
	all := decode[[]domain.Task](t, res.stdout)
	require.Len(t, all, 2)
	assert.Equal(t, "Morning run", all[0].Title)

	res = run(t, dir, "list", "--category", "work", "--json")
	require.NoError(t, res.err)
	work := decode[[]domain.Task](t, res.stdout)
	require.Len(t, work, 1)
	assert.Equal(t, "Quarterly report", work[0].Title)

	res = run(t, dir, "list", "-q", "MORNING", "--json")
	require.NoError(t, res.err)
	assert.Len(t, decode[[]domain.Task](t, res.stdout), 1)

	res = run(t, dir, "list")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Quarterly report")
	assert.Contains(t, res.stdout, "PRIORITY")
}

func TestUpdateClearsDueDate(t *testing.T) {
	dir := t.TempDir()
	res := run(t, dir, "add", "Renew passport", "--due", "2024-07-01", "--json")
	require.NoError(t, res.err)
	created := decode[domain.Task](t, res.stdout)
	require.NotNil(t, created.DueDate)

	res = run(t, dir, "update", created.ID, "--due", "", "--title", "Renew passport now", "--json")
	require.NoError(t, res.err)
	updated := decode[domain.Task](t, res.stdout)
	assert.Nil(t, updated.DueDate)
	assert.Equal(t, "Renew passport now", updated.Title)
	assert.True(t, created.CreatedAt.Equal(updated.CreatedAt))
}

func TestInvalidInputIsRejected(t *testing.T) {
	dir := t.TempDir()

	res := run(t, dir, "add", "Bad", "-c", "chores")
	assert.True(t, domain.IsDomainError(res.err, domain.ErrCodeInvalid))

	res = run(t, dir, "update", "whatever")
	assert.True(t, domain.IsDomainError(res.err, domain.ErrCodeInvalid))

	res = run(t, dir, "delete", "missing")
	assert.ErrorIs(t, res.err, domain.ErrTaskNotFound)

	res = run(t, dir, "list", "--json")
	require.NoError(t, res.err)
	assert.Empty(t, decode[[]domain.Task](t, res.stdout))
}

func TestUnknownBackend(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := New(&stdout, &stderr).Execute(context.Background(), []string{"list", "--backend=memory"})
	assert.Error(t, err)
}
