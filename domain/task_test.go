package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnumsValid(t *testing.T) {
	for _, c := range Categories {
		assert.True(t, c.Valid(), c)
	}
	for _, p := range Priorities {
		assert.True(t, p.Valid(), p)
	}
	for _, s := range Statuses {
		assert.True(t, s.Valid(), s)
	}
	assert.False(t, Category("errands").Valid())
	assert.False(t, Priority("critical").Valid())
	assert.False(t, Status("done").Valid())
}

func TestTaskIsOverdue(t *testing.T) {
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	yesterday := now.AddDate(0, 0, -1)
	tomorrow := now.AddDate(0, 0, 1)

	cases := []struct {
		name string
		task Task
		want bool
	}{
		{"no due date", Task{Status: StatusPending}, false},
		{"past due pending", Task{Status: StatusPending, DueDate: &yesterday}, true},
		{"past due in progress", Task{Status: StatusInProgress, DueDate: &yesterday}, true},
		{"past due completed", Task{Status: StatusCompleted, DueDate: &yesterday}, false},
		{"future due", Task{Status: StatusPending, DueDate: &tomorrow}, false},
		{"due exactly now", Task{Status: StatusPending, DueDate: &now}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.task.IsOverdue(now))
		})
	}
}

func TestTaskMatches(t *testing.T) {
	task := Task{Title: "Pay Rent", Description: "Transfer to LANDLORD"}
	assert.True(t, task.Matches(""))
	assert.True(t, task.Matches("rent"))
	assert.True(t, task.Matches("landlord"))
	assert.False(t, task.Matches("groceries"))
}

func TestTaskQueriesOnValues(t *testing.T) {
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	var boxed interface{} = Task{Title: "Renew passport", Status: StatusCompleted, DueDate: &past}

	assert.True(t, boxed.(Task).IsCompleted())
	assert.False(t, boxed.(Task).IsOverdue(now))
	assert.True(t, boxed.(Task).Matches("passport"))
	assert.True(t, Task{Status: StatusPending, DueDate: &past}.IsOverdue(now))
	assert.False(t, Task{}.IsCompleted())
}

func TestCloneDoesNotShareTimes(t *testing.T) {
	due := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	task := Task{ID: "a", DueDate: &due}

	clone := task.Clone()
	*clone.DueDate = clone.DueDate.AddDate(1, 0, 0)

	assert.Equal(t, 2024, task.DueDate.Year())
}

func TestTaskPatchApply(t *testing.T) {
	created := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	due := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	task := Task{
		ID:        "id-1",
		Title:     "Old",
		Category:  CategoryWork,
		Priority:  PriorityLow,
		Status:    StatusPending,
		DueDate:   &due,
		CreatedAt: created,
	}

	title := "New"
	priority := PriorityUrgent
	out := TaskPatch{Title: &title, Priority: &priority, ClearDueDate: true}.Apply(task)

	assert.Equal(t, "New", out.Title)
	assert.Equal(t, PriorityUrgent, out.Priority)
	assert.Equal(t, CategoryWork, out.Category)
	assert.Nil(t, out.DueDate)
	assert.Equal(t, "id-1", out.ID)
	assert.True(t, out.CreatedAt.Equal(created))
	require.NotNil(t, task.DueDate, "original must be untouched")
}

func TestTaskPatchIsEmpty(t *testing.T) {
	assert.True(t, TaskPatch{}.IsEmpty())
	status := StatusCompleted
	assert.False(t, TaskPatch{Status: &status}.IsEmpty())
	assert.False(t, TaskPatch{ClearDueDate: true}.IsEmpty())
}

func TestPersistResult(t *testing.T) {
	assert.True(t, PersistSuccess().OK())
	failed := PersistFailure(nil)
	assert.False(t, failed.OK())
	assert.True(t, IsDomainError(failed.Err, ErrCodeUnavailable))
}
