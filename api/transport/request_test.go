package transport

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/tasknest/domain"
)

func strPtr(s string) *string { return &s }

func TestCreateTaskRequestTrimsTitle(t *testing.T) {
	req := CreateTaskRequest{
		Title:    "   Pay rent  ",
		Category: "personal",
		Priority: "high",
		DueDate:  "2024-06-13",
	}

	task, err := req.ToDomain(time.UTC)
	require.NoError(t, err)
	assert.Equal(t, "Pay rent", task.Title)
	assert.Equal(t, domain.CategoryPersonal, task.Category)
	assert.Equal(t, domain.Status(""), task.Status)
	require.NotNil(t, task.DueDate)
	assert.True(t, task.DueDate.Equal(time.Date(2024, 6, 13, 0, 0, 0, 0, time.UTC)))
}

func TestCreateTaskRequestRejectsInvalid(t *testing.T) {
	cases := map[string]CreateTaskRequest{
		"blank title":      {Title: "   ", Category: "work", Priority: "low"},
		"unknown category": {Title: "x", Category: "errands", Priority: "low"},
		"unknown priority": {Title: "x", Category: "work", Priority: "critical"},
		"unknown status":   {Title: "x", Category: "work", Priority: "low", Status: "done"},
		"malformed date":   {Title: "x", Category: "work", Priority: "low", DueDate: "next tuesday"},
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := req.ToDomain(time.UTC)
			require.Error(t, err)
			assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))
		})
	}
}

func TestValidateMessageUsesJSONNames(t *testing.T) {
	_, err := CreateTaskRequest{Category: "work", Priority: "low"}.ToDomain(time.UTC)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "title failed on 'required'")
}

func TestUpdateTaskRequest(t *testing.T) {
	patch, err := UpdateTaskRequest{
		Title:  strPtr("  Renamed "),
		Status: strPtr("completed"),
	}.ToDomain(time.UTC)
	require.NoError(t, err)
	require.NotNil(t, patch.Title)
	assert.Equal(t, "Renamed", *patch.Title)
	assert.Equal(t, domain.StatusCompleted, *patch.Status)
	assert.Nil(t, patch.Category)
	assert.False(t, patch.ClearDueDate)
}

func TestUpdateTaskRequestClearsDueDate(t *testing.T) {
	patch, err := UpdateTaskRequest{DueDate: strPtr("")}.ToDomain(time.UTC)
	require.NoError(t, err)
	assert.True(t, patch.ClearDueDate)
	assert.Nil(t, patch.DueDate)
}

func TestUpdateTaskRequestRejects(t *testing.T) {
	cases := map[string]UpdateTaskRequest{
		"empty":          {},
		"blank title":    {Title: strPtr("  ")},
		"bad status":     {Status: strPtr("archived")},
		"malformed date": {DueDate: strPtr("31/12/2024")},
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := req.ToDomain(time.UTC)
			assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid), "got %v", err)
		})
	}
}

func TestParseDueDate(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)

	due, err := ParseDueDate("2024-06-13T08:00:00Z", loc)
	require.NoError(t, err)
	assert.True(t, due.Equal(time.Date(2024, 6, 13, 8, 0, 0, 0, time.UTC)))

	due, err = ParseDueDate("2024-06-13", loc)
	require.NoError(t, err)
	assert.True(t, due.Equal(time.Date(2024, 6, 13, 0, 0, 0, 0, loc)))

	due, err = ParseDueDate("", loc)
	assert.NoError(t, err)
	assert.Nil(t, due)
}

func TestListTasksQuery(t *testing.T) {
	filter, err := ListTasksQuery{Search: "  rent ", Status: "pending"}.ToFilter()
	require.NoError(t, err)
	assert.Equal(t, "rent", filter.Search)
	assert.Equal(t, domain.StatusPending, filter.Status)

	_, err = ListTasksQuery{Category: "everything"}.ToFilter()
	assert.Error(t, err)
}
