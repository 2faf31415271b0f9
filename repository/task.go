package repository

import (
	"strings"

	"github.com/fastygo/tasknest/domain"
)

// TaskFilter narrows a task listing. Zero-valued fields match everything.
type TaskFilter struct {
	Search   string
	Category domain.Category
	Priority domain.Priority
	Status   domain.Status
}

// Active reports whether any criterion is set.
func (f TaskFilter) Active() bool {
	return strings.TrimSpace(f.Search) != "" || f.Category != "" || f.Priority != "" || f.Status != ""
}

// Match reports whether task satisfies every criterion.
func (f TaskFilter) Match(task domain.Task) bool {
	if f.Category != "" && task.Category != f.Category {
		return false
	}
	if f.Priority != "" && task.Priority != f.Priority {
		return false
	}
	if f.Status != "" && task.Status != f.Status {
		return false
	}
	return task.Matches(strings.TrimSpace(f.Search))
}
