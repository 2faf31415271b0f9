package domain

import "time"

// TaskPatch is a partial update. Nil fields are left untouched.
// ClearDueDate and ClearCompletedAt remove the optional timestamps.
type TaskPatch struct {
	Title            *string
	Description      *string
	Category         *Category
	Priority         *Priority
	Status           *Status
	DueDate          *time.Time
	ClearDueDate     bool
	CompletedAt      *time.Time
	ClearCompletedAt bool
}

// IsEmpty reports whether the patch changes nothing.
func (p TaskPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Category == nil &&
		p.Priority == nil && p.Status == nil && p.DueDate == nil && !p.ClearDueDate &&
		p.CompletedAt == nil && !p.ClearCompletedAt
}

// Apply returns task with the patch merged in, last write wins per field.
// ID and CreatedAt are never touched.
func (p TaskPatch) Apply(task Task) Task {
	out := task.Clone()
	if p.Title != nil {
		out.Title = *p.Title
	}
	if p.Description != nil {
		out.Description = *p.Description
	}
	if p.Category != nil {
		out.Category = *p.Category
	}
	if p.Priority != nil {
		out.Priority = *p.Priority
	}
	if p.Status != nil {
		out.Status = *p.Status
	}
	switch {
	case p.ClearDueDate:
		out.DueDate = nil
	case p.DueDate != nil:
		out.DueDate = cloneTime(p.DueDate)
	}
	switch {
	case p.ClearCompletedAt:
		out.CompletedAt = nil
	case p.CompletedAt != nil:
		out.CompletedAt = cloneTime(p.CompletedAt)
	}
	return out
}
