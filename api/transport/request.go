package transport

import (
	"strings"
	"time"

	"github.com/fastygo/tasknest/domain"
	"github.com/fastygo/tasknest/repository"
)

// CreateTaskRequest is the payload for creating a task.
type CreateTaskRequest struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"max=2000"`
	Category    string `json:"category" validate:"required,oneof=work personal health learning other"`
	Priority    string `json:"priority" validate:"required,oneof=low medium high urgent"`
	Status      string `json:"status" validate:"omitempty,oneof=pending in-progress completed"`
	DueDate     string `json:"dueDate" validate:"duedate"`
}

// UpdateTaskRequest is a partial update. Absent fields are left alone;
// an empty dueDate clears the due date.
type UpdateTaskRequest struct {
	Title       *string `json:"title" validate:"omitnil,min=1,max=200"`
	Description *string `json:"description" validate:"omitnil,max=2000"`
	Category    *string `json:"category" validate:"omitnil,oneof=work personal health learning other"`
	Priority    *string `json:"priority" validate:"omitnil,oneof=low medium high urgent"`
	Status      *string `json:"status" validate:"omitnil,oneof=pending in-progress completed"`
	DueDate     *string `json:"dueDate" validate:"omitnil,duedate"`
}

// ListTasksQuery carries the list filters taken from the query string.
type ListTasksQuery struct {
	Search   string `json:"search" validate:"max=200"`
	Category string `json:"category" validate:"omitempty,oneof=work personal health learning other"`
	Priority string `json:"priority" validate:"omitempty,oneof=low medium high urgent"`
	Status   string `json:"status" validate:"omitempty,oneof=pending in-progress completed"`
}

// ToDomain trims, validates and converts the payload.
func (r CreateTaskRequest) ToDomain(loc *time.Location) (domain.NewTask, error) {
	r.Title = strings.TrimSpace(r.Title)
	r.Description = strings.TrimSpace(r.Description)
	r.DueDate = strings.TrimSpace(r.DueDate)
	if err := Validate(r); err != nil {
		return domain.NewTask{}, err
	}

	due, err := ParseDueDate(r.DueDate, loc)
	if err != nil {
		return domain.NewTask{}, err
	}
	return domain.NewTask{
		Title:       r.Title,
		Description: r.Description,
		Category:    domain.Category(r.Category),
		Priority:    domain.Priority(r.Priority),
		Status:      domain.Status(r.Status),
		DueDate:     due,
	}, nil
}

// ToDomain trims, validates and converts the payload.
func (r UpdateTaskRequest) ToDomain(loc *time.Location) (domain.TaskPatch, error) {
	r.Title = trimPtr(r.Title)
	r.Description = trimPtr(r.Description)
	r.DueDate = trimPtr(r.DueDate)
	if err := Validate(r); err != nil {
		return domain.TaskPatch{}, err
	}

	var patch domain.TaskPatch
	patch.Title = r.Title
	patch.Description = r.Description
	if r.Category != nil {
		c := domain.Category(*r.Category)
		patch.Category = &c
	}
	if r.Priority != nil {
		p := domain.Priority(*r.Priority)
		patch.Priority = &p
	}
	if r.Status != nil {
		s := domain.Status(*r.Status)
		patch.Status = &s
	}
	if r.DueDate != nil {
		due, err := ParseDueDate(*r.DueDate, loc)
		if err != nil {
			return domain.TaskPatch{}, err
		}
		patch.DueDate = due
		patch.ClearDueDate = due == nil
	}
	if patch.IsEmpty() {
		return domain.TaskPatch{}, domain.NewError(domain.ErrCodeInvalid, "no fields to update")
	}
	return patch, nil
}

// ToFilter validates the query and converts it to a repository filter.
func (q ListTasksQuery) ToFilter() (repository.TaskFilter, error) {
	q.Search = strings.TrimSpace(q.Search)
	if err := Validate(q); err != nil {
		return repository.TaskFilter{}, err
	}
	return repository.TaskFilter{
		Search:   q.Search,
		Category: domain.Category(q.Category),
		Priority: domain.Priority(q.Priority),
		Status:   domain.Status(q.Status),
	}, nil
}

// ParseDueDate accepts RFC3339 or a plain YYYY-MM-DD date, which is read as
// midnight in loc. Empty input means no due date.
func ParseDueDate(value string, loc *time.Location) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	if loc == nil {
		loc = time.Local
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return &t, nil
	}
	t, err := time.ParseInLocation(time.DateOnly, value, loc)
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeInvalid, "invalid dueDate", err)
	}
	return &t, nil
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
