package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/fastygo/tasknest/domain"
	"github.com/fastygo/tasknest/repository"
	"github.com/fastygo/tasknest/usecase"
)

// DefaultKey is the slot holding the whole task collection.
const DefaultKey = "tasknest_tasks"

// record is the persisted layout of a task. Time fields are RFC3339 with nanoseconds
// so a load reproduces the exact instant that was saved.
type record struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Category    string  `json:"category"`
	Priority    string  `json:"priority"`
	Status      string  `json:"status"`
	DueDate     *string `json:"dueDate,omitempty"`
	CreatedAt   string  `json:"createdAt"`
	CompletedAt *string `json:"completedAt,omitempty"`
}

// Adapter serializes the task collection into a single slot.
type Adapter struct {
	slots  repository.SlotStore
	key    string
	logger *zap.Logger
}

func New(slots repository.SlotStore, key string, logger *zap.Logger) *Adapter {
	if key == "" {
		key = DefaultKey
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Adapter{
		slots:  slots,
		key:    key,
		logger: logger,
	}
}

// Key returns the slot key in use.
func (a *Adapter) Key() string {
	return a.key
}

// Save writes the full ordered collection. Failures are logged and reported
// through the result; they are never returned as errors.
func (a *Adapter) Save(ctx context.Context, tasks []domain.Task) domain.PersistResult {
	if a.slots == nil {
		return a.saveFailed(domain.ErrStorageUnavailable, len(tasks))
	}
	payload, err := Encode(tasks)
	if err != nil {
		return a.saveFailed(err, len(tasks))
	}
	if err := a.slots.Set(ctx, a.key, payload); err != nil {
		return a.saveFailed(err, len(tasks))
	}
	return domain.PersistSuccess()
}

// Load reads the collection back. A missing slot is an empty collection and a
// successful result; corrupt data yields an empty collection and a failure result.
func (a *Adapter) Load(ctx context.Context) ([]domain.Task, domain.PersistResult) {
	if a.slots == nil {
		return []domain.Task{}, a.loadFailed(domain.ErrStorageUnavailable)
	}
	payload, err := a.slots.Get(ctx, a.key)
	if err != nil {
		if errors.Is(err, domain.ErrSlotNotFound) {
			return []domain.Task{}, domain.PersistSuccess()
		}
		return []domain.Task{}, a.loadFailed(err)
	}
	if payload == "" {
		return []domain.Task{}, domain.PersistSuccess()
	}
	tasks, err := Decode(payload)
	if err != nil {
		return []domain.Task{}, a.loadFailed(err)
	}
	return tasks, domain.PersistSuccess()
}

func (a *Adapter) saveFailed(err error, count int) domain.PersistResult {
	a.logger.Error("failed to save tasks",
		zap.String("key", a.key),
		zap.Int("count", count),
		zap.Error(err))
	return domain.PersistFailure(err)
}

func (a *Adapter) loadFailed(err error) domain.PersistResult {
	a.logger.Error("failed to load tasks", zap.String("key", a.key), zap.Error(err))
	return domain.PersistFailure(err)
}

// Encode renders tasks in the persisted text layout.
func Encode(tasks []domain.Task) (string, error) {
	records := make([]record, 0, len(tasks))
	for _, task := range tasks {
		records = append(records, record{
			ID:          task.ID,
			Title:       task.Title,
			Description: task.Description,
			Category:    string(task.Category),
			Priority:    string(task.Priority),
			Status:      string(task.Status),
			DueDate:     formatTime(task.DueDate),
			CreatedAt:   task.CreatedAt.Format(time.RFC3339Nano),
			CompletedAt: formatTime(task.CompletedAt),
		})
	}
	out, err := json.Marshal(records)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// Decode parses the persisted text layout.
func Decode(payload string) ([]domain.Task, error) {
	var records []record
	if err := json.Unmarshal([]byte(payload), &records); err != nil {
		return nil, domain.WrapError(domain.ErrCodeInvalid, "corrupt task payload", err)
	}

	tasks := make([]domain.Task, 0, len(records))
	for _, rec := range records {
		createdAt, err := time.Parse(time.RFC3339Nano, rec.CreatedAt)
		if err != nil {
			return nil, domain.WrapError(domain.ErrCodeInvalid, "invalid createdAt for task "+rec.ID, err)
		}
		dueDate, err := parseTime(rec.DueDate)
		if err != nil {
			return nil, domain.WrapError(domain.ErrCodeInvalid, "invalid dueDate for task "+rec.ID, err)
		}
		completedAt, err := parseTime(rec.CompletedAt)
		if err != nil {
			return nil, domain.WrapError(domain.ErrCodeInvalid, "invalid completedAt for task "+rec.ID, err)
		}
		tasks = append(tasks, domain.Task{
			ID:          rec.ID,
			Title:       rec.Title,
			Description: rec.Description,
			Category:    domain.Category(rec.Category),
			Priority:    domain.Priority(rec.Priority),
			Status:      domain.Status(rec.Status),
			DueDate:     dueDate,
			CreatedAt:   createdAt,
			CompletedAt: completedAt,
		})
	}
	return tasks, nil
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339Nano)
	return &s
}

func parseTime(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339Nano, *s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

var _ usecase.TaskPersister = (*Adapter)(nil)
