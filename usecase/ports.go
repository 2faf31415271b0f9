package usecase

import (
	"context"

	"github.com/fastygo/tasknest/domain"
)

// TaskPersister abstracts the persistence adapter so the store stays storage-agnostic.
type TaskPersister interface {
	Save(ctx context.Context, tasks []domain.Task) domain.PersistResult
	Load(ctx context.Context) ([]domain.Task, domain.PersistResult)
}

// Notifier receives user-facing notification content produced by mutations.
type Notifier interface {
	Publish(n domain.Notification)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(n domain.Notification)

func (f NotifierFunc) Publish(n domain.Notification) {
	f(n)
}
