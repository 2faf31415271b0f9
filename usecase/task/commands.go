package task

import (
	"context"

	"github.com/fastygo/tasknest/domain"
	"github.com/fastygo/tasknest/repository"
	"github.com/fastygo/tasknest/usecase"
)

// Names of the task commands and queries registered on a dispatcher.
const (
	CommandCreate  = "task.create"
	CommandUpdate  = "task.update"
	CommandDelete  = "task.delete"
	QueryGet       = "task.get"
	QueryList      = "task.list"
	QueryOverdue   = "task.overdue"
	QueryAnalytics = "task.analytics"
)

// UpdateCommand is the payload for CommandUpdate.
type UpdateCommand struct {
	ID    string
	Patch domain.TaskPatch
}

// Register binds the store operations to d.
//
// Create takes a domain.NewTask; Update takes an UpdateCommand and fails with
// ErrTaskNotFound for unknown ids; Delete takes the id string and returns
// whether a task was removed. Get takes an id; List takes a
// repository.TaskFilter or nil.
func Register(d *usecase.Dispatcher, s *Store) {
	d.RegisterCommand(CommandCreate, func(ctx context.Context, payload interface{}) (interface{}, error) {
		in, ok := payload.(domain.NewTask)
		if !ok {
			return nil, usecase.InvalidPayload(CommandCreate, payload)
		}
		return s.Create(ctx, in), nil
	})

	d.RegisterCommand(CommandUpdate, func(ctx context.Context, payload interface{}) (interface{}, error) {
		cmd, ok := payload.(UpdateCommand)
		if !ok {
			return nil, usecase.InvalidPayload(CommandUpdate, payload)
		}
		updated, found := s.Update(ctx, cmd.ID, cmd.Patch)
		if !found {
			return nil, domain.ErrTaskNotFound
		}
		return updated, nil
	})

	d.RegisterCommand(CommandDelete, func(ctx context.Context, payload interface{}) (interface{}, error) {
		id, ok := payload.(string)
		if !ok {
			return nil, usecase.InvalidPayload(CommandDelete, payload)
		}
		return s.Delete(ctx, id), nil
	})

	d.RegisterQuery(QueryGet, func(ctx context.Context, params interface{}) (interface{}, error) {
		id, ok := params.(string)
		if !ok {
			return nil, usecase.InvalidPayload(QueryGet, params)
		}
		return s.Get(ctx, id)
	})

	d.RegisterQuery(QueryList, func(ctx context.Context, params interface{}) (interface{}, error) {
		switch filter := params.(type) {
		case nil:
			return s.Tasks(ctx), nil
		case repository.TaskFilter:
			return s.List(ctx, filter), nil
		default:
			return nil, usecase.InvalidPayload(QueryList, params)
		}
	})

	d.RegisterQuery(QueryOverdue, func(ctx context.Context, _ interface{}) (interface{}, error) {
		return s.Overdue(ctx), nil
	})

	d.RegisterQuery(QueryAnalytics, func(ctx context.Context, _ interface{}) (interface{}, error) {
		return s.Analytics(ctx), nil
	})
}
