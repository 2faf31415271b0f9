package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/fastygo/tasknest/domain"
)

// CommandHandler mutates state and returns the affected value.
type CommandHandler func(ctx context.Context, payload interface{}) (interface{}, error)

// QueryHandler reads state without side effects.
type QueryHandler func(ctx context.Context, params interface{}) (interface{}, error)

// Dispatcher routes named commands and queries to their handlers so
// front ends other than HTTP can drive the use cases by name.
type Dispatcher struct {
	cmdHandlers map[string]CommandHandler
	qryHandlers map[string]QueryHandler
	mu          sync.RWMutex
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		cmdHandlers: make(map[string]CommandHandler),
		qryHandlers: make(map[string]QueryHandler),
	}
}

func (d *Dispatcher) RegisterCommand(name string, handler CommandHandler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cmdHandlers[name] = handler
}

func (d *Dispatcher) RegisterQuery(name string, handler QueryHandler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.qryHandlers[name] = handler
}

func (d *Dispatcher) ExecuteCommand(ctx context.Context, name string, payload interface{}) (interface{}, error) {
	d.mu.RLock()
	handler, ok := d.cmdHandlers[name]
	d.mu.RUnlock()
	if !ok {
		return nil, domain.NewError(domain.ErrCodeNotFound, "command handler "+name+" not registered")
	}
	return handler(ctx, payload)
}

func (d *Dispatcher) ExecuteQuery(ctx context.Context, name string, params interface{}) (interface{}, error) {
	d.mu.RLock()
	handler, ok := d.qryHandlers[name]
	d.mu.RUnlock()
	if !ok {
		return nil, domain.NewError(domain.ErrCodeNotFound, "query handler "+name+" not registered")
	}
	return handler(ctx, params)
}

// Names lists every registered command and query, sorted.
func (d *Dispatcher) Names() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	names := make([]string, 0, len(d.cmdHandlers)+len(d.qryHandlers))
	for name := range d.cmdHandlers {
		names = append(names, name)
	}
	for name := range d.qryHandlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// InvalidPayload reports a handler invoked with the wrong payload type.
func InvalidPayload(name string, payload interface{}) error {
	return domain.WrapError(domain.ErrCodeInvalid, fmt.Sprintf("%s: unexpected payload %T", name, payload), domain.ErrInvalidPayload)
}
