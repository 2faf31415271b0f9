package task

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fastygo/tasknest/domain"
	"github.com/fastygo/tasknest/repository"
	"github.com/fastygo/tasknest/usecase"
)

// Option customizes a Store.
type Option func(*Store)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLocation sets the time zone whose midnight separates calendar days.
func WithLocation(loc *time.Location) Option {
	return func(s *Store) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// WithIDGenerator replaces uuid.NewString for task ids. Ids already in the
// collection are rejected and the generator is asked again.
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// WithRetainCompletedAt keeps completedAt when a task leaves the completed status.
// By default it is cleared so completedAt always belongs to the current completion.
func WithRetainCompletedAt(retain bool) Option {
	return func(s *Store) {
		s.retainCompletedAt = retain
	}
}

// maxIDAttempts bounds how often a colliding id generator is retried before
// falling back to a random UUID.
const maxIDAttempts = 8

// Store is the single authoritative holder of the task collection and the
// only writer of persisted task state.
//
// Notifications and OnChange snapshots are delivered outside the write lock
// but in the order the mutations were applied. Observers may read the store;
// they must not mutate it.
type Store struct {
	persister usecase.TaskPersister
	notifier  usecase.Notifier
	logger    *zap.Logger

	now               func() time.Time
	loc               *time.Location
	newID             func() string
	retainCompletedAt bool

	initOnce sync.Once

	mu    sync.RWMutex
	tasks []domain.Task
	dirty bool
	// issued counts applied mutations; guarded by mu.
	issued uint64

	deliverMu sync.Mutex
	delivered uint64
	turn      *sync.Cond

	obsMu     sync.Mutex
	observers map[int]func([]domain.Task)
	nextObs   int
}

func New(persister usecase.TaskPersister, notifier usecase.Notifier, logger *zap.Logger, opts ...Option) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Store{
		persister: persister,
		notifier:  notifier,
		logger:    logger,
		now:       time.Now,
		loc:       time.Local,
		newID:     uuid.NewString,
		tasks:     []domain.Task{},
		observers: make(map[int]func([]domain.Task)),
	}
	s.turn = sync.NewCond(&s.deliverMu)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Initialize loads the persisted collection. Only the first call has any effect.
// Mutations and queries call it implicitly.
func (s *Store) Initialize(ctx context.Context) {
	s.initOnce.Do(func() {
		if s.persister == nil {
			return
		}
		tasks, result := s.persister.Load(ctx)
		if !result.OK() {
			s.logger.Warn("starting with an empty task collection", zap.Error(result.Err))
		}
		if tasks == nil {
			tasks = []domain.Task{}
		}
		s.mu.Lock()
		s.tasks = tasks
		s.mu.Unlock()
		s.logger.Debug("task store initialized", zap.Int("count", len(tasks)))
	})
}

// Create adds a task at the front of the collection. The store assigns the id
// and creation time; status defaults to pending.
func (s *Store) Create(ctx context.Context, in domain.NewTask) domain.Task {
	s.Initialize(ctx)

	now := s.now()
	task := domain.Task{
		Title:       in.Title,
		Description: in.Description,
		Category:    in.Category,
		Priority:    in.Priority,
		Status:      in.Status,
		DueDate:     in.DueDate,
		CreatedAt:   now,
		CompletedAt: in.CompletedAt,
	}
	if task.Status == "" {
		task.Status = domain.StatusPending
	}
	if task.Status == domain.StatusCompleted && task.CompletedAt == nil {
		task.CompletedAt = &now
	}
	task = task.Clone()

	s.mu.Lock()
	task.ID = s.uniqueIDLocked()
	s.tasks = append([]domain.Task{task}, s.tasks...)
	snapshot := s.persistLocked(ctx)
	ticket := s.ticketLocked()
	s.mu.Unlock()

	s.deliver(ticket, func() {
		s.notify(domain.Notification{
			Kind:    domain.NotificationCreated,
			Title:   "Task Created",
			Message: quote(task.Title) + " has been added to your tasks.",
			Variant: domain.VariantDefault,
			TaskID:  task.ID,
		})
		s.broadcast(snapshot)
	})
	return task.Clone()
}

// Update merges patch into the task with id. It reports false, and changes
// nothing, when no such task exists.
func (s *Store) Update(ctx context.Context, id string, patch domain.TaskPatch) (domain.Task, bool) {
	s.Initialize(ctx)

	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		s.logger.Debug("update ignored for unknown task", zap.String("task_id", id))
		return domain.Task{}, false
	}

	prior := s.tasks[idx]
	updated := patch.Apply(prior)
	completedNow := updated.Status == domain.StatusCompleted && prior.Status != domain.StatusCompleted
	switch {
	case completedNow:
		now := s.now()
		updated.CompletedAt = &now
	case prior.Status == domain.StatusCompleted && updated.Status != domain.StatusCompleted && !s.retainCompletedAt:
		updated.CompletedAt = nil
	}
	s.tasks[idx] = updated
	snapshot := s.persistLocked(ctx)
	ticket := s.ticketLocked()
	s.mu.Unlock()

	s.deliver(ticket, func() {
		if completedNow {
			s.notify(domain.Notification{
				Kind:    domain.NotificationCompleted,
				Title:   "Task Completed!",
				Message: "Great job completing " + quote(prior.Title) + "!",
				Variant: domain.VariantSuccess,
				TaskID:  id,
			})
		}
		s.broadcast(snapshot)
	})
	return updated.Clone(), true
}

// Delete removes the task with id. It reports false when nothing was removed.
func (s *Store) Delete(ctx context.Context, id string) bool {
	s.Initialize(ctx)

	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		s.logger.Debug("delete ignored for unknown task", zap.String("task_id", id))
		return false
	}
	removed := s.tasks[idx]
	next := make([]domain.Task, 0, len(s.tasks)-1)
	next = append(next, s.tasks[:idx]...)
	next = append(next, s.tasks[idx+1:]...)
	s.tasks = next
	snapshot := s.persistLocked(ctx)
	ticket := s.ticketLocked()
	s.mu.Unlock()

	s.deliver(ticket, func() {
		s.notify(domain.Notification{
			Kind:    domain.NotificationDeleted,
			Title:   "Task Deleted",
			Message: quote(removed.Title) + " has been removed.",
			Variant: domain.VariantDestructive,
			TaskID:  id,
		})
		s.broadcast(snapshot)
	})
	return true
}

// Get returns a copy of the task with id.
func (s *Store) Get(ctx context.Context, id string) (domain.Task, error) {
	s.Initialize(ctx)

	s.mu.RLock()
	defer s.mu.RUnlock()
	idx := s.indexLocked(id)
	if idx < 0 {
		return domain.Task{}, domain.ErrTaskNotFound
	}
	return s.tasks[idx].Clone(), nil
}

// Tasks returns a snapshot of the collection, most recent first.
func (s *Store) Tasks(ctx context.Context) []domain.Task {
	s.Initialize(ctx)

	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.CloneTasks(s.tasks)
}

// List returns the tasks matching filter in collection order.
func (s *Store) List(ctx context.Context, filter repository.TaskFilter) []domain.Task {
	s.Initialize(ctx)

	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Task, 0, len(s.tasks))
	for _, task := range s.tasks {
		if filter.Match(task) {
			out = append(out, task.Clone())
		}
	}
	return out
}

// Overdue returns tasks past their due date that are not completed.
func (s *Store) Overdue(ctx context.Context) []domain.Task {
	s.Initialize(ctx)

	s.mu.RLock()
	defer s.mu.RUnlock()
	return Overdue(s.tasks, s.now())
}

// Analytics recomputes aggregate statistics over the current collection.
func (s *Store) Analytics(ctx context.Context) domain.TaskAnalytics {
	s.Initialize(ctx)

	s.mu.RLock()
	defer s.mu.RUnlock()
	return Analyze(s.tasks, s.now(), s.loc)
}

// Dirty reports whether the last save failed and the persisted state is stale.
func (s *Store) Dirty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dirty
}

// Flush re-persists the whole collection if a previous save failed.
func (s *Store) Flush(ctx context.Context) domain.PersistResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.dirty {
		return domain.PersistSuccess()
	}
	s.persistLocked(ctx)
	if s.dirty {
		return domain.PersistFailure(domain.ErrStorageUnavailable)
	}
	s.logger.Info("task collection resynchronized", zap.Int("count", len(s.tasks)))
	return domain.PersistSuccess()
}

// OnChange registers fn to receive a snapshot after every successful mutation,
// in mutation order. The returned function unregisters it.
func (s *Store) OnChange(fn func([]domain.Task)) func() {
	if fn == nil {
		return func() {}
	}
	s.obsMu.Lock()
	id := s.nextObs
	s.nextObs++
	s.observers[id] = fn
	s.obsMu.Unlock()

	return func() {
		s.obsMu.Lock()
		delete(s.observers, id)
		s.obsMu.Unlock()
	}
}

// persistLocked saves the full collection and returns the snapshot that was written.
// Failure is logged and recorded in the dirty flag; in-memory state stays authoritative.
func (s *Store) persistLocked(ctx context.Context) []domain.Task {
	snapshot := domain.CloneTasks(s.tasks)
	if s.persister == nil {
		return snapshot
	}
	result := s.persister.Save(ctx, snapshot)
	if !result.OK() {
		s.logger.Warn("task collection kept in memory only", zap.Error(result.Err))
		s.dirty = true
		return snapshot
	}
	s.dirty = false
	return snapshot
}

func (s *Store) indexLocked(id string) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) uniqueIDLocked() string {
	for i := 0; i < maxIDAttempts; i++ {
		if id := s.newID(); id != "" && s.indexLocked(id) < 0 {
			return id
		}
	}
	s.logger.Warn("id generator kept colliding, using a random id", zap.Int("attempts", maxIDAttempts))
	return uuid.NewString()
}

func (s *Store) ticketLocked() uint64 {
	s.issued++
	return s.issued
}

// deliver runs fn once every mutation with a lower ticket has been delivered.
func (s *Store) deliver(ticket uint64, fn func()) {
	s.deliverMu.Lock()
	for s.delivered+1 != ticket {
		s.turn.Wait()
	}
	s.deliverMu.Unlock()

	defer func() {
		s.deliverMu.Lock()
		s.delivered = ticket
		s.turn.Broadcast()
		s.deliverMu.Unlock()
	}()
	fn()
}

func (s *Store) notify(n domain.Notification) {
	if s.notifier == nil {
		return
	}
	n.ID = uuid.NewString()
	n.CreatedAt = s.now()
	s.notifier.Publish(n)
}

func (s *Store) broadcast(snapshot []domain.Task) {
	s.obsMu.Lock()
	fns := make([]func([]domain.Task), 0, len(s.observers))
	for _, fn := range s.observers {
		fns = append(fns, fn)
	}
	s.obsMu.Unlock()

	for _, fn := range fns {
		fn(domain.CloneTasks(snapshot))
	}
}

func quote(title string) string {
	return `"` + title + `"`
}
