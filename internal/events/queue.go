package events

import (
	"sync"

	"github.com/fastygo/tasknest/domain"
	"github.com/fastygo/tasknest/usecase"
)

// Queue buffers notifications until a presentation layer drains them.
// When full, the oldest entry is dropped.
type Queue struct {
	mu       sync.Mutex
	items    []domain.Notification
	capacity int
	dropped  int
	signal   chan struct{}
}

func NewQueue(capacity int) *Queue {
	if capacity <= 0 {
		capacity = 64
	}
	return &Queue{
		items:    make([]domain.Notification, 0, capacity),
		capacity: capacity,
		signal:   make(chan struct{}, 1),
	}
}

// Publish enqueues n.
func (q *Queue) Publish(n domain.Notification) {
	q.mu.Lock()
	if len(q.items) == q.capacity {
		q.items = append(q.items[:0], q.items[1:]...)
		q.dropped++
	}
	q.items = append(q.items, n)
	q.mu.Unlock()

	select {
	case q.signal <- struct{}{}:
	default:
	}
}

// Drain removes and returns every queued notification, oldest first.
func (q *Queue) Drain() []domain.Notification {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]domain.Notification, len(q.items))
	copy(out, q.items)
	q.items = q.items[:0]
	return out
}

// Len returns the number of queued notifications.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Dropped returns how many notifications were discarded on overflow.
func (q *Queue) Dropped() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.dropped
}

// Ready is signalled after a publish. Consumers select on it and then Drain.
// The signal holds at most one pending wakeup, so waiters should recheck Len.
func (q *Queue) Ready() <-chan struct{} {
	return q.signal
}

var _ usecase.Notifier = (*Queue)(nil)
