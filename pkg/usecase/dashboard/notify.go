package dashboard

import (
	"sync"
	"time"

	"github.com/Ziaullahkhan-Ai/analytics-dashboard-pro/pkg/model"
)

const (
	defaultNotificationTTL = 6 * time.Second
	defaultQueueCapacity   = 5
)

// Queue holds short-lived status messages. Every entry expires after a fixed
// TTL; the queue is capped, and pushing past the cap evicts the oldest entry
// first so memory stays bounded regardless of push rate.
type Queue struct {
	mu     sync.Mutex
	ttl    time.Duration
	max    int
	closed bool
	items  []*model.Notification
	timers map[model.NotificationID]*time.Timer
}

type QueueOption func(*Queue)

func WithTTL(ttl time.Duration) QueueOption {
	return func(q *Queue) {
		q.ttl = ttl
	}
}

func WithCapacity(max int) QueueOption {
	return func(q *Queue) {
		q.max = max
	}
}

func NewQueue(opts ...QueueOption) *Queue {
	q := &Queue{
		ttl:    defaultNotificationTTL,
		max:    defaultQueueCapacity,
		timers: make(map[model.NotificationID]*time.Timer),
	}
	for _, opt := range opts {
		opt(q)
	}
	if q.max < 1 {
		q.max = 1
	}
	return q
}

// Push appends a notification and schedules its automatic removal after the
// queue TTL. Returns the assigned ID, or an empty ID on a closed queue.
func (q *Queue) Push(text string) model.NotificationID {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return ""
	}

	for len(q.items) >= q.max {
		oldest := q.items[0]
		q.removeLocked(oldest.ID)
	}

	n := &model.Notification{
		ID:        model.NewNotificationID(),
		Text:      text,
		CreatedAt: time.Now(),
		TTL:       q.ttl,
	}
	q.items = append(q.items, n)
	q.timers[n.ID] = time.AfterFunc(q.ttl, func() {
		q.Dismiss(n.ID)
	})

	return n.ID
}

// Dismiss removes the notification immediately. Dismissing an unknown or
// already-expired ID is a no-op.
func (q *Queue) Dismiss(id model.NotificationID) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.removeLocked(id)
}

func (q *Queue) removeLocked(id model.NotificationID) {
	if t, ok := q.timers[id]; ok {
		t.Stop()
		delete(q.timers, id)
	}
	for i, n := range q.items {
		if n.ID == id {
			q.items = append(q.items[:i], q.items[i+1:]...)
			return
		}
	}
}

// Items returns a copy of the live notifications in push order.
func (q *Queue) Items() []model.Notification {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]model.Notification, 0, len(q.items))
	for _, n := range q.items {
		out = append(out, *n)
	}
	return out
}

// Len returns the number of live notifications.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Close cancels all expiry timers and drops the queue contents. Pushes after
// Close are ignored.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.closed = true
	for id, t := range q.timers {
		t.Stop()
		delete(q.timers, id)
	}
	q.items = nil
}
