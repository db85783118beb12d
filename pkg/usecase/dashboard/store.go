package dashboard

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/Ziaullahkhan-Ai/analytics-dashboard-pro/pkg/adapter"
	"github.com/Ziaullahkhan-Ai/analytics-dashboard-pro/pkg/model"
	"github.com/Ziaullahkhan-Ai/analytics-dashboard-pro/pkg/utils/logging"
)

// Notifier receives status messages from the store. The notification queue
// implements it; wrappers may add logging on top.
type Notifier interface {
	Push(text string) model.NotificationID
}

const (
	defaultTimeout     = 30 * time.Second
	defaultHistoryDays = 120
)

// Store holds the latest consistent snapshot of remote data. A refresh
// fetches the global summary, the country list and the historical series and
// replaces all three together; any failure discards the whole attempt and the
// previous triple stays visible unchanged.
type Store struct {
	mu       sync.Mutex
	source   adapter.DataSource
	notifier Notifier
	timeout  time.Duration
	histDays int

	busy   bool
	closed bool

	global      *model.GlobalSnapshot
	countries   []model.CountryRecord
	history     *model.HistoricalSeries
	refreshedAt time.Time
}

type StoreOption func(*Store)

// WithNotifier mirrors refresh results to the given notifier
func WithNotifier(n Notifier) StoreOption {
	return func(s *Store) {
		s.notifier = n
	}
}

// WithTimeout bounds one whole refresh attempt
func WithTimeout(d time.Duration) StoreOption {
	return func(s *Store) {
		s.timeout = d
	}
}

// WithHistoryWindow sets how many trailing days of history to fetch
func WithHistoryWindow(days int) StoreOption {
	return func(s *Store) {
		s.histDays = days
	}
}

func NewStore(source adapter.DataSource, opts ...StoreOption) *Store {
	s := &Store{
		source:   source,
		timeout:  defaultTimeout,
		histDays: defaultHistoryDays,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Refresh fetches the three resources and swaps the snapshot in one step.
// A call while another refresh is outstanding fails with model.ErrBusy and
// mutates nothing. The deadline covers all three fetches, so a stalled
// upstream cannot hold the busy flag forever.
func (s *Store) Refresh(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return model.ErrClosed
	}
	if s.busy {
		s.mu.Unlock()
		return goerr.Wrap(model.ErrBusy, "refresh already running")
	}
	s.busy = true
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	global, err := s.source.Global(ctx)
	if err != nil {
		return s.fail(err, "global summary")
	}
	countries, err := s.source.Countries(ctx)
	if err != nil {
		return s.fail(err, "country list")
	}
	history, err := s.source.Historical(ctx, s.histDays)
	if err != nil {
		return s.fail(err, "historical series")
	}

	s.mu.Lock()
	if s.closed {
		// Torn down while the fetches were in flight; drop the results.
		s.busy = false
		s.mu.Unlock()
		return model.ErrClosed
	}
	s.global = global
	s.countries = countries
	s.history = history
	s.refreshedAt = time.Now()
	s.busy = false
	s.mu.Unlock()

	logging.From(ctx).Debug("snapshot replaced",
		"countries", len(countries), "days", len(history.Dates))
	s.notify("Data refreshed")
	return nil
}

// fail clears the busy flag, keeps the last-good snapshot and reports the
// failure both to the caller and as a notification.
func (s *Store) fail(err error, resource string) error {
	s.mu.Lock()
	s.busy = false
	closed := s.closed
	s.mu.Unlock()

	if closed {
		return model.ErrClosed
	}

	if errors.Is(err, context.DeadlineExceeded) {
		s.notify("Data refresh timed out")
	} else {
		s.notify("Data refresh failed")
	}
	return goerr.Wrap(err, "refresh discarded", goerr.V("resource", resource))
}

func (s *Store) notify(text string) {
	if s.notifier != nil {
		s.notifier.Push(text)
	}
}

// Global returns the current global snapshot, or nil before the first
// successful refresh. The snapshot is immutable; callers must not modify it.
func (s *Store) Global() *model.GlobalSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.global
}

// Countries returns a copy of the current country collection.
func (s *Store) Countries() []model.CountryRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.CountryRecord, len(s.countries))
	copy(out, s.countries)
	return out
}

// History returns the current historical series, or nil before the first
// successful refresh.
func (s *Store) History() *model.HistoricalSeries {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history
}

// RefreshedAt returns when the visible snapshot was installed.
func (s *Store) RefreshedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.refreshedAt
}

// Ready reports whether at least one refresh has succeeded.
func (s *Store) Ready() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.global != nil
}

// Close tears the store down. An outstanding refresh finishes its fetches but
// its result is discarded instead of applied.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
}
