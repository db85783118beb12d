package dashboard

import (
	"sync"
	"time"

	"github.com/roylee0704/gron"
)

// Scheduler fires the refresh trigger on a recurring period. Start replaces
// any armed timer with a fresh one, so reconfiguring never leaves the old
// cadence firing alongside the new one. The scheduler does not wait for the
// triggered work to finish; overlap is the store's concern.
type Scheduler struct {
	mu     sync.Mutex
	fire   func()
	cron   *gron.Cron
	period time.Duration
}

func NewScheduler(fire func()) *Scheduler {
	return &Scheduler{fire: fire}
}

// Start arms a recurring trigger with the given period. An already-armed
// timer is torn down first. A period of zero (or less) disables periodic
// firing entirely, leaving manual triggers only.
func (s *Scheduler) Start(period time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cron != nil {
		s.cron.Stop()
		s.cron = nil
	}
	s.period = period

	if period <= 0 {
		return
	}

	c := gron.New()
	c.AddFunc(gron.Every(period), s.fire)
	c.Start()
	s.cron = c
}

// Stop cancels all pending firings. Safe to call when not started.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cron != nil {
		s.cron.Stop()
		s.cron = nil
	}
	s.period = 0
}

// Period returns the currently armed period, zero when idle.
func (s *Scheduler) Period() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.period
}
