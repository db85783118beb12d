package dashboard_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/Ziaullahkhan-Ai/analytics-dashboard-pro/pkg/usecase/dashboard"
)

// The backing cron has one-second granularity, so these tests run against
// real time with one-second periods.

func TestSchedulerFires(t *testing.T) {
	var fired atomic.Int64
	s := dashboard.NewScheduler(func() { fired.Add(1) })
	defer s.Stop()

	s.Start(time.Second)
	time.Sleep(2500 * time.Millisecond)
	s.Stop()

	gt.Number(t, fired.Load()).GreaterOrEqual(1)
	gt.Equal(t, s.Period(), time.Duration(0))

	// Nothing fires after Stop.
	after := fired.Load()
	time.Sleep(1500 * time.Millisecond)
	gt.Equal(t, fired.Load(), after)
}

func TestSchedulerRestartReplacesPeriod(t *testing.T) {
	var fired atomic.Int64
	s := dashboard.NewScheduler(func() { fired.Add(1) })
	defer s.Stop()

	// Rearm before the first firing: only the one-second cadence survives;
	// at the discarded one-hour cadence nothing would ever fire here.
	s.Start(time.Hour)
	s.Start(time.Second)
	gt.Equal(t, s.Period(), time.Second)

	time.Sleep(1500 * time.Millisecond)
	gt.Number(t, fired.Load()).GreaterOrEqual(1)
}

func TestSchedulerZeroPeriodDisables(t *testing.T) {
	var fired atomic.Int64
	s := dashboard.NewScheduler(func() { fired.Add(1) })
	defer s.Stop()

	s.Start(time.Second)
	s.Start(0)
	gt.Equal(t, s.Period(), time.Duration(0))

	time.Sleep(1500 * time.Millisecond)
	gt.Equal(t, fired.Load(), int64(0))
}

func TestSchedulerStopWithoutStart(t *testing.T) {
	s := dashboard.NewScheduler(func() {})
	s.Stop()
	s.Stop()
	gt.Equal(t, s.Period(), time.Duration(0))
}
