package dashboard_test

import (
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/Ziaullahkhan-Ai/analytics-dashboard-pro/pkg/usecase/dashboard"
)

func TestQueueExpiry(t *testing.T) {
	q := dashboard.NewQueue(dashboard.WithTTL(50 * time.Millisecond))
	defer q.Close()

	id := q.Push("transient")
	gt.NotEqual(t, id, "")
	gt.Equal(t, q.Len(), 1)

	time.Sleep(150 * time.Millisecond)
	gt.Equal(t, q.Len(), 0)
}

func TestQueueDismissIdempotent(t *testing.T) {
	q := dashboard.NewQueue(dashboard.WithTTL(time.Minute))
	defer q.Close()

	id := q.Push("dismiss me")
	q.Dismiss(id)
	gt.Equal(t, q.Len(), 0)

	// Dismissing again, or dismissing garbage, must be a silent no-op.
	q.Dismiss(id)
	q.Dismiss("no-such-id")
	gt.Equal(t, q.Len(), 0)
}

func TestQueueCapEvictsOldest(t *testing.T) {
	q := dashboard.NewQueue(
		dashboard.WithTTL(time.Minute),
		dashboard.WithCapacity(3),
	)
	defer q.Close()

	q.Push("one")
	q.Push("two")
	q.Push("three")
	q.Push("four")

	items := q.Items()
	gt.A(t, items).Length(3)
	gt.Equal(t, items[0].Text, "two")
	gt.Equal(t, items[2].Text, "four")
}

func TestQueueOrder(t *testing.T) {
	q := dashboard.NewQueue(dashboard.WithTTL(time.Minute))
	defer q.Close()

	q.Push("a")
	q.Push("b")

	items := q.Items()
	gt.A(t, items).Length(2)
	gt.Equal(t, items[0].Text, "a")
	gt.Equal(t, items[1].Text, "b")
}

func TestQueueCloseDropsEverything(t *testing.T) {
	q := dashboard.NewQueue(dashboard.WithTTL(time.Minute))

	q.Push("doomed")
	q.Close()
	gt.Equal(t, q.Len(), 0)

	// Pushing after close is ignored.
	id := q.Push("late")
	gt.Equal(t, string(id), "")
	gt.Equal(t, q.Len(), 0)
}
