package widget

import (
	"testing"
	"time"
)

func TestToastQueue_Bounded(t *testing.T) {
	q := NewToastQueue(2, time.Minute)
	q.Push(ToastInfo, "one", "")
	q.Push(ToastInfo, "two", "")
	q.Push(ToastSuccess, "three", "")

	active := q.Active()
	if len(active) != 2 || active[0].Title != "two" || active[1].Title != "three" {
		t.Errorf("Active() = %+v", active)
	}
}

func TestToastQueue_ExpiryAndDismiss(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	q := NewToastQueue(0, 0)
	q.now = func() time.Time { return now }

	first := q.Push(ToastError, "failed", "retry later")
	now = now.Add(2 * time.Second)
	second := q.Push(ToastSuccess, "sent", "")

	if !q.Dismiss(second) || q.Dismiss(second) {
		t.Error("Dismiss should remove exactly once")
	}

	now = now.Add(DefaultToastTTL - time.Second)
	if got := q.Active(); len(got) != 0 {
		t.Errorf("expected %s expired, got %+v", first, got)
	}
}
