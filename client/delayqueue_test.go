package client

import "testing"

func TestDelayQueueReleasesOnlyAfterDelay(t *testing.T) {
	q := newDelayQueue[int](1000)

	q.Push(1, 0)
	q.Push(2, 500)

	if released := q.Drain(999); len(released) != 0 {
		t.Fatalf("expected nothing released before the first item's deadline, got %v", released)
	}

	released := q.Drain(1000)
	if len(released) != 1 || released[0] != 1 {
		t.Fatalf("expected [1] released at t=1000, got %v", released)
	}

	released = q.Drain(1500)
	if len(released) != 1 || released[0] != 2 {
		t.Fatalf("expected [2] released at t=1500, got %v", released)
	}
}

func TestDelayQueueFIFOOrdering(t *testing.T) {
	q := newDelayQueue[int](0)
	for i := 0; i < 5; i++ {
		q.Push(i, uint64(i))
	}

	released := q.Drain(100)
	for i, v := range released {
		if v != i {
			t.Fatalf("expected FIFO order, got %v", released)
		}
	}
}

func TestDelayQueueSetDelayAffectsOnlyFutureItems(t *testing.T) {
	q := newDelayQueue[int](1000)
	q.Push(1, 0)
	q.SetDelay(2000)
	q.Push(2, 0)

	released := q.Drain(1000)
	if len(released) != 1 || released[0] != 1 {
		t.Fatalf("expected only the pre-change item released at t=1000, got %v", released)
	}

	released = q.Drain(2000)
	if len(released) != 1 || released[0] != 2 {
		t.Fatalf("expected the post-change item released at t=2000, got %v", released)
	}
}
