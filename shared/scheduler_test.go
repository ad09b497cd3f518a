package shared

import "testing"

func TestScheduledCommandHeapOrdering(t *testing.T) {
	var h scheduledCommandHeap

	timestamps := []uint64{500, 100, 300, 100, 900, 200}
	for _, ts := range timestamps {
		pushScheduledCommand(&h, ScheduledCommand{ExecuteAtTimestamp: ts})
	}

	var popped []uint64
	for {
		cmd, ok := peekScheduledCommand(h)
		if !ok {
			break
		}
		popped = append(popped, cmd.ExecuteAtTimestamp)
		got := popScheduledCommand(&h)
		if got.ExecuteAtTimestamp != cmd.ExecuteAtTimestamp {
			t.Fatalf("peek/pop disagreed: peek=%d pop=%d", cmd.ExecuteAtTimestamp, got.ExecuteAtTimestamp)
		}
	}

	for i := 1; i < len(popped); i++ {
		if popped[i] < popped[i-1] {
			t.Fatalf("heap popped out of order: %v", popped)
		}
	}
	if len(popped) != len(timestamps) {
		t.Fatalf("expected %d pops, got %d", len(timestamps), len(popped))
	}
}

func TestPeekScheduledCommandOnEmptyHeap(t *testing.T) {
	var h scheduledCommandHeap
	if _, ok := peekScheduledCommand(h); ok {
		t.Fatal("expected ok=false on an empty heap")
	}
}
