package shared

import "container/heap"

// ScheduledCommand is a single PlayerCommand stamped with the wall-clock
// microsecond instant it is to take effect: a flat, trivially-copyable
// value suited to a min-heap rather than a closure-captured effect.
type ScheduledCommand struct {
	ExecuteAtTimestamp uint64
	PlayerID           PlayerID
	ClientDtMs         float32
	Command            PlayerCommand
}

// scheduledCommandHeap is a min-heap over ScheduledCommand ordered by
// ExecuteAtTimestamp ascending, satisfying container/heap.Interface.
type scheduledCommandHeap []ScheduledCommand

func (h scheduledCommandHeap) Len() int { return len(h) }

func (h scheduledCommandHeap) Less(i, j int) bool {
	return h[i].ExecuteAtTimestamp < h[j].ExecuteAtTimestamp
}

func (h scheduledCommandHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *scheduledCommandHeap) Push(x any) {
	*h = append(*h, x.(ScheduledCommand))
}

func (h *scheduledCommandHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// pushScheduledCommand inserts a command into the heap, preserving the
// strict execute_at_timestamp ordering invariant.
func pushScheduledCommand(h *scheduledCommandHeap, cmd ScheduledCommand) {
	heap.Push(h, cmd)
}

// peekScheduledCommand returns the earliest-scheduled command without
// removing it, and whether the heap was non-empty.
func peekScheduledCommand(h scheduledCommandHeap) (ScheduledCommand, bool) {
	if len(h) == 0 {
		return ScheduledCommand{}, false
	}
	return h[0], true
}

// popScheduledCommand removes and returns the earliest-scheduled command.
func popScheduledCommand(h *scheduledCommandHeap) ScheduledCommand {
	return heap.Pop(h).(ScheduledCommand)
}
