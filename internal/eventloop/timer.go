package eventloop

import (
	"sync/atomic"
	"time"
)

// Timer is a one-shot or repeating entry planted on a Loop.
type Timer struct {
	deadline time.Time
	interval time.Duration
	fn       func()
	stopped  atomic.Bool
}

// Stop cancels the timer. A canceled timer never fires again; stopping an
// already-fired one-shot is a no-op. Safe from any goroutine.
func (t *Timer) Stop() {
	t.stopped.Store(true)
}

// timerHeap orders timers by deadline, earliest first. Stopped entries are
// discarded lazily when they surface at the top.
type timerHeap []*Timer

func (h timerHeap) Len() int {
	return len(h)
}

func (h timerHeap) Less(i, j int) bool {
	return h[i].deadline.Before(h[j].deadline)
}

func (h timerHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
}

func (h *timerHeap) Push(x any) {
	*h = append(*h, x.(*Timer))
}

func (h *timerHeap) Pop() any {
	old := *h
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return t
}
