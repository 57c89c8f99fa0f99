// Package eventloop runs posted functions and timers on a single goroutine.
//
// The widget engine is not safe for concurrent use, so every mutation funnels
// through a Loop: transport handlers post closures, timers fire callbacks, and
// all of them execute serialized on the loop goroutine.
package eventloop

import (
	"container/heap"
	"sync"
	"sync/atomic"
	"time"
)

// Loop executes posted functions and due timers on one goroutine.
type Loop struct {
	mu      sync.Mutex
	pending []func()
	timers  timerHeap

	wake     chan struct{}
	stopChan chan struct{}
	done     chan struct{}
	stopOnce sync.Once
	running  atomic.Bool
}

// New returns a stopped loop. Call Start to begin processing.
func New() *Loop {
	return &Loop{
		wake:     make(chan struct{}, 1),
		stopChan: make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start launches the loop goroutine. Calling it twice is a no-op.
func (l *Loop) Start() {
	if l.running.CompareAndSwap(false, true) {
		go l.run()
	}
}

// Stop ends the loop and waits for the goroutine to exit. Pending posts and
// timers are discarded.
func (l *Loop) Stop() {
	l.stopOnce.Do(func() {
		close(l.stopChan)
	})
	if l.running.Load() {
		<-l.done
	}
}

// Post queues fn to run on the loop goroutine. Safe from any goroutine,
// including the loop itself. Posts after Stop are dropped.
func (l *Loop) Post(fn func()) {
	l.mu.Lock()
	l.pending = append(l.pending, fn)
	l.mu.Unlock()
	l.wakeUp()
}

// Call runs fn on the loop goroutine and waits for it to finish. It returns
// early when the loop stops before fn runs. Must not be called from the loop
// goroutine itself.
func (l *Loop) Call(fn func()) {
	ran := make(chan struct{})
	l.Post(func() {
		fn()
		close(ran)
	})
	select {
	case <-ran:
	case <-l.done:
	}
}

// Schedule plants a one-shot timer firing fn on the loop goroutine after d.
func (l *Loop) Schedule(d time.Duration, fn func()) *Timer {
	return l.plant(d, 0, fn)
}

// Repeat plants a repeating timer firing fn on the loop goroutine every
// interval until stopped.
func (l *Loop) Repeat(interval time.Duration, fn func()) *Timer {
	return l.plant(interval, interval, fn)
}

func (l *Loop) plant(d, interval time.Duration, fn func()) *Timer {
	t := &Timer{
		deadline: time.Now().Add(d),
		interval: interval,
		fn:       fn,
	}
	l.mu.Lock()
	heap.Push(&l.timers, t)
	l.mu.Unlock()
	l.wakeUp()
	return t
}

// wakeUp kicks the loop out of its sleep without blocking.
func (l *Loop) wakeUp() {
	select {
	case l.wake <- struct{}{}:
	default:
	}
}

func (l *Loop) run() {
	defer close(l.done)

	timer := time.NewTimer(0)
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
	defer timer.Stop()

	for {
		l.drainPosts()
		l.runDue()

		var timerC <-chan time.Time
		if next, ok := l.nextDeadline(); ok {
			d := time.Until(next)
			if d < 0 {
				d = 0
			}
			timer.Reset(d)
			timerC = timer.C
		}

		select {
		case <-l.wake:
			stopTimer(timer, timerC)
		case <-timerC:
		case <-l.stopChan:
			stopTimer(timer, timerC)
			return
		}
	}
}

// drainPosts runs every queued function in submission order.
func (l *Loop) drainPosts() {
	for {
		l.mu.Lock()
		fns := l.pending
		l.pending = nil
		l.mu.Unlock()
		if len(fns) == 0 {
			return
		}
		for _, fn := range fns {
			fn()
		}
	}
}

// runDue fires every timer whose deadline has passed. Repeating timers are
// rescheduled from their previous deadline to keep a fixed cadence, falling
// back to now when the loop has fallen behind a full interval.
func (l *Loop) runDue() {
	now := time.Now()
	for {
		l.mu.Lock()
		if l.timers.Len() == 0 {
			l.mu.Unlock()
			return
		}
		t := l.timers[0]
		if t.stopped.Load() {
			heap.Pop(&l.timers)
			l.mu.Unlock()
			continue
		}
		if t.deadline.After(now) {
			l.mu.Unlock()
			return
		}
		heap.Pop(&l.timers)
		l.mu.Unlock()

		t.fn()

		if t.interval <= 0 || t.stopped.Load() {
			continue
		}
		t.deadline = t.deadline.Add(t.interval)
		if !t.deadline.After(now) {
			t.deadline = now.Add(t.interval)
		}
		l.mu.Lock()
		heap.Push(&l.timers, t)
		l.mu.Unlock()
	}
}

// nextDeadline reports the earliest live timer deadline.
func (l *Loop) nextDeadline() (time.Time, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for l.timers.Len() > 0 {
		t := l.timers[0]
		if t.stopped.Load() {
			heap.Pop(&l.timers)
			continue
		}
		return t.deadline, true
	}
	return time.Time{}, false
}

// stopTimer disarms the wait timer and drains a fired value so the next Reset
// starts clean.
func stopTimer(t *time.Timer, c <-chan time.Time) {
	if c == nil {
		return
	}
	if !t.Stop() {
		select {
		case <-c:
		default:
		}
	}
}
