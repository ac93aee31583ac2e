// Package sched provides the deterministic simulation clock and one-shot timer
// queue that drives fuses, chain delays and effect lifetimes.
//
// The scheduler does not own a goroutine. The game loop advances it once per
// tick and every due callback runs synchronously on that goroutine, so timer
// callbacks never race with the rest of the simulation.
package sched

import (
	"container/heap"
	"time"
)

// Token identifies a scheduled callback. The zero Token is never issued.
type Token uint64

// timer is a pending one-shot callback.
type timer struct {
	token Token
	due   time.Duration
	seq   uint64 // Scheduling order, breaks ties between equal due times
	fn    func()
	index int // Position in the heap, -1 once removed
}

// Scheduler is a simulation clock with a priority queue of one-shot timers.
// Not safe for concurrent use.
type Scheduler struct {
	now   time.Duration
	seq   uint64
	next  Token
	queue timerHeap
	byTok map[Token]*timer
}

// New creates a scheduler whose clock starts at zero.
func New() *Scheduler {
	return &Scheduler{
		byTok: make(map[Token]*timer),
	}
}

// Now returns the current simulation time.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// ScheduleOnce registers fn to run once, delay after Now. Negative delays are
// treated as zero; a zero-delay timer scheduled from inside a callback runs
// later in the same Advance call.
func (s *Scheduler) ScheduleOnce(delay time.Duration, fn func()) Token {
	if delay < 0 {
		delay = 0
	}
	s.next++
	s.seq++
	t := &timer{
		token: s.next,
		due:   s.now + delay,
		seq:   s.seq,
		fn:    fn,
	}
	heap.Push(&s.queue, t)
	s.byTok[t.token] = t
	return t.token
}

// Cancel removes a pending timer. Returns false if the token is unknown,
// already fired or already cancelled.
func (s *Scheduler) Cancel(tok Token) bool {
	t, ok := s.byTok[tok]
	if !ok {
		return false
	}
	delete(s.byTok, tok)
	heap.Remove(&s.queue, t.index)
	return true
}

// Pending returns the number of timers that have not fired or been cancelled.
func (s *Scheduler) Pending() int {
	return len(s.byTok)
}

// Advance moves the clock forward by dt, firing every timer that becomes due
// in due-time order. While a callback runs, Now reports that timer's due time.
// Returns the number of callbacks fired.
func (s *Scheduler) Advance(dt time.Duration) int {
	if dt < 0 {
		dt = 0
	}
	target := s.now + dt
	fired := 0

	for len(s.queue) > 0 && s.queue[0].due <= target {
		t := heap.Pop(&s.queue).(*timer)
		delete(s.byTok, t.token)
		if t.due > s.now {
			s.now = t.due
		}
		t.fn()
		fired++
	}

	s.now = target
	return fired
}

// Reset drops every pending timer without running it. The clock keeps its time
// so tokens issued afterwards never collide with old ones.
func (s *Scheduler) Reset() {
	s.queue = s.queue[:0]
	clear(s.byTok)
}

// timerHeap orders timers by due time, then scheduling order.
type timerHeap []*timer

func (h timerHeap) Len() int { return len(h) }

func (h timerHeap) Less(i, j int) bool {
	if h[i].due != h[j].due {
		return h[i].due < h[j].due
	}
	return h[i].seq < h[j].seq
}

func (h timerHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *timerHeap) Push(x any) {
	t := x.(*timer)
	t.index = len(*h)
	*h = append(*h, t)
}

func (h *timerHeap) Pop() any {
	old := *h
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*h = old[:n-1]
	return t
}
