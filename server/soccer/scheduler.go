// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package soccer

import (
	"container/heap"
	"time"
)

// TimerID identifies a scheduled callback. The zero TimerID is never issued.
type TimerID uint32

type timer struct {
	id     TimerID
	due    time.Duration
	period time.Duration // zero for one-shot timers
	fn     func()
	index  int
}

// Scheduler runs deferred callbacks on simulated time. Nothing happens until Advance
// is called, and callbacks run on the caller's goroutine.
type Scheduler struct {
	now    time.Duration
	nextID TimerID
	timers timerHeap
	byID   map[TimerID]*timer
}

func NewScheduler() *Scheduler {
	return &Scheduler{byID: make(map[TimerID]*timer)}
}

// Now is the simulated time elapsed so far.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// After calls fn once, delay from now.
func (s *Scheduler) After(delay time.Duration, fn func()) TimerID {
	return s.schedule(delay, 0, fn)
}

// Every calls fn each period, first one period from now.
func (s *Scheduler) Every(period time.Duration, fn func()) TimerID {
	if period <= 0 {
		panic("non-positive period")
	}
	return s.schedule(period, period, fn)
}

func (s *Scheduler) schedule(delay, period time.Duration, fn func()) TimerID {
	s.nextID++
	if s.nextID == 0 {
		s.nextID++
	}
	t := &timer{id: s.nextID, due: s.now + delay, period: period, fn: fn}
	heap.Push(&s.timers, t)
	s.byID[t.id] = t
	return t.id
}

// Cancel is a no-op for unknown or expired timers.
func (s *Scheduler) Cancel(id TimerID) {
	t, ok := s.byID[id]
	if !ok {
		return
	}
	heap.Remove(&s.timers, t.index)
	delete(s.byID, id)
}

// Pending is the number of timers that have yet to fire.
func (s *Scheduler) Pending() int {
	return len(s.timers)
}

// Advance moves time forward by dt, running due callbacks in due order.
// Ties run in scheduling order.
func (s *Scheduler) Advance(dt time.Duration) {
	end := s.now + dt
	for len(s.timers) > 0 && s.timers[0].due <= end {
		t := s.timers[0]
		s.now = t.due
		if t.period > 0 {
			t.due += t.period
			heap.Fix(&s.timers, 0)
		} else {
			heap.Pop(&s.timers)
			delete(s.byID, t.id)
		}
		t.fn()
	}
	s.now = end
}

// Reset cancels every timer without resetting the clock.
func (s *Scheduler) Reset() {
	s.timers = s.timers[:0]
	for id := range s.byID {
		delete(s.byID, id)
	}
}

type timerHeap []*timer

func (h timerHeap) Len() int { return len(h) }

func (h timerHeap) Less(i, j int) bool {
	if h[i].due == h[j].due {
		return h[i].id < h[j].id
	}
	return h[i].due < h[j].due
}

func (h timerHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *timerHeap) Push(x interface{}) {
	t := x.(*timer)
	t.index = len(*h)
	*h = append(*h, t)
}

func (h *timerHeap) Pop() interface{} {
	old := *h
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return t
}
