// Copyright (c) 2026, The DistSweep Authors.
// All rights reserved.
//
// Redistribution and use in source and binary forms, with or without
// modification, are permitted provided that the following conditions are met:
// 1. Redistributions of source code must retain the above copyright
//    notice, this list of conditions and the following disclaimer.
// 2. Redistributions in binary form must reproduce the above copyright
//    notice, this list of conditions and the following disclaimer in the
//    documentation and/or other materials provided with the distribution.
// 3. Neither the name of the copyright holder nor the
//    names of its contributors may be used to endorse or promote products
//    derived from this software without specific prior written permission.
//
// THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS "AS IS"
// AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT LIMITED TO, THE
// IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE
// ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR CONTRIBUTORS BE
// LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL, SPECIAL, EXEMPLARY, OR
// CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT LIMITED TO, PROCUREMENT OF
// SUBSTITUTE GOODS OR SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS
// INTERRUPTION) HOWEVER CAUSED AND ON ANY THEORY OF LIABILITY, WHETHER IN
// CONTRACT, STRICT LIABILITY, OR TORT (INCLUDING NEGLIGENCE OR OTHERWISE)
// ARISING IN ANY WAY OUT OF THE USE OF THIS SOFTWARE, EVEN IF ADVISED OF THE
// POSSIBILITY OF SUCH DAMAGE.

// Package event implements the discrete-event scheduler that drives a simulation run.
package event

import (
	"container/heap"
	"context"
	"time"

	"github.com/wifisim/distsweep/logger"
)

// Ever is the timestamp that is never reached.
const Ever = time.Duration(1<<63 - 1)

// Scheduler is the part of the simulator that components use to schedule their own work.
type Scheduler interface {
	Now() time.Duration
	Schedule(delay time.Duration, fn func()) EventId
}

// Simulator executes scheduled events in timestamp order on the calling goroutine.
type Simulator struct {
	q        eventQueue
	events   map[EventId]*scheduledEvent
	now      time.Duration
	stopAt   time.Duration
	nextId   EventId
	executed uint64
	running  bool
}

func NewSimulator() *Simulator {
	s := &Simulator{
		q:      eventQueue{},
		events: map[EventId]*scheduledEvent{},
		stopAt: Ever,
		nextId: 1,
	}
	heap.Init(&s.q)
	return s
}

// Now returns the current simulated time.
func (s *Simulator) Now() time.Duration {
	return s.now
}

// Schedule runs fn after delay, relative to the current simulated time.
func (s *Simulator) Schedule(delay time.Duration, fn func()) EventId {
	logger.AssertTruef(delay >= 0, "negative event delay %v", delay)
	return s.ScheduleAt(s.now+delay, fn)
}

// ScheduleAt runs fn at the absolute simulated time ts, which may not lie in the past.
func (s *Simulator) ScheduleAt(ts time.Duration, fn func()) EventId {
	logger.AssertTruef(ts >= s.now, "event at %v scheduled in the past (now %v)", ts, s.now)
	logger.AssertNotNil(fn)

	e := &scheduledEvent{
		Id:        s.nextId,
		Timestamp: ts,
		fn:        fn,
	}
	s.nextId++
	heap.Push(&s.q, e)
	s.events[e.Id] = e
	return e.Id
}

// Cancel removes a pending event. It returns false if the event already ran or was cancelled.
func (s *Simulator) Cancel(id EventId) bool {
	e, ok := s.events[id]
	if !ok {
		return false
	}
	heap.Remove(&s.q, e.index)
	delete(s.events, id)
	return true
}

// Stop ends the run after delay. Events at or after the stop time are not executed.
func (s *Simulator) Stop(delay time.Duration) {
	s.StopAt(s.now + delay)
}

func (s *Simulator) StopAt(ts time.Duration) {
	s.stopAt = ts
}

func (s *Simulator) StopTime() time.Duration {
	return s.stopAt
}

// Pending returns the number of scheduled events not yet executed.
func (s *Simulator) Pending() int {
	return len(s.q)
}

// Executed returns the number of events executed so far.
func (s *Simulator) Executed() uint64 {
	return s.executed
}

// NextTimestamp returns the time of the earliest pending event, or Ever if there is none.
func (s *Simulator) NextTimestamp() time.Duration {
	if len(s.q) == 0 {
		return Ever
	}
	return s.q[0].Timestamp
}

// Run executes events until the queue is empty, the stop time is reached or ctx is done.
func (s *Simulator) Run(ctx context.Context) error {
	logger.AssertFalse(s.running, "simulator is already running")
	s.running = true
	defer func() {
		s.running = false
	}()

	for len(s.q) > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}

		next := s.q[0]
		if next.Timestamp >= s.stopAt {
			s.now = s.stopAt
			break
		}

		heap.Pop(&s.q)
		delete(s.events, next.Id)
		s.now = next.Timestamp
		s.executed++
		next.fn()
	}

	logger.Debugf("simulator done: executed %d events, %d pending", s.executed, len(s.q))
	return nil
}
