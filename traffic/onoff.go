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

// Package traffic generates and terminates the application traffic of a simulation.
package traffic

import (
	"time"

	"github.com/pkg/errors"

	"github.com/wifisim/distsweep/event"
	"github.com/wifisim/distsweep/logger"
	. "github.com/wifisim/distsweep/types"
)

// Sender accepts packets for transmission. It returns false when a packet was dropped.
type Sender interface {
	Send(payloadSize int, dest MacAddr) bool
}

type OnOffConfig struct {
	DataRate   DataRate
	PacketSize int
	Start      time.Duration
	Stop       time.Duration
}

// OnOffSource sends fixed-size packets at a constant bit rate between its start and stop time.
type OnOffSource struct {
	cfg      OnOffConfig
	sched    event.Scheduler
	dev      Sender
	dest     MacAddr
	interval time.Duration
	sent     uint64
	dropped  uint64
}

func NewOnOffSource(cfg OnOffConfig, sched event.Scheduler, dev Sender, dest MacAddr) (*OnOffSource, error) {
	if cfg.DataRate == 0 || cfg.PacketSize <= 0 {
		return nil, errors.Errorf("invalid traffic: %d bytes at %s", cfg.PacketSize, cfg.DataRate)
	}
	interval := time.Duration(uint64(cfg.PacketSize) * 8 * uint64(time.Second) / uint64(cfg.DataRate))
	return &OnOffSource{
		cfg:      cfg,
		sched:    sched,
		dev:      dev,
		dest:     dest,
		interval: interval,
	}, nil
}

// Start schedules the first packet at the configured start time.
func (s *OnOffSource) Start() {
	delay := s.cfg.Start - s.sched.Now()
	if delay < 0 {
		delay = 0
	}
	logger.Debugf("traffic to %s: %d bytes every %v from %v", s.dest, s.cfg.PacketSize, s.interval, s.cfg.Start)
	s.sched.Schedule(delay, s.send)
}

func (s *OnOffSource) send() {
	if s.sched.Now() >= s.cfg.Stop {
		return
	}
	if s.dev.Send(s.cfg.PacketSize, s.dest) {
		s.sent++
	} else {
		s.dropped++
	}
	s.sched.Schedule(s.interval, s.send)
}

func (s *OnOffSource) Interval() time.Duration {
	return s.interval
}

func (s *OnOffSource) Sent() uint64 {
	return s.sent
}

func (s *OnOffSource) Dropped() uint64 {
	return s.dropped
}
