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

// Package sweep samples throughput and average transmit power while moving a station along the x-axis.
package sweep

import (
	"fmt"
	"time"

	"github.com/pkg/errors"

	"github.com/wifisim/distsweep/event"
	"github.com/wifisim/distsweep/logger"
	"github.com/wifisim/distsweep/mobility"
	. "github.com/wifisim/distsweep/types"
)

var ErrInvalidStep = errors.New("invalid sweep step")

type State int

const (
	StateIdle State = iota
	StateSampling
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSampling:
		return "sampling"
	case StateTerminated:
		return "terminated"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

type ControllerConfig struct {
	StepInterval time.Duration // time between two ticks
	StepDistance float64       // x displacement in meters per tick
}

// Sample is the outcome of one tick.
type Sample struct {
	Tick       int           `yaml:"tick" json:"tick"`
	Time       time.Duration `yaml:"time" json:"time"`
	Position   Vector        `yaml:"position" json:"position"`
	Throughput float64       `yaml:"throughput" json:"throughput"`
	Power      float64       `yaml:"power" json:"power"`
}

type SampleObserver interface {
	OnSample(s Sample)
}

// Controller is the periodic sample-reset-advance process of a sweep. Each tick re-submits itself to the
// scheduler; the process ends when the scheduler stops or Terminate is called.
type Controller struct {
	cfg       ControllerConfig
	sched     event.Scheduler
	mob       mobility.Model
	stats     *NodeStatistics
	state     State
	started   bool
	ticks     int
	observers []SampleObserver
}

func NewController(cfg ControllerConfig, sched event.Scheduler, mob mobility.Model, stats *NodeStatistics) (*Controller, error) {
	if cfg.StepInterval <= 0 {
		return nil, errors.Wrapf(ErrInvalidStep, "step interval %v", cfg.StepInterval)
	}
	logger.AssertNotNil(sched)
	logger.AssertNotNil(mob)
	logger.AssertNotNil(stats)
	return &Controller{
		cfg:   cfg,
		sched: sched,
		mob:   mob,
		stats: stats,
		state: StateIdle,
	}, nil
}

func (c *Controller) AddObserver(o SampleObserver) {
	c.observers = append(c.observers, o)
}

// Start schedules the first tick after firstDelay.
func (c *Controller) Start(firstDelay time.Duration) error {
	if c.started || c.state != StateIdle {
		return errors.Errorf("sweep controller already started")
	}
	c.started = true
	logger.Debugf("sweep: first tick in %v, step %v / %.3fm", firstDelay, c.cfg.StepInterval, c.cfg.StepDistance)
	c.sched.Schedule(firstDelay, c.tick)
	return nil
}

// Terminate stops the sweep. A tick that is already scheduled does nothing when it fires.
func (c *Controller) Terminate() {
	if c.state != StateTerminated {
		logger.Debugf("sweep terminated after %d ticks", c.ticks)
	}
	c.state = StateTerminated
}

func (c *Controller) State() State {
	return c.state
}

func (c *Controller) Ticks() int {
	return c.ticks
}

func (c *Controller) Config() ControllerConfig {
	return c.cfg
}

func (c *Controller) tick() {
	if c.state == StateTerminated {
		return
	}
	c.state = StateSampling

	pos := c.mob.Position()
	throughput, power := c.stats.sample(c.cfg.StepInterval.Seconds())
	c.stats.throughput.Add(pos.X, throughput)
	c.stats.power.Add(pos.X, power)
	c.ticks++

	s := Sample{
		Tick:       c.ticks,
		Time:       c.sched.Now(),
		Position:   pos,
		Throughput: throughput,
		Power:      power,
	}

	pos.X += c.cfg.StepDistance
	c.mob.SetPosition(pos)
	logger.Infof("x=%.3f: %.3f Mbit/s, %g mW; moving station to %s", s.Position.X, throughput, power, pos)

	for _, o := range c.observers {
		o.OnSample(s)
	}
	c.sched.Schedule(c.cfg.StepInterval, c.tick)
}
