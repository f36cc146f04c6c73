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

package sweep

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/wifisim/distsweep/event"
	"github.com/wifisim/distsweep/mobility"
	. "github.com/wifisim/distsweep/types"
	"github.com/wifisim/distsweep/wifi"
)

var staAddr = NewMacAddr(1)

func newTestStatistics(t *testing.T) *NodeStatistics {
	phy, err := wifi.NewPhy(wifi.PhyConfig{Standard: wifi.Standard80211a, TxPowerStart: -70, TxPowerEnd: -40, NTxPower: 30})
	assert.Nil(t, err)
	stats, err := NewNodeStatistics(phy, 1420, []MacAddr{staAddr})
	assert.Nil(t, err)
	return stats
}

type sampleRecorder struct {
	samples []Sample
	onTick  func(s Sample)
}

func (r *sampleRecorder) OnSample(s Sample) {
	r.samples = append(r.samples, s)
	if r.onTick != nil {
		r.onTick(s)
	}
}

func TestSeries(t *testing.T) {
	s := NewSeries("test")
	assert.Equal(t, "test", s.Title())
	_, ok := s.Last()
	assert.False(t, ok)

	s.Add(1, 10)
	s.Add(2, 20)
	assert.Equal(t, 2, s.Len())
	points := s.Points()
	assert.Equal(t, []Point{{X: 1, Value: 10}, {X: 2, Value: 20}}, points)
	last, ok := s.Last()
	assert.True(t, ok)
	assert.Equal(t, Point{X: 2, Value: 20}, last)

	points[0].Value = 99
	assert.Equal(t, 10.0, s.Points()[0].Value)
}

func TestNewNodeStatistics(t *testing.T) {
	stats := newTestStatistics(t)
	for _, addr := range []MacAddr{staAddr, BroadcastMacAddr} {
		rate, err := stats.Links().CurrentRate(addr)
		assert.Nil(t, err)
		assert.Equal(t, 6*Mbps, rate)
		power, err := stats.Links().CurrentPower(addr)
		assert.Nil(t, err)
		assert.Equal(t, DbValue(-40), power)
	}
	assert.Len(t, stats.DurationTable().Entries(), 8)
	assert.Equal(t, ThroughputTitle, stats.Throughput().Title())
	assert.Equal(t, PowerTitle, stats.Power().Title())
}

func TestNewController_InvalidStep(t *testing.T) {
	_, err := NewController(ControllerConfig{StepInterval: 0, StepDistance: 1}, event.NewSimulator(),
		mobility.NewConstantPosition(Vector{}), newTestStatistics(t))
	assert.ErrorIs(t, err, ErrInvalidStep)
}

func TestController_AdvancesPosition(t *testing.T) {
	sim := event.NewSimulator()
	mob := mobility.NewConstantPosition(Vector{X: -1.4, Y: 3})
	stats := newTestStatistics(t)
	c, err := NewController(ControllerConfig{StepInterval: time.Second, StepDistance: 0.5}, sim, mob, stats)
	assert.Nil(t, err)
	assert.Equal(t, StateIdle, c.State())

	assert.Nil(t, c.Start(time.Second))
	assert.NotNil(t, c.Start(time.Second))
	sim.StopAt(5500 * time.Millisecond)
	assert.Nil(t, sim.Run(context.Background()))

	assert.Equal(t, 5, c.Ticks())
	assert.Equal(t, StateSampling, c.State())
	assert.InDelta(t, -1.4+5*0.5, mob.Position().X, 1e-9)
	assert.Equal(t, 3.0, mob.Position().Y)
	assert.Equal(t, 0.0, mob.Position().Z)

	for _, series := range []*Series{stats.Throughput(), stats.Power()} {
		points := series.Points()
		assert.Len(t, points, 5)
		for i, p := range points {
			assert.InDelta(t, -1.4+float64(i)*0.5, p.X, 1e-9)
			assert.Equal(t, 0.0, p.Value)
		}
	}
}

func TestController_Samples(t *testing.T) {
	sim := event.NewSimulator()
	mob := mobility.NewConstantPosition(Vector{X: 1})
	stats := newTestStatistics(t)
	c, err := NewController(ControllerConfig{StepInterval: time.Second, StepDistance: 1}, sim, mob, stats)
	assert.Nil(t, err)
	rec := &sampleRecorder{}
	c.AddObserver(rec)

	sim.Schedule(500*time.Millisecond, func() {
		// one data frame at 6 Mbit/s, 1920us at -40 dBm
		stats.FrameTxBegin(staAddr, FrameTypeData, 1456)
		stats.FrameTxBegin(staAddr, FrameTypeControl, 14)
		for i := 0; i < 1000; i++ {
			stats.BytesReceived(1000, NewMacAddr(0))
		}
	})
	assert.Nil(t, c.Start(time.Second))
	sim.StopAt(2500 * time.Millisecond)
	assert.Nil(t, sim.Run(context.Background()))

	assert.Len(t, rec.samples, 2)
	first := rec.samples[0]
	assert.Equal(t, 1, first.Tick)
	assert.Equal(t, time.Second, first.Time)
	assert.Equal(t, 1.0, first.Position.X)
	assert.Equal(t, 8.0, first.Throughput)
	assert.InDelta(t, 1.92e-7, first.Power, 1e-18)

	second := rec.samples[1]
	assert.Equal(t, 2.0, second.Position.X)
	assert.Equal(t, 0.0, second.Throughput)
	assert.Equal(t, 0.0, second.Power)

	assert.Equal(t, []Point{{X: 1, Value: 8}, {X: 2, Value: 0}}, stats.Throughput().Points())
	assert.Equal(t, 0.0, stats.Integrator().TotalEnergy())
	assert.Equal(t, uint64(0), stats.Counter().TotalBytes())
	assert.Equal(t, uint64(1), stats.Integrator().Frames())
}

func TestController_Terminate(t *testing.T) {
	sim := event.NewSimulator()
	mob := mobility.NewConstantPosition(Vector{})
	c, err := NewController(ControllerConfig{StepInterval: 100 * time.Millisecond, StepDistance: 1}, sim, mob,
		newTestStatistics(t))
	assert.Nil(t, err)
	c.AddObserver(&sampleRecorder{onTick: func(s Sample) {
		if s.Tick == 2 {
			c.Terminate()
		}
	}})
	assert.Nil(t, c.Start(0))
	sim.StopAt(10 * time.Second)
	assert.Nil(t, sim.Run(context.Background()))

	assert.Equal(t, 2, c.Ticks())
	assert.Equal(t, StateTerminated, c.State())
	assert.Equal(t, 2.0, mob.Position().X)
	assert.Equal(t, 0, sim.Pending())
	assert.Equal(t, "terminated", c.State().String())
}
