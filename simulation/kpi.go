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

package simulation

import (
	"time"

	"github.com/google/uuid"

	"github.com/wifisim/distsweep/logger"
	"github.com/wifisim/distsweep/sweep"
	. "github.com/wifisim/distsweep/types"
	"github.com/wifisim/distsweep/wifi"
)

// KpiManager keeps the summary of one simulation run.
type KpiManager struct {
	sim       *Simulation
	data      *Kpi
	isRunning bool
}

func NewKpiManager() *KpiManager {
	return &KpiManager{}
}

// Init inits the KPI manager for the given simulation.
func (km *KpiManager) Init(sim *Simulation) {
	logger.AssertNil(km.sim)
	logger.AssertFalse(km.isRunning)
	km.sim = sim
	km.data = &Kpi{
		RunId:   uuid.NewString(),
		Status:  "ok",
		Manager: sim.cfg.Manager,
		Devices: map[NodeId]wifi.DeviceStats{},
	}
	km.data.Sweep.FinalPosition = sim.sta.Position()
	sim.sta.Mobility().AddCourseChangeListener(func(pos Vector) {
		km.data.Sweep.FinalPosition = pos
	})
}

func (km *KpiManager) Start() {
	logger.AssertNotNil(km.sim)
	km.data.TimeSec.StartTimeSec = km.sim.Now().Seconds()
	km.isRunning = true
}

// Stop finalizes the KPIs. A non-nil err marks the run as interrupted.
func (km *KpiManager) Stop(err error) {
	if !km.isRunning {
		return
	}
	km.isRunning = false
	if err != nil {
		km.data.Status = "interrupted: " + err.Error()
	}
	km.calculateKpis()
}

func (km *KpiManager) IsRunning() bool {
	return km.isRunning
}

func (km *KpiManager) Data() *Kpi {
	return km.data
}

func (km *KpiManager) calculateKpis() {
	sim := km.sim
	km.data.Created = time.Now().Format(time.RFC3339)
	km.data.TimeSec.EndTimeSec = sim.Now().Seconds()
	km.data.TimeSec.PeriodSec = km.data.TimeSec.EndTimeSec - km.data.TimeSec.StartTimeSec

	km.data.Sweep.Ticks = sim.controller.Ticks()
	km.data.Sweep.MeanThroughput = meanValue(sim.stats.Throughput())
	km.data.Sweep.MeanPower = meanValue(sim.stats.Power())

	km.data.Traffic = KpiTraffic{
		PacketsSent:     sim.source.Sent(),
		PacketsDropped:  sim.source.Dropped(),
		DataFrames:      sim.stats.Integrator().Frames(),
		BytesReceived:   sim.sink.TotalBytes(),
		PacketsReceived: sim.sink.Packets(),
	}
	for _, n := range []*Node{sim.ap, sim.sta} {
		km.data.Devices[n.Id] = n.dev.Stats()
	}
}

func meanValue(s *sweep.Series) float64 {
	if s.Len() == 0 {
		return 0
	}
	sum := 0.0
	for _, p := range s.Points() {
		sum += p.Value
	}
	return sum / float64(s.Len())
}
