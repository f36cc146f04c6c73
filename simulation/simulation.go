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

// Package simulation wires a sweep run: an AP sending constant-bit-rate traffic to one station that is moved
// along the x-axis while throughput and average transmit power are sampled.
package simulation

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/wifisim/distsweep/event"
	"github.com/wifisim/distsweep/logger"
	"github.com/wifisim/distsweep/notify"
	"github.com/wifisim/distsweep/pcap"
	"github.com/wifisim/distsweep/prng"
	"github.com/wifisim/distsweep/radiomodel"
	"github.com/wifisim/distsweep/sweep"
	"github.com/wifisim/distsweep/traffic"
	. "github.com/wifisim/distsweep/types"
	"github.com/wifisim/distsweep/wifi"
)

const staNodeId NodeId = 1

var ErrNoSteps = errors.New("steps = 0, nothing to measure")

// Result holds the sample series of a finished run. Power is nil when the rate manager does not adapt
// the transmit power.
type Result struct {
	Throughput *sweep.Series
	Power      *sweep.Series
	Kpi        *Kpi
}

type Simulation struct {
	cfg        *Config
	sim        *event.Simulator
	channel    *wifi.Channel
	ap         *Node
	sta        *Node
	source     *traffic.OnOffSource
	sink       *traffic.PacketSink
	stats      *sweep.NodeStatistics
	controller *sweep.Controller
	kpiMgr     *KpiManager
	started    bool
}

func NewSimulation(cfg *Config) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	prng.Init(cfg.Seed)

	s := &Simulation{
		cfg: cfg,
		sim: event.NewSimulator(),
	}

	std := wifi.Standard(cfg.Standard)
	apCfg := &NodeConfig{
		ID:       ApNodeId,
		Role:     RoleAp,
		Position: cfg.ApPosition,
		Manager:  cfg.managerType(),
		Phy: wifi.PhyConfig{
			Standard:     std,
			ChannelWidth: cfg.ChannelWidth,
			FrequencyMhz: cfg.Frequency,
			TxPowerStart: cfg.MinPower,
			TxPowerEnd:   cfg.MaxPower,
			NTxPower:     cfg.PowerLevels,
		},
	}
	staCfg := &NodeConfig{
		ID:       staNodeId,
		Role:     RoleSta,
		Position: cfg.StaPosition,
		Manager:  wifi.ManagerConstant,
		Phy: wifi.PhyConfig{
			Standard:     std,
			ChannelWidth: cfg.ChannelWidth,
			FrequencyMhz: cfg.Frequency,
			TxPowerStart: cfg.MaxPower,
			TxPowerEnd:   cfg.MaxPower,
			NTxPower:     1,
		},
	}

	freq := cfg.Frequency
	if freq == 0 {
		freq = std.DefaultFrequency()
	}
	params, err := radiomodel.NewParams(radiomodel.PathlossModel(cfg.Pathloss), float64(freq))
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidConfig, "%v", err)
	}
	s.channel = wifi.NewChannel(radiomodel.NewModel(params, prng.NewRadioModelRandomSeed()))

	if s.ap, err = newNode(apCfg, s.sim, s.channel); err != nil {
		return nil, errors.Wrapf(ErrInvalidConfig, "ap: %v", err)
	}
	if s.sta, err = newNode(staCfg, s.sim, s.channel); err != nil {
		return nil, errors.Wrapf(ErrInvalidConfig, "sta: %v", err)
	}

	s.sink = traffic.NewPacketSink()
	s.sta.dev.SetReceiveCallback(s.sink.Receive)
	s.source, err = traffic.NewOnOffSource(traffic.OnOffConfig{
		DataRate:   DataRate(cfg.DataRateMbps * float64(Mbps)),
		PacketSize: cfg.PacketSize,
		Start:      seconds(cfg.AppStart),
		Stop:       s.stopTime(),
	}, s.sim, s.ap.dev, s.sta.Address())
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidConfig, "%v", err)
	}

	if s.stats, err = sweep.NewNodeStatistics(s.ap.dev.Phy(), cfg.PacketSize, []MacAddr{s.sta.Address()}); err != nil {
		return nil, err
	}
	s.controller, err = sweep.NewController(sweep.ControllerConfig{
		StepInterval: seconds(cfg.StepTime),
		StepDistance: cfg.StepSize,
	}, s.sim, s.sta.mob, s.stats)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidConfig, "%v", err)
	}

	s.ap.dev.Notifier().Subscribe(s.stats)
	s.ap.dev.Notifier().Subscribe(notify.LogListener{Name: "ap"})
	s.sink.Notifier().Subscribe(s.stats)

	s.kpiMgr = NewKpiManager()
	s.kpiMgr.Init(s)
	return s, nil
}

func seconds(sec float64) time.Duration {
	return time.Duration(sec * float64(time.Second))
}

// stopTime is one step interval after the last tick.
func (s *Simulation) stopTime() time.Duration {
	return time.Duration(s.cfg.Steps+1) * seconds(s.cfg.StepTime)
}

func (s *Simulation) Config() *Config {
	return s.cfg
}

func (s *Simulation) Now() time.Duration {
	return s.sim.Now()
}

func (s *Simulation) Ap() *Node {
	return s.ap
}

func (s *Simulation) Sta() *Node {
	return s.sta
}

func (s *Simulation) Statistics() *sweep.NodeStatistics {
	return s.stats
}

func (s *Simulation) Controller() *sweep.Controller {
	return s.controller
}

func (s *Simulation) GetKpiManager() *KpiManager {
	return s.kpiMgr
}

// AddObserver registers o for the samples of every sweep tick.
func (s *Simulation) AddObserver(o sweep.SampleObserver) {
	s.controller.AddObserver(o)
}

// Subscribe registers l for the AP's power, rate and tx-begin notifications and the station's received bytes.
func (s *Simulation) Subscribe(l interface{}) bool {
	ap := s.ap.dev.Notifier().Subscribe(l)
	rx := s.sink.Notifier().Subscribe(l)
	return ap || rx
}

// CapturePcap records every frame the AP starts to transmit into file. The caller closes the returned capture
// after the run.
func (s *Simulation) CapturePcap(file pcap.File) *pcap.Capture {
	c := pcap.NewCapture(file, s.sim, s.stats.Links(), s.ap.Address(), s.ap.dev.Phy().Frequency())
	s.ap.dev.Notifier().Subscribe(c)
	return c
}

// Run runs the simulation until its stop time or until ctx is done. A run with zero steps is refused.
func (s *Simulation) Run(ctx context.Context) (*Result, error) {
	if s.cfg.Steps == 0 {
		logger.Warnf("not running the simulation: steps = 0")
		return nil, ErrNoSteps
	}
	if s.started {
		return nil, errors.Errorf("simulation already ran")
	}
	s.started = true

	logger.SetTimeSource(s.sim)
	defer logger.SetTimeSource(nil)

	stepTime := seconds(s.cfg.StepTime)
	s.sim.StopAt(s.stopTime())
	logger.Infof("AP at %s, STA at %s; %d steps of %.3fm every %v, stop at %v", s.ap.Position(),
		s.sta.Position(), s.cfg.Steps, s.cfg.StepSize, stepTime, s.stopTime())

	s.ap.dev.StartBeacons(wifi.DefaultBeaconInterval)
	s.source.Start()
	if err := s.controller.Start(seconds(s.cfg.AppStart) + stepTime); err != nil {
		return nil, err
	}
	s.kpiMgr.Start()

	err := s.sim.Run(ctx)
	s.controller.Terminate()
	s.kpiMgr.Stop(err)

	res := &Result{
		Throughput: s.stats.Throughput(),
		Kpi:        s.kpiMgr.Data(),
	}
	if s.cfg.managerType().IsPowerAdapting() {
		res.Power = s.stats.Power()
	}
	if err != nil {
		return res, errors.Wrap(err, "simulation interrupted")
	}
	logger.Infof("done: %d ticks, %d events", s.controller.Ticks(), s.sim.Executed())
	return res, nil
}
