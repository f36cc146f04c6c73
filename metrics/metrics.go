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

// Package metrics exports sweep samples and link notifications as Prometheus metrics.
package metrics

import (
	"net/http"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/wifisim/distsweep/sweep"
	. "github.com/wifisim/distsweep/types"
)

// Collector bundles the Prometheus metrics of a sweep. It subscribes to the AP notifications and observes the
// sweep controller samples.
type Collector struct {
	gatherer prometheus.Gatherer

	Ticks         prometheus.Counter
	DataFrames    prometheus.Counter
	RxBytes       prometheus.Counter
	PowerChanges  *prometheus.CounterVec
	RateChanges   *prometheus.CounterVec

	Throughput  prometheus.Gauge
	AvgTxPower  prometheus.Gauge
	StaPosition prometheus.Gauge
}

// NewCollector registers the metrics against reg, defaulting to the global Prometheus registry when nil.
// Metrics that are already registered, e.g. by an earlier run in the same process, are reused.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	c := &Collector{gatherer: gatherer}
	var err error
	if c.Ticks, err = register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "distsweep_ticks_total",
		Help: "Number of sweep ticks.",
	})); err != nil {
		return nil, err
	}
	if c.DataFrames, err = register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "distsweep_data_frames_total",
		Help: "Number of data frames transmitted by the AP.",
	})); err != nil {
		return nil, err
	}
	if c.RxBytes, err = register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "distsweep_bytes_received_total",
		Help: "Application bytes received by the stations.",
	})); err != nil {
		return nil, err
	}
	if c.PowerChanges, err = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "distsweep_power_changes_total",
		Help: "Transmit power changes of the AP rate manager, labeled by destination.",
	}, []string{"dest"})); err != nil {
		return nil, err
	}
	if c.RateChanges, err = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "distsweep_rate_changes_total",
		Help: "Data rate changes of the AP rate manager, labeled by destination.",
	}, []string{"dest"})); err != nil {
		return nil, err
	}
	if c.Throughput, err = register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "distsweep_throughput_mbps",
		Help: "Throughput of the last sweep tick in Mbit/s.",
	})); err != nil {
		return nil, err
	}
	if c.AvgTxPower, err = register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "distsweep_avg_tx_power",
		Help: "Average transmit power of the last sweep tick in mW.",
	})); err != nil {
		return nil, err
	}
	if c.StaPosition, err = register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "distsweep_sta_position_x",
		Help: "Station x-coordinate of the last sweep tick in meters.",
	})); err != nil {
		return nil, err
	}
	return c, nil
}

func register[T prometheus.Collector](reg prometheus.Registerer, c T) (T, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing, nil
			}
			return c, errors.Errorf("collector %v already registered with incompatible type", are.ExistingCollector)
		}
		return c, err
	}
	return c, nil
}

// Handler exposes a ready-to-use /metrics handler.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.gatherer, promhttp.HandlerOpts{})
}

func (c *Collector) PowerChanged(oldPower, newPower DbValue, dest MacAddr) {
	c.PowerChanges.WithLabelValues(dest.String()).Inc()
}

func (c *Collector) RateChanged(oldRate, newRate DataRate, dest MacAddr) {
	c.RateChanges.WithLabelValues(dest.String()).Inc()
}

func (c *Collector) FrameTxBegin(dest MacAddr, frameType FrameType, size int) {
	if frameType == FrameTypeData {
		c.DataFrames.Inc()
	}
}

func (c *Collector) BytesReceived(n int, from MacAddr) {
	c.RxBytes.Add(float64(n))
}

func (c *Collector) OnSample(s sweep.Sample) {
	c.Ticks.Inc()
	c.Throughput.Set(s.Throughput)
	c.AvgTxPower.Set(s.Power)
	c.StaPosition.Set(s.Position.X)
}
