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
	"github.com/wifisim/distsweep/energy"
	. "github.com/wifisim/distsweep/types"
)

const (
	ThroughputTitle = "Throughput [Mbit/s]"
	PowerTitle      = "Average Tx Power [mW]"
)

// PhyInfo is the AP PHY the statistics are collected for.
type PhyInfo interface {
	energy.PhyInfo
	TxPowerEnd() DbValue
}

// NodeStatistics collects the measurements of one AP and its stations. It subscribes to the AP's power, rate
// and tx-begin notifications and to the stations' received bytes.
type NodeStatistics struct {
	table      *energy.DurationTable
	links      *energy.LinkStateTracker
	integrator *energy.Integrator
	counter    *energy.ThroughputCounter
	throughput *Series
	power      *Series
}

// NewNodeStatistics builds the duration table for packetSize from phy, and seeds every station and the
// broadcast address with the rate of the first PHY mode and the highest transmit power.
func NewNodeStatistics(phy PhyInfo, packetSize int, stations []MacAddr) (*NodeStatistics, error) {
	table, err := energy.NewDurationTable(phy, packetSize)
	if err != nil {
		return nil, err
	}

	links := energy.NewLinkStateTracker()
	rate := phy.Mode(0).DataRate(phy.ChannelWidth())
	power := phy.TxPowerEnd()
	for _, sta := range stations {
		links.Seed(sta, power, rate)
	}
	links.Seed(BroadcastMacAddr, power, rate)

	return &NodeStatistics{
		table:      table,
		links:      links,
		integrator: energy.NewIntegrator(links, table),
		counter:    energy.NewThroughputCounter(),
		throughput: NewSeries(ThroughputTitle),
		power:      NewSeries(PowerTitle),
	}, nil
}

func (ns *NodeStatistics) PowerChanged(oldPower, newPower DbValue, dest MacAddr) {
	ns.links.PowerChanged(oldPower, newPower, dest)
}

func (ns *NodeStatistics) RateChanged(oldRate, newRate DataRate, dest MacAddr) {
	ns.links.RateChanged(oldRate, newRate, dest)
}

func (ns *NodeStatistics) FrameTxBegin(dest MacAddr, frameType FrameType, size int) {
	ns.integrator.FrameTxBegin(dest, frameType, size)
}

func (ns *NodeStatistics) BytesReceived(n int, from MacAddr) {
	ns.counter.BytesReceived(n, from)
}

func (ns *NodeStatistics) DurationTable() *energy.DurationTable {
	return ns.table
}

func (ns *NodeStatistics) Links() *energy.LinkStateTracker {
	return ns.links
}

func (ns *NodeStatistics) Integrator() *energy.Integrator {
	return ns.integrator
}

func (ns *NodeStatistics) Counter() *energy.ThroughputCounter {
	return ns.counter
}

func (ns *NodeStatistics) Throughput() *Series {
	return ns.throughput
}

func (ns *NodeStatistics) Power() *Series {
	return ns.power
}

// sample converts the accumulated bytes and energy over intervalSec into throughput (Mbit/s) and average
// transmit power (mW), and resets the accumulators.
func (ns *NodeStatistics) sample(intervalSec float64) (throughput float64, power float64) {
	throughput = energy.ThroughputMbps(ns.counter.TotalBytes(), intervalSec)
	power = ns.integrator.TotalEnergy() / intervalSec
	ns.counter.Reset()
	ns.integrator.Reset()
	return
}
