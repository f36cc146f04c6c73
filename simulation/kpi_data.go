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
	. "github.com/wifisim/distsweep/types"
	"github.com/wifisim/distsweep/wifi"
)

type KpiTimeSec struct {
	StartTimeSec float64 `yaml:"start" json:"start"`
	EndTimeSec   float64 `yaml:"end" json:"end"`
	PeriodSec    float64 `yaml:"duration" json:"duration"`
}

type KpiSweep struct {
	Ticks          int     `yaml:"ticks" json:"ticks"`
	MeanThroughput float64 `yaml:"mean_throughput_mbps" json:"mean_throughput_mbps"`
	MeanPower      float64 `yaml:"mean_power_mw" json:"mean_power_mw"`
	FinalPosition  Vector  `yaml:"final_position" json:"final_position"`
}

type KpiTraffic struct {
	PacketsSent     uint64 `yaml:"packets_sent" json:"packets_sent"`
	PacketsDropped  uint64 `yaml:"packets_dropped" json:"packets_dropped"`
	DataFrames      uint64 `yaml:"data_frames" json:"data_frames"`
	BytesReceived   uint64 `yaml:"bytes_received" json:"bytes_received"`
	PacketsReceived uint64 `yaml:"packets_received" json:"packets_received"`
}

type Kpi struct {
	RunId   string                      `yaml:"run_id" json:"run_id"`
	Created string                      `yaml:"created" json:"created"`
	Status  string                      `yaml:"status" json:"status"`
	Manager string                      `yaml:"manager" json:"manager"`
	TimeSec KpiTimeSec                  `yaml:"time_sec" json:"time_sec"`
	Sweep   KpiSweep                    `yaml:"sweep" json:"sweep"`
	Traffic KpiTraffic                  `yaml:"traffic" json:"traffic"`
	Devices map[NodeId]wifi.DeviceStats `yaml:"devices" json:"devices"`
}
