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

// Package radiomodel computes received signal strength and SNR of Wi-Fi links.
package radiomodel

import (
	"github.com/wifisim/distsweep/prng"
	. "github.com/wifisim/distsweep/types"
)

// Model computes link budgets for node positions.
type Model struct {
	params *Params
	fading *fadingModel
}

func NewModel(params *Params, seed prng.RandomSeed) *Model {
	return &Model{
		params: params,
		fading: newFadingModel(seed),
	}
}

func (rm *Model) Params() *Params {
	return rm.params
}

// Pathloss returns the loss (dB) over the distance between src and dst, including shadow fading.
func (rm *Model) Pathloss(src, dst Vector) DbValue {
	return computePathloss(src.DistanceTo(dst), rm.params) + rm.fading.computeFading(src, dst, rm.params)
}

// Rssi returns the received power (dBm) at dst of a transmission with txPower (dBm) from src.
func (rm *Model) Rssi(txPower DbValue, src, dst Vector) DbValue {
	return txPower - rm.Pathloss(src, dst)
}

// NoiseFloor returns the receiver noise power (dBm) for the channel width.
func (rm *Model) NoiseFloor(channelWidthMhz int) DbValue {
	return computeNoiseFloor(channelWidthMhz, rm.params)
}

// Snr returns the signal-to-noise ratio (dB) of a received power over the channel width.
func (rm *Model) Snr(rssi DbValue, channelWidthMhz int) DbValue {
	return rssi - rm.NoiseFloor(channelWidthMhz)
}
