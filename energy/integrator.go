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

package energy

import (
	"github.com/wifisim/distsweep/logger"
	"github.com/wifisim/distsweep/radiomodel"
	. "github.com/wifisim/distsweep/types"
)

// Integrator accumulates the energy and airtime of transmitted data frames. Energy is in mW*s, the linear
// transmit power in mW times the airtime of the reference packet at the destination's current rate.
type Integrator struct {
	links       *LinkStateTracker
	table       *DurationTable
	totalEnergy float64
	totalTime   float64
	frames      uint64
}

func NewIntegrator(links *LinkStateTracker, table *DurationTable) *Integrator {
	logger.AssertNotNil(links)
	logger.AssertNotNil(table)
	return &Integrator{
		links: links,
		table: table,
	}
}

// FrameTxBegin accounts one transmitted frame. Frames other than data frames are ignored.
func (in *Integrator) FrameTxBegin(dest MacAddr, frameType FrameType, size int) {
	if frameType != FrameTypeData {
		return
	}

	power, err := in.links.CurrentPower(dest)
	logger.PanicIfError(err)
	rate, err := in.links.CurrentRate(dest)
	logger.PanicIfError(err)

	airtime := in.table.TxTime(rate).Seconds()
	in.totalEnergy += radiomodel.DbmToLinear(power) * airtime
	in.totalTime += airtime
	in.frames++
	logger.Tracef("data frame to %s at %.1f dBm %s, energy %g", dest, power, rate, in.totalEnergy)
}

func (in *Integrator) TotalEnergy() float64 {
	return in.totalEnergy
}

// TotalTime returns the accumulated airtime in seconds.
func (in *Integrator) TotalTime() float64 {
	return in.totalTime
}

func (in *Integrator) Frames() uint64 {
	return in.frames
}

// Reset clears energy and airtime. The frame count is kept for the run totals.
func (in *Integrator) Reset() {
	in.totalEnergy = 0
	in.totalTime = 0
}
