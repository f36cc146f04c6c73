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

package wifi

import (
	. "github.com/wifisim/distsweep/types"
)

type ModulationClass int

const (
	ModulationDsss ModulationClass = iota
	ModulationOfdm
)

// Mode is a PHY transmission mode.
type Mode struct {
	Name      string
	Class     ModulationClass
	Ndbps     int      // OFDM data bits per symbol
	Rate      DataRate // DSSS data rate, independent of the channel width
	MinSnrDb  DbValue  // the lowest SNR at which a frame in this mode is received
	Mandatory bool
}

// DataRate returns the data rate of the mode on a channel of the given width.
func (m Mode) DataRate(channelWidthMhz int) DataRate {
	if m.Class == ModulationOfdm {
		if channelWidthMhz > 20 {
			channelWidthMhz = 20
		}
		// one symbol per 4 us on a 20 MHz channel
		return DataRate(uint64(m.Ndbps) * 250000 * uint64(channelWidthMhz) / 20)
	}
	return m.Rate
}

func (m Mode) String() string {
	return m.Name
}

var ofdmModes = []Mode{
	{Name: "OfdmRate6Mbps", Class: ModulationOfdm, Ndbps: 24, MinSnrDb: 4, Mandatory: true},
	{Name: "OfdmRate9Mbps", Class: ModulationOfdm, Ndbps: 36, MinSnrDb: 5},
	{Name: "OfdmRate12Mbps", Class: ModulationOfdm, Ndbps: 48, MinSnrDb: 7, Mandatory: true},
	{Name: "OfdmRate18Mbps", Class: ModulationOfdm, Ndbps: 72, MinSnrDb: 9},
	{Name: "OfdmRate24Mbps", Class: ModulationOfdm, Ndbps: 96, MinSnrDb: 12, Mandatory: true},
	{Name: "OfdmRate36Mbps", Class: ModulationOfdm, Ndbps: 144, MinSnrDb: 16},
	{Name: "OfdmRate48Mbps", Class: ModulationOfdm, Ndbps: 192, MinSnrDb: 20},
	{Name: "OfdmRate54Mbps", Class: ModulationOfdm, Ndbps: 216, MinSnrDb: 21},
}

var erpOfdmModes = []Mode{
	{Name: "ErpOfdmRate6Mbps", Class: ModulationOfdm, Ndbps: 24, MinSnrDb: 4, Mandatory: true},
	{Name: "ErpOfdmRate9Mbps", Class: ModulationOfdm, Ndbps: 36, MinSnrDb: 5},
	{Name: "ErpOfdmRate12Mbps", Class: ModulationOfdm, Ndbps: 48, MinSnrDb: 7, Mandatory: true},
	{Name: "ErpOfdmRate18Mbps", Class: ModulationOfdm, Ndbps: 72, MinSnrDb: 9},
	{Name: "ErpOfdmRate24Mbps", Class: ModulationOfdm, Ndbps: 96, MinSnrDb: 12, Mandatory: true},
	{Name: "ErpOfdmRate36Mbps", Class: ModulationOfdm, Ndbps: 144, MinSnrDb: 16},
	{Name: "ErpOfdmRate48Mbps", Class: ModulationOfdm, Ndbps: 192, MinSnrDb: 20},
	{Name: "ErpOfdmRate54Mbps", Class: ModulationOfdm, Ndbps: 216, MinSnrDb: 21},
}

var dsssModes = []Mode{
	{Name: "DsssRate1Mbps", Class: ModulationDsss, Rate: 1 * Mbps, MinSnrDb: 0, Mandatory: true},
	{Name: "DsssRate2Mbps", Class: ModulationDsss, Rate: 2 * Mbps, MinSnrDb: 3, Mandatory: true},
	{Name: "DsssRate5_5Mbps", Class: ModulationDsss, Rate: 5500 * Kbps, MinSnrDb: 6, Mandatory: true},
	{Name: "DsssRate11Mbps", Class: ModulationDsss, Rate: 11 * Mbps, MinSnrDb: 9, Mandatory: true},
}
