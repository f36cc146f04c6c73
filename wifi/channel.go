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
	"github.com/wifisim/distsweep/radiomodel"
	. "github.com/wifisim/distsweep/types"
)

// Channel connects the devices of a simulation through a radio model.
type Channel struct {
	model   *radiomodel.Model
	devices []*Device
	byAddr  map[MacAddr]*Device
}

func NewChannel(model *radiomodel.Model) *Channel {
	return &Channel{
		model:  model,
		byAddr: map[MacAddr]*Device{},
	}
}

func (c *Channel) attach(d *Device) {
	c.devices = append(c.devices, d)
	c.byAddr[d.addr] = d
}

func (c *Channel) Device(addr MacAddr) *Device {
	return c.byAddr[addr]
}

// Snr returns the SNR (dB) at dst of a transmission from src with the given power (dBm).
func (c *Channel) Snr(src, dst *Device, txPower DbValue) DbValue {
	rssi := c.model.Rssi(txPower, src.mobility.Position(), dst.mobility.Position())
	return c.model.Snr(rssi, dst.phy.ChannelWidth())
}
