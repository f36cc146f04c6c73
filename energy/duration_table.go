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

// Package energy integrates transmit-power and byte-count notifications into energy and throughput totals.
package energy

import (
	"time"

	"github.com/pkg/errors"

	"github.com/wifisim/distsweep/logger"
	. "github.com/wifisim/distsweep/types"
	"github.com/wifisim/distsweep/wifi"
)

var ErrDuplicateRate = errors.New("duplicate data rate in PHY mode list")

// PhyInfo is the part of a PHY needed to compute frame airtimes.
type PhyInfo interface {
	NModes() int
	Mode(i int) wifi.Mode
	ChannelWidth() int
	Frequency() int
	CalculateTxDuration(size int, txv wifi.TxVector, freqMhz int) time.Duration
}

// DurationEntry is the airtime of the reference packet at one data rate.
type DurationEntry struct {
	Duration time.Duration
	Rate     DataRate
}

// DurationTable maps each data rate of a PHY to the airtime of a fixed-size packet. It is immutable once built.
type DurationTable struct {
	packetSize int
	entries    []DurationEntry
	byRate     map[DataRate]time.Duration
}

// NewDurationTable builds the table from every mode of phy, using a long preamble and the PHY's channel width.
func NewDurationTable(phy PhyInfo, packetSize int) (*DurationTable, error) {
	if packetSize <= 0 {
		return nil, errors.Errorf("invalid packet size %d", packetSize)
	}

	dt := &DurationTable{
		packetSize: packetSize,
		entries:    make([]DurationEntry, 0, phy.NModes()),
		byRate:     map[DataRate]time.Duration{},
	}
	width := phy.ChannelWidth()
	for i := 0; i < phy.NModes(); i++ {
		mode := phy.Mode(i)
		txv := wifi.TxVector{
			Mode:         mode,
			Preamble:     wifi.PreambleLong,
			ChannelWidth: width,
		}
		rate := mode.DataRate(width)
		if _, ok := dt.byRate[rate]; ok {
			return nil, errors.Wrapf(ErrDuplicateRate, "mode %s: %s", mode, rate)
		}
		d := phy.CalculateTxDuration(packetSize, txv, phy.Frequency())
		logger.Debugf("%d %s %.6fs %s", i, mode, d.Seconds(), rate)
		dt.entries = append(dt.entries, DurationEntry{Duration: d, Rate: rate})
		dt.byRate[rate] = d
	}
	return dt, nil
}

func (dt *DurationTable) PacketSize() int {
	return dt.packetSize
}

func (dt *DurationTable) Lookup(rate DataRate) (time.Duration, bool) {
	d, ok := dt.byRate[rate]
	return d, ok
}

// TxTime returns the airtime at rate. A rate missing from the table aborts the run.
func (dt *DurationTable) TxTime(rate DataRate) time.Duration {
	d, ok := dt.byRate[rate]
	if !ok {
		logger.Panicf("data rate %s not in duration table", rate)
	}
	return d
}

// Entries returns the table in PHY mode order.
func (dt *DurationTable) Entries() []DurationEntry {
	entries := make([]DurationEntry, len(dt.entries))
	copy(entries, dt.entries)
	return entries
}
