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
	"time"

	"github.com/pkg/errors"

	. "github.com/wifisim/distsweep/types"
)

type Preamble int

const (
	PreambleLong Preamble = iota
	PreambleShort
)

// TxVector holds the transmission parameters of a single frame.
type TxVector struct {
	Mode         Mode
	Preamble     Preamble
	ChannelWidth int
	TxPowerLevel int
}

// PhyConfig configures a Phy. Zero channel width and frequency select the standard's defaults.
type PhyConfig struct {
	Standard     Standard
	ChannelWidth int
	FrequencyMhz int
	TxPowerStart DbValue // lowest transmit power level
	TxPowerEnd   DbValue // highest transmit power level
	NTxPower     int     // number of transmit power levels
}

// Phy describes the PHY of a device: its modes, channel and transmit power levels.
type Phy struct {
	cfg   PhyConfig
	modes []Mode
}

func NewPhy(cfg PhyConfig) (*Phy, error) {
	modes := cfg.Standard.Modes()
	if len(modes) == 0 {
		return nil, errors.Errorf("unsupported standard: %s", cfg.Standard)
	}
	if cfg.ChannelWidth == 0 {
		cfg.ChannelWidth = cfg.Standard.DefaultChannelWidth()
	}
	if !cfg.Standard.isValidChannelWidth(cfg.ChannelWidth) {
		return nil, errors.Errorf("channel width %d MHz not supported by %s", cfg.ChannelWidth, cfg.Standard)
	}
	if cfg.FrequencyMhz == 0 {
		cfg.FrequencyMhz = cfg.Standard.DefaultFrequency()
	}
	if cfg.NTxPower < 1 {
		return nil, errors.Errorf("invalid number of tx power levels: %d", cfg.NTxPower)
	}
	if cfg.TxPowerStart > cfg.TxPowerEnd {
		return nil, errors.Errorf("tx power start %.2f dBm above tx power end %.2f dBm", cfg.TxPowerStart, cfg.TxPowerEnd)
	}
	if cfg.NTxPower == 1 && cfg.TxPowerStart != cfg.TxPowerEnd {
		return nil, errors.Errorf("a single tx power level requires tx power start == tx power end")
	}
	return &Phy{
		cfg:   cfg,
		modes: modes,
	}, nil
}

func (p *Phy) Standard() Standard {
	return p.cfg.Standard
}

func (p *Phy) ChannelWidth() int {
	return p.cfg.ChannelWidth
}

func (p *Phy) Frequency() int {
	return p.cfg.FrequencyMhz
}

func (p *Phy) NModes() int {
	return len(p.modes)
}

func (p *Phy) Mode(i int) Mode {
	return p.modes[i]
}

func (p *Phy) TxPowerStart() DbValue {
	return p.cfg.TxPowerStart
}

func (p *Phy) TxPowerEnd() DbValue {
	return p.cfg.TxPowerEnd
}

func (p *Phy) NTxPower() int {
	return p.cfg.NTxPower
}

// MaxPowerLevel returns the index of the highest transmit power level.
func (p *Phy) MaxPowerLevel() int {
	return p.cfg.NTxPower - 1
}

// PowerForLevel returns the transmit power (dBm) of a power level, spaced evenly between start and end.
func (p *Phy) PowerForLevel(level int) DbValue {
	if p.cfg.NTxPower == 1 {
		return p.cfg.TxPowerStart
	}
	step := (p.cfg.TxPowerEnd - p.cfg.TxPowerStart) / DbValue(p.cfg.NTxPower-1)
	return p.cfg.TxPowerStart + DbValue(level)*step
}

// AckMode returns the mode of a control response to a frame sent in mode m: the fastest mandatory mode
// not faster than m.
func (p *Phy) AckMode(m Mode) Mode {
	rate := m.DataRate(p.cfg.ChannelWidth)
	ack := p.modes[0]
	for _, mode := range p.modes {
		if mode.Mandatory && mode.Class == m.Class && mode.DataRate(p.cfg.ChannelWidth) <= rate {
			ack = mode
		}
	}
	return ack
}

// CalculateTxDuration returns the airtime of a frame of size bytes sent with txv on frequency freqMhz.
func (p *Phy) CalculateTxDuration(size int, txv TxVector, freqMhz int) time.Duration {
	width := txv.ChannelWidth
	if width == 0 {
		width = p.cfg.ChannelWidth
	}
	switch txv.Mode.Class {
	case ModulationOfdm:
		return calculateOfdmTxDuration(size, txv.Mode, width, p.cfg.Standard == Standard80211g && freqMhz < 3000)
	default:
		return calculateDsssTxDuration(size, txv.Mode, txv.Preamble)
	}
}

func calculateOfdmTxDuration(size int, mode Mode, width int, signalExtension bool) time.Duration {
	scale := time.Duration(1)
	if width < 20 {
		scale = time.Duration(20 / width)
	}
	symbol := 4 * time.Microsecond * scale
	preamble := 16 * time.Microsecond * scale
	header := 4 * time.Microsecond * scale

	// SERVICE field, PSDU and tail bits
	nbits := 16 + 8*size + 6
	nsymbols := (nbits + mode.Ndbps - 1) / mode.Ndbps
	d := preamble + header + time.Duration(nsymbols)*symbol
	if signalExtension {
		d += 6 * time.Microsecond
	}
	return d
}

func calculateDsssTxDuration(size int, mode Mode, preamble Preamble) time.Duration {
	d := 144*time.Microsecond + 48*time.Microsecond
	if preamble == PreambleShort && mode.Rate > 1*Mbps {
		d = 72*time.Microsecond + 24*time.Microsecond
	}
	rate := uint64(mode.Rate)
	payloadUs := (uint64(size)*8*1000000 + rate - 1) / rate
	return d + time.Duration(payloadUs)*time.Microsecond
}
