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
	"github.com/wifisim/distsweep/logger"
	. "github.com/wifisim/distsweep/types"
)

const (
	DefaultParfSuccessThreshold = 10
	DefaultParfAttemptThreshold = 15
)

type parfStation struct {
	nAttempt           int
	nSuccess           int
	nFail              int
	usingRecoveryRate  bool
	usingRecoveryPower bool
	rateIndex          int
	prevRateIndex      int
	powerLevel         int
	prevPowerLevel     int
}

// ParfManager implements Power-controlled Auto Rate Fallback. It raises the rate after a run of
// successes, and lowers the power once at the highest rate. Failures first restore power, then fall
// back in rate. A step up that fails right away is undone.
type ParfManager struct {
	phy              *Phy
	notifier         ChangeNotifier
	stations         map[MacAddr]*parfStation
	SuccessThreshold int
	AttemptThreshold int
	minPower         int
	maxPower         int
}

func NewParfManager(phy *Phy, notifier ChangeNotifier) *ParfManager {
	return &ParfManager{
		phy:              phy,
		notifier:         notifier,
		stations:         map[MacAddr]*parfStation{},
		SuccessThreshold: DefaultParfSuccessThreshold,
		AttemptThreshold: DefaultParfAttemptThreshold,
		minPower:         0,
		maxPower:         phy.MaxPowerLevel(),
	}
}

// station returns the state of dest, starting it at the highest rate and power on first use.
func (m *ParfManager) station(dest MacAddr) *parfStation {
	st := m.stations[dest]
	if st != nil {
		return st
	}

	st = &parfStation{
		rateIndex:      m.phy.NModes() - 1,
		prevRateIndex:  m.phy.NModes() - 1,
		powerLevel:     m.maxPower,
		prevPowerLevel: m.maxPower,
	}
	m.stations[dest] = st

	width := m.phy.ChannelWidth()
	power := m.phy.PowerForLevel(st.powerLevel)
	rate := m.phy.Mode(st.rateIndex).DataRate(width)
	m.notifier.PowerChanged(m.phy.PowerForLevel(m.maxPower), power, dest)
	m.notifier.RateChanged(rate, rate, dest)
	return st
}

func (m *ParfManager) DataTxVector(dest MacAddr) TxVector {
	st := m.station(dest)
	width := m.phy.ChannelWidth()

	if st.prevPowerLevel != st.powerLevel {
		m.notifier.PowerChanged(m.phy.PowerForLevel(st.prevPowerLevel), m.phy.PowerForLevel(st.powerLevel), dest)
		st.prevPowerLevel = st.powerLevel
	}
	if st.prevRateIndex != st.rateIndex {
		m.notifier.RateChanged(m.phy.Mode(st.prevRateIndex).DataRate(width), m.phy.Mode(st.rateIndex).DataRate(width), dest)
		st.prevRateIndex = st.rateIndex
	}

	return TxVector{
		Mode:         m.phy.Mode(st.rateIndex),
		Preamble:     PreambleLong,
		ChannelWidth: width,
		TxPowerLevel: st.powerLevel,
	}
}

func (m *ParfManager) ReportDataOk(dest MacAddr, dataSnr DbValue) {
	st := m.station(dest)
	st.nAttempt++
	st.nSuccess++
	st.nFail = 0
	st.usingRecoveryRate = false
	st.usingRecoveryPower = false

	if st.nSuccess != m.SuccessThreshold && st.nAttempt != m.AttemptThreshold {
		return
	}

	if st.rateIndex < m.phy.NModes()-1 {
		logger.Tracef("parf %s: inc rate", dest)
		st.rateIndex++
		st.usingRecoveryRate = true
	} else {
		// at the highest rate, decrease power
		if st.powerLevel > m.minPower {
			logger.Tracef("parf %s: dec power", dest)
			st.powerLevel--
		}
		st.usingRecoveryPower = true
	}
	st.nAttempt = 0
	st.nSuccess = 0
}

func (m *ParfManager) ReportDataFailed(dest MacAddr) {
	st := m.station(dest)
	st.nAttempt++
	st.nFail++
	st.nSuccess = 0

	switch {
	case st.usingRecoveryRate:
		if st.nFail == 1 && st.rateIndex > 0 {
			logger.Tracef("parf %s: recovery dec rate", dest)
			st.rateIndex--
		}
		st.usingRecoveryRate = false
	case st.usingRecoveryPower:
		if st.nFail == 1 && st.powerLevel < m.maxPower {
			logger.Tracef("parf %s: recovery inc power", dest)
			st.powerLevel++
		}
		st.usingRecoveryPower = false
	default:
		// every second consecutive failure: more power, or a lower rate when at max power
		if (st.nFail-1)%2 == 1 {
			if st.powerLevel == m.maxPower {
				if st.rateIndex > 0 {
					logger.Tracef("parf %s: dec rate", dest)
					st.rateIndex--
				}
			} else {
				logger.Tracef("parf %s: inc power", dest)
				st.powerLevel++
			}
		}
		if st.nFail >= 2 {
			st.nAttempt = 0
		}
	}
}

func (m *ParfManager) ReportFinalDataFailed(dest MacAddr) {}
