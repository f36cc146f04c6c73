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
	"github.com/pkg/errors"

	"github.com/wifisim/distsweep/notify"
	. "github.com/wifisim/distsweep/types"
)

type ManagerType string

const (
	ManagerParf     ManagerType = "parf"
	ManagerConstant ManagerType = "constant"
)

// IsPowerAdapting reports whether the manager changes the transmit power per destination.
func (t ManagerType) IsPowerAdapting() bool {
	return t == ManagerParf
}

// ChangeNotifier receives the power and rate changes that a station manager decides.
type ChangeNotifier interface {
	notify.PowerChangeListener
	notify.RateChangeListener
}

// StationManager picks the transmission parameters per remote station, and learns from the outcome of
// each data transmission.
type StationManager interface {
	DataTxVector(dest MacAddr) TxVector
	ReportDataOk(dest MacAddr, dataSnr DbValue)
	ReportDataFailed(dest MacAddr)
	ReportFinalDataFailed(dest MacAddr)
}

// NewStationManager creates a manager of the given type for phy, reporting changes to notifier.
func NewStationManager(t ManagerType, phy *Phy, notifier ChangeNotifier) (StationManager, error) {
	switch t {
	case ManagerParf:
		return NewParfManager(phy, notifier), nil
	case ManagerConstant:
		return NewConstantManager(phy, notifier, 0, phy.MaxPowerLevel()), nil
	default:
		return nil, errors.Errorf("unknown station manager: %s", t)
	}
}

// ConstantManager transmits all data with one fixed mode and power level.
type ConstantManager struct {
	phy        *Phy
	notifier   ChangeNotifier
	modeIndex  int
	powerLevel int
	announced  map[MacAddr]bool
}

func NewConstantManager(phy *Phy, notifier ChangeNotifier, modeIndex int, powerLevel int) *ConstantManager {
	return &ConstantManager{
		phy:        phy,
		notifier:   notifier,
		modeIndex:  modeIndex,
		powerLevel: powerLevel,
		announced:  map[MacAddr]bool{},
	}
}

// DataTxVector announces the fixed power and rate once per destination, as a change from the PHY
// defaults, before the first data frame.
func (m *ConstantManager) DataTxVector(dest MacAddr) TxVector {
	mode := m.phy.Mode(m.modeIndex)
	if !m.announced[dest] {
		m.announced[dest] = true
		width := m.phy.ChannelWidth()
		m.notifier.PowerChanged(m.phy.TxPowerEnd(), m.phy.PowerForLevel(m.powerLevel), dest)
		m.notifier.RateChanged(m.phy.Mode(0).DataRate(width), mode.DataRate(width), dest)
	}
	return TxVector{
		Mode:         mode,
		Preamble:     PreambleLong,
		ChannelWidth: m.phy.ChannelWidth(),
		TxPowerLevel: m.powerLevel,
	}
}

func (m *ConstantManager) ReportDataOk(dest MacAddr, dataSnr DbValue) {}

func (m *ConstantManager) ReportDataFailed(dest MacAddr) {}

func (m *ConstantManager) ReportFinalDataFailed(dest MacAddr) {}
