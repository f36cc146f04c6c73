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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	. "github.com/wifisim/distsweep/types"
	"github.com/wifisim/distsweep/wifi"
)

type fakePhy struct {
	modes     []wifi.Mode
	durations map[DataRate]time.Duration
}

func (p *fakePhy) NModes() int {
	return len(p.modes)
}

func (p *fakePhy) Mode(i int) wifi.Mode {
	return p.modes[i]
}

func (p *fakePhy) ChannelWidth() int {
	return 20
}

func (p *fakePhy) Frequency() int {
	return 5180
}

func (p *fakePhy) CalculateTxDuration(size int, txv wifi.TxVector, freqMhz int) time.Duration {
	return p.durations[txv.Mode.Rate]
}

func newFakePhy() *fakePhy {
	return &fakePhy{
		modes: []wifi.Mode{
			{Name: "Slow", Rate: 1 * Mbps},
			{Name: "Fast", Rate: 2 * Mbps},
		},
		durations: map[DataRate]time.Duration{
			1 * Mbps: 18530 * time.Microsecond,
			2 * Mbps: 9270 * time.Microsecond,
		},
	}
}

func newTestPhy(t *testing.T, std wifi.Standard) *wifi.Phy {
	phy, err := wifi.NewPhy(wifi.PhyConfig{Standard: std, TxPowerStart: -70, TxPowerEnd: -40, NTxPower: 30})
	assert.Nil(t, err)
	return phy
}

func TestNewDurationTable(t *testing.T) {
	dt, err := NewDurationTable(newTestPhy(t, wifi.Standard80211a), 1420)
	assert.Nil(t, err)
	assert.Equal(t, 1420, dt.PacketSize())
	assert.Equal(t, 232*time.Microsecond, dt.TxTime(54*Mbps))
	assert.Equal(t, 1920*time.Microsecond, dt.TxTime(6*Mbps))

	entries := dt.Entries()
	assert.Len(t, entries, 8)
	assert.Equal(t, 6*Mbps, entries[0].Rate)
	assert.Equal(t, 54*Mbps, entries[7].Rate)

	_, ok := dt.Lookup(11 * Mbps)
	assert.False(t, ok)
	assert.Panics(t, func() {
		dt.TxTime(11 * Mbps)
	})
}

func TestDurationTable_Complete(t *testing.T) {
	for _, std := range []wifi.Standard{wifi.Standard80211a, wifi.Standard80211b, wifi.Standard80211g} {
		phy := newTestPhy(t, std)
		dt, err := NewDurationTable(phy, 1420)
		assert.Nil(t, err)
		for i := 0; i < phy.NModes(); i++ {
			d, ok := dt.Lookup(phy.Mode(i).DataRate(phy.ChannelWidth()))
			assert.True(t, ok, "%s mode %d", std, i)
			assert.True(t, d > 0)
		}
	}
}

func TestNewDurationTable_Errors(t *testing.T) {
	phy := newFakePhy()
	phy.modes = append(phy.modes, wifi.Mode{Name: "Again", Rate: 1 * Mbps})
	_, err := NewDurationTable(phy, 1420)
	assert.ErrorIs(t, err, ErrDuplicateRate)

	_, err = NewDurationTable(newFakePhy(), 0)
	assert.NotNil(t, err)
}

func TestLinkStateTracker(t *testing.T) {
	sta := NewMacAddr(1)
	tr := NewLinkStateTracker()
	_, err := tr.CurrentPower(sta)
	assert.ErrorIs(t, err, ErrUnknownDestination)
	_, err = tr.CurrentRate(sta)
	assert.ErrorIs(t, err, ErrUnknownDestination)

	tr.Seed(sta, -40, 54*Mbps)
	tr.Seed(BroadcastMacAddr, -40, 54*Mbps)
	assert.True(t, tr.Seeded(BroadcastMacAddr))

	tr.PowerChanged(-40, -52.5, sta)
	tr.RateChanged(54*Mbps, 24*Mbps, sta)
	p, err := tr.CurrentPower(sta)
	assert.Nil(t, err)
	assert.Equal(t, DbValue(-52.5), p)
	r, err := tr.CurrentRate(sta)
	assert.Nil(t, err)
	assert.Equal(t, 24*Mbps, r)

	p, _ = tr.CurrentPower(BroadcastMacAddr)
	assert.Equal(t, DbValue(-40), p)

	// no validation of the magnitude
	tr.PowerChanged(-52.5, 20, sta)
	p, _ = tr.CurrentPower(sta)
	assert.Equal(t, DbValue(20), p)
}

func TestLinkStateTracker_UnseededDestination(t *testing.T) {
	tr := NewLinkStateTracker()
	tr.Seed(BroadcastMacAddr, -40, 54*Mbps)

	other := NewMacAddr(7)
	tr.PowerChanged(-40, -45, other)
	p, err := tr.CurrentPower(other)
	assert.Nil(t, err)
	assert.Equal(t, DbValue(-45), p)
	r, err := tr.CurrentRate(other)
	assert.Nil(t, err)
	assert.Equal(t, 54*Mbps, r)

	// only the rate of this one changes; its power comes from broadcast
	another := NewMacAddr(8)
	tr.RateChanged(54*Mbps, 6*Mbps, another)
	p, _ = tr.CurrentPower(another)
	assert.Equal(t, DbValue(-40), p)
	r, _ = tr.CurrentRate(another)
	assert.Equal(t, 6*Mbps, r)
}

func newTestIntegrator(t *testing.T) (*Integrator, *LinkStateTracker) {
	dt, err := NewDurationTable(newFakePhy(), 1420)
	assert.Nil(t, err)
	tr := NewLinkStateTracker()
	tr.Seed(NewMacAddr(1), -40, 1*Mbps)
	return NewIntegrator(tr, dt), tr
}

func TestIntegrator_DataFrame(t *testing.T) {
	in, _ := newTestIntegrator(t)
	in.FrameTxBegin(NewMacAddr(1), FrameTypeData, 1456)
	assert.InDelta(t, 1.853e-6, in.TotalEnergy(), 1e-15)
	assert.InDelta(t, 0.01853, in.TotalTime(), 1e-12)
	assert.Equal(t, uint64(1), in.Frames())

	in.Reset()
	assert.Equal(t, 0.0, in.TotalEnergy())
	assert.Equal(t, 0.0, in.TotalTime())
	assert.Equal(t, uint64(1), in.Frames())
}

func TestIntegrator_FollowsLinkState(t *testing.T) {
	in, tr := newTestIntegrator(t)
	sta := NewMacAddr(1)
	tr.PowerChanged(-40, -30, sta)
	tr.RateChanged(1*Mbps, 2*Mbps, sta)
	in.FrameTxBegin(sta, FrameTypeData, 1456)
	assert.InDelta(t, 1e-3*0.00927, in.TotalEnergy(), 1e-15)
}

func TestIntegrator_IgnoresOtherFrames(t *testing.T) {
	in, _ := newTestIntegrator(t)
	in.FrameTxBegin(NewMacAddr(1), FrameTypeControl, 14)
	in.FrameTxBegin(BroadcastMacAddr, FrameTypeMgmt, 100)
	assert.Equal(t, 0.0, in.TotalEnergy())
	assert.Equal(t, 0.0, in.TotalTime())
	assert.Equal(t, uint64(0), in.Frames())
}

func TestIntegrator_UnseededDestination(t *testing.T) {
	in, _ := newTestIntegrator(t)
	assert.Panics(t, func() {
		in.FrameTxBegin(NewMacAddr(7), FrameTypeData, 1456)
	})
}

func TestThroughputCounter(t *testing.T) {
	c := NewThroughputCounter()
	for i := 0; i < 1000; i++ {
		c.BytesReceived(1000, NewMacAddr(0))
	}
	assert.Equal(t, uint64(1000000), c.TotalBytes())
	assert.Equal(t, 8.0, ThroughputMbps(c.TotalBytes(), 1))

	c.Reset()
	assert.Equal(t, 0.0, ThroughputMbps(c.TotalBytes(), 1))
	assert.Equal(t, uint64(1000000), c.RunBytes())
}
