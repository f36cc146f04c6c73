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
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/wifisim/distsweep/event"
	"github.com/wifisim/distsweep/mobility"
	"github.com/wifisim/distsweep/radiomodel"
	. "github.com/wifisim/distsweep/types"
)

type txRecorder struct {
	frames map[FrameType]int
}

func (r *txRecorder) FrameTxBegin(dest MacAddr, frameType FrameType, size int) {
	r.frames[frameType]++
}

type testNetwork struct {
	sim *event.Simulator
	ap  *Device
	sta *Device
	rx  []*Frame
}

func newTestNetwork(t *testing.T, managerType ManagerType, staPos Vector) *testNetwork {
	sim := event.NewSimulator()
	params, err := radiomodel.NewParams(radiomodel.PathlossItu, 5180)
	assert.Nil(t, err)
	ch := NewChannel(radiomodel.NewModel(params, 1))
	phyCfg := PhyConfig{Standard: Standard80211a, TxPowerStart: 0, TxPowerEnd: 16, NTxPower: 17}
	apPhy, err := NewPhy(phyCfg)
	assert.Nil(t, err)
	staPhy, err := NewPhy(phyCfg)
	assert.Nil(t, err)

	n := &testNetwork{sim: sim}
	n.ap, err = NewDevice(DeviceConfig{NodeId: ApNodeId}, apPhy, managerType, sim, ch,
		mobility.NewConstantPosition(Vector{}), rand.New(rand.NewSource(1)))
	assert.Nil(t, err)
	n.sta, err = NewDevice(DeviceConfig{NodeId: 1}, staPhy, ManagerConstant, sim, ch,
		mobility.NewConstantPosition(staPos), rand.New(rand.NewSource(2)))
	assert.Nil(t, err)
	n.sta.SetReceiveCallback(func(f *Frame) {
		n.rx = append(n.rx, f)
	})
	return n
}

func TestDevice_Delivery(t *testing.T) {
	n := newTestNetwork(t, ManagerConstant, Vector{X: 1})
	apTx := &txRecorder{frames: map[FrameType]int{}}
	staTx := &txRecorder{frames: map[FrameType]int{}}
	n.ap.Notifier().Subscribe(apTx)
	n.sta.Notifier().Subscribe(staTx)

	for i := 0; i < 10; i++ {
		assert.True(t, n.ap.Send(1420, n.sta.Address()))
	}
	assert.Nil(t, n.sim.Run(context.Background()))

	assert.Len(t, n.rx, 10)
	assert.Equal(t, 1420, n.rx[0].PayloadSize)
	assert.Equal(t, n.ap.Address(), n.rx[0].Source)
	stats := n.ap.Stats()
	assert.Equal(t, uint64(10), stats.TxDataAttempts)
	assert.Equal(t, uint64(10), stats.TxDataOk)
	assert.Equal(t, uint64(0), stats.TxDataFailed)
	assert.Equal(t, 10, apTx.frames[FrameTypeData])
	assert.Equal(t, 10, staTx.frames[FrameTypeControl])
	assert.Equal(t, uint64(10), n.sta.Stats().RxData)
}

func TestDevice_RetryLimit(t *testing.T) {
	n := newTestNetwork(t, ManagerConstant, Vector{X: 1000})
	apTx := &txRecorder{frames: map[FrameType]int{}}
	n.ap.Notifier().Subscribe(apTx)

	n.ap.Send(1420, n.sta.Address())
	n.ap.Send(1420, n.sta.Address())
	assert.Nil(t, n.sim.Run(context.Background()))

	assert.Len(t, n.rx, 0)
	stats := n.ap.Stats()
	assert.Equal(t, uint64(2*(DefaultRetryLimit+1)), stats.TxDataAttempts)
	assert.Equal(t, uint64(2*(DefaultRetryLimit+1)), stats.TxDataFailed)
	assert.Equal(t, uint64(2), stats.TxDataDropped)
	assert.Equal(t, 2*(DefaultRetryLimit+1), apTx.frames[FrameTypeData])
}

func TestDevice_QueueLimit(t *testing.T) {
	n := newTestNetwork(t, ManagerConstant, Vector{X: 1})
	accepted := 0
	for i := 0; i < DefaultQueueLimit+10; i++ {
		if n.ap.Send(1420, n.sta.Address()) {
			accepted++
		}
	}
	// the first frame left the queue for transmission right away
	assert.Equal(t, DefaultQueueLimit+1, accepted)
	assert.Equal(t, uint64(9), n.ap.Stats().QueueDrops)
}

func TestDevice_Beacons(t *testing.T) {
	n := newTestNetwork(t, ManagerConstant, Vector{X: 1})
	apTx := &txRecorder{frames: map[FrameType]int{}}
	n.ap.Notifier().Subscribe(apTx)

	n.ap.StartBeacons(DefaultBeaconInterval)
	n.sim.StopAt(time.Second)
	assert.Nil(t, n.sim.Run(context.Background()))

	assert.Equal(t, 9, apTx.frames[FrameTypeMgmt])
	assert.Equal(t, uint64(9), n.ap.Stats().TxBeacons)
	assert.Equal(t, uint64(9), n.sta.Stats().RxBeacons)
	assert.Len(t, n.rx, 0)
}

func TestDevice_ParfAdaptsToLink(t *testing.T) {
	n := newTestNetwork(t, ManagerParf, Vector{X: 40})
	rec := &changeRecorder{}
	n.ap.Notifier().Subscribe(rec)

	for i := 0; i < 50; i++ {
		n.ap.Send(1420, n.sta.Address())
	}
	assert.Nil(t, n.sim.Run(context.Background()))

	assert.Len(t, n.rx, 50)
	assert.True(t, len(rec.rates) > 1)
	assert.Equal(t, 54*Mbps, rec.rates[0])
	assert.True(t, n.ap.Stats().TxDataFailed > 0)
}
