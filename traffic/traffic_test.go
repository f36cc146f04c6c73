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

package traffic

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/wifisim/distsweep/event"
	. "github.com/wifisim/distsweep/types"
	"github.com/wifisim/distsweep/wifi"
)

type fakeSender struct {
	sched *event.Simulator
	times []time.Duration
	limit int
}

func (f *fakeSender) Send(payloadSize int, dest MacAddr) bool {
	if f.limit > 0 && len(f.times) >= f.limit {
		return false
	}
	f.times = append(f.times, f.sched.Now())
	return true
}

func TestOnOffSource(t *testing.T) {
	sim := event.NewSimulator()
	dev := &fakeSender{sched: sim}
	src, err := NewOnOffSource(OnOffConfig{
		DataRate:   1 * Mbps,
		PacketSize: 1250,
		Start:      500 * time.Millisecond,
		Stop:       600 * time.Millisecond,
	}, sim, dev, NewMacAddr(1))
	assert.Nil(t, err)
	assert.Equal(t, 10*time.Millisecond, src.Interval())

	src.Start()
	assert.Nil(t, sim.Run(context.Background()))
	assert.Len(t, dev.times, 10)
	assert.Equal(t, 500*time.Millisecond, dev.times[0])
	assert.Equal(t, 590*time.Millisecond, dev.times[9])
	assert.Equal(t, uint64(10), src.Sent())
}

func TestOnOffSource_Drops(t *testing.T) {
	sim := event.NewSimulator()
	dev := &fakeSender{sched: sim, limit: 4}
	src, err := NewOnOffSource(OnOffConfig{DataRate: 1 * Mbps, PacketSize: 1250, Stop: 100 * time.Millisecond},
		sim, dev, NewMacAddr(1))
	assert.Nil(t, err)
	src.Start()
	assert.Nil(t, sim.Run(context.Background()))
	assert.Equal(t, uint64(4), src.Sent())
	assert.Equal(t, uint64(6), src.Dropped())
}

func TestNewOnOffSource_Invalid(t *testing.T) {
	sim := event.NewSimulator()
	_, err := NewOnOffSource(OnOffConfig{DataRate: 0, PacketSize: 1420}, sim, &fakeSender{}, NewMacAddr(1))
	assert.NotNil(t, err)
	_, err = NewOnOffSource(OnOffConfig{DataRate: Mbps, PacketSize: 0}, sim, &fakeSender{}, NewMacAddr(1))
	assert.NotNil(t, err)
}

type byteCounter struct {
	n int
}

func (b *byteCounter) BytesReceived(n int, from MacAddr) {
	b.n += n
}

func TestPacketSink(t *testing.T) {
	sink := NewPacketSink()
	counter := &byteCounter{}
	sink.Notifier().Subscribe(counter)

	sink.Receive(&wifi.Frame{Type: FrameTypeData, PayloadSize: 1420, Source: NewMacAddr(0)})
	sink.Receive(&wifi.Frame{Type: FrameTypeData, PayloadSize: 580, Source: NewMacAddr(0)})
	assert.Equal(t, uint64(2000), sink.TotalBytes())
	assert.Equal(t, uint64(2), sink.Packets())
	assert.Equal(t, 2000, counter.n)
}
