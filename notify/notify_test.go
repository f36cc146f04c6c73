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

package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	. "github.com/wifisim/distsweep/types"
)

type recorder struct {
	events []string
}

func (r *recorder) PowerChanged(oldPower, newPower DbValue, dest MacAddr) {
	r.events = append(r.events, "power")
}

func (r *recorder) FrameTxBegin(dest MacAddr, frameType FrameType, size int) {
	r.events = append(r.events, "tx:"+frameType.String())
}

type rxRecorder struct {
	total int
}

func (r *rxRecorder) BytesReceived(n int, from MacAddr) {
	r.total += n
}

func TestHub_Subscribe(t *testing.T) {
	h := NewHub()
	r1, r2 := &recorder{}, &recorder{}
	rx := &rxRecorder{}
	assert.True(t, h.Subscribe(r1))
	assert.True(t, h.Subscribe(r2))
	assert.True(t, h.Subscribe(rx))
	assert.True(t, h.Subscribe(LogListener{Name: "ap"}))
	assert.False(t, h.Subscribe(42))

	h.PowerChanged(-40, -41, NewMacAddr(1))
	h.RateChanged(6*Mbps, 54*Mbps, NewMacAddr(1))
	h.FrameTxBegin(NewMacAddr(1), FrameTypeData, 1456)
	h.BytesReceived(1420, NewMacAddr(0))
	h.BytesReceived(1420, NewMacAddr(0))

	assert.Equal(t, []string{"power", "tx:data"}, r1.events)
	assert.Equal(t, r1.events, r2.events)
	assert.Equal(t, 2840, rx.total)
}
