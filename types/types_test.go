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

package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewMacAddr(t *testing.T) {
	assert.Equal(t, "00:00:00:00:00:01", NewMacAddr(ApNodeId).String())
	assert.Equal(t, "00:00:00:00:01:00", NewMacAddr(255).String())
	assert.False(t, NewMacAddr(1).IsBroadcast())
	assert.True(t, BroadcastMacAddr.IsBroadcast())
}

func TestParseMacAddr(t *testing.T) {
	addr, err := ParseMacAddr("ff:ff:ff:ff:ff:ff")
	assert.Nil(t, err)
	assert.Equal(t, BroadcastMacAddr, addr)

	addr, err = ParseMacAddr("00:00:00:00:00:02")
	assert.Nil(t, err)
	assert.Equal(t, NewMacAddr(1), addr)

	_, err = ParseMacAddr("00:00:00:00:02")
	assert.NotNil(t, err)
	_, err = ParseMacAddr("00:00:00:00:00:zz")
	assert.NotNil(t, err)
	_, err = ParseMacAddr("00:00:00:00:00:123")
	assert.NotNil(t, err)
}

func TestMacAddr_UnmarshalText(t *testing.T) {
	var addr MacAddr
	assert.Nil(t, addr.UnmarshalText([]byte("00:00:00:00:00:03")))
	assert.Equal(t, NewMacAddr(2), addr)
	assert.NotNil(t, addr.UnmarshalText([]byte("garbage")))
}

func TestDataRate_String(t *testing.T) {
	assert.Equal(t, "54Mbps", (54 * Mbps).String())
	assert.Equal(t, "5.5Mbps", (5500 * Kbps).String())
	assert.Equal(t, 6.0, (6 * Mbps).Mbps())
}

func TestVector_DistanceTo(t *testing.T) {
	a := Vector{X: 0, Y: 0, Z: 0}
	b := Vector{X: 3, Y: 4, Z: 0}
	assert.Equal(t, 5.0, a.DistanceTo(b))
	assert.Equal(t, 5.0, b.DistanceTo(a))
	assert.Equal(t, "(3, 4, 0)", b.String())
}

func TestFrameType_String(t *testing.T) {
	assert.Equal(t, "data", FrameTypeData.String())
	assert.Equal(t, "mgmt", FrameTypeMgmt.String())
	assert.Equal(t, "ctrl", FrameTypeControl.String())
}
