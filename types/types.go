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

// Package types holds the value types shared by the simulation substrate and the measurement core.
package types

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

type NodeId = int

const (
	InvalidNodeId NodeId = -1
	ApNodeId      NodeId = 0
)

// DbValue is a value in dB or dBm.
type DbValue = float64

// MacAddr is a 48-bit IEEE 802 MAC address.
type MacAddr [6]byte

var (
	BroadcastMacAddr = MacAddr{0xff, 0xff, 0xff, 0xff, 0xff, 0xff}
	InvalidMacAddr   = MacAddr{}
)

// NewMacAddr returns the locally allocated address of a node, i.e. 00:00:00:00:00:01 for node 0.
func NewMacAddr(nodeid NodeId) MacAddr {
	id := uint64(nodeid) + 1
	var addr MacAddr
	for i := 5; i >= 0; i-- {
		addr[i] = byte(id)
		id >>= 8
	}
	return addr
}

// ParseMacAddr parses the colon-separated hex notation.
func ParseMacAddr(s string) (MacAddr, error) {
	var addr MacAddr
	parts := strings.Split(s, ":")
	if len(parts) != len(addr) {
		return InvalidMacAddr, errors.Errorf("invalid MAC address: %s", s)
	}
	for i, p := range parts {
		b, err := strconv.ParseUint(p, 16, 8)
		if err != nil || len(p) != 2 {
			return InvalidMacAddr, errors.Errorf("invalid MAC address: %s", s)
		}
		addr[i] = byte(b)
	}
	return addr, nil
}

func (a MacAddr) IsBroadcast() bool {
	return a == BroadcastMacAddr
}

func (a MacAddr) String() string {
	return fmt.Sprintf("%02x:%02x:%02x:%02x:%02x:%02x", a[0], a[1], a[2], a[3], a[4], a[5])
}

// MarshalText lets a MacAddr be used as a YAML/JSON map key.
func (a MacAddr) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *MacAddr) UnmarshalText(text []byte) error {
	addr, err := ParseMacAddr(string(text))
	if err != nil {
		return err
	}
	*a = addr
	return nil
}

// DataRate is a PHY data rate in bit/s.
type DataRate uint64

const (
	Kbps DataRate = 1000
	Mbps DataRate = 1000 * Kbps
)

// Mbps returns the rate in Mbit/s.
func (r DataRate) Mbps() float64 {
	return float64(r) / float64(Mbps)
}

func (r DataRate) String() string {
	if r%Mbps == 0 {
		return fmt.Sprintf("%dMbps", uint64(r/Mbps))
	}
	return strconv.FormatFloat(r.Mbps(), 'f', -1, 64) + "Mbps"
}

// Vector is a position in meters.
type Vector struct {
	X float64 `yaml:"x" json:"x"`
	Y float64 `yaml:"y" json:"y"`
	Z float64 `yaml:"z" json:"z"`
}

func (v Vector) DistanceTo(o Vector) float64 {
	dx, dy, dz := v.X-o.X, v.Y-o.Y, v.Z-o.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

func (v Vector) String() string {
	return fmt.Sprintf("(%g, %g, %g)", v.X, v.Y, v.Z)
}

// FrameType is the 802.11 frame type of a transmitted frame.
type FrameType int

const (
	FrameTypeMgmt FrameType = iota
	FrameTypeControl
	FrameTypeData
)

func (t FrameType) String() string {
	switch t {
	case FrameTypeMgmt:
		return "mgmt"
	case FrameTypeControl:
		return "ctrl"
	case FrameTypeData:
		return "data"
	default:
		return fmt.Sprintf("FrameType(%d)", int(t))
	}
}
