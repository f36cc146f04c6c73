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
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Standard is the 802.11 PHY standard of a device.
type Standard string

const (
	Standard80211a Standard = "802.11a"
	Standard80211b Standard = "802.11b"
	Standard80211g Standard = "802.11g"
)

// ParseStandard accepts "802.11a", "11a" or "a", and likewise for b and g.
func ParseStandard(s string) (Standard, error) {
	switch strings.TrimPrefix(strings.TrimPrefix(strings.ToLower(s), "802."), "11") {
	case "a":
		return Standard80211a, nil
	case "b":
		return Standard80211b, nil
	case "g":
		return Standard80211g, nil
	default:
		return "", errors.Errorf("unsupported standard: %s", s)
	}
}

func (s Standard) String() string {
	return string(s)
}

// Modes returns the PHY modes of the standard, in order of increasing data rate.
func (s Standard) Modes() []Mode {
	switch s {
	case Standard80211a:
		return append([]Mode(nil), ofdmModes...)
	case Standard80211b:
		return append([]Mode(nil), dsssModes...)
	case Standard80211g:
		return append(append([]Mode(nil), dsssModes...), erpOfdmModes...)
	default:
		return nil
	}
}

// DefaultFrequency returns the center frequency (MHz) of the first channel of the standard's band.
func (s Standard) DefaultFrequency() int {
	if s == Standard80211a {
		return 5180
	}
	return 2412
}

func (s Standard) DefaultChannelWidth() int {
	if s == Standard80211b {
		return 22
	}
	return 20
}

func (s Standard) isValidChannelWidth(width int) bool {
	switch s {
	case Standard80211a:
		return width == 5 || width == 10 || width == 20
	case Standard80211b:
		return width == 22
	case Standard80211g:
		return width == 20
	default:
		return false
	}
}

func (s Standard) SlotTime() time.Duration {
	if s == Standard80211b {
		return 20 * time.Microsecond
	}
	return 9 * time.Microsecond
}

func (s Standard) Sifs() time.Duration {
	if s == Standard80211a {
		return 16 * time.Microsecond
	}
	return 10 * time.Microsecond
}

func (s Standard) Difs() time.Duration {
	return s.Sifs() + 2*s.SlotTime()
}

func (s Standard) CwMin() int {
	if s == Standard80211b {
		return 31
	}
	return 15
}

func (s Standard) CwMax() int {
	return 1023
}
