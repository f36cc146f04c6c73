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

package radiomodel

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	. "github.com/wifisim/distsweep/types"
)

func TestDbmToLinear(t *testing.T) {
	assert.Equal(t, 1.0, DbmToLinear(0))
	assert.InDelta(t, 1e-4, DbmToLinear(-40), 1e-15)
	assert.InDelta(t, 1e-7, DbmToLinear(-70), 1e-18)

	for _, p := range []DbValue{-100, -70.5, -40, 0, 16.02, 30} {
		assert.InDelta(t, p, LinearToDbm(DbmToLinear(p)), 1e-9, "round trip of %v dBm", p)
	}
}

func TestNewParams(t *testing.T) {
	params, err := NewParams(PathlossItu, 5180)
	assert.Nil(t, err)
	assert.Equal(t, 30.0, params.ExponentDb)
	assert.Equal(t, 46.29, params.FixedLossDb)

	params, err = NewParams(Pathloss3gpp, 2400)
	assert.Nil(t, err)
	assert.Equal(t, 17.3, params.ExponentDb)
	assert.Equal(t, 40.0, params.FixedLossDb)

	_, err = NewParams("free-space", 5180)
	assert.NotNil(t, err)
	_, err = NewParams(PathlossItu, 0)
	assert.NotNil(t, err)
}

func TestModel_Rssi(t *testing.T) {
	params, _ := NewParams(PathlossItu, 5180)
	rm := NewModel(params, 1)
	ap := Vector{}

	assert.Equal(t, -40.0, rm.Rssi(-40, ap, ap))
	assert.InDelta(t, -40.0-46.29, rm.Rssi(-40, ap, Vector{X: 1}), 1e-9)
	assert.InDelta(t, -40.0-46.29-30.0, rm.Rssi(-40, ap, Vector{X: 10}), 1e-9)
	// the loss is symmetric
	assert.Equal(t, rm.Pathloss(ap, Vector{X: 3, Y: 4}), rm.Pathloss(Vector{X: 3, Y: 4}, ap))
}

func TestModel_Snr(t *testing.T) {
	params, _ := NewParams(PathlossItu, 5180)
	rm := NewModel(params, 1)
	nf := rm.NoiseFloor(20)
	assert.InDelta(t, -174.0+10*math.Log10(20e6)+7.0, nf, 1e-9)
	assert.InDelta(t, 10.0, rm.Snr(nf+10.0, 20), 1e-9)
}

func TestShadowFading(t *testing.T) {
	params, _ := NewParams(Pathloss3gpp, 5180)
	rm1 := NewModel(params, 42)
	rm2 := NewModel(params, 42)
	a, b := Vector{}, Vector{X: 7, Y: 2}

	// reproducible for a given seed and link
	assert.Equal(t, rm1.Pathloss(a, b), rm2.Pathloss(a, b))
	assert.Equal(t, rm1.Pathloss(a, b), rm1.Pathloss(b, a))
	assert.NotEqual(t, computePathloss(a.DistanceTo(b), params), rm1.Pathloss(a, b))
}
