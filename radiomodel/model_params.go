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

	"github.com/pkg/errors"
	. "github.com/wifisim/distsweep/types"
)

const (
	defaultNoiseFigureDb DbValue = 7.0
	thermalNoiseDbmPerHz DbValue = -174.0
	minPathlossDistance          = 0.01 // meters
)

type PathlossModel string

const (
	PathlossItu  PathlossModel = "itu"
	Pathloss3gpp PathlossModel = "3gpp"
)

// Params stores the parameters of the radio model.
type Params struct {
	Model               PathlossModel
	FrequencyMhz        float64 // carrier frequency
	ExponentDb          DbValue // the exponent (dB) in the distance-dependent term
	FixedLossDb         DbValue // the fixed loss (dB) term
	NoiseFigureDb       DbValue // receiver noise figure, added to the thermal noise
	ShadowFadingSigmaDb DbValue // sigma (stddev) parameter for Shadow Fading (SF), in dB. Zero disables it.
}

// NewParams gets the parameters for the given path loss model at the given carrier frequency.
func NewParams(model PathlossModel, frequencyMhz float64) (*Params, error) {
	if frequencyMhz <= 0 {
		return nil, errors.Errorf("invalid carrier frequency: %v MHz", frequencyMhz)
	}
	params := &Params{
		Model:         model,
		FrequencyMhz:  frequencyMhz,
		NoiseFigureDb: defaultNoiseFigureDb,
	}
	switch model {
	case PathlossItu:
		setIndoorModelParamsItu(params)
	case Pathloss3gpp:
		setIndoorModelParams3gpp(params)
	default:
		return nil, errors.Errorf("unknown pathloss model: %s", model)
	}
	return params, nil
}

// ITU-R P.1238 indoor model, with the distance power loss coefficient of an office environment.
func setIndoorModelParamsItu(params *Params) {
	params.ExponentDb = 30.0
	params.FixedLossDb = paround(20.0*math.Log10(params.FrequencyMhz) - 28.0)
}

// see 3GPP TR 38.901 V17.0.0, Table 7.4.1-1: Pathloss models (InH-Office LOS).
func setIndoorModelParams3gpp(params *Params) {
	params.ExponentDb = 17.3
	params.FixedLossDb = paround(32.4 + 20*math.Log10(params.FrequencyMhz/1000.0))
	params.ShadowFadingSigmaDb = 3.0
}
