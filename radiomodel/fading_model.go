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
	"math/rand"

	"github.com/wifisim/distsweep/logger"
	"github.com/wifisim/distsweep/prng"
	. "github.com/wifisim/distsweep/types"
)

const (
	initialCacheSize = 1000
	maxCacheSize     = 1000000
	fadingGridMeters = 0.5
)

type fadingModel struct {
	rndSeed   int64
	shFadeMap map[int64]DbValue
}

func newFadingModel(seed prng.RandomSeed) *fadingModel {
	return &fadingModel{
		rndSeed:   int64(seed),
		shFadeMap: make(map[int64]DbValue, initialCacheSize),
	}
}

// computeFading calculates shadow fading (SF) for a radio link. SF models a fixed, position-dependent
// attenuation (SF>0) or increase (SF<0) due to multipath and static obstacles. In the dB domain it is
// a normal distribution (mu=0, sigma). The link is symmetric, and the value is fixed per grid cell of
// both end points, so a node that moves across cells sees a new draw.
func (sf *fadingModel) computeFading(src, dst Vector, params *Params) DbValue {
	if params.ShadowFadingSigmaDb <= 0 {
		return 0
	}
	if len(sf.shFadeMap) > maxCacheSize {
		sf.clearCaches()
	}

	seed := sf.rndSeed + calcLinkUID(src, dst)
	if v, ok := sf.shFadeMap[seed]; ok {
		return v
	}
	rnd := rand.New(rand.NewSource(seed))
	v := rnd.NormFloat64() * params.ShadowFadingSigmaDb
	sf.shFadeMap[seed] = v
	return v
}

func (sf *fadingModel) clearCaches() {
	logger.Debugf("radio fading model: purging cache")
	sf.shFadeMap = make(map[int64]DbValue, initialCacheSize)
}

func gridIndex(v float64) uint16 {
	return uint16(int64(math.Floor(v/fadingGridMeters)) + 32768)
}

func calcLinkUID(src, dst Vector) int64 {
	x1, y1 := gridIndex(src.X), gridIndex(src.Y)
	x2, y2 := gridIndex(dst.X), gridIndex(dst.Y)
	// order the end points, so both directions of a link get the same id.
	if x1 > x2 || (x1 == x2 && y1 > y2) {
		x1, y1, x2, y2 = x2, y2, x1, y1
	}
	return int64(x1)<<48 | int64(y1)<<32 | int64(x2)<<16 | int64(y2)
}
