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

// Package prng provides the seeded random sources of a simulation run.
package prng

import (
	"math/rand"
	"time"
)

type RandomSeed int64

var (
	rootRandGenerator       *rand.Rand
	radioModelSeedGenerator *rand.Rand
	backoffSeedGenerator    *rand.Rand
	unitRandGenerator       *rand.Rand
	initializedRootSeed     int64
)

func init() {
	Init(1)
}

// Init initializes the prng package, either with a fixed PRNG seed (rootSeed != 0) or a 'random' time-based PRNG
// seed (if rootSeed == 0). Runs with the same non-zero root seed draw the same random values.
func Init(rootSeed int64) {
	if rootSeed == 0 {
		rootSeed = time.Now().UnixNano()
	}
	initializedRootSeed = rootSeed
	rootRandGenerator = rand.New(rand.NewSource(rootSeed))

	radioModelSeedGenerator = rand.New(rand.NewSource(rootSeed + rootRandGenerator.Int63n(1e10)))
	backoffSeedGenerator = rand.New(rand.NewSource(rootSeed + rootRandGenerator.Int63n(1e10)))
	unitRandGenerator = rand.New(rand.NewSource(rootSeed + rootRandGenerator.Int63n(1e10)))
}

// RootSeed returns the seed that the package was last initialized with.
func RootSeed() int64 {
	return initializedRootSeed
}

// NewRadioModelRandomSeed generates unique random-seeds for newly created radio models.
func NewRadioModelRandomSeed() RandomSeed {
	return RandomSeed(radioModelSeedGenerator.Int63())
}

// NewBackoffRandom returns a random source for the contention backoff of a newly created device.
func NewBackoffRandom() *rand.Rand {
	return rand.New(rand.NewSource(backoffSeedGenerator.Int63()))
}

// NewUnitRandom generates a new random unit [0, 1) float, which can be used as a random probability.
func NewUnitRandom() float64 {
	return unitRandGenerator.Float64()
}
