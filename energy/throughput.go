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

package energy

import (
	. "github.com/wifisim/distsweep/types"
)

// ThroughputCounter counts received bytes over a sampling interval.
type ThroughputCounter struct {
	bytes uint64
	total uint64
}

func NewThroughputCounter() *ThroughputCounter {
	return &ThroughputCounter{}
}

func (c *ThroughputCounter) BytesReceived(n int, from MacAddr) {
	c.bytes += uint64(n)
	c.total += uint64(n)
}

// TotalBytes returns the bytes received since the last Reset.
func (c *ThroughputCounter) TotalBytes() uint64 {
	return c.bytes
}

// RunBytes returns the bytes received since the counter was created.
func (c *ThroughputCounter) RunBytes() uint64 {
	return c.total
}

func (c *ThroughputCounter) Reset() {
	c.bytes = 0
}

// ThroughputMbps converts a byte count received over intervalSec seconds into megabits per second.
func ThroughputMbps(bytes uint64, intervalSec float64) float64 {
	return float64(bytes) * 8.0 / (1000000 * intervalSec)
}
