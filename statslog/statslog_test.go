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

package statslog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wifisim/distsweep/sweep"
	. "github.com/wifisim/distsweep/types"
)

func TestLogger(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "0_stats.csv")
	require.Nil(t, os.WriteFile(fn, []byte("stale content\n"), 0644))

	sl, err := New(fn)
	require.Nil(t, err)
	sl.OnSample(sweep.Sample{
		Tick:       1,
		Time:       1500 * time.Millisecond,
		Position:   Vector{X: -1.3, Y: 3},
		Throughput: 28.75,
		Power:      1e-4,
	})
	sl.OnSample(sweep.Sample{Tick: 2, Time: 2500 * time.Millisecond, Position: Vector{X: -1.2, Y: 3}})
	sl.Close()
	assert.Equal(t, 2, sl.Entries())

	// writes after close are dropped
	sl.OnSample(sweep.Sample{Tick: 3})
	assert.Equal(t, 2, sl.Entries())

	data, err := os.ReadFile(fn)
	require.Nil(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "timeSec,tick,x,y,z,throughputMbps,powerMw", lines[0])
	assert.Equal(t, "1.500000,1,-1.3,3,0,28.750000,0.0001", lines[1])
	assert.Equal(t, "2.500000,2,-1.2,3,0,0.000000,0", lines[2])
}

func TestLogger_BadPath(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "missing", "stats.csv"))
	assert.NotNil(t, err)
}

func TestLogger_WriteErrorDisablesLog(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "1_stats.csv")
	sl, err := New(fn)
	require.Nil(t, err)

	sl.OnSample(sweep.Sample{Tick: 1})
	assert.Equal(t, 1, sl.Entries())

	// pull the file out from under the logger so the next write fails
	require.Nil(t, sl.logFile.Close())
	sl.OnSample(sweep.Sample{Tick: 2})
	assert.Equal(t, 1, sl.Entries())
	assert.False(t, sl.isFileEnabled)

	assert.Equal(t, ErrLogClosed, sl.writeToLogFile("x"))
	sl.OnSample(sweep.Sample{Tick: 3})
	assert.Equal(t, 1, sl.Entries())
}
