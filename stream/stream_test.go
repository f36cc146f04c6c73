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

package stream

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/wifisim/distsweep/sweep"
	. "github.com/wifisim/distsweep/types"
)

func testSample(tick int) sweep.Sample {
	return sweep.Sample{
		Tick:       tick,
		Time:       time.Duration(tick) * time.Second,
		Position:   Vector{X: -1.4 + float64(tick), Y: 3},
		Throughput: 28.5,
		Power:      1.25e-4,
	}
}

func startServer(t *testing.T) (*Server, *grpc.ClientConn) {
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.Nil(t, err)
	srv := NewServer()
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.Dial(lis.Addr().String(), grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.Nil(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return srv, conn
}

func TestSampleStruct(t *testing.T) {
	st, err := sampleToStruct(testSample(2))
	require.Nil(t, err)
	s, err := sampleFromStruct(st)
	require.Nil(t, err)
	assert.Equal(t, testSample(2), s)

	delete(st.Fields, "powerMw")
	_, err = sampleFromStruct(st)
	assert.NotNil(t, err)

	st.Fields["powerMw"] = structpb.NewStringValue("high")
	_, err = sampleFromStruct(st)
	assert.NotNil(t, err)
}

func TestWatch_ReplaysFinishedRun(t *testing.T) {
	srv, conn := startServer(t)
	for i := 1; i <= 3; i++ {
		srv.OnSample(testSample(i))
	}
	srv.Finish()
	srv.OnSample(testSample(4))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	var got []sweep.Sample
	err := Watch(ctx, conn, func(s sweep.Sample) { got = append(got, s) })
	assert.Nil(t, err)
	assert.Equal(t, []sweep.Sample{testSample(1), testSample(2), testSample(3)}, got)
}

func TestWatch_LiveSamples(t *testing.T) {
	srv, conn := startServer(t)
	srv.OnSample(testSample(1))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	samples := make(chan sweep.Sample, 8)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, conn, func(s sweep.Sample) { samples <- s })
	}()

	assert.Equal(t, testSample(1), <-samples)
	assert.Eventually(t, func() bool { return srv.Watchers() == 1 }, 5*time.Second, 10*time.Millisecond)
	srv.OnSample(testSample(2))
	assert.Equal(t, testSample(2), <-samples)

	srv.Finish()
	assert.Nil(t, <-done)
	assert.Equal(t, 0, srv.Watchers())
}

func TestWatch_Cancelled(t *testing.T) {
	srv, conn := startServer(t)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, conn, func(s sweep.Sample) {})
	}()
	assert.Eventually(t, func() bool { return srv.Watchers() == 1 }, 5*time.Second, 10*time.Millisecond)
	cancel()
	assert.NotNil(t, <-done)
	assert.Eventually(t, func() bool { return srv.Watchers() == 0 }, 5*time.Second, 10*time.Millisecond)
}
