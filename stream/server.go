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

// Package stream publishes the samples of a sweep to gRPC clients. The service is declared by hand
// with well-known protobuf messages: Watch takes an Empty request and streams one Struct per sample.
package stream

import (
	"net"
	"sync"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/wifisim/distsweep/logger"
	"github.com/wifisim/distsweep/sweep"
)

const (
	ServiceName = "distsweep.SampleStream"
	watchMethod = "/" + ServiceName + "/Watch"

	watcherBufferSize = 1024
)

type sampleStreamServer interface {
	watch(stream grpc.ServerStream) error
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*sampleStreamServer)(nil),
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "Watch",
			Handler:       watchHandler,
			ServerStreams: true,
		},
	},
}

func watchHandler(srv interface{}, stream grpc.ServerStream) error {
	if err := stream.RecvMsg(new(emptypb.Empty)); err != nil {
		return err
	}
	return srv.(sampleStreamServer).watch(stream)
}

type watcher struct {
	ch      chan *structpb.Struct
	dropped int
}

// Server is a sweep.SampleObserver that keeps every sample of the run. A new watcher first receives the
// samples published so far, then the live ones until Finish is called.
type Server struct {
	mu       sync.Mutex
	server   *grpc.Server
	history  []*structpb.Struct
	watchers map[*watcher]struct{}
	finished bool
}

func NewServer() *Server {
	s := &Server{
		server:   grpc.NewServer(grpc.ReadBufferSize(1024*8), grpc.WriteBufferSize(1024*64)),
		watchers: map[*watcher]struct{}{},
	}
	s.server.RegisterService(&serviceDesc, s)
	return s
}

// Serve accepts connections on lis until Stop is called.
func (s *Server) Serve(lis net.Listener) error {
	logger.Infof("sample stream serving on %s", lis.Addr())
	return s.server.Serve(lis)
}

func (s *Server) OnSample(sample sweep.Sample) {
	msg, err := sampleToStruct(sample)
	logger.PanicIfError(err)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.finished {
		return
	}
	s.history = append(s.history, msg)
	for w := range s.watchers {
		select {
		case w.ch <- msg:
		default:
			w.dropped++
		}
	}
}

// Finish ends all watch streams once their pending samples are sent. Later samples are ignored.
func (s *Server) Finish() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.finished {
		return
	}
	s.finished = true
	for w := range s.watchers {
		close(w.ch)
		delete(s.watchers, w)
	}
}

// Stop finishes the streams and shuts the gRPC server down.
func (s *Server) Stop() {
	s.Finish()
	s.server.Stop()
}

// Watchers returns the number of clients receiving live samples.
func (s *Server) Watchers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.watchers)
}

func (s *Server) watch(stream grpc.ServerStream) error {
	s.mu.Lock()
	replay := append([]*structpb.Struct(nil), s.history...)
	var w *watcher
	if !s.finished {
		w = &watcher{ch: make(chan *structpb.Struct, watcherBufferSize)}
		s.watchers[w] = struct{}{}
	}
	s.mu.Unlock()
	defer s.removeWatcher(w)

	logger.Debugf("new sample watcher, replaying %d samples", len(replay))
	for _, msg := range replay {
		if err := stream.SendMsg(msg); err != nil {
			return err
		}
	}
	if w == nil {
		return nil
	}

	for {
		select {
		case msg, ok := <-w.ch:
			if !ok {
				return nil
			}
			if err := stream.SendMsg(msg); err != nil {
				return err
			}
		case <-stream.Context().Done():
			return stream.Context().Err()
		}
	}
}

func (s *Server) removeWatcher(w *watcher) {
	if w == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.watchers[w]; ok {
		delete(s.watchers, w)
		close(w.ch)
	}
	if w.dropped > 0 {
		logger.Warnf("sample watcher was too slow, %d samples dropped", w.dropped)
	}
}
