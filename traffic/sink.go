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

package traffic

import (
	"github.com/wifisim/distsweep/notify"
	"github.com/wifisim/distsweep/wifi"
)

// PacketSink consumes received data frames, and notifies its subscribers of the received payload bytes.
type PacketSink struct {
	notifier   *notify.Hub
	totalBytes uint64
	packets    uint64
}

func NewPacketSink() *PacketSink {
	return &PacketSink{
		notifier: notify.NewHub(),
	}
}

func (s *PacketSink) Notifier() *notify.Hub {
	return s.notifier
}

// Receive is the receive callback of the device the sink is installed on.
func (s *PacketSink) Receive(f *wifi.Frame) {
	s.totalBytes += uint64(f.PayloadSize)
	s.packets++
	s.notifier.BytesReceived(f.PayloadSize, f.Source)
}

func (s *PacketSink) TotalBytes() uint64 {
	return s.totalBytes
}

func (s *PacketSink) Packets() uint64 {
	return s.packets
}
