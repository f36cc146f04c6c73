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

package pcap

import (
	"encoding/binary"
	"time"

	"github.com/wifisim/distsweep/logger"
	. "github.com/wifisim/distsweep/types"
)

const (
	macHeaderSize = 24
	ackHeaderSize = 10

	fcData   = 0x0208 // type data, FromDS
	fcBeacon = 0x0080
	fcAck    = 0x00d4
)

type Clock interface {
	Now() time.Duration
}

// LinkState provides the transmit power and rate currently used towards a destination.
type LinkState interface {
	CurrentPower(dest MacAddr) (DbValue, error)
	CurrentRate(dest MacAddr) (DataRate, error)
}

// Capture records the frames a device starts to transmit. Only the MAC header of each frame is stored.
type Capture struct {
	file    File
	clock   Clock
	links   LinkState
	source  MacAddr
	freqMhz int
	seq     uint16
	frames  int
	err     error
}

func NewCapture(file File, clock Clock, links LinkState, source MacAddr, freqMhz int) *Capture {
	return &Capture{
		file:    file,
		clock:   clock,
		links:   links,
		source:  source,
		freqMhz: freqMhz,
	}
}

func (c *Capture) FrameTxBegin(dest MacAddr, frameType FrameType, size int) {
	if c.err != nil {
		return
	}

	frame := Frame{
		Timestamp:    uint64(c.clock.Now() / time.Microsecond),
		Data:         c.macHeader(dest, frameType),
		OrigLen:      size,
		FrequencyMhz: c.freqMhz,
	}
	if rate, err := c.links.CurrentRate(dest); err == nil {
		frame.Rate = rate
	}
	if power, err := c.links.CurrentPower(dest); err == nil {
		frame.TxPower = power
	}

	if c.err = c.file.AppendFrame(frame); c.err != nil {
		logger.Errorf("pcap: capture stopped: %v", c.err)
		return
	}
	c.frames++
}

func (c *Capture) macHeader(dest MacAddr, frameType FrameType) []byte {
	if frameType == FrameTypeControl {
		hdr := make([]byte, ackHeaderSize)
		binary.LittleEndian.PutUint16(hdr[0:2], fcAck)
		copy(hdr[4:10], dest[:])
		return hdr
	}

	hdr := make([]byte, macHeaderSize)
	fc := uint16(fcData)
	if frameType == FrameTypeMgmt {
		fc = fcBeacon
	}
	binary.LittleEndian.PutUint16(hdr[0:2], fc)
	copy(hdr[4:10], dest[:])
	copy(hdr[10:16], c.source[:])
	copy(hdr[16:22], c.source[:]) // BSSID
	binary.LittleEndian.PutUint16(hdr[22:24], c.seq<<4)
	c.seq = (c.seq + 1) & 0x0fff
	return hdr
}

// Frames returns the number of frames written so far.
func (c *Capture) Frames() int {
	return c.frames
}

// Err returns the write error that stopped the capture, if any.
func (c *Capture) Err() error {
	return c.err
}

// Close flushes and closes the capture file.
func (c *Capture) Close() error {
	if err := c.file.Sync(); err != nil {
		_ = c.file.Close()
		return err
	}
	return c.file.Close()
}
