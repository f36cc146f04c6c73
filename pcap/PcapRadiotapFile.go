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
	"math"
	"os"
)

// radiotap header format is at https://www.radiotap.org
const (
	dltIeee80211Radiotap = 127
	radiotapHeaderSize   = 15

	radiotapPresentRate    = 1 << 2
	radiotapPresentChannel = 1 << 3
	radiotapPresentTxPower = 1 << 10

	channelFlagOfdm   = 0x0040
	channelFlag2Ghz   = 0x0080
	channelFlag5Ghz   = 0x0100
	firstFreq5GhzMhz  = 4900
	rateUnitBitPerSec = 500000
)

type radiotapFile struct {
	fd *os.File
}

func newRadiotapFile(filename string) (File, error) {
	fd, err := createFile(filename, dltIeee80211Radiotap)
	if err != nil {
		return nil, err
	}
	return &radiotapFile{fd: fd}, nil
}

func (pf *radiotapFile) AppendFrame(frame Frame) error {
	var header [pcapFrameHeaderSize + radiotapHeaderSize]byte
	putFrameHeader(header[:], frame.Timestamp, len(frame.Data)+radiotapHeaderSize, frame.origLen()+radiotapHeaderSize)

	n := pcapFrameHeaderSize
	header[n] = 0   // version
	header[n+1] = 0 // pad
	binary.LittleEndian.PutUint16(header[n+2:n+4], radiotapHeaderSize)
	binary.LittleEndian.PutUint32(header[n+4:n+8], radiotapPresentRate|radiotapPresentChannel|radiotapPresentTxPower)
	header[n+8] = byte(uint64(frame.Rate) / rateUnitBitPerSec)
	// n+9 pads the channel field to 16-bit alignment
	binary.LittleEndian.PutUint16(header[n+10:n+12], uint16(frame.FrequencyMhz))
	binary.LittleEndian.PutUint16(header[n+12:n+14], channelFlags(frame.FrequencyMhz))
	header[n+14] = byte(int8(math.Round(frame.TxPower)))

	if _, err := pf.fd.Write(header[:]); err != nil {
		return err
	}
	_, err := pf.fd.Write(frame.Data)
	return err
}

func channelFlags(freqMhz int) uint16 {
	if freqMhz >= firstFreq5GhzMhz {
		return channelFlag5Ghz | channelFlagOfdm
	}
	return channelFlag2Ghz
}

func (pf *radiotapFile) Sync() error {
	return pf.fd.Sync()
}

func (pf *radiotapFile) Close() error {
	return pf.fd.Close()
}
