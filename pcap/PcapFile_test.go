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
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/wifisim/distsweep/types"
)

func getFileSize(t *testing.T, fn string) int {
	stat, err := os.Stat(fn)
	require.Nil(t, err)
	return int(stat.Size())
}

func readFile(t *testing.T, fn string) []byte {
	data, err := os.ReadFile(fn)
	require.Nil(t, err)
	return data
}

func TestParseLinkTypeStr(t *testing.T) {
	assert.Equal(t, LinkTypeOff, ParseLinkTypeStr("off"))
	assert.Equal(t, LinkTypeOff, ParseLinkTypeStr(""))
	assert.Equal(t, LinkTypeWifi, ParseLinkTypeStr("wifi"))
	assert.Equal(t, LinkTypeRadiotap, ParseLinkTypeStr("radiotap"))
	assert.Equal(t, LinkTypeUnknown, ParseLinkTypeStr("wpan"))

	_, err := NewFile(filepath.Join(t.TempDir(), "x.pcap"), LinkTypeUnknown)
	assert.NotNil(t, err)
}

func TestPcapFile(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "test.pcap")
	pcap, err := NewFile(fn, LinkTypeWifi)
	require.Nil(t, err)
	defer func() {
		_ = pcap.Close()
	}()

	assert.Equal(t, pcapFileHeaderSize, getFileSize(t, fn))
	hdr := readFile(t, fn)
	assert.Equal(t, uint32(pcapMagicNumber), binary.LittleEndian.Uint32(hdr[0:4]))
	assert.Equal(t, uint32(dltIeee80211), binary.LittleEndian.Uint32(hdr[20:24]))

	for i := 0; i < 10; i++ {
		require.Nil(t, pcap.AppendFrame(Frame{
			Timestamp: uint64(i) * 1500000,
			Data:      []byte{0x08, 0x02, 0x00, 0x00, 0x01},
			OrigLen:   1456,
		}))
		require.Nil(t, pcap.Sync())
		assert.Equal(t, pcapFileHeaderSize+(pcapFrameHeaderSize+5)*(i+1), getFileSize(t, fn))
	}

	data := readFile(t, fn)
	rec := data[pcapFileHeaderSize+pcapFrameHeaderSize+5:]
	assert.Equal(t, uint32(1), binary.LittleEndian.Uint32(rec[0:4]))      // seconds
	assert.Equal(t, uint32(500000), binary.LittleEndian.Uint32(rec[4:8])) // microseconds
	assert.Equal(t, uint32(5), binary.LittleEndian.Uint32(rec[8:12]))
	assert.Equal(t, uint32(1456), binary.LittleEndian.Uint32(rec[12:16]))
}

func TestRadiotapFile(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "test_rt.pcap")
	pcap, err := NewFile(fn, LinkTypeRadiotap)
	require.Nil(t, err)
	defer func() {
		_ = pcap.Close()
	}()

	require.Nil(t, pcap.AppendFrame(Frame{
		Data:         []byte{0xd4, 0x00},
		FrequencyMhz: 5180,
		Rate:         54 * Mbps,
		TxPower:      -40,
	}))
	require.Nil(t, pcap.Sync())
	assert.Equal(t, pcapFileHeaderSize+pcapFrameHeaderSize+radiotapHeaderSize+2, getFileSize(t, fn))

	data := readFile(t, fn)
	assert.Equal(t, uint32(dltIeee80211Radiotap), binary.LittleEndian.Uint32(data[20:24]))
	rt := data[pcapFileHeaderSize+pcapFrameHeaderSize:]
	assert.Equal(t, uint16(radiotapHeaderSize), binary.LittleEndian.Uint16(rt[2:4]))
	assert.Equal(t, byte(108), rt[8])
	assert.Equal(t, uint16(5180), binary.LittleEndian.Uint16(rt[10:12]))
	assert.Equal(t, uint16(channelFlag5Ghz|channelFlagOfdm), binary.LittleEndian.Uint16(rt[12:14]))
	assert.Equal(t, int8(-40), int8(rt[14]))
	assert.Equal(t, []byte{0xd4, 0x00}, rt[radiotapHeaderSize:])
}

type fixedClock time.Duration

func (c fixedClock) Now() time.Duration {
	return time.Duration(c)
}

type fixedLinks struct{}

func (fixedLinks) CurrentPower(dest MacAddr) (DbValue, error) {
	if dest.IsBroadcast() {
		return 0, errors.New("unknown")
	}
	return 16, nil
}

func (fixedLinks) CurrentRate(dest MacAddr) (DataRate, error) {
	return 6 * Mbps, nil
}

type memFile struct {
	frames []Frame
	closed bool
}

func (f *memFile) AppendFrame(frame Frame) error {
	f.frames = append(f.frames, frame)
	return nil
}

func (f *memFile) Sync() error {
	return nil
}

func (f *memFile) Close() error {
	f.closed = true
	return nil
}

func TestCapture(t *testing.T) {
	ap := NewMacAddr(ApNodeId)
	sta := NewMacAddr(2)
	f := &memFile{}
	c := NewCapture(f, fixedClock(2*time.Millisecond), fixedLinks{}, ap, 5180)

	c.FrameTxBegin(sta, FrameTypeData, 1456)
	c.FrameTxBegin(BroadcastMacAddr, FrameTypeMgmt, 100)
	c.FrameTxBegin(sta, FrameTypeControl, 14)
	assert.Equal(t, 3, c.Frames())
	assert.Nil(t, c.Err())
	require.Len(t, f.frames, 3)

	data := f.frames[0]
	assert.Equal(t, uint64(2000), data.Timestamp)
	assert.Equal(t, 1456, data.OrigLen)
	assert.Equal(t, 6*Mbps, data.Rate)
	assert.Equal(t, DbValue(16), data.TxPower)
	require.Len(t, data.Data, macHeaderSize)
	assert.Equal(t, []byte{0x08, 0x02}, data.Data[0:2])
	assert.Equal(t, sta[:], data.Data[4:10])
	assert.Equal(t, ap[:], data.Data[10:16])

	beacon := f.frames[1]
	assert.Equal(t, []byte{0x80, 0x00}, beacon.Data[0:2])
	assert.Equal(t, DbValue(0), beacon.TxPower)
	assert.Equal(t, uint16(1<<4), binary.LittleEndian.Uint16(beacon.Data[22:24]))

	ack := f.frames[2]
	assert.Len(t, ack.Data, ackHeaderSize)
	assert.Equal(t, []byte{0xd4, 0x00}, ack.Data[0:2])

	require.Nil(t, c.Close())
	assert.True(t, f.closed)
}
