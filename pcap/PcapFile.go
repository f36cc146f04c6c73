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

// Package pcap writes the frames transmitted in a simulation to a PCAP capture file.
package pcap

import (
	"encoding/binary"
	"fmt"
	"os"

	. "github.com/wifisim/distsweep/types"
)

type LinkType int

const (
	LinkTypeOff LinkType = iota
	LinkTypeWifi
	LinkTypeRadiotap
	LinkTypeUnknown
)

const (
	LinkTypeOffStr      string = "off"
	LinkTypeWifiStr     string = "wifi"
	LinkTypeRadiotapStr string = "radiotap"
)

const (
	dltIeee80211        = 105
	pcapMagicNumber     = 0xA1B2C3D4
	pcapVersionMajor    = 2
	pcapVersionMinor    = 4
	pcapSnapLen         = 65535
	pcapFileHeaderSize  = 24
	pcapFrameHeaderSize = 16
)

// File represents a PCAP file
type File interface {
	AppendFrame(frame Frame) error
	Sync() error
	Close() error
}

// Frame is one transmitted frame. Data may hold only the first bytes of the frame; OrigLen is the length on air.
type Frame struct {
	Timestamp    uint64 // us
	Data         []byte
	OrigLen      int
	FrequencyMhz int
	Rate         DataRate
	TxPower      DbValue
}

type wifiFile struct {
	fd *os.File
}

// NewFile creates a new PCAP file with all frames using specified link type
func NewFile(filename string, linkType LinkType) (File, error) {
	switch linkType {
	case LinkTypeWifi:
		return newWifiFile(filename)
	case LinkTypeRadiotap:
		return newRadiotapFile(filename)
	default:
		return nil, fmt.Errorf("invalid PCAP link type: %d", linkType)
	}
}

func ParseLinkTypeStr(tp string) LinkType {
	switch tp {
	case LinkTypeOffStr, "":
		return LinkTypeOff
	case LinkTypeWifiStr:
		return LinkTypeWifi
	case LinkTypeRadiotapStr:
		return LinkTypeRadiotap
	default:
		return LinkTypeUnknown
	}
}

func newWifiFile(filename string) (File, error) {
	fd, err := createFile(filename, dltIeee80211)
	if err != nil {
		return nil, err
	}
	return &wifiFile{fd: fd}, nil
}

func (pf *wifiFile) AppendFrame(frame Frame) error {
	var header [pcapFrameHeaderSize]byte
	putFrameHeader(header[:], frame.Timestamp, len(frame.Data), frame.origLen())

	if _, err := pf.fd.Write(header[:]); err != nil {
		return err
	}
	_, err := pf.fd.Write(frame.Data)
	return err
}

func (pf *wifiFile) Sync() error {
	return pf.fd.Sync()
}

func (pf *wifiFile) Close() error {
	return pf.fd.Close()
}

func (f Frame) origLen() int {
	if f.OrigLen < len(f.Data) {
		return len(f.Data)
	}
	return f.OrigLen
}

func putFrameHeader(header []byte, timestamp uint64, inclLen, origLen int) {
	binary.LittleEndian.PutUint32(header[:4], uint32(timestamp/1000000))
	binary.LittleEndian.PutUint32(header[4:8], uint32(timestamp%1000000))
	binary.LittleEndian.PutUint32(header[8:12], uint32(inclLen))
	binary.LittleEndian.PutUint32(header[12:16], uint32(origLen))
}

func createFile(filename string, linkType uint32) (*os.File, error) {
	fd, err := os.OpenFile(filename, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}

	var header [pcapFileHeaderSize]byte
	binary.LittleEndian.PutUint32(header[:4], pcapMagicNumber)
	binary.LittleEndian.PutUint16(header[4:6], pcapVersionMajor)
	binary.LittleEndian.PutUint16(header[6:8], pcapVersionMinor)
	binary.LittleEndian.PutUint32(header[8:12], 0)
	binary.LittleEndian.PutUint32(header[12:16], 0)
	binary.LittleEndian.PutUint32(header[16:20], pcapSnapLen)
	binary.LittleEndian.PutUint32(header[20:24], linkType)
	if _, err = fd.Write(header[:]); err == nil {
		err = fd.Sync()
	}
	if err != nil {
		_ = fd.Close()
		return nil, err
	}
	return fd, nil
}
