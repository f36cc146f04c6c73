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

// Package wifi models the 802.11 devices of a simulation: PHY timing, rate and power control, and a
// DCF transmit path with retries and acknowledgements.
package wifi

import (
	"math/rand"
	"time"

	"github.com/wifisim/distsweep/event"
	"github.com/wifisim/distsweep/logger"
	"github.com/wifisim/distsweep/mobility"
	"github.com/wifisim/distsweep/notify"
	. "github.com/wifisim/distsweep/types"
)

const (
	DefaultQueueLimit     = 100
	DefaultRetryLimit     = 7
	DefaultBeaconInterval = 102400 * time.Microsecond
)

type DeviceConfig struct {
	NodeId     NodeId
	QueueLimit int
	RetryLimit int
}

type DeviceStats struct {
	TxDataAttempts uint64 `yaml:"tx_data_attempts" json:"tx_data_attempts"`
	TxDataOk       uint64 `yaml:"tx_data_ok" json:"tx_data_ok"`
	TxDataFailed   uint64 `yaml:"tx_data_failed" json:"tx_data_failed"`
	TxDataDropped  uint64 `yaml:"tx_data_dropped" json:"tx_data_dropped"`
	QueueDrops     uint64 `yaml:"queue_drops" json:"queue_drops"`
	RxData         uint64 `yaml:"rx_data" json:"rx_data"`
	RxDuplicates   uint64 `yaml:"rx_duplicates" json:"rx_duplicates"`
	TxBeacons      uint64 `yaml:"tx_beacons" json:"tx_beacons"`
	RxBeacons      uint64 `yaml:"rx_beacons" json:"rx_beacons"`
}

// ReceiveCallback hands a received data frame to the upper layer.
type ReceiveCallback func(f *Frame)

// Device is the Wi-Fi interface of a node. Frames are sent one at a time, after DIFS and a random
// backoff, and unicast data is retried until acknowledged or the retry limit is hit.
type Device struct {
	cfg       DeviceConfig
	addr      MacAddr
	phy       *Phy
	manager   StationManager
	sched     event.Scheduler
	channel   *Channel
	mobility  mobility.Model
	notifier  *notify.Hub
	rng       *rand.Rand
	dataQueue []*Frame
	mgmtQueue []*Frame
	current   *Frame
	cw        int
	retries   int
	nextSeq   uint16
	lastRxSeq map[MacAddr]uint16
	onReceive ReceiveCallback
	stats     DeviceStats
}

// NewDevice creates a device with a station manager of managerType and attaches it to ch. The manager
// reports its changes to the device's notifier.
func NewDevice(cfg DeviceConfig, phy *Phy, managerType ManagerType, sched event.Scheduler, ch *Channel,
	mob mobility.Model, rng *rand.Rand) (*Device, error) {
	if cfg.QueueLimit <= 0 {
		cfg.QueueLimit = DefaultQueueLimit
	}
	if cfg.RetryLimit <= 0 {
		cfg.RetryLimit = DefaultRetryLimit
	}
	d := &Device{
		cfg:       cfg,
		addr:      NewMacAddr(cfg.NodeId),
		phy:       phy,
		sched:     sched,
		channel:   ch,
		mobility:  mob,
		notifier:  notify.NewHub(),
		rng:       rng,
		cw:        phy.Standard().CwMin(),
		lastRxSeq: map[MacAddr]uint16{},
	}
	manager, err := NewStationManager(managerType, phy, d.notifier)
	if err != nil {
		return nil, err
	}
	d.manager = manager
	ch.attach(d)
	return d, nil
}

func (d *Device) Address() MacAddr {
	return d.addr
}

func (d *Device) Phy() *Phy {
	return d.phy
}

func (d *Device) Mobility() mobility.Model {
	return d.mobility
}

// Notifier returns the hub that carries this device's power, rate and tx notifications.
func (d *Device) Notifier() *notify.Hub {
	return d.notifier
}

func (d *Device) Stats() DeviceStats {
	return d.stats
}

func (d *Device) SetReceiveCallback(cb ReceiveCallback) {
	d.onReceive = cb
}

// Send queues a data frame with payloadSize bytes for dest. It returns false if the queue is full.
func (d *Device) Send(payloadSize int, dest MacAddr) bool {
	if len(d.dataQueue) >= d.cfg.QueueLimit {
		d.stats.QueueDrops++
		return false
	}
	f := &Frame{
		Type:        FrameTypeData,
		Dest:        dest,
		Source:      d.addr,
		Seq:         d.nextSeq,
		PayloadSize: payloadSize,
	}
	d.nextSeq = (d.nextSeq + 1) & 0xfff
	d.dataQueue = append(d.dataQueue, f)
	d.startTxop()
	return true
}

// StartBeacons makes the device send a beacon to broadcast every interval, starting after one interval.
func (d *Device) StartBeacons(interval time.Duration) {
	var beacon func()
	beacon = func() {
		d.mgmtQueue = append(d.mgmtQueue, &Frame{
			Type:        FrameTypeMgmt,
			Dest:        BroadcastMacAddr,
			Source:      d.addr,
			PayloadSize: BeaconBodySize,
		})
		d.startTxop()
		d.sched.Schedule(interval, beacon)
	}
	d.sched.Schedule(interval, beacon)
}

func (d *Device) startTxop() {
	if d.current != nil {
		return
	}
	if len(d.mgmtQueue) > 0 {
		d.current = d.mgmtQueue[0]
		d.mgmtQueue = d.mgmtQueue[1:]
	} else if len(d.dataQueue) > 0 {
		d.current = d.dataQueue[0]
		d.dataQueue = d.dataQueue[1:]
	} else {
		return
	}

	std := d.phy.Standard()
	backoff := time.Duration(d.rng.Intn(d.cw+1)) * std.SlotTime()
	d.sched.Schedule(std.Difs()+backoff, d.transmit)
}

// mgmtTxVector returns the parameters of management and control frames: the lowest mode at full power.
func (d *Device) mgmtTxVector(mode Mode) TxVector {
	return TxVector{
		Mode:         mode,
		Preamble:     PreambleLong,
		ChannelWidth: d.phy.ChannelWidth(),
		TxPowerLevel: d.phy.MaxPowerLevel(),
	}
}

func (d *Device) transmit() {
	f := d.current
	logger.AssertNotNil(f)
	if f.Dest.IsBroadcast() {
		d.transmitBroadcast(f)
	} else {
		d.transmitUnicast(f)
	}
}

func (d *Device) transmitBroadcast(f *Frame) {
	txv := d.mgmtTxVector(d.phy.Mode(0))
	power := d.phy.PowerForLevel(txv.TxPowerLevel)
	dur := d.phy.CalculateTxDuration(f.Size(), txv, d.phy.Frequency())
	d.notifier.FrameTxBegin(f.Dest, f.Type, f.Size())
	if f.Type == FrameTypeMgmt {
		d.stats.TxBeacons++
	}

	for _, dst := range d.channel.devices {
		if dst == d || d.channel.Snr(d, dst, power) < txv.Mode.MinSnrDb {
			continue
		}
		dst := dst
		d.sched.Schedule(dur, func() {
			dst.receive(f)
		})
	}

	d.sched.Schedule(dur, func() {
		d.finishTxop()
	})
}

func (d *Device) transmitUnicast(f *Frame) {
	txv := d.manager.DataTxVector(f.Dest)
	power := d.phy.PowerForLevel(txv.TxPowerLevel)
	freq := d.phy.Frequency()
	dur := d.phy.CalculateTxDuration(f.Size(), txv, freq)
	d.notifier.FrameTxBegin(f.Dest, f.Type, f.Size())
	d.stats.TxDataAttempts++

	std := d.phy.Standard()
	ackTxv := d.mgmtTxVector(d.phy.AckMode(txv.Mode))
	ackDur := d.phy.CalculateTxDuration(AckSize, ackTxv, freq)

	dst := d.channel.Device(f.Dest)
	dataSnr := DbValue(0)
	acked := false
	if dst != nil {
		dataSnr = d.channel.Snr(d, dst, power)
		if dataSnr >= txv.Mode.MinSnrDb {
			d.sched.Schedule(dur, func() {
				dst.receive(f)
			})
			d.sched.Schedule(dur+std.Sifs(), func() {
				dst.notifier.FrameTxBegin(f.Source, FrameTypeControl, AckSize)
			})
			ackPower := dst.phy.PowerForLevel(ackTxv.TxPowerLevel)
			acked = d.channel.Snr(dst, d, ackPower) >= ackTxv.Mode.MinSnrDb
		}
	}

	// the ack timeout expires one slot after the ack would have ended
	d.sched.Schedule(dur+std.Sifs()+ackDur+std.SlotTime(), func() {
		d.completeUnicast(f, acked, dataSnr)
	})
}

func (d *Device) completeUnicast(f *Frame, acked bool, dataSnr DbValue) {
	std := d.phy.Standard()
	if acked {
		d.stats.TxDataOk++
		d.manager.ReportDataOk(f.Dest, dataSnr)
		d.finishTxop()
		return
	}

	d.stats.TxDataFailed++
	d.manager.ReportDataFailed(f.Dest)
	d.retries++
	if d.retries > d.cfg.RetryLimit {
		logger.Tracef("%s: dropping frame seq %d to %s after %d retries", d.addr, f.Seq, f.Dest, d.cfg.RetryLimit)
		d.stats.TxDataDropped++
		d.manager.ReportFinalDataFailed(f.Dest)
		d.finishTxop()
		return
	}

	d.cw = 2*(d.cw+1) - 1
	if d.cw > std.CwMax() {
		d.cw = std.CwMax()
	}
	backoff := time.Duration(d.rng.Intn(d.cw+1)) * std.SlotTime()
	d.sched.Schedule(std.Difs()+backoff, d.transmit)
}

func (d *Device) finishTxop() {
	d.current = nil
	d.retries = 0
	d.cw = d.phy.Standard().CwMin()
	d.startTxop()
}

func (d *Device) receive(f *Frame) {
	switch f.Type {
	case FrameTypeMgmt:
		d.stats.RxBeacons++
	case FrameTypeData:
		if last, ok := d.lastRxSeq[f.Source]; ok && last == f.Seq {
			d.stats.RxDuplicates++
			return
		}
		d.lastRxSeq[f.Source] = f.Seq
		d.stats.RxData++
		if d.onReceive != nil {
			d.onReceive(f)
		}
	}
}
