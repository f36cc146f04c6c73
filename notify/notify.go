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

// Package notify carries the notifications of the simulated Wi-Fi stack to any number of subscribers.
package notify

import (
	. "github.com/wifisim/distsweep/types"
)

// PowerChangeListener is notified when a transmitter changes its power towards a destination.
type PowerChangeListener interface {
	PowerChanged(oldPower, newPower DbValue, dest MacAddr)
}

// RateChangeListener is notified when a transmitter changes its data rate towards a destination.
type RateChangeListener interface {
	RateChanged(oldRate, newRate DataRate, dest MacAddr)
}

// TxBeginListener is notified when the PHY starts transmitting a frame.
type TxBeginListener interface {
	FrameTxBegin(dest MacAddr, frameType FrameType, size int)
}

// RxListener is notified when an application receives bytes.
type RxListener interface {
	BytesReceived(n int, from MacAddr)
}

// Hub dispatches notifications to subscribers, in order of subscription.
type Hub struct {
	power []PowerChangeListener
	rate  []RateChangeListener
	tx    []TxBeginListener
	rx    []RxListener
}

func NewHub() *Hub {
	return &Hub{}
}

// Subscribe registers l for every listener interface it implements. It returns false if l implements none.
func (h *Hub) Subscribe(l interface{}) bool {
	ok := false
	if pl, is := l.(PowerChangeListener); is {
		h.power = append(h.power, pl)
		ok = true
	}
	if rl, is := l.(RateChangeListener); is {
		h.rate = append(h.rate, rl)
		ok = true
	}
	if tl, is := l.(TxBeginListener); is {
		h.tx = append(h.tx, tl)
		ok = true
	}
	if rl, is := l.(RxListener); is {
		h.rx = append(h.rx, rl)
		ok = true
	}
	return ok
}

func (h *Hub) PowerChanged(oldPower, newPower DbValue, dest MacAddr) {
	for _, l := range h.power {
		l.PowerChanged(oldPower, newPower, dest)
	}
}

func (h *Hub) RateChanged(oldRate, newRate DataRate, dest MacAddr) {
	for _, l := range h.rate {
		l.RateChanged(oldRate, newRate, dest)
	}
}

func (h *Hub) FrameTxBegin(dest MacAddr, frameType FrameType, size int) {
	for _, l := range h.tx {
		l.FrameTxBegin(dest, frameType, size)
	}
}

func (h *Hub) BytesReceived(n int, from MacAddr) {
	for _, l := range h.rx {
		l.BytesReceived(n, from)
	}
}
