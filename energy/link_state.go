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

package energy

import (
	"github.com/pkg/errors"

	"github.com/wifisim/distsweep/logger"
	. "github.com/wifisim/distsweep/types"
)

var ErrUnknownDestination = errors.New("unknown destination")

type linkState struct {
	power DbValue
	rate  DataRate
}

// LinkStateTracker holds the current transmit power and data rate per destination address.
// Destinations must be seeded before use; entries are never removed.
type LinkStateTracker struct {
	links map[MacAddr]*linkState
}

func NewLinkStateTracker() *LinkStateTracker {
	return &LinkStateTracker{
		links: map[MacAddr]*linkState{},
	}
}

func (t *LinkStateTracker) Seed(dest MacAddr, power DbValue, rate DataRate) {
	t.links[dest] = &linkState{power: power, rate: rate}
}

func (t *LinkStateTracker) Seeded(dest MacAddr) bool {
	_, ok := t.links[dest]
	return ok
}

func (t *LinkStateTracker) PowerChanged(oldPower, newPower DbValue, dest MacAddr) {
	t.link(dest).power = newPower
}

func (t *LinkStateTracker) RateChanged(oldRate, newRate DataRate, dest MacAddr) {
	t.link(dest).rate = newRate
}

// link returns the state of dest. An unseeded destination is seeded from the broadcast entry, so a
// later frame to it is priced at a rate the duration table knows.
func (t *LinkStateTracker) link(dest MacAddr) *linkState {
	if ls := t.links[dest]; ls != nil {
		return ls
	}
	bc, ok := t.links[BroadcastMacAddr]
	if !ok {
		logger.Warnf("link state change for unseeded destination %s and no broadcast defaults", dest)
		bc = &linkState{}
	} else {
		logger.Warnf("link state change for unseeded destination %s, seeding from broadcast", dest)
	}
	ls := &linkState{power: bc.power, rate: bc.rate}
	t.links[dest] = ls
	return ls
}

func (t *LinkStateTracker) CurrentPower(dest MacAddr) (DbValue, error) {
	ls, ok := t.links[dest]
	if !ok {
		return 0, errors.Wrapf(ErrUnknownDestination, "%s", dest)
	}
	return ls.power, nil
}

func (t *LinkStateTracker) CurrentRate(dest MacAddr) (DataRate, error) {
	ls, ok := t.links[dest]
	if !ok {
		return 0, errors.Wrapf(ErrUnknownDestination, "%s", dest)
	}
	return ls.rate, nil
}
