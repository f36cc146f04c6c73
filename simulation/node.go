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

package simulation

import (
	"github.com/wifisim/distsweep/event"
	"github.com/wifisim/distsweep/mobility"
	"github.com/wifisim/distsweep/prng"
	. "github.com/wifisim/distsweep/types"
	"github.com/wifisim/distsweep/wifi"
)

type NodeRole string

const (
	RoleAp  NodeRole = "ap"
	RoleSta NodeRole = "sta"
)

type NodeConfig struct {
	ID       NodeId
	Role     NodeRole
	Position Vector
	Manager  wifi.ManagerType
	Phy      wifi.PhyConfig
}

// Node is a Wi-Fi node of the simulation with a fixed position that can be moved.
type Node struct {
	Id   NodeId
	Role NodeRole
	dev  *wifi.Device
	mob  *mobility.ConstantPosition
}

func newNode(cfg *NodeConfig, sched event.Scheduler, ch *wifi.Channel) (*Node, error) {
	phy, err := wifi.NewPhy(cfg.Phy)
	if err != nil {
		return nil, err
	}
	mob := mobility.NewConstantPosition(cfg.Position)
	dev, err := wifi.NewDevice(wifi.DeviceConfig{NodeId: cfg.ID}, phy, cfg.Manager, sched, ch, mob,
		prng.NewBackoffRandom())
	if err != nil {
		return nil, err
	}
	return &Node{
		Id:   cfg.ID,
		Role: cfg.Role,
		dev:  dev,
		mob:  mob,
	}, nil
}

func (n *Node) Device() *wifi.Device {
	return n.dev
}

func (n *Node) Mobility() *mobility.ConstantPosition {
	return n.mob
}

func (n *Node) Address() MacAddr {
	return n.dev.Address()
}

func (n *Node) Position() Vector {
	return n.mob.Position()
}
