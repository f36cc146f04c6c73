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

// Package mobility provides the position models of simulated nodes.
package mobility

import (
	. "github.com/wifisim/distsweep/types"
)

// Model gives read and write access to a node position.
type Model interface {
	Position() Vector
	SetPosition(pos Vector)
}

// CourseChangeListener is called with the new position after every position change.
type CourseChangeListener func(pos Vector)

// ConstantPosition is a node that stays where it was last put.
type ConstantPosition struct {
	pos       Vector
	listeners []CourseChangeListener
}

func NewConstantPosition(pos Vector) *ConstantPosition {
	return &ConstantPosition{pos: pos}
}

func (m *ConstantPosition) Position() Vector {
	return m.pos
}

func (m *ConstantPosition) SetPosition(pos Vector) {
	m.pos = pos
	for _, l := range m.listeners {
		l(pos)
	}
}

func (m *ConstantPosition) AddCourseChangeListener(l CourseChangeListener) {
	m.listeners = append(m.listeners, l)
}
