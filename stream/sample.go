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

package stream

import (
	"time"

	"github.com/pkg/errors"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/wifisim/distsweep/sweep"
	. "github.com/wifisim/distsweep/types"
)

var sampleFields = []string{"tick", "timeSec", "x", "y", "z", "throughputMbps", "powerMw"}

func sampleToStruct(s sweep.Sample) (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]interface{}{
		"tick":           s.Tick,
		"timeSec":        s.Time.Seconds(),
		"x":              s.Position.X,
		"y":              s.Position.Y,
		"z":              s.Position.Z,
		"throughputMbps": s.Throughput,
		"powerMw":        s.Power,
	})
}

func sampleFromStruct(st *structpb.Struct) (sweep.Sample, error) {
	v := map[string]float64{}
	for _, name := range sampleFields {
		f, ok := st.GetFields()[name]
		if !ok {
			return sweep.Sample{}, errors.Errorf("sample field %s missing", name)
		}
		if _, isNum := f.GetKind().(*structpb.Value_NumberValue); !isNum {
			return sweep.Sample{}, errors.Errorf("sample field %s is not a number", name)
		}
		v[name] = f.GetNumberValue()
	}
	return sweep.Sample{
		Tick:       int(v["tick"]),
		Time:       time.Duration(v["timeSec"] * float64(time.Second)),
		Position:   Vector{X: v["x"], Y: v["y"], Z: v["z"]},
		Throughput: v["throughputMbps"],
		Power:      v["powerMw"],
	}, nil
}
