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

package cli

import (
	"github.com/alecthomas/participle"
)

// noinspection GoStructTag
type Command struct {
	Config     *ConfigCmd     `  @@` //nolint
	Exit       *ExitCmd       `| @@` //nolint
	Help       *HelpCmd       `| @@` //nolint
	Kpi        *KpiCmd        `| @@` //nolint
	LogLevel   *LogLevelCmd   `| @@` //nolint
	Modes      *ModesCmd      `| @@` //nolint
	Power      *PowerCmd      `| @@` //nolint
	Run        *RunCmd        `| @@` //nolint
	Set        *SetCmd        `| @@` //nolint
	Throughput *ThroughputCmd `| @@` //nolint
}

// noinspection GoStructTag
type SignedNumber struct {
	Negative bool    `[ @"-" ]`      //nolint
	Val      float64 `(@Int|@Float)` //nolint
}

func (n *SignedNumber) Value() float64 {
	if n.Negative {
		return -n.Val
	}
	return n.Val
}

// noinspection GoStructTag
type PositionArg struct {
	X SignedNumber  `@@`     //nolint
	Y SignedNumber  `@@`     //nolint
	Z *SignedNumber `[ @@ ]` //nolint
}

// noinspection GoStructTag
type ConfigCmd struct {
	Cmd struct{} `"config"` //nolint
}

// noinspection GoStructTag
type SetCmd struct {
	Cmd      struct{}      `"set" (`                              //nolint
	Steps    *int          `  "steps" @Int`                       //nolint
	StepSize *SignedNumber `| "stepsize" @@`                      //nolint
	StepTime *SignedNumber `| "steptime" @@`                      //nolint
	Sta      *PositionArg  `| "sta" @@`                           //nolint
	Ap       *PositionArg  `| "ap" @@`                            //nolint
	MaxPower *SignedNumber `| "maxpower" @@`                      //nolint
	MinPower *SignedNumber `| "minpower" @@`                      //nolint
	Levels   *int          `| "levels" @Int`                      //nolint
	Manager  *string       `| "manager" @( "parf" | "constant" )` //nolint
	Standard *string       `| "standard" ( @String | @Ident )`    //nolint
	Pathloss *string       `| "pathloss" ( @String | @Ident )`    //nolint
	Seed     *int          `| "seed" @Int )`                      //nolint
}

// noinspection GoStructTag
type RunCmd struct {
	Cmd struct{} `"run"` //nolint
}

// noinspection GoStructTag
type ThroughputCmd struct {
	Cmd struct{} `"throughput"` //nolint
}

// noinspection GoStructTag
type PowerCmd struct {
	Cmd struct{} `"power"` //nolint
}

// noinspection GoStructTag
type KpiCmd struct {
	Cmd struct{} `"kpi"` //nolint
}

// noinspection GoStructTag
type ModesCmd struct {
	Cmd struct{} `"modes"` //nolint
}

// noinspection GoStructTag
type LogLevelCmd struct {
	Cmd   struct{} `"log"`       //nolint
	Level string   `[ (@Ident) ]` //nolint
}

// noinspection GoStructTag
type HelpCmd struct {
	Cmd       struct{} `"help"`       //nolint
	HelpTopic string   `[ (@Ident) ]` //nolint
}

// noinspection GoStructTag
type ExitCmd struct {
	Cmd struct{} `"exit"` //nolint
}

var (
	commandParser = participle.MustBuild(&Command{})
)

func parseBytes(b []byte, cmd *Command) error {
	return commandParser.ParseBytes(b, cmd)
}
