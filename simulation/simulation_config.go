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
	"bytes"
	_ "embed"
	"io"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/wifisim/distsweep/radiomodel"
	. "github.com/wifisim/distsweep/types"
	"github.com/wifisim/distsweep/wifi"
)

const (
	DefaultMaxPower     DbValue = -40
	DefaultMinPower     DbValue = -70
	DefaultPowerLevels          = 30
	DefaultSteps                = 1
	DefaultStepSize             = 0.1 // meters
	DefaultStepTime             = 1.0 // seconds
	DefaultPacketSize           = 1420
	DefaultDataRateMbps         = 54.0
	DefaultAppStart             = 0.5 // seconds
	DefaultStaX                 = -1.4
	DefaultStaY                 = 3.0
	DefaultManager              = string(wifi.ManagerParf)
	DefaultSeed                 = 1
)

var ErrInvalidConfig = errors.New("invalid configuration")

//go:embed config.cue
var configSchema string

// Config is the configuration of one sweep run. Times are in seconds, powers in dBm, distances in meters.
type Config struct {
	Standard     string  `yaml:"standard" json:"standard"`
	ChannelWidth int     `yaml:"channelWidth" json:"channelWidth"` // MHz, 0 selects the standard's default
	Frequency    int     `yaml:"frequency" json:"frequency"`       // MHz, 0 selects the standard's default
	Pathloss     string  `yaml:"pathloss" json:"pathloss"`
	MaxPower     DbValue `yaml:"maxPower" json:"maxPower"`
	MinPower     DbValue `yaml:"minPower" json:"minPower"`
	PowerLevels  int     `yaml:"powerLevels" json:"powerLevels"`
	Manager      string  `yaml:"manager" json:"manager"`
	ApPosition   Vector  `yaml:"ap" json:"ap"`
	StaPosition  Vector  `yaml:"sta" json:"sta"`
	Steps        int     `yaml:"steps" json:"steps"`
	StepSize     float64 `yaml:"stepSize" json:"stepSize"`
	StepTime     float64 `yaml:"stepTime" json:"stepTime"`
	PacketSize   int     `yaml:"packetSize" json:"packetSize"`
	DataRateMbps float64 `yaml:"dataRate" json:"dataRate"`
	AppStart     float64 `yaml:"appStart" json:"appStart"`
	Seed         int64   `yaml:"seed" json:"seed"` // 0 seeds from the wall clock
}

func DefaultConfig() *Config {
	return &Config{
		Standard:     string(wifi.Standard80211a),
		Pathloss:     string(radiomodel.PathlossItu),
		MaxPower:     DefaultMaxPower,
		MinPower:     DefaultMinPower,
		PowerLevels:  DefaultPowerLevels,
		Manager:      DefaultManager,
		ApPosition:   Vector{X: 0, Y: 0, Z: 0},
		StaPosition:  Vector{X: DefaultStaX, Y: DefaultStaY, Z: 0},
		Steps:        DefaultSteps,
		StepSize:     DefaultStepSize,
		StepTime:     DefaultStepTime,
		PacketSize:   DefaultPacketSize,
		DataRateMbps: DefaultDataRateMbps,
		AppStart:     DefaultAppStart,
		Seed:         DefaultSeed,
	}
}

// ParseConfig reads a YAML configuration. Fields missing in data keep their default value.
func ParseConfig(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && err != io.EOF {
		return nil, errors.Wrap(err, "parse config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read config %s", path)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return nil, errors.Wrapf(err, "config %s", path)
	}
	return cfg, nil
}

// Validate normalizes the standard name and checks the configuration against its schema.
func (c *Config) Validate() error {
	std, err := wifi.ParseStandard(c.Standard)
	if err != nil {
		return errors.Wrapf(ErrInvalidConfig, "%v", err)
	}
	c.Standard = string(std)

	ctx := cuecontext.New()
	schema := ctx.CompileString(configSchema, cue.Filename("config.cue"))
	if err := schema.Err(); err != nil {
		return errors.Wrap(err, "config schema")
	}
	v := schema.LookupPath(cue.ParsePath("#Config")).Unify(ctx.Encode(c))
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return errors.Wrapf(ErrInvalidConfig, "%v", err)
	}
	return nil
}

func (c *Config) managerType() wifi.ManagerType {
	return wifi.ManagerType(c.Manager)
}

func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}
