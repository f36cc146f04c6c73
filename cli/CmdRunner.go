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
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/wifisim/distsweep/energy"
	"github.com/wifisim/distsweep/logger"
	"github.com/wifisim/distsweep/metrics"
	"github.com/wifisim/distsweep/progctx"
	"github.com/wifisim/distsweep/simulation"
	. "github.com/wifisim/distsweep/types"
	"github.com/wifisim/distsweep/wifi"
)

const (
	Prompt = "> "
)

var ErrNoResult = errors.New("no finished run, use 'run' first")

type CommandContext struct {
	context.Context
	*Command
	rt     *CmdRunner
	err    error
	output io.Writer
}

func (cc *CommandContext) outputStr(msg string) {
	_, _ = fmt.Fprint(cc.output, msg)
}

func (cc *CommandContext) outputf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(cc.output, format, args...)
}

func (cc *CommandContext) errorf(format string, args ...interface{}) {
	cc.error(errors.Errorf(format, args...))
}

func (cc *CommandContext) error(err error) {
	if err != nil {
		if cc.err != nil { // if previous error, print it now and keep the last.
			cc.outputf("Error: %s\n", cc.err)
		}
		cc.err = err
	}
}

// Err returns the last error that occurred during command execution.
func (cc *CommandContext) Err() error {
	return cc.err
}

func (cc *CommandContext) outputAsYaml(item interface{}) {
	data, err := yaml.Marshal(item)
	logger.PanicIfError(err)

	_, err = cc.output.Write(data)
	logger.PanicIfError(err)
}

// CmdRunner executes console commands against a sweep configuration and keeps the result of the last run.
type CmdRunner struct {
	ctx       *progctx.ProgCtx
	cfg       *simulation.Config
	last      *simulation.Result
	collector *metrics.Collector
	help      Help
}

func NewCmdRunner(ctx *progctx.ProgCtx, cfg *simulation.Config) *CmdRunner {
	if cfg == nil {
		cfg = simulation.DefaultConfig()
	}
	return &CmdRunner{
		ctx:  ctx,
		cfg:  cfg,
		help: newHelp(),
	}
}

// SetCollector attaches a metrics collector to every subsequent run.
func (rt *CmdRunner) SetCollector(c *metrics.Collector) {
	rt.collector = c
}

func (rt *CmdRunner) Config() *simulation.Config {
	return rt.cfg
}

// LastResult returns the result of the most recent run, or nil.
func (rt *CmdRunner) LastResult() *simulation.Result {
	return rt.last
}

func (rt *CmdRunner) RunCommand(cmdline string, output io.Writer) error {
	if rt.ctx.Err() == nil {
		cmd := Command{}

		if err := parseBytes([]byte(cmdline), &cmd); err != nil {
			if _, err := fmt.Fprintf(output, "Error: %v\n", err); err != nil {
				return err
			}
		} else {
			rt.execute(&cmd, output)
		}
	}
	return rt.ctx.Err()
}

func (rt *CmdRunner) HandleCommand(cmdline string, output io.Writer) error {
	return rt.RunCommand(cmdline, output)
}

func (rt *CmdRunner) GetPrompt() string {
	return Prompt
}

func (rt *CmdRunner) execute(cmd *Command, output io.Writer) {
	cc := &CommandContext{
		Context: rt.ctx,
		Command: cmd,
		rt:      rt,
		output:  output,
	}

	defer func() {
		if cc.Err() != nil {
			cc.outputf("Error: %v\n", cc.Err())
		} else {
			cc.outputf("Done\n")
		}
	}()

	defer func() {
		rerr := recover()

		if rerr != nil {
			if err, ok := rerr.(error); ok {
				cc.err = errors.Wrapf(err, "panic: %v", err)
			} else {
				cc.err = errors.Errorf("panic: %v", rerr)
			}
		}
	}()

	if cmd.Config != nil {
		rt.executeConfig(cc)
	} else if cmd.Set != nil {
		rt.executeSet(cc, cmd.Set)
	} else if cmd.Run != nil {
		rt.executeRun(cc)
	} else if cmd.Throughput != nil {
		rt.executeThroughput(cc)
	} else if cmd.Power != nil {
		rt.executePower(cc)
	} else if cmd.Kpi != nil {
		rt.executeKpi(cc)
	} else if cmd.Modes != nil {
		rt.executeModes(cc)
	} else if cmd.LogLevel != nil {
		rt.executeLogLevel(cc, cmd.LogLevel)
	} else if cmd.Help != nil {
		rt.executeHelp(cc, cmd.Help)
	} else if cmd.Exit != nil {
		rt.executeExit(cc)
	} else {
		logger.Panicf("unimplemented command: %#v", cmd)
	}
}

func (rt *CmdRunner) executeConfig(cc *CommandContext) {
	cc.outputAsYaml(rt.cfg)
}

func (rt *CmdRunner) executeSet(cc *CommandContext, cmd *SetCmd) {
	cfg := rt.cfg.Clone()

	switch {
	case cmd.Steps != nil:
		cfg.Steps = *cmd.Steps
	case cmd.StepSize != nil:
		cfg.StepSize = cmd.StepSize.Value()
	case cmd.StepTime != nil:
		cfg.StepTime = cmd.StepTime.Value()
	case cmd.Sta != nil:
		cfg.StaPosition = cmd.Sta.Vector()
	case cmd.Ap != nil:
		cfg.ApPosition = cmd.Ap.Vector()
	case cmd.MaxPower != nil:
		cfg.MaxPower = cmd.MaxPower.Value()
	case cmd.MinPower != nil:
		cfg.MinPower = cmd.MinPower.Value()
	case cmd.Levels != nil:
		cfg.PowerLevels = *cmd.Levels
	case cmd.Manager != nil:
		cfg.Manager = *cmd.Manager
	case cmd.Standard != nil:
		cfg.Standard = unquote(*cmd.Standard)
	case cmd.Pathloss != nil:
		cfg.Pathloss = unquote(*cmd.Pathloss)
	case cmd.Seed != nil:
		cfg.Seed = int64(*cmd.Seed)
	}

	if err := cfg.Validate(); err != nil {
		cc.error(err)
		return
	}
	rt.cfg = cfg
}

func (rt *CmdRunner) executeRun(cc *CommandContext) {
	sim, err := simulation.NewSimulation(rt.cfg.Clone())
	if err != nil {
		cc.error(err)
		return
	}
	if rt.collector != nil {
		sim.Subscribe(rt.collector)
		sim.AddObserver(rt.collector)
	}

	res, err := sim.Run(rt.ctx)
	if res != nil {
		rt.last = res
	}
	if err != nil {
		cc.error(err)
		return
	}
	cc.outputf("%d samples, final STA position %v\n", res.Throughput.Len(), res.Kpi.Sweep.FinalPosition)
}

func (rt *CmdRunner) executeThroughput(cc *CommandContext) {
	if rt.last == nil {
		cc.error(ErrNoResult)
		return
	}
	cc.error(RenderSeries(cc.output, rt.last.Throughput))
}

func (rt *CmdRunner) executePower(cc *CommandContext) {
	if rt.last == nil {
		cc.error(ErrNoResult)
		return
	}
	if rt.last.Power == nil {
		cc.errorf("rate manager '%s' does not adapt transmit power", rt.last.Kpi.Manager)
		return
	}
	cc.error(RenderSeries(cc.output, rt.last.Power))
}

func (rt *CmdRunner) executeKpi(cc *CommandContext) {
	if rt.last == nil {
		cc.error(ErrNoResult)
		return
	}
	cc.outputAsYaml(rt.last.Kpi)
}

func (rt *CmdRunner) executeModes(cc *CommandContext) {
	std, err := wifi.ParseStandard(rt.cfg.Standard)
	if err != nil {
		cc.error(err)
		return
	}
	phy, err := wifi.NewPhy(wifi.PhyConfig{
		Standard:     std,
		ChannelWidth: rt.cfg.ChannelWidth,
		FrequencyMhz: rt.cfg.Frequency,
		TxPowerStart: rt.cfg.MaxPower,
		TxPowerEnd:   rt.cfg.MaxPower,
		NTxPower:     1,
	})
	if err != nil {
		cc.error(err)
		return
	}
	dt, err := energy.NewDurationTable(phy, rt.cfg.PacketSize)
	if err != nil {
		cc.error(err)
		return
	}
	for _, e := range dt.Entries() {
		cc.outputf("%-10v %v\n", e.Rate, e.Duration)
	}
}

func (rt *CmdRunner) executeLogLevel(cc *CommandContext, cmd *LogLevelCmd) {
	if cmd.Level == "" {
		cc.outputf("%v\n", logger.GetLevelString(logger.GetLevel()))
		return
	}
	level, err := logger.ParseLevelString(cmd.Level)
	if err != nil {
		cc.error(err)
		return
	}
	logger.SetLevel(level)
}

func (rt *CmdRunner) executeHelp(cc *CommandContext, cmd *HelpCmd) {
	if len(cmd.HelpTopic) > 0 {
		cc.outputStr(rt.help.outputCommandHelp(cmd.HelpTopic))
	} else {
		cc.outputStr(rt.help.outputGeneralHelp())
	}
}

func (rt *CmdRunner) executeExit(cc *CommandContext) {
	rt.ctx.Cancel("exit")
}

func (p *PositionArg) Vector() Vector {
	v := Vector{X: p.X.Value(), Y: p.Y.Value()}
	if p.Z != nil {
		v.Z = p.Z.Value()
	}
	return v
}

func unquote(s string) string {
	return strings.Trim(s, "\"")
}
