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

package main

import (
	"context"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/wifisim/distsweep/cli"
	"github.com/wifisim/distsweep/logger"
	"github.com/wifisim/distsweep/metrics"
	"github.com/wifisim/distsweep/pcap"
	"github.com/wifisim/distsweep/progctx"
	"github.com/wifisim/distsweep/simulation"
	"github.com/wifisim/distsweep/statslog"
	"github.com/wifisim/distsweep/stream"
)

var runFlags struct {
	steps       int
	stepSize    float64
	stepTime    float64
	staX        float64
	maxPower    float64
	minPower    float64
	manager     string
	seed        int64
	metricsAddr string
	pcapFile    string
	pcapType    string
	statsLog    string
	showKpi     bool
	grpcAddr    string
	grpcLinger  time.Duration
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one sweep and print the sample series",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		applyRunFlags(cmd, cfg)

		ctx := progctx.New(context.Background())
		defer ctx.Wait()
		defer ctx.Cancel("run done")
		handleSignals(ctx)

		sim, err := simulation.NewSimulation(cfg)
		if err != nil {
			return err
		}

		if runFlags.metricsAddr != "" {
			collector, err := metrics.NewCollector(nil)
			if err != nil {
				return err
			}
			sim.Subscribe(collector)
			sim.AddObserver(collector)
			serveMetrics(ctx, runFlags.metricsAddr, collector)
		}

		if runFlags.pcapFile != "" {
			capture, err := openCapture(sim)
			if err != nil {
				return err
			}
			defer func() {
				if err := capture.Close(); err != nil {
					logger.Errorf("closing %s: %v", runFlags.pcapFile, err)
				}
			}()
		}

		if runFlags.statsLog != "" {
			sl, err := statslog.New(runFlags.statsLog)
			if err != nil {
				return err
			}
			defer sl.Close()
			sim.AddObserver(sl)
		}

		var samples *stream.Server
		if runFlags.grpcAddr != "" {
			if samples, err = serveSamples(ctx, runFlags.grpcAddr); err != nil {
				return err
			}
			sim.AddObserver(samples)
		}

		res, err := sim.Run(ctx)
		if samples != nil {
			samples.Finish()
			lingerForWatchers(ctx, runFlags.grpcLinger)
		}
		if errors.Is(err, simulation.ErrNoSteps) {
			return nil
		}
		if res != nil {
			if rerr := printResult(res); rerr != nil {
				return rerr
			}
		}
		return err
	},
}

func init() {
	f := runCmd.Flags()
	f.IntVar(&runFlags.steps, "steps", simulation.DefaultSteps, "number of sweep steps")
	f.Float64Var(&runFlags.stepSize, "stepsize", simulation.DefaultStepSize, "distance the station moves per step (m)")
	f.Float64Var(&runFlags.stepTime, "steptime", simulation.DefaultStepTime, "time spent per step (s)")
	f.Float64Var(&runFlags.staX, "sta-x", simulation.DefaultStaX, "initial x coordinate of the station (m)")
	f.Float64Var(&runFlags.maxPower, "maxpower", simulation.DefaultMaxPower, "maximum AP transmit power (dBm)")
	f.Float64Var(&runFlags.minPower, "minpower", simulation.DefaultMinPower, "minimum AP transmit power (dBm)")
	f.StringVar(&runFlags.manager, "manager", simulation.DefaultManager, "AP rate manager: parf or constant")
	f.Int64Var(&runFlags.seed, "seed", simulation.DefaultSeed, "random seed, 0 seeds from the wall clock")
	f.StringVar(&runFlags.metricsAddr, "metrics", "", "serve Prometheus metrics on this address during the run, e.g. :9100")
	f.StringVar(&runFlags.pcapFile, "pcap", "", "write the frames transmitted by the AP to this PCAP file")
	f.StringVar(&runFlags.pcapType, "pcap-type", pcap.LinkTypeRadiotapStr, "PCAP link type: wifi or radiotap")
	f.StringVar(&runFlags.statsLog, "stats-log", "", "write every sample to this CSV file")
	f.BoolVar(&runFlags.showKpi, "kpi", false, "print the run KPIs as YAML")
	f.StringVar(&runFlags.grpcAddr, "grpc", "", "stream the samples to gRPC watchers on this address, e.g. :9200")
	f.DurationVar(&runFlags.grpcLinger, "grpc-linger", 0, "keep the sample stream open this long after the run")
}

// applyRunFlags overrides the configuration with the flags given on the command line.
func applyRunFlags(cmd *cobra.Command, cfg *simulation.Config) {
	f := cmd.Flags()
	if f.Changed("steps") {
		cfg.Steps = runFlags.steps
	}
	if f.Changed("stepsize") {
		cfg.StepSize = runFlags.stepSize
	}
	if f.Changed("steptime") {
		cfg.StepTime = runFlags.stepTime
	}
	if f.Changed("sta-x") {
		cfg.StaPosition.X = runFlags.staX
	}
	if f.Changed("maxpower") {
		cfg.MaxPower = runFlags.maxPower
	}
	if f.Changed("minpower") {
		cfg.MinPower = runFlags.minPower
	}
	if f.Changed("manager") {
		cfg.Manager = runFlags.manager
	}
	if f.Changed("seed") {
		cfg.Seed = runFlags.seed
	}
}

func openCapture(sim *simulation.Simulation) (*pcap.Capture, error) {
	linkType := pcap.ParseLinkTypeStr(runFlags.pcapType)
	if linkType == pcap.LinkTypeOff || linkType == pcap.LinkTypeUnknown {
		return nil, errors.Errorf("invalid PCAP type: %s", runFlags.pcapType)
	}
	file, err := pcap.NewFile(runFlags.pcapFile, linkType)
	if err != nil {
		return nil, err
	}
	return sim.CapturePcap(file), nil
}

func printResult(res *simulation.Result) error {
	if err := cli.RenderTitle(os.Stdout, "Sweep "+res.Kpi.RunId); err != nil {
		return err
	}
	if err := cli.RenderSeries(os.Stdout, res.Throughput, res.Power); err != nil {
		return err
	}
	if !runFlags.showKpi {
		return nil
	}
	enc := yaml.NewEncoder(os.Stdout)
	defer enc.Close()
	return enc.Encode(res.Kpi)
}

func serveMetrics(ctx *progctx.ProgCtx, addr string, collector *metrics.Collector) {
	srv := &http.Server{
		Addr:              addr,
		Handler:           collector.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	ctx.Go("metrics", func(ctx *progctx.ProgCtx) error {
		logger.Infof("metrics listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	ctx.Defer(func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	})
}

func serveSamples(ctx *progctx.ProgCtx, addr string) (*stream.Server, error) {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	srv := stream.NewServer()
	ctx.Go("samples", func(ctx *progctx.ProgCtx) error {
		return srv.Serve(lis)
	})
	ctx.Defer(srv.Stop)
	return srv, nil
}

func lingerForWatchers(ctx *progctx.ProgCtx, d time.Duration) {
	if d <= 0 {
		return
	}
	logger.Infof("sample stream open for another %v", d)
	select {
	case <-time.After(d):
	case <-ctx.Done():
	}
}
