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

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/wifisim/distsweep/cli"
	"github.com/wifisim/distsweep/logger"
	"github.com/wifisim/distsweep/metrics"
	"github.com/wifisim/distsweep/progctx"
)

var consoleFlags struct {
	echo        bool
	historyFile string
	metricsAddr string
}

var consoleCmd = &cobra.Command{
	Use:   "console",
	Short: "Start an interactive console to configure and repeat sweeps",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		ctx := progctx.New(context.Background())
		defer ctx.Wait()
		defer ctx.Cancel("console exit")

		rt := cli.NewCmdRunner(ctx, cfg)
		if consoleFlags.metricsAddr != "" {
			collector, err := metrics.NewCollector(prometheus.NewRegistry())
			if err != nil {
				return err
			}
			rt.SetCollector(collector)
			serveMetrics(ctx, consoleFlags.metricsAddr, collector)
		}

		console := cli.NewCliInstance()
		logger.SetStdoutCallback(console)
		defer logger.SetStdoutCallback(nil)
		err = console.Run(rt, &cli.CliOptions{
			EchoInput:   consoleFlags.echo,
			HistoryFile: consoleFlags.historyFile,
		})
		if ctx.Err() != nil {
			// ended by the exit command
			return ctx.Cause()
		}
		return err
	},
}

func init() {
	f := consoleCmd.Flags()
	f.BoolVar(&consoleFlags.echo, "echo", false, "echo each input line, for scripted input")
	f.StringVar(&consoleFlags.historyFile, "history", "", "file to keep the command history in")
	f.StringVar(&consoleFlags.metricsAddr, "metrics", "", "serve Prometheus metrics on this address, e.g. :9100")
}
