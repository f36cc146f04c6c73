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
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/wifisim/distsweep/logger"
	"github.com/wifisim/distsweep/progctx"
	"github.com/wifisim/distsweep/simulation"
)

var (
	logLevel   string
	logOutputs []string
	configPath string
)

var rootCmd = &cobra.Command{
	Use:           "distsweep",
	Short:         "Wi-Fi power and rate versus distance sweeps",
	Long:          "distsweep moves a station away from an access point and samples throughput and average transmit power.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := logger.ParseLevelString(logLevel)
		if err != nil {
			return err
		}
		logger.SetLevel(level)
		if len(logOutputs) > 0 {
			logger.SetOutput(logOutputs)
		}
		return nil
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "info", "log level: micro, trace, debug, info, note, warn, error or off")
	rootCmd.PersistentFlags().StringSliceVar(&logOutputs, "log-output", nil, "log destinations: file paths, stdout or stderr")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a sweep configuration YAML file")
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(consoleCmd)
	rootCmd.AddCommand(watchCmd)
}

// loadConfig returns the configuration file given by --config, or the defaults.
func loadConfig() (*simulation.Config, error) {
	if configPath == "" {
		return simulation.DefaultConfig(), nil
	}
	return simulation.LoadConfigFile(configPath)
}

func handleSignals(ctx *progctx.ProgCtx) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGTERM, syscall.SIGINT, syscall.SIGHUP)

	ctx.Go("handleSignals", func(ctx *progctx.ProgCtx) error {
		defer signal.Stop(c)
		select {
		case sig := <-c:
			logger.Infof("signal received: %v", sig)
			ctx.Cancel(nil)
		case <-ctx.Done():
		}
		return nil
	})
}
