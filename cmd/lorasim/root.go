// Copyright (c) 2024, The OTNS Authors.
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
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/simonlingoogle/go-simplelogger"
	"github.com/spf13/cobra"

	"github.com/otns-lab/lorasim/logger"
	"github.com/otns-lab/lorasim/progctx"
)

var (
	logLevel string
	logFile  string
)

var rootCmd = &cobra.Command{
	Use:   "lorasim",
	Short: "LoRa data-collection simulator",
	Long: "lorasim simulates sensor nodes that upload a fixed data volume to a single LoRa gateway, " +
		"and reports collection time, energy and packet delivery ratio.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		lv, err := logger.ParseLevelString(logLevel)
		if err != nil {
			return err
		}
		logger.SetLevel(lv)
		simplelogger.SetLevel(simpleloggerLevel(lv))
		if logFile != "" {
			logger.SetOutput([]string{"stderr", logFile})
		}
		return nil
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "warn", "log level: trace, debug, info, note, warn, error, off")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "also write the log to this file")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(sweepCmd)
	rootCmd.AddCommand(terrainCmd)
	rootCmd.AddCommand(consoleCmd)
}

// newProgCtx creates the program context, cancelled on SIGINT, SIGTERM, SIGQUIT or SIGHUP.
func newProgCtx() *progctx.ProgCtx {
	ctx := progctx.New(context.Background())
	handleSignals(ctx)
	return ctx
}

func handleSignals(ctx *progctx.ProgCtx) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGINT, syscall.SIGHUP)

	ctx.Go("handleSignals", func() {
		defer logger.Debugf("handleSignals exit.")
		defer signal.Stop(c)

		select {
		case sig := <-c:
			logger.Infof("signal received: %v", sig)
			ctx.Cancel(fmt.Errorf("signal %v", sig))
		case <-ctx.Done():
		}
	})
}

// simpleloggerLevel maps a log level onto the levels of the progctx logger.
func simpleloggerLevel(lv logger.Level) simplelogger.Level {
	switch {
	case lv >= logger.DebugLevel:
		return simplelogger.DebugLevel
	case lv >= logger.NoteLevel:
		return simplelogger.InfoLevel
	case lv == logger.WarnLevel:
		return simplelogger.WarnLevel
	case lv == logger.ErrorLevel:
		return simplelogger.ErrorLevel
	default:
		return simplelogger.PanicLevel
	}
}
