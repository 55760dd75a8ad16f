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
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/simonlingoogle/go-simplelogger"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"

	"github.com/otns-lab/lorasim/logger"
	"github.com/otns-lab/lorasim/monitor"
	"github.com/otns-lab/lorasim/simulation"
	. "github.com/otns-lab/lorasim/types"
)

func newFlagsCmd(f *configFlags, args ...string) *cobra.Command {
	cmd := &cobra.Command{Use: "test"}
	f.bind(cmd)
	_ = cmd.ParseFlags(args)
	return cmd
}

func TestConfigFlagsDefaults(t *testing.T) {
	f := &configFlags{}
	cfg, err := f.load(newFlagsCmd(f))
	assert.Nil(t, err)
	assert.Equal(t, simulation.DefaultConfig(), cfg)
}

func TestConfigFlagsOverrideFile(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "cfg.yaml")
	assert.Nil(t, os.WriteFile(fn, []byte("seed: 5\ndata_bytes: 100\ntraffic:\n  max_jitter: 1\n"), 0644))

	f := &configFlags{}
	cfg, err := f.load(newFlagsCmd(f, "--config", fn, "--data", "700", "--bw", "500", "--max-retx", "4"))
	assert.Nil(t, err)
	assert.Equal(t, int64(5), cfg.Seed)
	assert.Equal(t, 700, cfg.DataBytes)
	assert.Equal(t, 1.0, cfg.Traffic.MaxJitter)
	assert.Equal(t, 4, cfg.Traffic.MaxRetransmissions)
	assert.Equal(t, BW500, cfg.Radio.Bandwidth)

	f = &configFlags{}
	_, err = f.load(newFlagsCmd(f, "--bw", "100"))
	assert.NotNil(t, err)
	f = &configFlags{}
	_, err = f.load(newFlagsCmd(f, "--data", "-1"))
	assert.NotNil(t, err)
}

func TestNewRunMonitor(t *testing.T) {
	mon, pm := newRunMonitor("", false)
	assert.Nil(t, pm)
	assert.Equal(t, monitor.NewNopMonitor(), mon)

	dir := t.TempDir()
	mon, pm = newRunMonitor(filepath.Join(dir, "stats.csv"), true)
	assert.NotNil(t, pm)
	mon.Init()
	mon.AddNode(1, SF7, 10)
	mon.OnNodeFinished(1)
	mon.Stop()

	fn := filepath.Join(dir, "metrics.txt")
	assert.Nil(t, writeMetricsFile(fn, pm))
	data, err := os.ReadFile(fn)
	assert.Nil(t, err)
	assert.True(t, strings.Contains(string(data), "lorasim_nodes_active 0"))
	_, err = os.Stat(filepath.Join(dir, "stats.csv"))
	assert.Nil(t, err)
}

func TestSimpleloggerLevel(t *testing.T) {
	assert.Equal(t, simplelogger.DebugLevel, simpleloggerLevel(logger.TraceLevel))
	assert.Equal(t, simplelogger.InfoLevel, simpleloggerLevel(logger.InfoLevel))
	assert.Equal(t, simplelogger.InfoLevel, simpleloggerLevel(logger.NoteLevel))
	assert.Equal(t, simplelogger.WarnLevel, simpleloggerLevel(logger.WarnLevel))
	assert.Equal(t, simplelogger.ErrorLevel, simpleloggerLevel(logger.ErrorLevel))
	assert.Equal(t, simplelogger.PanicLevel, simpleloggerLevel(logger.OffLevel))
}
