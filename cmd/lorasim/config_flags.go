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
	"github.com/spf13/cobra"

	"github.com/otns-lab/lorasim/simulation"
	. "github.com/otns-lab/lorasim/types"
)

// configFlags are the run settings that can be given on the command line. Flags that are
// set override the config file.
type configFlags struct {
	configFile string
	seed       int64
	dataBytes  int
	maxRetx    int
	jitter     float64
	bandwidth  int
}

func (f *configFlags) bind(cmd *cobra.Command) {
	def := simulation.DefaultConfig()
	cmd.Flags().StringVar(&f.configFile, "config", "", "YAML run configuration file")
	cmd.Flags().Int64Var(&f.seed, "seed", def.Seed, "random seed, 0 for a time-based seed")
	cmd.Flags().IntVar(&f.dataBytes, "data", def.DataBytes, "data volume (bytes) per node")
	cmd.Flags().IntVar(&f.maxRetx, "max-retx", def.Traffic.MaxRetransmissions, "max retransmissions per payload chunk")
	cmd.Flags().Float64Var(&f.jitter, "jitter", def.Traffic.MaxJitter, "max random jitter (s) between transmissions")
	cmd.Flags().IntVar(&f.bandwidth, "bw", int(def.Radio.Bandwidth), "bandwidth (kHz): 125, 250 or 500")
}

// load returns the run configuration: defaults, then the config file, then the flags that were set.
func (f *configFlags) load(cmd *cobra.Command) (*simulation.Config, error) {
	cfg := simulation.DefaultConfig()
	if f.configFile != "" {
		var err error
		if cfg, err = simulation.LoadConfigFile(f.configFile); err != nil {
			return nil, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = f.seed
	}
	if flags.Changed("data") {
		cfg.DataBytes = f.dataBytes
	}
	if flags.Changed("max-retx") {
		cfg.Traffic.MaxRetransmissions = f.maxRetx
	}
	if flags.Changed("jitter") {
		cfg.Traffic.MaxJitter = f.jitter
	}
	if flags.Changed("bw") {
		bw, err := ParseBandwidth(f.bandwidth)
		if err != nil {
			return nil, err
		}
		cfg.Radio.Bandwidth = bw
	}
	return cfg, cfg.Validate()
}
