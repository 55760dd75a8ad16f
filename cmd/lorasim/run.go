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

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/otns-lab/lorasim/logger"
	"github.com/otns-lab/lorasim/monitor"
	monitor_multi "github.com/otns-lab/lorasim/monitor/multi"
	monitor_promstats "github.com/otns-lab/lorasim/monitor/promstats"
	monitor_statslog "github.com/otns-lab/lorasim/monitor/statslog"
	"github.com/otns-lab/lorasim/simulation"
	"github.com/otns-lab/lorasim/terrain"
)

var (
	runFlags       configFlags
	runName        string
	runKpiFile     string
	runEnergyFile  string
	runStatsFile   string
	runMetricsFile string
	runShowNodes   bool
)

var runCmd = &cobra.Command{
	Use:   "run <terrain-file>",
	Short: "Run one simulation on a terrain file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := runFlags.load(cmd)
		if err != nil {
			return err
		}
		if runName != "" {
			cfg.Name = runName
		}
		ter, err := terrain.ReadFile(args[0])
		if err != nil {
			return err
		}

		mon, promMon := newRunMonitor(runStatsFile, runMetricsFile != "")
		ctx := newProgCtx()
		defer ctx.Cancel("run done")

		sim, err := simulation.NewSimulation(ctx, cfg, ter, mon)
		if err != nil {
			return err
		}
		if runShowNodes {
			logger.Println(sim.SfAssignment())
		}
		summary, runErr := sim.Run()
		logger.Println(summary.String())

		if runKpiFile != "" {
			if err = summary.SaveFile(runKpiFile); err != nil {
				return err
			}
		}
		if runEnergyFile != "" {
			if err = sim.SaveEnergyFile(runEnergyFile); err != nil {
				return err
			}
		}
		if promMon != nil {
			if err = writeMetricsFile(runMetricsFile, promMon); err != nil {
				return err
			}
		}
		return runErr
	},
}

func init() {
	runFlags.bind(runCmd)
	runCmd.Flags().StringVar(&runName, "name", "", "name of the run, used in the summary")
	runCmd.Flags().StringVar(&runKpiFile, "kpi-file", "", "write the summary to this file (.json, .yaml)")
	runCmd.Flags().StringVar(&runEnergyFile, "energy-file", "", "write energy results to <file>.txt and <file>_nodes.txt")
	runCmd.Flags().StringVar(&runStatsFile, "stats-file", "", "write network progress over time to this CSV file")
	runCmd.Flags().StringVar(&runMetricsFile, "metrics-file", "", "write run metrics in Prometheus text format to this file")
	runCmd.Flags().BoolVar(&runShowNodes, "show-nodes", false, "print the spreading factor assigned to every node before running")
}

// newRunMonitor combines the monitors selected on the command line.
func newRunMonitor(statsFile string, withMetrics bool) (monitor.Monitor, *monitor_promstats.PromStatsMonitor) {
	mm := monitor_multi.NewMultiMonitor()
	if statsFile != "" {
		mm.AddMonitor(monitor_statslog.NewStatslogMonitor(statsFile))
	}
	var promMon *monitor_promstats.PromStatsMonitor
	if withMetrics {
		var err error
		promMon, err = monitor_promstats.NewPromStatsMonitor(prometheus.NewRegistry())
		logger.PanicIfError(err)
		mm.AddMonitor(promMon)
	}
	if mm.Len() == 0 {
		return monitor.NewNopMonitor(), nil
	}
	return mm, promMon
}

func writeMetricsFile(fn string, pm *monitor_promstats.PromStatsMonitor) error {
	f, err := os.Create(fn)
	if err != nil {
		return errors.Wrapf(err, "create metrics file")
	}
	if err = pm.WriteText(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
