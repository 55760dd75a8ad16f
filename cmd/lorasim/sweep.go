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
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/otns-lab/lorasim/logger"
	"github.com/otns-lab/lorasim/store"
	"github.com/otns-lab/lorasim/sweep"
	"github.com/otns-lab/lorasim/terrain"
)

var (
	sweepFlags     configFlags
	sweepSeeds     int
	sweepFirstSeed int64
	sweepWorkers   int
	sweepDb        string
)

var sweepCmd = &cobra.Command{
	Use:   "sweep <terrain-file>...",
	Short: "Run many seeds on one or more terrain files in parallel",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := sweepFlags.load(cmd)
		if err != nil {
			return err
		}

		var jobs []sweep.Job
		for _, fn := range args {
			ter, err := terrain.ReadFile(fn)
			if err != nil {
				return err
			}
			name := strings.TrimSuffix(filepath.Base(fn), filepath.Ext(fn))
			jobs = append(jobs, sweep.SeedJobs(name, cfg, ter, sweepFirstSeed, sweepSeeds)...)
		}

		var db *store.Store
		if sweepDb != "" {
			if db, err = store.Open(sweepDb); err != nil {
				return err
			}
			defer db.Close()
		}

		ctx := newProgCtx()
		defer ctx.Cancel("sweep done")

		results := sweep.Run(ctx, jobs, sweepWorkers)
		byName := map[string][]sweep.Result{}
		var names []string
		for _, r := range results {
			if r.Err != nil {
				logger.Errorf("%v", r.Err)
			} else {
				logger.Println(fmt.Sprintf("%-30s pdr=%.4f collection=%.3fs energy=%.6fJ collisions=%d",
					r.Job.Name, r.Summary.Pdr, r.Summary.CollectionTimeSec, r.Summary.AvgEnergyJ, r.Summary.Collisions))
			}
			if db != nil && r.Summary != nil {
				if err = db.SaveSummary(context.Background(), r.Summary); err != nil {
					return err
				}
			}
			name := r.Job.Config.Name
			if _, ok := byName[name]; !ok {
				names = append(names, name)
			}
			byName[name] = append(byName[name], r)
		}
		for _, name := range names {
			logger.Println(fmt.Sprintf("%s: %v", name, sweep.Summarize(byName[name])))
		}
		return ctx.Err()
	},
}

func init() {
	sweepFlags.bind(sweepCmd)
	sweepCmd.Flags().IntVar(&sweepSeeds, "seeds", 10, "number of seeds per terrain file")
	sweepCmd.Flags().Int64Var(&sweepFirstSeed, "first-seed", 1, "first seed of the sweep")
	sweepCmd.Flags().IntVar(&sweepWorkers, "workers", runtime.NumCPU(), "number of simulations run in parallel")
	sweepCmd.Flags().StringVar(&sweepDb, "db", "", "store run summaries in this SQLite database")
}
