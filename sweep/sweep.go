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

// Package sweep runs many independent simulations in a bounded pool of workers.
// A single run is never split across workers.
package sweep

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/pkg/errors"

	"github.com/otns-lab/lorasim/logger"
	"github.com/otns-lab/lorasim/monitor"
	"github.com/otns-lab/lorasim/progctx"
	"github.com/otns-lab/lorasim/simulation"
	"github.com/otns-lab/lorasim/terrain"
)

// Job is one simulation run of a sweep.
type Job struct {
	Name    string
	Config  *simulation.Config
	Terrain *terrain.Terrain

	// NewMonitor optionally creates the monitor of the run. It is called from the worker.
	NewMonitor func(job *Job) monitor.Monitor
}

// Result is the outcome of a Job. Summary is nil if the run could not be set up.
type Result struct {
	Job     *Job
	Summary *simulation.Summary
	Err     error
}

// SeedJobs returns one job per seed in [firstSeed, firstSeed+n), all on the same terrain.
func SeedJobs(name string, cfg *simulation.Config, ter *terrain.Terrain, firstSeed int64, n int) []Job {
	jobs := make([]Job, 0, n)
	for i := 0; i < n; i++ {
		c := cfg.Clone()
		c.Seed = firstSeed + int64(i)
		c.Name = name
		jobs = append(jobs, Job{
			Name:    fmt.Sprintf("%s/seed-%d", name, c.Seed),
			Config:  c,
			Terrain: ter,
		})
	}
	return jobs
}

// Run executes the jobs with at most workers concurrent runs and returns the results
// in job order. Cancelling ctx stops the running simulations; jobs not started by then
// get the cancellation error.
func Run(ctx context.Context, jobs []Job, workers int) []Result {
	if workers <= 0 {
		workers = 1
	}
	if workers > len(jobs) {
		workers = len(jobs)
	}

	pctx := progctx.New(ctx)
	defer pctx.Cancel("sweep done")

	results := make([]Result, len(jobs))
	next := make(chan int)
	var done int32

	for w := 0; w < workers; w++ {
		pctx.Go(fmt.Sprintf("sweep-worker-%d", w), func() {
			for i := range next {
				results[i] = runJob(pctx, &jobs[i])
				n := atomic.AddInt32(&done, 1)
				logger.Debugf("sweep: %d/%d done (%s)", n, len(jobs), jobs[i].Name)
			}
		})
	}

feed:
	for i := range jobs {
		select {
		case next <- i:
		case <-pctx.Done():
			for j := i; j < len(jobs); j++ {
				results[j] = Result{Job: &jobs[j], Err: errors.Wrapf(pctx.Err(), "job %s not started", jobs[j].Name)}
			}
			break feed
		}
	}
	close(next)
	pctx.Wait()
	return results
}

func runJob(ctx context.Context, job *Job) Result {
	res := Result{Job: job}
	var mon monitor.Monitor
	if job.NewMonitor != nil {
		mon = job.NewMonitor(job)
	}
	sim, err := simulation.NewSimulation(ctx, job.Config, job.Terrain, mon)
	if err != nil {
		res.Err = errors.Wrapf(err, "job %s", job.Name)
		return res
	}
	res.Summary, err = sim.Run()
	if err != nil {
		res.Err = errors.Wrapf(err, "job %s", job.Name)
	}
	return res
}

// Aggregate holds mean KPIs over the successful runs of a sweep.
type Aggregate struct {
	Runs              int     `json:"runs" yaml:"runs"`
	Failed            int     `json:"failed" yaml:"failed"`
	MeanPdr           float64 `json:"mean_pdr" yaml:"mean_pdr"`
	MeanCollectionSec float64 `json:"mean_collection_time_sec" yaml:"mean_collection_time_sec"`
	MeanEnergyJ       float64 `json:"mean_avg_energy_j" yaml:"mean_avg_energy_j"`
	MeanCollisions    float64 `json:"mean_collisions" yaml:"mean_collisions"`
}

func Summarize(results []Result) Aggregate {
	agg := Aggregate{}
	for _, r := range results {
		if r.Err != nil || r.Summary == nil {
			agg.Failed++
			continue
		}
		agg.Runs++
		agg.MeanPdr += r.Summary.Pdr
		agg.MeanCollectionSec += r.Summary.CollectionTimeSec
		agg.MeanEnergyJ += r.Summary.AvgEnergyJ
		agg.MeanCollisions += float64(r.Summary.Collisions)
	}
	if agg.Runs > 0 {
		n := float64(agg.Runs)
		agg.MeanPdr /= n
		agg.MeanCollectionSec /= n
		agg.MeanEnergyJ /= n
		agg.MeanCollisions /= n
	}
	return agg
}

func (agg Aggregate) String() string {
	return fmt.Sprintf("runs=%d failed=%d pdr=%.4f collection=%.3fs energy=%.6fJ collisions=%.1f",
		agg.Runs, agg.Failed, agg.MeanPdr, agg.MeanCollectionSec, agg.MeanEnergyJ, agg.MeanCollisions)
}
