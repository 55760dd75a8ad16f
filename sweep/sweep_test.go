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

package sweep

import (
	"context"
	"fmt"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/otns-lab/lorasim/radiomodel"
	"github.com/otns-lab/lorasim/simulation"
	"github.com/otns-lab/lorasim/terrain"
)

func testTerrain(t *testing.T) *terrain.Terrain {
	ter, err := terrain.Generate(20, 150, 5)
	assert.Nil(t, err)
	return ter
}

func TestSeedJobs(t *testing.T) {
	cfg := simulation.DefaultConfig()
	jobs := SeedJobs("s", cfg, testTerrain(t), 10, 3)
	assert.Equal(t, 3, len(jobs))
	for i, j := range jobs {
		assert.Equal(t, int64(10+i), j.Config.Seed)
		assert.Equal(t, fmt.Sprintf("s/seed-%d", 10+i), j.Name)
	}
	assert.Equal(t, simulation.DefaultSeed, cfg.Seed)
}

func TestRunOrderAndDeterminism(t *testing.T) {
	cfg := simulation.DefaultConfig()
	cfg.DataBytes = 400
	cfg.Traffic.MaxRetransmissions = 2
	ter := testTerrain(t)

	parallel := Run(context.Background(), SeedJobs("p", cfg, ter, 1, 6), 3)
	serial := Run(context.Background(), SeedJobs("p", cfg, ter, 1, 6), 1)
	assert.Equal(t, 6, len(parallel))
	for i := range parallel {
		assert.Nil(t, parallel[i].Err)
		assert.Nil(t, serial[i].Err)
		assert.Equal(t, int64(1+i), parallel[i].Summary.Seed)
		assert.Equal(t, serial[i].Summary.Transmissions, parallel[i].Summary.Transmissions)
		assert.Equal(t, serial[i].Summary.Collisions, parallel[i].Summary.Collisions)
		assert.Equal(t, serial[i].Summary.CollectionTimeSec, parallel[i].Summary.CollectionTimeSec)
	}

	agg := Summarize(parallel)
	assert.Equal(t, 6, agg.Runs)
	assert.Equal(t, 0, agg.Failed)
	assert.True(t, agg.MeanPdr > 0 && agg.MeanPdr <= 1)
}

func TestRunFailedJob(t *testing.T) {
	far := &terrain.Terrain{Side: 100, Nodes: []terrain.NodePosition{{Id: 1, X: 900, Y: 900}}}
	jobs := []Job{
		{Name: "ok", Config: simulation.DefaultConfig(), Terrain: testTerrain(t)},
		{Name: "unreachable", Config: simulation.DefaultConfig(), Terrain: far},
	}
	res := Run(context.Background(), jobs, 4)
	assert.Nil(t, res[0].Err)
	assert.NotNil(t, res[0].Summary)
	assert.Equal(t, radiomodel.ErrUnreachable, errors.Cause(res[1].Err))
	assert.Nil(t, res[1].Summary)

	agg := Summarize(res)
	assert.Equal(t, 1, agg.Runs)
	assert.Equal(t, 1, agg.Failed)
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res := Run(ctx, SeedJobs("c", simulation.DefaultConfig(), testTerrain(t), 1, 4), 2)
	assert.Equal(t, 4, len(res))
	for _, r := range res {
		assert.Equal(t, context.Canceled, errors.Cause(r.Err))
	}
}

func TestRunEmpty(t *testing.T) {
	assert.Equal(t, 0, len(Run(context.Background(), nil, 4)))
}
