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

package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/otns-lab/lorasim/simulation"
)

func testSummary(id string, name string, created string) *simulation.Summary {
	return &simulation.Summary{
		RunId:      id,
		Name:       name,
		Status:     "ok",
		Created:    created,
		Seed:       3,
		Nodes:      10,
		NodesPerSf: map[string]int{"SF7": 6, "SF8": 4},
		Delivered:  90,
		Dropped:    2,
		Pdr:        0.98,
	}
}

func TestSaveAndList(t *testing.T) {
	ctx := context.Background()
	st, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	assert.Nil(t, err)
	defer st.Close()

	assert.Nil(t, st.SaveSummary(ctx, testSummary("b", "sweep", "2024-01-01T00:00:02Z")))
	assert.Nil(t, st.SaveSummary(ctx, testSummary("a", "sweep", "2024-01-01T00:00:01Z")))
	assert.Nil(t, st.SaveSummary(ctx, testSummary("c", "", "2024-01-01T00:00:03Z")))

	all, err := st.ListSummaries(ctx, "")
	assert.Nil(t, err)
	assert.Equal(t, 3, len(all))
	assert.Equal(t, "a", all[0].RunId)
	assert.Equal(t, "b", all[1].RunId)
	assert.Equal(t, "c", all[2].RunId)

	sweep, err := st.ListSummaries(ctx, "sweep")
	assert.Nil(t, err)
	assert.Equal(t, 2, len(sweep))

	got, err := st.GetSummary(ctx, "a")
	assert.Nil(t, err)
	assert.Equal(t, testSummary("a", "sweep", "2024-01-01T00:00:01Z"), got)
}

func TestReplaceAndMissing(t *testing.T) {
	ctx := context.Background()
	fn := filepath.Join(t.TempDir(), "runs.db")
	st, err := Open(fn)
	assert.Nil(t, err)

	s := testSummary("x", "n", "2024-01-01T00:00:00Z")
	assert.Nil(t, st.SaveSummary(ctx, s))
	s.Delivered = 100
	assert.Nil(t, st.SaveSummary(ctx, s))
	assert.Nil(t, st.Close())

	st, err = Open(fn)
	assert.Nil(t, err)
	defer st.Close()
	all, err := st.ListSummaries(ctx, "")
	assert.Nil(t, err)
	assert.Equal(t, 1, len(all))
	assert.Equal(t, 100, all[0].Delivered)

	_, err = st.GetSummary(ctx, "nope")
	assert.Equal(t, ErrNotFound, errors.Cause(err))
}
