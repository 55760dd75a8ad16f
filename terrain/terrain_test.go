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

package terrain

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

const sampleTerrain = `# generated for a test
# node coords: 2 [100.0 7.5] 1 [12.3 45.6]   3 [250.1 499.9]
# some other comment
# stats: nodes=3 terrain=250000.0m^2 density=0.000012
`

func TestParse(t *testing.T) {
	ter, err := Parse(strings.NewReader(sampleTerrain))
	assert.Nil(t, err)
	assert.Equal(t, 500.0, ter.Side)
	assert.Equal(t, 3, ter.NumNodes())
	assert.Equal(t, NodePosition{Id: 1, X: 12.3, Y: 45.6}, ter.Nodes[0])
	assert.Equal(t, NodePosition{Id: 2, X: 100.0, Y: 7.5}, ter.Nodes[1])
	assert.Equal(t, 3, ter.Nodes[2].Id)

	gw := ter.Gateway(10)
	assert.Equal(t, 250.0, gw.X)
	assert.Equal(t, 250.0, gw.Y)
	assert.Equal(t, 10.0, gw.Z)
}

func TestParseMissingLines(t *testing.T) {
	_, err := Parse(strings.NewReader("# node coords: 1 [1.0 2.0]\n"))
	assert.Equal(t, ErrMissingStats, errors.Cause(err))

	_, err = Parse(strings.NewReader("# stats: terrain=100.0m^2\n"))
	assert.Equal(t, ErrMissingCoords, errors.Cause(err))

	_, err = Parse(strings.NewReader("# stats: terrain=100.0m^2\n# node coords:\n"))
	assert.Equal(t, ErrNoNodes, errors.Cause(err))
}

func TestParseMalformed(t *testing.T) {
	for _, input := range []string{
		"# stats: nodes=1 area=100m^2\n# node coords: 1 [1.0 2.0]\n",
		"# stats: terrain=0.0m^2\n# node coords: 1 [1.0 2.0]\n",
		"# stats: terrain=100.0m^2\n# node coords: 1 [1.0 2.0] 2 [3.0]\n",
		"# stats: terrain=100.0m^2\n# node coords: 1 [1.0 2.0] junk\n",
		"# stats: terrain=100.0m^2\n# node coords: 1 [1.0 2.0] 1 [3.0 4.0]\n",
		"# stats: terrain=100.0m^2\n# node coords: 0 [1.0 2.0]\n",
	} {
		_, err := Parse(strings.NewReader(input))
		assert.Equal(t, ErrMalformed, errors.Cause(err), input)
	}
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "nonexistent.txt"))
	assert.NotNil(t, err)
	assert.Contains(t, err.Error(), "open terrain file")
}

func TestGenerateWriteParse(t *testing.T) {
	ter, err := Generate(200, 300.0, 42)
	assert.Nil(t, err)
	assert.Equal(t, 200, ter.NumNodes())
	assert.Nil(t, ter.Validate())

	seen := map[[2]float64]bool{}
	for i, n := range ter.Nodes {
		assert.Equal(t, i+1, n.Id)
		assert.True(t, n.X >= 0 && n.X <= 300.0)
		assert.True(t, n.Y >= 0 && n.Y <= 300.0)
		key := [2]float64{n.X, n.Y}
		assert.False(t, seen[key], "duplicate coordinates")
		seen[key] = true
	}

	fn := filepath.Join(t.TempDir(), "terrain.txt")
	assert.Nil(t, WriteFile(fn, ter))
	parsed, err := ReadFile(fn)
	assert.Nil(t, err)
	assert.InDelta(t, ter.Side, parsed.Side, 1e-9)
	assert.Equal(t, ter.Nodes, parsed.Nodes)
}

func TestGenerateDeterministic(t *testing.T) {
	t1, err := Generate(50, 100, 7)
	assert.Nil(t, err)
	t2, err := Generate(50, 100, 7)
	assert.Nil(t, err)
	assert.Equal(t, t1, t2)

	buf1, buf2 := &bytes.Buffer{}, &bytes.Buffer{}
	assert.Nil(t, Write(buf1, t1))
	assert.Nil(t, Write(buf2, t2))
	assert.Equal(t, buf1.String(), buf2.String())
}

func TestGenerateInvalid(t *testing.T) {
	_, err := Generate(0, 100, 1)
	assert.Equal(t, ErrNoNodes, err)
	_, err = Generate(10, -1, 1)
	assert.NotNil(t, err)
	_, err = Generate(100, 0.1, 1)
	assert.NotNil(t, err)
}
