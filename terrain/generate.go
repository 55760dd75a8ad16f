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
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/pkg/errors"

	"github.com/otns-lab/lorasim/logger"
	"github.com/otns-lab/lorasim/prng"
	. "github.com/otns-lab/lorasim/types"
)

// coordinates are placed on a 0.1 m grid
const gridPerMeter = 10.0

// Generate places n nodes uniformly at random on a square of the given side (m). No two
// nodes share the same coordinates.
func Generate(n int, side float64, seed int64) (*Terrain, error) {
	if n <= 0 {
		return nil, ErrNoNodes
	}
	if n > MaxNodeId {
		return nil, errors.Errorf("too many nodes: %d (max %d)", n, MaxNodeId)
	}
	if side <= 0 {
		return nil, errors.Errorf("terrain side must be positive: %f", side)
	}
	cells := math.Pow(math.Floor(side*gridPerMeter)+1, 2)
	if float64(n) > cells/2 {
		return nil, errors.Errorf("terrain of side %.1f m too small for %d nodes", side, n)
	}

	rnd := prng.New(seed)
	type cell struct{ x, y int64 }
	used := make(map[cell]struct{}, n)
	t := &Terrain{Side: side, Nodes: make([]NodePosition, 0, n)}
	for id := 1; id <= n; {
		c := cell{
			x: int64(math.Round(rnd.NewUnitRandom() * side * gridPerMeter)),
			y: int64(math.Round(rnd.NewUnitRandom() * side * gridPerMeter)),
		}
		if _, ok := used[c]; ok {
			continue
		}
		used[c] = struct{}{}
		t.Nodes = append(t.Nodes, NodePosition{
			Id: id,
			X:  float64(c.x) / gridPerMeter,
			Y:  float64(c.y) / gridPerMeter,
		})
		id++
	}
	logger.Debugf("generated terrain: %d nodes, side %.1f m, seed %d", n, side, rnd.Seed())
	return t, nil
}

// Write writes the terrain in the text format read by Parse.
func Write(w io.Writer, t *Terrain) error {
	bw := bufio.NewWriter(w)
	_, _ = fmt.Fprintf(bw, "# terrain: %d nodes on %.1fm x %.1fm\n", len(t.Nodes), t.Side, t.Side)
	_, _ = fmt.Fprintf(bw, "%s nodes=%d terrain=%sm^2\n", statsPrefix, len(t.Nodes),
		strconv.FormatFloat(t.Area(), 'f', -1, 64))
	_, _ = fmt.Fprint(bw, coordsPrefix)
	for _, n := range t.Nodes {
		_, _ = fmt.Fprintf(bw, " %d [%.1f %.1f]", n.Id, n.X, n.Y)
	}
	_, _ = fmt.Fprintln(bw)
	return bw.Flush()
}

// WriteFile writes the terrain to a file at path.
func WriteFile(path string, t *Terrain) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create terrain file")
	}
	if err = Write(f, t); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
