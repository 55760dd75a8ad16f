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

// Package terrain reads, writes and generates the node placement files used as simulation input.
//
// A terrain file is plain text. Two lines are required, anywhere in the file:
//
//	# stats: nodes=3 terrain=250000.0m^2
//	# node coords: 1 [12.3 45.6] 2 [100.0 7.5] 3 [250.1 499.9]
//
// All other lines are comments.
package terrain

import (
	"math"

	"github.com/pkg/errors"

	. "github.com/otns-lab/lorasim/types"
)

var (
	ErrMissingStats  = errors.New("terrain stats line missing")
	ErrMissingCoords = errors.New("node coords line missing")
	ErrNoNodes       = errors.New("terrain has no nodes")
	ErrMalformed     = errors.New("malformed terrain line")
)

// NodePosition places one node on the terrain, in metres.
type NodePosition struct {
	Id NodeId
	X  float64
	Y  float64
}

// Terrain is a square area with the positions of all nodes, sorted by id.
type Terrain struct {
	Side  float64
	Nodes []NodePosition
}

func (t *Terrain) Area() float64 {
	return t.Side * t.Side
}

// Gateway returns the gateway position: the terrain centre at the given antenna height.
func (t *Terrain) Gateway(height float64) Position {
	return Position{X: t.Side / 2, Y: t.Side / 2, Z: height}
}

func (t *Terrain) NumNodes() int {
	return len(t.Nodes)
}

// Validate checks that the terrain is usable as simulation input.
func (t *Terrain) Validate() error {
	if t.Side <= 0 || math.IsNaN(t.Side) || math.IsInf(t.Side, 0) {
		return errors.Wrapf(ErrMalformed, "invalid terrain side %f", t.Side)
	}
	if len(t.Nodes) == 0 {
		return ErrNoNodes
	}
	seen := make(map[NodeId]struct{}, len(t.Nodes))
	for _, n := range t.Nodes {
		if n.Id <= InvalidNodeId || n.Id > MaxNodeId {
			return errors.Wrapf(ErrMalformed, "invalid node id %d", n.Id)
		}
		if _, ok := seen[n.Id]; ok {
			return errors.Wrapf(ErrMalformed, "duplicate node id %d", n.Id)
		}
		seen[n.Id] = struct{}{}
	}
	return nil
}
