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

package energy

import (
	"github.com/otns-lab/lorasim/logger"
	. "github.com/otns-lab/lorasim/types"
)

// NodeEnergy accumulates the radio activity of one node.
type NodeEnergy struct {
	nodeId    NodeId
	SpentTx   float64 // seconds on air, charged attempts only
	NumTx     int
	ConsumedJ float64
}

// AddTx charges one transmission of the given airtime, returning the energy (J) added.
func (node *NodeEnergy) AddTx(airtime float64, params *EnergyParams) float64 {
	logger.AssertTrue(airtime >= 0, "negative airtime: %f", airtime)
	joules := params.TxEnergy(airtime)
	node.SpentTx += airtime
	node.NumTx++
	node.ConsumedJ += joules
	return joules
}

func (node *NodeEnergy) NodeId() NodeId {
	return node.nodeId
}

func newNode(nodeID NodeId) *NodeEnergy {
	return &NodeEnergy{
		nodeId: nodeID,
	}
}
