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

package dispatcher

import (
	"github.com/otns-lab/lorasim/event"
	"github.com/otns-lab/lorasim/radiomodel"
	. "github.com/otns-lab/lorasim/types"
)

// Node is the scheduler's view of a sensor node.
type Node struct {
	Id      NodeId
	Radio   *radiomodel.RadioNode
	State   NodeState
	Backlog int // bytes still to deliver

	// InitialBacklog is the data volume the node started with.
	InitialBacklog  int
	Retransmissions int

	// Tx is the pending transmission, nil when there is none.
	Tx *event.Transmission

	Delivered int
	Dropped   int
}

func newNode(rn *radiomodel.RadioNode, backlog int) *Node {
	return &Node{
		Id:             rn.Id,
		Radio:          rn,
		State:          NodeIdle,
		Backlog:        backlog,
		InitialBacklog: backlog,
	}
}

// NextChunk returns the size of the next frame, at most the payload cap of the node's SF.
func (node *Node) NextChunk(params *radiomodel.RadioModelParams) int {
	chunk := params.PayloadCap.Get(node.Radio.Sf)
	if node.Backlog < chunk {
		chunk = node.Backlog
	}
	return chunk
}

// ExpectedTransmissions returns the number of frames needed for the initial backlog.
func (node *Node) ExpectedTransmissions(params *radiomodel.RadioModelParams) int {
	if node.InitialBacklog <= 0 {
		return 0
	}
	payloadCap := params.PayloadCap.Get(node.Radio.Sf)
	return (node.InitialBacklog + payloadCap - 1) / payloadCap
}

func (node *Node) IsFinished() bool {
	return node.State == NodeFinished
}
