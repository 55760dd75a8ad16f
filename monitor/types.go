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

// Package monitor defines the observer interface through which the scheduler reports
// what happens during a simulation run.
package monitor

import (
	"github.com/otns-lab/lorasim/event"
	. "github.com/otns-lab/lorasim/types"
)

type Monitor interface {
	Init()
	Stop()

	// AddNode is called once per node, after link configuration.
	AddNode(nodeid NodeId, sf SpreadingFactor, distance float64)
	// OnTransmit is called when a transmission attempt is scheduled.
	OnTransmit(tx *event.Transmission)
	// OnCollision is called for a transmission that failed because it overlapped with one of otherId,
	// with the energy (J) charged for the failed attempt (0 unless failed attempts are charged).
	OnCollision(tx *event.Transmission, otherId NodeId, energyJ float64)
	// OnRetransmit is called with the new attempt scheduled after a failure.
	OnRetransmit(tx *event.Transmission)
	// OnDrop is called when a payload chunk is given up after the last retry.
	OnDrop(nodeid NodeId, tx *event.Transmission)
	// OnSuccess is called when a transmission is delivered, with the energy (J) it cost.
	OnSuccess(tx *event.Transmission, energyJ float64)
	// OnNodeFinished is called once when a node has no data left.
	OnNodeFinished(nodeid NodeId)
	// AdvanceTime reports the simulated time (s) reached by the scheduler. It is called before
	// the outcomes of the transmission ending at ts are reported.
	AdvanceTime(ts float64)
}
