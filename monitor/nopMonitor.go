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

package monitor

import (
	"github.com/otns-lab/lorasim/event"
	. "github.com/otns-lab/lorasim/types"
)

type nopMonitor struct{}

// NewNopMonitor creates a Monitor that ignores all reports.
func NewNopMonitor() Monitor {
	return nopMonitor{}
}

func (nm nopMonitor) Init() {
}

func (nm nopMonitor) Stop() {
}

func (nm nopMonitor) AddNode(NodeId, SpreadingFactor, float64) {
}

func (nm nopMonitor) OnTransmit(*event.Transmission) {
}

func (nm nopMonitor) OnCollision(*event.Transmission, NodeId, float64) {
}

func (nm nopMonitor) OnRetransmit(*event.Transmission) {
}

func (nm nopMonitor) OnDrop(NodeId, *event.Transmission) {
}

func (nm nopMonitor) OnSuccess(*event.Transmission, float64) {
}

func (nm nopMonitor) OnNodeFinished(NodeId) {
}

func (nm nopMonitor) AdvanceTime(float64) {
}
