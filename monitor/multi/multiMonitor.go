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

package monitor_multi

import (
	"github.com/otns-lab/lorasim/event"
	"github.com/otns-lab/lorasim/monitor"
	. "github.com/otns-lab/lorasim/types"
)

type MultiMonitor struct {
	ms []monitor.Monitor
}

// NewMultiMonitor creates a new Monitor that multiplexes to multiple Monitors.
func NewMultiMonitor(ms ...monitor.Monitor) *MultiMonitor {
	return &MultiMonitor{ms: ms}
}

func (mm *MultiMonitor) AddMonitor(ms ...monitor.Monitor) {
	mm.ms = append(mm.ms, ms...)
}

func (mm *MultiMonitor) Len() int {
	return len(mm.ms)
}

func (mm *MultiMonitor) Init() {
	for _, m := range mm.ms {
		m.Init()
	}
}

func (mm *MultiMonitor) Stop() {
	for _, m := range mm.ms {
		m.Stop()
	}
}

func (mm *MultiMonitor) AddNode(nodeid NodeId, sf SpreadingFactor, distance float64) {
	for _, m := range mm.ms {
		m.AddNode(nodeid, sf, distance)
	}
}

func (mm *MultiMonitor) OnTransmit(tx *event.Transmission) {
	for _, m := range mm.ms {
		m.OnTransmit(tx)
	}
}

func (mm *MultiMonitor) OnCollision(tx *event.Transmission, otherId NodeId, energyJ float64) {
	for _, m := range mm.ms {
		m.OnCollision(tx, otherId, energyJ)
	}
}

func (mm *MultiMonitor) OnRetransmit(tx *event.Transmission) {
	for _, m := range mm.ms {
		m.OnRetransmit(tx)
	}
}

func (mm *MultiMonitor) OnDrop(nodeid NodeId, tx *event.Transmission) {
	for _, m := range mm.ms {
		m.OnDrop(nodeid, tx)
	}
}

func (mm *MultiMonitor) OnSuccess(tx *event.Transmission, energyJ float64) {
	for _, m := range mm.ms {
		m.OnSuccess(tx, energyJ)
	}
}

func (mm *MultiMonitor) OnNodeFinished(nodeid NodeId) {
	for _, m := range mm.ms {
		m.OnNodeFinished(nodeid)
	}
}

func (mm *MultiMonitor) AdvanceTime(ts float64) {
	for _, m := range mm.ms {
		m.AdvanceTime(ts)
	}
}
