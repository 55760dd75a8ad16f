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

package event

import (
	"fmt"

	. "github.com/otns-lab/lorasim/types"
)

// Transmission is one scheduled uplink attempt of a sensor node. Times are in
// simulated seconds, the time interval [Start, End] is closed.
type Transmission struct {
	NodeId       NodeId
	Sf           SpreadingFactor
	Start        float64
	End          float64
	PayloadBytes int
	RxPowerDbm   DbValue

	// Attempt is 0 for the first try of a payload chunk, and counts retransmissions.
	Attempt int
}

// Duration returns the airtime of the transmission.
func (tx *Transmission) Duration() float64 {
	return tx.End - tx.Start
}

// Overlaps returns true if the time intervals of tx and other intersect.
func (tx *Transmission) Overlaps(other *Transmission) bool {
	return other.Start <= tx.End && tx.Start <= other.End
}

func (tx *Transmission) String() string {
	return fmt.Sprintf("Tx{nid=%d,%v,%.6f-%.6f,pl=%d,rx=%.2fdBm,try=%d}", tx.NodeId, tx.Sf, tx.Start, tx.End,
		tx.PayloadBytes, tx.RxPowerDbm, tx.Attempt)
}

// Outcome is the result of a processed transmission.
type Outcome byte

const (
	OutcomeSuccess    Outcome = 0
	OutcomeCollided   Outcome = 1
	OutcomeRetransmit Outcome = 2
	OutcomeDropped    Outcome = 3
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeCollided:
		return "collided"
	case OutcomeRetransmit:
		return "retransmit"
	case OutcomeDropped:
		return "dropped"
	default:
		return fmt.Sprintf("outcome(%d)", o)
	}
}
