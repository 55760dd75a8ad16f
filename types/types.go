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

package types

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
	"github.com/simonlingoogle/go-simplelogger"
)

type NodeId = int

const (
	InvalidNodeId NodeId = 0
	MaxNodeId     NodeId = 0xffff
)

// DbValue is a power ratio in dB, or an absolute power in dBm.
type DbValue = float64

const (
	UndefinedDbValue DbValue = math.MaxFloat64
)

// Ever is a simulated time (in seconds) that is never reached.
var Ever = math.Inf(1)

// SpreadingFactor is the LoRa modulation spreading factor. Usable values for the
// link budget are SF7 to SF12; SF6 is only accepted by the airtime formula.
type SpreadingFactor int

const (
	InvalidSpreadingFactor SpreadingFactor = 0
	SF6                    SpreadingFactor = 6
	SF7                    SpreadingFactor = 7
	SF8                    SpreadingFactor = 8
	SF9                    SpreadingFactor = 9
	SF10                   SpreadingFactor = 10
	SF11                   SpreadingFactor = 11
	SF12                   SpreadingFactor = 12

	MinSpreadingFactor = SF7
	MaxSpreadingFactor = SF12
	NumSpreadingFactor = int(MaxSpreadingFactor-MinSpreadingFactor) + 1
)

// IsValid returns true for spreading factors that have a row in the per-SF tables.
func (sf SpreadingFactor) IsValid() bool {
	return sf >= MinSpreadingFactor && sf <= MaxSpreadingFactor
}

// Index returns the table index (0 for SF7 ... 5 for SF12).
func (sf SpreadingFactor) Index() int {
	if !sf.IsValid() {
		simplelogger.Panicf("spreading factor has no table index: %d", int(sf))
	}
	return int(sf - MinSpreadingFactor)
}

func (sf SpreadingFactor) String() string {
	if sf == InvalidSpreadingFactor {
		return "SF-"
	}
	return fmt.Sprintf("SF%d", int(sf))
}

// AllSpreadingFactors lists SF7..SF12 in increasing order.
func AllSpreadingFactors() []SpreadingFactor {
	sfs := make([]SpreadingFactor, 0, NumSpreadingFactor)
	for sf := MinSpreadingFactor; sf <= MaxSpreadingFactor; sf++ {
		sfs = append(sfs, sf)
	}
	return sfs
}

// Bandwidth is the LoRa channel bandwidth in kHz.
type Bandwidth int

const (
	BW125 Bandwidth = 125
	BW250 Bandwidth = 250
	BW500 Bandwidth = 500

	NumBandwidth = 3
)

// ParseBandwidth converts a kHz value into a Bandwidth.
func ParseBandwidth(khz int) (Bandwidth, error) {
	switch Bandwidth(khz) {
	case BW125, BW250, BW500:
		return Bandwidth(khz), nil
	default:
		return 0, errors.Errorf("invalid bandwidth: %d kHz (use 125, 250 or 500)", khz)
	}
}

// Index returns the column of the sensitivity table for this bandwidth.
func (bw Bandwidth) Index() int {
	switch bw {
	case BW125:
		return 0
	case BW250:
		return 1
	case BW500:
		return 2
	default:
		simplelogger.Panicf("invalid bandwidth: %d", int(bw))
		return -1
	}
}

func (bw Bandwidth) KHz() float64 {
	return float64(bw)
}

func (bw Bandwidth) String() string {
	return fmt.Sprintf("%dkHz", int(bw))
}

// CodingRate is the LoRa FEC coding rate, 1 (4/5) up to 4 (4/8).
type CodingRate int

const (
	CR4_5 CodingRate = 1
	CR4_6 CodingRate = 2
	CR4_7 CodingRate = 3
	CR4_8 CodingRate = 4
)

// Position is a point in metres.
type Position struct {
	X, Y, Z float64
}

// DistanceTo returns the Euclidean distance to another point.
func (p Position) DistanceTo(other Position) float64 {
	dx := other.X - p.X
	dy := other.Y - p.Y
	dz := other.Z - p.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

func (p Position) String() string {
	return fmt.Sprintf("(%.1f,%.1f,%.1f)", p.X, p.Y, p.Z)
}

// NodeState is the scheduling state of a sensor node.
type NodeState byte

const (
	NodeIdle      NodeState = 0
	NodeScheduled NodeState = 1
	NodeFinished  NodeState = 2
)

func (s NodeState) String() string {
	switch s {
	case NodeIdle:
		return "idle"
	case NodeScheduled:
		return "scheduled"
	case NodeFinished:
		return "finished"
	default:
		simplelogger.Panicf("invalid NodeState: %d", s)
		return "invalid"
	}
}
