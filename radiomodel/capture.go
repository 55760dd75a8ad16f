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

package radiomodel

import (
	"math"

	"github.com/otns-lab/lorasim/event"
	. "github.com/otns-lab/lorasim/types"
)

// ThresholdMatrix holds power-difference thresholds (dB) indexed by [aggressor SF][victim SF].
type ThresholdMatrix [NumSpreadingFactor][NumSpreadingFactor]DbValue

func (m *ThresholdMatrix) Get(aggressor, victim SpreadingFactor) DbValue {
	return m[aggressor.Index()][victim.Index()]
}

// DefaultSameSfThresholds keeps the co-channel capture threshold on the diagonal.
var DefaultSameSfThresholds = ThresholdMatrix{
	{6, 0, 0, 0, 0, 0},
	{0, 6, 0, 0, 0, 0},
	{0, 0, 6, 0, 0, 0},
	{0, 0, 0, 6, 0, 0},
	{0, 0, 0, 0, 6, 0},
	{0, 0, 0, 0, 0, 6},
}

// DefaultCrossSfThresholds is the inter-SF rejection table (Croce et al.), stored per
// aggressor row. A victim survives when Prx(victim) - Prx(aggressor) >= M[aggressor][victim].
var DefaultCrossSfThresholds = ThresholdMatrix{
	{1, -11, -15, -19, -22, -25},
	{-8, 1, -13, -18, -22, -25},
	{-9, -11, 1, -17, -21, -25},
	{-9, -12, -13, 1, -20, -24},
	{-9, -13, -14, -17, 1, -23},
	{-9, -13, -15, -18, -20, 1},
}

// CollisionKind classifies a pair of overlapping transmissions.
type CollisionKind byte

const (
	NoCollision CollisionKind = iota
	CaptureCollision
	MutualCollision
)

func (k CollisionKind) String() string {
	switch k {
	case NoCollision:
		return "none"
	case CaptureCollision:
		return "capture"
	case MutualCollision:
		return "mutual"
	default:
		return "invalid"
	}
}

// ResolveCollision decides which of two transmissions fail, if they overlap in time.
// Same-SF pairs within the co-channel threshold both fail; otherwise the weaker one is
// captured. Cross-SF pairs are judged independently in both directions.
func ResolveCollision(a, b *event.Transmission, params *RadioModelParams) (aLost, bLost bool, kind CollisionKind) {
	if !a.Overlaps(b) {
		return false, false, NoCollision
	}

	diff := a.RxPowerDbm - b.RxPowerDbm
	if a.Sf == b.Sf {
		if math.Abs(diff) < params.SameSfThresholds.Get(a.Sf, a.Sf) {
			return true, true, MutualCollision
		}
		if diff > 0 {
			return false, true, CaptureCollision
		}
		return true, false, CaptureCollision
	}

	aLost = diff < params.CrossSfThresholds.Get(b.Sf, a.Sf)
	bLost = -diff < params.CrossSfThresholds.Get(a.Sf, b.Sf)
	switch {
	case aLost && bLost:
		kind = MutualCollision
	case aLost || bLost:
		kind = CaptureCollision
	default:
		kind = NoCollision
	}
	return
}
