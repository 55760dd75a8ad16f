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

	. "github.com/otns-lab/lorasim/types"
)

// distances below this are clamped, so that the log-distance model stays finite.
const minDistanceMeters = 0.01

// Distance returns the Euclidean distance in metres between two points.
func Distance(a, b Position) float64 {
	return a.DistanceTo(b)
}

// computePathLoss returns the log-distance path loss (dB) at distance dist (m):
// Lpl(d) = Lpl(d0) + 10*gamma*log10(d/d0) + Xs.
func computePathLoss(dist float64, params *RadioModelParams) DbValue {
	if dist < minDistanceMeters {
		dist = minDistanceMeters
	}
	return params.RefPathLossDb + 10.0*params.PathLossExponent*math.Log10(dist/params.RefDistance) + params.ShadowingDb
}

// ComputeRxPower computes the received power (dBm) at the gateway for a node at distance dist (m).
func ComputeRxPower(dist float64, params *RadioModelParams) DbValue {
	return params.TxPowerDbm - computePathLoss(dist, params)
}
