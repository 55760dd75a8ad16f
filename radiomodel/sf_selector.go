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

	"github.com/pkg/errors"

	. "github.com/otns-lab/lorasim/types"
)

// ErrUnreachable is returned when no spreading factor reaches the gateway.
var ErrUnreachable = errors.New("node out of gateway range")

// MaxDistance returns the largest distance (m) at which a transmission using sf is
// still received at or above the sensitivity, by inverting the path loss model.
func MaxDistance(sf SpreadingFactor, params *RadioModelParams) float64 {
	sens := params.Sensitivity.Get(sf, params.Bandwidth)
	exp := (params.TxPowerDbm - sens - params.RefPathLossDb - params.ShadowingDb) / (10.0 * params.PathLossExponent)
	return params.RefDistance * math.Pow(10, exp)
}

// SelectSpreadingFactor returns the smallest SF whose maximum distance exceeds dist.
func SelectSpreadingFactor(dist float64, params *RadioModelParams) (SpreadingFactor, error) {
	for sf := MinSpreadingFactor; sf <= MaxSpreadingFactor; sf++ {
		if MaxDistance(sf, params) > dist {
			return sf, nil
		}
	}
	return InvalidSpreadingFactor, errors.Wrapf(ErrUnreachable, "distance %.1f m exceeds %v range %.1f m",
		dist, MaxSpreadingFactor, MaxDistance(MaxSpreadingFactor, params))
}
