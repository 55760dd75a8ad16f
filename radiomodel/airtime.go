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

	"github.com/otns-lab/lorasim/logger"
	. "github.com/otns-lab/lorasim/types"
)

// ComputeAirtime returns the time-on-air (s) of an explicit-header LoRa frame with CRC,
// carrying payloadBytes at spreading factor sf. SF6 uses implicit header mode, and
// low-data-rate optimisation applies to SF11 and SF12 at 125 kHz.
func ComputeAirtime(sf SpreadingFactor, payloadBytes int, params *RadioModelParams) float64 {
	logger.AssertTrue(sf >= SF6 && sf <= MaxSpreadingFactor, "invalid spreading factor: %v", sf)

	header := 0
	if sf == SF6 {
		header = 1
	}
	lowDataRate := 0
	if params.Bandwidth == BW125 && (sf == SF11 || sf == SF12) {
		lowDataRate = 1
	}
	const crc = 1
	cr := int(params.CodingRate)

	tsym := math.Pow(2, float64(sf)) / params.Bandwidth.KHz() // ms
	tpream := (float64(params.PreambleSymbols) + 4.25) * tsym

	num := float64(8*payloadBytes - 4*int(sf) + 28 + 16*crc - 20*header)
	den := float64(4 * (int(sf) - 2*lowDataRate))
	payloadSymbols := 8 + math.Max(math.Ceil(num/den)*float64(cr+4), 0)

	return (tpream + payloadSymbols*tsym) / 1000.0
}

// DefaultAirtime returns the airtime (s) of a full frame, at the payload cap of sf.
func DefaultAirtime(sf SpreadingFactor, params *RadioModelParams) float64 {
	return ComputeAirtime(sf, params.PayloadCap.Get(sf), params)
}
