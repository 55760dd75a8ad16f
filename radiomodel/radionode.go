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
	"github.com/pkg/errors"

	. "github.com/otns-lab/lorasim/types"
)

// RadioNode is the link state of a single sensor node towards the gateway.
type RadioNode struct {
	Id NodeId

	// Node position in metres.
	X, Y, Z float64

	// DistanceToGateway is the distance (m) to the gateway antenna.
	DistanceToGateway float64

	// Sf is the spreading factor chosen for the link, InvalidSpreadingFactor until configured.
	Sf SpreadingFactor

	// RxPowerDbm is the power received at the gateway for this node's transmissions.
	RxPowerDbm DbValue
}

func NewRadioNode(nodeid NodeId, pos Position) *RadioNode {
	return &RadioNode{
		Id:         nodeid,
		X:          pos.X,
		Y:          pos.Y,
		Z:          pos.Z,
		Sf:         InvalidSpreadingFactor,
		RxPowerDbm: UndefinedDbValue,
	}
}

func (rn *RadioNode) Position() Position {
	return Position{X: rn.X, Y: rn.Y, Z: rn.Z}
}

// GetDistanceTo gets the distance (m) to another point.
func (rn *RadioNode) GetDistanceTo(pos Position) float64 {
	return Distance(rn.Position(), pos)
}

// ConfigureLink computes distance, spreading factor and received power towards the gateway.
func (rn *RadioNode) ConfigureLink(gateway Position, params *RadioModelParams) error {
	rn.DistanceToGateway = rn.GetDistanceTo(gateway)
	sf, err := SelectSpreadingFactor(rn.DistanceToGateway, params)
	if err != nil {
		return errors.Wrapf(err, "node %d", rn.Id)
	}
	rn.Sf = sf
	rn.RxPowerDbm = ComputeRxPower(rn.DistanceToGateway, params)
	return nil
}

// Airtime returns the airtime (s) of a frame of payloadBytes on this node's link.
func (rn *RadioNode) Airtime(payloadBytes int, params *RadioModelParams) float64 {
	return ComputeAirtime(rn.Sf, payloadBytes, params)
}
