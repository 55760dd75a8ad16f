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
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/otns-lab/lorasim/event"
	. "github.com/otns-lab/lorasim/types"
)

func TestRxPowerDecreasesWithDistance(t *testing.T) {
	params := NewRadioModelParams()
	assert.Nil(t, params.Validate())

	// at the reference distance only the reference loss applies
	assert.InDelta(t, params.TxPowerDbm-params.RefPathLossDb, ComputeRxPower(params.RefDistance, params), 1e-9)

	prev := ComputeRxPower(1.0, params)
	for d := 10.0; d < 1000.0; d += 10.0 {
		p := ComputeRxPower(d, params)
		assert.True(t, p < prev)
		prev = p
	}

	// distance zero is clamped and stays finite
	p0 := ComputeRxPower(0.0, params)
	assert.False(t, math.IsInf(p0, 0))
	assert.Equal(t, ComputeRxPower(minDistanceMeters, params), p0)
}

func TestShadowingLowersRxPower(t *testing.T) {
	params := NewRadioModelParams()
	p1 := ComputeRxPower(100, params)
	params.ShadowingDb = 5.0
	assert.InDelta(t, p1-5.0, ComputeRxPower(100, params), 1e-9)
}

func TestMaxDistanceInvertsPathLoss(t *testing.T) {
	params := NewRadioModelParams()
	for _, sf := range AllSpreadingFactors() {
		d := MaxDistance(sf, params)
		assert.InDelta(t, params.Sensitivity.Get(sf, params.Bandwidth), ComputeRxPower(d, params), 1e-6)
	}
	assert.InDelta(t, 115.6, MaxDistance(SF7, params), 0.1)
	assert.InDelta(t, 544.8, MaxDistance(SF12, params), 0.1)
}

func TestSelectSpreadingFactor(t *testing.T) {
	params := NewRadioModelParams()

	sf, err := SelectSpreadingFactor(0, params)
	assert.Nil(t, err)
	assert.Equal(t, SF7, sf)

	sf, err = SelectSpreadingFactor(200, params)
	assert.Nil(t, err)
	assert.Equal(t, SF9, sf)

	sf, err = SelectSpreadingFactor(400, params)
	assert.Nil(t, err)
	assert.Equal(t, SF11, sf)

	// the chosen SF is the minimum one whose reach exceeds the distance
	for d := 0.0; d < MaxDistance(SF12, params); d += 7.0 {
		sf, err = SelectSpreadingFactor(d, params)
		assert.Nil(t, err)
		assert.True(t, MaxDistance(sf, params) > d)
		for lower := MinSpreadingFactor; lower < sf; lower++ {
			assert.True(t, MaxDistance(lower, params) <= d)
		}
	}
}

func TestSelectSpreadingFactorUnreachable(t *testing.T) {
	params := NewRadioModelParams()
	sf, err := SelectSpreadingFactor(600, params)
	assert.NotNil(t, err)
	assert.Equal(t, ErrUnreachable, errors.Cause(err))
	assert.Equal(t, InvalidSpreadingFactor, sf)

	rn := NewRadioNode(3, Position{X: 600, Y: 0, Z: 0})
	err = rn.ConfigureLink(Position{}, params)
	assert.Equal(t, ErrUnreachable, errors.Cause(err))
	assert.Contains(t, err.Error(), "node 3")
}

func TestBandwidthChangesReach(t *testing.T) {
	params := NewRadioModelParams()
	d125 := MaxDistance(SF9, params)
	params.Bandwidth = BW500
	assert.True(t, MaxDistance(SF9, params) < d125)
}

func TestComputeAirtime(t *testing.T) {
	params := NewRadioModelParams()
	assert.InDelta(t, 0.174336, ComputeAirtime(SF7, 100, params), 1e-9)
	// low data rate optimisation active
	assert.InDelta(t, 2.465792, ComputeAirtime(SF12, 51, params), 1e-9)
	assert.InDelta(t, ComputeAirtime(SF9, 115, params), DefaultAirtime(SF9, params), 1e-12)
}

func TestAirtimeMonotonic(t *testing.T) {
	params := NewRadioModelParams()
	for _, pl := range []int{1, 20, 51} {
		prev := 0.0
		for _, sf := range AllSpreadingFactors() {
			at := ComputeAirtime(sf, pl, params)
			assert.True(t, at > prev, "payload %d %v", pl, sf)
			prev = at
		}
	}
	for _, sf := range AllSpreadingFactors() {
		prev := 0.0
		for pl := 0; pl <= 222; pl++ {
			at := ComputeAirtime(sf, pl, params)
			assert.True(t, at >= prev)
			prev = at
		}
	}
	assert.True(t, ComputeAirtime(SF6, 10, params) > 0)
}

func TestAirtimeWiderBandwidthIsShorter(t *testing.T) {
	params := NewRadioModelParams()
	at125 := ComputeAirtime(SF10, 50, params)
	params.Bandwidth = BW250
	assert.True(t, ComputeAirtime(SF10, 50, params) < at125)
}

func TestResolveCollisionSameSf(t *testing.T) {
	params := NewRadioModelParams()
	a := &event.Transmission{NodeId: 1, Sf: SF7, Start: 0, End: 0.1, RxPowerDbm: -100}
	b := &event.Transmission{NodeId: 2, Sf: SF7, Start: 0, End: 0.1, RxPowerDbm: -100}

	aLost, bLost, kind := ResolveCollision(a, b, params)
	assert.True(t, aLost)
	assert.True(t, bLost)
	assert.Equal(t, MutualCollision, kind)

	// a much stronger signal captures the receiver
	b.RxPowerDbm = -110
	aLost, bLost, kind = ResolveCollision(a, b, params)
	assert.False(t, aLost)
	assert.True(t, bLost)
	assert.Equal(t, CaptureCollision, kind)

	aLost, bLost, _ = ResolveCollision(b, a, params)
	assert.True(t, aLost)
	assert.False(t, bLost)

	// just inside the threshold both fail
	b.RxPowerDbm = -105
	aLost, bLost, _ = ResolveCollision(a, b, params)
	assert.True(t, aLost && bLost)

	// separated in time
	b.Start, b.End = 0.2, 0.3
	aLost, bLost, kind = ResolveCollision(a, b, params)
	assert.False(t, aLost || bLost)
	assert.Equal(t, NoCollision, kind)
}

func TestResolveCollisionCrossSf(t *testing.T) {
	params := NewRadioModelParams()
	a := &event.Transmission{NodeId: 1, Sf: SF7, Start: 0, End: 0.1, RxPowerDbm: -100}
	b := &event.Transmission{NodeId: 2, Sf: SF12, Start: 0, End: 1.0, RxPowerDbm: -100}

	// orthogonal at equal power
	aLost, bLost, kind := ResolveCollision(a, b, params)
	assert.False(t, aLost)
	assert.False(t, bLost)
	assert.Equal(t, NoCollision, kind)

	// SF7 victim of a 20 dB stronger SF12 aggressor (threshold -9 dB)
	b.RxPowerDbm = -80
	aLost, bLost, kind = ResolveCollision(a, b, params)
	assert.True(t, aLost)
	assert.False(t, bLost)
	assert.Equal(t, CaptureCollision, kind)

	// thresholds are read as [aggressor][victim]
	assert.Equal(t, DbValue(-9), params.CrossSfThresholds.Get(SF12, SF7))
	assert.Equal(t, DbValue(-25), params.CrossSfThresholds.Get(SF7, SF12))
}
