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
	"testing"

	"github.com/stretchr/testify/assert"

	. "github.com/otns-lab/lorasim/types"
)

func TestTransmissionOverlaps(t *testing.T) {
	a := &Transmission{NodeId: 1, Sf: SF7, Start: 0.0, End: 1.0}
	b := &Transmission{NodeId: 2, Sf: SF7, Start: 0.5, End: 1.5}
	c := &Transmission{NodeId: 3, Sf: SF7, Start: 1.0, End: 2.0}
	d := &Transmission{NodeId: 4, Sf: SF7, Start: 2.5, End: 3.0}
	inner := &Transmission{NodeId: 5, Sf: SF7, Start: 0.2, End: 0.3}

	assert.True(t, a.Overlaps(b))
	assert.True(t, b.Overlaps(a))
	assert.True(t, a.Overlaps(c)) // touching end points
	assert.False(t, a.Overlaps(d))
	assert.False(t, d.Overlaps(a))

	// a short frame that lies entirely inside a longer one
	assert.True(t, a.Overlaps(inner))
	assert.True(t, inner.Overlaps(a))
}

func TestTransmissionDuration(t *testing.T) {
	tx := &Transmission{NodeId: 1, Sf: SF9, Start: 2.0, End: 2.25, PayloadBytes: 100}
	assert.Equal(t, 0.25, tx.Duration())
	assert.Contains(t, tx.String(), "SF9")
	assert.Equal(t, "dropped", OutcomeDropped.String())
}
