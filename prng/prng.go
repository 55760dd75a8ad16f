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

// Package prng provides the seeded random generators of a single simulation run.
package prng

import (
	"math/rand"
	"time"
)

type RandomSeed int64

// Generators holds independent random streams derived from one root seed. A run owns
// its Generators, so parallel runs never share random state.
type Generators struct {
	seed        RandomSeed
	startOffset *rand.Rand
	jitter      *rand.Rand
	placement   *rand.Rand
}

// New creates the generators, either with a fixed root seed (rootSeed != 0) or a
// time-based root seed (rootSeed == 0).
func New(rootSeed int64) *Generators {
	if rootSeed == 0 {
		rootSeed = time.Now().UnixNano()
	}
	root := rand.New(rand.NewSource(rootSeed))
	derive := func() *rand.Rand {
		return rand.New(rand.NewSource(rootSeed + root.Int63n(1e10)))
	}

	return &Generators{
		seed:        RandomSeed(rootSeed),
		startOffset: derive(),
		jitter:      derive(),
		placement:   derive(),
	}
}

// Seed returns the root seed that was effectively used.
func (g *Generators) Seed() RandomSeed {
	return g.seed
}

// NewStartOffset generates a uniform initial transmission offset in [0, max).
func (g *Generators) NewStartOffset(max float64) float64 {
	if max <= 0 {
		return 0
	}
	return g.startOffset.Float64() * max
}

// NewJitter generates a uniform retry jitter in [0, max).
func (g *Generators) NewJitter(max float64) float64 {
	if max <= 0 {
		return 0
	}
	return g.jitter.Float64() * max
}

// NewUnitRandom generates a new random unit [0, 1) float, used for placing nodes on a terrain.
func (g *Generators) NewUnitRandom() float64 {
	return g.placement.Float64()
}
