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

package dispatcher

import (
	"fmt"
)

// Stats are the run-wide counters kept by the dispatcher.
type Stats struct {
	NumNodes              int
	ExpectedTransmissions int // sum over nodes of ceil(backlog / payload cap)
	Transmissions         int // all scheduled attempts, retries included
	Delivered             int
	Collisions            int // attempts that failed
	Retransmissions       int
	Dropped               int
	CollectionTime        float64 // latest end time (s) of a processed transmission
}

func (s Stats) String() string {
	return fmt.Sprintf("nodes=%d expected=%d tx=%d delivered=%d collided=%d retx=%d dropped=%d time=%.3fs",
		s.NumNodes, s.ExpectedTransmissions, s.Transmissions, s.Delivered, s.Collisions, s.Retransmissions,
		s.Dropped, s.CollectionTime)
}

// updateStats refreshes the collection time from the dispatcher clock.
func (d *Dispatcher) updateStats() {
	d.stats.CollectionTime = d.CurTime
}
