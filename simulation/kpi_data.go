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

package simulation

// Summary holds the KPIs of a finished (or stopped) simulation run.
type Summary struct {
	RunId   string `json:"run_id" yaml:"run_id"`
	Name    string `json:"name,omitempty" yaml:"name,omitempty"`
	Status  string `json:"status" yaml:"status"`
	Created string `json:"created" yaml:"created"`
	Seed    int64  `json:"seed" yaml:"seed"`

	Nodes      int            `json:"nodes" yaml:"nodes"`
	NodesPerSf map[string]int `json:"nodes_per_sf" yaml:"nodes_per_sf"`
	DataBytes  int            `json:"data_bytes" yaml:"data_bytes"`

	ExpectedTransmissions int `json:"expected_tx" yaml:"expected_tx"`
	Transmissions         int `json:"tx" yaml:"tx"`
	Delivered             int `json:"delivered" yaml:"delivered"`
	Collisions            int `json:"collisions" yaml:"collisions"`
	Retransmissions       int `json:"retransmissions" yaml:"retransmissions"`
	Dropped               int `json:"dropped" yaml:"dropped"`

	CollectionTimeSec float64 `json:"collection_time_sec" yaml:"collection_time_sec"`
	AvgEnergyJ        float64 `json:"avg_energy_j" yaml:"avg_energy_j"`
	TotalEnergyJ      float64 `json:"total_energy_j" yaml:"total_energy_j"`
	Pdr               float64 `json:"pdr" yaml:"pdr"`

	WallClockMs float64 `json:"wall_clock_ms" yaml:"wall_clock_ms"`
}
