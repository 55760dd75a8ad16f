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

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/otns-lab/lorasim/logger"
	. "github.com/otns-lab/lorasim/types"
)

type KpiManager struct {
	sim       *Simulation
	data      *Summary
	startTime time.Time
	isRunning bool
}

// NewKpiManager creates a new KPI bookkeeper for a particular simulation.
func NewKpiManager() *KpiManager {
	return &KpiManager{}
}

// Init inits the KPI manager for the given simulation.
func (km *KpiManager) Init(sim *Simulation) {
	logger.AssertNil(km.sim)
	logger.AssertFalse(km.isRunning)
	km.sim = sim
	km.data = &Summary{
		RunId:      sim.RunId(),
		Name:       sim.cfg.Name,
		Status:     "init",
		Seed:       int64(sim.Seed()),
		DataBytes:  sim.cfg.DataBytes,
		NodesPerSf: map[string]int{},
	}
	km.calculateKpis()
}

func (km *KpiManager) Start() {
	logger.AssertNotNil(km.sim)
	km.startTime = time.Now()
	km.data.Status = "running"
	km.isRunning = true
}

// Stop finalizes the KPIs. A non-nil err marks the run as stopped before completion.
func (km *KpiManager) Stop(err error) {
	if !km.isRunning {
		return
	}
	km.isRunning = false
	km.data.WallClockMs = float64(time.Since(km.startTime).Microseconds()) / 1000.0
	if err != nil {
		km.data.Status = "stopped"
	} else {
		km.data.Status = "ok"
	}
	km.calculateKpis()
}

func (km *KpiManager) IsRunning() bool {
	return km.isRunning
}

// Summary returns a copy of the current KPIs.
func (km *KpiManager) Summary() *Summary {
	if km.isRunning {
		km.calculateKpis()
	}
	res := *km.data
	res.NodesPerSf = make(map[string]int, len(km.data.NodesPerSf))
	for k, v := range km.data.NodesPerSf {
		res.NodesPerSf[k] = v
	}
	return &res
}

func (km *KpiManager) calculateKpis() {
	d := km.sim.Dispatcher()
	stats := d.Stats()

	km.data.Created = time.Now().Format(time.RFC3339)
	km.data.Nodes = stats.NumNodes
	km.data.ExpectedTransmissions = stats.ExpectedTransmissions
	km.data.Transmissions = stats.Transmissions
	km.data.Delivered = stats.Delivered
	km.data.Collisions = stats.Collisions
	km.data.Retransmissions = stats.Retransmissions
	km.data.Dropped = stats.Dropped
	km.data.CollectionTimeSec = stats.CollectionTime
	km.data.AvgEnergyJ = km.sim.Energy().AverageEnergy()
	km.data.TotalEnergyJ = km.sim.Energy().TotalEnergy()
	km.data.Pdr = PacketDeliveryRatio(stats.ExpectedTransmissions, stats.Dropped)

	for k := range km.data.NodesPerSf {
		delete(km.data.NodesPerSf, k)
	}
	for _, id := range d.NodeIds() {
		km.data.NodesPerSf[d.GetNode(id).Radio.Sf.String()]++
	}
}

// PacketDeliveryRatio is the share of expected frames that were not dropped. It is 1 when
// nothing was to be delivered.
func PacketDeliveryRatio(expected int, dropped int) float64 {
	if expected <= 0 {
		return 1.0
	}
	return float64(expected-dropped) / float64(expected)
}

// SaveFile writes the summary to fn, as YAML for a .yaml/.yml extension and as JSON otherwise.
func (s *Summary) SaveFile(fn string) error {
	var data []byte
	var err error
	switch strings.ToLower(filepath.Ext(fn)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(s)
	default:
		data, err = json.MarshalIndent(s, "", "    ")
	}
	if err != nil {
		return errors.Wrapf(err, "marshal summary")
	}
	if err = os.WriteFile(fn, data, 0644); err != nil {
		return errors.Wrapf(err, "write summary file")
	}
	logger.Debugf("summary written to %s", fn)
	return nil
}

// String returns a human-readable report.
func (s *Summary) String() string {
	sb := &strings.Builder{}
	_, _ = fmt.Fprintf(sb, "run %s (%s), seed %d\n", s.RunId, s.Status, s.Seed)
	_, _ = fmt.Fprintf(sb, "  nodes:            %d\n", s.Nodes)
	for _, sf := range AllSpreadingFactors() {
		if n, ok := s.NodesPerSf[sf.String()]; ok && n > 0 {
			_, _ = fmt.Fprintf(sb, "    %-5s           %d\n", sf.String(), n)
		}
	}
	_, _ = fmt.Fprintf(sb, "  expected tx:      %d\n", s.ExpectedTransmissions)
	_, _ = fmt.Fprintf(sb, "  transmissions:    %d\n", s.Transmissions)
	_, _ = fmt.Fprintf(sb, "  delivered:        %d\n", s.Delivered)
	_, _ = fmt.Fprintf(sb, "  collisions:       %d\n", s.Collisions)
	_, _ = fmt.Fprintf(sb, "  retransmissions:  %d\n", s.Retransmissions)
	_, _ = fmt.Fprintf(sb, "  dropped:          %d\n", s.Dropped)
	_, _ = fmt.Fprintf(sb, "  PDR:              %.4f\n", s.Pdr)
	_, _ = fmt.Fprintf(sb, "  collection time:  %.3f s\n", s.CollectionTimeSec)
	_, _ = fmt.Fprintf(sb, "  avg energy:       %.6f J\n", s.AvgEnergyJ)
	_, _ = fmt.Fprintf(sb, "  wall clock:       %.1f ms", s.WallClockMs)
	return sb.String()
}
