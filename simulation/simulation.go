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
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/otns-lab/lorasim/dispatcher"
	"github.com/otns-lab/lorasim/energy"
	"github.com/otns-lab/lorasim/logger"
	"github.com/otns-lab/lorasim/monitor"
	"github.com/otns-lab/lorasim/prng"
	"github.com/otns-lab/lorasim/radiomodel"
	"github.com/otns-lab/lorasim/terrain"
	. "github.com/otns-lab/lorasim/types"
)

var ErrAlreadyRun = errors.New("simulation already run")

// Simulation is a single data-collection run over one terrain.
type Simulation struct {
	ctx     context.Context
	cfg     *Config
	terrain *terrain.Terrain
	gateway Position
	runId   uuid.UUID
	rnd     *prng.Generators
	energy  *energy.EnergyAnalyser
	mon     monitor.Monitor
	d       *dispatcher.Dispatcher
	kpiMgr  *KpiManager
	ran     bool
}

// NodeInfo describes the link of one node to the gateway.
type NodeInfo struct {
	Id         NodeId          `yaml:"id"`
	X          float64         `yaml:"x"`
	Y          float64         `yaml:"y"`
	Distance   float64         `yaml:"distance"`
	Sf         SpreadingFactor `yaml:"-"`
	SfName     string          `yaml:"sf"`
	RxPowerDbm DbValue         `yaml:"rx_power_dbm"`
	Backlog    int             `yaml:"backlog"`
	State      string          `yaml:"state"`
	EnergyJ    float64         `yaml:"energy_j"`
}

// NewSimulation configures the link of every terrain node and prepares the first transmissions.
// It fails if any node is out of reach of the gateway.
func NewSimulation(ctx context.Context, cfg *Config, ter *terrain.Terrain, mon monitor.Monitor) (*Simulation, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := ter.Validate(); err != nil {
		return nil, err
	}
	if mon == nil {
		mon = monitor.NewNopMonitor()
	}

	s := &Simulation{
		ctx:     ctx,
		cfg:     cfg.Clone(),
		terrain: ter,
		gateway: ter.Gateway(cfg.GatewayHeight),
		runId:   uuid.New(),
		rnd:     prng.New(cfg.Seed),
		mon:     mon,
	}
	s.energy = energy.NewEnergyAnalyser(&s.cfg.Energy)

	radios := make([]*radiomodel.RadioNode, 0, len(ter.Nodes))
	for _, np := range ter.Nodes {
		rn := radiomodel.NewRadioNode(np.Id, Position{X: np.X, Y: np.Y})
		if err := rn.ConfigureLink(s.gateway, &s.cfg.Radio); err != nil {
			return nil, err
		}
		radios = append(radios, rn)
	}

	s.mon.Init()
	s.d = dispatcher.NewDispatcher(ctx, &s.cfg.Traffic, &s.cfg.Radio, s.rnd, s.energy, s.mon)
	for _, rn := range radios {
		s.d.AddNode(rn, s.cfg.DataBytes)
		logger.Notef("node %d at %.1fm: %v, rx %.2f dBm", rn.Id, rn.DistanceToGateway, rn.Sf, rn.RxPowerDbm)
	}
	s.d.ScheduleInitial()

	s.kpiMgr = NewKpiManager()
	s.kpiMgr.Init(s)
	logger.Infof("simulation %s: %d nodes, seed %d, gateway %v", s.runId, len(radios), s.rnd.Seed(), s.gateway)
	return s, nil
}

// Run runs the simulation to completion and returns its summary. A cancelled context stops the run,
// in which case the partial summary is returned together with the error.
func (s *Simulation) Run() (*Summary, error) {
	if s.ran {
		return nil, ErrAlreadyRun
	}
	s.ran = true

	s.kpiMgr.Start()
	err := s.d.Run()
	s.mon.Stop()
	s.kpiMgr.Stop(err)
	if err != nil {
		logger.Warnf("simulation %s stopped: %v", s.runId, err)
	} else {
		logger.Infof("simulation %s done: %v", s.runId, s.d.Stats())
	}
	return s.kpiMgr.Summary(), err
}

func (s *Simulation) RunId() string {
	return s.runId.String()
}

func (s *Simulation) Config() *Config {
	return s.cfg
}

func (s *Simulation) Seed() prng.RandomSeed {
	return s.rnd.Seed()
}

func (s *Simulation) Gateway() Position {
	return s.gateway
}

func (s *Simulation) Dispatcher() *dispatcher.Dispatcher {
	return s.d
}

func (s *Simulation) Energy() *energy.EnergyAnalyser {
	return s.energy
}

func (s *Simulation) Summary() *Summary {
	return s.kpiMgr.Summary()
}

// Nodes returns the link and progress information of all nodes, ordered by id.
func (s *Simulation) Nodes() []NodeInfo {
	res := make([]NodeInfo, 0, len(s.d.NodeIds()))
	for _, id := range s.d.NodeIds() {
		node := s.d.GetNode(id)
		info := NodeInfo{
			Id:         id,
			X:          node.Radio.X,
			Y:          node.Radio.Y,
			Distance:   node.Radio.DistanceToGateway,
			Sf:         node.Radio.Sf,
			SfName:     node.Radio.Sf.String(),
			RxPowerDbm: node.Radio.RxPowerDbm,
			Backlog:    node.Backlog,
			State:      node.State.String(),
		}
		if ne := s.energy.GetNode(id); ne != nil {
			info.EnergyJ = ne.ConsumedJ
		}
		res = append(res, info)
	}
	return res
}

// SfAssignment returns the spreading factor assignment of all nodes, one line per node.
func (s *Simulation) SfAssignment() string {
	sb := &strings.Builder{}
	for _, n := range s.Nodes() {
		_, _ = fmt.Fprintf(sb, "node %4d at %8.1fm: %-4s rx %7.2f dBm\n", n.Id, n.Distance, n.SfName, n.RxPowerDbm)
	}
	return sb.String()
}

// SaveEnergyFile writes the network energy file <path>.txt and the per-node file <path>_nodes.txt.
// An existing extension of path is replaced.
func (s *Simulation) SaveEnergyFile(path string) error {
	dir, name := filepath.Split(path)
	name = strings.TrimSuffix(name, filepath.Ext(name))
	return s.energy.SaveEnergyDataToFile(dir, name, s.d.CurTime)
}
