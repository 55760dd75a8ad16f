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

package energy

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/pkg/errors"

	"github.com/otns-lab/lorasim/logger"
	. "github.com/otns-lab/lorasim/types"
)

type EnergyAnalyser struct {
	params         *EnergyParams
	nodes          map[NodeId]*NodeEnergy
	networkHistory []NetworkConsumption
	finished       int
}

func NewEnergyAnalyser(params *EnergyParams) *EnergyAnalyser {
	if params == nil {
		params = NewEnergyParams()
	}
	return &EnergyAnalyser{
		params:         params,
		nodes:          make(map[NodeId]*NodeEnergy),
		networkHistory: make([]NetworkConsumption, 0, 64),
	}
}

func (e *EnergyAnalyser) AddNode(nodeID NodeId) {
	if _, ok := e.nodes[nodeID]; ok {
		return
	}
	e.nodes[nodeID] = newNode(nodeID)
}

func (e *EnergyAnalyser) GetNode(nodeID NodeId) *NodeEnergy {
	return e.nodes[nodeID]
}

// ChargeTx accounts one transmission of the given airtime to a node and returns the energy (J).
func (e *EnergyAnalyser) ChargeTx(nodeID NodeId, airtime float64) float64 {
	node := e.nodes[nodeID]
	logger.AssertNotNil(node, "energy of unknown node: %d", nodeID)
	return node.AddTx(airtime, e.params)
}

// TotalEnergy returns the energy (J) consumed by all nodes.
func (e *EnergyAnalyser) TotalEnergy() float64 {
	total := 0.0
	for _, node := range e.nodes {
		total += node.ConsumedJ
	}
	return total
}

// AverageEnergy returns the mean energy (J) per node, or 0 without nodes.
func (e *EnergyAnalyser) AverageEnergy() float64 {
	if len(e.nodes) == 0 {
		return 0
	}
	return e.TotalEnergy() / float64(len(e.nodes))
}

// OnNodeFinished records a network snapshot at the time a node completes its backlog.
func (e *EnergyAnalyser) OnNodeFinished(timestamp float64) {
	e.finished++
	e.networkHistory = append(e.networkHistory, NetworkConsumption{
		Timestamp:     timestamp,
		NodesFinished: e.finished,
		AvgEnergyTx:   e.AverageEnergy(),
	})
}

func (e *EnergyAnalyser) GetNetworkEnergyHistory() []NetworkConsumption {
	return e.networkHistory
}

// SaveEnergyDataToFile writes <name>_nodes.txt and <name>.txt into dir.
func (e *EnergyAnalyser) SaveEnergyDataToFile(dir string, name string, timestamp float64) error {
	if name == "" {
		name = "energy"
	}
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrapf(err, "create energy result dir")
	}

	path := filepath.Join(dir, name)
	fileNodes, err := os.Create(path + "_nodes.txt")
	if err != nil {
		return err
	}
	defer fileNodes.Close()

	fileNetwork, err := os.Create(path + ".txt")
	if err != nil {
		return err
	}
	defer fileNetwork.Close()

	e.writeEnergyByNodes(fileNodes, timestamp)
	e.writeNetworkEnergy(fileNetwork, timestamp)
	logger.Debugf("energy data saved to %s", path)
	return nil
}

func (e *EnergyAnalyser) writeEnergyByNodes(w io.Writer, timestamp float64) {
	_, _ = fmt.Fprintf(w, "Collection time of the simulated network (in seconds): %f\n", timestamp)
	_, _ = fmt.Fprintf(w, "ID\tTx count\tTime on air (s)\tTransmitting (J)\n")

	sortedNodes := make([]NodeId, 0, len(e.nodes))
	for id := range e.nodes {
		sortedNodes = append(sortedNodes, id)
	}
	sort.Ints(sortedNodes)

	for _, id := range sortedNodes {
		node := e.nodes[id]
		_, _ = fmt.Fprintf(w, "%d\t%d\t%f\t%f\n", id, node.NumTx, node.SpentTx, node.ConsumedJ)
	}
}

func (e *EnergyAnalyser) writeNetworkEnergy(w io.Writer, timestamp float64) {
	_, _ = fmt.Fprintf(w, "Collection time of the simulated network (in seconds): %f\n", timestamp)
	_, _ = fmt.Fprintf(w, "Time (s)\tNodes finished\tAvg transmitting (J)\n")
	for _, snapshot := range e.networkHistory {
		_, _ = fmt.Fprintf(w, "%f\t%d\t%f\n", snapshot.Timestamp, snapshot.NodesFinished, snapshot.AvgEnergyTx)
	}
}
