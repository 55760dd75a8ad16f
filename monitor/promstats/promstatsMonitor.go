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

package monitor_promstats

import (
	"io"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/otns-lab/lorasim/event"
	. "github.com/otns-lab/lorasim/types"
)

const namespace = "lorasim"

// PromStatsMonitor is a Monitor that exports run activity as Prometheus metrics.
type PromStatsMonitor struct {
	gatherer prometheus.Gatherer

	Transmissions   *prometheus.CounterVec
	Collisions      *prometheus.CounterVec
	Retransmissions prometheus.Counter
	Dropped         prometheus.Counter
	Delivered       prometheus.Counter
	EnergyJoules    prometheus.Counter
	Airtime         prometheus.Histogram
	NodesActive     prometheus.Gauge
	NodesPerSf      *prometheus.GaugeVec
	SimulatedTime   prometheus.Gauge
}

// NewPromStatsMonitor registers the run metrics against the provided registerer.
func NewPromStatsMonitor(reg prometheus.Registerer) (*PromStatsMonitor, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	var err error
	pm := &PromStatsMonitor{gatherer: gatherer}

	if pm.Transmissions, err = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "transmissions_total",
		Help:      "Transmission attempts scheduled, by spreading factor.",
	}, []string{"sf"})); err != nil {
		return nil, err
	}
	if pm.Collisions, err = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "collisions_total",
		Help:      "Transmissions lost to a collision, by spreading factor.",
	}, []string{"sf"})); err != nil {
		return nil, err
	}
	if pm.Retransmissions, err = register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "retransmissions_total",
		Help:      "Retransmission attempts scheduled after a failure.",
	})); err != nil {
		return nil, err
	}
	if pm.Dropped, err = register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "dropped_packets_total",
		Help:      "Payload chunks given up after the last retry.",
	})); err != nil {
		return nil, err
	}
	if pm.Delivered, err = register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "delivered_packets_total",
		Help:      "Transmissions received by the gateway.",
	})); err != nil {
		return nil, err
	}
	if pm.EnergyJoules, err = register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tx_energy_joules_total",
		Help:      "Energy charged to nodes for transmitting.",
	})); err != nil {
		return nil, err
	}
	if pm.Airtime, err = register(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "airtime_seconds",
		Help:      "Airtime of scheduled transmissions.",
		Buckets:   []float64{0.025, 0.05, 0.1, 0.25, 0.5, 1, 1.5, 2, 3},
	})); err != nil {
		return nil, err
	}
	if pm.NodesActive, err = register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "nodes_active",
		Help:      "Nodes that still have data to send.",
	})); err != nil {
		return nil, err
	}
	if pm.NodesPerSf, err = register(reg, prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "nodes",
		Help:      "Nodes assigned to each spreading factor.",
	}, []string{"sf"})); err != nil {
		return nil, err
	}
	if pm.SimulatedTime, err = register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "simulated_time_seconds",
		Help:      "Latest transmission end time reached by the scheduler.",
	})); err != nil {
		return nil, err
	}
	return pm, nil
}

// Gatherer returns the Prometheus gatherer associated with the monitor.
func (pm *PromStatsMonitor) Gatherer() prometheus.Gatherer {
	return pm.gatherer
}

// WriteText writes all gathered metric families in the Prometheus text format.
func (pm *PromStatsMonitor) WriteText(w io.Writer) error {
	mfs, err := pm.gatherer.Gather()
	if err != nil {
		return errors.Wrap(err, "gather metrics")
	}
	for _, mf := range mfs {
		if _, err = expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}

func (pm *PromStatsMonitor) Init() {
}

func (pm *PromStatsMonitor) Stop() {
}

func (pm *PromStatsMonitor) AddNode(_ NodeId, sf SpreadingFactor, _ float64) {
	pm.NodesActive.Inc()
	pm.NodesPerSf.WithLabelValues(sf.String()).Inc()
}

func (pm *PromStatsMonitor) OnTransmit(tx *event.Transmission) {
	pm.Transmissions.WithLabelValues(tx.Sf.String()).Inc()
	pm.Airtime.Observe(tx.Duration())
}

func (pm *PromStatsMonitor) OnCollision(tx *event.Transmission, _ NodeId, energyJ float64) {
	pm.Collisions.WithLabelValues(tx.Sf.String()).Inc()
	if energyJ > 0 {
		pm.EnergyJoules.Add(energyJ)
	}
}

func (pm *PromStatsMonitor) OnRetransmit(*event.Transmission) {
	pm.Retransmissions.Inc()
}

func (pm *PromStatsMonitor) OnDrop(NodeId, *event.Transmission) {
	pm.Dropped.Inc()
}

func (pm *PromStatsMonitor) OnSuccess(_ *event.Transmission, energyJ float64) {
	pm.Delivered.Inc()
	if energyJ > 0 {
		pm.EnergyJoules.Add(energyJ)
	}
}

func (pm *PromStatsMonitor) OnNodeFinished(NodeId) {
	pm.NodesActive.Dec()
}

func (pm *PromStatsMonitor) AdvanceTime(ts float64) {
	pm.SimulatedTime.Set(ts)
}

// register registers c, or returns the compatible collector that is already registered.
func register[T prometheus.Collector](reg prometheus.Registerer, c T) (T, error) {
	if err := reg.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing, nil
			}
			return c, errors.Errorf("collector already registered with incompatible type: %T", are.ExistingCollector)
		}
		return c, err
	}
	return c, nil
}
