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
	"context"
	"sort"

	"github.com/pkg/errors"

	"github.com/otns-lab/lorasim/energy"
	"github.com/otns-lab/lorasim/event"
	"github.com/otns-lab/lorasim/logger"
	"github.com/otns-lab/lorasim/monitor"
	"github.com/otns-lab/lorasim/prng"
	"github.com/otns-lab/lorasim/radiomodel"
	. "github.com/otns-lab/lorasim/types"
)

// Dispatcher is the discrete-event scheduler. It repeatedly takes the earliest pending
// transmission, resolves its collisions and reschedules the nodes involved, until every
// node has emptied its backlog.
type Dispatcher struct {
	ctx    context.Context
	cfg    Config
	params *radiomodel.RadioModelParams
	rnd    *prng.Generators
	energy *energy.EnergyAnalyser
	mon    monitor.Monitor

	nodes       map[NodeId]*Node
	nodeIds     []NodeId // sorted
	txMgr       *txMgr
	stats       Stats
	numFinished int
	lastStart   float64

	// CurTime is the latest end time (s) of a processed transmission.
	CurTime float64
}

func NewDispatcher(ctx context.Context, cfg *Config, params *radiomodel.RadioModelParams, rnd *prng.Generators,
	ea *energy.EnergyAnalyser, mon monitor.Monitor) *Dispatcher {
	if ctx == nil {
		ctx = context.Background()
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if mon == nil {
		mon = monitor.NewNopMonitor()
	}
	return &Dispatcher{
		ctx:    ctx,
		cfg:    *cfg,
		params: params,
		rnd:    rnd,
		energy: ea,
		mon:    mon,
		nodes:  map[NodeId]*Node{},
		txMgr:  newTxMgr(),
	}
}

// AddNode registers a node whose link has been configured, with its data backlog (bytes).
func (d *Dispatcher) AddNode(rn *radiomodel.RadioNode, backlog int) *Node {
	logger.AssertTrue(rn.Sf.IsValid(), "node link not configured: %d", rn.Id)
	logger.AssertNil(d.nodes[rn.Id], "node already added: %d", rn.Id)

	node := newNode(rn, backlog)
	d.nodes[rn.Id] = node
	d.nodeIds = append(d.nodeIds, rn.Id)
	sort.Ints(d.nodeIds)
	d.energy.AddNode(rn.Id)
	d.stats.NumNodes++
	d.stats.ExpectedTransmissions += node.ExpectedTransmissions(d.params)
	d.mon.AddNode(rn.Id, rn.Sf, rn.DistanceToGateway)

	if node.Backlog <= 0 {
		d.finishNode(node)
	}
	return node
}

func (d *Dispatcher) Nodes() map[NodeId]*Node {
	return d.nodes
}

func (d *Dispatcher) GetNode(id NodeId) *Node {
	return d.nodes[id]
}

// NodeIds returns the ids of all nodes in increasing order.
func (d *Dispatcher) NodeIds() []NodeId {
	return d.nodeIds
}

func (d *Dispatcher) Stats() Stats {
	return d.stats
}

func (d *Dispatcher) NumFinished() int {
	return d.numFinished
}

// ScheduleInitial schedules the first transmission of every node at a random offset.
func (d *Dispatcher) ScheduleInitial() {
	for _, id := range d.nodeIds {
		node := d.nodes[id]
		if node.IsFinished() || node.Tx != nil {
			continue
		}
		window := d.cfg.StartWindow * radiomodel.DefaultAirtime(node.Radio.Sf, d.params)
		d.schedule(node, d.rnd.NewStartOffset(window), 0)
	}
}

// ScheduleAt schedules the next transmission of a node at a given start time (s).
func (d *Dispatcher) ScheduleAt(id NodeId, start float64) *event.Transmission {
	node := d.nodes[id]
	logger.AssertNotNil(node, "unknown node: %d", id)
	logger.AssertTrue(!node.IsFinished() && node.Tx == nil, "node can not be scheduled: %d", id)
	return d.schedule(node, start, 0)
}

// Run processes transmissions until all nodes are finished, or ctx is cancelled.
func (d *Dispatcher) Run() error {
	for d.numFinished < len(d.nodes) {
		if err := d.ctx.Err(); err != nil {
			return errors.Wrapf(err, "dispatcher stopped at %.3fs", d.CurTime)
		}
		if !d.processNextEvent() {
			logger.Panicf("no pending transmission, but %d nodes unfinished", len(d.nodes)-d.numFinished)
		}
	}
	d.updateStats()
	logger.Debugf("dispatcher done: %v", d.stats)
	return nil
}

// processNextEvent handles the earliest pending transmission. It returns false if there is none.
func (d *Dispatcher) processNextEvent() bool {
	sel := d.txMgr.Next()
	if sel == nil {
		return false
	}
	logger.AssertTrue(sel.Start >= d.lastStart, "transmission scheduled in the past: %v", sel)
	d.lastStart = sel.Start

	node := d.nodes[sel.NodeId]
	logger.AssertTrue(node.Backlog > 0)
	d.advanceTime(sel.End)
	// the outcomes reported below belong to the new time
	d.mon.AdvanceTime(d.CurTime)

	selFailed := false
	lost := d.resolveCollisions(sel)
	for _, id := range sortedIds(lost) {
		if id == sel.NodeId {
			selFailed = true
		}
		d.onFailure(d.nodes[id], lost[id])
	}
	if !selFailed {
		d.onSuccess(node)
	}

	d.updateStats()
	return true
}

// resolveCollisions returns the nodes whose pending transmission is lost because of an overlap
// with sel, each mapped to the node it collided with. It includes sel's own node if it fails itself.
func (d *Dispatcher) resolveCollisions(sel *event.Transmission) map[NodeId]NodeId {
	var others []*event.Transmission
	d.txMgr.ForEach(func(tx *event.Transmission) {
		if tx.NodeId != sel.NodeId && sel.Overlaps(tx) {
			others = append(others, tx)
		}
	})
	if len(others) == 0 {
		return nil
	}
	sort.Slice(others, func(i, j int) bool {
		return others[i].NodeId < others[j].NodeId
	})

	lost := map[NodeId]NodeId{}
	for _, other := range others {
		selLost, otherLost, kind := radiomodel.ResolveCollision(sel, other, d.params)
		if kind == radiomodel.NoCollision {
			continue
		}
		logger.Debugf("collision (%v) %v <> %v", kind, sel, other)
		if _, ok := lost[sel.NodeId]; selLost && !ok {
			lost[sel.NodeId] = other.NodeId
		}
		if otherLost {
			lost[other.NodeId] = sel.NodeId
		}
	}
	return lost
}

func sortedIds(m map[NodeId]NodeId) []NodeId {
	ids := make([]NodeId, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

func (d *Dispatcher) onSuccess(node *Node) {
	tx := d.takeTx(node)
	node.Backlog -= tx.PayloadBytes
	node.Retransmissions = 0
	node.Delivered++
	d.stats.Delivered++

	joules := d.energy.ChargeTx(node.Id, tx.Duration())
	logger.Debugf("%v: %v", tx, event.OutcomeSuccess)
	d.mon.OnSuccess(tx, joules)
	d.continueOrFinish(node, tx)
}

func (d *Dispatcher) onFailure(node *Node, otherId NodeId) {
	tx := d.takeTx(node)
	d.stats.Collisions++
	joules := 0.0
	if d.cfg.ChargeFailedTx {
		joules = d.energy.ChargeTx(node.Id, tx.Duration())
	}
	d.mon.OnCollision(tx, otherId, joules)

	if node.Retransmissions < d.cfg.MaxRetransmissions {
		node.Retransmissions++
		d.stats.Retransmissions++
		retry := d.schedule(node, d.nextStart(node, tx), tx.Attempt+1)
		logger.Debugf("%v: %v as %v", tx, event.OutcomeRetransmit, retry)
		d.mon.OnRetransmit(retry)
		return
	}

	node.Backlog -= d.params.PayloadCap.Get(node.Radio.Sf)
	if node.Backlog < 0 {
		node.Backlog = 0
	}
	node.Retransmissions = 0
	node.Dropped++
	d.stats.Dropped++
	logger.Debugf("%v: %v", tx, event.OutcomeDropped)
	d.mon.OnDrop(node.Id, tx)
	d.continueOrFinish(node, tx)
}

func (d *Dispatcher) continueOrFinish(node *Node, prev *event.Transmission) {
	if node.Backlog > 0 {
		d.schedule(node, d.nextStart(node, prev), 0)
		return
	}
	d.finishNode(node)
}

// nextStart spaces the next attempt by the duty-cycle off-time plus a random jitter.
func (d *Dispatcher) nextStart(node *Node, prev *event.Transmission) float64 {
	offTime := d.cfg.DutyCycleFactor * radiomodel.DefaultAirtime(node.Radio.Sf, d.params)
	return prev.Start + offTime + d.rnd.NewJitter(d.cfg.MaxJitter)
}

func (d *Dispatcher) schedule(node *Node, start float64, attempt int) *event.Transmission {
	payload := node.NextChunk(d.params)
	tx := &event.Transmission{
		NodeId:       node.Id,
		Sf:           node.Radio.Sf,
		Start:        start,
		End:          start + node.Radio.Airtime(payload, d.params),
		PayloadBytes: payload,
		RxPowerDbm:   node.Radio.RxPowerDbm,
		Attempt:      attempt,
	}
	node.Tx = tx
	node.State = NodeScheduled
	d.txMgr.Add(tx)
	d.stats.Transmissions++
	d.mon.OnTransmit(tx)
	return tx
}

func (d *Dispatcher) takeTx(node *Node) *event.Transmission {
	tx := node.Tx
	logger.AssertNotNil(tx, "node has no pending transmission: %d", node.Id)
	logger.AssertTrue(d.txMgr.Get(node.Id) == tx, "pending transmission of node %d not queued", node.Id)
	d.txMgr.Remove(node.Id)
	node.Tx = nil
	node.State = NodeIdle
	return tx
}

func (d *Dispatcher) finishNode(node *Node) {
	logger.AssertFalse(node.IsFinished())
	node.State = NodeFinished
	d.numFinished++
	d.energy.OnNodeFinished(d.CurTime)
	d.mon.OnNodeFinished(node.Id)
	logger.Debugf("node %d finished at %.3fs: delivered=%d dropped=%d", node.Id, d.CurTime, node.Delivered,
		node.Dropped)
}

func (d *Dispatcher) advanceTime(ts float64) {
	if ts > d.CurTime {
		d.CurTime = ts
	}
}
