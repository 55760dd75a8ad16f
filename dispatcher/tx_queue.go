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
	"container/heap"

	"github.com/otns-lab/lorasim/event"
	"github.com/otns-lab/lorasim/logger"
	. "github.com/otns-lab/lorasim/types"
)

type txEvent struct {
	NodeId NodeId
	Tx     *event.Transmission

	index int
}

// txQueue orders pending transmissions by start time, then by node id.
type txQueue []*txEvent

func (tq txQueue) Len() int {
	return len(tq)
}

func (tq txQueue) Less(i, j int) bool {
	if tq[i].Tx.Start != tq[j].Tx.Start {
		return tq[i].Tx.Start < tq[j].Tx.Start
	}
	return tq[i].NodeId < tq[j].NodeId
}

func (tq txQueue) Swap(i, j int) {
	a, b := tq[i], tq[j]
	if a.index != i || b.index != j {
		logger.Panicf("wrong index")
	}

	tq[i], tq[j] = b, a
	tq[i].index, tq[j].index = i, j
}

func (tq *txQueue) Push(x interface{}) {
	e := x.(*txEvent)
	*tq = append(*tq, e)
	e.index = len(*tq) - 1
}

func (tq *txQueue) Pop() (elem interface{}) {
	qlen := len(*tq)
	elem = (*tq)[qlen-1]
	*tq = (*tq)[:qlen-1]
	return
}

// txMgr keeps at most one pending transmission per node.
type txMgr struct {
	q      txQueue
	events map[NodeId]*txEvent
}

func newTxMgr() *txMgr {
	mgr := &txMgr{
		q:      txQueue{},
		events: map[NodeId]*txEvent{},
	}

	heap.Init(&mgr.q)
	return mgr
}

func (tm *txMgr) Add(tx *event.Transmission) {
	logger.AssertNil(tm.events[tx.NodeId], "node already has a pending transmission: %d", tx.NodeId)

	e := &txEvent{
		NodeId: tx.NodeId,
		Tx:     tx,
	}
	heap.Push(&tm.q, e)
	tm.events[tx.NodeId] = e
}

func (tm *txMgr) Get(nodeid NodeId) *event.Transmission {
	if e := tm.events[nodeid]; e != nil {
		return e.Tx
	}
	return nil
}

// Next returns the earliest pending transmission, or nil.
func (tm *txMgr) Next() *event.Transmission {
	if len(tm.q) == 0 {
		return nil
	}
	return tm.q[0].Tx
}

func (tm *txMgr) NextTimestamp() float64 {
	if len(tm.q) == 0 {
		return Ever
	}
	return tm.q[0].Tx.Start
}

func (tm *txMgr) Remove(nodeid NodeId) {
	e := tm.events[nodeid]
	logger.AssertNotNil(e)
	heap.Remove(&tm.q, e.index)
	delete(tm.events, nodeid)
}

func (tm *txMgr) Len() int {
	return len(tm.q)
}

// ForEach calls f for every pending transmission, in no particular order.
func (tm *txMgr) ForEach(f func(tx *event.Transmission)) {
	for _, e := range tm.q {
		f(e.Tx)
	}
}
