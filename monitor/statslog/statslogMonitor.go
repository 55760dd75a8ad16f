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

package monitor_statslog

import (
	"fmt"
	"os"

	"github.com/otns-lab/lorasim/event"
	"github.com/otns-lab/lorasim/logger"
	"github.com/otns-lab/lorasim/monitor"
	. "github.com/otns-lab/lorasim/types"
)

type statslogMonitor struct {
	logFile       *os.File
	logFileName   string
	isFileEnabled bool
	changed       bool    // flag to track if some stats changed
	timestamp     float64 // simulation current time (s)
	stats         runStats
	oldStats      runStats
}

type runStats struct {
	numNodes         int
	numFinished      int
	numDelivered     int
	numCollided      int
	numRetransmitted int
	numDropped       int
}

// NewStatslogMonitor creates a new Monitor that writes a CSV log of run progress to fileName.
func NewStatslogMonitor(fileName string) monitor.Monitor {
	return &statslogMonitor{
		logFileName:   fileName,
		isFileEnabled: true,
		changed:       true,
	}
}

func (sm *statslogMonitor) Init() {
	sm.createLogFile()
}

func (sm *statslogMonitor) Stop() {
	// final entry with final status
	sm.writeLogEntry(sm.timestamp, sm.stats)
	sm.close()
	logger.Debugf("statslogMonitor stopped and CSV log file closed.")
}

func (sm *statslogMonitor) AddNode(NodeId, SpreadingFactor, float64) {
	sm.changed = true
	sm.stats.numNodes++
}

func (sm *statslogMonitor) OnTransmit(*event.Transmission) {
}

func (sm *statslogMonitor) OnCollision(*event.Transmission, NodeId, float64) {
	sm.changed = true
	sm.stats.numCollided++
}

func (sm *statslogMonitor) OnRetransmit(*event.Transmission) {
	sm.changed = true
	sm.stats.numRetransmitted++
}

func (sm *statslogMonitor) OnDrop(NodeId, *event.Transmission) {
	sm.changed = true
	sm.stats.numDropped++
}

func (sm *statslogMonitor) OnSuccess(*event.Transmission, float64) {
	sm.changed = true
	sm.stats.numDelivered++
}

func (sm *statslogMonitor) OnNodeFinished(NodeId) {
	sm.changed = true
	sm.stats.numFinished++
}

func (sm *statslogMonitor) AdvanceTime(ts float64) {
	if sm.changed && sm.stats != sm.oldStats {
		sm.writeLogEntry(sm.timestamp, sm.stats)
		sm.oldStats = sm.stats
	}
	sm.changed = false
	sm.timestamp = ts
}

func (sm *statslogMonitor) createLogFile() {
	logger.AssertNil(sm.logFile)

	var err error
	_ = os.Remove(sm.logFileName)

	sm.logFile, err = os.OpenFile(sm.logFileName, os.O_CREATE|os.O_WRONLY, 0664)
	if err != nil {
		logger.Errorf("creating new stats log file %s failed: %+v", sm.logFileName, err)
		sm.isFileEnabled = false
		return
	}
	sm.writeLogFileHeader()
	logger.Debugf("Stats log file '%s' created.", sm.logFileName)
}

func (sm *statslogMonitor) writeLogFileHeader() {
	// RFC 4180 CSV file: no leading or trailing spaces in header field names
	header := "timeSec,nActive,nFinished,nDelivered,nCollided,nRetransmitted,nDropped"
	_ = sm.writeToLogFile(header)
}

func (sm *statslogMonitor) writeLogEntry(ts float64, stats runStats) {
	entry := fmt.Sprintf("%12.6f,%4d,%4d,%6d,%6d,%6d,%6d", ts, stats.numNodes-stats.numFinished,
		stats.numFinished, stats.numDelivered, stats.numCollided, stats.numRetransmitted, stats.numDropped)
	_ = sm.writeToLogFile(entry)
	logger.Tracef("statslog entry added: %s", entry)
}

func (sm *statslogMonitor) writeToLogFile(line string) error {
	if !sm.isFileEnabled {
		return nil
	}
	_, err := sm.logFile.WriteString(line + "\n")
	if err != nil {
		sm.close()
		sm.isFileEnabled = false
		logger.Errorf("couldn't write to stats log file (%s), closing it", sm.logFileName)
	}
	return err
}

func (sm *statslogMonitor) close() {
	if sm.logFile != nil {
		_ = sm.logFile.Close()
		sm.logFile = nil
		sm.isFileEnabled = false
	}
}
