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

// Package store keeps the summaries of simulation runs in a SQLite database, so that
// the results of sweeps can be compared afterwards.
package store

import (
	"context"
	"database/sql"
	"encoding/json"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"

	"github.com/otns-lab/lorasim/logger"
	"github.com/otns-lab/lorasim/simulation"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	status TEXT NOT NULL,
	created TEXT NOT NULL,
	seed INTEGER NOT NULL,
	nodes INTEGER NOT NULL,
	data_bytes INTEGER NOT NULL,
	delivered INTEGER NOT NULL,
	dropped INTEGER NOT NULL,
	collisions INTEGER NOT NULL,
	pdr REAL NOT NULL,
	collection_time_sec REAL NOT NULL,
	avg_energy_j REAL NOT NULL,
	summary TEXT NOT NULL
);`

var ErrNotFound = errors.New("run not found")

type Store struct {
	db *sql.DB
}

// Open opens, or creates, the run database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.Wrapf(err, "open run database %s", path)
	}
	if _, err = db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, errors.Wrapf(err, "init run database %s", path)
	}
	logger.Debugf("run database opened: %s", path)
	return &Store{db: db}, nil
}

func (st *Store) Close() error {
	return st.db.Close()
}

// SaveSummary inserts the summary of a run, replacing an earlier one with the same run id.
func (st *Store) SaveSummary(ctx context.Context, s *simulation.Summary) error {
	data, err := json.Marshal(s)
	if err != nil {
		return errors.Wrapf(err, "marshal summary")
	}
	_, err = st.db.ExecContext(ctx, `INSERT OR REPLACE INTO runs
		(run_id, name, status, created, seed, nodes, data_bytes, delivered, dropped, collisions, pdr,
		 collection_time_sec, avg_energy_j, summary)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.RunId, s.Name, s.Status, s.Created, s.Seed, s.Nodes, s.DataBytes, s.Delivered, s.Dropped,
		s.Collisions, s.Pdr, s.CollectionTimeSec, s.AvgEnergyJ, string(data))
	if err != nil {
		return errors.Wrapf(err, "save run %s", s.RunId)
	}
	return nil
}

// GetSummary returns the summary of the run with the given id.
func (st *Store) GetSummary(ctx context.Context, runId string) (*simulation.Summary, error) {
	var data string
	err := st.db.QueryRowContext(ctx, "SELECT summary FROM runs WHERE run_id = ?", runId).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, errors.Wrapf(ErrNotFound, "run %s", runId)
	} else if err != nil {
		return nil, errors.Wrapf(err, "query run %s", runId)
	}
	return decodeSummary(data)
}

// ListSummaries returns the summaries of all runs with the given name, or of all runs for an
// empty name, ordered by creation time.
func (st *Store) ListSummaries(ctx context.Context, name string) ([]*simulation.Summary, error) {
	query := "SELECT summary FROM runs ORDER BY created, rowid"
	var args []interface{}
	if name != "" {
		query = "SELECT summary FROM runs WHERE name = ? ORDER BY created, rowid"
		args = append(args, name)
	}
	rows, err := st.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrapf(err, "list runs")
	}
	defer rows.Close()

	var res []*simulation.Summary
	for rows.Next() {
		var data string
		if err = rows.Scan(&data); err != nil {
			return nil, errors.Wrapf(err, "scan run")
		}
		s, err := decodeSummary(data)
		if err != nil {
			return nil, err
		}
		res = append(res, s)
	}
	return res, errors.Wrapf(rows.Err(), "list runs")
}

func decodeSummary(data string) (*simulation.Summary, error) {
	s := &simulation.Summary{}
	if err := json.Unmarshal([]byte(data), s); err != nil {
		return nil, errors.Wrapf(err, "decode summary")
	}
	return s, nil
}
