// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"database/sql"
	_ "embed"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"github.com/passmo/elastodyn/fem"
)

//go:embed schema.sql
var schemaSQL string

// Store keeps time histories of nodal states in a SQLite database.
// It implements fem.Recorder.
type Store struct {
	db    *sql.DB
	run   string       // current run; set by BeginRun
	track map[int]bool // recorded vertices; all owned vertices if nil
}

// Run holds one row of the runs table
type Run struct {
	Id, Key, Desc, Created string
}

// State holds the state of one vertex at one output time
type State struct {
	T       float64
	U, V, A [3]float64
}

// Open creates or opens a SQLite database at the given path
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// single writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to execute schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// BeginRun registers a run; subsequent records belong to it
//  vids -- vertices to record; nil means all owned vertices
func (s *Store) BeginRun(id, key, desc string, vids []int) error {
	if _, err := s.db.Exec("INSERT INTO runs (id, key, desc) VALUES (?, ?, ?)", id, key, desc); err != nil {
		return fmt.Errorf("failed to insert run %q: %w", id, err)
	}
	s.run = id
	s.track = nil
	if vids != nil {
		s.track = make(map[int]bool)
		for _, vid := range vids {
			s.track[vid] = true
		}
	}
	return nil
}

// Record saves the state of the owned vertices of all domains
func (s *Store) Record(t float64, doms []*fem.Domain) (err error) {
	if s.run == "" {
		return fmt.Errorf("cannot record at t = %g: no run has begun", t)
	}
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()
	stmt, err := tx.Prepare(`INSERT INTO history (run, t, vert, ux, uy, uz, vx, vy, vz, ax, ay, az)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()
	for _, d := range doms {
		for _, n := range d.OwnedNodes() {
			if s.track != nil && !s.track[n.Vert.Id] {
				continue
			}
			_, err = stmt.Exec(s.run, t, n.Vert.Id,
				n.U[0], n.U[1], n.U[2],
				n.V[0], n.V[1], n.V[2],
				n.A[0], n.A[1], n.A[2])
			if err != nil {
				return fmt.Errorf("failed to insert state of vertex %d at t = %g: %w", n.Vert.Id, t, err)
			}
		}
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

// Runs returns all runs sorted by creation
func (s *Store) Runs() (runs []Run, err error) {
	rows, err := s.db.Query("SELECT id, key, desc, created FROM runs ORDER BY created, id")
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var r Run
		if err = rows.Scan(&r.Id, &r.Key, &r.Desc, &r.Created); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// History returns the states of one vertex sorted by time
func (s *Store) History(run string, vid int) (hist []State, err error) {
	rows, err := s.db.Query(`SELECT t, ux, uy, uz, vx, vy, vz, ax, ay, az FROM history
		WHERE run = ? AND vert = ? ORDER BY t`, run, vid)
	if err != nil {
		return nil, fmt.Errorf("failed to query history of vertex %d: %w", vid, err)
	}
	defer rows.Close()
	for rows.Next() {
		var h State
		err = rows.Scan(&h.T,
			&h.U[0], &h.U[1], &h.U[2],
			&h.V[0], &h.V[1], &h.V[2],
			&h.A[0], &h.A[1], &h.A[2])
		if err != nil {
			return nil, fmt.Errorf("failed to scan state: %w", err)
		}
		hist = append(hist, h)
	}
	return hist, rows.Err()
}
