// Package journal persists an append-only flight recorder of decisions in
// SQLite. The brain itself stays in-memory; the journal exists so a run can
// be inspected after the fact.
package journal

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/teslashibe/go-rover/pkg/brain"
)

// Entry is one journaled decision.
type Entry struct {
	ID          int64
	Epoch       int
	Number      int
	Action      brain.Action
	Speed       int
	Stage       brain.Stage
	TraveledCM  float64
	Explanation string
	CreatedAt   time.Time
}

// Store is a SQLite-backed decision journal.
type Store struct {
	db *sql.DB
}

// Open creates or opens the journal at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("journal: open %s: %w", path, err)
	}
	s := &Store{db: db}
	if err := s.init(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) init() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS decisions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		epoch INTEGER NOT NULL,
		number INTEGER NOT NULL,
		action TEXT NOT NULL,
		speed INTEGER NOT NULL,
		stage TEXT NOT NULL,
		traveled_cm REAL NOT NULL,
		explanation TEXT NOT NULL,
		created_at TEXT NOT NULL
	)`)
	if err != nil {
		return fmt.Errorf("journal: init schema: %w", err)
	}
	return nil
}

// Append stores one decision for the given epoch.
func (s *Store) Append(epoch int, d brain.Decision) error {
	_, err := s.db.Exec(
		`INSERT INTO decisions (epoch, number, action, speed, stage, traveled_cm, explanation, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		epoch, d.Number, string(d.Action), d.Speed, string(d.Stage),
		d.TraveledCM, d.Explanation, d.Timestamp.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("journal: append: %w", err)
	}
	return nil
}

// Recent returns the newest n entries, oldest first.
func (s *Store) Recent(n int) ([]Entry, error) {
	rows, err := s.db.Query(
		`SELECT id, epoch, number, action, speed, stage, traveled_cm, explanation, created_at
		 FROM decisions ORDER BY id DESC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("journal: recent: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var action, stage, createdAt string
		if err := rows.Scan(&e.ID, &e.Epoch, &e.Number, &action, &e.Speed,
			&stage, &e.TraveledCM, &e.Explanation, &createdAt); err != nil {
			return nil, fmt.Errorf("journal: scan: %w", err)
		}
		e.Action = brain.Action(action)
		e.Stage = brain.Stage(stage)
		if t, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
			e.CreatedAt = t
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("journal: recent: %w", err)
	}

	// Reverse to oldest-first.
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
	return entries, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}
