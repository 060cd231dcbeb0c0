// Package journal persists watch activity to a SQLite database: delivered
// events, command invocations, and content snapshots with diffs for
// modified files.
package journal

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"watchdo/internal/watcher"
)

const schema = `
CREATE TABLE IF NOT EXISTS events (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id TEXT NOT NULL,
	path TEXT NOT NULL,
	kind TEXT NOT NULL,
	timestamp INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS actions (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id TEXT NOT NULL,
	command TEXT NOT NULL,
	timestamp INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS snapshots (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	path TEXT NOT NULL,
	content_hash TEXT NOT NULL,
	content TEXT NOT NULL,
	size INTEGER NOT NULL,
	timestamp INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS diffs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	path TEXT NOT NULL,
	old_snapshot_id INTEGER NOT NULL,
	new_snapshot_id INTEGER NOT NULL,
	diff_content TEXT NOT NULL,
	lines_added INTEGER NOT NULL,
	lines_removed INTEGER NOT NULL,
	timestamp INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_events_timestamp ON events(timestamp);
CREATE INDEX IF NOT EXISTS idx_snapshots_path ON snapshots(path, timestamp);
`

// Journal records watch activity in SQLite. Snapshot and diff work runs on
// a bounded worker pool so callers never block on file I/O.
type Journal struct {
	conn      *sql.DB
	sessionID string
	diffGen   *Generator
	pool      *WorkerPool
	logger    *log.Logger
}

// Open opens or creates a journal database at dbPath
func Open(dbPath string, logger *log.Logger) (*Journal, error) {
	conn, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping journal: %w", err)
	}

	if _, err := conn.Exec(schema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to initialize journal schema: %w", err)
	}

	// Single writer keeps SQLite contention out of the picture
	conn.SetMaxOpenConns(1)

	j := &Journal{
		conn:      conn,
		sessionID: uuid.NewString(),
		diffGen:   NewGenerator(),
		pool:      NewWorkerPool(4),
		logger:    logger,
	}
	j.pool.Start()

	return j, nil
}

// SessionID returns the identifier recorded with this journal's rows
func (j *Journal) SessionID() string {
	return j.sessionID
}

// HandleEvent records a delivered event. Modified files are additionally
// queued for content snapshotting.
func (j *Journal) HandleEvent(ev watcher.Event) {
	ctx := context.Background()

	if err := j.RecordEvent(ctx, ev); err != nil {
		j.logf("journal: recording event: %v", err)
	}

	if ev.Kind == watcher.KindModify {
		if !j.pool.Submit(&snapshotTask{journal: j, path: ev.Path}) {
			j.logf("journal: snapshot queue closed, dropping %s", ev.Path)
		}
	}
}

// RecordEvent inserts an event row
func (j *Journal) RecordEvent(ctx context.Context, ev watcher.Event) error {
	query := `
		INSERT INTO events (session_id, path, kind, timestamp)
		VALUES (?, ?, ?, ?)
	`
	_, err := j.conn.ExecContext(ctx, query, j.sessionID, ev.Path, string(ev.Kind), time.Now().Unix())
	return err
}

// RecordAction inserts a command invocation row
func (j *Journal) RecordAction(ctx context.Context, command string) error {
	query := `
		INSERT INTO actions (session_id, command, timestamp)
		VALUES (?, ?, ?)
	`
	_, err := j.conn.ExecContext(ctx, query, j.sessionID, command, time.Now().Unix())
	return err
}

// EventRecord is a journaled event row
type EventRecord struct {
	ID        int64
	SessionID string
	Path      string
	Kind      string
	Timestamp int64
}

// ActionRecord is a journaled command invocation
type ActionRecord struct {
	ID        int64
	SessionID string
	Command   string
	Timestamp int64
}

// DiffRecord is a journaled content diff
type DiffRecord struct {
	ID           int64
	Path         string
	DiffContent  string
	LinesAdded   int
	LinesRemoved int
	Timestamp    int64
}

// RecentEvents returns the most recent events, newest first
func (j *Journal) RecentEvents(ctx context.Context, limit int) ([]EventRecord, error) {
	query := `
		SELECT id, session_id, path, kind, timestamp
		FROM events
		ORDER BY timestamp DESC, id DESC
		LIMIT ?
	`

	rows, err := j.conn.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	var events []EventRecord
	for rows.Next() {
		var ev EventRecord
		if err := rows.Scan(&ev.ID, &ev.SessionID, &ev.Path, &ev.Kind, &ev.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan event record: %w", err)
		}
		events = append(events, ev)
	}

	return events, rows.Err()
}

// RecentActions returns the most recent command invocations, newest first
func (j *Journal) RecentActions(ctx context.Context, limit int) ([]ActionRecord, error) {
	query := `
		SELECT id, session_id, command, timestamp
		FROM actions
		ORDER BY timestamp DESC, id DESC
		LIMIT ?
	`

	rows, err := j.conn.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query actions: %w", err)
	}
	defer rows.Close()

	var actions []ActionRecord
	for rows.Next() {
		var a ActionRecord
		if err := rows.Scan(&a.ID, &a.SessionID, &a.Command, &a.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan action record: %w", err)
		}
		actions = append(actions, a)
	}

	return actions, rows.Err()
}

// RecentDiffs returns the most recent content diffs, newest first
func (j *Journal) RecentDiffs(ctx context.Context, limit int) ([]DiffRecord, error) {
	query := `
		SELECT id, path, diff_content, lines_added, lines_removed, timestamp
		FROM diffs
		ORDER BY timestamp DESC, id DESC
		LIMIT ?
	`

	rows, err := j.conn.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query diffs: %w", err)
	}
	defer rows.Close()

	var diffs []DiffRecord
	for rows.Next() {
		var d DiffRecord
		if err := rows.Scan(&d.ID, &d.Path, &d.DiffContent, &d.LinesAdded, &d.LinesRemoved, &d.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan diff record: %w", err)
		}
		diffs = append(diffs, d)
	}

	return diffs, rows.Err()
}

// Close drains the worker pool and closes the database
func (j *Journal) Close() error {
	j.pool.Stop()
	return j.conn.Close()
}

func (j *Journal) logf(format string, args ...any) {
	if j.logger != nil {
		j.logger.Printf(format, args...)
	}
}
