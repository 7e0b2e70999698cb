// Package storage keeps a SQLite journal of played sessions: the seed and
// every non-empty input frame, enough to replay a session exactly.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// Session is one recorded game from Reset to quit or game over.
type Session struct {
	ID        int64
	Variant   string
	Seed      int64
	FrameRate int
	Score     int
	Lines     int
	Frames    uint64
	CreatedAt time.Time

	// Config is the effective game configuration as YAML, empty for defaults.
	Config string

	// Inputs is only filled by Store.Session.
	Inputs []Input
}

// Input is one action pressed on a given frame (1-based, as counted by Step).
type Input struct {
	Frame  uint64
	Action core.Action
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS sessions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			variant TEXT NOT NULL,
			seed INTEGER NOT NULL,
			frame_rate INTEGER NOT NULL,
			score INTEGER NOT NULL DEFAULT 0,
			lines INTEGER NOT NULL DEFAULT 0,
			frames INTEGER NOT NULL DEFAULT 0,
			config TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_sessions_variant ON sessions(variant);

		CREATE TABLE IF NOT EXISTS session_inputs (
			session_id INTEGER NOT NULL,
			frame INTEGER NOT NULL,
			action TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_session_inputs_session ON session_inputs(session_id, frame);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveSession writes the session and its inputs in one transaction and
// returns the new session ID.
func (s *Store) SaveSession(sess Session) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() // no-op after Commit

	res, err := tx.Exec(
		`INSERT INTO sessions (variant, seed, frame_rate, score, lines, frames, config)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		sess.Variant, sess.Seed, sess.FrameRate, sess.Score, sess.Lines, int64(sess.Frames), sess.Config,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save session: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	if len(sess.Inputs) > 0 {
		stmt, err := tx.Prepare(`INSERT INTO session_inputs (session_id, frame, action) VALUES (?, ?, ?)`)
		if err != nil {
			return 0, fmt.Errorf("storage: cannot prepare input insert: %w", err)
		}
		defer stmt.Close()

		for _, in := range sess.Inputs {
			if _, err := stmt.Exec(id, int64(in.Frame), in.Action.String()); err != nil {
				return 0, fmt.Errorf("storage: cannot save input: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("storage: cannot commit session: %w", err)
	}
	return id, nil
}

// Sessions returns the most recent sessions, newest first, without inputs.
func (s *Store) Sessions(limit int) ([]Session, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, variant, seed, frame_rate, score, lines, frames, config, created_at
		 FROM sessions
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, sess)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return sessions, nil
}

// Session loads one session with its inputs in frame order.
// Returns nil, nil if no session has that ID.
func (s *Store) Session(id int64) (*Session, error) {
	row := s.db.QueryRow(
		`SELECT id, variant, seed, frame_rate, score, lines, frames, config, created_at
		 FROM sessions
		 WHERE id = ?`,
		id,
	)
	sess, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.db.Query(
		`SELECT frame, action FROM session_inputs
		 WHERE session_id = ?
		 ORDER BY frame, rowid`,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query inputs: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			frame  int64
			action string
		)
		if err := rows.Scan(&frame, &action); err != nil {
			return nil, fmt.Errorf("storage: cannot scan input: %w", err)
		}
		a := core.ParseAction(action)
		if a == core.ActionNone {
			return nil, fmt.Errorf("storage: session %d frame %d: unknown action %q", id, frame, action)
		}
		sess.Inputs = append(sess.Inputs, Input{Frame: uint64(frame), Action: a})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return &sess, nil
}

// DeleteSession removes a session and its inputs.
func (s *Store) DeleteSession(id int64) error {
	if _, err := s.db.Exec("DELETE FROM session_inputs WHERE session_id = ?", id); err != nil {
		return fmt.Errorf("storage: cannot delete inputs: %w", err)
	}
	if _, err := s.db.Exec("DELETE FROM sessions WHERE id = ?", id); err != nil {
		return fmt.Errorf("storage: cannot delete session: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSession(row scanner) (Session, error) {
	var (
		sess      Session
		frames    int64
		createdAt any
	)
	err := row.Scan(&sess.ID, &sess.Variant, &sess.Seed, &sess.FrameRate,
		&sess.Score, &sess.Lines, &frames, &sess.Config, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return sess, err
	}
	if err != nil {
		return sess, fmt.Errorf("storage: cannot scan session: %w", err)
	}
	sess.Frames = uint64(frames)
	sess.CreatedAt = parseTime(createdAt)
	return sess, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
