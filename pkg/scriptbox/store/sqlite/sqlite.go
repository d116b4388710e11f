package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/cognicore/scriptbox/pkg/scriptbox/internalerr"
	"github.com/cognicore/scriptbox/pkg/scriptbox/store"
)

// sqliteStore implements the Store interface using SQLite
type sqliteStore struct {
	db *sql.DB
}

// OpenSQLite opens a SQLite transcript database with WAL mode enabled.
func OpenSQLite(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Enable WAL mode for better concurrency
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %v", internalerr.ErrStoreUnavailable, err)
	}

	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteStore{db: db}, nil
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

// initSchema creates tables if they don't exist
func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS sessions (
	id TEXT PRIMARY KEY,
	started_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS turns (
	id TEXT PRIMARY KEY,
	session_id TEXT NOT NULL,
	seq INTEGER NOT NULL,
	user_text TEXT NOT NULL,
	tokens_json TEXT NOT NULL DEFAULT '[]',
	category TEXT NOT NULL,
	topic_id TEXT,
	reply TEXT NOT NULL,
	at TEXT NOT NULL,
	FOREIGN KEY(session_id) REFERENCES sessions(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_turns_session ON turns(session_id, seq);
`

	_, err := db.ExecContext(ctx, schema)
	return err
}

// AppendTurn records a turn, creating its session row on first use.
func (s *sqliteStore) AppendTurn(ctx context.Context, t store.Turn) error {
	if t.ID == "" || t.SessionID == "" {
		return fmt.Errorf("%w: turn and session id required", internalerr.ErrInvalidInput)
	}
	if t.At.IsZero() {
		t.At = time.Now()
	}
	tokens := t.Tokens
	if tokens == nil {
		tokens = []string{}
	}
	tokensJSON, err := json.Marshal(tokens)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	at := t.At.UTC().Format(time.RFC3339Nano)
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO sessions (id, started_at) VALUES (?, ?) ON CONFLICT(id) DO NOTHING`,
		t.SessionID, at,
	); err != nil {
		return err
	}

	const stmt = `
INSERT INTO turns (id, session_id, seq, user_text, tokens_json, category, topic_id, reply, at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?);
`
	_, err = tx.ExecContext(ctx, stmt,
		t.ID, t.SessionID, t.Seq, t.User, string(tokensJSON), t.Category, t.TopicID, t.Reply, at,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return fmt.Errorf("%w: turn %s", internalerr.ErrDuplicate, t.ID)
		}
		return err
	}

	return tx.Commit()
}

// Turns returns a session's turns in sequence order.
func (s *sqliteStore) Turns(ctx context.Context, sessionID string) ([]store.Turn, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT id, session_id, seq, user_text, tokens_json, category, COALESCE(topic_id, ''), reply, at
FROM turns
WHERE session_id = ?
ORDER BY seq ASC, at ASC;
`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var turns []store.Turn
	for rows.Next() {
		var (
			t          store.Turn
			tokensJSON string
			at         string
		)
		if err := rows.Scan(&t.ID, &t.SessionID, &t.Seq, &t.User, &tokensJSON, &t.Category, &t.TopicID, &t.Reply, &at); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(tokensJSON), &t.Tokens); err != nil {
			return nil, fmt.Errorf("decode tokens for turn %s: %w", t.ID, err)
		}
		t.At = parseTime(at)
		turns = append(turns, t)
	}
	return turns, rows.Err()
}

// LastSession returns the most recently started session id.
func (s *sqliteStore) LastSession(ctx context.Context) (string, bool, error) {
	var id string
	err := s.db.QueryRowContext(ctx,
		`SELECT id FROM sessions ORDER BY started_at DESC, rowid DESC LIMIT 1`,
	).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return id, true, nil
}

// Sessions lists sessions newest first. A non-positive limit returns all.
func (s *sqliteStore) Sessions(ctx context.Context, limit int) ([]store.Session, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx, `
SELECT s.id, s.started_at, COUNT(t.id)
FROM sessions s
LEFT JOIN turns t ON t.session_id = s.id
GROUP BY s.id, s.started_at
ORDER BY s.started_at DESC, s.rowid DESC
LIMIT ?;
`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []store.Session
	for rows.Next() {
		var (
			sess    store.Session
			started string
		)
		if err := rows.Scan(&sess.ID, &started, &sess.Turns); err != nil {
			return nil, err
		}
		sess.StartedAt = parseTime(started)
		out = append(out, sess)
	}
	return out, rows.Err()
}

func parseTime(s string) time.Time {
	ts, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return ts
}
