package store

import (
	"context"
	"time"
)

// Store persists chat transcripts.
type Store interface {
	Close() error

	// AppendTurn records one exchange. Turn IDs must be unique.
	AppendTurn(ctx context.Context, t Turn) error
	// Turns returns a session's turns in sequence order.
	Turns(ctx context.Context, sessionID string) ([]Turn, error)
	// LastSession returns the id of the most recently started session.
	LastSession(ctx context.Context) (string, bool, error)
	// Sessions summarizes up to limit sessions, newest first.
	Sessions(ctx context.Context, limit int) ([]Session, error)
}

// Turn is one user utterance and the bot's reply.
type Turn struct {
	ID        string
	SessionID string
	Seq       int
	User      string
	Tokens    []string
	Category  string
	TopicID   string
	Reply     string
	At        time.Time
}

// Session summarizes a stored conversation.
type Session struct {
	ID        string
	StartedAt time.Time
	Turns     int
}
