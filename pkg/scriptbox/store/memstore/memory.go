package memstore

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"sync"

	"github.com/cognicore/scriptbox/pkg/scriptbox/internalerr"
	"github.com/cognicore/scriptbox/pkg/scriptbox/store"
)

// Store is an in-memory implementation of store.Store for tests.
type Store struct {
	mu       sync.RWMutex
	ids      map[string]struct{}
	sessions map[string][]store.Turn
	order    []string // session ids in start order
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{
		ids:      make(map[string]struct{}),
		sessions: make(map[string][]store.Turn),
	}
}

// Close implements store.Store.
func (s *Store) Close() error { return nil }

// AppendTurn implements store.Store.
func (s *Store) AppendTurn(ctx context.Context, t store.Turn) error {
	if t.ID == "" || t.SessionID == "" {
		return fmt.Errorf("%w: turn and session id required", internalerr.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, dup := s.ids[t.ID]; dup {
		return fmt.Errorf("%w: turn %s", internalerr.ErrDuplicate, t.ID)
	}
	s.ids[t.ID] = struct{}{}
	if _, ok := s.sessions[t.SessionID]; !ok {
		s.order = append(s.order, t.SessionID)
	}
	t.Tokens = slices.Clone(t.Tokens)
	s.sessions[t.SessionID] = append(s.sessions[t.SessionID], t)
	return nil
}

// Turns implements store.Store.
func (s *Store) Turns(ctx context.Context, sessionID string) ([]store.Turn, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	turns := slices.Clone(s.sessions[sessionID])
	for i := range turns {
		turns[i].Tokens = slices.Clone(turns[i].Tokens)
	}
	sort.SliceStable(turns, func(i, j int) bool { return turns[i].Seq < turns[j].Seq })
	return turns, nil
}

// LastSession implements store.Store.
func (s *Store) LastSession(ctx context.Context) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.order) == 0 {
		return "", false, nil
	}
	return s.order[len(s.order)-1], true, nil
}

// Sessions implements store.Store.
func (s *Store) Sessions(ctx context.Context, limit int) ([]store.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []store.Session
	for i := len(s.order) - 1; i >= 0; i-- {
		if limit > 0 && len(out) >= limit {
			break
		}
		id := s.order[i]
		turns := s.sessions[id]
		sess := store.Session{ID: id, Turns: len(turns)}
		for _, t := range turns {
			if sess.StartedAt.IsZero() || t.At.Before(sess.StartedAt) {
				sess.StartedAt = t.At
			}
		}
		out = append(out, sess)
	}
	return out, nil
}
