package memstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cognicore/scriptbox/pkg/scriptbox/internalerr"
	"github.com/cognicore/scriptbox/pkg/scriptbox/store"
)

func TestAppendAndReadTurns(t *testing.T) {
	ctx := context.Background()
	st := New()
	defer st.Close()

	now := time.Now()
	tokens := []string{"hello"}
	turns := []store.Turn{
		{ID: "b", SessionID: "s1", Seq: 2, User: "bye", Reply: "See you later!", At: now.Add(time.Second)},
		{ID: "a", SessionID: "s1", Seq: 1, User: "hello", Tokens: tokens, Reply: "hi", At: now},
	}
	for _, turn := range turns {
		if err := st.AppendTurn(ctx, turn); err != nil {
			t.Fatalf("AppendTurn: %v", err)
		}
	}
	tokens[0] = "mutated"

	got, err := st.Turns(ctx, "s1")
	if err != nil {
		t.Fatalf("Turns: %v", err)
	}
	if len(got) != 2 || got[0].ID != "a" || got[1].ID != "b" {
		t.Fatalf("turns not in seq order: %+v", got)
	}
	if got[0].Tokens[0] != "hello" {
		t.Errorf("stored tokens aliased caller slice: %v", got[0].Tokens)
	}
}

func TestAppendTurnValidation(t *testing.T) {
	ctx := context.Background()
	st := New()

	if err := st.AppendTurn(ctx, store.Turn{SessionID: "s"}); !errors.Is(err, internalerr.ErrInvalidInput) {
		t.Errorf("missing id: err = %v", err)
	}
	turn := store.Turn{ID: "x", SessionID: "s"}
	if err := st.AppendTurn(ctx, turn); err != nil {
		t.Fatal(err)
	}
	if err := st.AppendTurn(ctx, turn); !errors.Is(err, internalerr.ErrDuplicate) {
		t.Errorf("duplicate id: err = %v", err)
	}
}

func TestSessions(t *testing.T) {
	ctx := context.Background()
	st := New()

	if _, ok, _ := st.LastSession(ctx); ok {
		t.Fatal("empty store should have no last session")
	}

	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	_ = st.AppendTurn(ctx, store.Turn{ID: "1", SessionID: "old", Seq: 1, At: base})
	_ = st.AppendTurn(ctx, store.Turn{ID: "2", SessionID: "old", Seq: 2, At: base.Add(time.Minute)})
	_ = st.AppendTurn(ctx, store.Turn{ID: "3", SessionID: "new", Seq: 1, At: base.Add(time.Hour)})

	last, ok, err := st.LastSession(ctx)
	if err != nil || !ok || last != "new" {
		t.Errorf("LastSession = %q, %v, %v", last, ok, err)
	}

	sessions, _ := st.Sessions(ctx, 0)
	if len(sessions) != 2 || sessions[0].ID != "new" || sessions[1].Turns != 2 {
		t.Errorf("Sessions = %+v", sessions)
	}
	if !sessions[1].StartedAt.Equal(base) {
		t.Errorf("StartedAt = %v, want %v", sessions[1].StartedAt, base)
	}
	if limited, _ := st.Sessions(ctx, 1); len(limited) != 1 {
		t.Errorf("limit ignored: %d sessions", len(limited))
	}
}
