package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/cognicore/scriptbox/pkg/scriptbox/internalerr"
	"github.com/cognicore/scriptbox/pkg/scriptbox/store"
)

func openTestStore(t *testing.T) store.Store {
	t.Helper()
	st, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "chat.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func TestSQLiteTranscriptRoundTrip(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)

	base := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	turns := []store.Turn{
		{ID: "t2", SessionID: "s1", Seq: 2, User: "thanks a lot", Tokens: []string{"thanks", "lot"}, Category: "topic", TopicID: "thanks", Reply: "No problem!", At: base.Add(time.Second)},
		{ID: "t1", SessionID: "s1", Seq: 1, User: "Hello there!", Tokens: []string{"hello"}, Category: "greeting", Reply: "hi", At: base},
	}
	for _, turn := range turns {
		if err := st.AppendTurn(ctx, turn); err != nil {
			t.Fatalf("AppendTurn(%s): %v", turn.ID, err)
		}
	}

	got, err := st.Turns(ctx, "s1")
	if err != nil {
		t.Fatalf("Turns: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 turns, got %d", len(got))
	}
	if got[0].ID != "t1" || got[1].ID != "t2" {
		t.Errorf("turns out of order: %s, %s", got[0].ID, got[1].ID)
	}
	if !reflect.DeepEqual(got[1].Tokens, []string{"thanks", "lot"}) {
		t.Errorf("tokens = %v", got[1].Tokens)
	}
	if got[1].TopicID != "thanks" || got[0].TopicID != "" {
		t.Errorf("topic ids = %q, %q", got[0].TopicID, got[1].TopicID)
	}
	if !got[0].At.Equal(base) {
		t.Errorf("At = %v, want %v", got[0].At, base)
	}
}

func TestSQLiteEmptyTokensStoredAsEmpty(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)

	if err := st.AppendTurn(ctx, store.Turn{ID: "x", SessionID: "s", Seq: 1, User: "the a", Category: "fallback", Reply: "?"}); err != nil {
		t.Fatal(err)
	}
	got, err := st.Turns(ctx, "s")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || len(got[0].Tokens) != 0 {
		t.Errorf("unexpected turns %+v", got)
	}
	if got[0].At.IsZero() {
		t.Error("zero At should default to now")
	}
}

func TestSQLiteDuplicateTurn(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)

	turn := store.Turn{ID: "dup", SessionID: "s", Seq: 1, Category: "greeting", Reply: "hi"}
	if err := st.AppendTurn(ctx, turn); err != nil {
		t.Fatal(err)
	}
	if err := st.AppendTurn(ctx, turn); !errors.Is(err, internalerr.ErrDuplicate) {
		t.Errorf("err = %v, want ErrDuplicate", err)
	}
	if err := st.AppendTurn(ctx, store.Turn{SessionID: "s"}); !errors.Is(err, internalerr.ErrInvalidInput) {
		t.Errorf("err = %v, want ErrInvalidInput", err)
	}
}

func TestSQLiteSessions(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)

	if _, ok, err := st.LastSession(ctx); err != nil || ok {
		t.Fatalf("LastSession on empty db = %v, %v", ok, err)
	}

	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	add := func(id, session string, seq int, at time.Time) {
		t.Helper()
		if err := st.AppendTurn(ctx, store.Turn{ID: id, SessionID: session, Seq: seq, Category: "fallback", Reply: "?", At: at}); err != nil {
			t.Fatal(err)
		}
	}
	add("a1", "first", 1, base)
	add("a2", "first", 2, base.Add(time.Minute))
	add("b1", "second", 1, base.Add(time.Hour))

	last, ok, err := st.LastSession(ctx)
	if err != nil || !ok || last != "second" {
		t.Errorf("LastSession = %q, %v, %v", last, ok, err)
	}

	sessions, err := st.Sessions(ctx, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(sessions) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(sessions))
	}
	if sessions[0].ID != "second" || sessions[1].Turns != 2 {
		t.Errorf("Sessions = %+v", sessions)
	}

	limited, err := st.Sessions(ctx, 1)
	if err != nil || len(limited) != 1 {
		t.Errorf("Sessions(limit=1) = %d, %v", len(limited), err)
	}
}

func TestSQLiteReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "chat.db")

	st, err := OpenSQLite(ctx, path)
	if err != nil {
		t.Fatal(err)
	}
	if err := st.AppendTurn(ctx, store.Turn{ID: "1", SessionID: "s", Seq: 1, Category: "greeting", Reply: "hi"}); err != nil {
		t.Fatal(err)
	}
	st.Close()

	st, err = OpenSQLite(ctx, path)
	if err != nil {
		t.Fatal(err)
	}
	defer st.Close()
	turns, err := st.Turns(ctx, "s")
	if err != nil || len(turns) != 1 {
		t.Errorf("after reopen: %d turns, err %v", len(turns), err)
	}
}
