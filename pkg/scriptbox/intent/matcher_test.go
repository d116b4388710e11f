package intent

import (
	"errors"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/cognicore/scriptbox/pkg/scriptbox/internalerr"
)

func newTestMatcher(t *testing.T, opts ...Option) *Matcher {
	t.Helper()
	m, err := NewMatcher(DefaultTables(), rand.New(rand.NewPCG(1, 2)), opts...)
	if err != nil {
		t.Fatalf("NewMatcher: %v", err)
	}
	return m
}

func TestResolvePriority(t *testing.T) {
	m := newTestMatcher(t)
	tables := DefaultTables()

	tests := []struct {
		name     string
		tokens   []string
		category Category
		topic    string
		pool     []string
	}{
		{"greeting", []string{"hello"}, Greeting, "", tables.GreetingResponses},
		{"greeting beats farewell", []string{"hi", "goodbye"}, Greeting, "", tables.GreetingResponses},
		{"greeting wins regardless of order", []string{"goodbye", "hi"}, Greeting, "", tables.GreetingResponses},
		{"farewell", []string{"bye", "name"}, Farewell, "", tables.FarewellResponses},
		{"farewell beats topic", []string{"quit", "help"}, Farewell, "", tables.FarewellResponses},
		{"weather topic", []string{"whats", "weather", "today"}, KnowledgeTopic, "weather", topicResponses(tables, "weather")},
		{"thanks topic", []string{"thanks", "lot"}, KnowledgeTopic, "thanks", topicResponses(tables, "thanks")},
		{"first topic wins", []string{"help", "weather"}, KnowledgeTopic, "capabilities", topicResponses(tables, "capabilities")},
		{"empty", []string{}, Fallback, "", tables.FallbackResponses},
		{"nil", nil, Fallback, "", tables.FallbackResponses},
		{"unknown", []string{"banana"}, Fallback, "", tables.FallbackResponses},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := m.Resolve(tt.tokens)
			if got.Category != tt.category {
				t.Fatalf("category = %v, want %v", got.Category, tt.category)
			}
			if got.TopicID != tt.topic {
				t.Errorf("topic = %q, want %q", got.TopicID, tt.topic)
			}
			if !slices.Contains(tt.pool, got.Text) {
				t.Errorf("response %q not in %v", got.Text, tt.pool)
			}
		})
	}
}

func TestResolveAlwaysNonEmpty(t *testing.T) {
	m := newTestMatcher(t)
	inputs := [][]string{nil, {}, {""}, {" "}, {"zzz", "yyy"}, {"time"}, {"sup"}}
	for i := 0; i < 50; i++ {
		for _, in := range inputs {
			if got := m.Resolve(in); got.Text == "" {
				t.Fatalf("Resolve(%v) returned empty text", in)
			}
		}
	}
}

func TestResolveSeededIsReproducible(t *testing.T) {
	a, _ := NewMatcher(DefaultTables(), rand.New(rand.NewPCG(7, 7)))
	b, _ := NewMatcher(DefaultTables(), rand.New(rand.NewPCG(7, 7)))
	for i := 0; i < 20; i++ {
		ra := a.Resolve([]string{"thanks"})
		rb := b.Resolve([]string{"thanks"})
		if ra != rb {
			t.Fatalf("iteration %d: %+v != %+v", i, ra, rb)
		}
	}
}

func TestResolveCoversWholePool(t *testing.T) {
	m := newTestMatcher(t)
	seen := map[string]bool{}
	for i := 0; i < 500; i++ {
		seen[m.Resolve([]string{"hello"}).Text] = true
	}
	if len(seen) != len(DefaultTables().GreetingResponses) {
		t.Errorf("saw %d distinct greetings, want %d", len(seen), len(DefaultTables().GreetingResponses))
	}
}

func TestSubstringMatchesInsideWords(t *testing.T) {
	m := newTestMatcher(t)
	cat, topic := m.Classify([]string{"sometimes"})
	if cat != KnowledgeTopic || topic != "time" {
		t.Errorf("substring mode: got %v/%q, want topic/time", cat, topic)
	}
}

func TestPhraseModeRequiresWholeTokens(t *testing.T) {
	m := newTestMatcher(t, WithMatchMode(MatchPhrase))
	if m.Mode() != MatchPhrase {
		t.Fatalf("Mode() = %v", m.Mode())
	}

	if cat, _ := m.Classify([]string{"sometimes"}); cat != Fallback {
		t.Errorf("phrase mode: sometimes classified as %v, want fallback", cat)
	}
	cat, topic := m.Classify([]string{"current", "time", "please"})
	if cat != KnowledgeTopic || topic != "time" {
		t.Errorf("phrase mode: got %v/%q, want topic/time", cat, topic)
	}
	cat, topic = m.Classify([]string{"thank", "you"})
	if cat != KnowledgeTopic || topic != "thanks" {
		t.Errorf("phrase mode: got %v/%q, want topic/thanks", cat, topic)
	}
}

func TestGreetingNeedsExactToken(t *testing.T) {
	m := newTestMatcher(t)
	if cat, _ := m.Classify([]string{"high"}); cat == Greeting {
		t.Error("\"high\" must not match greeting trigger \"hi\"")
	}
}

func TestIsFarewell(t *testing.T) {
	m := newTestMatcher(t)
	tests := []struct {
		in   string
		want bool
	}{
		{"Bye now", true},
		{"OK, I QUIT", true},
		{"see you later alligator", true},
		{"quitting", true}, // raw substring, not a token match
		{"hello", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := m.IsFarewell(tt.in); got != tt.want {
			t.Errorf("IsFarewell(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestMixedCaseTriggers(t *testing.T) {
	tables := Tables{
		GreetingTriggers:  []string{"Hello"},
		GreetingResponses: []string{"hi"},
		FarewellTriggers:  []string{"Bye"},
		FarewellResponses: []string{"ciao"},
		FallbackResponses: []string{"what?"},
		Topics: []Topic{
			{ID: "weather", Triggers: []string{"Weather Today"}, Responses: []string{"sunny"}},
		},
	}
	for _, mode := range []MatchMode{MatchSubstring, MatchPhrase} {
		m, err := NewMatcher(tables, rand.New(rand.NewPCG(1, 2)), WithMatchMode(mode))
		if err != nil {
			t.Fatal(err)
		}
		tests := []struct {
			tokens []string
			want   Category
		}{
			{[]string{"hello"}, Greeting},
			{[]string{"bye"}, Farewell},
			{[]string{"weather", "today"}, KnowledgeTopic},
		}
		for _, tt := range tests {
			if got, _ := m.Classify(tt.tokens); got != tt.want {
				t.Errorf("%v: Classify(%v) = %v, want %v", mode, tt.tokens, got, tt.want)
			}
		}
		if !m.IsFarewell("BYE") {
			t.Errorf("%v: IsFarewell(BYE) = false", mode)
		}
	}
}

func TestMatcherOwnsItsTables(t *testing.T) {
	tables := DefaultTables()
	m, err := NewMatcher(tables, nil)
	if err != nil {
		t.Fatal(err)
	}
	tables.GreetingResponses[0] = "mutated"
	tables.Topics[0].Responses[0] = "mutated"

	if slices.Contains(m.Candidates(Greeting, ""), "mutated") {
		t.Error("matcher tables changed after caller mutation")
	}
	if slices.Contains(m.Candidates(KnowledgeTopic, "wellbeing"), "mutated") {
		t.Error("matcher topic changed after caller mutation")
	}
}

func TestNewMatcherRejectsInvalidTables(t *testing.T) {
	tables := DefaultTables()
	tables.FallbackResponses = nil
	if _, err := NewMatcher(tables, nil); !errors.Is(err, internalerr.ErrInvalidConfig) {
		t.Errorf("err = %v, want ErrInvalidConfig", err)
	}
}

func TestParseMatchMode(t *testing.T) {
	for in, want := range map[string]MatchMode{"": MatchSubstring, "substring": MatchSubstring, "Phrase": MatchPhrase} {
		got, err := ParseMatchMode(in)
		if err != nil || got != want {
			t.Errorf("ParseMatchMode(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseMatchMode("fuzzy"); !errors.Is(err, internalerr.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func topicResponses(t Tables, id string) []string {
	topic, _ := t.Topic(id)
	return topic.Responses
}
