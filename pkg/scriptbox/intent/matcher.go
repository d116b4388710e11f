package intent

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/cognicore/scriptbox/pkg/scriptbox/internalerr"
)

// Category is the kind of intent an utterance resolved to.
type Category int

const (
	Greeting Category = iota
	Farewell
	KnowledgeTopic
	Fallback
)

func (c Category) String() string {
	switch c {
	case Greeting:
		return "greeting"
	case Farewell:
		return "farewell"
	case KnowledgeTopic:
		return "topic"
	case Fallback:
		return "fallback"
	default:
		return fmt.Sprintf("category(%d)", int(c))
	}
}

// MatchMode controls how knowledge-base trigger phrases are tested.
type MatchMode int

const (
	// MatchSubstring tests each trigger as a raw substring of the
	// space-joined tokens, so "time" also fires inside "sometimes".
	MatchSubstring MatchMode = iota
	// MatchPhrase requires the trigger's words to appear as a contiguous
	// run of whole tokens.
	MatchPhrase
)

func (m MatchMode) String() string {
	if m == MatchPhrase {
		return "phrase"
	}
	return "substring"
}

// ParseMatchMode accepts "substring" (or "") and "phrase".
func ParseMatchMode(s string) (MatchMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "substring":
		return MatchSubstring, nil
	case "phrase":
		return MatchPhrase, nil
	default:
		return MatchSubstring, fmt.Errorf("%w: unknown match mode %q", internalerr.ErrInvalidInput, s)
	}
}

// Response is the matcher's answer plus what produced it.
type Response struct {
	Category Category
	TopicID  string
	Text     string
}

// Matcher resolves normalized tokens to a reply. Checks run in a fixed
// order and the first hit wins: greeting, farewell, knowledge topics in
// declaration order, fallback.
//
// A Matcher is not safe for concurrent use because it owns its random source.
type Matcher struct {
	tables   Tables
	greeting map[string]struct{}
	farewell map[string]struct{}
	phrases  [][][]string // per topic, per trigger, words
	mode     MatchMode
	rng      *rand.Rand
}

// Option configures a Matcher.
type Option func(*Matcher)

// WithMatchMode selects how topic triggers are matched.
func WithMatchMode(mode MatchMode) Option {
	return func(m *Matcher) { m.mode = mode }
}

// NewMatcher validates tables and builds a matcher drawing replies from rng.
// A nil rng gets a randomly seeded source. Triggers are lowercased so they
// compare against normalized tokens.
func NewMatcher(tables Tables, rng *rand.Rand, opts ...Option) (*Matcher, error) {
	if err := tables.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	t := tables.Clone()
	lowerTriggers(&t)
	m := &Matcher{
		tables:   t,
		greeting: toSet(t.GreetingTriggers),
		farewell: toSet(t.FarewellTriggers),
		phrases:  make([][][]string, len(t.Topics)),
		rng:      rng,
	}
	for i, topic := range t.Topics {
		m.phrases[i] = make([][]string, len(topic.Triggers))
		for j, trig := range topic.Triggers {
			m.phrases[i][j] = strings.Fields(trig)
		}
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Mode reports the configured match mode.
func (m *Matcher) Mode() MatchMode {
	return m.mode
}

// Tables returns a copy of the matcher's tables.
func (m *Matcher) Tables() Tables {
	return m.tables.Clone()
}

// Classify decides the category for tokens without picking a reply.
// The topic id is empty unless the category is KnowledgeTopic.
func (m *Matcher) Classify(tokens []string) (Category, string) {
	for _, tok := range tokens {
		if _, ok := m.greeting[tok]; ok {
			return Greeting, ""
		}
	}
	for _, tok := range tokens {
		if _, ok := m.farewell[tok]; ok {
			return Farewell, ""
		}
	}

	joined := strings.Join(tokens, " ")
	for i, topic := range m.tables.Topics {
		if m.topicMatches(i, topic, tokens, joined) {
			return KnowledgeTopic, topic.ID
		}
	}
	return Fallback, ""
}

// Resolve picks a reply for tokens. It never fails and the text is never empty.
func (m *Matcher) Resolve(tokens []string) Response {
	category, topicID := m.Classify(tokens)
	resp := Response{Category: category, TopicID: topicID}
	switch category {
	case Greeting:
		resp.Text = m.pick(m.tables.GreetingResponses)
	case Farewell:
		resp.Text = m.pick(m.tables.FarewellResponses)
	case KnowledgeTopic:
		topic, _ := m.tables.Topic(topicID)
		resp.Text = m.pick(topic.Responses)
	default:
		resp.Text = m.pick(m.tables.FallbackResponses)
	}
	return resp
}

// Candidates returns the reply set a category draws from.
func (m *Matcher) Candidates(category Category, topicID string) []string {
	switch category {
	case Greeting:
		return m.tables.GreetingResponses
	case Farewell:
		return m.tables.FarewellResponses
	case KnowledgeTopic:
		topic, _ := m.tables.Topic(topicID)
		return topic.Responses
	default:
		return m.tables.FallbackResponses
	}
}

// IsFarewell reports whether raw text, lowercased, contains any farewell
// trigger as a literal substring. Sessions use it to decide when to stop.
func (m *Matcher) IsFarewell(raw string) bool {
	lowered := strings.ToLower(raw)
	for _, trig := range m.tables.FarewellTriggers {
		if strings.Contains(lowered, trig) {
			return true
		}
	}
	return false
}

func (m *Matcher) topicMatches(i int, topic Topic, tokens []string, joined string) bool {
	if m.mode == MatchPhrase {
		for _, words := range m.phrases[i] {
			if containsRun(tokens, words) {
				return true
			}
		}
		return false
	}
	for _, trig := range topic.Triggers {
		if strings.Contains(joined, trig) {
			return true
		}
	}
	return false
}

func (m *Matcher) pick(options []string) string {
	return options[m.rng.IntN(len(options))]
}

// containsRun reports whether words appear contiguously in tokens.
func containsRun(tokens, words []string) bool {
	if len(words) == 0 || len(words) > len(tokens) {
		return false
	}
	for start := 0; start+len(words) <= len(tokens); start++ {
		match := true
		for k, w := range words {
			if tokens[start+k] != w {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

func lowerTriggers(t *Tables) {
	lowerAll(t.GreetingTriggers)
	lowerAll(t.FarewellTriggers)
	for i := range t.Topics {
		lowerAll(t.Topics[i].Triggers)
	}
}

func lowerAll(values []string) {
	for i, v := range values {
		values[i] = strings.ToLower(v)
	}
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}
