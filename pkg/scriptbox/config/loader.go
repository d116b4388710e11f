package config

import (
	"fmt"
	"math/rand/v2"

	"github.com/cognicore/scriptbox/pkg/scriptbox/ingest"
	"github.com/cognicore/scriptbox/pkg/scriptbox/intent"
	"github.com/cognicore/scriptbox/pkg/scriptbox/lexicon"
	"github.com/cognicore/scriptbox/pkg/scriptbox/stoplist"
)

// Loader loads the chatbot's configuration files and constructs components.
// Empty paths fall back to the built-in defaults.
type Loader struct {
	ResponsesPath string
	StoplistPath  string
	LexiconPath   string

	// MatchMode overrides the response file's match mode when non-empty.
	MatchMode string
	// Seed pins the reply picker; zero means a random seed.
	Seed uint64
}

// Components holds all loaded configuration components
type Components struct {
	Preprocessor *ingest.Preprocessor
	Matcher      *intent.Matcher
	Tables       intent.Tables
	Overlaps     []intent.Overlap
}

// Load reads all configuration files and returns initialized components
func (l *Loader) Load() (*Components, error) {
	// Load stoplist
	stops := stoplist.English()
	if l.StoplistPath != "" {
		sl, err := LoadStoplist(l.StoplistPath)
		if err != nil {
			return nil, fmt.Errorf("load stoplist: %w", err)
		}
		stops = stoplist.NewManager(sl.Terms)
	}

	// Load lemma lexicon
	lex := DefaultLexicon()
	if l.LexiconPath != "" {
		var err error
		lex, err = lexicon.LoadFromYAML(l.LexiconPath)
		if err != nil {
			return nil, fmt.Errorf("load lexicon: %w", err)
		}
	}

	// Load response tables
	tables := intent.DefaultTables()
	modeName := ""
	if l.ResponsesPath != "" {
		resp, err := LoadResponses(l.ResponsesPath)
		if err != nil {
			return nil, fmt.Errorf("load responses: %w", err)
		}
		tables = resp.Tables
		modeName = resp.Match
	}
	if l.MatchMode != "" {
		modeName = l.MatchMode
	}
	mode, err := intent.ParseMatchMode(modeName)
	if err != nil {
		return nil, err
	}

	var rng *rand.Rand
	if l.Seed != 0 {
		rng = rand.New(rand.NewPCG(l.Seed, l.Seed))
	}
	matcher, err := intent.NewMatcher(tables, rng, intent.WithMatchMode(mode))
	if err != nil {
		return nil, fmt.Errorf("build matcher: %w", err)
	}

	return &Components{
		Preprocessor: ingest.New(stops, lex),
		Matcher:      matcher,
		Tables:       tables,
		Overlaps:     tables.Overlaps(),
	}, nil
}
