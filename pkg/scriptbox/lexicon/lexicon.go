package lexicon

import (
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Lexicon maps inflected word forms to their dictionary base form (lemma).
//
// It stands in for a full morphological dictionary: only forms that are
// listed are reduced, everything else passes through unchanged. That keeps
// lemmatization conservative, e.g. "thanks" stays "thanks" unless a group
// says otherwise.
type Lexicon struct {
	// lemma -> all forms (including the lemma itself)
	// Example: "name" -> ["name", "names"]
	forms map[string][]string

	// form -> lemma
	// Example: "names" -> "name"
	reverseIndex map[string]string
}

// New creates an empty lexicon.
func New() *Lexicon {
	return &Lexicon{
		forms:        make(map[string][]string),
		reverseIndex: make(map[string]string),
	}
}

// File is the YAML layout of a lemma lexicon.
//
//	lemmas:
//	  - lemma: name
//	    forms: [names]
//	  - lemma: be
//	    forms: [am, is, are, was, were]
type File struct {
	Lemmas []struct {
		Lemma string   `yaml:"lemma"`
		Forms []string `yaml:"forms"`
	} `yaml:"lemmas"`
}

// LoadFromYAML loads lemma groups from a YAML file.
func LoadFromYAML(path string) (*Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse builds a lexicon from YAML bytes in the File layout.
func Parse(data []byte) (*Lexicon, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}

	lex := New()
	for _, entry := range f.Lemmas {
		lex.AddLemmaGroup(entry.Lemma, entry.Forms)
	}
	return lex, nil
}

// AddLemmaGroup registers forms that reduce to lemma.
// The lemma is always stored as the first form. Re-adding a lemma replaces
// its previous group.
func (l *Lexicon) AddLemmaGroup(lemma string, forms []string) {
	lemma = strings.ToLower(strings.TrimSpace(lemma))
	if lemma == "" {
		return
	}

	if old, exists := l.forms[lemma]; exists {
		for _, f := range old {
			delete(l.reverseIndex, f)
		}
	}

	normalized := make([]string, 0, len(forms)+1)
	seen := map[string]bool{lemma: true}
	normalized = append(normalized, lemma)
	for _, f := range forms {
		f = strings.ToLower(strings.TrimSpace(f))
		if f == "" || seen[f] {
			continue
		}
		normalized = append(normalized, f)
		seen[f] = true
	}

	l.forms[lemma] = normalized
	for _, f := range normalized {
		l.reverseIndex[f] = lemma
	}
}

// Lemma returns the base form of a word, or the word itself when unknown.
//
// Examples:
//   - Lemma("names") -> "name"
//   - Lemma("thanks") -> "thanks"
func (l *Lexicon) Lemma(word string) string {
	word = strings.ToLower(word)
	if lemma, ok := l.reverseIndex[word]; ok {
		return lemma
	}
	return word
}

// Forms returns every known form of a word's lemma, lemma first.
// Unknown words return a slice holding only the word.
func (l *Lexicon) Forms(word string) []string {
	lemma := l.Lemma(word)
	if forms, ok := l.forms[lemma]; ok {
		return forms
	}
	return []string{lemma}
}

// Lemmas returns all lemmas in sorted order.
func (l *Lexicon) Lemmas() []string {
	out := make([]string, 0, len(l.forms))
	for lemma := range l.forms {
		out = append(out, lemma)
	}
	sort.Strings(out)
	return out
}

// Stats returns statistics about the lexicon contents.
func (l *Lexicon) Stats() Stats {
	total := 0
	for _, forms := range l.forms {
		total += len(forms)
	}
	return Stats{Groups: len(l.forms), TotalForms: total}
}

// Stats holds statistics about lexicon contents.
type Stats struct {
	Groups     int // Number of lemmas
	TotalForms int // Forms across all groups, lemmas included
}
