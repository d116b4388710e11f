package stoplist

import (
	"sort"
	"strings"
)

// Manager holds a stopword set.
type Manager struct {
	stops map[string]struct{}
}

// NewManager creates a stoplist from the given words, lowercased.
func NewManager(initialStops []string) *Manager {
	stops := make(map[string]struct{}, len(initialStops))
	for _, s := range initialStops {
		stops[strings.ToLower(s)] = struct{}{}
	}
	return &Manager{stops: stops}
}

// English returns a manager seeded with the English stopword list.
func English() *Manager {
	return NewManager(EnglishWords)
}

// IsStop checks if a token is a stopword
func (m *Manager) IsStop(token string) bool {
	_, ok := m.stops[token]
	return ok
}

// Add adds a token to the stoplist
func (m *Manager) Add(token string) {
	m.stops[strings.ToLower(token)] = struct{}{}
}

// Remove removes a token from the stoplist
func (m *Manager) Remove(token string) {
	delete(m.stops, strings.ToLower(token))
}

// Len returns the number of stopwords.
func (m *Manager) Len() int {
	return len(m.stops)
}

// All returns all stopwords in sorted order.
func (m *Manager) All() []string {
	result := make([]string, 0, len(m.stops))
	for s := range m.stops {
		result = append(result, s)
	}
	sort.Strings(result)
	return result
}
