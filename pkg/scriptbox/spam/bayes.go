package spam

import (
	"fmt"
	"math"
	"sort"

	"github.com/cognicore/scriptbox/pkg/scriptbox/internalerr"
)

// Classifier is the fit/predict contract the demo trains against.
type Classifier interface {
	Fit(X [][]float64, y []string) error
	Predict(X [][]float64) ([]string, error)
}

// MultinomialNB is a multinomial Naive Bayes classifier with additive smoothing.
type MultinomialNB struct {
	Alpha float64

	classes     []string
	logPrior    []float64
	logLikelihd [][]float64
	features    int
}

// NewMultinomialNB returns a classifier with Laplace smoothing (alpha = 1).
func NewMultinomialNB() *MultinomialNB {
	return &MultinomialNB{Alpha: 1}
}

// Fit estimates class priors and per-class feature probabilities.
func (m *MultinomialNB) Fit(X [][]float64, y []string) error {
	if len(X) == 0 {
		return internalerr.ErrEmptyDataset
	}
	if len(X) != len(y) {
		return fmt.Errorf("%w: %d samples but %d labels", internalerr.ErrInvalidInput, len(X), len(y))
	}
	m.features = len(X[0])
	for i, row := range X {
		if len(row) != m.features {
			return fmt.Errorf("%w: sample %d has %d features, want %d", internalerr.ErrInvalidInput, i, len(row), m.features)
		}
	}
	if m.Alpha <= 0 {
		m.Alpha = 1
	}

	index := make(map[string]int)
	for _, label := range y {
		index[label] = 0
	}
	m.classes = make([]string, 0, len(index))
	for label := range index {
		m.classes = append(m.classes, label)
	}
	sort.Strings(m.classes)
	for i, c := range m.classes {
		index[c] = i
	}

	classCount := make([]float64, len(m.classes))
	featCount := make([][]float64, len(m.classes))
	for i := range featCount {
		featCount[i] = make([]float64, m.features)
	}
	for i, row := range X {
		c := index[y[i]]
		classCount[c]++
		for j, v := range row {
			featCount[c][j] += v
		}
	}

	m.logPrior = make([]float64, len(m.classes))
	m.logLikelihd = make([][]float64, len(m.classes))
	for c := range m.classes {
		m.logPrior[c] = math.Log(classCount[c] / float64(len(X)))
		total := 0.0
		for _, v := range featCount[c] {
			total += v
		}
		denom := total + m.Alpha*float64(m.features)
		m.logLikelihd[c] = make([]float64, m.features)
		for j, v := range featCount[c] {
			m.logLikelihd[c][j] = math.Log((v + m.Alpha) / denom)
		}
	}
	return nil
}

// Predict returns the most probable class per sample. Ties go to the
// alphabetically first class.
func (m *MultinomialNB) Predict(X [][]float64) ([]string, error) {
	if m.classes == nil {
		return nil, internalerr.ErrNotFitted
	}
	out := make([]string, len(X))
	for i, row := range X {
		if len(row) != m.features {
			return nil, fmt.Errorf("%w: sample %d has %d features, want %d", internalerr.ErrInvalidInput, i, len(row), m.features)
		}
		best, bestScore := 0, math.Inf(-1)
		for c := range m.classes {
			score := m.logPrior[c]
			for j, v := range row {
				if v != 0 {
					score += v * m.logLikelihd[c][j]
				}
			}
			if score > bestScore {
				best, bestScore = c, score
			}
		}
		out[i] = m.classes[best]
	}
	return out, nil
}

// Classes returns the learned labels in sorted order.
func (m *MultinomialNB) Classes() []string {
	return m.classes
}
