package spam

import (
	"regexp"
	"sort"
	"strings"

	"golang.org/x/net/html"

	"github.com/cognicore/scriptbox/pkg/scriptbox/internalerr"
	"github.com/cognicore/scriptbox/pkg/scriptbox/stoplist"
)

// wordPattern keeps runs of two or more word characters.
var wordPattern = regexp.MustCompile(`\w\w+`)

// Vectorizer turns texts into bag-of-words count vectors.
type Vectorizer struct {
	stops *stoplist.Manager
	vocab map[string]int
	terms []string
}

// NewVectorizer creates a vectorizer that drops the given stopwords.
// A nil stoplist keeps every token.
func NewVectorizer(stops *stoplist.Manager) *Vectorizer {
	if stops == nil {
		stops = stoplist.NewManager(nil)
	}
	return &Vectorizer{stops: stops}
}

// Tokens lowercases text, strips markup and returns the kept tokens.
func (v *Vectorizer) Tokens(text string) []string {
	var out []string
	for _, tok := range wordPattern.FindAllString(strings.ToLower(StripHTML(text)), -1) {
		if v.stops.IsStop(tok) {
			continue
		}
		out = append(out, tok)
	}
	return out
}

// Fit learns the vocabulary, sorted alphabetically so feature indices are stable.
func (v *Vectorizer) Fit(texts []string) {
	seen := make(map[string]struct{})
	for _, text := range texts {
		for _, tok := range v.Tokens(text) {
			seen[tok] = struct{}{}
		}
	}
	v.terms = make([]string, 0, len(seen))
	for tok := range seen {
		v.terms = append(v.terms, tok)
	}
	sort.Strings(v.terms)
	v.vocab = make(map[string]int, len(v.terms))
	for i, tok := range v.terms {
		v.vocab[tok] = i
	}
}

// Transform counts vocabulary terms per text. Unknown tokens are ignored.
func (v *Vectorizer) Transform(texts []string) ([][]float64, error) {
	if v.vocab == nil {
		return nil, internalerr.ErrNotFitted
	}
	out := make([][]float64, len(texts))
	for i, text := range texts {
		row := make([]float64, len(v.terms))
		for _, tok := range v.Tokens(text) {
			if idx, ok := v.vocab[tok]; ok {
				row[idx]++
			}
		}
		out[i] = row
	}
	return out, nil
}

// FitTransform is Fit followed by Transform.
func (v *Vectorizer) FitTransform(texts []string) [][]float64 {
	v.Fit(texts)
	out, _ := v.Transform(texts)
	return out
}

// Vocabulary returns the learned terms in feature order.
func (v *Vectorizer) Vocabulary() []string {
	return v.terms
}

// StripHTML returns the text content of s when it contains markup.
func StripHTML(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return s
	}
	doc, err := html.Parse(strings.NewReader(s))
	if err != nil {
		return s
	}
	var b strings.Builder
	var extractText func(*html.Node)
	extractText = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			b.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extractText(c)
		}
	}
	extractText(doc)
	return strings.TrimSpace(b.String())
}
