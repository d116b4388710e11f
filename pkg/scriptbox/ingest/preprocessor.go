package ingest

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/cognicore/scriptbox/pkg/scriptbox/lexicon"
	"github.com/cognicore/scriptbox/pkg/scriptbox/stoplist"
)

// asciiPunctuation is the set of characters removed before tokenizing.
const asciiPunctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// Preprocessor turns raw user text into normalized tokens.
// Not safe for concurrent use: the lowercasing Caser keeps state.
type Preprocessor struct {
	stops   *stoplist.Manager
	lexicon *lexicon.Lexicon
	lower   cases.Caser
}

// New creates a preprocessor. A nil stoplist disables stopword filtering and
// a nil lexicon disables lemmatization.
func New(stops *stoplist.Manager, lex *lexicon.Lexicon) *Preprocessor {
	if stops == nil {
		stops = stoplist.NewManager(nil)
	}
	if lex == nil {
		lex = lexicon.New()
	}
	return &Preprocessor{
		stops:   stops,
		lexicon: lex,
		lower:   cases.Lower(language.English),
	}
}

// Normalize lowercases text, removes punctuation, splits it into words, drops
// stopwords and reduces the remaining words to their lemma. Input order is
// preserved. The result is never nil.
func (p *Preprocessor) Normalize(text string) []string {
	tokens := []string{}
	for _, word := range Words(p.lower.String(StripPunctuation(text))) {
		if p.stops.IsStop(word) {
			continue
		}
		tokens = append(tokens, p.lexicon.Lemma(word))
	}
	return tokens
}

// StripPunctuation removes ASCII punctuation characters. "what's" becomes
// "whats" rather than two words.
func StripPunctuation(text string) string {
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(asciiPunctuation, r) {
			return -1
		}
		return r
	}, text)
}

// Words splits text on anything that is not a letter, digit or combining mark.
func Words(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r) && !unicode.IsMark(r)
	})
}
