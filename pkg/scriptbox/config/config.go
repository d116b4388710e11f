package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/scriptbox/pkg/scriptbox/intent"
	"github.com/cognicore/scriptbox/pkg/scriptbox/internalerr"
	"github.com/cognicore/scriptbox/pkg/scriptbox/lexicon"
)

//go:embed defaults/lemmas.yaml
var defaultLemmas []byte

// DefaultLexicon returns the built-in lemma lexicon.
func DefaultLexicon() *lexicon.Lexicon {
	lex, err := lexicon.Parse(defaultLemmas)
	if err != nil {
		panic(fmt.Sprintf("embedded lemma lexicon: %v", err))
	}
	return lex
}

// Responses is the YAML layout of a chatbot response file.
type Responses struct {
	Match         string `yaml:"match"`
	intent.Tables `yaml:",inline"`
}

// LoadResponses loads chatbot tables from a YAML file. Unknown keys are
// rejected so typos in table names don't silently empty a category.
func LoadResponses(path string) (*Responses, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseResponses(data)
}

// ParseResponses decodes and validates a response file.
func ParseResponses(data []byte) (*Responses, error) {
	var r Responses
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&r); err != nil {
		return nil, fmt.Errorf("%w: %v", internalerr.ErrInvalidConfig, err)
	}
	if _, err := intent.ParseMatchMode(r.Match); err != nil {
		return nil, err
	}
	if err := r.Tables.Validate(); err != nil {
		return nil, err
	}
	return &r, nil
}

// Stoplist represents the stopword list configuration
type Stoplist struct {
	Terms []string `yaml:"terms"`
}

// LoadStoplist loads stopwords from a YAML file
func LoadStoplist(path string) (*Stoplist, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var sl Stoplist
	if err := yaml.Unmarshal(data, &sl); err != nil {
		return nil, err
	}

	return &sl, nil
}
