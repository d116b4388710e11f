package intent

import (
	"fmt"
	"slices"
	"strings"

	"github.com/cognicore/scriptbox/pkg/scriptbox/internalerr"
)

// Topic is one knowledge-base entry: trigger phrases and the replies to pick from.
type Topic struct {
	ID        string   `yaml:"id"`
	Triggers  []string `yaml:"triggers"`
	Responses []string `yaml:"responses"`
}

// Tables holds every static lookup the matcher needs. Build it once, then
// hand it to NewMatcher; the matcher keeps its own copy.
type Tables struct {
	GreetingTriggers  []string `yaml:"greeting_triggers"`
	GreetingResponses []string `yaml:"greeting_responses"`
	FarewellTriggers  []string `yaml:"farewell_triggers"`
	FarewellResponses []string `yaml:"farewell_responses"`
	Topics            []Topic  `yaml:"topics"`
	FallbackResponses []string `yaml:"fallback_responses"`
}

// Validate checks that every category can always produce a reply.
func (t Tables) Validate() error {
	switch {
	case len(t.GreetingTriggers) == 0:
		return fmt.Errorf("%w: no greeting triggers", internalerr.ErrInvalidConfig)
	case len(t.GreetingResponses) == 0:
		return fmt.Errorf("%w: no greeting responses", internalerr.ErrInvalidConfig)
	case len(t.FarewellTriggers) == 0:
		return fmt.Errorf("%w: no farewell triggers", internalerr.ErrInvalidConfig)
	case len(t.FarewellResponses) == 0:
		return fmt.Errorf("%w: no farewell responses", internalerr.ErrInvalidConfig)
	case len(t.FallbackResponses) == 0:
		return fmt.Errorf("%w: no fallback responses", internalerr.ErrInvalidConfig)
	}
	if err := nonBlank("fallback responses", t.FallbackResponses); err != nil {
		return err
	}

	seen := make(map[string]bool, len(t.Topics))
	for i, topic := range t.Topics {
		if topic.ID == "" {
			return fmt.Errorf("%w: topic %d has no id", internalerr.ErrInvalidConfig, i)
		}
		if seen[topic.ID] {
			return fmt.Errorf("%w: duplicate topic id %q", internalerr.ErrInvalidConfig, topic.ID)
		}
		seen[topic.ID] = true
		if len(topic.Triggers) == 0 {
			return fmt.Errorf("%w: topic %q has no triggers", internalerr.ErrInvalidConfig, topic.ID)
		}
		if len(topic.Responses) == 0 {
			return fmt.Errorf("%w: topic %q has no responses", internalerr.ErrInvalidConfig, topic.ID)
		}
		if err := nonBlank("topic "+topic.ID+" triggers", topic.Triggers); err != nil {
			return err
		}
		if err := nonBlank("topic "+topic.ID+" responses", topic.Responses); err != nil {
			return err
		}
	}
	if err := nonBlank("greeting responses", t.GreetingResponses); err != nil {
		return err
	}
	return nonBlank("farewell responses", t.FarewellResponses)
}

func nonBlank(what string, values []string) error {
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			return fmt.Errorf("%w: blank entry in %s", internalerr.ErrInvalidConfig, what)
		}
	}
	return nil
}

// Overlap describes a trigger shared by two categories.
type Overlap struct {
	Trigger string
	First   string
	Second  string
}

func (o Overlap) String() string {
	return fmt.Sprintf("%q in %s and %s", o.Trigger, o.First, o.Second)
}

// Overlaps lists literal triggers that appear in more than one category.
// Priority order decides which one wins, so this is advisory only.
func (t Tables) Overlaps() []Overlap {
	owner := make(map[string]string)
	var out []Overlap
	add := func(category string, triggers []string) {
		for _, trig := range triggers {
			trig = strings.ToLower(trig)
			if prev, ok := owner[trig]; ok && prev != category {
				out = append(out, Overlap{Trigger: trig, First: prev, Second: category})
				continue
			}
			owner[trig] = category
		}
	}
	add("greeting", t.GreetingTriggers)
	add("farewell", t.FarewellTriggers)
	for _, topic := range t.Topics {
		add("topic:"+topic.ID, topic.Triggers)
	}
	return out
}

// Clone returns a deep copy so callers can't mutate a matcher's tables.
func (t Tables) Clone() Tables {
	out := Tables{
		GreetingTriggers:  slices.Clone(t.GreetingTriggers),
		GreetingResponses: slices.Clone(t.GreetingResponses),
		FarewellTriggers:  slices.Clone(t.FarewellTriggers),
		FarewellResponses: slices.Clone(t.FarewellResponses),
		FallbackResponses: slices.Clone(t.FallbackResponses),
		Topics:            make([]Topic, len(t.Topics)),
	}
	for i, topic := range t.Topics {
		out.Topics[i] = Topic{
			ID:        topic.ID,
			Triggers:  slices.Clone(topic.Triggers),
			Responses: slices.Clone(topic.Responses),
		}
	}
	return out
}

// Topic returns the topic with the given id.
func (t Tables) Topic(id string) (Topic, bool) {
	for _, topic := range t.Topics {
		if topic.ID == id {
			return topic, true
		}
	}
	return Topic{}, false
}
