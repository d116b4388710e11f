package spam

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/cognicore/scriptbox/internal/logger"
	"github.com/cognicore/scriptbox/pkg/scriptbox/internalerr"
)

// Labels used by the demo dataset, in confusion-matrix order.
const (
	Ham  = "ham"
	Spam = "spam"
)

// Example is one labeled email.
type Example struct {
	Text  string `json:"text"`
	Label string `json:"label"`
}

// Dataset is an ordered list of labeled emails.
type Dataset []Example

// Texts returns the email bodies in order.
func (d Dataset) Texts() []string {
	out := make([]string, len(d))
	for i, ex := range d {
		out[i] = ex.Text
	}
	return out
}

// Labels returns the labels in order.
func (d Dataset) Labels() []string {
	out := make([]string, len(d))
	for i, ex := range d {
		out[i] = ex.Label
	}
	return out
}

// Counts returns the number of examples per label.
func (d Dataset) Counts() map[string]int {
	counts := make(map[string]int)
	for _, ex := range d {
		counts[ex.Label]++
	}
	return counts
}

// Demo returns the built-in fifteen-email dataset.
func Demo() Dataset {
	texts := []string{
		"Congratulations! You've won a free iPhone. Click here!",
		"Meeting reminder for tomorrow at 10 AM.",
		"URGENT: Your account has been compromised. Verify now!",
		"Hi team, please review the latest project updates.",
		"Claim your prize money now! Limited time offer.",
		"Regarding the quarterly financial report.",
		"VIAGRA! Best deals on medication.",
		"Hello, just checking in on the task progress.",
		"Free money! No strings attached. Act fast!",
		"Your order has been shipped. Tracking number inside.",
		"Exclusive offer: Get 50% off on all products!",
		"Project deadline approaching. Let's sync up.",
		"You are selected for a secret millionaire program!",
		"Review of last week's performance metrics.",
		"Win a luxury vacation! Enter now.",
	}
	d := make(Dataset, len(texts))
	for i, text := range texts {
		label := Spam
		if i%2 == 1 {
			label = Ham
		}
		d[i] = Example{Text: text, Label: label}
	}
	return d
}

// DemoNewEmails are unlabeled emails classified after training.
var DemoNewEmails = []string{
	"You have won a lottery! Claim your prize now.",
	"Hello John, can we schedule a meeting next week?",
	"Your credit card has been suspended. Click to reactivate.",
	"Just a friendly reminder about your appointment.",
	"Huge discount on medicines, buy now!",
	"Important update: New policy changes.",
}

// LoadJSONL loads examples from a JSONL file of {"text","label"} objects.
// Malformed or incomplete lines are skipped with a warning.
func LoadJSONL(path string, log *logger.Logger) (Dataset, error) {
	if log == nil {
		log = logger.Nop()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file %s: %w", path, err)
	}

	var out Dataset
	for i, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		var ex Example
		if err := json.Unmarshal([]byte(line), &ex); err != nil {
			log.Warn("skipping malformed JSON", "line", i+1, "path", path, "error", err)
			continue
		}
		ex.Label = strings.ToLower(strings.TrimSpace(ex.Label))
		if ex.Text == "" || ex.Label == "" {
			log.Warn("skipping incomplete example", "line", i+1, "path", path)
			continue
		}
		out = append(out, ex)
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("%w: no valid examples in %s", internalerr.ErrEmptyDataset, path)
	}
	return out, nil
}
