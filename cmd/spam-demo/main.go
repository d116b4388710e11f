package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/cognicore/scriptbox/internal/logger"
	"github.com/cognicore/scriptbox/pkg/scriptbox/plot"
	"github.com/cognicore/scriptbox/pkg/scriptbox/spam"
)

func main() {
	var (
		dataPath = flag.String("data", "", "JSONL dataset of {text,label} (optional, built-in emails if empty)")
		heatmap  = flag.String("heatmap", "confusion_matrix.png", "Confusion matrix PNG (empty to skip)")
		testFrac = flag.Float64("test", 0.3, "Fraction of samples held out for testing")
		seed     = flag.Uint64("seed", 42, "Split seed")
		logMode  = flag.String("log", "dev", "Log mode: dev or prod")
	)
	flag.Parse()

	log, err := logger.New(*logMode)
	if err != nil {
		fmt.Fprintln(os.Stderr, "init logger:", err)
		os.Exit(1)
	}
	defer log.Sync()

	dataset := spam.Demo()
	if *dataPath != "" {
		dataset, err = spam.LoadJSONL(*dataPath, log)
		if err != nil {
			log.Fatal("failed to load dataset", "error", err)
		}
	}

	opts := spam.Options{TestFrac: *testFrac, Seed: *seed}
	if err := run(os.Stdout, dataset, opts, *heatmap); err != nil {
		log.Fatal("spam demo failed", "error", err)
	}
}

func run(w io.Writer, dataset spam.Dataset, opts spam.Options, heatmapPath string) error {
	rule := strings.Repeat("-", 30)

	fmt.Fprintln(w, "--- Dataset Overview ---")
	for i, ex := range dataset[:min(5, len(dataset))] {
		fmt.Fprintf(w, "%d  %-60s %s\n", i, ex.Text, ex.Label)
	}
	fmt.Fprintln(w, "\nLabel distribution:")
	counts := dataset.Counts()
	labels := make([]string, 0, len(counts))
	for l := range counts {
		labels = append(labels, l)
	}
	sort.Slice(labels, func(i, j int) bool {
		if counts[labels[i]] != counts[labels[j]] {
			return counts[labels[i]] > counts[labels[j]]
		}
		return labels[i] < labels[j]
	})
	for _, l := range labels {
		fmt.Fprintf(w, "%-6s %d\n", l, counts[l])
	}
	fmt.Fprintln(w, rule)

	ev, err := spam.Evaluate(dataset, opts, spam.DemoNewEmails)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "\nVocabulary size: %d\n%s\n", ev.VocabSize, rule)
	fmt.Fprintf(w, "\nTraining samples: %d\nTesting samples: %d\n%s\n", ev.TrainSize, ev.TestSize, rule)

	fmt.Fprintln(w, "\n--- Model Evaluation ---")
	fmt.Fprintf(w, "Accuracy: %.2f\n", ev.Accuracy)
	fmt.Fprintf(w, "\nClassification Report:\n%s\n", ev.Report)
	fmt.Fprintf(w, "Confusion Matrix:\n%s\n", spam.FormatMatrix(ev.Matrix))

	if heatmapPath != "" {
		img, err := ev.Heatmap().Render()
		if err != nil {
			return fmt.Errorf("render heatmap: %w", err)
		}
		if err := plot.SavePNG(heatmapPath, img); err != nil {
			return err
		}
		fmt.Fprintf(w, "Confusion matrix heatmap saved to '%s'\n", heatmapPath)
	}
	fmt.Fprintln(w, rule)

	fmt.Fprintln(w, "\n--- Testing with New, Unseen Emails ---")
	for _, p := range ev.Predictions {
		fmt.Fprintf(w, "Email: '%s'\nPredicted: %s\n\n", p.Text, strings.ToUpper(p.Label))
	}
	fmt.Fprintln(w, "Predictive model demonstration complete.")
	return nil
}
