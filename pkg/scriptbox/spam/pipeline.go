package spam

import (
	"fmt"

	"github.com/cognicore/scriptbox/pkg/scriptbox/plot"
	"github.com/cognicore/scriptbox/pkg/scriptbox/stoplist"
)

// Options controls a training run.
type Options struct {
	TestFrac float64
	Seed     uint64
	// NewClassifier builds the model; defaults to NewMultinomialNB.
	NewClassifier func() Classifier
}

// DefaultOptions holds out 30% of the data with seed 42.
func DefaultOptions() Options {
	return Options{TestFrac: 0.3, Seed: 42}
}

// Prediction is a label assigned to an unseen email.
type Prediction struct {
	Text  string
	Label string
}

// Evaluation is the outcome of one train/evaluate/predict run.
type Evaluation struct {
	VocabSize   int
	TrainSize   int
	TestSize    int
	Accuracy    float64
	Report      Report
	Labels      []string
	Matrix      [][]int
	Predictions []Prediction
}

// Evaluate vectorizes the dataset, trains on a stratified split, scores the
// held-out part and classifies newEmails with the same vocabulary.
func Evaluate(d Dataset, opts Options, newEmails []string) (*Evaluation, error) {
	if opts.TestFrac == 0 {
		opts.TestFrac = DefaultOptions().TestFrac
	}
	if opts.NewClassifier == nil {
		opts.NewClassifier = func() Classifier { return NewMultinomialNB() }
	}

	vec := NewVectorizer(stoplist.English())
	X := vec.FitTransform(d.Texts())
	y := d.Labels()

	split, err := TrainTestSplit(y, opts.TestFrac, opts.Seed)
	if err != nil {
		return nil, fmt.Errorf("split dataset: %w", err)
	}
	xTrain, yTrain := Take(X, y, split.Train)
	xTest, yTest := Take(X, y, split.Test)

	model := opts.NewClassifier()
	if err := model.Fit(xTrain, yTrain); err != nil {
		return nil, fmt.Errorf("train model: %w", err)
	}
	yPred, err := model.Predict(xTest)
	if err != nil {
		return nil, fmt.Errorf("predict test set: %w", err)
	}

	ev := &Evaluation{
		VocabSize: len(vec.Vocabulary()),
		TrainSize: len(split.Train),
		TestSize:  len(split.Test),
		Accuracy:  Accuracy(yTest, yPred),
		Report:    ClassificationReport(yTest, yPred),
		Labels:    []string{Ham, Spam},
	}
	ev.Matrix = ConfusionMatrix(yTest, yPred, ev.Labels)

	if len(newEmails) > 0 {
		xNew, err := vec.Transform(newEmails)
		if err != nil {
			return nil, err
		}
		labels, err := model.Predict(xNew)
		if err != nil {
			return nil, fmt.Errorf("predict new emails: %w", err)
		}
		for i, text := range newEmails {
			ev.Predictions = append(ev.Predictions, Prediction{Text: text, Label: labels[i]})
		}
	}
	return ev, nil
}

// Heatmap describes the confusion matrix as a chart.
func (e *Evaluation) Heatmap() plot.Heatmap {
	return plot.Heatmap{
		Title:  "Confusion Matrix for Spam Detection",
		XLabel: "Predicted Label",
		YLabel: "Actual Label",
		XTicks: []string{"Predicted Ham", "Predicted Spam"},
		YTicks: []string{"Actual Ham", "Actual Spam"},
		Values: e.Matrix,
	}
}
