package spam

import (
	"bytes"
	"fmt"
	"sort"
	"text/tabwriter"
)

// Accuracy is the fraction of matching labels.
func Accuracy(yTrue, yPred []string) float64 {
	if len(yTrue) == 0 {
		return 0
	}
	hit := 0
	for i := range yTrue {
		if yTrue[i] == yPred[i] {
			hit++
		}
	}
	return float64(hit) / float64(len(yTrue))
}

// ConfusionMatrix counts [actual][predicted] in the given label order.
// Labels outside the list are ignored.
func ConfusionMatrix(yTrue, yPred, labels []string) [][]int {
	index := make(map[string]int, len(labels))
	for i, l := range labels {
		index[l] = i
	}
	cm := make([][]int, len(labels))
	for i := range cm {
		cm[i] = make([]int, len(labels))
	}
	for i := range yTrue {
		a, okA := index[yTrue[i]]
		p, okP := index[yPred[i]]
		if okA && okP {
			cm[a][p]++
		}
	}
	return cm
}

// ClassScores holds per-label precision, recall, F1 and support.
type ClassScores struct {
	Label     string
	Precision float64
	Recall    float64
	F1        float64
	Support   int
}

// Report is a per-label classification summary.
type Report struct {
	Classes  []ClassScores
	Accuracy float64
	Macro    ClassScores
	Weighted ClassScores
	Total    int
}

// ClassificationReport scores every label seen in either slice. Undefined
// ratios (zero denominators) are reported as 0.
func ClassificationReport(yTrue, yPred []string) Report {
	seen := make(map[string]struct{})
	for _, l := range yTrue {
		seen[l] = struct{}{}
	}
	for _, l := range yPred {
		seen[l] = struct{}{}
	}
	labels := make([]string, 0, len(seen))
	for l := range seen {
		labels = append(labels, l)
	}
	sort.Strings(labels)

	r := Report{Accuracy: Accuracy(yTrue, yPred), Total: len(yTrue)}
	r.Macro.Label = "macro avg"
	r.Weighted.Label = "weighted avg"
	for _, l := range labels {
		var tp, fp, fn int
		for i := range yTrue {
			switch {
			case yTrue[i] == l && yPred[i] == l:
				tp++
			case yTrue[i] != l && yPred[i] == l:
				fp++
			case yTrue[i] == l && yPred[i] != l:
				fn++
			}
		}
		s := ClassScores{
			Label:     l,
			Precision: ratio(tp, tp+fp),
			Recall:    ratio(tp, tp+fn),
			Support:   tp + fn,
		}
		if s.Precision+s.Recall > 0 {
			s.F1 = 2 * s.Precision * s.Recall / (s.Precision + s.Recall)
		}
		r.Classes = append(r.Classes, s)

		n := float64(len(labels))
		r.Macro.Precision += s.Precision / n
		r.Macro.Recall += s.Recall / n
		r.Macro.F1 += s.F1 / n
		if r.Total > 0 {
			w := float64(s.Support) / float64(r.Total)
			r.Weighted.Precision += s.Precision * w
			r.Weighted.Recall += s.Recall * w
			r.Weighted.F1 += s.F1 * w
		}
	}
	r.Macro.Support = r.Total
	r.Weighted.Support = r.Total
	return r
}

func ratio(a, b int) float64 {
	if b == 0 {
		return 0
	}
	return float64(a) / float64(b)
}

// String renders the report as an aligned text table.
func (r Report) String() string {
	var buf bytes.Buffer
	tw := tabwriter.NewWriter(&buf, 0, 0, 3, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "\tprecision\trecall\tf1-score\tsupport\t")
	fmt.Fprintln(tw, "\t\t\t\t\t")
	row := func(s ClassScores) {
		fmt.Fprintf(tw, "%s\t%.2f\t%.2f\t%.2f\t%d\t\n", s.Label, s.Precision, s.Recall, s.F1, s.Support)
	}
	for _, s := range r.Classes {
		row(s)
	}
	fmt.Fprintln(tw, "\t\t\t\t\t")
	fmt.Fprintf(tw, "accuracy\t\t\t%.2f\t%d\t\n", r.Accuracy, r.Total)
	row(r.Macro)
	row(r.Weighted)
	tw.Flush()
	return buf.String()
}

// FormatMatrix renders a confusion matrix in bracketed rows.
func FormatMatrix(cm [][]int) string {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, row := range cm {
		if i > 0 {
			buf.WriteString("\n ")
		}
		buf.WriteByte('[')
		for j, v := range row {
			if j > 0 {
				buf.WriteByte(' ')
			}
			fmt.Fprintf(&buf, "%d", v)
		}
		buf.WriteByte(']')
	}
	buf.WriteByte(']')
	return buf.String()
}
