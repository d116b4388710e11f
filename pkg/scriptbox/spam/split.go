package spam

import (
	"fmt"
	"math"
	"math/rand/v2"
	"sort"

	"github.com/cognicore/scriptbox/pkg/scriptbox/internalerr"
)

// Split holds train/test indices into the original dataset.
type Split struct {
	Train []int
	Test  []int
}

// TrainTestSplit shuffles indices with seed and holds out testFrac of them,
// keeping each label's share of the test set proportional to its share of
// the whole. Index lists are returned in shuffled order.
func TrainTestSplit(labels []string, testFrac float64, seed uint64) (Split, error) {
	n := len(labels)
	if n < 2 {
		return Split{}, fmt.Errorf("%w: need at least 2 samples", internalerr.ErrEmptyDataset)
	}
	if testFrac <= 0 || testFrac >= 1 {
		return Split{}, fmt.Errorf("%w: test fraction %v not in (0,1)", internalerr.ErrInvalidInput, testFrac)
	}
	nTest := int(math.Ceil(testFrac * float64(n)))
	if nTest >= n {
		nTest = n - 1
	}

	byLabel := make(map[string][]int)
	var order []string
	for i, l := range labels {
		if _, ok := byLabel[l]; !ok {
			order = append(order, l)
		}
		byLabel[l] = append(byLabel[l], i)
	}
	sort.Strings(order)
	if nTest < len(order) {
		return Split{}, fmt.Errorf("%w: test size %d smaller than number of classes %d", internalerr.ErrInvalidInput, nTest, len(order))
	}

	// Largest-remainder allocation of test slots per label.
	alloc := make(map[string]int, len(order))
	type rem struct {
		label string
		frac  float64
	}
	var rems []rem
	assigned := 0
	for _, l := range order {
		exact := float64(nTest) * float64(len(byLabel[l])) / float64(n)
		alloc[l] = int(math.Floor(exact))
		assigned += alloc[l]
		rems = append(rems, rem{l, exact - math.Floor(exact)})
	}
	sort.SliceStable(rems, func(i, j int) bool { return rems[i].frac > rems[j].frac })
	for i := 0; assigned < nTest; i++ {
		alloc[rems[i%len(rems)].label]++
		assigned++
	}

	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	var split Split
	for _, l := range order {
		idx := append([]int(nil), byLabel[l]...)
		rng.Shuffle(len(idx), func(i, j int) { idx[i], idx[j] = idx[j], idx[i] })
		k := min(alloc[l], len(idx))
		split.Test = append(split.Test, idx[:k]...)
		split.Train = append(split.Train, idx[k:]...)
	}
	rng.Shuffle(len(split.Test), func(i, j int) { split.Test[i], split.Test[j] = split.Test[j], split.Test[i] })
	rng.Shuffle(len(split.Train), func(i, j int) { split.Train[i], split.Train[j] = split.Train[j], split.Train[i] })
	return split, nil
}

// Take selects rows of X and y by index.
func Take(X [][]float64, y []string, idx []int) ([][]float64, []string) {
	xs := make([][]float64, len(idx))
	ys := make([]string, len(idx))
	for i, j := range idx {
		xs[i] = X[j]
		ys[i] = y[j]
	}
	return xs, ys
}
