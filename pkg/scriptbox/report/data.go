package report

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/cognicore/scriptbox/pkg/scriptbox/internalerr"
)

// Required CSV columns.
const (
	ProductColumn = "Product"
	SalesColumn   = "Sales"
)

// Table is a parsed sales CSV. Every column is carried through as text;
// Sales is additionally parsed per row.
type Table struct {
	Columns []string
	Rows    [][]string
	Sales   []float64

	productIdx int
}

// ProductTotal is one line of the per-product summary.
type ProductTotal struct {
	Product string
	Total   float64
}

// LoadCSV reads a sales CSV from path.
func LoadCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: data file %q", internalerr.ErrNotFound, path)
		}
		return nil, fmt.Errorf("open data file: %w", err)
	}
	defer f.Close()

	return ReadCSV(f)
}

// ReadCSV parses a sales CSV with a header row containing at least
// Product and Sales.
func ReadCSV(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: empty CSV", internalerr.ErrInvalidInput)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read header: %v", internalerr.ErrInvalidInput, err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(header[i], "\uFEFF"))
	}

	t := &Table{Columns: header, productIdx: -1}
	salesIdx := -1
	for i, col := range header {
		switch col {
		case ProductColumn:
			t.productIdx = i
		case SalesColumn:
			salesIdx = i
		}
	}
	if t.productIdx < 0 || salesIdx < 0 {
		return nil, fmt.Errorf("%w: CSV needs %q and %q columns, got %v", internalerr.ErrMissingField, ProductColumn, SalesColumn, header)
	}

	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", internalerr.ErrInvalidInput, err)
		}
		raw := strings.TrimSpace(rec[salesIdx])
		sales, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", ""), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: Sales %q is not a number", internalerr.ErrInvalidInput, line, raw)
		}
		t.Rows = append(t.Rows, rec)
		t.Sales = append(t.Sales, sales)
	}
	return t, nil
}

// Product returns the product name of row i.
func (t *Table) Product(i int) string {
	return strings.TrimSpace(t.Rows[i][t.productIdx])
}

// Summarize totals sales per product, sorted by product name.
func Summarize(t *Table) []ProductTotal {
	totals := make(map[string]float64)
	for i := range t.Rows {
		totals[t.Product(i)] += t.Sales[i]
	}

	out := make([]ProductTotal, 0, len(totals))
	for product, total := range totals {
		out = append(out, ProductTotal{Product: product, Total: total})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Product < out[j].Product })
	return out
}
