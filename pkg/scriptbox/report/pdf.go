package report

import (
	"fmt"
	"io"
	"math"

	"github.com/go-pdf/fpdf"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	rowHeight    = 10.0
	maxColWidth  = 60.0
	pageMargin   = 10.0
	summaryTitle = "Total Sales"
)

// Render writes the sales report PDF: a title, the raw rows and the
// per-product totals, each as a bordered table.
func Render(w io.Writer, t *Table, summary []ProductTotal) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	pdf.SetTitle("Sales Report", true)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Arial", "B", 24)
	pdf.CellFormat(0, 10, "Sales Report", "", 1, "C", false, 0, "")
	pdf.Ln(10)

	section(pdf, "1. Raw Data Overview")
	pdf.SetFont("Arial", "", 10)
	table(pdf, tr, t.Columns, t.Rows)
	pdf.Ln(10)

	section(pdf, "2. Total Sales by Product")
	pdf.SetFont("Arial", "", 10)
	p := message.NewPrinter(language.English)
	rows := make([][]string, len(summary))
	for i, s := range summary {
		rows[i] = []string{s.Product, FormatAmount(p, s.Total)}
	}
	table(pdf, tr, []string{ProductColumn, summaryTitle}, rows)

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write PDF: %w", err)
	}
	return nil
}

// FormatAmount prints whole numbers without decimals and everything else
// with two, both with thousands grouping.
func FormatAmount(p *message.Printer, v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return p.Sprintf("%d", int64(v))
	}
	return p.Sprintf("%.2f", v)
}

func section(pdf *fpdf.Fpdf, title string) {
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, title, "", 1, "", false, 0, "")
	pdf.Ln(5)
}

func table(pdf *fpdf.Fpdf, tr func(string) string, header []string, rows [][]string) {
	widths := columnWidths(pdf, len(header))
	for i, col := range header {
		pdf.CellFormat(widths[i], rowHeight, tr(col), "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)
	for _, row := range rows {
		for i := range header {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			pdf.CellFormat(widths[i], rowHeight, tr(cell), "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)
	}
}

// columnWidths splits the printable width evenly, capped per column.
func columnWidths(pdf *fpdf.Fpdf, n int) []float64 {
	if n == 0 {
		return nil
	}
	pageW, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	w := math.Min((pageW-left-right)/float64(n), maxColWidth)
	widths := make([]float64, n)
	for i := range widths {
		widths[i] = w
	}
	return widths
}
