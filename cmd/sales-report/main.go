package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/cognicore/scriptbox/internal/logger"
	"github.com/cognicore/scriptbox/pkg/scriptbox/internalerr"
	"github.com/cognicore/scriptbox/pkg/scriptbox/report"
)

func main() {
	var (
		dataPath   = flag.String("data", "sales_data.csv", "Input sales CSV")
		reportPath = flag.String("out", "sales_report.pdf", "Output PDF")
		logMode    = flag.String("log", "dev", "Log mode: dev or prod")
	)
	flag.Parse()

	log, err := logger.New(*logMode)
	if err != nil {
		fmt.Fprintln(os.Stderr, "init logger:", err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(os.Stdout, *dataPath, *reportPath); err != nil {
		if errors.Is(err, internalerr.ErrNotFound) {
			fmt.Printf("Error: Data file '%s' not found. Please ensure it exists.\n", *dataPath)
		} else {
			fmt.Printf("Error: %v\n", err)
		}
		log.Error("sales report failed", "data", *dataPath, "error", err)
		log.Sync()
		os.Exit(1)
	}
}

func run(w io.Writer, dataPath, reportPath string) error {
	tbl, err := report.LoadCSV(dataPath)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Successfully read data from '%s'.\n", dataPath)

	fmt.Fprintln(w, "Analyzing data...")
	summary := report.Summarize(tbl)
	fmt.Fprintln(w, "Analysis complete.")

	if err := writeReport(reportPath, tbl, summary); err != nil {
		return err
	}
	fmt.Fprintf(w, "PDF report generated: '%s'\n", reportPath)
	fmt.Fprintln(w, "\nProcess complete. Check the generated PDF report.")
	return nil
}

// writeReport renders into a temp file next to path and renames it into
// place, so a failed render never leaves a truncated PDF behind.
func writeReport(path string, tbl *report.Table, summary []report.ProductTotal) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".report-*.pdf")
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := report.Render(tmp, tbl, summary); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
