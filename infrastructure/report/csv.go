package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/carlosrabelo/vlaninv/domain/entities"
)

// CSVSink writes the report as a CSV file with a header row
type CSVSink struct {
	path string
}

func NewCSVSink(path string) *CSVSink {
	return &CSVSink{path: path}
}

func (s *CSVSink) Write(report entities.Report) error {
	f, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", s.path, err)
	}
	if err := WriteCSV(f, report); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", s.path, err)
	}
	return f.Close()
}

// WriteCSV writes the header and one row per record to w
func WriteCSV(w io.Writer, report entities.Report) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(entities.ReportColumns); err != nil {
		return err
	}
	if err := cw.WriteAll(report.Rows()); err != nil {
		return err
	}
	return cw.Error()
}
