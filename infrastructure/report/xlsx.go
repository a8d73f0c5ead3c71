package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/carlosrabelo/vlaninv/domain/entities"
)

const (
	VlanSheet    = "VLANs"
	FailureSheet = "Failures"
)

// XLSXSink writes the report as a spreadsheet; failed hosts get their own sheet
type XLSXSink struct {
	path string
}

func NewXLSXSink(path string) *XLSXSink {
	return &XLSXSink{path: path}
}

func (s *XLSXSink) Write(report entities.Report) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", VlanSheet); err != nil {
		return err
	}
	rows := append([][]string{entities.ReportColumns}, report.Rows()...)
	if err := writeRows(f, VlanSheet, rows); err != nil {
		return err
	}
	if err := f.SetColWidth(VlanSheet, "A", "D", 20); err != nil {
		return err
	}

	if len(report.Failures) > 0 {
		if _, err := f.NewSheet(FailureSheet); err != nil {
			return err
		}
		failures := [][]string{{"Hostname", "Reason"}}
		for _, failure := range report.Failures {
			failures = append(failures, []string{failure.Host, failure.Reason})
		}
		if err := writeRows(f, FailureSheet, failures); err != nil {
			return err
		}
	}

	if err := f.SaveAs(s.path); err != nil {
		return fmt.Errorf("failed to save %s: %w", s.path, err)
	}
	return nil
}

func writeRows(f *excelize.File, sheet string, rows [][]string) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
