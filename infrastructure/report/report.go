// Package report writes a collected VLAN report as CSV, XLSX or into a
// SQLite history database, chosen by the output file extension.
package report

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/carlosrabelo/vlaninv/domain/ports"
)

// ErrUnsupportedFormat is returned for an output extension without a sink
var ErrUnsupportedFormat = errors.New("unsupported report format")

// New returns the sink matching the extension of path
func New(path string) (ports.ReportSink, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		return NewCSVSink(path), nil
	case ".xlsx":
		return NewXLSXSink(path), nil
	case ".db", ".sqlite", ".sqlite3":
		return NewSQLiteSink(path), nil
	default:
		return nil, fmt.Errorf("%w: %q (use .csv, .xlsx, .db or .sqlite)", ErrUnsupportedFormat, ext)
	}
}
