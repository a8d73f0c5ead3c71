// Package hostlist reads the switches to collect from a CSV file with a
// "hostname" column or from a plain text file with one host per line.
package hostlist

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Column is the CSV header naming the host column
const Column = "hostname"

var (
	ErrNoHostColumn = errors.New("hostname column not found")
	ErrEmpty        = errors.New("host list is empty")
)

// Load reads hosts from path; ".csv" files are parsed as CSV, anything
// else as plain text. Order and duplicates are preserved.
func Load(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open host list %s: %w", path, err)
	}
	defer f.Close()

	var hosts []string
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		hosts, err = ReadCSV(f)
	} else {
		hosts, err = ReadText(f)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(hosts) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrEmpty)
	}
	return hosts, nil
}

// ReadCSV returns the non-empty values of the hostname column
func ReadCSV(r io.Reader) ([]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	column := -1
	for i, name := range header {
		if strings.EqualFold(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")), Column) {
			column = i
			break
		}
	}
	if column < 0 {
		return nil, ErrNoHostColumn
	}

	var hosts []string
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV: %w", err)
		}
		if column >= len(record) {
			continue
		}
		if host := strings.TrimSpace(record[column]); host != "" {
			hosts = append(hosts, host)
		}
	}
	return hosts, nil
}

// ReadText returns one host per line, ignoring blank lines and # comments
func ReadText(r io.Reader) ([]string, error) {
	var hosts []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		hosts = append(hosts, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read host list: %w", err)
	}
	return hosts, nil
}
