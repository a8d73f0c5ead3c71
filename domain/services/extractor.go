package services

import (
	"strings"

	"github.com/carlosrabelo/vlaninv/domain/entities"
)

// Extractor runs classify and normalize over the full output of one host.
// It holds no mutable state and may be shared between goroutines.
type Extractor struct {
	policy      entities.SkipPolicy
	headerLines int
	exclude     entities.LineFilter
}

// NewHeaderExtractor skips the first headerLines lines of every output by position
func NewHeaderExtractor(headerLines int) *Extractor {
	if headerLines < 0 {
		headerLines = 0
	}
	return &Extractor{policy: entities.PolicyHeader, headerLines: headerLines}
}

// NewExclusionExtractor has no header region and drops lines matched by exclude
func NewExclusionExtractor(exclude entities.LineFilter) *Extractor {
	return &Extractor{policy: entities.PolicyExclude, exclude: exclude}
}

// Policy returns the skip policy in use
func (e *Extractor) Policy() entities.SkipPolicy {
	return e.policy
}

// Extract returns the records found in output, in line order
func (e *Extractor) Extract(host, output string) []entities.VlanRecord {
	return e.ExtractLines(host, SplitLines(output))
}

// ExtractLines returns the records found in lines, in order
func (e *Extractor) ExtractLines(host string, lines []string) []entities.VlanRecord {
	records := make([]entities.VlanRecord, 0, len(lines))
	for i, line := range lines {
		row := Classify(line, i < e.headerLines, e.exclude)
		if !row.IsData() {
			continue
		}
		records = append(records, Normalize(host, row))
	}
	return records
}

// SplitLines splits command output on \n, \r\n or \r.
// A trailing line break does not produce an extra empty line.
func SplitLines(output string) []string {
	if output == "" {
		return nil
	}
	output = strings.ReplaceAll(output, "\r\n", "\n")
	output = strings.ReplaceAll(output, "\r", "\n")
	output = strings.TrimSuffix(output, "\n")
	return strings.Split(output, "\n")
}
