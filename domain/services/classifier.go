package services

import (
	"strings"

	"github.com/carlosrabelo/vlaninv/domain/entities"
)

// Classify decides whether a line of "show vlan brief" output is a VLAN row.
// A data row has at least two whitespace separated tokens and a first token
// made only of decimal digits; everything past the second token is ignored.
// Lines inside the header region or matched by exclude are always skipped.
func Classify(line string, inHeader bool, exclude entities.LineFilter) entities.Row {
	if inHeader {
		return entities.Row{Kind: entities.RowSkip}
	}
	fields := strings.Fields(line)
	if len(fields) < 2 || !isDigits(fields[0]) {
		return entities.Row{Kind: entities.RowSkip}
	}
	if exclude != nil && exclude(line) {
		return entities.Row{Kind: entities.RowSkip}
	}
	return entities.Row{
		Kind:        entities.RowData,
		VlanIDToken: fields[0],
		NameToken:   fields[1],
	}
}

// SubstringFilter matches lines containing any of the given substrings.
// It returns nil when no non-empty substring is given.
func SubstringFilter(substrings []string) entities.LineFilter {
	patterns := make([]string, 0, len(substrings))
	for _, s := range substrings {
		if s != "" {
			patterns = append(patterns, s)
		}
	}
	if len(patterns) == 0 {
		return nil
	}
	return func(line string) bool {
		for _, p := range patterns {
			if strings.Contains(line, p) {
				return true
			}
		}
		return false
	}
}

func isDigits(token string) bool {
	if token == "" {
		return false
	}
	for i := 0; i < len(token); i++ {
		if token[i] < '0' || token[i] > '9' {
			return false
		}
	}
	return true
}
