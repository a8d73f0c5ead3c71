package entities

import (
	"fmt"
	"strings"
)

// SkipPolicy selects how non-data lines at the top of the output are dropped
type SkipPolicy string

const (
	// PolicyHeader skips a fixed number of leading lines by position
	PolicyHeader SkipPolicy = "header"
	// PolicyExclude skips any line matching a configured substring
	PolicyExclude SkipPolicy = "exclude"
)

// DefaultHeaderLines matches the blank, title and ruler lines of "show vlan brief"
const DefaultHeaderLines = 3

// ParseSkipPolicy normalizes a configured policy name; empty means PolicyHeader
func ParseSkipPolicy(name string) (SkipPolicy, error) {
	switch policy := SkipPolicy(strings.ToLower(strings.TrimSpace(name))); policy {
	case "":
		return PolicyHeader, nil
	case PolicyHeader, PolicyExclude:
		return policy, nil
	default:
		return "", fmt.Errorf("skip_policy %s is invalid, must be 'header' or 'exclude'", name)
	}
}
