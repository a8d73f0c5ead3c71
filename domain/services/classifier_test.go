package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/carlosrabelo/vlaninv/domain/entities"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		inHeader bool
		exclude  entities.LineFilter
		expected entities.Row
	}{
		{
			name:     "data row with ports column",
			line:     "10   SALES-10.1.1.0                   active    Gi1/0/3, Gi1/0/4",
			expected: entities.Row{Kind: entities.RowData, VlanIDToken: "10", NameToken: "SALES-10.1.1.0"},
		},
		{
			name:     "two tokens only",
			line:     "30 GUEST",
			expected: entities.Row{Kind: entities.RowData, VlanIDToken: "30", NameToken: "GUEST"},
		},
		{
			name:     "leading whitespace and tabs",
			line:     " \t 20\tENG_PRINTERS\t",
			expected: entities.Row{Kind: entities.RowData, VlanIDToken: "20", NameToken: "ENG_PRINTERS"},
		},
		{
			name:     "leading zeros kept",
			line:     "0010 LAB",
			expected: entities.Row{Kind: entities.RowData, VlanIDToken: "0010", NameToken: "LAB"},
		},
		{
			name:     "digit led noise is still data",
			line:     "1500 packets input, 0 errors",
			expected: entities.Row{Kind: entities.RowData, VlanIDToken: "1500", NameToken: "packets"},
		},
		{
			name:     "title line",
			line:     "VLAN Name                             Status    Ports",
			expected: entities.Row{Kind: entities.RowSkip},
		},
		{
			name:     "header port mode",
			line:     "Port     Mode",
			expected: entities.Row{Kind: entities.RowSkip},
		},
		{
			name:     "ruler line",
			line:     "---- -------------------------------- --------- -------------------------------",
			expected: entities.Row{Kind: entities.RowSkip},
		},
		{
			name:     "port continuation line",
			line:     "                                                Gi1/0/5, Gi1/0/6",
			expected: entities.Row{Kind: entities.RowSkip},
		},
		{
			name:     "single token",
			line:     "10",
			expected: entities.Row{Kind: entities.RowSkip},
		},
		{
			name:     "empty line",
			line:     "",
			expected: entities.Row{Kind: entities.RowSkip},
		},
		{
			name:     "signed number is not digits",
			line:     "-10 NEG",
			expected: entities.Row{Kind: entities.RowSkip},
		},
		{
			name:     "mixed token",
			line:     "10a SALES",
			expected: entities.Row{Kind: entities.RowSkip},
		},
		{
			name:     "header region skips data shaped line",
			line:     "10 SALES-10.1.1.0",
			inHeader: true,
			expected: entities.Row{Kind: entities.RowSkip},
		},
		{
			name:     "exclusion predicate drops default vlan",
			line:     "1 default active Fa0/1",
			exclude:  SubstringFilter([]string{"default"}),
			expected: entities.Row{Kind: entities.RowSkip},
		},
		{
			name:     "exclusion predicate lets other rows through",
			line:     "10 SALES-10.1.1.0 active Fa0/2",
			exclude:  SubstringFilter([]string{"default"}),
			expected: entities.Row{Kind: entities.RowData, VlanIDToken: "10", NameToken: "SALES-10.1.1.0"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Classify(tt.line, tt.inHeader, tt.exclude))
		})
	}
}

func TestClassify_NonDigitFirstTokenAlwaysSkips(t *testing.T) {
	firstTokens := []string{"VLAN", "Port", "a1", "1a", "1.0", "１０", "+1", "Gi1/0/1", "----", "ｖ"}
	for _, first := range firstTokens {
		line := first + " NAME-1 active"
		assert.Equal(t, entities.RowSkip, Classify(line, false, nil).Kind, "line %q", line)
	}
}

func TestClassify_FewerThanTwoTokensAlwaysSkips(t *testing.T) {
	lines := []string{"", " ", "\t", "1", "  42  ", "1002\r", "VLAN"}
	for _, line := range lines {
		assert.Equal(t, entities.RowSkip, Classify(line, false, nil).Kind, "line %q", line)
	}
}

func TestClassify_Deterministic(t *testing.T) {
	exclude := SubstringFilter([]string{"act/unsup"})
	line := "1002 fddi-default                     act/unsup"
	first := Classify(line, false, exclude)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Classify(line, false, exclude))
	}
}

func TestSubstringFilter(t *testing.T) {
	assert.Nil(t, SubstringFilter(nil))
	assert.Nil(t, SubstringFilter([]string{""}))

	filter := SubstringFilter([]string{"default", "act/unsup"})
	assert.True(t, filter("1 default active"))
	assert.True(t, filter("1003 token-ring-default act/unsup"))
	assert.False(t, filter("10 SALES active"))
	assert.False(t, filter(strings.ToUpper("1 default")), "match is case sensitive")
}
