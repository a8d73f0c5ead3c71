package entities

// RowKind tells a VLAN data row apart from headers, separators and noise
type RowKind int

const (
	// RowSkip marks a line that carries no VLAN data
	RowSkip RowKind = iota
	// RowData marks a line that starts with a VLAN id followed by a name token
	RowData
)

// Row is the classification of a single line of command output
type Row struct {
	Kind        RowKind
	VlanIDToken string
	NameToken   string
}

// IsData reports whether the row carries a VLAN id and a name token
func (r Row) IsData() bool {
	return r.Kind == RowData
}

// LineFilter returns true for lines that must never produce a record
type LineFilter func(line string) bool
