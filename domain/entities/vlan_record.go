package entities

// VlanRecord is a normalized VLAN entry collected from one switch
type VlanRecord struct {
	Host   string
	VlanID string
	Name   string
	Subnet string
}

// ReportColumns is the column order shared by every report sink
var ReportColumns = []string{"Hostname", "Vlan ID", "Name", "Subnet"}

// Columns returns the record values in ReportColumns order
func (r VlanRecord) Columns() []string {
	return []string{r.Host, r.VlanID, r.Name, r.Subnet}
}
