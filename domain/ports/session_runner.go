package ports

import (
	"context"

	"github.com/carlosrabelo/vlaninv/domain/entities"
)

// SessionRunner fetches the raw VLAN listing of one switch
type SessionRunner interface {
	RunCommand(ctx context.Context, sw entities.SwitchConfig) (string, error)
}

// ReportSink persists a finished report in some tabular format
type ReportSink interface {
	Write(report entities.Report) error
}
