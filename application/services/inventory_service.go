package services

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/sourcegraph/conc/pool"

	"github.com/carlosrabelo/vlaninv/domain/entities"
	"github.com/carlosrabelo/vlaninv/domain/ports"
	domain "github.com/carlosrabelo/vlaninv/domain/services"
)

// DefaultConcurrency is the number of switches queried at the same time
const DefaultConcurrency = 4

// InventoryService collects VLAN records from a list of switches
type InventoryService struct {
	runner      ports.SessionRunner
	extractor   *domain.Extractor
	concurrency int
	logger      *slog.Logger
}

// NewInventoryService creates a new instance of the inventory service
func NewInventoryService(runner ports.SessionRunner, extractor *domain.Extractor, concurrency int, logger *slog.Logger) *InventoryService {
	if concurrency < 1 {
		concurrency = DefaultConcurrency
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &InventoryService{
		runner:      runner,
		extractor:   extractor,
		concurrency: concurrency,
		logger:      logger,
	}
}

// Collect queries every switch and returns the aggregated report.
// Records follow the order of switches regardless of completion order.
// A switch that cannot be queried is listed in Report.Failures and
// contributes no records.
func (s *InventoryService) Collect(ctx context.Context, switches []entities.SwitchConfig) entities.Report {
	results := make([]entities.HostResult, len(switches))

	p := pool.New().WithMaxGoroutines(s.concurrency)
	for i, sw := range switches {
		i, sw := i, sw
		p.Go(func() {
			results[i] = s.CollectHost(ctx, sw)
		})
	}
	p.Wait()

	var report entities.Report
	for _, res := range results {
		report.Append(res)
	}
	s.logger.Info("collection finished",
		"hosts", len(report.Hosts),
		"records", len(report.Records),
		"failed", len(report.Failures))
	return report
}

// CollectHost queries a single switch
func (s *InventoryService) CollectHost(ctx context.Context, sw entities.SwitchConfig) entities.HostResult {
	if err := ctx.Err(); err != nil {
		return failure(sw.Target, err)
	}

	s.logger.Info("connecting", "host", sw.Target, "transport", sw.Transport)
	output, err := s.runner.RunCommand(ctx, sw)
	if err != nil {
		s.logger.Warn("failed to retrieve VLAN information", "host", sw.Target, "error", err)
		return failure(sw.Target, err)
	}

	records := s.extractor.Extract(sw.Target, output)
	if sw.IsDebugEnabled() {
		s.logger.Debug("extracted VLAN records", "host", sw.Target, "records", len(records), "policy", s.extractor.Policy())
	}
	if len(records) == 0 {
		s.logger.Warn("no VLAN rows found in output", "host", sw.Target)
	}
	return entities.HostResult{Host: sw.Target, Records: records}
}

func failure(host string, err error) entities.HostResult {
	var sessionErr *entities.SessionError
	if !errors.As(err, &sessionErr) {
		err = &entities.SessionError{Host: host, Err: err}
	}
	return entities.HostResult{Host: host, Err: err}
}
