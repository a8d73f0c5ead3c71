package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/spf13/cobra"

	"github.com/carlosrabelo/vlaninv/application/services"
	"github.com/carlosrabelo/vlaninv/domain/entities"
	"github.com/carlosrabelo/vlaninv/infrastructure/config"
	"github.com/carlosrabelo/vlaninv/infrastructure/hostlist"
	"github.com/carlosrabelo/vlaninv/infrastructure/logging"
	"github.com/carlosrabelo/vlaninv/infrastructure/report"
)

type collectOptions struct {
	configPath  string
	hostsFile   string
	output      string
	transport   string
	username    string
	verbosity   int
	concurrency int
}

func newCollectCmd(a *app) *cobra.Command {
	var opts collectOptions
	cmd := &cobra.Command{
		Use:   "collect",
		Short: "Query every switch of the host list and write the VLAN report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runCollect(cmd.Context(), opts)
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&opts.configPath, "config", "", "YAML configuration file (default: search ./, user and system config dirs)")
	flags.StringVar(&opts.hostsFile, "hosts", "", "host list, CSV with a hostname column or one host per line")
	flags.StringVar(&opts.output, "output", "", "report file (.csv, .xlsx, .db or .sqlite)")
	flags.StringVar(&opts.transport, "transport", "", "session transport: ssh, telnet or snmp")
	flags.StringVar(&opts.username, "username", "", "login username")
	flags.IntVar(&opts.verbosity, "verbose", 0, "verbosity level: 0=none, 1=debug logs, 2=raw switch output, 3=debug+raw output")
	flags.IntVar(&opts.concurrency, "concurrency", 0, "switches queried at the same time")
	return cmd
}

func (a *app) runCollect(ctx context.Context, opts collectOptions) error {
	if opts.verbosity < 0 || opts.verbosity > 3 {
		return fmt.Errorf("--verbose must be 0, 1, 2, or 3")
	}
	logger := logging.New(opts.verbosity, a.errOut)

	cfg, err := loadConfig(opts.configPath, opts.verbosity)
	if err != nil {
		return err
	}
	if opts.hostsFile != "" {
		cfg.HostsFile = opts.hostsFile
	}
	if opts.output != "" {
		cfg.Output = opts.output
	}
	if opts.transport != "" {
		cfg.Transport = opts.transport
	}
	if opts.username != "" {
		cfg.Username = opts.username
	}
	if opts.concurrency != 0 {
		cfg.Concurrency = opts.concurrency
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	sink, err := report.New(cfg.Output)
	if err != nil {
		return err
	}

	hosts, err := hostlist.Load(cfg.HostsFile)
	if err != nil {
		return err
	}
	logger.Debug("host list loaded", "file", cfg.HostsFile, "hosts", len(hosts))

	switches := cfg.SwitchesFor(hosts)
	needUsername, needPassword := config.NeedsCredentials(switches)
	if needUsername {
		if cfg.Username, err = a.prompter.Ask("Enter username: "); err != nil {
			return err
		}
	}
	if needPassword {
		if cfg.Password, err = a.prompter.AskSecret("Enter password: "); err != nil {
			return err
		}
	}
	if needUsername || needPassword {
		switches = cfg.SwitchesFor(hosts)
	}

	defer a.closeAll()
	svc := services.NewInventoryService(a.newRunner(logger), cfg.Extractor(), cfg.Concurrency, logger)
	rep := svc.Collect(ctx, switches)

	if err := sink.Write(rep); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	printSummary(a.out, rep, cfg.Output)
	return nil
}

// loadConfig reads the located configuration file; without one, defaults
// apply unless a path was given explicitly
func loadConfig(explicit string, verbosity int) (*config.Config, error) {
	path, err := config.Locate(explicit, config.SearchPaths())
	if errors.Is(err, config.ErrNotFound) {
		cfg := config.Default()
		cfg.VerbosityLevel = verbosity
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}
	return config.Load(path, verbosity)
}

func printSummary(w io.Writer, rep entities.Report, output string) {
	counts := rep.CountByHost()
	failed := make(map[string]bool, len(rep.Failures))
	for _, failure := range rep.Failures {
		failed[failure.Host] = true
	}

	var seen []string
	for _, host := range rep.Hosts {
		if slices.Contains(seen, host) {
			continue
		}
		seen = append(seen, host)
		if failed[host] && counts[host] == 0 {
			continue
		}
		fmt.Fprintf(w, "%-30s %d VLANs\n", host, counts[host])
	}
	if len(rep.Failures) > 0 {
		fmt.Fprintf(w, "\nFailed hosts (%d):\n", len(rep.Failures))
		for _, failure := range rep.Failures {
			fmt.Fprintf(w, "  %s: %s\n", failure.Host, failure.Reason)
		}
	}
	fmt.Fprintf(w, "\n%d records from %d hosts written to %s\n", len(rep.Records), len(seen), output)
}
