package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/carlosrabelo/vlaninv/domain/entities"
	"github.com/carlosrabelo/vlaninv/domain/services"
	"github.com/carlosrabelo/vlaninv/infrastructure/config"
	"github.com/carlosrabelo/vlaninv/infrastructure/report"
)

type parseOptions struct {
	configPath string
	host       string
	output     string
}

func newParseCmd(a *app) *cobra.Command {
	var opts parseOptions
	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Extract VLAN records from saved \"show vlan brief\" output",
		Long:  "Extract VLAN records from saved \"show vlan brief\" output read from file or standard input, and print them as CSV.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runParse(opts, args)
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&opts.configPath, "config", "", "YAML configuration file providing skip_policy, header_lines and exclude")
	flags.StringVar(&opts.host, "host", "local", "hostname recorded on every record")
	flags.StringVar(&opts.output, "output", "", "write a report file instead of CSV on standard output")
	return cmd
}

func (a *app) runParse(opts parseOptions, args []string) error {
	extractor := services.NewHeaderExtractor(entities.DefaultHeaderLines)
	if opts.configPath != "" {
		cfg, err := config.Load(opts.configPath, 0)
		if err != nil {
			return err
		}
		extractor = cfg.Extractor()
	}

	in := a.in
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", args[0], err)
		}
		defer f.Close()
		in = f
	}
	data, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	var rep entities.Report
	rep.Append(entities.HostResult{Host: opts.host, Records: extractor.Extract(opts.host, string(data))})

	if opts.output == "" {
		return report.WriteCSV(a.out, rep)
	}
	sink, err := report.New(opts.output)
	if err != nil {
		return err
	}
	return sink.Write(rep)
}
