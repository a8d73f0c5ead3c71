package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/carlosrabelo/vlaninv/domain/entities"
	"github.com/carlosrabelo/vlaninv/infrastructure/report"
)

func newHistoryCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "history <database>",
		Short: "Print the most recent run stored in a SQLite report as CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(args[0]); err != nil {
				return fmt.Errorf("failed to open history %s: %w", args[0], err)
			}
			records, err := report.LatestRun(args[0])
			if err != nil {
				return err
			}
			return report.WriteCSV(a.out, entities.Report{Records: records})
		},
	}
}
