package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/carlosrabelo/vlaninv/domain/ports"
	"github.com/carlosrabelo/vlaninv/infrastructure/transport"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

// app carries the streams and collaborators shared by every subcommand
type app struct {
	in        io.Reader
	out       io.Writer
	errOut    io.Writer
	prompter  *Prompter
	newRunner func(logger *slog.Logger) ports.SessionRunner
	closeAll  func()
}

func newApp(in io.Reader, out, errOut io.Writer) *app {
	return &app{
		in:       in,
		out:      out,
		errOut:   errOut,
		prompter: NewPrompter(in, errOut),
		newRunner: func(logger *slog.Logger) ports.SessionRunner {
			return transport.NewRunner(logger)
		},
		closeAll: transport.CloseAll,
	}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "vlaninv",
		Short:         "Collect VLAN inventories from network switches",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetIn(a.in)
	root.SetOut(a.out)
	root.SetErr(a.errOut)

	root.AddCommand(newCollectCmd(a))
	root.AddCommand(newParseCmd(a))
	root.AddCommand(newHistoryCmd(a))
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(a.out, "vlaninv %s (built %s)\n", version, buildTime)
		},
	})
	return root
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd(newApp(os.Stdin, os.Stdout, os.Stderr)).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}
