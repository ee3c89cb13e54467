package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

func (a *app) runCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run [--] <mpy-cross args>...",
		Short: "Run mpy-cross with raw arguments and print its output",
		Example: `  mpycross run -- --help
  mpycross --binary ./mpy-cross run -- -O1 main.py`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := a.inv.Run(cmd.Context(), args)
			if err != nil {
				return err
			}
			_, _ = io.WriteString(a.stdout, out)
			return nil
		},
	}
}

func (a *app) mpyVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mpy-version",
		Short: "Print the .mpy format version emitted by mpy-cross as <major>.<minor>",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			major, minor, err := a.inv.MpyVersion(cmd.Context())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(a.stdout, "%d.%d\n", major, minor)
			return nil
		},
	}
}
