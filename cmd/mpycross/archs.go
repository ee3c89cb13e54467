package main

import (
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/hyperifyio/mpycross"
)

func (a *app) archsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "archs",
		Short: "List the native architectures accepted by --march",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			table := tablewriter.NewWriter(a.stdout)
			table.SetHeader([]string{"Name", "Token"})
			table.SetAutoFormatHeaders(false)
			table.SetBorder(false)
			names := mpycross.NativeArchNames()
			for i, arch := range mpycross.NativeArchs() {
				token := string(arch)
				if token == "" {
					token = "-"
				}
				table.Append([]string{names[i], token})
			}
			table.Render()
			return nil
		},
	}
}
