package main

import (
	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/veldran/tabgen"
	"github.com/veldran/tabgen/install"
)

// shellsCmd lists every dialect the tool knows about, whether it can emit
// a script for it, and where an installed script would land.
var shellsCmd = &cobra.Command{
	Use:   "shells",
	Short: "List shell dialects, emitter availability and install locations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		table := tablewriter.NewWriter(cmd.OutOrStdout())
		table.SetHeader([]string{"SHELL", "EMITTER", "INSTALL DIRECTORY"})
		table.SetAutoWrapText(false)
		table.SetAutoFormatHeaders(false)
		table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
		table.SetAlignment(tablewriter.ALIGN_LEFT)
		table.SetCenterSeparator("")
		table.SetColumnSeparator("")
		table.SetRowSeparator("")
		table.SetHeaderLine(false)
		table.SetBorder(false)
		table.SetTablePadding("   ")
		table.SetNoWhiteSpace(true)

		emitters := tabgen.Shells()
		for _, shell := range lo.Union(install.Supported(), emitters) {
			available := "no"
			if lo.Contains(emitters, shell) {
				available = "yes"
			}

			dir := "-"
			if paths, err := install.PathsFor(shell); err == nil {
				dir = paths.Primary
			}

			table.Append([]string{shell, available, dir})
		}

		table.Render()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(shellsCmd)
}
