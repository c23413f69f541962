package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/veldran/tabgen/install"
)

// installCmd generates a script and drops it where the shell sources it.
var installCmd = &cobra.Command{
	Use:   "install <schema.yaml>",
	Short: "Generate a completion script and install it for the current user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root, prog, ok, err := loadSchema(args[0])
		if err != nil || !ok {
			return err
		}

		script, prog, err := generateScript(root, prog)
		if err != nil {
			return err
		}

		target, err := install.Write(viper.GetString("shell"), prog, script)
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), target)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(installCmd)
}
