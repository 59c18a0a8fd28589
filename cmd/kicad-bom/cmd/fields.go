package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var fieldsCmd = &cobra.Command{
	Use:   "fields",
	Short: "List the fields compared and written for each BOM row",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		for _, f := range cfg.Fields {
			fmt.Fprintln(out, f)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(fieldsCmd)
}
