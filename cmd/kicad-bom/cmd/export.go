package cmd

import (
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export <input-netlist> <output-csv>",
	Short: "Write the grouped BOM as CSV",
	Long: `Read a KiCad netlist and write the grouped BOM to a CSV file. Every field is
double-quoted. The columns are #, Reference, Qty and then the configured fields.

If the output file can't be created the BOM is written to stdout instead and
the command exits with status 1.

Examples:
  kicad-bom export board.xml board.csv
  kicad-bom export --exclude-dnp board.net board-populated.csv

As a KiCad BOM plugin command line:
  kicad-bom export "%I" "%O.csv"`,
	Args: cobra.ExactArgs(2),
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
	addFilterFlags(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	e, err := cfg.Exporter()
	if err != nil {
		return err
	}
	e.Logger = log
	e.Fallback = cmd.OutOrStdout()

	_, err = e.ExportFile(args[0], args[1])
	return err
}
