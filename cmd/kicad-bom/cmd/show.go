package cmd

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceBOM/pkg/bom"
	"github.com/OpenTraceLab/OpenTraceBOM/pkg/kicad/netlist"
)

// Columns shown by default; the rest of the FieldSet needs --all
var showColumns = []string{
	bom.NameValue, bom.NameFootprint, bom.NameDNP,
	"MFR", "MFR#", "Vendor", "Vendor #",
}

var showAll bool

var showCmd = &cobra.Command{
	Use:   "show <input-netlist>",
	Short: "Print the grouped BOM as a table",
	Long: `Read a KiCad netlist and print the grouped BOM as a table. Grouping and
ordering are the same as for export. Only the main part and sourcing columns
are shown unless --all is given.

Examples:
  kicad-bom show board.xml
  kicad-bom show --all --exclude-dnp board.net`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
	addFilterFlags(showCmd)
	showCmd.Flags().BoolVarP(&showAll, "all", "a", false, "show every configured field")
}

func runShow(cmd *cobra.Command, args []string) error {
	e, err := cfg.Exporter()
	if err != nil {
		return err
	}
	e.Logger = log

	nl, err := netlist.ParseFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read netlist %s: %w", args[0], err)
	}
	res := e.Group(nl)

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, renderTable(res.Rows, e.Fields, showAll, isTerminal(out)))
	fmt.Fprintf(out, "%d rows, %d components\n", len(res.Rows), res.Components)
	return nil
}

// isTerminal reports whether w is an interactive terminal that accepts styling
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok || os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func renderTable(rows []bom.Row, fields []string, all, styled bool) string {
	// Pick the value columns to show, in FieldSet order
	var cols []int
	for i, f := range fields {
		if all || slices.Contains(showColumns, f) {
			cols = append(cols, i)
		}
	}

	headers := []string{bom.ColumnIndex, bom.ColumnReference, bom.ColumnQty}
	for _, i := range cols {
		headers = append(headers, fields[i])
	}

	t := table.New().Headers(headers...)
	for _, r := range rows {
		cells := []string{strconv.Itoa(r.Index), r.Reference(), strconv.Itoa(r.Qty)}
		for _, i := range cols {
			cells = append(cells, r.Values[i])
		}
		t.Row(cells...)
	}

	cell := lipgloss.NewStyle().Padding(0, 1)
	if !styled {
		return t.Border(lipgloss.ASCIIBorder()).
			StyleFunc(func(row, col int) lipgloss.Style { return cell }).
			String()
	}

	header := cell.Bold(true).Foreground(lipgloss.Color("12"))
	dnp := cell.Foreground(lipgloss.Color("8"))
	dnpCol := slices.Index(headers, bom.NameDNP)
	return t.Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("8"))).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return header
			case dnpCol >= 0 && row >= 0 && row < len(rows) && rows[row].Values[cols[dnpCol-3]] != "":
				return dnp
			default:
				return cell
			}
		}).
		String()
}
