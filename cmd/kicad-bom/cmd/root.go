package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/OpenTraceLab/OpenTraceBOM/internal/config"
	"github.com/OpenTraceLab/OpenTraceBOM/internal/logging"
)

var (
	// Global flags
	verbose    bool
	configFile string
)

var (
	cfg *config.Config
	log *zap.SugaredLogger
)

var rootCmd = &cobra.Command{
	Use:   "kicad-bom",
	Short: "Grouped bill of materials export for KiCad netlists",
	Long: `kicad-bom reads a KiCad netlist (XML or S-expression) and writes a bill of
materials with one row per group of identical parts. Parts are grouped when
their value, footprint, DNP state and every manufacturer, vendor and cost
field agree.

Settings come from kicad-bom.yaml (or .toml/.json) in the working directory
or the user config directory, KICADBOM_* environment variables and flags.

Examples:
  kicad-bom export board.xml board.csv          # KiCad BOM plugin: "%I" "%O.csv"
  kicad-bom show board.net                      # Print the grouped BOM
  kicad-bom show --collation lexical board.xml  # Order R10 before R2
  kicad-bom fields                              # List compared columns`,
	Version:           "0.9.0",
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadConfig,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "",
		"config file (default kicad-bom.{yaml,toml,json} in . or the user config dir)")
	rootCmd.PersistentFlags().String("collation", "",
		"reference ordering (natural, lexical, unicode)")
}

// flagKeys maps command-line flags to configuration keys
var flagKeys = map[string]string{
	"collation":     config.Collation,
	"exclude-dnp":   config.FilterExcludeDNP,
	"exclude-board": config.FilterExcludeBoard,
}

func loadConfig(cmd *cobra.Command, args []string) error {
	log = logging.New(cmd.ErrOrStderr(), verbose)

	v := config.New()
	for name, key := range flagKeys {
		if f := cmd.Flags().Lookup(name); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return fmt.Errorf("failed to bind --%s: %w", name, err)
			}
		}
	}

	c, err := config.Load(v, configFile)
	if err != nil {
		return err
	}
	if used := v.ConfigFileUsed(); used != "" {
		log.Debugw("loaded config", "path", used)
	}
	log.Debugw("settings",
		"collation", c.Collation,
		"fields", len(c.Fields),
		"exclude_dnp", c.Filter.ExcludeDNP,
		"exclude_board", c.Filter.ExcludeBoard)

	cfg = c
	return nil
}

// addFilterFlags registers the component selection flags on cmd
func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("exclude-dnp", false, "leave do-not-populate parts out of the BOM")
	cmd.Flags().Bool("exclude-board", false, "leave exclude-from-board parts out of the BOM")
}
