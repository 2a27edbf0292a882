// Package cmd provides CLI commands for bsreshape.
package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/nao1215/bsreshape/config"
)

var (
	cfgFile    string
	debug      bool
	file       string
	planPath   string
	historyDB  string
	exportPath string

	cfg *config.Config
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "bsreshape",
	Short: "Restructure the balance-sheet CSV",
	Long: `bsreshape rewrites the secondary block of the balance-sheet CSV.

It indexes the primary and secondary blocks by row label, builds the new
block from a recipe (copy, sum or blank rows), truncates the file after the
secondary header and appends the new rows.

The file is only written after every row has been built. With --history the
run is recorded in SQLite and a file that is already the output of a
recorded run is left alone unless --force is given.

Example:
  bsreshape
  bsreshape --file data/balance-sheet.csv.gz --dry-run
  bsreshape --plan plan.yaml --export block.xlsx --history .bsreshape/runs.db
  bsreshape plan > plan.yaml
  bsreshape runs --history .bsreshape/runs.db
  bsreshape prune --prefix 팝업_SEM광고비_`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		applyFlags(loaded)
		cfg = loaded

		// Setup logging
		logLevel := slog.LevelInfo
		if debug || cfg.Debug {
			logLevel = slog.LevelDebug
		}
		logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
			Level: logLevel,
		}))
		slog.SetDefault(logger)
		return nil
	},
	RunE: runReshape,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)
		return err
	}
	return nil
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .env)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&historyDB, "history", "", "SQLite run history (BSRESHAPE_HISTORY_DB)")

	rootCmd.Flags().StringVar(&file, "file", "", "sheet to rewrite (BSRESHAPE_FILE, default "+config.DefaultFile+")")
	rootCmd.Flags().StringVar(&planPath, "plan", "", "YAML layout/recipe plan (BSRESHAPE_PLAN)")
	rootCmd.Flags().StringVar(&exportPath, "export", "", "also write the new block to a .xlsx or .parquet file (BSRESHAPE_EXPORT)")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "build the new block without writing any file")
	rootCmd.Flags().BoolVar(&force, "force", false, "rewrite even if the history says the file is already restructured")

	// Add subcommands
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(pruneCmd)
}

// applyFlags lets explicit flags win over the environment.
func applyFlags(c *config.Config) {
	if file != "" {
		c.File = file
	}
	if planPath != "" {
		c.PlanPath = planPath
	}
	if historyDB != "" {
		c.HistoryDB = historyDB
	}
	if exportPath != "" {
		c.ExportPath = exportPath
	}
	if pruneFile != "" {
		c.PruneFile = pruneFile
	}
	if prunePrefix != "" {
		c.PrunePrefix = prunePrefix
	}
}
