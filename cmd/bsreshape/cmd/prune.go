package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/nao1215/bsreshape"
)

var (
	pruneFile   string
	prunePrefix string
	pruneDryRun bool
)

// pruneCmd removes rows by label prefix.
var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Remove rows whose label starts with a prefix",
	Long: `Remove every line of a sheet that starts with a prefix and rewrite
the sheet in place, keeping its format and compression.

By default the SEM popup ad-spend rows (팝업_SEM광고비_) are removed from
the dashboard sheet.

Example:
  bsreshape prune
  bsreshape prune --file data/dashboard-data.csv --prefix 팝업_ --dry-run`,
	RunE: runPrune,
}

func init() {
	pruneCmd.Flags().StringVar(&pruneFile, "file", "", "sheet to prune (BSRESHAPE_PRUNE_FILE)")
	pruneCmd.Flags().StringVar(&prunePrefix, "prefix", "", "remove lines starting with this text (BSRESHAPE_PRUNE_PREFIX)")
	pruneCmd.Flags().BoolVar(&pruneDryRun, "dry-run", false, "count matching lines without writing the file")
}

func runPrune(cmd *cobra.Command, args []string) error {
	if err := cfg.ValidatePrune(); err != nil {
		return err
	}

	fileType := bsreshape.DetectFileType(cfg.PruneFile)
	slog.Info("Pruning sheet", "file", cfg.PruneFile, "prefix", cfg.PrunePrefix, "dry_run", pruneDryRun)
	slog.Debug("Detected sheet type", "type", fileType, "compressed", bsreshape.IsCompressed(fileType))

	removed, err := bsreshape.PruneFile(cfg.PruneFile, cfg.PrunePrefix, pruneDryRun)
	if err != nil {
		return err
	}

	if pruneDryRun {
		fmt.Fprintf(cmd.OutOrStdout(), "Dry run: %d rows would be removed\n", removed)
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Removed %d rows\n", removed)
	return nil
}
