package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/nao1215/bsreshape"
	"github.com/nao1215/bsreshape/config"
	"github.com/nao1215/bsreshape/history"
)

var (
	dryRun bool
	force  bool
)

func runReshape(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if err := cfg.Validate(); err != nil {
		return err
	}

	layout, recipe, err := config.LoadPlan(cfg.PlanPath)
	if err != nil {
		return err
	}
	slog.Debug("Loaded plan",
		"plan", cfg.PlanPath,
		"steps", len(recipe.Steps),
		"value_columns", layout.Width(),
		"percentage_columns", layout.PercentageColumns())

	var store *history.Store
	if cfg.HistoryDB != "" {
		slog.Debug("Opening history", "path", cfg.HistoryDB)
		store, err = history.Open(cfg.HistoryDB)
		if err != nil {
			return err
		}
		defer store.Close()

		current, err := os.ReadFile(cfg.File)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", cfg.File, err)
		}
		if err := store.Guard(ctx, cfg.File, current); err != nil {
			if !force {
				return err
			}
			slog.Warn("Rewriting an already restructured sheet", "file", cfg.File)
		}
	}

	fileType := bsreshape.DetectFileType(cfg.File)
	slog.Info("Restructuring sheet", "file", cfg.File, "dry_run", dryRun)
	slog.Debug("Detected sheet type", "type", fileType, "compressed", bsreshape.IsCompressed(fileType))
	result, written, err := bsreshape.BuildFile(cfg.File, bsreshape.Options{
		Recipe: recipe,
		Layout: layout,
	})
	if err != nil {
		return err
	}

	slog.Info("Built rows",
		"primary_labels", result.PrimaryRows,
		"existing_labels", result.ExistingRows,
		"rows", len(result.Rows))
	if len(result.Unresolved) > 0 {
		slog.Warn("Placeholder rows left blank", "labels", result.Unresolved)
	}

	// Render the export up front so a failure leaves the sheet untouched
	var exported []byte
	if cfg.ExportPath != "" {
		exported, err = bsreshape.RenderExport(cfg.ExportPath, result, layout)
		if err != nil {
			return err
		}
	}

	if dryRun {
		for _, row := range result.Rows {
			slog.Debug("Row", "label", row.Label, "values", row.Values)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Dry run: no files written")
		return nil
	}

	if err := bsreshape.WriteFile(cfg.File, written); err != nil {
		return err
	}
	if store != nil {
		if err := store.Record(ctx, history.Run{
			File:       cfg.File,
			Checksum:   history.Checksum(written),
			Rows:       len(result.Rows),
			Unresolved: len(result.Unresolved),
		}); err != nil {
			return err
		}
	}

	if exported != nil {
		if err := bsreshape.WriteFile(cfg.ExportPath, exported); err != nil {
			return fmt.Errorf("sheet was rewritten but the export failed: %w", err)
		}
		slog.Info("Exported new block", "path", cfg.ExportPath)
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Done")
	return nil
}
