package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/nao1215/bsreshape/history"
)

// runsCmd lists the recorded rewrites.
var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recorded rewrites",
	Long: `List the rewrites recorded in the run history, newest first.

Example:
  bsreshape runs --history .bsreshape/runs.db`,
	RunE: runRuns,
}

func runRuns(cmd *cobra.Command, args []string) error {
	if cfg.HistoryDB == "" {
		return errors.New("no run history configured (use --history or BSRESHAPE_HISTORY_DB)")
	}

	slog.Debug("Opening history", "path", cfg.HistoryDB)
	store, err := history.Open(cfg.HistoryDB)
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.Runs(cmd.Context(), "")
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tRAN AT\tROWS\tBLANK\tFILE\tCHECKSUM")
	for _, run := range runs {
		fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%s\t%.12s\n",
			run.ID, run.RanAt.Local().Format(time.DateTime), run.Rows, run.Unresolved, run.File, run.Checksum)
	}
	return w.Flush()
}
