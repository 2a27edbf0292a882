package cmd

import (
	"github.com/spf13/cobra"

	"github.com/nao1215/bsreshape/config"
)

// planCmd prints the plan in effect as YAML.
var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Print the layout and recipe as YAML",
	Long: `Print the layout and recipe in effect as a YAML plan.

The output can be edited and passed back with --plan.

Example:
  bsreshape plan > plan.yaml`,
	RunE: runPlan,
}

func init() {
	planCmd.Flags().StringVar(&planPath, "plan", "", "YAML layout/recipe plan (BSRESHAPE_PLAN)")
}

func runPlan(cmd *cobra.Command, args []string) error {
	layout, recipe, err := config.LoadPlan(cfg.PlanPath)
	if err != nil {
		return err
	}
	out, err := config.MarshalPlan(layout, recipe)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(out)
	return err
}
