package bsreshape

import (
	"fmt"
)

// Row is an output row: a label and its formatted value cells.
type Row struct {
	Label  string
	Values []string
}

// SumValues adds up the rows named by labels column by column.
// Labels missing from ix are skipped; if none is present the result is
// layout.Width() empty strings. Percentage columns are never parsed and are
// always blank in the result.
func SumValues(ix *Index, layout Layout, labels ...string) ([]string, error) {
	width := layout.Width()
	totals := make([]float64, width)
	found := false

	for _, label := range labels {
		if !ix.Has(label) {
			continue
		}
		found = true

		for i, cell := range ix.Values(label) {
			if i >= width || layout.IsPercentage(i) {
				continue
			}
			v, err := ParseValue(cell)
			if err != nil {
				return nil, fmt.Errorf("row %q column %d: %w", label, i+2, err)
			}
			totals[i] += v
		}
	}

	result := make([]string, width)
	if !found {
		return result, nil
	}
	for i, total := range totals {
		if layout.IsPercentage(i) {
			continue
		}
		result[i] = FormatValue(total)
	}
	return result, nil
}

// BuildRows produces one row per recipe step.
// primary is the main data block; existing is the secondary block consulted
// by StrategyExisting.
func BuildRows(recipe Recipe, primary, existing *Index, layout Layout) ([]Row, error) {
	rows := make([]Row, 0, len(recipe.Steps))
	for _, step := range recipe.Steps {
		values, err := buildValues(step, primary, existing, layout)
		if err != nil {
			return nil, fmt.Errorf("failed to build %q: %w", step.Label, err)
		}
		rows = append(rows, Row{Label: step.Label, Values: values})
	}
	return rows, nil
}

func buildValues(step Step, primary, existing *Index, layout Layout) ([]string, error) {
	switch step.Strategy {
	case StrategyCopy:
		return primary.Values(step.Sources[0]), nil
	case StrategyExisting:
		if existing.Has(step.Sources[0]) {
			return existing.Values(step.Sources[0]), nil
		}
		return primary.Values(step.Sources[0]), nil
	case StrategySum:
		return SumValues(primary, layout, step.Sources...)
	case StrategyBlank:
		return make([]string, layout.Width()), nil
	default:
		return nil, fmt.Errorf("unknown strategy %q", step.Strategy)
	}
}
