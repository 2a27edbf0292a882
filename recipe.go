package bsreshape

import (
	"errors"
	"fmt"
)

// Strategy selects how an output row is produced.
type Strategy string

const (
	// StrategyCopy copies a row of the primary block.
	StrategyCopy Strategy = "copy"
	// StrategyExisting copies a row of the secondary block, falling back to the primary block.
	StrategyExisting Strategy = "existing"
	// StrategySum sums primary rows column by column.
	StrategySum Strategy = "sum"
	// StrategyBlank emits an empty placeholder row.
	StrategyBlank Strategy = "blank"
)

// Step describes one output row.
type Step struct {
	// Label is written to the label column of the output row.
	Label string `yaml:"label"`
	// Strategy selects how the values are produced.
	Strategy Strategy `yaml:"strategy"`
	// Sources are the normalized labels the values come from.
	Sources []string `yaml:"sources,omitempty"`
	// Note explains a blank placeholder.
	Note string `yaml:"note,omitempty"`
}

// Recipe is the ordered list of output rows.
type Recipe struct {
	Steps []Step `yaml:"steps"`
}

const unresolved = "source data does not say whether this is a sum or a copy"

// DefaultRecipe returns the restructured balance-sheet block:
// working capital, cash, earnings, other working capital and leases, each
// parent followed by its children.
func DefaultRecipe() Recipe {
	// TODO: settle the blank parents (현금성자산, 이익, 기타운전자본, 리스) and the
	// missing 미지급비용 and 미수금/미지급금 sources with finance before filling them.
	return Recipe{Steps: []Step{
		{Label: "운전자본", Strategy: StrategyExisting, Sources: []string{"운전자본"}},
		{Label: "매출채권", Strategy: StrategyCopy, Sources: []string{"매출채권"}},
		{Label: "재고자산", Strategy: StrategyCopy, Sources: []string{"재고자산"}},
		{Label: "매입채무", Strategy: StrategyCopy, Sources: []string{"매입채무"}},

		{Label: "현금성자산", Strategy: StrategyBlank, Note: unresolved},
		{Label: "현금", Strategy: StrategyCopy, Sources: []string{"현금"}},
		{Label: "차입금", Strategy: StrategyCopy, Sources: []string{"본사 차입금(원금)"}},

		{Label: "이익", Strategy: StrategyBlank, Note: unresolved},
		{Label: "이익잉여금", Strategy: StrategyCopy, Sources: []string{"누적이익잉여금"}},

		{Label: "기타운전자본", Strategy: StrategyBlank, Note: unresolved},
		{Label: "선급비용", Strategy: StrategyCopy, Sources: []string{"선급비용"}},
		{Label: "미지급비용", Strategy: StrategyBlank, Note: "no source row"},
		{Label: "고정자산/보증금", Strategy: StrategySum, Sources: []string{"유형자산", "보증금"}},
		{Label: "미수금/미지급금", Strategy: StrategyBlank, Note: "no source row"},

		{Label: "리스", Strategy: StrategyBlank, Note: unresolved},
		{Label: "리스자산", Strategy: StrategyCopy, Sources: []string{"리스자산"}},
		{Label: "리스부채", Strategy: StrategySum, Sources: []string{"유동리스부채", "비유동리스부채"}},
	}}
}

// Validate checks every step for a label, a known strategy and the right number of sources.
func (r Recipe) Validate() error {
	if len(r.Steps) == 0 {
		return errors.New("recipe has no steps")
	}
	for i, step := range r.Steps {
		if step.Label == "" {
			return fmt.Errorf("step %d has no label", i+1)
		}
		switch step.Strategy {
		case StrategyCopy, StrategyExisting:
			if len(step.Sources) != 1 {
				return fmt.Errorf("step %d (%s): %s needs exactly one source, got %d", i+1, step.Label, step.Strategy, len(step.Sources))
			}
		case StrategySum:
			if len(step.Sources) == 0 {
				return fmt.Errorf("step %d (%s): sum needs at least one source", i+1, step.Label)
			}
		case StrategyBlank:
			if len(step.Sources) != 0 {
				return fmt.Errorf("step %d (%s): blank takes no sources", i+1, step.Label)
			}
		default:
			return fmt.Errorf("step %d (%s): unknown strategy %q", i+1, step.Label, step.Strategy)
		}
	}
	return nil
}

// Placeholders returns the labels of blank steps.
func (r Recipe) Placeholders() []string {
	var labels []string
	for _, step := range r.Steps {
		if step.Strategy == StrategyBlank {
			labels = append(labels, step.Label)
		}
	}
	return labels
}
