package bsreshape

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRecipe(t *testing.T) {
	t.Parallel()

	recipe := DefaultRecipe()

	require.NoError(t, recipe.Validate())

	labels := make([]string, len(recipe.Steps))
	for i, step := range recipe.Steps {
		labels[i] = step.Label
	}
	assert.Equal(t, []string{
		"운전자본", "매출채권", "재고자산", "매입채무",
		"현금성자산", "현금", "차입금",
		"이익", "이익잉여금",
		"기타운전자본", "선급비용", "미지급비용", "고정자산/보증금", "미수금/미지급금",
		"리스", "리스자산", "리스부채",
	}, labels)

	assert.Equal(t, []string{
		"현금성자산", "이익", "기타운전자본", "미지급비용", "미수금/미지급금", "리스",
	}, recipe.Placeholders())

	t.Run("returns a fresh value", func(t *testing.T) {
		t.Parallel()

		a := DefaultRecipe()
		a.Steps[0].Sources[0] = "changed"

		assert.Equal(t, "운전자본", DefaultRecipe().Steps[0].Sources[0])
	})
}

func TestRecipe_Validate(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name   string
		step   Step
		errMsg string
	}{
		{"missing label", Step{Strategy: StrategyBlank}, "has no label"},
		{"copy without source", Step{Label: "a", Strategy: StrategyCopy}, "needs exactly one source"},
		{"copy with two sources", Step{Label: "a", Strategy: StrategyCopy, Sources: []string{"b", "c"}}, "needs exactly one source"},
		{"existing without source", Step{Label: "a", Strategy: StrategyExisting}, "needs exactly one source"},
		{"sum without sources", Step{Label: "a", Strategy: StrategySum}, "at least one source"},
		{"blank with source", Step{Label: "a", Strategy: StrategyBlank, Sources: []string{"b"}}, "takes no sources"},
		{"unknown strategy", Step{Label: "a", Strategy: "average"}, `unknown strategy "average"`},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			err := Recipe{Steps: []Step{tc.step}}.Validate()

			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.errMsg)
		})
	}

	t.Run("empty recipe", func(t *testing.T) {
		t.Parallel()

		assert.Error(t, Recipe{}.Validate())
	})
}
