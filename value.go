package bsreshape

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// ErrInvalidValue is returned when a non-empty cell is not a number.
var ErrInvalidValue = errors.New("invalid numeric value")

var (
	// valueNoise is stripped from a cell before parsing: quotes, thousands
	// separators, spaces and currency markers.
	valueNoise = strings.NewReplacer(`"`, "", ",", "", " ", "", "$", "", "₩", "")
	parens     = strings.NewReplacer("(", "", ")", "")

	amountPrinter = message.NewPrinter(language.English)
)

// ParseValue converts a textual amount to a number.
//
// Conversion rules:
//   - quotes, commas, spaces, "$" and "₩" are removed
//   - empty input (before or after cleaning) is 0
//   - "(1,234)" is -1234
//   - anything else must parse as a finite float, otherwise ErrInvalidValue is returned
func ParseValue(text string) (float64, error) {
	clean := strings.TrimSpace(valueNoise.Replace(text))
	if clean == "" {
		return 0, nil
	}

	negative := false
	if strings.Contains(clean, "(") && strings.Contains(clean, ")") {
		clean = parens.Replace(clean)
		negative = true
	}

	v, err := strconv.ParseFloat(clean, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidValue, text)
	}
	if negative {
		return -v, nil
	}
	return v, nil
}

// FormatValue renders an amount the way the sheet displays it: thousands
// separators, no decimals, parentheses for negatives, and "" for zero.
func FormatValue(v float64) string {
	if v == 0 {
		return ""
	}
	formatted := amountPrinter.Sprint(number.Decimal(math.Abs(v), number.MaxFractionDigits(0)))
	if v < 0 {
		return "(" + formatted + ")"
	}
	return formatted
}
