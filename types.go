package bsreshape

import (
	"fmt"
	"regexp"
	"strings"
)

// ColumnKind represents the meaning of a value column, inferred from its header.
type ColumnKind int

const (
	// KindText represents a header that matches no known pattern.
	KindText ColumnKind = iota
	// KindPeriod represents a monthly actual or forecast column such as "Jan-25A" or "Dec-25F".
	KindPeriod
	// KindYearAgo represents a year-ago comparative column such as "24-Nov".
	KindYearAgo
	// KindYoY represents a year-over-year percentage column such as "Nov YoY (%)".
	KindYoY
)

// String returns the string representation of ColumnKind.
func (ck ColumnKind) String() string {
	switch ck {
	case KindPeriod:
		return "period"
	case KindYearAgo:
		return "year-ago"
	case KindYoY:
		return "yoy"
	default:
		return "text"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (ck ColumnKind) MarshalText() ([]byte, error) {
	return []byte(ck.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (ck *ColumnKind) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "period":
		*ck = KindPeriod
	case "year-ago":
		*ck = KindYearAgo
	case "yoy":
		*ck = KindYoY
	case "text":
		*ck = KindText
	default:
		return fmt.Errorf("unknown column kind: %q", string(text))
	}
	return nil
}

var (
	periodHeader  = regexp.MustCompile(`^[A-Za-z]{3}-\d{2}[AFPafp]?$`)
	yearAgoHeader = regexp.MustCompile(`^\d{2}-[A-Za-z]{3}$`)
)

// classifyHeader determines the kind of a single header cell.
func classifyHeader(cell string) ColumnKind {
	s := strings.TrimSpace(cell)
	if s == "" {
		return KindText
	}

	// Percentage columns are labelled either "YoY" or with a percent sign
	if strings.Contains(strings.ToUpper(s), "YOY") || strings.Contains(s, "%") {
		return KindYoY
	}

	if yearAgoHeader.MatchString(s) {
		return KindYearAgo
	}

	if periodHeader.MatchString(s) {
		return KindPeriod
	}

	return KindText
}

// classifyHeaders infers the kind of every value column in a header record.
// The label column is excluded.
func classifyHeaders(record []string) []ColumnKind {
	if len(record) <= 1 {
		return nil
	}
	kinds := make([]ColumnKind, len(record)-1)
	for i, cell := range record[1:] {
		kinds[i] = classifyHeader(cell)
	}
	return kinds
}
