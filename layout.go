package bsreshape

import (
	"errors"
	"fmt"
)

// ErrLayoutDrift is returned when a sheet's header no longer matches the expected layout.
var ErrLayoutDrift = errors.New("sheet layout has drifted")

// Default sheet geometry. Line numbers are zero-based.
const (
	// ValueColumns is the number of value cells after the label column.
	ValueColumns = 16

	// NovYoYColumn is the value index of the "Nov YoY (%)" header.
	NovYoYColumn = 12
	// DecYoYColumn is the value index of the "Dec YoY (%)" header.
	DecYoYColumn = 15

	// HeaderLine holds the column headers of the primary block ("구분,Jan-25A,...").
	HeaderLine = 1
	// PrimaryStart is the first line of the primary data block.
	PrimaryStart = 2
	// PrimaryEnd is one past the last line of the primary data block.
	PrimaryEnd = 30
	// SecondaryHeaderLine repeats the column headers above the secondary block.
	// Everything after it is replaced on rewrite.
	SecondaryHeaderLine = 30
	// SecondaryStart is the first line of the secondary ("existing") block.
	SecondaryStart = 31
	// SecondaryEnd is one past the last line of the secondary block.
	SecondaryEnd = 37

	// LabelHeader is the header of the label column.
	LabelHeader = "구분"
)

// Layout describes where the blocks of a sheet live and what its columns mean.
type Layout struct {
	HeaderLine          int          `yaml:"header_line"`
	PrimaryStart        int          `yaml:"primary_start"`
	PrimaryEnd          int          `yaml:"primary_end"`
	SecondaryHeaderLine int          `yaml:"secondary_header_line"`
	SecondaryStart      int          `yaml:"secondary_start"`
	SecondaryEnd        int          `yaml:"secondary_end"`
	LabelHeader         string       `yaml:"label_header"`
	Columns             []ColumnKind `yaml:"columns"`
}

// DefaultLayout returns the layout of the monthly balance sheet:
// eleven period columns (Jan-25A..Nov-25F), 24-Nov, Nov YoY (%), Dec-25F, 24-Dec, Dec YoY (%).
func DefaultLayout() Layout {
	columns := make([]ColumnKind, 0, ValueColumns)
	for i := 0; i < 11; i++ {
		columns = append(columns, KindPeriod)
	}
	columns = append(columns, KindYearAgo, KindYoY, KindPeriod, KindYearAgo, KindYoY)

	return Layout{
		HeaderLine:          HeaderLine,
		PrimaryStart:        PrimaryStart,
		PrimaryEnd:          PrimaryEnd,
		SecondaryHeaderLine: SecondaryHeaderLine,
		SecondaryStart:      SecondaryStart,
		SecondaryEnd:        SecondaryEnd,
		LabelHeader:         LabelHeader,
		Columns:             columns,
	}
}

// Width returns the number of value columns.
func (l Layout) Width() int {
	return len(l.Columns)
}

// IsPercentage reports whether value column i holds year-over-year percentages.
func (l Layout) IsPercentage(i int) bool {
	return i >= 0 && i < len(l.Columns) && l.Columns[i] == KindYoY
}

// KeepLines returns how many leading lines survive a rewrite.
func (l Layout) KeepLines() int {
	return l.SecondaryHeaderLine + 1
}

// Validate checks that the block offsets are ordered and non-overlapping.
func (l Layout) Validate() error {
	switch {
	case len(l.Columns) == 0:
		return errors.New("layout has no value columns")
	case l.LabelHeader == "":
		return errors.New("layout has no label header")
	case l.HeaderLine < 0:
		return fmt.Errorf("header line %d is negative", l.HeaderLine)
	case l.PrimaryStart <= l.HeaderLine:
		return fmt.Errorf("primary block (line %d) must start after the header (line %d)", l.PrimaryStart, l.HeaderLine)
	case l.PrimaryEnd < l.PrimaryStart:
		return fmt.Errorf("primary block ends (line %d) before it starts (line %d)", l.PrimaryEnd, l.PrimaryStart)
	case l.SecondaryHeaderLine < l.PrimaryEnd:
		return fmt.Errorf("secondary header (line %d) overlaps the primary block", l.SecondaryHeaderLine)
	case l.SecondaryStart <= l.SecondaryHeaderLine:
		return fmt.Errorf("secondary block (line %d) must start after its header (line %d)", l.SecondaryStart, l.SecondaryHeaderLine)
	case l.SecondaryEnd < l.SecondaryStart:
		return fmt.Errorf("secondary block ends (line %d) before it starts (line %d)", l.SecondaryEnd, l.SecondaryStart)
	}
	return nil
}

// ValidateHeader checks both header lines of doc against the layout.
// It fails with ErrLayoutDrift if a line is missing, too short, or a column
// header does not classify as the expected kind.
func ValidateHeader(doc *Document, layout Layout) error {
	for _, line := range []int{layout.HeaderLine, layout.SecondaryHeaderLine} {
		if line >= len(doc.Lines) {
			return fmt.Errorf("%w: header line %d is missing (document has %d lines)", ErrLayoutDrift, line+1, len(doc.Lines))
		}
		record, err := doc.Record(line)
		if err != nil {
			return err
		}
		if len(record) < 1+layout.Width() {
			return fmt.Errorf("%w: line %d has %d columns, want at least %d", ErrLayoutDrift, line+1, len(record), 1+layout.Width())
		}
		if got := NormalizeLabel(record[0]); got != layout.LabelHeader {
			return fmt.Errorf("%w: line %d starts with %q, want %q", ErrLayoutDrift, line+1, got, layout.LabelHeader)
		}

		kinds := classifyHeaders(record)
		for i, want := range layout.Columns {
			if kinds[i] != want {
				return fmt.Errorf("%w: line %d column %d (%q) is %s, want %s",
					ErrLayoutDrift, line+1, i+2, record[i+1], kinds[i], want)
			}
		}
	}
	return nil
}

// PercentageColumns lists the value indices that are never summed.
func (l Layout) PercentageColumns() []int {
	var cols []int
	for i := range l.Columns {
		if l.IsPercentage(i) {
			cols = append(cols, i)
		}
	}
	return cols
}
