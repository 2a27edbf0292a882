package bsreshape

import (
	"regexp"
	"slices"
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	dottedOrdinal = regexp.MustCompile(`^[0-9]+\.\s*`)
	parenOrdinal  = regexp.MustCompile(`^\([0-9]+\)\s*`)
)

// NormalizeLabel turns a row's first cell into a lookup key.
// Leading "N. " and "(N) " ordinals are removed, the result is trimmed, and
// Hangul is composed (NFC) so decomposed input matches composed keys.
func NormalizeLabel(label string) string {
	s := norm.NFC.String(strings.TrimPrefix(label, "\uFEFF"))
	s = strings.TrimSpace(s)
	s = dottedOrdinal.ReplaceAllString(s, "")
	s = parenOrdinal.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// Index maps normalized row labels to their value cells.
// It is built once and never modified; lookups return copies.
type Index struct {
	rows  map[string][]string
	width int
}

// BuildIndex indexes lines [start, end) of doc.
// Blank lines are skipped, a later duplicate label replaces an earlier one,
// and every row is padded or truncated to width cells.
// The range is clamped to the document.
func BuildIndex(doc *Document, start, end, width int) (*Index, error) {
	ix := &Index{
		rows:  make(map[string][]string),
		width: width,
	}

	end = min(end, len(doc.Lines))
	for i := max(start, 0); i < end; i++ {
		record, err := doc.Record(i)
		if err != nil {
			return nil, err
		}
		if len(record) == 0 {
			continue
		}

		// Pad or truncate to match the value column count
		values := make([]string, width)
		copy(values, record[1:])
		ix.rows[NormalizeLabel(record[0])] = values
	}
	return ix, nil
}

// Values returns the cells stored under label, or width empty strings.
func (ix *Index) Values(label string) []string {
	if values, ok := ix.rows[label]; ok {
		return slices.Clone(values)
	}
	return make([]string, ix.width)
}

// Has reports whether label is present.
func (ix *Index) Has(label string) bool {
	_, ok := ix.rows[label]
	return ok
}

// Len returns the number of distinct labels.
func (ix *Index) Len() int {
	return len(ix.rows)
}

// Width returns the number of value cells per row.
func (ix *Index) Width() int {
	return ix.width
}

// Labels returns all labels in sorted order.
func (ix *Index) Labels() []string {
	labels := make([]string, 0, len(ix.rows))
	for label := range ix.rows {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}
