package bsreshape

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const testHeader = "구분,Jan-25A,Feb-25A,Mar-25A,Apr-25A,May-25A,Jun-25A,Jul-25A,Aug-25A,Sep-25A,Oct-25A,Nov-25F,24-Nov,Nov YoY (%),Dec-25F,24-Dec,Dec YoY (%)"

// sheetRow renders a label and up to ValueColumns cells as one CSV line.
func sheetRow(label string, values ...string) string {
	cells := make([]string, ValueColumns)
	copy(cells, values)

	var b strings.Builder
	w := csv.NewWriter(&b)
	_ = w.Write(append([]string{label}, cells...))
	w.Flush()
	return strings.TrimSuffix(b.String(), "\n")
}

// buildSheet lays rows out in the default geometry: a title, the header,
// primary rows padded with blank lines up to the secondary header, secondary
// rows, then a stale line that a rewrite must drop.
func buildSheet(t *testing.T, primary, secondary []string) string {
	t.Helper()

	require.LessOrEqual(t, len(primary), PrimaryEnd-PrimaryStart-1)
	require.LessOrEqual(t, len(secondary), SecondaryEnd-SecondaryStart)

	lines := []string{"재무상태표 (단위: 천원)", testHeader}
	lines = append(lines, primary...)
	for len(lines) < SecondaryHeaderLine {
		lines = append(lines, "")
	}
	lines = append(lines, testHeader)
	lines = append(lines, secondary...)
	for len(lines) < SecondaryEnd {
		lines = append(lines, "")
	}
	lines = append(lines, sheetRow("이전 행", "1"))

	return strings.Join(lines, "\n") + "\n"
}

// balanceSheet is a sheet holding every source row of the default recipe.
func balanceSheet(t *testing.T) string {
	t.Helper()

	tangible := make([]string, ValueColumns)
	tangible[0] = "1,000"
	tangible[NovYoYColumn] = "5.0%"
	tangible[DecYoYColumn] = "-3.2%"

	return buildSheet(t,
		[]string{
			sheetRow("(1) 매출채권", "1,200", "1,300"),
			sheetRow("(2) 재고자산", "500"),
			sheetRow("(3) 매입채무", "(300)"),
			sheetRow("현금", "100"),
			sheetRow("본사 차입금(원금)", "$2,000"),
			sheetRow("누적이익잉여금", "(1,500)"),
			sheetRow("선급비용", "40"),
			sheetRow("유형자산", tangible...),
			sheetRow("보증금", "250"),
			sheetRow("리스자산", "700"),
			sheetRow("유동리스부채", "(100)"),
			sheetRow("비유동리스부채", "(400)"),
		},
		[]string{
			sheetRow("운전자본", "1,400", "1,450"),
			sheetRow("현금성자산", "999"),
		},
	)
}

// loadString loads content as an uncompressed CSV document.
func loadString(t *testing.T, content string) *Document {
	t.Helper()

	doc, err := Load(strings.NewReader(content), CSV)
	require.NoError(t, err)
	return doc
}

// writeTemp writes content to name inside a fresh temporary directory.
func writeTemp(t *testing.T, name string, content []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, content, 0o644))
	return path
}

// blanks returns n empty cells.
func blanks(n int) []string {
	return make([]string, n)
}
