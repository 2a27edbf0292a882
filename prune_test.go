package bsreshape

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ulikunitz/xz"
)

const dashboard = "지표,1월,2월\n" +
	"방문자,\"1,200\",\"1,300\"\n" +
	"팝업_SEM광고비_네이버,10,20\n" +
	"전환율,1.5%,1.7%\n" +
	"팝업_SEM광고비_구글,30,40\n"

func TestPruneRows(t *testing.T) {
	t.Parallel()

	t.Run("removes matching lines", func(t *testing.T) {
		t.Parallel()

		doc := loadString(t, dashboard)

		out, removed, err := PruneRows(doc, "팝업_SEM광고비_")

		require.NoError(t, err)
		assert.Equal(t, 2, removed)
		assert.Equal(t, []string{"지표,1월,2월\n", "방문자,\"1,200\",\"1,300\"\n", "전환율,1.5%,1.7%\n"}, out.Lines)
		assert.Len(t, doc.Lines, 5)
	})

	t.Run("prefix must start the line", func(t *testing.T) {
		t.Parallel()

		doc := loadString(t, "메모,팝업_SEM광고비_네이버\n")

		out, removed, err := PruneRows(doc, "팝업_SEM광고비_")

		require.NoError(t, err)
		assert.Zero(t, removed)
		assert.Equal(t, doc.Lines, out.Lines)
	})

	t.Run("rejects an empty prefix", func(t *testing.T) {
		t.Parallel()

		_, _, err := PruneRows(loadString(t, dashboard), "")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "prefix cannot be empty")
	})
}

func TestPruneFile(t *testing.T) {
	t.Parallel()

	want := "지표,1월,2월\n방문자,\"1,200\",\"1,300\"\n전환율,1.5%,1.7%\n"

	t.Run("rewrites the file", func(t *testing.T) {
		t.Parallel()

		path := writeTemp(t, "dashboard-data.csv", []byte(dashboard))

		removed, err := PruneFile(path, "팝업_SEM광고비_", false)

		require.NoError(t, err)
		assert.Equal(t, 2, removed)
		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, want, string(got))
	})

	t.Run("dry run does not write", func(t *testing.T) {
		t.Parallel()

		path := writeTemp(t, "dashboard-data.csv", []byte(dashboard))

		removed, err := PruneFile(path, "팝업_SEM광고비_", true)

		require.NoError(t, err)
		assert.Equal(t, 2, removed)
		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, dashboard, string(got))
	})

	t.Run("nothing to remove leaves the file alone", func(t *testing.T) {
		t.Parallel()

		path := writeTemp(t, "dashboard-data.csv", []byte(want))
		before, err := os.Stat(path)
		require.NoError(t, err)

		removed, err := PruneFile(path, "팝업_SEM광고비_", false)

		require.NoError(t, err)
		assert.Zero(t, removed)
		after, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, before.ModTime(), after.ModTime())
	})

	t.Run("keeps xz compression", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w, err := xz.NewWriter(&buf)
		require.NoError(t, err)
		_, err = w.Write([]byte(dashboard))
		require.NoError(t, err)
		require.NoError(t, w.Close())
		path := writeTemp(t, "dashboard-data.csv.xz", buf.Bytes())

		_, err = PruneFile(path, "팝업_SEM광고비_", false)
		require.NoError(t, err)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		doc, err := Load(bytes.NewReader(data), CSVXZ)
		require.NoError(t, err)
		assert.Len(t, doc.Lines, 3)
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := PruneFile(t.TempDir()+"/missing.csv", "x", false)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read")
	})
}
