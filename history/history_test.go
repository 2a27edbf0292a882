package history

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open(filepath.Join(t.TempDir(), "data", "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestOpen(t *testing.T) {
	t.Parallel()

	t.Run("creates the database and its directory", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "nested", "dir", "history.db")

		store, err := Open(path)
		require.NoError(t, err)
		defer store.Close()

		assert.Equal(t, path, store.Path())
		_, err = os.Stat(path)
		assert.NoError(t, err)
	})

	t.Run("reopens an existing database", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "history.db")
		first, err := Open(path)
		require.NoError(t, err)
		require.NoError(t, first.Record(context.Background(), Run{File: "sheet.csv", Checksum: "abc"}))
		require.NoError(t, first.Close())

		second, err := Open(path)
		require.NoError(t, err)
		defer second.Close()

		runs, err := second.Runs(context.Background(), "")
		require.NoError(t, err)
		assert.Len(t, runs, 1)
	})
}

func TestStore_Guard(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := openStore(t)
	output := []byte("구분,Jan-25A\n현금,100\n")

	require.NoError(t, store.Guard(ctx, "sheet.csv", output))
	require.NoError(t, store.Record(ctx, Run{File: "sheet.csv", Checksum: Checksum(output), Rows: 17, Unresolved: 6}))

	t.Run("rejects recorded output", func(t *testing.T) {
		t.Parallel()

		err := store.Guard(ctx, "sheet.csv", output)

		require.ErrorIs(t, err, ErrAlreadyApplied)
		assert.Contains(t, err.Error(), "sheet.csv")
	})

	t.Run("accepts changed content", func(t *testing.T) {
		t.Parallel()

		assert.NoError(t, store.Guard(ctx, "sheet.csv", append([]byte("edited\n"), output...)))
	})

	t.Run("is scoped to the file", func(t *testing.T) {
		t.Parallel()

		assert.NoError(t, store.Guard(ctx, "other.csv", output))
	})

	t.Run("resolves relative paths", func(t *testing.T) {
		t.Parallel()

		abs, err := filepath.Abs("sheet.csv")
		require.NoError(t, err)

		produced, err := store.Produced(ctx, abs, Checksum(output))

		require.NoError(t, err)
		assert.True(t, produced)
	})
}

func TestStore_Runs(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := openStore(t)
	base := time.Date(2025, 12, 1, 9, 0, 0, 0, time.UTC)

	require.NoError(t, store.Record(ctx, Run{File: "a.csv", Checksum: "1", Rows: 17, RanAt: base}))
	require.NoError(t, store.Record(ctx, Run{File: "b.csv", Checksum: "2", Rows: 17, RanAt: base.Add(time.Hour)}))
	require.NoError(t, store.Record(ctx, Run{File: "a.csv", Checksum: "3", Rows: 17, Unresolved: 6, RanAt: base.Add(2 * time.Hour)}))

	t.Run("newest first", func(t *testing.T) {
		t.Parallel()

		runs, err := store.Runs(ctx, "")

		require.NoError(t, err)
		require.Len(t, runs, 3)
		assert.Equal(t, []string{"3", "2", "1"}, []string{runs[0].Checksum, runs[1].Checksum, runs[2].Checksum})
		assert.True(t, runs[0].RanAt.Equal(base.Add(2*time.Hour)))
		assert.Equal(t, 6, runs[0].Unresolved)
	})

	t.Run("filtered by file", func(t *testing.T) {
		t.Parallel()

		runs, err := store.Runs(ctx, "a.csv")

		require.NoError(t, err)
		require.Len(t, runs, 2)
		abs, err := filepath.Abs("a.csv")
		require.NoError(t, err)
		for _, run := range runs {
			assert.Equal(t, abs, run.File)
		}
	})

	t.Run("unknown file", func(t *testing.T) {
		t.Parallel()

		runs, err := store.Runs(ctx, "missing.csv")

		require.NoError(t, err)
		assert.Empty(t, runs)
	})
}

func TestStore_Record_DefaultsTime(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := openStore(t)
	before := time.Now().Add(-time.Second)

	require.NoError(t, store.Record(ctx, Run{File: "sheet.csv", Checksum: "x"}))

	runs, err := store.Runs(ctx, "sheet.csv")
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.True(t, runs[0].RanAt.After(before))
	assert.NotZero(t, runs[0].ID)
}

func TestChecksum(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", Checksum(nil))
	assert.Len(t, Checksum([]byte("현금,100\n")), 64)
	assert.NotEqual(t, Checksum([]byte("a")), Checksum([]byte("b")))
}
