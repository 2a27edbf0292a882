package bsreshape

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// AppendRows returns a copy of doc cut after its first keep lines, followed
// by one line per row and a trailing blank line. doc itself is not modified.
func AppendRows(doc *Document, keep int, rows []Row) (*Document, error) {
	if keep > len(doc.Lines) {
		return nil, fmt.Errorf("cannot keep %d lines of a %d-line document", keep, len(doc.Lines))
	}

	out, err := doc.Clone()
	if err != nil {
		return nil, err
	}
	out.Lines = out.Lines[:keep]
	if last := len(out.Lines) - 1; last >= 0 && !strings.HasSuffix(out.Lines[last], "\n") {
		out.Lines[last] += "\n"
	}

	for _, row := range rows {
		line, err := formatRow(row, doc.Delimiter)
		if err != nil {
			return nil, err
		}
		out.Lines = append(out.Lines, line)
	}
	out.Lines = append(out.Lines, "\n")
	return out, nil
}

// formatRow renders label and values as one delimited line ending in "\n".
// Cells holding the delimiter (such as "1,234") are quoted.
func formatRow(row Row, delimiter rune) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Comma = delimiter

	record := make([]string, 0, 1+len(row.Values))
	record = append(record, row.Label)
	record = append(record, row.Values...)
	if err := w.Write(record); err != nil {
		return "", fmt.Errorf("failed to format row %q: %w", row.Label, err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("failed to format row %q: %w", row.Label, err)
	}
	return buf.String(), nil
}

// Encode renders the document, restoring the byte-order mark and
// recompressing with the codec of its file type.
func (d *Document) Encode() ([]byte, error) {
	var buf bytes.Buffer
	w, err := createCompressedWriter(&buf, d.FileType)
	if err != nil {
		return nil, err
	}

	if d.BOM {
		if _, err := w.Write(utf8BOM); err != nil {
			return nil, fmt.Errorf("failed to write byte-order mark: %w", err)
		}
	}
	for _, line := range d.Lines {
		if _, err := w.Write([]byte(line)); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", d.FileType, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to close compressor: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteFile replaces path with data.
// The content goes to a temporary file in the same directory first, which is
// then renamed over path, so readers never observe a partial sheet.
func WriteFile(path string, data []byte) (err error) {
	perm := os.FileMode(0o644)
	if info, statErr := os.Stat(path); statErr == nil {
		perm = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temporary file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), perm); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}
