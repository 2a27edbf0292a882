package bsreshape

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"
)

// PruneRows returns a copy of doc without the lines that start with prefix,
// and the number of lines removed. doc itself is not modified.
func PruneRows(doc *Document, prefix string) (*Document, int, error) {
	if prefix == "" {
		return nil, 0, errors.New("prefix cannot be empty")
	}

	out, err := doc.Clone()
	if err != nil {
		return nil, 0, err
	}

	kept := out.Lines[:0]
	for _, line := range out.Lines {
		if strings.HasPrefix(line, prefix) {
			continue
		}
		kept = append(kept, line)
	}
	removed := len(out.Lines) - len(kept)
	out.Lines = kept
	return out, removed, nil
}

// PruneFile removes the lines starting with prefix from the sheet at path.
// Unless dryRun is set, path is rewritten in the same format and compression
// when at least one line was removed.
func PruneFile(path, prefix string, dryRun bool) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read %s: %w", path, err)
	}

	doc, err := Load(bytes.NewReader(data), DetectFileType(path))
	if err != nil {
		return 0, err
	}

	pruned, removed, err := PruneRows(doc, prefix)
	if err != nil {
		return 0, err
	}
	if removed == 0 || dryRun {
		return removed, nil
	}

	encoded, err := pruned.Encode()
	if err != nil {
		return 0, err
	}
	if err := WriteFile(path, encoded); err != nil {
		return 0, err
	}
	return removed, nil
}
