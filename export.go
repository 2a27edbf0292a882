package bsreshape

import (
	"bytes"
	"fmt"
)

// RenderExport renders the appended block of result in the format implied
// by path's extension (.xlsx or .parquet) without writing anything.
func RenderExport(path string, result *Result, layout Layout) ([]byte, error) {
	var buf bytes.Buffer

	switch ft := DetectFileType(path); ft {
	case XLSX:
		if err := ExportXLSX(&buf, result.Header, result.Rows, layout); err != nil {
			return nil, err
		}
	case Parquet:
		if err := ExportParquet(&buf, result.Header, result.Rows); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: cannot export to %s", ErrUnsupportedFileType, path)
	}
	return buf.Bytes(), nil
}

// Export renders the appended block of result and writes it to path.
func Export(path string, result *Result, layout Layout) error {
	data, err := RenderExport(path, result, layout)
	if err != nil {
		return err
	}
	return WriteFile(path, data)
}
