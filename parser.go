// Package bsreshape restructures a fixed-layout balance-sheet CSV file.
//
// The sheet is read fully into memory, its two data blocks are indexed by
// row label, and a new block of rows is built from a declarative [Recipe]:
// rows are copied, summed column by column, or emitted as blank placeholders.
// The document is then truncated after the secondary header line, the new
// rows are appended, and the file is rewritten.
//
// # Supported inputs
//
// CSV and TSV sheets, optionally compressed with gzip, bzip2, xz, zstd or lz4.
// The compression is detected from the file extension and the rewritten file
// uses the same codec (bzip2 can be read but not written). A UTF-8 byte-order
// mark is stripped on load and restored on write.
//
// # Example usage
//
//	f, _ := os.Open("balance-sheet.csv")
//	defer f.Close()
//	doc, err := bsreshape.Load(f, bsreshape.CSV)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := bsreshape.Transform(doc, bsreshape.DefaultRecipe(), bsreshape.DefaultLayout())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println("Appended rows:", len(result.Rows))
//
// # Value conversion
//
// Use [ParseValue] and [FormatValue] to convert between the sheet's textual
// amounts ("1,234", "(1,234)", "$500") and float64.
package bsreshape

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/tiendc/go-deepcopy"
)

// ErrUnsupportedFileType is returned when a file type cannot be read or written.
var ErrUnsupportedFileType = errors.New("unsupported file type")

// FileType represents supported file types including compression variants.
type FileType int

const (
	// CSV represents CSV file type.
	CSV FileType = iota
	// TSV represents TSV file type.
	TSV
	// XLSX represents Excel XLSX file type. Only used as an export target.
	XLSX
	// Parquet represents Apache Parquet file type. Only used as an export target.
	Parquet

	// CSVGZ represents gzip-compressed CSV file type.
	CSVGZ
	// CSVBZ2 represents bzip2-compressed CSV file type.
	CSVBZ2
	// CSVXZ represents xz-compressed CSV file type.
	CSVXZ
	// CSVZSTD represents zstd-compressed CSV file type.
	CSVZSTD
	// CSVLZ4 represents lz4-compressed CSV file type.
	CSVLZ4

	// TSVGZ represents gzip-compressed TSV file type.
	TSVGZ
	// TSVBZ2 represents bzip2-compressed TSV file type.
	TSVBZ2
	// TSVXZ represents xz-compressed TSV file type.
	TSVXZ
	// TSVZSTD represents zstd-compressed TSV file type.
	TSVZSTD
	// TSVLZ4 represents lz4-compressed TSV file type.
	TSVLZ4

	// Unsupported represents unsupported file type.
	Unsupported
)

// String returns a human-readable string representation of the FileType.
func (ft FileType) String() string {
	switch ft {
	case CSV:
		return "CSV"
	case TSV:
		return "TSV"
	case XLSX:
		return "XLSX"
	case Parquet:
		return "Parquet"
	case CSVGZ:
		return "CSV (gzip)"
	case CSVBZ2:
		return "CSV (bzip2)"
	case CSVXZ:
		return "CSV (xz)"
	case CSVZSTD:
		return "CSV (zstd)"
	case CSVLZ4:
		return "CSV (lz4)"
	case TSVGZ:
		return "TSV (gzip)"
	case TSVBZ2:
		return "TSV (bzip2)"
	case TSVXZ:
		return "TSV (xz)"
	case TSVZSTD:
		return "TSV (zstd)"
	case TSVLZ4:
		return "TSV (lz4)"
	default:
		return "Unsupported"
	}
}

// File extensions
const (
	ExtCSV     = ".csv"
	ExtTSV     = ".tsv"
	ExtXLSX    = ".xlsx"
	ExtParquet = ".parquet"
	ExtGZ      = ".gz"
	ExtBZ2     = ".bz2"
	ExtXZ      = ".xz"
	ExtZSTD    = ".zst"
	ExtLZ4     = ".lz4"
)

// Compression type identifiers
const (
	compGZ   = "gz"
	compBZ2  = "bz2"
	compXZ   = "xz"
	compZSTD = "zstd"
	compLZ4  = "lz4"
)

// DetectFileType detects file type from path extension, including compression variants.
func DetectFileType(path string) FileType {
	basePath := path
	var compressionType string

	lower := strings.ToLower(path)
	for _, c := range []struct {
		ext  string
		kind string
	}{
		{ExtGZ, compGZ},
		{ExtBZ2, compBZ2},
		{ExtXZ, compXZ},
		{ExtZSTD, compZSTD},
		{ExtLZ4, compLZ4},
	} {
		if strings.HasSuffix(lower, c.ext) {
			basePath = path[:len(path)-len(c.ext)]
			compressionType = c.kind
			break
		}
	}

	switch strings.ToLower(filepath.Ext(basePath)) {
	case ExtCSV:
		switch compressionType {
		case compGZ:
			return CSVGZ
		case compBZ2:
			return CSVBZ2
		case compXZ:
			return CSVXZ
		case compZSTD:
			return CSVZSTD
		case compLZ4:
			return CSVLZ4
		default:
			return CSV
		}
	case ExtTSV:
		switch compressionType {
		case compGZ:
			return TSVGZ
		case compBZ2:
			return TSVBZ2
		case compXZ:
			return TSVXZ
		case compZSTD:
			return TSVZSTD
		case compLZ4:
			return TSVLZ4
		default:
			return TSV
		}
	case ExtXLSX:
		if compressionType != "" {
			return Unsupported
		}
		return XLSX
	case ExtParquet:
		if compressionType != "" {
			return Unsupported
		}
		return Parquet
	default:
		return Unsupported
	}
}

// IsCompressed returns true if the file type is compressed.
func IsCompressed(ft FileType) bool {
	switch ft {
	case CSVGZ, CSVBZ2, CSVXZ, CSVZSTD, CSVLZ4,
		TSVGZ, TSVBZ2, TSVXZ, TSVZSTD, TSVLZ4:
		return true
	default:
		return false
	}
}

// BaseFileType returns the base file type without compression.
func BaseFileType(ft FileType) FileType {
	switch ft {
	case CSV, CSVGZ, CSVBZ2, CSVXZ, CSVZSTD, CSVLZ4:
		return CSV
	case TSV, TSVGZ, TSVBZ2, TSVXZ, TSVZSTD, TSVLZ4:
		return TSV
	case XLSX:
		return XLSX
	case Parquet:
		return Parquet
	default:
		return Unsupported
	}
}

// delimiterFor returns the field separator of a delimited file type.
func delimiterFor(ft FileType) (rune, error) {
	switch BaseFileType(ft) {
	case CSV:
		return ',', nil
	case TSV:
		return '\t', nil
	default:
		return 0, fmt.Errorf("%w: %s cannot be loaded as a sheet", ErrUnsupportedFileType, ft)
	}
}

var utf8BOM = []byte("\uFEFF")

// Document is a sheet held in memory as raw lines.
// Each line keeps its trailing "\n"; carriage returns are dropped on load.
type Document struct {
	// Lines contains the file content split after every newline.
	Lines []string
	// Delimiter is the field separator used by the sheet.
	Delimiter rune
	// FileType is the type the document was loaded as and will be encoded as.
	FileType FileType
	// BOM reports whether the source started with a UTF-8 byte-order mark.
	BOM bool
}

// Load reads a whole sheet from reader.
// The fileType parameter specifies the format and compression of the data.
//
// Example:
//
//	f, _ := os.Open("balance-sheet.csv.gz")
//	defer f.Close()
//	doc, err := bsreshape.Load(f, bsreshape.CSVGZ)
func Load(reader io.Reader, fileType FileType) (doc *Document, err error) {
	if reader == nil {
		return nil, errors.New("reader cannot be nil")
	}

	delimiter, err := delimiterFor(fileType)
	if err != nil {
		return nil, err
	}

	decompressedReader, closeFunc, decompErr := createDecompressedReader(reader, fileType)
	if decompErr != nil {
		return nil, fmt.Errorf("failed to decompress: %w", decompErr)
	}
	if closeFunc != nil {
		defer func() {
			if closeErr := closeFunc(); closeErr != nil && err == nil {
				err = fmt.Errorf("failed to close decompressor: %w", closeErr)
			}
		}()
	}

	content, err := io.ReadAll(decompressedReader)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", fileType, err)
	}

	hasBOM := bytes.HasPrefix(content, utf8BOM)
	content = bytes.TrimPrefix(content, utf8BOM)

	return &Document{
		Lines:     splitLines(string(content)),
		Delimiter: delimiter,
		FileType:  fileType,
		BOM:       hasBOM,
	}, nil
}

// splitLines splits content the way a line-oriented reader sees it:
// every element ends in "\n" except possibly the last one.
func splitLines(content string) []string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	if content == "" {
		return []string{}
	}
	lines := strings.SplitAfter(content, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// Clone returns a deep copy of the document.
func (d *Document) Clone() (*Document, error) {
	var out Document
	if err := deepcopy.Copy(&out, *d); err != nil {
		return nil, fmt.Errorf("failed to copy document: %w", err)
	}
	return &out, nil
}

// Record parses line i of the document into cells.
// Blank lines yield a nil record.
func (d *Document) Record(i int) ([]string, error) {
	if i < 0 || i >= len(d.Lines) {
		return nil, fmt.Errorf("line %d is out of range (document has %d lines)", i+1, len(d.Lines))
	}
	record, err := parseRecord(d.Lines[i], d.Delimiter)
	if err != nil {
		return nil, fmt.Errorf("failed to parse line %d: %w", i+1, err)
	}
	return record, nil
}

// parseRecord parses a single delimited line.
func parseRecord(line string, delimiter rune) ([]string, error) {
	csvReader := csv.NewReader(strings.NewReader(line))
	csvReader.Comma = delimiter
	csvReader.FieldsPerRecord = -1
	csvReader.LazyQuotes = true

	record, err := csvReader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return record, nil
}

// validateColumnNames checks for duplicate column names.
func validateColumnNames(columns []string) error {
	seen := make(map[string]bool, len(columns))
	for _, col := range columns {
		if seen[col] {
			return fmt.Errorf("duplicate column name: %s", col)
		}
		seen[col] = true
	}
	return nil
}
