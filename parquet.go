package bsreshape

import (
	"errors"
	"fmt"
	"io"

	"github.com/apache/arrow/go/v17/arrow"
	"github.com/apache/arrow/go/v17/arrow/array"
	"github.com/apache/arrow/go/v17/arrow/memory"
	"github.com/apache/arrow/go/v17/parquet"
	"github.com/apache/arrow/go/v17/parquet/pqarrow"
)

// parquetChunkSize is the row group size used when writing Parquet.
const parquetChunkSize = 1024

// ExportParquet writes header and rows as a Parquet file with one string
// column per header cell. Cells are kept exactly as formatted in the sheet.
func ExportParquet(w io.Writer, header []string, rows []Row) error {
	if len(header) == 0 {
		return errors.New("no headers to export")
	}
	if err := validateColumnNames(header); err != nil {
		return err
	}

	fields := make([]arrow.Field, len(header))
	for i, name := range header {
		fields[i] = arrow.Field{Name: name, Type: arrow.BinaryTypes.String}
	}
	schema := arrow.NewSchema(fields, nil)

	pool := memory.NewGoAllocator()
	builders := make([]*array.StringBuilder, len(header))
	for i := range builders {
		builders[i] = array.NewStringBuilder(pool)
		defer builders[i].Release()
	}

	for _, row := range rows {
		builders[0].Append(row.Label)
		for i := 1; i < len(builders); i++ {
			if i-1 < len(row.Values) {
				builders[i].Append(row.Values[i-1])
			} else {
				builders[i].Append("")
			}
		}
	}

	columns := make([]arrow.Array, len(builders))
	for i, b := range builders {
		columns[i] = b.NewArray()
		defer columns[i].Release()
	}

	record := array.NewRecord(schema, columns, int64(len(rows)))
	defer record.Release()

	table := array.NewTableFromRecords(schema, []arrow.Record{record})
	defer table.Release()

	props := parquet.NewWriterProperties()
	arrProps := pqarrow.DefaultWriterProps()
	if err := pqarrow.WriteTable(table, w, parquetChunkSize, props, arrProps); err != nil {
		return fmt.Errorf("failed to write parquet: %w", err)
	}
	return nil
}
