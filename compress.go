package bsreshape

import (
	"compress/bzip2"
	"compress/gzip"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/ulikunitz/xz"
)

// createDecompressedReader wraps the reader with appropriate decompression.
func createDecompressedReader(reader io.Reader, fileType FileType) (io.Reader, func() error, error) {
	switch fileType {
	case CSVGZ, TSVGZ:
		gzReader, err := gzip.NewReader(reader)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		return gzReader, func() error { return gzReader.Close() }, nil

	case CSVBZ2, TSVBZ2:
		return bzip2.NewReader(reader), nil, nil

	case CSVXZ, TSVXZ:
		xzReader, err := xz.NewReader(reader)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create xz reader: %w", err)
		}
		return xzReader, nil, nil

	case CSVZSTD, TSVZSTD:
		decoder, err := zstd.NewReader(reader)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create zstd reader: %w", err)
		}
		return decoder, func() error { decoder.Close(); return nil }, nil

	case CSVLZ4, TSVLZ4:
		return lz4.NewReader(reader), nil, nil

	default:
		// No compression
		return reader, nil, nil
	}
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

// createCompressedWriter wraps the writer with the codec matching fileType.
// Closing the returned writer flushes the codec but never closes w.
func createCompressedWriter(w io.Writer, fileType FileType) (io.WriteCloser, error) {
	switch fileType {
	case CSVGZ, TSVGZ:
		return gzip.NewWriter(w), nil

	case CSVBZ2, TSVBZ2:
		return nil, fmt.Errorf("%w: bzip2 output is not supported", ErrUnsupportedFileType)

	case CSVXZ, TSVXZ:
		xzWriter, err := xz.NewWriter(w)
		if err != nil {
			return nil, fmt.Errorf("failed to create xz writer: %w", err)
		}
		return xzWriter, nil

	case CSVZSTD, TSVZSTD:
		encoder, err := zstd.NewWriter(w)
		if err != nil {
			return nil, fmt.Errorf("failed to create zstd writer: %w", err)
		}
		return encoder, nil

	case CSVLZ4, TSVLZ4:
		return lz4.NewWriter(w), nil

	default:
		return nopWriteCloser{w}, nil
	}
}
