package dumpfile

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// PlainReader reads uncompressed XML dumps
type PlainReader struct{}

// Extension returns the reader suffix
func (PlainReader) Extension() string {
	return ".xml"
}

// ReadText implements the Reader interface
func (PlainReader) ReadText(ctx context.Context, path string) (string, error) {
	return readFile(ctx, path, func(r io.Reader) (io.ReadCloser, error) {
		return io.NopCloser(r), nil
	})
}

// GzipReader reads gzip compressed dumps, the format the dumps are published in
type GzipReader struct{}

// Extension returns the reader suffix
func (GzipReader) Extension() string {
	return ".xml.gz"
}

// ReadText implements the Reader interface
func (GzipReader) ReadText(ctx context.Context, path string) (string, error) {
	return readFile(ctx, path, func(r io.Reader) (io.ReadCloser, error) {
		zr, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("failed to open gzip stream: %w", err)
		}
		return zr, nil
	})
}

// ZstdReader reads zstd recompressed dumps
type ZstdReader struct{}

// Extension returns the reader suffix
func (ZstdReader) Extension() string {
	return ".xml.zst"
}

// ReadText implements the Reader interface
func (ZstdReader) ReadText(ctx context.Context, path string) (string, error) {
	return readFile(ctx, path, func(r io.Reader) (io.ReadCloser, error) {
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("failed to open zstd stream: %w", err)
		}
		return dec.IOReadCloser(), nil
	})
}

// readFile opens path, wraps it with the decompressor and reads it whole
func readFile(ctx context.Context, path string, wrap func(io.Reader) (io.ReadCloser, error)) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open dump: %w", err)
	}
	defer f.Close()

	rc, err := wrap(f)
	if err != nil {
		return "", err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return "", fmt.Errorf("failed to decompress dump: %w", err)
	}
	return string(data), nil
}
