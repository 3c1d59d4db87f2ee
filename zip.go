// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/klauspost/compress/zstd"
)

// fileExtensionZip is the file extension for zip files.
const fileExtensionZip = "zip"

// magicBytesZip contains the magic bytes for a zip archive.
// reference: https://golang.org/pkg/archive/zip/
var magicBytesZip = [][]byte{
	{0x50, 0x4B, 0x03, 0x04},
}

// zipMethodZstd is the zip compression method id for zstandard, appnote
// section 4.4.5. The standard library does not register it, the jar
// toolchain of some distributions emits it.
const zipMethodZstd uint16 = 93

// isZip checks if data is a zip archive.
func isZip(data []byte) bool {
	return matchesMagicBytes(data, 0, magicBytesZip)
}

// matchesMagicBytes checks all possible magic bytes until a match is found
func matchesMagicBytes(data []byte, offset int, magicBytes [][]byte) bool {
	for _, mb := range magicBytes {
		if offset+len(mb) > len(data) {
			continue
		}
		if bytes.Equal(mb, data[offset:offset+len(mb)]) {
			return true
		}
	}
	return false
}

// ExtractArchive opens the container at src and extracts the selected
// logical subtrees to dst.
//
// A single top-level directory shared by all entries is stripped before
// classification. Entries outside the selected assets/ and data/ subtrees
// are skipped entirely. If the selection is empty, the container is not
// even opened and the call succeeds as a no-op. Unlike hashed extraction,
// any entry-level failure is fatal for the whole pass.
func ExtractArchive(ctx context.Context, src string, dst string, cfg *Config) error {

	// empty selection is defined as a no-op success
	if !cfg.Assets() && !cfg.Data() {
		return nil
	}

	// prepare telemetry data collection and emit
	td := &TelemetryData{ExtractedType: fileExtensionZip}
	defer cfg.TelemetryHook()(ctx, td)
	defer captureExtractionDuration(td, now())

	cfg.Logger().Info("extracting zip", "src", src)

	f, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("cannot open archive: %w", err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return fmt.Errorf("cannot stat archive: %w", err)
	}

	header := make([]byte, 4)
	if _, err := io.ReadFull(f, header); err != nil {
		return fmt.Errorf("cannot read archive header: %w", err)
	}
	if !isZip(header) {
		return fmt.Errorf("%w: %s", ErrNotAnArchive, src)
	}

	reader, err := zip.NewReader(f, stat.Size())
	if err != nil {
		return fmt.Errorf("cannot read archive %s: %w", src, err)
	}
	reader.RegisterDecompressor(zipMethodZstd, zstdDecompressor)

	return extractEntries(ctx, &zipWalker{zr: reader}, dst, cfg, td)
}

// zstdDecompressor adapts klauspost's zstd reader to the archive/zip
// decompressor contract.
func zstdDecompressor(r io.Reader) io.ReadCloser {
	zr, err := zstd.NewReader(r)
	if err != nil {
		return io.NopCloser(&errReader{err: err})
	}
	return zr.IOReadCloser()
}

// errReader fails every read with a fixed error.
type errReader struct {
	err error
}

func (r *errReader) Read([]byte) (int, error) {
	return 0, r.err
}

// zipWalker is a walker for zip files
type zipWalker struct {
	zr *zip.Reader
	fp int
}

// Type returns the file extension for zip files
func (z zipWalker) Type() string {
	return fileExtensionZip
}

// Next returns the next entry in the zip archive
func (z *zipWalker) Next() (archiveEntry, error) {
	if z.fp >= len(z.zr.File) {
		return nil, io.EOF
	}
	defer func() { z.fp++ }()
	return &zipEntry{z.zr.File[z.fp]}, nil
}

// zipEntry is an entry in a zip archive
type zipEntry struct {
	zf *zip.File
}

// Name returns the slash-separated name of the entry
func (z *zipEntry) Name() string {
	return z.zf.FileHeader.Name
}

// Size returns the uncompressed size of the entry
func (z *zipEntry) Size() int64 {
	return int64(z.zf.FileHeader.UncompressedSize64)
}

// Mode returns the mode of the entry
func (z *zipEntry) Mode() fs.FileMode {
	return z.zf.FileHeader.Mode()
}

// IsDir returns true if the entry is a directory
func (z *zipEntry) IsDir() bool {
	return z.zf.FileHeader.FileInfo().IsDir()
}

// Open returns a reader for the entry
func (z *zipEntry) Open() (io.ReadCloser, error) {
	return z.zf.Open()
}
