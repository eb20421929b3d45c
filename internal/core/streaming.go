package core

// streaming.go provides the reader stack every LVR file is parsed through.
//
// The open-data exports are UTF-8, sometimes with a leading byte-order mark
// written by Windows tooling. The BOM is dropped and any invalid UTF-8 is
// reported as encoding.ErrInvalidUTF8 instead of being patched over, so an
// undecodable file fails its unit rather than producing garbled records.

import (
	"io"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// NewDecodingReader wraps r with strict UTF-8 validation and BOM stripping.
//
// Validation runs first: the BOM bytes are themselves valid UTF-8, and the
// BOM-aware decoder would otherwise replace bad sequences with U+FFFD.
func NewDecodingReader(r io.Reader) io.Reader {
	return transform.NewReader(r, transform.Chain(
		encoding.UTF8Validator,
		unicode.UTF8BOM.NewDecoder(),
	))
}

// CountingReader wraps an io.Reader to track bytes read.
// Used to report how much of each file was consumed.
type CountingReader struct {
	reader    io.Reader
	BytesRead int64
}

// NewCountingReader creates a counting reader.
func NewCountingReader(r io.Reader) *CountingReader {
	return &CountingReader{reader: r}
}

// Read implements io.Reader.
func (r *CountingReader) Read(p []byte) (int, error) {
	n, err := r.reader.Read(p)
	r.BytesRead += int64(n)
	return n, err
}
