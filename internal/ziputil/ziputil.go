// Package ziputil opens the ZIP containers that host the XLSX, XLSB, and
// ODS formats, with member-name normalization for archives written by
// non-conforming producers.
package ziputil

import (
	"archive/zip"
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/flate"
)

// NewReader opens a ZIP archive from an in-memory or seekable byte source.
// The stock Deflate decompressor is replaced with klauspost/compress, which
// decodes the same streams measurably faster — spreadsheet parts are
// Deflate-heavy, so this applies to nearly every read.
func NewReader(r io.ReaderAt, size int64) (*zip.Reader, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, err
	}
	zr.RegisterDecompressor(zip.Deflate, func(r io.Reader) io.ReadCloser {
		return flate.NewReader(r)
	})
	return zr, nil
}

// Normalize maps a member name to the canonical lookup form: forward
// slashes, lower case, no leading slash.  Some third-party producers write
// backslash separators or unexpected casing.
func Normalize(name string) string {
	return strings.ToLower(strings.TrimPrefix(strings.ReplaceAll(name, `\`, "/"), "/"))
}

// Find returns the archive member whose normalized name equals the
// normalized want, or nil.
func Find(zr *zip.Reader, want string) *zip.File {
	want = Normalize(want)
	for _, f := range zr.File {
		if Normalize(f.Name) == want {
			return f
		}
	}
	return nil
}

// ReadFile reads the full contents of the named member.  The name is
// matched under Normalize.  A missing member or a failed read (including a
// decompressor checksum failure surfaced at close) returns a non-nil error.
func ReadFile(zr *zip.Reader, name string) ([]byte, error) {
	f := Find(zr, name)
	if f == nil {
		return nil, fmt.Errorf("%q not found in archive", name)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	data, readErr := io.ReadAll(rc)
	closeErr := rc.Close()
	if readErr != nil {
		return nil, readErr
	}
	if closeErr != nil {
		return nil, closeErr
	}
	return data, nil
}
