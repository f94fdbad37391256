package ziputil_test

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/skiftan/anysheet/internal/ziputil"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"xl/workbook.bin", "xl/workbook.bin"},
		{"XL/Workbook.BIN", "xl/workbook.bin"},
		{`xl\worksheets\sheet1.bin`, "xl/worksheets/sheet1.bin"},
		{"/content.xml", "content.xml"},
		{"", ""},
	}
	for _, tc := range tests {
		if got := ziputil.Normalize(tc.in); got != tc.want {
			t.Errorf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

// buildArchive writes members with the Deflate method so reads exercise
// the registered decompressor.
func buildArchive(t *testing.T, members map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range members {
		w, err := zw.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Deflate})
		if err != nil {
			t.Fatalf("zip create %s: %v", name, err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("zip write %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("zip close: %v", err)
	}
	return buf.Bytes()
}

func TestFindAndReadFile(t *testing.T) {
	data := buildArchive(t, map[string]string{
		`XL\Workbook.bin`: "workbook bytes",
		"mimetype":        "application/x-test",
	})
	zr, err := ziputil.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}

	// Lookup normalizes both sides.
	if f := ziputil.Find(zr, "xl/workbook.bin"); f == nil {
		t.Fatal("Find missed a member with backslash separators")
	}
	if f := ziputil.Find(zr, "xl/styles.bin"); f != nil {
		t.Errorf("Find invented member %q", f.Name)
	}

	got, err := ziputil.ReadFile(zr, "xl/workbook.bin")
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(got) != "workbook bytes" {
		t.Errorf("ReadFile = %q", got)
	}

	if _, err := ziputil.ReadFile(zr, "missing.bin"); err == nil {
		t.Error("ReadFile of missing member succeeded")
	}
}

func TestNewReaderRejectsNonZip(t *testing.T) {
	data := []byte("plainly not a zip archive")
	if _, err := ziputil.NewReader(bytes.NewReader(data), int64(len(data))); err == nil {
		t.Fatal("NewReader accepted non-ZIP bytes")
	}
}
