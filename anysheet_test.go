package anysheet_test

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/skiftan/anysheet"
	"github.com/skiftan/anysheet/internal/xlsbtest"
	"github.com/skiftan/anysheet/value"

	_ "github.com/skiftan/anysheet/xlsb" // registers the xlsb decoder
)

func fixtureBytes() []byte {
	part := xlsbtest.NewSheetBuilder().
		Row(0).
		Float(0, 0, 42).
		SharedString(1, 0, 0).
		Bytes()
	return (&xlsbtest.Fixture{
		Sheets:        []xlsbtest.Sheet{{Name: "TestSheet", Part: part}},
		SharedStrings: []string{"hello"},
	}).Bytes()
}

func TestOpenBytesDetectsXlsb(t *testing.T) {
	wb, err := anysheet.OpenBytes(fixtureBytes())
	if err != nil {
		t.Fatalf("OpenBytes: %v", err)
	}
	defer wb.Close()

	if wb.Format() != anysheet.FormatXlsb {
		t.Errorf("Format() = %v, want %v", wb.Format(), anysheet.FormatXlsb)
	}
	if got := wb.SheetNames(); !slices.Equal(got, []string{"TestSheet"}) {
		t.Errorf("SheetNames() = %v", got)
	}
	if wb.Metadata().Len() != 1 {
		t.Errorf("Metadata().Len() = %d", wb.Metadata().Len())
	}

	rng, err := wb.WorksheetRange("TestSheet")
	if err != nil {
		t.Fatalf("WorksheetRange: %v", err)
	}
	if v, _ := rng.Get(0, 0); v != value.NewFloat(42) {
		t.Errorf("Get(0, 0) = %v", v)
	}
	if v, _ := rng.Get(0, 1); v != value.NewString("hello") {
		t.Errorf("Get(0, 1) = %v", v)
	}

	rng2, err := wb.WorksheetRangeAt(0)
	if err != nil {
		t.Fatalf("WorksheetRangeAt: %v", err)
	}
	if rng2.CellCount() != rng.CellCount() {
		t.Errorf("by-index range has %d cells, by-name has %d", rng2.CellCount(), rng.CellCount())
	}
}

func TestOpenFile(t *testing.T) {
	name := filepath.Join(t.TempDir(), "book.xlsb")
	if err := os.WriteFile(name, fixtureBytes(), 0o644); err != nil {
		t.Fatal(err)
	}

	wb, err := anysheet.Open(name)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if wb.Format() != anysheet.FormatXlsb {
		t.Errorf("Format() = %v", wb.Format())
	}
	if err := wb.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}

func TestOpenMissingFileIsIoError(t *testing.T) {
	_, err := anysheet.Open(filepath.Join(t.TempDir(), "no-such-file.xlsb"))
	var e *anysheet.Error
	if !errors.As(err, &e) {
		t.Fatalf("error type %T, want *Error", err)
	}
	if !e.IsIo() {
		t.Errorf("IsIo() = false: %v", e)
	}
}

func TestOpenBytesUnrecognizedFormat(t *testing.T) {
	_, err := anysheet.OpenBytes([]byte("INVALID! this is no spreadsheet"))
	var e *anysheet.Error
	if !errors.As(err, &e) {
		t.Fatalf("error type %T, want *Error", err)
	}
	if !e.IsMsg() {
		t.Errorf("IsMsg() = false: %v", e)
	}
}

func TestOpenBytesNoDecoderRegistered(t *testing.T) {
	// An xlsx archive detects fine but only the xlsb decoder is linked in.
	data := buildZip(t, "[Content_Types].xml", "xl/workbook.xml")
	_, err := anysheet.OpenBytes(data)
	var e *anysheet.Error
	if !errors.As(err, &e) {
		t.Fatalf("error type %T, want *Error", err)
	}
	msg, ok := e.Msg()
	if !ok {
		t.Fatalf("Msg() not ok: %v", e)
	}
	if !strings.HasPrefix(msg, "no decoder registered for xlsx") {
		t.Errorf("Msg() = %q", msg)
	}
}

func TestOpenBytesOle2Garbage(t *testing.T) {
	data := append([]byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}, make([]byte, 64)...)
	_, err := anysheet.OpenBytes(data)
	var e *anysheet.Error
	if !errors.As(err, &e) {
		t.Fatalf("error type %T, want *Error", err)
	}
	// The compound-file probe's typed error survives the unification.
	var xlsErr *anysheet.XlsError
	if !errors.As(err, &xlsErr) {
		t.Fatalf("wrapped error not recoverable: %v", err)
	}
}

func TestSheetNotFoundPassesThrough(t *testing.T) {
	wb, err := anysheet.OpenBytes(fixtureBytes())
	if err != nil {
		t.Fatalf("OpenBytes: %v", err)
	}
	defer wb.Close()

	_, err = wb.WorksheetRange("Nope")
	var nf *anysheet.SheetNotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("error type %T, want *SheetNotFoundError", err)
	}
	var e *anysheet.Error
	if errors.As(err, &e) {
		t.Error("sheet lookup failure was generalized to *Error")
	}
}

func TestWorksheetRangeRefThroughFacade(t *testing.T) {
	wb, err := anysheet.OpenBytes(fixtureBytes())
	if err != nil {
		t.Fatalf("OpenBytes: %v", err)
	}
	defer wb.Close()

	rng, err := wb.WorksheetRangeRef("TestSheet")
	if err != nil {
		t.Fatalf("WorksheetRangeRef: %v", err)
	}
	v, _ := rng.Get(0, 1)
	if !v.IsSharedString() {
		t.Errorf("shared cell = %v, want SharedString", v)
	}
}
