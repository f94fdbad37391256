package anysheet

import (
	"bytes"
	"io"

	"github.com/richardlehane/mscfb"

	"github.com/skiftan/anysheet/internal/ziputil"
)

// FileFormat identifies a spreadsheet container format, or the lack of a
// recognized one.
type FileFormat uint8

const (
	// FormatUnknown means no format could be determined (yet).  For ZIP
	// containers it is the legitimate first-pass verdict: the signature
	// alone cannot separate XLSX from ODS.
	FormatUnknown FileFormat = iota
	// FormatXls is a legacy binary workbook in an OLE2 compound file.
	FormatXls
	// FormatXlsx is an OOXML workbook in a ZIP container.
	FormatXlsx
	// FormatXlsb is an OOXML binary workbook in a ZIP container.
	FormatXlsb
	// FormatOds is an OpenDocument spreadsheet in a ZIP container.
	FormatOds
)

// String returns the conventional file extension, or "unknown".
func (f FileFormat) String() string {
	switch f {
	case FormatXls:
		return "xls"
	case FormatXlsx:
		return "xlsx"
	case FormatXlsb:
		return "xlsb"
	case FormatOds:
		return "ods"
	}
	return "unknown"
}

// Container signatures.
var (
	// ole2Signature is the OLE2 compound-file header magic.
	ole2Signature = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}
	// zipSignature is the ZIP local-file-header magic.
	zipSignature = []byte("PK\x03\x04")
)

// PeekSize is the number of leading bytes Detect needs.
const PeekSize = 8

// Detect classifies a file from its leading bytes alone.  It is a pure
// first-pass filter, never claiming certainty the prefix cannot back up:
//
//   - the OLE2 compound-file signature yields the FormatXls candidate —
//     the same container also hosts VBA-only and encrypted workbooks,
//     which only opening the compound file can tell apart (DetectCompound);
//   - the ZIP signature yields FormatUnknown — ZIP hosts XLSX, XLSB, and
//     ODS alike, and only the archive's members can disambiguate
//     (DetectArchive);
//   - anything else, including a prefix shorter than PeekSize, yields
//     FormatUnknown.
func Detect(prefix []byte) FileFormat {
	if bytes.HasPrefix(prefix, ole2Signature) {
		return FormatXls
	}
	return FormatUnknown
}

// DetectArchive performs the second, archive-aware detection pass for ZIP
// containers: it opens the archive and classifies it by its marker member.
// Member names are matched case-insensitively with separators normalized,
// tolerating non-conforming producers.
//
// A byte source that is not a readable ZIP archive yields an error; an
// archive with none of the marker members yields FormatUnknown with a nil
// error.
func DetectArchive(r io.ReaderAt, size int64) (FileFormat, error) {
	zr, err := ziputil.NewReader(r, size)
	if err != nil {
		return FormatUnknown, err
	}
	switch {
	case ziputil.Find(zr, "xl/workbook.xml") != nil:
		return FormatXlsx, nil
	case ziputil.Find(zr, "xl/workbook.bin") != nil:
		return FormatXlsb, nil
	case ziputil.Find(zr, "content.xml") != nil:
		return FormatOds, nil
	}
	return FormatUnknown, nil
}

// Compound-file stream and storage names of interest.
const (
	cfbStreamWorkbook  = "workbook" // BIFF8
	cfbStreamBook      = "book"     // BIFF5/7
	cfbStreamEncrypted = "encryptedpackage"
	cfbStorageVBA      = "vba"
	cfbStorageMacros   = "macros"
)

// DetectCompound performs the second detection pass for OLE2 compound
// files: it opens the container and arbitrates between the formats that
// share the signature.
//
//   - a Workbook or Book stream confirms FormatXls;
//   - an EncryptedPackage stream is an Office-encrypted workbook, reported
//     as an *XlsError with kind ErrPassword;
//   - a VBA project with no workbook stream is a macro-only container,
//     reported as a *VbaError with kind ErrMissingPart;
//   - anything else is an *XlsError with kind ErrMissingPart.
func DetectCompound(ra io.ReaderAt) (FileFormat, error) {
	doc, err := mscfb.New(ra)
	if err != nil {
		return FormatUnknown, &XlsError{Kind: ErrBadSignature, Detail: "not an OLE2 compound file", Err: err}
	}
	var names []string
	for entry, err := doc.Next(); err == nil; entry, err = doc.Next() {
		names = append(names, entry.Name)
	}
	return classifyCompound(names)
}

// classifyCompound applies the DetectCompound decision table to the
// container's entry names.
func classifyCompound(names []string) (FileFormat, error) {
	var hasWorkbook, hasEncrypted, hasVBA bool
	for _, name := range names {
		switch ziputil.Normalize(name) {
		case cfbStreamWorkbook, cfbStreamBook:
			hasWorkbook = true
		case cfbStreamEncrypted:
			hasEncrypted = true
		case cfbStorageVBA, cfbStorageMacros, "_vba_project_cur":
			hasVBA = true
		}
	}
	switch {
	case hasWorkbook:
		return FormatXls, nil
	case hasEncrypted:
		return FormatUnknown, &XlsError{Kind: ErrPassword, Detail: "workbook is encrypted"}
	case hasVBA:
		return FormatUnknown, &VbaError{Kind: ErrMissingPart, Detail: "VBA project with no workbook stream"}
	default:
		return FormatUnknown, &XlsError{Kind: ErrMissingPart, Detail: "no workbook stream in compound file"}
	}
}
