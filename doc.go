// Package anysheet is a multi-format spreadsheet reading engine: given the
// raw bytes of an XLSX, XLS, XLSB, or ODS file it yields typed, randomly
// addressable cell data organized into sheets and ranges, without any
// vendor library.
//
// # Quick start
//
//	import (
//	    "github.com/skiftan/anysheet"
//	    _ "github.com/skiftan/anysheet/xlsb" // link the XLSB decoder
//	)
//
//	wb, err := anysheet.Open("Book1.xlsb")
//	if err != nil { ... }
//	defer wb.Close()
//
//	fmt.Println(wb.SheetNames()) // ["Sheet1", "Sheet2"]
//
//	rng, err := wb.WorksheetRange("Sheet1")
//	if err != nil { ... }
//
//	for pos, v := range rng.Cells() {
//	    fmt.Printf("%v = %v\n", pos, v)
//	}
//
// # Architecture
//
// This package is the format-agnostic core: the [value.Data] cell value
// model, the [grid.Range] container, format detection, the error taxonomy,
// and the [Reader] contract that concrete decoders implement.  Decoders
// plug in through [RegisterDecoder]; the [xlsb] subpackage ships one, and
// decoders for the other formats satisfy the same contract from outside
// this module.
//
// # Format detection
//
// [Detect] classifies a file from its first 8 bytes alone.  That prefix is
// a first-pass filter, not a guarantee: the ZIP signature is shared by
// XLSX, XLSB, and ODS, and the OLE2 signature is shared by legacy
// workbooks, encrypted workbooks, and VBA-only containers.  [DetectArchive]
// and [DetectCompound] perform the container-aware second pass, and
// [Open]/[OpenReader]/[OpenBytes] chain both passes before choosing a
// decoder.
//
// # Values and dates
//
// Cell values are a closed sum type ([value.Data]); numeric coercions are
// explicit and fail closed.  Excel stores dates as floating-point serial
// numbers — [value.ExcelDateTime] carries the raw serial together with the
// workbook's 1904-epoch flag, and converts to [time.Time] or
// [time.Duration] on request.
//
// # Errors
//
// Decode failures carry their format's typed error ([XlsxError],
// [XlsError], [XlsbError], [OdsError], [VbaError], [DeError]) wrapped
// losslessly in the unifying [Error]; branch on them with errors.As.
// Requesting a sheet that does not exist is a [SheetNotFoundError],
// deliberately separate from the decode-failure classes.
package anysheet
