package anysheet

import (
	"io"
	"sync"

	"github.com/skiftan/anysheet/grid"
	"github.com/skiftan/anysheet/value"
)

// Reader is the contract every concrete format decoder implements.  A
// Reader session owns its Metadata and any shared-string state for the
// session's lifetime.
//
// WorksheetRange and WorksheetRangeAt return the sheet's cells as a range
// of owned values; a sheet name or index that does not exist yields a
// *SheetNotFoundError.  Decode failures are reported as the decoder's own
// format-specific error type, never a bare string.
type Reader interface {
	// Metadata returns the workbook's sheet list in tab order.
	Metadata() *Metadata
	// SheetNames returns the sheet names in tab order.
	SheetNames() []string
	// WorksheetRange returns the named sheet's cells.
	WorksheetRange(name string) (*grid.Range[value.Data], error)
	// WorksheetRangeAt returns the cells of the sheet at the given
	// zero-based tab position.
	WorksheetRangeAt(idx int) (*grid.Range[value.Data], error)
}

// ReaderRef extends Reader with by-reference access for decoders that keep
// a shared-string table: the returned cells may share the table's entries
// instead of copying them.  The range is valid only while the decoder
// session exists; value.DataRef.ToData lifts individual values out of that
// constraint.  Decoders without shared state simply return owned data
// wrapped as DataRef.
type ReaderRef interface {
	Reader
	// WorksheetRangeRef returns the named sheet's cells, zero-copy where
	// the decoder supports it.
	WorksheetRangeRef(name string) (*grid.Range[value.DataRef], error)
}

// OpenReaderAtFunc opens a decoder session over a finite, addressable byte
// source.  size must be the total byte length of the data.
type OpenReaderAtFunc func(r io.ReaderAt, size int64) (Reader, error)

var decoders struct {
	sync.RWMutex
	open map[FileFormat]OpenReaderAtFunc
}

// RegisterDecoder makes a concrete decoder available to the auto-detecting
// facade.  Decoder packages call it from an init function, so linking a
// decoder is a blank import:
//
//	import _ "github.com/skiftan/anysheet/xlsb"
//
// Registering a second decoder for the same format replaces the first.
func RegisterDecoder(f FileFormat, open OpenReaderAtFunc) {
	decoders.Lock()
	defer decoders.Unlock()
	if decoders.open == nil {
		decoders.open = make(map[FileFormat]OpenReaderAtFunc)
	}
	decoders.open[f] = open
}

func decoderFor(f FileFormat) (OpenReaderAtFunc, bool) {
	decoders.RLock()
	defer decoders.RUnlock()
	open, ok := decoders.open[f]
	return open, ok
}
