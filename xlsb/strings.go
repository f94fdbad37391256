package xlsb

import (
	"bytes"
	"io"

	"github.com/skiftan/anysheet"
	"github.com/skiftan/anysheet/internal/biff12"
)

// sharedStrings is the workbook's shared-string table.  Cell records store
// indexes into it instead of repeating text.
type sharedStrings struct {
	entries []string
}

// get returns the string at index i.
func (st *sharedStrings) get(i uint32) (string, bool) {
	if st == nil || i >= uint32(len(st.entries)) {
		return "", false
	}
	return st.entries[i], true
}

func (st *sharedStrings) len() int {
	if st == nil {
		return 0
	}
	return len(st.entries)
}

// parseSharedStrings decodes xl/sharedStrings.bin.  Each SI record is a
// flag byte followed by a counted string; rich-text runs after the plain
// text are ignored.
func parseSharedStrings(data []byte) (*sharedStrings, error) {
	st := &sharedStrings{}
	sr := biff12.NewStreamReader(bytes.NewReader(data))
	for {
		id, payload, err := sr.Next()
		if err == io.EOF {
			return st, nil
		}
		if err != nil {
			return nil, &anysheet.XlsbError{Kind: anysheet.ErrCorrupt, Detail: "shared strings part", Err: err}
		}

		switch id {
		case biff12.Sst:
			// Total and unique counts; the entries speak for themselves.
		case biff12.Si:
			p := biff12.NewPayloadReader(payload)
			if err := p.Skip(1); err != nil {
				return nil, &anysheet.XlsbError{Kind: anysheet.ErrCorrupt, Detail: "SI record truncated", Err: err}
			}
			s, err := p.XLString()
			if err != nil {
				return nil, &anysheet.XlsbError{Kind: anysheet.ErrEncoding, Detail: "SI record text", Err: err}
			}
			st.entries = append(st.entries, s)
		case biff12.SstEnd:
			return st, nil
		}
	}
}
