package biff12

import (
	"fmt"
	"io"
)

// StreamReader iterates over the records of one BIFF12 part.  Each record
// is a variable-length type ID, a variable-length payload size, and the
// payload bytes.
//
// Both variable-length fields use continuation-bit encoding, but they
// differ: the ID accumulates full 8-bit bytes at increasing byte
// positions, while the size is standard LEB128 (7-bit chunks).  A
// continuation bit still set on the fourth byte of either field means the
// stream has lost alignment and is reported as corrupt.
type StreamReader struct {
	r io.ReadSeeker
}

// NewStreamReader wraps an io.ReadSeeker positioned at the start of a
// record stream.
func NewStreamReader(r io.ReadSeeker) *StreamReader {
	return &StreamReader{r: r}
}

// Offset returns the current byte offset within the underlying stream.
func (sr *StreamReader) Offset() (int64, error) {
	return sr.r.Seek(0, io.SeekCurrent)
}

// SeekTo repositions the stream to an absolute byte offset.
func (sr *StreamReader) SeekTo(offset int64) error {
	_, err := sr.r.Seek(offset, io.SeekStart)
	return err
}

// No legitimate BIFF12 record exceeds this; a larger declared size is a
// corrupt length field and must not turn into a giant allocation.
const maxRecordSize = 10 * 1024 * 1024

// Next reads the next record, returning its type ID and payload.  A clean
// end of stream returns io.EOF; a stream that ends between the ID and the
// payload is corruption, not end-of-file, and returns a non-EOF error.
func (sr *StreamReader) Next() (id int, payload []byte, err error) {
	id, err = sr.readVarID()
	if err != nil {
		if err == io.EOF {
			return 0, nil, io.EOF
		}
		return 0, nil, fmt.Errorf("biff12: reading record ID: %w", err)
	}

	size, err := sr.readVarSize()
	if err != nil {
		return 0, nil, fmt.Errorf("biff12: reading size after record 0x%X: %w", id, err)
	}
	if size > maxRecordSize {
		return 0, nil, fmt.Errorf("biff12: record 0x%X declares %d payload bytes, limit is %d", id, size, maxRecordSize)
	}
	if size == 0 {
		return id, nil, nil
	}

	payload = make([]byte, size)
	if _, err = io.ReadFull(sr.r, payload); err != nil {
		return 0, nil, fmt.Errorf("biff12: reading %d payload bytes of record 0x%X: %w", size, id, err)
	}
	return id, payload, nil
}

func (sr *StreamReader) readByte() (byte, error) {
	var buf [1]byte
	if _, err := io.ReadFull(sr.r, buf[:]); err != nil {
		return 0, err
	}
	return buf[0], nil
}

// readVarID reads the 1–4 byte record type ID.  Each byte contributes its
// full 8 bits at the next byte position; bit 7 doubles as the continuation
// flag.  Accumulation goes through uint32 so the shift cannot overflow a
// 32-bit int.
func (sr *StreamReader) readVarID() (int, error) {
	var v uint32
	for i := 0; ; i++ {
		b, err := sr.readByte()
		if err != nil {
			// EOF before the first byte is a clean end of stream; EOF
			// inside a multi-byte ID is truncation.
			if i > 0 && err == io.EOF {
				return 0, io.ErrUnexpectedEOF
			}
			return 0, err
		}
		v += uint32(b) << (8 * i)
		if b&0x80 == 0 {
			return int(v), nil
		}
		if i == 3 {
			return 0, fmt.Errorf("ID continuation past 4 bytes (stream corrupt)")
		}
	}
}

// readVarSize reads the 1–4 byte LEB128 payload size.
func (sr *StreamReader) readVarSize() (int, error) {
	var v uint32
	for i := 0; ; i++ {
		b, err := sr.readByte()
		if err != nil {
			return 0, err
		}
		v |= uint32(b&0x7F) << (7 * i)
		if b&0x80 == 0 {
			return int(v), nil
		}
		if i == 3 {
			return 0, fmt.Errorf("size continuation past 4 bytes (stream corrupt)")
		}
	}
}
