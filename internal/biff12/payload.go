package biff12

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"unicode/utf16"
)

// PayloadReader decodes the typed fields of a single record payload.  All
// integer fields are little-endian; strings are a 4-byte character count
// followed by UTF-16LE code units.
type PayloadReader struct {
	data []byte
	pos  int
}

// NewPayloadReader wraps a record payload.
func NewPayloadReader(data []byte) *PayloadReader {
	return &PayloadReader{data: data}
}

func (p *PayloadReader) remaining() int { return len(p.data) - p.pos }

// Skip advances past n bytes.
func (p *PayloadReader) Skip(n int) error {
	if n < 0 || p.remaining() < n {
		return io.ErrUnexpectedEOF
	}
	p.pos += n
	return nil
}

// Uint8 reads one byte.
func (p *PayloadReader) Uint8() (uint8, error) {
	if p.remaining() < 1 {
		return 0, io.ErrUnexpectedEOF
	}
	v := p.data[p.pos]
	p.pos++
	return v, nil
}

// Uint16 reads a little-endian uint16.
func (p *PayloadReader) Uint16() (uint16, error) {
	if p.remaining() < 2 {
		return 0, io.ErrUnexpectedEOF
	}
	v := binary.LittleEndian.Uint16(p.data[p.pos:])
	p.pos += 2
	return v, nil
}

// Uint32 reads a little-endian uint32.
func (p *PayloadReader) Uint32() (uint32, error) {
	if p.remaining() < 4 {
		return 0, io.ErrUnexpectedEOF
	}
	v := binary.LittleEndian.Uint32(p.data[p.pos:])
	p.pos += 4
	return v, nil
}

// Double reads a little-endian IEEE-754 double.
func (p *PayloadReader) Double() (float64, error) {
	if p.remaining() < 8 {
		return 0, io.ErrUnexpectedEOF
	}
	bits := binary.LittleEndian.Uint64(p.data[p.pos:])
	p.pos += 8
	return math.Float64frombits(bits), nil
}

// RkNumber reads the 4-byte packed numeric of NUM records.
//
// Bits 0 and 1 are flags: bit 1 selects a scaled integer (value >> 2,
// arithmetic shift so negatives survive) versus the high word of a double
// with a zero low word; bit 0 divides the result by 100.
//
// isInt reports that the encoded value is an exact integer, i.e. the
// integer form without the division flag.
func (p *PayloadReader) RkNumber() (v float64, isInt bool, err error) {
	if p.remaining() < 4 {
		return 0, false, io.ErrUnexpectedEOF
	}
	raw := int32(binary.LittleEndian.Uint32(p.data[p.pos:]))
	p.pos += 4

	if raw&0x02 != 0 {
		v = float64(raw >> 2)
		isInt = raw&0x01 == 0
	} else {
		bits := uint64(uint32(raw)&0xFFFFFFFC) << 32
		v = math.Float64frombits(bits)
	}
	if raw&0x01 != 0 {
		v /= 100
	}
	return v, isInt, nil
}

// XLString reads a counted UTF-16LE string.  Invalid code units decode to
// the Unicode replacement character.
func (p *PayloadReader) XLString() (string, error) {
	chars, err := p.Uint32()
	if err != nil {
		return "", err
	}
	// chars*2 must stay within int on every platform.
	const maxChars = 0x3FFFFFFF
	if chars > maxChars {
		return "", fmt.Errorf("biff12: string of %d characters is too large", chars)
	}
	n := int(chars) * 2
	if p.remaining() < n {
		return "", io.ErrUnexpectedEOF
	}
	raw := p.data[p.pos : p.pos+n]
	p.pos += n

	units := make([]uint16, int(chars))
	for i := range units {
		units[i] = binary.LittleEndian.Uint16(raw[i*2:])
	}
	return string(utf16.Decode(units)), nil
}
