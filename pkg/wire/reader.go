package wire

import (
	"encoding/binary"
	"fmt"
	"unicode/utf16"
)

// Reader consumes little-endian primitives from a payload buffer while
// tracking its offset, so a structured decode can assert that the buffer
// was consumed exactly.
type Reader struct {
	buf []byte
	off int
}

// NewReader returns a Reader over buf. The Reader does not copy buf.
func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf}
}

// need fails with ErrMalformed unless n more bytes are available.
func (r *Reader) need(n int) error {
	if r.off+n > len(r.buf) {
		return fmt.Errorf("%w: need %d bytes at offset %d, buffer has %d", ErrMalformed, n, r.off, len(r.buf))
	}
	return nil
}

// Remaining returns the number of unconsumed bytes.
func (r *Reader) Remaining() int {
	return len(r.buf) - r.off
}

// ExpectEnd fails with ErrMalformed unless the buffer has been consumed
// exactly.
func (r *Reader) ExpectEnd() error {
	if r.off != len(r.buf) {
		return fmt.Errorf("%w: %d trailing bytes after decode at offset %d", ErrMalformed, len(r.buf)-r.off, r.off)
	}
	return nil
}

// U8 reads an unsigned 8-bit integer.
func (r *Reader) U8() (uint8, error) {
	if err := r.need(1); err != nil {
		return 0, err
	}
	v := r.buf[r.off]
	r.off++
	return v, nil
}

// I8 reads a signed 8-bit integer.
func (r *Reader) I8() (int8, error) {
	v, err := r.U8()
	return int8(v), err
}

// U16 reads an unsigned 16-bit integer.
func (r *Reader) U16() (uint16, error) {
	if err := r.need(2); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint16(r.buf[r.off:])
	r.off += 2
	return v, nil
}

// I16 reads a signed 16-bit integer.
func (r *Reader) I16() (int16, error) {
	v, err := r.U16()
	return int16(v), err
}

// U32 reads an unsigned 32-bit integer.
func (r *Reader) U32() (uint32, error) {
	if err := r.need(4); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint32(r.buf[r.off:])
	r.off += 4
	return v, nil
}

// I32 reads a signed 32-bit integer.
func (r *Reader) I32() (int32, error) {
	v, err := r.U32()
	return int32(v), err
}

// U64 reads an unsigned 64-bit integer.
func (r *Reader) U64() (uint64, error) {
	if err := r.need(8); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint64(r.buf[r.off:])
	r.off += 8
	return v, nil
}

// I64 reads a signed 64-bit integer.
func (r *Reader) I64() (int64, error) {
	v, err := r.U64()
	return int64(v), err
}

// U128 reads a 128-bit integer, low word first.
func (r *Reader) U128() (Uint128, error) {
	lo, err := r.U64()
	if err != nil {
		return Uint128{}, err
	}
	hi, err := r.U64()
	if err != nil {
		return Uint128{}, err
	}
	return Uint128{Lo: lo, Hi: hi}, nil
}

// U16Slice reads a u32 element count followed by that many unsigned
// 16-bit integers.
func (r *Reader) U16Slice() ([]uint16, error) {
	n, err := r.U32()
	if err != nil {
		return nil, err
	}
	if err := r.need(int(n) * 2); err != nil {
		return nil, err
	}
	out := make([]uint16, n)
	for i := range out {
		out[i], _ = r.U16()
	}
	return out, nil
}

// U32Slice reads a u32 element count followed by that many unsigned
// 32-bit integers.
func (r *Reader) U32Slice() ([]uint32, error) {
	n, err := r.U32()
	if err != nil {
		return nil, err
	}
	if err := r.need(int(n) * 4); err != nil {
		return nil, err
	}
	out := make([]uint32, n)
	for i := range out {
		out[i], _ = r.U32()
	}
	return out, nil
}

// Str reads a PTP string: a u8 character count including the terminating
// null, then UTF-16LE code units. A zero count byte is the empty string
// with no further bytes. The terminating unit is consumed but not
// validated, matching device behavior in the field.
func (r *Reader) Str() (string, error) {
	n, err := r.U8()
	if err != nil {
		return "", err
	}
	if n == 0 {
		return "", nil
	}
	units := make([]uint16, int(n)-1)
	for i := range units {
		units[i], err = r.U16()
		if err != nil {
			return "", err
		}
	}
	if _, err := r.U16(); err != nil { // terminating null unit
		return "", err
	}
	return string(utf16.Decode(units)), nil
}
