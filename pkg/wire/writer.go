package wire

import (
	"encoding/binary"
	"fmt"
	"unicode/utf16"
)

// maxStringUnits is the largest number of UTF-16 code units a PTP string
// can carry: the u8 count byte includes the terminating null.
const maxStringUnits = 254

// Writer builds a little-endian payload buffer. The zero value is ready
// to use.
type Writer struct {
	buf []byte
}

// Bytes returns the accumulated payload.
func (w *Writer) Bytes() []byte {
	return w.buf
}

// Len returns the number of bytes written so far.
func (w *Writer) Len() int {
	return len(w.buf)
}

// U8 appends an unsigned 8-bit integer.
func (w *Writer) U8(v uint8) {
	w.buf = append(w.buf, v)
}

// I8 appends a signed 8-bit integer.
func (w *Writer) I8(v int8) {
	w.U8(uint8(v))
}

// U16 appends an unsigned 16-bit integer.
func (w *Writer) U16(v uint16) {
	w.buf = binary.LittleEndian.AppendUint16(w.buf, v)
}

// I16 appends a signed 16-bit integer.
func (w *Writer) I16(v int16) {
	w.U16(uint16(v))
}

// U32 appends an unsigned 32-bit integer.
func (w *Writer) U32(v uint32) {
	w.buf = binary.LittleEndian.AppendUint32(w.buf, v)
}

// I32 appends a signed 32-bit integer.
func (w *Writer) I32(v int32) {
	w.U32(uint32(v))
}

// U64 appends an unsigned 64-bit integer.
func (w *Writer) U64(v uint64) {
	w.buf = binary.LittleEndian.AppendUint64(w.buf, v)
}

// I64 appends a signed 64-bit integer.
func (w *Writer) I64(v int64) {
	w.U64(uint64(v))
}

// U128 appends a 128-bit integer, low word first.
func (w *Writer) U128(v Uint128) {
	w.U64(v.Lo)
	w.U64(v.Hi)
}

// U16Slice appends a u32 element count followed by the elements.
func (w *Writer) U16Slice(vs []uint16) {
	w.U32(uint32(len(vs)))
	for _, v := range vs {
		w.U16(v)
	}
}

// U32Slice appends a u32 element count followed by the elements.
func (w *Writer) U32Slice(vs []uint32) {
	w.U32(uint32(len(vs)))
	for _, v := range vs {
		w.U32(v)
	}
}

// Str appends a PTP string: a u8 character count including the
// terminating null, the UTF-16LE code units, and the null unit. The
// empty string is the single count byte 0x00.
func (w *Writer) Str(s string) error {
	if s == "" {
		w.U8(0)
		return nil
	}
	units := utf16.Encode([]rune(s))
	if len(units) > maxStringUnits {
		return fmt.Errorf("%w: string of %d UTF-16 units exceeds %d", ErrMalformed, len(units), maxStringUnits)
	}
	w.U8(uint8(len(units) + 1))
	for _, u := range units {
		w.U16(u)
	}
	w.U16(0)
	return nil
}
