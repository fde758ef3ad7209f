package wire

import (
	"encoding/binary"
	"fmt"
)

// HeaderSize is the size of the container header in bytes.
const HeaderSize = 12

// Kind identifies the container type carried in the header.
type Kind uint16

const (
	// KindCommand is the command phase container.
	KindCommand Kind = 1

	// KindData is the data phase container.
	KindData Kind = 2

	// KindResponse is the response phase container.
	KindResponse Kind = 3

	// KindEvent is an asynchronous event container.
	KindEvent Kind = 4
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindCommand:
		return "COMMAND"
	case KindData:
		return "DATA"
	case KindResponse:
		return "RESPONSE"
	case KindEvent:
		return "EVENT"
	default:
		return "UNKNOWN"
	}
}

// valid reports whether k is one of the four defined container kinds.
func (k Kind) valid() bool {
	return k >= KindCommand && k <= KindEvent
}

// Header is a parsed container header. It is what a receiver can know
// after the first 12 bytes of a bulk transfer, before the payload has
// necessarily arrived.
type Header struct {
	// PayloadLen is the declared payload length (total length minus 12).
	PayloadLen int

	// Kind is the container kind.
	Kind Kind

	// Code is the operation, response, or event code.
	Code uint16

	// TID is the transaction ID this container belongs to.
	TID uint32
}

// BelongsTo reports whether the container belongs to the given transaction.
func (h Header) BelongsTo(tid uint32) bool {
	return h.TID == tid
}

// ParseHeader decodes a container header from the first 12 bytes of b.
// It fails with ErrMalformed if b is shorter than the header, if the
// length field declares less than a bare header, or if the kind is not
// one of the four defined values.
func ParseHeader(b []byte) (Header, error) {
	if len(b) < HeaderSize {
		return Header{}, fmt.Errorf("%w: container header needs %d bytes, have %d", ErrMalformed, HeaderSize, len(b))
	}
	total := binary.LittleEndian.Uint32(b[0:4])
	if total < HeaderSize {
		return Header{}, fmt.Errorf("%w: container length %d below header size", ErrMalformed, total)
	}
	kind := Kind(binary.LittleEndian.Uint16(b[4:6]))
	if !kind.valid() {
		return Header{}, fmt.Errorf("%w: invalid container kind 0x%x", ErrMalformed, uint16(kind))
	}
	return Header{
		PayloadLen: int(total) - HeaderSize,
		Kind:       kind,
		Code:       binary.LittleEndian.Uint16(b[6:8]),
		TID:        binary.LittleEndian.Uint32(b[8:12]),
	}, nil
}

// Container is a complete framed unit: header fields plus payload.
type Container struct {
	Kind    Kind
	Code    uint16
	TID     uint32
	Payload []byte
}

// DecodeContainer decodes a complete container from b. The declared
// length must match len(b) exactly.
func DecodeContainer(b []byte) (Container, error) {
	h, err := ParseHeader(b)
	if err != nil {
		return Container{}, err
	}
	if len(b) != HeaderSize+h.PayloadLen {
		return Container{}, fmt.Errorf("%w: container declares %d bytes, have %d", ErrMalformed, HeaderSize+h.PayloadLen, len(b))
	}
	return Container{
		Kind:    h.Kind,
		Code:    h.Code,
		TID:     h.TID,
		Payload: b[HeaderSize:],
	}, nil
}

// AppendHeader appends a 12-byte container header for a payload of
// payloadLen bytes to dst and returns the extended slice.
func AppendHeader(dst []byte, kind Kind, code uint16, tid uint32, payloadLen int) []byte {
	dst = binary.LittleEndian.AppendUint32(dst, uint32(HeaderSize+payloadLen))
	dst = binary.LittleEndian.AppendUint16(dst, uint16(kind))
	dst = binary.LittleEndian.AppendUint16(dst, code)
	dst = binary.LittleEndian.AppendUint32(dst, tid)
	return dst
}

// EncodeContainer encodes a container with the given payload, computing
// the length field from the payload size.
func EncodeContainer(kind Kind, code uint16, tid uint32, payload []byte) []byte {
	buf := make([]byte, 0, HeaderSize+len(payload))
	buf = AppendHeader(buf, kind, code, tid, len(payload))
	return append(buf, payload...)
}
