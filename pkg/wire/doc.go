// Package wire defines the PTP wire format: the 12-byte container
// header, the tagged typed-value encoding, and the standard code tables.
//
// PTP frames every exchange in containers. A container is a little-endian
// 12-byte header followed by an optional payload:
//
//	offset 0  u32  total length (12 + payload length)
//	offset 4  u16  container kind (1=Command, 2=Data, 3=Response, 4=Event)
//	offset 6  u16  operation/response/event code
//	offset 8  u32  transaction ID
//
// # Typed Values
//
// Structured payloads carry values tagged by a 16-bit data type code:
// 0x0001-0x000A for scalars of 8 to 128 bits, 0x4001-0x400A for arrays of
// those scalars (u32 element count prefix), and 0xFFFF for strings. Strings
// are a u8 character count including the terminating null, followed by
// UTF-16LE code units; a count byte of zero is the empty string with no
// further bytes. Unknown type codes decode to an explicit Undefined value
// rather than failing, so vendor extensions in enumerable property lists
// do not abort a decode.
//
// # Exact Consumption
//
// Reader tracks its offset so structured decoders can call ExpectEnd and
// reject payloads with trailing bytes. Field-by-field decoding alone would
// let protocol drift pass silently.
package wire
