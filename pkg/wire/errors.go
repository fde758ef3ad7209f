package wire

import "errors"

// Codec errors.
var (
	// ErrMalformed indicates a framing or decode invariant was violated:
	// a bad kind tag, an impossible length field, a string or array length
	// inconsistency, an unexpected end of buffer, or leftover bytes after
	// a structured decode.
	ErrMalformed = errors.New("malformed data")
)
