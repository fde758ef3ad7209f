// Package camera implements the PTP transaction engine.
//
// A Camera owns one bulk transport exclusively and drives the protocol's
// command/data/response exchange over it. The protocol is strictly
// half-duplex: one transaction is outstanding at a time, correlated by a
// transaction ID the engine assigns. The engine performs no internal
// locking; callers that share a Camera across goroutines must serialize
// access themselves.
//
// # Transaction Phases
//
//	host                          camera
//	 │  Command(code, params)       │
//	 │ ─────────────────────────────▶
//	 │  Data(payload)    [optional] │
//	 │ ─────────────────────────────▶
//	 │  Data(payload)    [optional] │
//	 │ ◀─────────────────────────────
//	 │  Response(code, params)      │
//	 │ ◀─────────────────────────────
//
// Every container carries the transaction's ID; a mismatch fails the
// transaction without retry, because the byte stream can no longer be
// trusted. The caller should close and reopen the session after any
// Malformed or transport failure.
//
// # Bulk Transfer Rules
//
// Outbound payloads are chunked: the first write carries the 12-byte
// container header plus as much payload as fits the chunk size, and the
// remainder follows in bare chunk-sized writes. Inbound containers are
// read into a fixed buffer until the declared length is complete. When
// the final read exactly fills the buffer, one extra read drains the
// short or zero-length packet that terminates the transfer; without it
// that packet would surface as the next transaction's header.
//
// # Typed Operations
//
// Command is the raw entry point. The typed operations (GetDeviceInfo,
// GetObjectHandles, GetObject, the property accessors) wrap it with the
// protocol's parameter layouts and decode the replies into pkg/device
// records.
package camera
