// Package transport defines the bulk transport a camera link runs over.
//
// The transport layer handles:
//   - Raw bulk writes and reads against a claimed USB interface
//   - Endpoint discovery (bulk in/out, optional interrupt in)
//   - Deadline propagation via context
//
// # Protocol Stack
//
//	┌────────────────────────────────┐
//	│      PTP Containers            │
//	├────────────────────────────────┤
//	│   Transaction Engine (camera)  │
//	├────────────────────────────────┤
//	│   Bulk Transport (this pkg)    │
//	├────────────────────────────────┤
//	│   USB Host Stack (softusb)     │
//	└────────────────────────────────┘
//
// # Packet Boundaries
//
// A bulk transfer larger than the endpoint's max packet size arrives as
// a train of full packets. The train ends with a short packet, or with a
// zero-length packet when the payload is an exact multiple of the packet
// size. Read returns whatever one transfer delivered; callers must not
// assume a read fills the buffer. The transaction engine owns the logic
// that drains terminating zero-length packets so they cannot be
// misattributed to the next transaction.
//
// # Backends
//
// Two implementations ship with the module: transport/softusb claims a
// still-image interface on an embedded USB host stack, and
// transport/replay replays the camera side of a capture file for offline
// debugging. The engine is backend-agnostic; pick one at construction.
package transport
