package transport

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// DefaultTimeout bounds a single bulk transfer when the caller's context
// carries no deadline of its own.
const DefaultTimeout = 5 * time.Second

var (
	// ErrTransport indicates a bulk transfer failed below the protocol
	// layer.
	ErrTransport = errors.New("transport failure")

	// ErrTimeout indicates a bulk transfer deadline expired. It matches
	// ErrTransport under errors.Is.
	ErrTimeout = fmt.Errorf("%w: timeout", ErrTransport)

	// ErrClosed indicates the transport was closed.
	ErrClosed = errors.New("transport closed")

	// ErrNotFound indicates no usable camera device or endpoint set was
	// found.
	ErrNotFound = errors.New("device not found")
)

// EndpointInfo describes the endpoint set a transport resolved when it
// claimed its interface.
type EndpointInfo struct {
	// BulkIn is the device-to-host bulk endpoint address.
	BulkIn uint8

	// BulkOut is the host-to-device bulk endpoint address.
	BulkOut uint8

	// InterruptIn is the event endpoint address, if HasInterrupt.
	InterruptIn uint8

	// MaxPacketSize is the bulk endpoint packet size in bytes.
	MaxPacketSize int

	// HasInterrupt reports whether the device exposes an interrupt-in
	// endpoint for asynchronous events.
	HasInterrupt bool
}

// Transport is one claimed camera connection carrying bulk traffic.
// Implementations are not required to be safe for concurrent use; the
// transaction engine serializes access.
type Transport interface {
	// Write sends p on the bulk-out endpoint. It returns the number of
	// bytes accepted by the transfer.
	Write(ctx context.Context, p []byte) (int, error)

	// Read receives one bulk-in transfer into p. A short count is not an
	// error: it marks a packet boundary. A zero count is a zero-length
	// packet.
	Read(ctx context.Context, p []byte) (int, error)

	// Endpoints returns the resolved endpoint set.
	Endpoints() EndpointInfo

	// Close releases the claimed interface. Further calls fail with
	// ErrClosed.
	Close() error
}
