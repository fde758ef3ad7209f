package forward

import (
	"context"
	"time"
)

// Kind classifies a forwarded packet.
type Kind uint8

const (
	// KindImage is a full-resolution object transfer.
	KindImage Kind = iota

	// KindThumbnail is a reduced preview transfer.
	KindThumbnail

	// KindMetadata is a decoded descriptor, such as object info.
	KindMetadata

	// KindCommand mirrors an outbound command for observers.
	KindCommand

	// KindResponse mirrors a camera response for observers.
	KindResponse
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case KindImage:
		return "IMAGE"
	case KindThumbnail:
		return "THUMBNAIL"
	case KindMetadata:
		return "METADATA"
	case KindCommand:
		return "COMMAND"
	case KindResponse:
		return "RESPONSE"
	default:
		return "UNKNOWN"
	}
}

// Packet is one unit handed downstream. Bytes are owned by the packet
// once enqueued.
type Packet struct {
	// Bytes is the transfer payload.
	Bytes []byte

	// Kind classifies the payload.
	Kind Kind

	// Timestamp is when the transfer completed.
	Timestamp time.Time
}

// NewPacket stamps a packet with the current time.
func NewPacket(kind Kind, bytes []byte) Packet {
	return Packet{Bytes: bytes, Kind: kind, Timestamp: time.Now()}
}

// Sender pushes packets to the downstream consumer.
type Sender interface {
	// Send delivers one packet. A non-nil error parks the manager in
	// ERROR with the packet requeued.
	Send(ctx context.Context, p Packet) error
}

// Listener observes the forwarding pipeline.
type Listener interface {
	// PacketForwarded is called after a successful send.
	PacketForwarded(p Packet)

	// ForwardFailed is called when a packet is dropped on overflow or a
	// send fails.
	ForwardFailed(p Packet, err error)
}
