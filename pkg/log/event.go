package log

import (
	"time"

	"github.com/ptplink/ptplink-go/pkg/wire"
)

// MaxPayloadCapture bounds the payload bytes stored per event. Larger
// payloads are cut and marked Truncated; the Size field always reports
// the full length.
const MaxPayloadCapture = 4096

// Event is one protocol capture record. Events are flat: a container
// send/receive, a transaction summary, a state change and an error all
// share the struct, with unused fields omitted. CBOR encoding uses
// integer keys for compactness.
type Event struct {
	// Time when the event occurred (nanosecond precision).
	Time time.Time `cbor:"1,keyasint"`

	// LinkID identifies the camera link (UUID).
	LinkID string `cbor:"2,keyasint,omitempty"`

	// Direction of the bytes relative to the host.
	Direction Direction `cbor:"3,keyasint,omitempty"`

	// Layer where the event was captured.
	Layer Layer `cbor:"4,keyasint"`

	// Category classifies the event.
	Category Category `cbor:"5,keyasint,omitempty"`

	// Kind is the container kind, when the event covers one container.
	Kind wire.Kind `cbor:"6,keyasint,omitempty"`

	// Code is the operation, response or event code.
	Code uint16 `cbor:"7,keyasint,omitempty"`

	// TID is the transaction ID.
	TID uint32 `cbor:"8,keyasint,omitempty"`

	// Size is the full container or transfer size in bytes.
	Size int `cbor:"9,keyasint,omitempty"`

	// Params are the command or response parameters.
	Params []uint32 `cbor:"10,keyasint,omitempty"`

	// Payload holds up to MaxPayloadCapture bytes of container payload.
	Payload []byte `cbor:"11,keyasint,omitempty"`

	// Truncated reports whether Payload was cut.
	Truncated bool `cbor:"12,keyasint,omitempty"`

	// Detail carries an error message or a free-form note.
	Detail string `cbor:"13,keyasint,omitempty"`

	// StateFrom and StateTo describe a state change.
	StateFrom string `cbor:"14,keyasint,omitempty"`
	StateTo   string `cbor:"15,keyasint,omitempty"`
}

// Direction indicates which way the bytes moved.
type Direction uint8

const (
	// DirectionNone marks events that carry no traffic, such as state
	// changes.
	DirectionNone Direction = 0
	// DirectionOut is host to camera.
	DirectionOut Direction = 1
	// DirectionIn is camera to host.
	DirectionIn Direction = 2
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirectionNone:
		return "NONE"
	case DirectionOut:
		return "OUT"
	case DirectionIn:
		return "IN"
	default:
		return "UNKNOWN"
	}
}

// Layer indicates which protocol layer captured the event.
type Layer uint8

const (
	// LayerTransport is the raw bulk transfer layer.
	LayerTransport Layer = 0
	// LayerContainer is the container codec layer.
	LayerContainer Layer = 1
	// LayerTransaction is the command/data/response exchange layer.
	LayerTransaction Layer = 2
	// LayerSession is the session lifecycle layer.
	LayerSession Layer = 3
)

// String returns the layer name.
func (l Layer) String() string {
	switch l {
	case LayerTransport:
		return "TRANSPORT"
	case LayerContainer:
		return "CONTAINER"
	case LayerTransaction:
		return "TRANSACTION"
	case LayerSession:
		return "SESSION"
	default:
		return "UNKNOWN"
	}
}

// Category classifies the event type.
type Category uint8

const (
	// CategoryMessage indicates protocol traffic.
	CategoryMessage Category = 0
	// CategoryState indicates a state change.
	CategoryState Category = 1
	// CategoryError indicates an error event.
	CategoryError Category = 2
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryMessage:
		return "MESSAGE"
	case CategoryState:
		return "STATE"
	case CategoryError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ContainerEvent builds a container-layer event for one sent or
// received container. The payload is captured up to MaxPayloadCapture
// bytes; size must be the full container length including the header.
func ContainerEvent(linkID string, dir Direction, kind wire.Kind, code uint16, tid uint32, size int, payload []byte) Event {
	e := Event{
		Time:      time.Now(),
		LinkID:    linkID,
		Direction: dir,
		Layer:     LayerContainer,
		Kind:      kind,
		Code:      code,
		TID:       tid,
		Size:      size,
	}
	if len(payload) > MaxPayloadCapture {
		e.Payload = append([]byte(nil), payload[:MaxPayloadCapture]...)
		e.Truncated = true
	} else if len(payload) > 0 {
		e.Payload = append([]byte(nil), payload...)
	}
	return e
}

// TransportEvent builds a transport-layer event describing a claimed
// endpoint set. Size carries the bulk max packet size so captures stay
// replayable against the same packet boundaries.
func TransportEvent(linkID, detail string, maxPacketSize int) Event {
	return Event{
		Time:   time.Now(),
		LinkID: linkID,
		Layer:  LayerTransport,
		Size:   maxPacketSize,
		Detail: detail,
	}
}

// TransactionEvent builds a transaction-layer summary event: the
// command code, its parameters and the total data moved.
func TransactionEvent(linkID string, dir Direction, code wire.OpCode, tid uint32, params []uint32, size int) Event {
	return Event{
		Time:      time.Now(),
		LinkID:    linkID,
		Direction: dir,
		Layer:     LayerTransaction,
		Code:      uint16(code),
		TID:       tid,
		Params:    append([]uint32(nil), params...),
		Size:      size,
	}
}

// StateChangeEvent builds a state change event at the given layer.
func StateChangeEvent(linkID string, layer Layer, from, to string) Event {
	return Event{
		Time:      time.Now(),
		LinkID:    linkID,
		Layer:     layer,
		Category:  CategoryState,
		StateFrom: from,
		StateTo:   to,
	}
}

// ErrorEvent builds an error event at the given layer.
func ErrorEvent(linkID string, layer Layer, detail string) Event {
	return Event{
		Time:     time.Now(),
		LinkID:   linkID,
		Layer:    layer,
		Category: CategoryError,
		Detail:   detail,
	}
}
