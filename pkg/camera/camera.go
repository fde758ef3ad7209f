package camera

import (
	"context"
	"fmt"
	"time"

	"github.com/ptplink/ptplink-go/pkg/log"
	"github.com/ptplink/ptplink-go/pkg/transport"
	"github.com/ptplink/ptplink-go/pkg/wire"
)

const (
	// DefaultChunkSize bounds a single bulk write.
	DefaultChunkSize = 1 << 20

	// DefaultReadBufferSize is the bulk read buffer capacity. It is a
	// multiple of every defined bulk packet size.
	DefaultReadBufferSize = 8192
)

// Config configures a Camera.
type Config struct {
	// ChunkSize caps the bytes handed to one bulk write. Payloads
	// larger than ChunkSize-12 are split: the first write carries the
	// container header, the rest go out as bare blocks (default: 1 MiB).
	ChunkSize int

	// ReadBufferSize is the bulk read buffer capacity. It is rounded up
	// to a multiple of the endpoint's max packet size so a full read
	// always ends on a packet boundary (default: 8 KiB).
	ReadBufferSize int

	// PhaseTimeout bounds each bulk write or read. The sum of phase
	// timeouts bounds the transaction, not any single deadline
	// (default: transport.DefaultTimeout).
	PhaseTimeout time.Duration

	// LinkID tags capture events with the owning link.
	LinkID string

	// Capture receives protocol events. If nil, capture is disabled.
	Capture log.Logger
}

// Result is the outcome of one completed transaction.
type Result struct {
	// Data is the data phase payload, nil when the transaction had no
	// inbound data phase.
	Data []byte

	// Params are the response container's parameters.
	Params []uint32
}

// Camera drives PTP transactions over one bulk transport. It assumes
// exclusive ownership of the transport for its lifetime.
type Camera struct {
	transport transport.Transport

	chunkSize int
	readBuf   []byte
	timeout   time.Duration

	linkID  string
	capture log.Logger

	// Next transaction ID. The pre-session GetDeviceInfo goes out as
	// transaction 0; the counter wraps past 0 at u32 overflow.
	tid uint32
}

// New creates an engine over t. Zero config fields take their defaults.
func New(t transport.Transport, config Config) *Camera {
	chunk := config.ChunkSize
	if chunk <= wire.HeaderSize {
		chunk = DefaultChunkSize
	}
	size := config.ReadBufferSize
	if size <= 0 {
		size = DefaultReadBufferSize
	}
	if mps := t.Endpoints().MaxPacketSize; mps > 0 && size%mps != 0 {
		size += mps - size%mps
	}
	timeout := config.PhaseTimeout
	if timeout <= 0 {
		timeout = transport.DefaultTimeout
	}

	return &Camera{
		transport: t,
		chunkSize: chunk,
		readBuf:   make([]byte, size),
		timeout:   timeout,
		linkID:    config.LinkID,
		capture:   config.Capture,
	}
}

// Close releases the transport. The engine is unusable afterwards.
func (c *Camera) Close() error {
	return c.transport.Close()
}

// Command runs one transaction: a Command container with params as flat
// little-endian u32s, an optional outbound Data container, then the
// receive loop until the camera's Response. A nil data means no outbound
// data phase; an empty non-nil slice sends an empty Data container.
//
// A non-OK response fails with *ResponseError and any buffered data
// phase is discarded. A transaction-ID mismatch or framing violation
// fails with wire.ErrMalformed; transport failures pass through. After
// either of the latter two the session should be closed and reopened,
// the byte stream may be desynchronized.
func (c *Camera) Command(ctx context.Context, code wire.OpCode, params []uint32, data []byte) (Result, error) {
	tid := c.nextTID()

	if err := c.writeContainer(ctx, wire.KindCommand, uint16(code), tid, paramPayload(params)); err != nil {
		return Result{}, c.fail(code, tid, err)
	}
	if data != nil {
		if err := c.writeContainer(ctx, wire.KindData, uint16(code), tid, data); err != nil {
			return Result{}, c.fail(code, tid, err)
		}
	}

	res, err := c.receive(ctx, code, tid)
	if err != nil {
		return Result{}, c.fail(code, tid, err)
	}

	c.logTransaction(code, tid, params, len(res.Data))
	return res, nil
}

// nextTID returns the current transaction ID and advances the counter.
// On wrap the counter skips 0, which is reserved for pre-session
// traffic.
func (c *Camera) nextTID() uint32 {
	tid := c.tid
	c.tid++
	if c.tid == 0 {
		c.tid = 1
	}
	return tid
}

// receive reads containers until the transaction's Response arrives.
func (c *Camera) receive(ctx context.Context, op wire.OpCode, tid uint32) (Result, error) {
	var data []byte
	for {
		cont, err := c.readContainer(ctx)
		if err != nil {
			return Result{}, err
		}
		if cont.TID != tid {
			return Result{}, fmt.Errorf("%w: container reports transaction %d while %d is outstanding",
				wire.ErrMalformed, cont.TID, tid)
		}

		switch cont.Kind {
		case wire.KindData:
			data = cont.Payload
		case wire.KindResponse:
			code := wire.RespCode(cont.Code)
			if code != wire.RespOK {
				return Result{}, &ResponseError{Op: op, Code: code}
			}
			return Result{Data: data, Params: responseParams(cont.Payload)}, nil
		default:
			// Some cameras interleave event containers stamped with the
			// open transaction's ID; they are not part of the exchange.
		}
	}
}

// writeContainer sends one container, chunked. The first write carries
// the header plus min(len(payload), chunkSize-12) payload bytes, the
// remaining payload follows in bare chunk-sized writes.
func (c *Camera) writeContainer(ctx context.Context, kind wire.Kind, code uint16, tid uint32, payload []byte) error {
	first := len(payload)
	if max := c.chunkSize - wire.HeaderSize; first > max {
		first = max
	}

	buf := make([]byte, 0, wire.HeaderSize+first)
	buf = wire.AppendHeader(buf, kind, code, tid, len(payload))
	buf = append(buf, payload[:first]...)
	if err := c.write(ctx, buf); err != nil {
		return err
	}

	for rest := payload[first:]; len(rest) > 0; {
		n := len(rest)
		if n > c.chunkSize {
			n = c.chunkSize
		}
		if err := c.write(ctx, rest[:n]); err != nil {
			return err
		}
		rest = rest[n:]
	}

	c.logContainer(log.DirectionOut, kind, code, tid, wire.HeaderSize+len(payload), payload)
	return nil
}

// readContainer reads one complete container from the bulk-in pipe,
// looping until the declared length has arrived. If the final read
// exactly filled the buffer, one extra read drains the short or
// zero-length packet terminating the transfer; left queued, it would be
// misread as the next transaction's header.
func (c *Camera) readContainer(ctx context.Context) (wire.Container, error) {
	n, err := c.read(ctx, c.readBuf)
	if err != nil {
		return wire.Container{}, err
	}
	h, err := wire.ParseHeader(c.readBuf[:n])
	if err != nil {
		return wire.Container{}, err
	}

	total := wire.HeaderSize + h.PayloadLen
	if n > total {
		return wire.Container{}, fmt.Errorf("%w: %d bytes past the declared container end",
			wire.ErrMalformed, n-total)
	}

	payload := make([]byte, h.PayloadLen)
	copied := copy(payload, c.readBuf[wire.HeaderSize:n])
	filled := n == len(c.readBuf)

	for wire.HeaderSize+copied < total {
		m, err := c.read(ctx, c.readBuf)
		if err != nil {
			return wire.Container{}, err
		}
		if wire.HeaderSize+copied+m > total {
			return wire.Container{}, fmt.Errorf("%w: %d bytes past the declared container end",
				wire.ErrMalformed, wire.HeaderSize+copied+m-total)
		}
		copied += copy(payload[copied:], c.readBuf[:m])
		filled = m == len(c.readBuf)
	}

	if filled {
		if _, err := c.read(ctx, c.readBuf); err != nil {
			return wire.Container{}, err
		}
	}

	c.logContainer(log.DirectionIn, h.Kind, h.Code, h.TID, total, payload)
	return wire.Container{Kind: h.Kind, Code: h.Code, TID: h.TID, Payload: payload}, nil
}

// write performs one bulk write bounded by the phase timeout.
func (c *Camera) write(ctx context.Context, b []byte) error {
	ctx, cancel := c.phase(ctx)
	defer cancel()
	_, err := c.transport.Write(ctx, b)
	return err
}

// read performs one bulk read bounded by the phase timeout.
func (c *Camera) read(ctx context.Context, b []byte) (int, error) {
	ctx, cancel := c.phase(ctx)
	defer cancel()
	return c.transport.Read(ctx, b)
}

// phase derives the per-phase deadline context.
func (c *Camera) phase(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, c.timeout)
}

// fail records a failed transaction in the capture stream and returns
// err unchanged.
func (c *Camera) fail(code wire.OpCode, tid uint32, err error) error {
	if c.capture != nil {
		c.capture.Log(log.ErrorEvent(c.linkID, log.LayerTransaction,
			fmt.Sprintf("%s (tid %d): %v", code, tid, err)))
	}
	return err
}

func (c *Camera) logContainer(dir log.Direction, kind wire.Kind, code uint16, tid uint32, size int, payload []byte) {
	if c.capture == nil {
		return
	}
	c.capture.Log(log.ContainerEvent(c.linkID, dir, kind, code, tid, size, payload))
}

func (c *Camera) logTransaction(code wire.OpCode, tid uint32, params []uint32, size int) {
	if c.capture == nil {
		return
	}
	c.capture.Log(log.TransactionEvent(c.linkID, log.DirectionOut, code, tid, params, size))
}

// paramPayload renders command parameters as flat little-endian u32s.
func paramPayload(params []uint32) []byte {
	if len(params) == 0 {
		return nil
	}
	var w wire.Writer
	for _, p := range params {
		w.U32(p)
	}
	return w.Bytes()
}

// responseParams splits a response payload into u32 parameters.
func responseParams(payload []byte) []uint32 {
	if len(payload) < 4 {
		return nil
	}
	r := wire.NewReader(payload)
	params := make([]uint32, 0, len(payload)/4)
	for r.Remaining() >= 4 {
		v, err := r.U32()
		if err != nil {
			break
		}
		params = append(params, v)
	}
	return params
}
