// Package replay serves the camera side of a recorded capture back to
// the transaction engine. Outbound containers are matched against the
// recording in order; inbound containers are returned packet by packet
// at the recorded bulk packet size, so packet boundary behavior
// including zero-length terminators survives the round trip. Payloads
// cut at the capture limit replay zero-padded to their recorded length.
package replay

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/ptplink/ptplink-go/pkg/log"
	"github.com/ptplink/ptplink-go/pkg/transport"
	"github.com/ptplink/ptplink-go/pkg/wire"
)

// Config tunes a replay transport.
type Config struct {
	// LinkID selects one link's traffic from a capture holding several.
	// Empty replays the first link seen.
	LinkID string

	// MaxPacketSize overrides the packet size recorded in the capture.
	// Zero keeps the recorded value, falling back to 512 for captures
	// that predate endpoint records.
	MaxPacketSize int
}

// step is one recorded container in script order.
type step struct {
	out     bool
	kind    wire.Kind
	code    uint16
	tid     uint32
	size    int
	payload []byte
}

// Transport replays one recorded link. It is handed exclusively to the
// transaction engine.
type Transport struct {
	info  transport.EndpointInfo
	steps []step

	mu     sync.Mutex
	closed bool
	err    error
	pos    int

	wbuf    []byte
	wtotal  int
	pending [][]byte
}

var _ transport.Transport = (*Transport)(nil)

// Open builds a replay transport from the capture file at path.
func Open(path string, config Config) (*Transport, error) {
	r, err := log.NewFilteredReader(path, log.Filter{LinkID: config.LinkID})
	if err != nil {
		return nil, err
	}
	defer r.Close()

	t := &Transport{
		info: transport.EndpointInfo{BulkIn: 0x81, BulkOut: 0x02, MaxPacketSize: 512},
	}

	linkID := config.LinkID
	for {
		event, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading capture: %w", err)
		}

		// Replay a single link. The first link observed wins when none
		// was configured.
		if linkID == "" && event.LinkID != "" {
			linkID = event.LinkID
		}
		if event.LinkID != linkID || event.Category != log.CategoryMessage {
			continue
		}

		switch event.Layer {
		case log.LayerTransport:
			if event.Size > 0 {
				t.info.MaxPacketSize = event.Size
			}
		case log.LayerContainer:
			t.steps = append(t.steps, step{
				out:     event.Direction == log.DirectionOut,
				kind:    event.Kind,
				code:    event.Code,
				tid:     event.TID,
				size:    event.Size,
				payload: event.Payload,
			})
		}
	}

	if config.MaxPacketSize > 0 {
		t.info.MaxPacketSize = config.MaxPacketSize
	}
	if len(t.steps) == 0 {
		return nil, fmt.Errorf("%w: capture holds no container traffic", transport.ErrNotFound)
	}
	return t, nil
}

// Write matches host bytes against the next recorded outbound
// container. Chunked writes accumulate until the declared container
// length has arrived.
func (t *Transport) Write(ctx context.Context, p []byte) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return 0, transport.ErrClosed
	}
	if t.err != nil {
		return 0, t.err
	}

	t.wbuf = append(t.wbuf, p...)
	if t.wtotal == 0 {
		if len(t.wbuf) < wire.HeaderSize {
			return len(p), nil
		}
		h, err := wire.ParseHeader(t.wbuf)
		if err != nil {
			return 0, t.diverge(err)
		}
		t.wtotal = wire.HeaderSize + h.PayloadLen
	}

	if len(t.wbuf) < t.wtotal {
		return len(p), nil
	}
	if len(t.wbuf) > t.wtotal {
		return 0, t.diverge(errors.New("outbound bytes overrun the declared container length"))
	}

	err := t.matchOutbound(t.wbuf)
	t.wbuf = nil
	t.wtotal = 0
	if err != nil {
		return 0, err
	}
	return len(p), nil
}

// matchOutbound checks one complete outbound container against the
// script. Caller holds the mutex.
func (t *Transport) matchOutbound(container []byte) error {
	if t.pos >= len(t.steps) {
		return t.diverge(errors.New("write past the end of the recording"))
	}
	s := t.steps[t.pos]
	if !s.out {
		return t.diverge(errors.New("recording expects a read, got a write"))
	}

	h, err := wire.ParseHeader(container)
	if err != nil {
		return t.diverge(err)
	}
	if h.Kind != s.kind || h.Code != s.code || h.TID != s.tid || len(container) != s.size {
		return t.diverge(fmt.Errorf("sent %s 0x%04X tid %d (%d bytes), recorded %s 0x%04X tid %d (%d bytes)",
			h.Kind, h.Code, h.TID, len(container), s.kind, s.code, s.tid, s.size))
	}

	// Compare against the captured payload prefix; bytes past the
	// capture limit were not recorded.
	payload := container[wire.HeaderSize:]
	n := min(len(payload), len(s.payload))
	if !bytes.Equal(payload[:n], s.payload[:n]) {
		return t.diverge(fmt.Errorf("%s 0x%04X tid %d payload differs from the recording", h.Kind, h.Code, h.TID))
	}

	t.pos++
	return nil
}

// Read serves the next recorded inbound container packet by packet. The
// read ends when p is full or a short packet is consumed, exactly as a
// bulk URB would. Reading when the recording holds no inbound container
// fails with ErrTimeout, as a silent camera would.
func (t *Transport) Read(ctx context.Context, p []byte) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return 0, transport.ErrClosed
	}
	if t.err != nil {
		return 0, t.err
	}

	if len(t.pending) == 0 {
		if err := t.stageInbound(); err != nil {
			return 0, err
		}
	}

	n := 0
	for len(t.pending) > 0 && n < len(p) {
		pkt := t.pending[0]
		if len(pkt) > len(p)-n {
			// Buffer too small for the whole packet: fill it and
			// keep the remainder queued.
			c := copy(p[n:], pkt)
			t.pending[0] = pkt[c:]
			return n + c, nil
		}

		c := copy(p[n:], pkt)
		n += c
		t.pending = t.pending[1:]
		if c < t.info.MaxPacketSize {
			// Short or zero-length packet ends the transfer.
			return n, nil
		}
	}
	return n, nil
}

// stageInbound reconstructs the next recorded inbound container and
// splits it into bulk packets. Caller holds the mutex.
func (t *Transport) stageInbound() error {
	if t.pos >= len(t.steps) || t.steps[t.pos].out {
		return fmt.Errorf("%w: recording holds no inbound container here", transport.ErrTimeout)
	}
	s := t.steps[t.pos]
	if s.size < wire.HeaderSize {
		return t.diverge(fmt.Errorf("recorded container size %d below header size", s.size))
	}
	t.pos++

	// Payloads cut at the capture limit pad with zeros back to their
	// recorded length.
	payload := make([]byte, s.size-wire.HeaderSize)
	copy(payload, s.payload)
	container := wire.EncodeContainer(s.kind, s.code, s.tid, payload)

	mps := t.info.MaxPacketSize
	for off := 0; off < len(container); off += mps {
		end := min(off+mps, len(container))
		t.pending = append(t.pending, container[off:end])
	}
	if len(container)%mps == 0 {
		// Zero-length packet terminates an exact-multiple transfer.
		t.pending = append(t.pending, nil)
	}
	return nil
}

// Endpoints describes the replayed bulk pipe.
func (t *Transport) Endpoints() transport.EndpointInfo {
	return t.info
}

// Close shuts the replay. Later reads and writes fail with ErrClosed.
func (t *Transport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return transport.ErrClosed
	}
	t.closed = true
	return nil
}

// Done reports whether the whole recording has been consumed without
// divergence.
func (t *Transport) Done() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.err == nil && t.pos == len(t.steps)
}

// diverge marks the replay as departed from the recording. Every later
// transfer fails with the same error. Caller holds the mutex.
func (t *Transport) diverge(cause error) error {
	t.err = fmt.Errorf("%w: replay diverged: %v", transport.ErrTransport, cause)
	return t.err
}
