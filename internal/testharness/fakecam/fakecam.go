// Package fakecam provides a scripted in-memory camera for testing.
//
// The Camera implements transport.Transport with faithful bulk packet
// semantics: every outgoing container is segmented into packets of the
// endpoint packet size and terminated by a short packet, zero-length
// when the container is an exact multiple of the packet size. A read
// completes when its buffer fills or a short packet arrives, so
// packet-boundary behavior is observable in tests, including the
// zero-length packet left queued after an exactly-filled read.
package fakecam

import (
	"context"
	"fmt"
	"sync"

	"github.com/ptplink/ptplink-go/pkg/transport"
	"github.com/ptplink/ptplink-go/pkg/wire"
)

// Command is one decoded command container, with the host data phase
// attached when the operation carries one.
type Command struct {
	// Code is the operation code.
	Code wire.OpCode

	// TID is the transaction ID the host assigned.
	TID uint32

	// Params are the command parameters.
	Params []uint32

	// Data is the host-to-camera data phase payload, nil when absent.
	Data []byte
}

// Reply describes the camera's side of one transaction.
type Reply struct {
	// Data is the data phase payload; nil means no data phase.
	Data []byte

	// Code is the response code. The zero value is sent as OK.
	Code wire.RespCode

	// Params are the response parameters.
	Params []uint32
}

// Handler produces the camera's reply to one command.
type Handler func(cmd Command) Reply

// object is one entry in the canned object store.
type object struct {
	format wire.FormatCode
	parent uint32
	name   string
	data   []byte
}

// Camera is a scripted PTP camera behind an in-memory bulk pipe.
type Camera struct {
	// Handlers maps operation codes to reply functions. New installs
	// defaults serving the canned fixtures; tests override per opcode.
	Handlers map[wire.OpCode]Handler

	// HostDataOps marks operations whose data phase flows host to
	// camera; the camera holds the command until that data arrives.
	HostDataOps map[wire.OpCode]bool

	// ResponseTID, when set, overrides the transaction ID stamped on
	// response containers.
	ResponseTID *uint32

	// DataTID, when set, overrides the transaction ID stamped on data
	// containers.
	DataTID *uint32

	// DropResponse suppresses the response container.
	DropResponse bool

	// TruncateData cuts this many bytes off the end of an outgoing
	// data container without correcting its declared length.
	TruncateData int

	// EventBeforeResponse, when nonzero, interleaves an event
	// container carrying the transaction's ID before the response.
	EventBeforeResponse wire.EventCode

	maxPacket int

	mu       sync.Mutex
	closed   bool
	inBuf    []byte
	heldCmd  *Command
	pending  [][]byte
	writes   []int
	commands []Command

	sessionOpen bool
	sessionID   uint32

	objects    map[uint32]*object
	props      map[wire.PropCode][]byte
	nextHandle uint32
	sendTarget uint32
}

// New creates a camera serving the canned fixtures over a bulk pipe
// with the given packet size. A size of 0 selects 512 bytes.
func New(maxPacketSize int) *Camera {
	if maxPacketSize <= 0 {
		maxPacketSize = 512
	}

	f := &Camera{
		maxPacket:  maxPacketSize,
		nextHandle: 100,
		objects: map[uint32]*object{
			FolderHandle: {format: wire.FormatAssociation, name: "DCIM"},
			Image1Handle: {format: wire.FormatEXIFJPEG, parent: FolderHandle, name: "IMG_0001.JPG", data: ObjectData(Image1Handle)},
			Image2Handle: {format: wire.FormatEXIFJPEG, parent: FolderHandle, name: "IMG_0002.JPG", data: ObjectData(Image2Handle)},
		},
		props: map[wire.PropCode][]byte{
			wire.PropBatteryLevel: batteryLevelValue(),
			wire.PropWhiteBalance: whiteBalanceValue(),
			wire.PropDateTime:     dateTimeValue(),
		},
		HostDataOps: map[wire.OpCode]bool{
			wire.OpSendObjectInfo:     true,
			wire.OpSendObject:         true,
			wire.OpSetDevicePropValue: true,
		},
	}
	f.installHandlers()
	return f
}

// Endpoints describes the fake bulk pipe.
func (f *Camera) Endpoints() transport.EndpointInfo {
	return transport.EndpointInfo{
		BulkIn:        0x81,
		BulkOut:       0x02,
		InterruptIn:   0x83,
		MaxPacketSize: f.maxPacket,
		HasInterrupt:  true,
	}
}

// Write accepts host bytes, reassembles containers from them and
// dispatches each completed transaction to its handler. Replies are
// queued for reading before Write returns.
func (f *Camera) Write(ctx context.Context, p []byte) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return 0, transport.ErrClosed
	}

	f.writes = append(f.writes, len(p))
	f.inBuf = append(f.inBuf, p...)
	f.processInbound()
	return len(p), nil
}

// Read fills p from the queued camera packets. The read ends when p is
// full or a short packet is consumed; a leading zero-length packet ends
// it immediately with a zero count. An empty queue reads as a timeout.
func (f *Camera) Read(ctx context.Context, p []byte) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return 0, transport.ErrClosed
	}
	if len(f.pending) == 0 {
		return 0, fmt.Errorf("%w: no packets pending", transport.ErrTimeout)
	}

	n := 0
	for len(f.pending) > 0 && n < len(p) {
		pkt := f.pending[0]
		if len(pkt) > len(p)-n {
			// Buffer too small for the whole packet: fill it and
			// keep the remainder queued.
			c := copy(p[n:], pkt)
			f.pending[0] = pkt[c:]
			return n + c, nil
		}

		c := copy(p[n:], pkt)
		n += c
		f.pending = f.pending[1:]
		if c < f.maxPacket {
			// Short or zero-length packet ends the transfer.
			return n, nil
		}
	}
	return n, nil
}

// Close shuts the pipe. Later reads and writes fail with ErrClosed.
func (f *Camera) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return transport.ErrClosed
	}
	f.closed = true
	return nil
}

// processInbound pops completed containers off the write buffer.
// Caller holds the mutex.
func (f *Camera) processInbound() {
	for {
		if len(f.inBuf) < wire.HeaderSize {
			return
		}
		h, err := wire.ParseHeader(f.inBuf)
		if err != nil {
			// Unframeable host bytes; drop them so the pipe does not
			// wedge.
			f.inBuf = nil
			return
		}
		need := wire.HeaderSize + h.PayloadLen
		if len(f.inBuf) < need {
			return
		}

		payload := append([]byte(nil), f.inBuf[wire.HeaderSize:need]...)
		f.inBuf = f.inBuf[need:]
		f.handleContainer(h, payload)
	}
}

// handleContainer routes one host container. Caller holds the mutex.
func (f *Camera) handleContainer(h wire.Header, payload []byte) {
	switch h.Kind {
	case wire.KindCommand:
		cmd := Command{
			Code:   wire.OpCode(h.Code),
			TID:    h.TID,
			Params: decodeParams(payload),
		}
		if f.HostDataOps[cmd.Code] {
			f.heldCmd = &cmd
			return
		}
		f.heldCmd = nil
		f.dispatch(cmd)

	case wire.KindData:
		if f.heldCmd == nil || !h.BelongsTo(f.heldCmd.TID) {
			return
		}
		cmd := *f.heldCmd
		cmd.Data = payload
		f.heldCmd = nil
		f.dispatch(cmd)
	}
}

// dispatch runs the handler for cmd and queues its reply containers.
// Caller holds the mutex.
func (f *Camera) dispatch(cmd Command) {
	f.commands = append(f.commands, cmd)

	reply := f.reply(cmd)

	if f.EventBeforeResponse != 0 {
		f.queue(wire.KindEvent, uint16(f.EventBeforeResponse), cmd.TID, nil)
	}

	if reply.Data != nil {
		tid := cmd.TID
		if f.DataTID != nil {
			tid = *f.DataTID
		}
		b := wire.EncodeContainer(wire.KindData, uint16(cmd.Code), tid, reply.Data)
		if f.TruncateData > 0 && f.TruncateData < len(b) {
			b = b[:len(b)-f.TruncateData]
		}
		f.segment(b)
	}

	if f.DropResponse {
		return
	}

	code := reply.Code
	if code == 0 {
		code = wire.RespOK
	}
	tid := cmd.TID
	if f.ResponseTID != nil {
		tid = *f.ResponseTID
	}
	f.queue(wire.KindResponse, uint16(code), tid, encodeParams(reply.Params))
}

// reply applies the session gate and runs the opcode's handler.
func (f *Camera) reply(cmd Command) Reply {
	if !f.sessionOpen && cmd.Code != wire.OpGetDeviceInfo && cmd.Code != wire.OpOpenSession {
		return Reply{Code: wire.RespSessionNotOpen}
	}
	h, ok := f.Handlers[cmd.Code]
	if !ok {
		return Reply{Code: wire.RespOperationNotSupported}
	}
	return h(cmd)
}

// queue encodes a container and segments it into bulk packets. Caller
// holds the mutex.
func (f *Camera) queue(kind wire.Kind, code uint16, tid uint32, payload []byte) {
	f.segment(wire.EncodeContainer(kind, code, tid, payload))
}

// segment splits one transfer into packets of at most the packet size.
// The tail packet is always queued, zero-length when the transfer is an
// exact multiple of the packet size.
func (f *Camera) segment(b []byte) {
	for len(b) >= f.maxPacket {
		f.pending = append(f.pending, b[:f.maxPacket])
		b = b[f.maxPacket:]
	}
	f.pending = append(f.pending, b)
}

// QueueContainer queues a container exactly as the camera would send
// it, bypassing the transaction machinery. Tests use it to script
// unsolicited or malformed traffic.
func (f *Camera) QueueContainer(kind wire.Kind, code uint16, tid uint32, payload []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queue(kind, code, tid, payload)
}

// QueueRaw queues arbitrary bytes as one camera transfer.
func (f *Camera) QueueRaw(b []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.segment(append([]byte(nil), b...))
}

// PendingPackets returns the number of queued camera-to-host packets,
// terminal short packets included.
func (f *Camera) PendingPackets() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.pending)
}

// Commands returns all dispatched commands.
func (f *Camera) Commands() []Command {
	f.mu.Lock()
	defer f.mu.Unlock()
	result := make([]Command, len(f.commands))
	copy(result, f.commands)
	return result
}

// ClearCommands clears the dispatched command log.
func (f *Camera) ClearCommands() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.commands = f.commands[:0]
}

// WriteSizes returns the byte count of every host Write call, in order.
func (f *Camera) WriteSizes() []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	result := make([]int, len(f.writes))
	copy(result, f.writes)
	return result
}

// SessionID returns the open session's ID, or false when none is open.
func (f *Camera) SessionID() (uint32, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sessionID, f.sessionOpen
}

// decodeParams splits a command or response payload into 32-bit
// little-endian parameters. Trailing bytes short of a parameter are
// dropped.
func decodeParams(payload []byte) []uint32 {
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

// encodeParams renders response parameters as 32-bit little-endian
// values.
func encodeParams(params []uint32) []byte {
	if len(params) == 0 {
		return nil
	}
	var w wire.Writer
	for _, p := range params {
		w.U32(p)
	}
	return w.Bytes()
}

// Compile-time interface satisfaction check.
var _ transport.Transport = (*Camera)(nil)
