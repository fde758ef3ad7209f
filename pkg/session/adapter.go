package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/ptplink/ptplink-go/pkg/camera"
	"github.com/ptplink/ptplink-go/pkg/log"
	"github.com/ptplink/ptplink-go/pkg/transport"
	"github.com/ptplink/ptplink-go/pkg/wire"
)

// ErrInvalidState rejects an operation outside its required state.
var ErrInvalidState = errors.New("invalid session state")

// DefaultSessionID is the session identifier opened when
// Config.SessionID is zero. Session 0 is reserved by the protocol.
const DefaultSessionID = 3

// Opener supplies the bulk transport for a link.
type Opener interface {
	// Open establishes the device connection. It fails with
	// transport.ErrNotFound when no matching device appears before the
	// configured timeout.
	Open(ctx context.Context) (transport.Transport, error)
}

// OpenerFunc adapts a function to the Opener interface.
type OpenerFunc func(ctx context.Context) (transport.Transport, error)

// Open calls f.
func (f OpenerFunc) Open(ctx context.Context) (transport.Transport, error) { return f(ctx) }

// Config configures an Adapter.
type Config struct {
	// SessionID is sent with OpenSession (default: DefaultSessionID).
	SessionID uint32

	// Engine tunes the transaction engine. Its LinkID and Capture
	// fields are managed by the adapter and overwritten on connect.
	Engine camera.Config

	// Capture receives protocol and state change events.
	Capture log.Logger

	// OnStateChange is called after each state transition. It must not
	// call back into the Adapter.
	OnStateChange func(old, new State)
}

// Adapter guards a transaction engine with the link lifecycle. All
// methods serialize on an internal lock; the engine below performs no
// locking of its own.
type Adapter struct {
	mu     sync.RWMutex
	state  State
	opener Opener
	config Config

	linkID string
	cam    *camera.Camera
}

// New creates an adapter in the DISCONNECTED state.
func New(opener Opener, config Config) *Adapter {
	if config.SessionID == 0 {
		config.SessionID = DefaultSessionID
	}
	return &Adapter{opener: opener, config: config}
}

// State returns the current lifecycle state.
func (a *Adapter) State() State {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.state
}

// LinkID returns the identifier minted for the current connection, or
// an empty string when disconnected.
func (a *Adapter) LinkID() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.linkID
}

// Connect opens the transport and moves the link to CONNECTED. A fresh
// link identifier is minted for capture correlation.
func (a *Adapter) Connect(ctx context.Context) error {
	a.mu.Lock()
	if a.state != StateDisconnected {
		err := a.stateErr(StateDisconnected)
		a.mu.Unlock()
		return err
	}

	t, err := a.opener.Open(ctx)
	if err != nil {
		a.mu.Unlock()
		return err
	}

	engine := a.config.Engine
	engine.LinkID = uuid.New().String()
	engine.Capture = a.config.Capture

	a.cam = camera.New(t, engine)
	a.linkID = engine.LinkID
	a.logEndpoints(t.Endpoints())
	from := a.shift(StateConnected)
	a.mu.Unlock()

	a.notify(from, StateConnected)
	return nil
}

// OpenSession opens the configured protocol session and moves the link
// to SESSION_OPEN.
func (a *Adapter) OpenSession(ctx context.Context) error {
	a.mu.Lock()
	if a.state != StateConnected {
		err := a.stateErr(StateConnected)
		a.mu.Unlock()
		return err
	}

	if err := a.cam.OpenSession(ctx, a.config.SessionID); err != nil {
		return a.finish(err)
	}

	from := a.shift(StateSessionOpen)
	a.mu.Unlock()

	a.notify(from, StateSessionOpen)
	return nil
}

// CloseSession closes the protocol session. The link returns to
// CONNECTED even when the camera rejects the close, so the caller may
// retry with a fresh OpenSession.
func (a *Adapter) CloseSession(ctx context.Context) error {
	a.mu.Lock()
	if a.state != StateSessionOpen {
		err := a.stateErr(StateSessionOpen)
		a.mu.Unlock()
		return err
	}

	err := a.cam.CloseSession(ctx)

	from := a.shift(StateConnected)
	a.mu.Unlock()

	a.notify(from, StateConnected)
	return err
}

// Disconnect releases the link from any state. An open session is
// closed best-effort before the transport is released.
func (a *Adapter) Disconnect(ctx context.Context) error {
	a.mu.Lock()
	if a.state == StateDisconnected {
		a.mu.Unlock()
		return nil
	}

	if a.state == StateSessionOpen {
		// best effort, the transport goes away regardless
		_ = a.cam.CloseSession(ctx)
	}

	var err error
	if a.cam != nil {
		err = a.cam.Close()
		a.cam = nil
	}

	from := a.shift(StateDisconnected)
	a.linkID = ""
	a.mu.Unlock()

	a.notify(from, StateDisconnected)
	return err
}

// logEndpoints records the claimed endpoint set in the capture stream.
// Replay backends recover the bulk packet size from this event. Call
// with the lock held.
func (a *Adapter) logEndpoints(ep transport.EndpointInfo) {
	if a.config.Capture == nil {
		return
	}
	detail := fmt.Sprintf("bulk-in 0x%02X bulk-out 0x%02X mps %d",
		ep.BulkIn, ep.BulkOut, ep.MaxPacketSize)
	a.config.Capture.Log(log.TransportEvent(a.linkID, detail, ep.MaxPacketSize))
}

// shift transitions to the given state and records the change in the
// capture stream. Call with the lock held.
func (a *Adapter) shift(to State) State {
	from := a.state
	a.state = to
	if a.config.Capture != nil {
		a.config.Capture.Log(log.StateChangeEvent(a.linkID, log.LayerSession,
			from.String(), to.String()))
	}
	return from
}

// notify fires the state change callback. Call after releasing the
// lock.
func (a *Adapter) notify(from, to State) {
	if a.config.OnStateChange != nil {
		a.config.OnStateChange(from, to)
	}
}

// stateErr describes a state mismatch. Call with the lock held.
func (a *Adapter) stateErr(required State) error {
	return fmt.Errorf("%w: requires %s, link is %s", ErrInvalidState, required, a.state)
}

// begin acquires the lock when the link is in the required state. The
// lock is held until the matching finish call.
func (a *Adapter) begin(required State) (*camera.Camera, error) {
	a.mu.Lock()
	if a.state != required {
		err := a.stateErr(required)
		a.mu.Unlock()
		return nil, err
	}
	return a.cam, nil
}

// finish releases the lock taken by begin. Unrecoverable failures park
// the link in ERROR; response codes leave the session usable.
func (a *Adapter) finish(err error) error {
	if err == nil || !unrecoverable(err) {
		a.mu.Unlock()
		return err
	}

	from := a.shift(StateError)
	a.mu.Unlock()

	a.notify(from, StateError)
	return err
}

// unrecoverable reports whether err leaves the byte stream in an
// unknown position. Only closing the link recovers from these.
func unrecoverable(err error) bool {
	return errors.Is(err, wire.ErrMalformed) || errors.Is(err, transport.ErrTransport)
}
