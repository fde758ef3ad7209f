package forward

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
)

// ErrQueueFull marks a packet dropped because the queue was at
// capacity when a newer one arrived.
var ErrQueueFull = errors.New("forward queue full")

// DefaultMaxQueue is the queue bound used when Config.MaxQueue is zero.
const DefaultMaxQueue = 64

// State represents the manager lifecycle state.
type State uint8

const (
	// StateIdle indicates the worker is not running. Packets may still
	// be enqueued and are kept for the next start.
	StateIdle State = iota

	// StateStarting indicates the worker is launching.
	StateStarting

	// StateRunning indicates packets are being forwarded.
	StateRunning

	// StatePaused indicates forwarding is held by the caller.
	StatePaused

	// StateStopping indicates the worker is shutting down.
	StateStopping

	// StateError indicates the sender failed. Resume retries, starting
	// with the packet that failed.
	StateError
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "IDLE"
	case StateStarting:
		return "STARTING"
	case StateRunning:
		return "RUNNING"
	case StatePaused:
		return "PAUSED"
	case StateStopping:
		return "STOPPING"
	case StateError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Config holds forwarding configuration.
type Config struct {
	// MaxQueue bounds the number of buffered packets. When full, the
	// oldest packet is dropped to admit a new one (default:
	// DefaultMaxQueue).
	MaxQueue int
}

// Stats is a snapshot of the forwarding counters.
type Stats struct {
	// ForwardedPackets counts successful sends.
	ForwardedPackets uint64

	// ForwardedBytes sums the payload bytes of successful sends.
	ForwardedBytes uint64

	// DroppedPackets counts packets evicted on overflow.
	DroppedPackets uint64

	// QueueDepth is the number of packets currently buffered.
	QueueDepth int
}

// Manager buffers packets and forwards them through a Sender from a
// single worker goroutine.
type Manager struct {
	mu        sync.Mutex
	state     State
	queue     []Packet
	maxQueue  int
	sender    Sender
	listeners []Listener

	forwardedPackets atomic.Uint64
	forwardedBytes   atomic.Uint64
	droppedPackets   atomic.Uint64

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	wake   chan struct{}
}

// NewManager creates an idle manager forwarding through sender.
func NewManager(sender Sender, config Config) *Manager {
	maxQueue := config.MaxQueue
	if maxQueue <= 0 {
		maxQueue = DefaultMaxQueue
	}
	return &Manager{
		sender:   sender,
		maxQueue: maxQueue,
		wake:     make(chan struct{}, 1),
	}
}

// State returns the current lifecycle state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Stats returns a snapshot of the counters.
func (m *Manager) Stats() Stats {
	m.mu.Lock()
	depth := len(m.queue)
	m.mu.Unlock()

	return Stats{
		ForwardedPackets: m.forwardedPackets.Load(),
		ForwardedBytes:   m.forwardedBytes.Load(),
		DroppedPackets:   m.droppedPackets.Load(),
		QueueDepth:       depth,
	}
}

// AddListener registers a pipeline observer. Listeners are invoked
// from the worker goroutine and must not block.
func (m *Manager) AddListener(l Listener) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, l)
}

// Start launches the worker. Packets enqueued while idle are forwarded
// first. A manager that is not idle is left as is.
func (m *Manager) Start() {
	m.mu.Lock()
	if m.state != StateIdle {
		m.mu.Unlock()
		return
	}
	m.state = StateStarting
	m.ctx, m.cancel = context.WithCancel(context.Background())
	m.wg.Add(1)
	go m.run()
	m.state = StateRunning
	m.mu.Unlock()

	m.signal()
}

// Stop shuts the worker down and returns once it has exited. Buffered
// packets are kept for a later Start.
func (m *Manager) Stop() {
	m.mu.Lock()
	if m.state == StateIdle {
		m.mu.Unlock()
		return
	}
	m.state = StateStopping
	cancel := m.cancel
	m.mu.Unlock()

	cancel()
	m.wg.Wait()

	m.mu.Lock()
	m.state = StateIdle
	m.mu.Unlock()
}

// Pause holds forwarding. A packet already handed to the sender
// completes first.
func (m *Manager) Pause() {
	m.mu.Lock()
	if m.state == StateRunning {
		m.state = StatePaused
	}
	m.mu.Unlock()
}

// Resume releases a paused or errored manager and retries the queue.
func (m *Manager) Resume() {
	m.mu.Lock()
	if m.state == StatePaused || m.state == StateError {
		m.state = StateRunning
	}
	m.mu.Unlock()

	m.signal()
}

// Enqueue buffers a packet for forwarding, in any state. At capacity
// the oldest packet is evicted and reported to listeners with
// ErrQueueFull.
func (m *Manager) Enqueue(p Packet) {
	var evicted *Packet

	m.mu.Lock()
	if len(m.queue) >= m.maxQueue {
		old := m.queue[0]
		m.queue = append(m.queue[:0], m.queue[1:]...)
		evicted = &old
	}
	m.queue = append(m.queue, p)
	listeners := m.listeners
	m.mu.Unlock()

	if evicted != nil {
		m.droppedPackets.Add(1)
		for _, l := range listeners {
			l.ForwardFailed(*evicted, ErrQueueFull)
		}
	}

	m.signal()
}

// signal wakes the worker if one is listening.
func (m *Manager) signal() {
	select {
	case m.wake <- struct{}{}:
	default:
	}
}

// run is the worker loop.
func (m *Manager) run() {
	defer m.wg.Done()

	for {
		select {
		case <-m.ctx.Done():
			return
		case <-m.wake:
		}
		m.drain()
	}
}

// drain forwards queued packets until the queue empties, the state
// leaves RUNNING, or a send fails.
func (m *Manager) drain() {
	for {
		m.mu.Lock()
		if m.state != StateRunning || len(m.queue) == 0 {
			m.mu.Unlock()
			return
		}
		p := m.queue[0]
		m.queue = append(m.queue[:0], m.queue[1:]...)
		listeners := m.listeners
		m.mu.Unlock()

		if err := m.sender.Send(m.ctx, p); err != nil {
			m.mu.Lock()
			m.queue = append([]Packet{p}, m.queue...)
			if m.state == StateRunning {
				m.state = StateError
			}
			m.mu.Unlock()

			for _, l := range listeners {
				l.ForwardFailed(p, err)
			}
			return
		}

		m.forwardedPackets.Add(1)
		m.forwardedBytes.Add(uint64(len(p.Bytes)))
		for _, l := range listeners {
			l.PacketForwarded(p)
		}
	}
}
