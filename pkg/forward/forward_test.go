package forward_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ptplink/ptplink-go/pkg/forward"
)

var errSendFailed = errors.New("uplink unavailable")

// chanSender delivers packets to a channel, optionally failing the
// next few sends.
type chanSender struct {
	ch   chan forward.Packet
	fail atomic.Int32
}

func newChanSender() *chanSender {
	return &chanSender{ch: make(chan forward.Packet, 32)}
}

func (s *chanSender) Send(ctx context.Context, p forward.Packet) error {
	if s.fail.Load() > 0 {
		s.fail.Add(-1)
		return errSendFailed
	}
	select {
	case s.ch <- p:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *chanSender) next(t *testing.T) forward.Packet {
	t.Helper()
	select {
	case p := <-s.ch:
		return p
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a forwarded packet")
		return forward.Packet{}
	}
}

// recordListener collects pipeline callbacks.
type recordListener struct {
	mu        sync.Mutex
	forwarded []forward.Packet
	failed    []error
}

func (l *recordListener) PacketForwarded(p forward.Packet) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.forwarded = append(l.forwarded, p)
}

func (l *recordListener) ForwardFailed(p forward.Packet, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.failed = append(l.failed, err)
}

func (l *recordListener) counts() (int, int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.forwarded), len(l.failed)
}

func (l *recordListener) lastError() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.failed) == 0 {
		return nil
	}
	return l.failed[len(l.failed)-1]
}

// waitFor polls until the condition holds or the deadline passes.
func waitFor(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal(msg)
}

func TestKindString(t *testing.T) {
	cases := []struct {
		kind forward.Kind
		want string
	}{
		{forward.KindImage, "IMAGE"},
		{forward.KindThumbnail, "THUMBNAIL"},
		{forward.KindMetadata, "METADATA"},
		{forward.KindCommand, "COMMAND"},
		{forward.KindResponse, "RESPONSE"},
		{forward.Kind(99), "UNKNOWN"},
	}
	for _, c := range cases {
		if got := c.kind.String(); got != c.want {
			t.Errorf("Kind(%d).String() = %q, want %q", c.kind, got, c.want)
		}
	}
}

func TestNewPacket(t *testing.T) {
	before := time.Now()
	p := forward.NewPacket(forward.KindThumbnail, []byte{1, 2, 3})

	if p.Kind != forward.KindThumbnail {
		t.Errorf("Kind = %v, want KindThumbnail", p.Kind)
	}
	if len(p.Bytes) != 3 {
		t.Errorf("Bytes = %v, want 3 bytes", p.Bytes)
	}
	if p.Timestamp.Before(before) {
		t.Error("Timestamp predates NewPacket")
	}
}

func TestStartStop(t *testing.T) {
	m := forward.NewManager(newChanSender(), forward.Config{})

	if m.State() != forward.StateIdle {
		t.Errorf("initial State() = %v, want StateIdle", m.State())
	}

	m.Start()
	if m.State() != forward.StateRunning {
		t.Errorf("State() after Start = %v, want StateRunning", m.State())
	}

	// Start while running is a no-op
	m.Start()
	if m.State() != forward.StateRunning {
		t.Errorf("State() after second Start = %v, want StateRunning", m.State())
	}

	m.Stop()
	if m.State() != forward.StateIdle {
		t.Errorf("State() after Stop = %v, want StateIdle", m.State())
	}

	// Stop while idle is a no-op
	m.Stop()
}

func TestForwardDelivery(t *testing.T) {
	sender := newChanSender()
	listener := &recordListener{}
	m := forward.NewManager(sender, forward.Config{})
	m.AddListener(listener)
	m.Start()
	defer m.Stop()

	payloads := [][]byte{
		make([]byte, 100),
		make([]byte, 250),
		make([]byte, 50),
	}
	for _, b := range payloads {
		m.Enqueue(forward.NewPacket(forward.KindImage, b))
	}

	for i, b := range payloads {
		p := sender.next(t)
		if len(p.Bytes) != len(b) {
			t.Errorf("packet %d carries %d bytes, want %d", i, len(p.Bytes), len(b))
		}
	}

	waitFor(t, func() bool {
		f, _ := listener.counts()
		return f == 3
	}, "listener did not observe 3 forwarded packets")

	stats := m.Stats()
	if stats.ForwardedPackets != 3 {
		t.Errorf("ForwardedPackets = %d, want 3", stats.ForwardedPackets)
	}
	if stats.ForwardedBytes != 400 {
		t.Errorf("ForwardedBytes = %d, want 400", stats.ForwardedBytes)
	}
	if stats.DroppedPackets != 0 {
		t.Errorf("DroppedPackets = %d, want 0", stats.DroppedPackets)
	}
	if stats.QueueDepth != 0 {
		t.Errorf("QueueDepth = %d, want 0", stats.QueueDepth)
	}
}

func TestDropOldestOnOverflow(t *testing.T) {
	sender := newChanSender()
	listener := &recordListener{}
	m := forward.NewManager(sender, forward.Config{MaxQueue: 2})
	m.AddListener(listener)

	// Not started: packets accumulate
	m.Enqueue(forward.NewPacket(forward.KindImage, []byte{1}))
	m.Enqueue(forward.NewPacket(forward.KindImage, []byte{2}))
	m.Enqueue(forward.NewPacket(forward.KindImage, []byte{3}))

	stats := m.Stats()
	if stats.QueueDepth != 2 {
		t.Fatalf("QueueDepth = %d, want 2", stats.QueueDepth)
	}
	if stats.DroppedPackets != 1 {
		t.Errorf("DroppedPackets = %d, want 1", stats.DroppedPackets)
	}
	if err := listener.lastError(); !errors.Is(err, forward.ErrQueueFull) {
		t.Errorf("listener error = %v, want ErrQueueFull", err)
	}

	// The survivors are the two newest, in order
	m.Start()
	defer m.Stop()

	if p := sender.next(t); p.Bytes[0] != 2 {
		t.Errorf("first survivor = %d, want 2", p.Bytes[0])
	}
	if p := sender.next(t); p.Bytes[0] != 3 {
		t.Errorf("second survivor = %d, want 3", p.Bytes[0])
	}
}

func TestPauseResume(t *testing.T) {
	sender := newChanSender()
	m := forward.NewManager(sender, forward.Config{})
	m.Start()
	defer m.Stop()

	m.Pause()
	if m.State() != forward.StatePaused {
		t.Fatalf("State() = %v, want StatePaused", m.State())
	}

	m.Enqueue(forward.NewPacket(forward.KindImage, []byte{1}))
	m.Enqueue(forward.NewPacket(forward.KindImage, []byte{2}))

	time.Sleep(20 * time.Millisecond)
	if got := len(sender.ch); got != 0 {
		t.Fatalf("sender received %d packets while paused, want 0", got)
	}
	if depth := m.Stats().QueueDepth; depth != 2 {
		t.Fatalf("QueueDepth = %d, want 2", depth)
	}

	m.Resume()
	if m.State() != forward.StateRunning {
		t.Errorf("State() after Resume = %v, want StateRunning", m.State())
	}
	sender.next(t)
	sender.next(t)
}

func TestSenderFailureParksError(t *testing.T) {
	sender := newChanSender()
	sender.fail.Store(1)
	listener := &recordListener{}
	m := forward.NewManager(sender, forward.Config{})
	m.AddListener(listener)
	m.Start()
	defer m.Stop()

	m.Enqueue(forward.NewPacket(forward.KindImage, []byte{42}))

	waitFor(t, func() bool {
		return m.State() == forward.StateError
	}, "manager did not reach StateError after a send failure")

	if err := listener.lastError(); !errors.Is(err, errSendFailed) {
		t.Errorf("listener error = %v, want errSendFailed", err)
	}
	if depth := m.Stats().QueueDepth; depth != 1 {
		t.Errorf("QueueDepth = %d, want 1 (failed packet requeued)", depth)
	}

	// The failed packet goes out first after Resume
	m.Resume()
	if p := sender.next(t); p.Bytes[0] != 42 {
		t.Errorf("retried packet = %d, want 42", p.Bytes[0])
	}
	if stats := m.Stats(); stats.ForwardedPackets != 1 {
		t.Errorf("ForwardedPackets = %d, want 1", stats.ForwardedPackets)
	}
}

func TestStopKeepsQueue(t *testing.T) {
	sender := newChanSender()
	m := forward.NewManager(sender, forward.Config{})

	m.Enqueue(forward.NewPacket(forward.KindMetadata, []byte{7}))
	m.Stop() // idle no-op, queue untouched

	if depth := m.Stats().QueueDepth; depth != 1 {
		t.Fatalf("QueueDepth = %d, want 1", depth)
	}

	m.Start()
	if p := sender.next(t); p.Kind != forward.KindMetadata {
		t.Errorf("Kind = %v, want KindMetadata", p.Kind)
	}
	m.Stop()

	// Enqueue across a stop/start cycle
	m.Enqueue(forward.NewPacket(forward.KindImage, []byte{8}))
	m.Start()
	defer m.Stop()
	if p := sender.next(t); p.Bytes[0] != 8 {
		t.Errorf("packet = %d, want 8", p.Bytes[0])
	}
}
