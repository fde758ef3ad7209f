package log

import (
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/ptplink/ptplink-go/pkg/wire"
)

func createTestLogFile(t *testing.T, events []Event) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "test.plog")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("failed to create test log: %v", err)
	}

	for _, e := range events {
		logger.Log(e)
	}
	logger.Close()

	return path
}

func readAll(t *testing.T, reader *Reader) []Event {
	t.Helper()

	var read []Event
	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		read = append(read, event)
	}
	return read
}

func TestReaderIteratesEvents(t *testing.T) {
	events := []Event{
		{Time: time.Now(), LinkID: "link-1", Direction: DirectionIn, Layer: LayerTransport, Category: CategoryMessage},
		{Time: time.Now(), LinkID: "link-2", Direction: DirectionOut, Layer: LayerContainer, Category: CategoryMessage},
		{Time: time.Now(), LinkID: "link-3", Direction: DirectionNone, Layer: LayerSession, Category: CategoryState},
	}

	path := createTestLogFile(t, events)

	reader, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer reader.Close()

	read := readAll(t, reader)

	if len(read) != 3 {
		t.Fatalf("got %d events, want 3", len(read))
	}

	// Verify order
	if read[0].LinkID != "link-1" {
		t.Errorf("first event LinkID = %q, want %q", read[0].LinkID, "link-1")
	}
	if read[2].LinkID != "link-3" {
		t.Errorf("last event LinkID = %q, want %q", read[2].LinkID, "link-3")
	}
}

func TestReaderHandlesEmptyFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.plog")

	// Create empty file
	logger, _ := NewFileLogger(path)
	logger.Close()

	reader, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer reader.Close()

	event, err := reader.Next()
	if err != io.EOF {
		t.Errorf("expected io.EOF, got err=%v, event=%+v", err, event)
	}
}

func TestReaderExhaustsFile(t *testing.T) {
	events := []Event{
		{Time: time.Now(), LinkID: "link-1", Direction: DirectionIn, Layer: LayerTransport, Category: CategoryMessage},
	}

	path := createTestLogFile(t, events)

	reader, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer reader.Close()

	// Read first event
	_, err = reader.Next()
	if err != nil {
		t.Fatalf("first Next failed: %v", err)
	}

	// Second read should return EOF
	_, err = reader.Next()
	if err != io.EOF {
		t.Errorf("expected io.EOF after all events, got %v", err)
	}
}

func TestReaderFilterByLinkID(t *testing.T) {
	events := []Event{
		{Time: time.Now(), LinkID: "link-A", Direction: DirectionIn, Layer: LayerTransport, Category: CategoryMessage},
		{Time: time.Now(), LinkID: "link-B", Direction: DirectionOut, Layer: LayerContainer, Category: CategoryMessage},
		{Time: time.Now(), LinkID: "link-A", Direction: DirectionNone, Layer: LayerSession, Category: CategoryState},
		{Time: time.Now(), LinkID: "link-C", Direction: DirectionOut, Layer: LayerTransport, Category: CategoryMessage},
	}

	path := createTestLogFile(t, events)

	filter := Filter{LinkID: "link-A"}
	reader, err := NewFilteredReader(path, filter)
	if err != nil {
		t.Fatalf("NewFilteredReader failed: %v", err)
	}
	defer reader.Close()

	read := readAll(t, reader)

	if len(read) != 2 {
		t.Fatalf("got %d events, want 2", len(read))
	}

	for _, e := range read {
		if e.LinkID != "link-A" {
			t.Errorf("event has LinkID=%q, want %q", e.LinkID, "link-A")
		}
	}
}

func TestReaderFilterByLayer(t *testing.T) {
	events := []Event{
		{Time: time.Now(), LinkID: "link-1", Direction: DirectionIn, Layer: LayerTransport, Category: CategoryMessage},
		{Time: time.Now(), LinkID: "link-2", Direction: DirectionOut, Layer: LayerContainer, Category: CategoryMessage},
		{Time: time.Now(), LinkID: "link-3", Direction: DirectionIn, Layer: LayerContainer, Category: CategoryMessage},
		{Time: time.Now(), LinkID: "link-4", Direction: DirectionNone, Layer: LayerSession, Category: CategoryState},
	}

	path := createTestLogFile(t, events)

	layer := LayerContainer
	filter := Filter{Layer: &layer}
	reader, err := NewFilteredReader(path, filter)
	if err != nil {
		t.Fatalf("NewFilteredReader failed: %v", err)
	}
	defer reader.Close()

	read := readAll(t, reader)

	if len(read) != 2 {
		t.Fatalf("got %d events, want 2", len(read))
	}

	for _, e := range read {
		if e.Layer != LayerContainer {
			t.Errorf("event has Layer=%v, want %v", e.Layer, LayerContainer)
		}
	}
}

func TestReaderFilterByDirection(t *testing.T) {
	events := []Event{
		{Time: time.Now(), LinkID: "link-1", Direction: DirectionIn, Layer: LayerTransport, Category: CategoryMessage},
		{Time: time.Now(), LinkID: "link-2", Direction: DirectionOut, Layer: LayerContainer, Category: CategoryMessage},
		{Time: time.Now(), LinkID: "link-3", Direction: DirectionIn, Layer: LayerContainer, Category: CategoryMessage},
		{Time: time.Now(), LinkID: "link-4", Direction: DirectionOut, Layer: LayerTransport, Category: CategoryMessage},
	}

	path := createTestLogFile(t, events)

	dir := DirectionOut
	filter := Filter{Direction: &dir}
	reader, err := NewFilteredReader(path, filter)
	if err != nil {
		t.Fatalf("NewFilteredReader failed: %v", err)
	}
	defer reader.Close()

	read := readAll(t, reader)

	if len(read) != 2 {
		t.Fatalf("got %d events, want 2", len(read))
	}

	for _, e := range read {
		if e.Direction != DirectionOut {
			t.Errorf("event has Direction=%v, want %v", e.Direction, DirectionOut)
		}
	}
}

func TestReaderFilterByCode(t *testing.T) {
	events := []Event{
		ContainerEvent("link-1", DirectionOut, wire.KindCommand, uint16(wire.OpGetDeviceInfo), 0, 12, nil),
		ContainerEvent("link-1", DirectionIn, wire.KindResponse, uint16(wire.RespOK), 0, 12, nil),
		ContainerEvent("link-1", DirectionOut, wire.KindCommand, uint16(wire.OpOpenSession), 1, 16, nil),
		ContainerEvent("link-1", DirectionIn, wire.KindResponse, uint16(wire.RespOK), 1, 12, nil),
	}

	path := createTestLogFile(t, events)

	code := uint16(wire.RespOK)
	filter := Filter{Code: &code}
	reader, err := NewFilteredReader(path, filter)
	if err != nil {
		t.Fatalf("NewFilteredReader failed: %v", err)
	}
	defer reader.Close()

	read := readAll(t, reader)

	if len(read) != 2 {
		t.Fatalf("got %d events, want 2", len(read))
	}

	for _, e := range read {
		if e.Code != uint16(wire.RespOK) {
			t.Errorf("event has Code=0x%04X, want 0x%04X", e.Code, uint16(wire.RespOK))
		}
	}
}

func TestReaderFilterByTID(t *testing.T) {
	events := []Event{
		ContainerEvent("link-1", DirectionOut, wire.KindCommand, uint16(wire.OpGetObjectInfo), 5, 16, nil),
		ContainerEvent("link-1", DirectionIn, wire.KindData, uint16(wire.OpGetObjectInfo), 5, 160, nil),
		ContainerEvent("link-1", DirectionIn, wire.KindResponse, uint16(wire.RespOK), 5, 12, nil),
		ContainerEvent("link-1", DirectionOut, wire.KindCommand, uint16(wire.OpGetObject), 6, 16, nil),
	}

	path := createTestLogFile(t, events)

	tid := uint32(5)
	filter := Filter{TID: &tid}
	reader, err := NewFilteredReader(path, filter)
	if err != nil {
		t.Fatalf("NewFilteredReader failed: %v", err)
	}
	defer reader.Close()

	read := readAll(t, reader)

	if len(read) != 3 {
		t.Fatalf("got %d events, want 3", len(read))
	}

	for _, e := range read {
		if e.TID != 5 {
			t.Errorf("event has TID=%d, want 5", e.TID)
		}
	}
}

func TestReaderFilterByTimeRange(t *testing.T) {
	baseTime := time.Date(2026, 8, 15, 10, 0, 0, 0, time.UTC)

	events := []Event{
		{Time: baseTime.Add(-1 * time.Hour), LinkID: "link-1", Direction: DirectionIn, Layer: LayerTransport, Category: CategoryMessage},
		{Time: baseTime, LinkID: "link-2", Direction: DirectionOut, Layer: LayerContainer, Category: CategoryMessage},
		{Time: baseTime.Add(30 * time.Minute), LinkID: "link-3", Direction: DirectionNone, Layer: LayerSession, Category: CategoryState},
		{Time: baseTime.Add(2 * time.Hour), LinkID: "link-4", Direction: DirectionOut, Layer: LayerTransport, Category: CategoryMessage},
	}

	path := createTestLogFile(t, events)

	start := baseTime.Add(-5 * time.Minute)
	end := baseTime.Add(1 * time.Hour)
	filter := Filter{
		TimeStart: &start,
		TimeEnd:   &end,
	}
	reader, err := NewFilteredReader(path, filter)
	if err != nil {
		t.Fatalf("NewFilteredReader failed: %v", err)
	}
	defer reader.Close()

	read := readAll(t, reader)

	if len(read) != 2 {
		t.Fatalf("got %d events, want 2 (events within time range)", len(read))
	}

	// Verify it's the middle two events
	if read[0].LinkID != "link-2" {
		t.Errorf("first event LinkID = %q, want %q", read[0].LinkID, "link-2")
	}
	if read[1].LinkID != "link-3" {
		t.Errorf("second event LinkID = %q, want %q", read[1].LinkID, "link-3")
	}
}

func TestReaderCombinedFilters(t *testing.T) {
	events := []Event{
		{Time: time.Now(), LinkID: "link-A", Direction: DirectionIn, Layer: LayerTransport, Category: CategoryMessage},
		{Time: time.Now(), LinkID: "link-A", Direction: DirectionOut, Layer: LayerContainer, Category: CategoryMessage},
		{Time: time.Now(), LinkID: "link-B", Direction: DirectionIn, Layer: LayerContainer, Category: CategoryMessage},
		{Time: time.Now(), LinkID: "link-A", Direction: DirectionIn, Layer: LayerContainer, Category: CategoryMessage},
	}

	path := createTestLogFile(t, events)

	layer := LayerContainer
	dir := DirectionIn
	filter := Filter{
		LinkID:    "link-A",
		Layer:     &layer,
		Direction: &dir,
	}
	reader, err := NewFilteredReader(path, filter)
	if err != nil {
		t.Fatalf("NewFilteredReader failed: %v", err)
	}
	defer reader.Close()

	read := readAll(t, reader)

	// Only the last event matches all criteria
	if len(read) != 1 {
		t.Fatalf("got %d events, want 1", len(read))
	}

	if read[0].LinkID != "link-A" || read[0].Layer != LayerContainer || read[0].Direction != DirectionIn {
		t.Error("event doesn't match all filter criteria")
	}
}
