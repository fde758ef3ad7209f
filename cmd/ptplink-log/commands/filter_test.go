package commands

import (
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/ptplink/ptplink-go/pkg/log"
	"github.com/ptplink/ptplink-go/pkg/wire"
)

func TestFilterByLinkID(t *testing.T) {
	ts := time.Date(2026, 2, 3, 14, 30, 5, 0, time.UTC)
	events := []log.Event{
		{Time: ts, LinkID: "link-1", Category: log.CategoryMessage},
		{Time: ts, LinkID: "link-2", Category: log.CategoryMessage},
		{Time: ts, LinkID: "link-1", Category: log.CategoryMessage},
	}

	path := createTestLogFile(t, events)
	outPath := filepath.Join(t.TempDir(), "filtered.plog")

	err := RunFilter(path, FilterOptions{
		Output: outPath,
		Link:   "link-1",
	})
	if err != nil {
		t.Fatalf("RunFilter failed: %v", err)
	}

	// Verify output
	reader, err := log.NewReader(outPath)
	if err != nil {
		t.Fatalf("failed to open output: %v", err)
	}
	defer reader.Close()

	count := 0
	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("failed to read event: %v", err)
		}
		if event.LinkID != "link-1" {
			t.Errorf("expected link-1, got %s", event.LinkID)
		}
		count++
	}

	if count != 2 {
		t.Errorf("expected 2 events, got %d", count)
	}
}

func TestFilterByTimeRange(t *testing.T) {
	base := time.Date(2026, 2, 3, 10, 0, 0, 0, time.UTC)
	events := []log.Event{
		{Time: base, LinkID: "link-1", Category: log.CategoryMessage},
		{Time: base.Add(time.Hour), LinkID: "link-1", Category: log.CategoryMessage},
		{Time: base.Add(2 * time.Hour), LinkID: "link-1", Category: log.CategoryMessage},
	}

	path := createTestLogFile(t, events)
	outPath := filepath.Join(t.TempDir(), "filtered.plog")

	err := RunFilter(path, FilterOptions{
		Output:    outPath,
		TimeStart: base.Add(30 * time.Minute).Format(time.RFC3339),
		TimeEnd:   base.Add(90 * time.Minute).Format(time.RFC3339),
	})
	if err != nil {
		t.Fatalf("RunFilter failed: %v", err)
	}

	// Verify output - should only have the 10:00 + 1hr event
	reader, err := log.NewReader(outPath)
	if err != nil {
		t.Fatalf("failed to open output: %v", err)
	}
	defer reader.Close()

	count := 0
	for {
		_, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("failed to read event: %v", err)
		}
		count++
	}

	if count != 1 {
		t.Errorf("expected 1 event, got %d", count)
	}
}

func TestFilterByTID(t *testing.T) {
	ts := time.Date(2026, 2, 3, 14, 30, 5, 0, time.UTC)
	events := []log.Event{
		{Time: ts, Layer: log.LayerContainer, Kind: wire.KindCommand, TID: 4, Category: log.CategoryMessage},
		{Time: ts, Layer: log.LayerContainer, Kind: wire.KindCommand, TID: 5, Category: log.CategoryMessage},
		{Time: ts, Layer: log.LayerContainer, Kind: wire.KindResponse, TID: 5, Category: log.CategoryMessage},
	}

	path := createTestLogFile(t, events)
	outPath := filepath.Join(t.TempDir(), "filtered.plog")

	err := RunFilter(path, FilterOptions{
		Output: outPath,
		TID:    "5",
	})
	if err != nil {
		t.Fatalf("RunFilter failed: %v", err)
	}

	reader, err := log.NewReader(outPath)
	if err != nil {
		t.Fatalf("failed to open output: %v", err)
	}
	defer reader.Close()

	count := 0
	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("failed to read event: %v", err)
		}
		if event.TID != 5 {
			t.Errorf("expected TID 5, got %d", event.TID)
		}
		count++
	}

	if count != 2 {
		t.Errorf("expected 2 events, got %d", count)
	}
}

func TestFilterByCode(t *testing.T) {
	ts := time.Date(2026, 2, 3, 14, 30, 5, 0, time.UTC)
	events := []log.Event{
		{Time: ts, Layer: log.LayerContainer, Kind: wire.KindCommand, Code: uint16(wire.OpGetObject), TID: 1, Category: log.CategoryMessage},
		{Time: ts, Layer: log.LayerContainer, Kind: wire.KindCommand, Code: uint16(wire.OpGetThumb), TID: 2, Category: log.CategoryMessage},
	}

	path := createTestLogFile(t, events)
	outPath := filepath.Join(t.TempDir(), "filtered.plog")

	// Codes accept hex with the 0x prefix
	err := RunFilter(path, FilterOptions{
		Output: outPath,
		Code:   "0x1009",
	})
	if err != nil {
		t.Fatalf("RunFilter failed: %v", err)
	}

	reader, err := log.NewReader(outPath)
	if err != nil {
		t.Fatalf("failed to open output: %v", err)
	}
	defer reader.Close()

	count := 0
	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("failed to read event: %v", err)
		}
		if event.Code != uint16(wire.OpGetObject) {
			t.Errorf("expected GetObject code, got 0x%04X", event.Code)
		}
		count++
	}

	if count != 1 {
		t.Errorf("expected 1 event, got %d", count)
	}
}

func TestFilterCommandByLayer(t *testing.T) {
	ts := time.Date(2026, 2, 3, 14, 30, 5, 0, time.UTC)
	events := []log.Event{
		{Time: ts, Layer: log.LayerTransport, Category: log.CategoryMessage},
		{Time: ts, Layer: log.LayerContainer, Category: log.CategoryMessage},
		{Time: ts, Layer: log.LayerSession, Category: log.CategoryMessage},
	}

	path := createTestLogFile(t, events)
	outPath := filepath.Join(t.TempDir(), "filtered.plog")

	err := RunFilter(path, FilterOptions{
		Output: outPath,
		Layer:  "container",
	})
	if err != nil {
		t.Fatalf("RunFilter failed: %v", err)
	}

	reader, err := log.NewReader(outPath)
	if err != nil {
		t.Fatalf("failed to open output: %v", err)
	}
	defer reader.Close()

	count := 0
	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("failed to read event: %v", err)
		}
		if event.Layer != log.LayerContainer {
			t.Errorf("expected container layer, got %v", event.Layer)
		}
		count++
	}

	if count != 1 {
		t.Errorf("expected 1 event, got %d", count)
	}
}

func TestFilterBadCode(t *testing.T) {
	ts := time.Date(2026, 2, 3, 14, 30, 5, 0, time.UTC)
	events := []log.Event{
		{Time: ts, Category: log.CategoryMessage},
	}

	path := createTestLogFile(t, events)
	outPath := filepath.Join(t.TempDir(), "filtered.plog")

	err := RunFilter(path, FilterOptions{
		Output: outPath,
		Code:   "shutter",
	})
	if err == nil {
		t.Fatal("expected error for unparseable code")
	}
}

func TestFilterWritesReadableCapture(t *testing.T) {
	ts := time.Date(2026, 2, 3, 14, 30, 5, 0, time.UTC)
	events := []log.Event{
		{Time: ts, LinkID: "link-1", Category: log.CategoryMessage},
	}

	path := createTestLogFile(t, events)
	outPath := filepath.Join(t.TempDir(), "filtered.plog")

	err := RunFilter(path, FilterOptions{
		Output: outPath,
	})
	if err != nil {
		t.Fatalf("RunFilter failed: %v", err)
	}

	// Output must round-trip through the capture reader
	reader, err := log.NewReader(outPath)
	if err != nil {
		t.Fatalf("failed to open output: %v", err)
	}
	defer reader.Close()

	event, err := reader.Next()
	if err != nil {
		t.Fatalf("failed to read event: %v", err)
	}

	if event.LinkID != "link-1" {
		t.Errorf("expected link-1, got %s", event.LinkID)
	}
}
