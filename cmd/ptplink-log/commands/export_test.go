package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ptplink/ptplink-go/pkg/log"
	"github.com/ptplink/ptplink-go/pkg/wire"
)

func createTestLogFile(t *testing.T, events []log.Event) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "test.plog")

	logger, err := log.NewFileLogger(path)
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}

	for _, e := range events {
		logger.Log(e)
	}
	logger.Close()

	return path
}

func TestExportToJSONL(t *testing.T) {
	ts := time.Date(2026, 2, 3, 14, 30, 5, 123456000, time.UTC)
	events := []log.Event{
		{
			Time:      ts,
			LinkID:    "cafe0123",
			Direction: log.DirectionOut,
			Layer:     log.LayerContainer,
			Category:  log.CategoryMessage,
			Kind:      wire.KindCommand,
			Code:      uint16(wire.OpGetDeviceInfo),
			TID:       1,
			Size:      12,
		},
		{
			Time:      ts.Add(time.Second),
			LinkID:    "cafe0123",
			Direction: log.DirectionIn,
			Layer:     log.LayerContainer,
			Category:  log.CategoryMessage,
			Kind:      wire.KindResponse,
			Code:      uint16(wire.RespOK),
			TID:       1,
			Size:      12,
		},
	}

	path := createTestLogFile(t, events)

	// Export to JSONL in memory (via temp file)
	outPath := filepath.Join(t.TempDir(), "out.jsonl")
	err := RunExport(path, "jsonl", outPath)
	if err != nil {
		t.Fatalf("RunExport failed: %v", err)
	}

	// Read and verify
	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Errorf("expected 2 lines, got %d", len(lines))
	}

	// Parse first line
	var event1 map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &event1); err != nil {
		t.Errorf("failed to parse line 1: %v", err)
	}
	if event1["LinkID"] != "cafe0123" {
		t.Errorf("expected LinkID cafe0123, got %v", event1["LinkID"])
	}
}

func TestExportToCSV(t *testing.T) {
	ts := time.Date(2026, 2, 3, 14, 30, 5, 0, time.UTC)
	events := []log.Event{
		{
			Time:      ts,
			LinkID:    "cafe0123",
			Direction: log.DirectionOut,
			Layer:     log.LayerContainer,
			Category:  log.CategoryMessage,
			Kind:      wire.KindCommand,
			Code:      uint16(wire.OpOpenSession),
			TID:       1,
			Size:      16,
		},
	}

	path := createTestLogFile(t, events)

	outPath := filepath.Join(t.TempDir(), "out.csv")
	err := RunExport(path, "csv", outPath)
	if err != nil {
		t.Fatalf("RunExport failed: %v", err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}

	// Check header
	if !strings.HasPrefix(string(data), "timestamp,link_id,direction,layer,category") {
		t.Errorf("expected CSV header, got: %s", string(data[:50]))
	}

	// Check data row exists
	lines := strings.Split(string(data), "\n")
	if len(lines) < 2 {
		t.Errorf("expected header + data row, got %d lines", len(lines))
	}
	if !strings.Contains(lines[1], "COMMAND") {
		t.Errorf("expected kind column in data row, got: %s", lines[1])
	}
	if !strings.Contains(lines[1], "0x1002") {
		t.Errorf("expected code column in data row, got: %s", lines[1])
	}
}

func TestExportWritesToStdout(t *testing.T) {
	ts := time.Date(2026, 2, 3, 14, 30, 5, 0, time.UTC)
	events := []log.Event{
		{
			Time:      ts,
			LinkID:    "cafe0123",
			Direction: log.DirectionOut,
			Layer:     log.LayerTransport,
			Category:  log.CategoryMessage,
			Size:      512,
		},
	}

	path := createTestLogFile(t, events)

	// Capture stdout
	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	err := RunExport(path, "jsonl", "") // empty output means stdout

	w.Close()
	os.Stdout = oldStdout

	if err != nil {
		t.Fatalf("RunExport failed: %v", err)
	}

	var buf bytes.Buffer
	buf.ReadFrom(r)

	if buf.Len() == 0 {
		t.Error("expected output to stdout")
	}
}

func TestExportUnknownFormat(t *testing.T) {
	ts := time.Date(2026, 2, 3, 14, 30, 5, 0, time.UTC)
	events := []log.Event{
		{
			Time:   ts,
			LinkID: "cafe0123",
			Layer:  log.LayerTransport,
		},
	}

	path := createTestLogFile(t, events)
	outPath := filepath.Join(t.TempDir(), "out.xml")

	err := RunExport(path, "xml", outPath)
	if err == nil {
		t.Error("expected error for unknown format")
	}
	if !strings.Contains(err.Error(), "unknown format") {
		t.Errorf("expected 'unknown format' error, got: %v", err)
	}
}
