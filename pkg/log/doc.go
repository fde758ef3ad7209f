// Package log provides protocol capture for camera links.
//
// This package defines the Logger interface and the Event record for
// capturing protocol activity at multiple layers (transport, container,
// transaction, session). It is separate from operational logging (slog):
// capture produces a complete machine-readable trace of every container
// that crossed the link, for debugging and offline replay.
//
// # Basic Usage
//
// Applications configure capture by providing a Logger implementation:
//
//	// For development: print events to the console via slog
//	cfg.Capture = log.NewSlogAdapter(slog.Default())
//
//	// For field captures: write a binary file
//	cfg.Capture, _ = log.NewFileLogger("session.plog")
//
//	// Both at once
//	cfg.Capture = log.NewMultiLogger(
//	    log.NewSlogAdapter(slog.Default()),
//	    fileLogger,
//	)
//
// # Event Layers
//
// Events are captured at multiple layers:
//   - Transport: raw bulk transfer boundaries
//   - Container: every encoded/decoded container, payload truncated
//   - Transaction: one summary per command/data/response exchange
//   - Session: link and session state changes
//
// # File Format
//
// Capture files are a raw CBOR event stream, .plog by convention. The
// ptplink-log CLI provides viewing, filtering, statistics and export;
// transport/replay can impersonate the camera side of a capture.
package log
