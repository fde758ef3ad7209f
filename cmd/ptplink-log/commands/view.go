// Package commands implements the ptplink-log CLI commands.
package commands

import (
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/ptplink/ptplink-go/pkg/log"
	"github.com/ptplink/ptplink-go/pkg/wire"
)

// ViewFilter specifies criteria for filtering events in the view command.
type ViewFilter struct {
	Layer     *log.Layer
	Direction *log.Direction
	Category  *log.Category
}

// formatEvent writes a human-readable representation of the event to w.
func formatEvent(w io.Writer, event log.Event) {
	// Header line: timestamp [link:id] DIRECTION LAYER Type
	ts := event.Time.UTC().Format("2006-01-02T15:04:05.000000Z")
	linkID := shortenLinkID(event.LinkID)

	dir := event.Direction.String()
	if event.Direction == log.DirectionNone {
		dir = "-"
	}

	// Determine event type label
	var typeLabel string
	switch {
	case event.Category == log.CategoryState:
		typeLabel = "State"
	case event.Category == log.CategoryError:
		typeLabel = "Error"
	case event.Layer == log.LayerContainer:
		typeLabel = event.Kind.String()
	case event.Layer == log.LayerTransaction:
		typeLabel = "Transaction"
	case event.Layer == log.LayerTransport:
		typeLabel = "Transport"
	default:
		typeLabel = "Unknown"
	}

	fmt.Fprintf(w, "%s [link:%s] %-3s %s %s\n", ts, linkID, dir, event.Layer, typeLabel)

	// Type-specific details
	switch {
	case event.Category == log.CategoryState:
		formatStateDetails(w, event)
	case event.Category == log.CategoryError:
		formatErrorDetails(w, event)
	case event.Layer == log.LayerContainer:
		formatContainerDetails(w, event)
	case event.Layer == log.LayerTransaction:
		formatTransactionDetails(w, event)
	case event.Layer == log.LayerTransport:
		formatTransportDetails(w, event)
	}

	fmt.Fprintln(w) // Blank line between events
}

// shortenLinkID returns the first 8 characters of the link ID.
func shortenLinkID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}

// codeName resolves a code against the name space its container kind
// selects. Command and data containers carry operation codes.
func codeName(kind wire.Kind, code uint16) string {
	switch kind {
	case wire.KindCommand, wire.KindData:
		return wire.OpCode(code).String()
	case wire.KindResponse:
		return wire.RespCode(code).String()
	case wire.KindEvent:
		return wire.EventCode(code).String()
	default:
		return fmt.Sprintf("0x%04X", code)
	}
}

// formatParams renders command or response parameters as hex words.
func formatParams(params []uint32) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = fmt.Sprintf("0x%08X", p)
	}
	return strings.Join(parts, ", ")
}

// formatContainerDetails writes container-specific details.
func formatContainerDetails(w io.Writer, event log.Event) {
	fmt.Fprintf(w, "  Code: %s (0x%04X)\n", codeName(event.Kind, event.Code), event.Code)
	fmt.Fprintf(w, "  TID: %d\n", event.TID)
	fmt.Fprintf(w, "  Size: %d bytes\n", event.Size)
	if len(event.Payload) > 0 {
		fmt.Fprintf(w, "  Payload: %s", hex.EncodeToString(event.Payload))
		if event.Truncated {
			fmt.Fprintf(w, " (truncated)")
		}
		fmt.Fprintln(w)
	}
}

// formatTransactionDetails writes transaction summary details.
func formatTransactionDetails(w io.Writer, event log.Event) {
	fmt.Fprintf(w, "  Operation: %s (0x%04X)\n", wire.OpCode(event.Code), event.Code)
	fmt.Fprintf(w, "  TID: %d\n", event.TID)
	if len(event.Params) > 0 {
		fmt.Fprintf(w, "  Params: %s\n", formatParams(event.Params))
	}
	if event.Size > 0 {
		fmt.Fprintf(w, "  Data: %d bytes\n", event.Size)
	}
}

// formatTransportDetails writes transport-layer details.
func formatTransportDetails(w io.Writer, event log.Event) {
	if event.Detail != "" {
		fmt.Fprintf(w, "  Detail: %s\n", event.Detail)
	}
	if event.Size > 0 {
		fmt.Fprintf(w, "  MaxPacketSize: %d\n", event.Size)
	}
}

// formatStateDetails writes state change details.
func formatStateDetails(w io.Writer, event log.Event) {
	if event.StateFrom != "" {
		fmt.Fprintf(w, "  %s -> %s\n", event.StateFrom, event.StateTo)
	} else {
		fmt.Fprintf(w, "  -> %s\n", event.StateTo)
	}
	if event.Detail != "" {
		fmt.Fprintf(w, "  Reason: %s\n", event.Detail)
	}
}

// formatErrorDetails writes error details.
func formatErrorDetails(w io.Writer, event log.Event) {
	fmt.Fprintf(w, "  Message: %s\n", event.Detail)
	if event.Code != 0 {
		fmt.Fprintf(w, "  Code: 0x%04X\n", event.Code)
	}
	if event.TID != 0 {
		fmt.Fprintf(w, "  TID: %d\n", event.TID)
	}
}

// filterEvents returns events matching the filter criteria.
func filterEvents(events []log.Event, filter ViewFilter) []log.Event {
	var result []log.Event
	for _, e := range events {
		if filter.Layer != nil && e.Layer != *filter.Layer {
			continue
		}
		if filter.Direction != nil && e.Direction != *filter.Direction {
			continue
		}
		if filter.Category != nil && e.Category != *filter.Category {
			continue
		}
		result = append(result, e)
	}
	return result
}

// ParseLayerFlag parses a layer string from command-line flag (case-insensitive).
func ParseLayerFlag(s string) (log.Layer, error) {
	return parseLayer(s)
}

// parseLayer parses a layer string (case-insensitive).
func parseLayer(s string) (log.Layer, error) {
	switch strings.ToLower(s) {
	case "transport":
		return log.LayerTransport, nil
	case "container":
		return log.LayerContainer, nil
	case "transaction":
		return log.LayerTransaction, nil
	case "session":
		return log.LayerSession, nil
	default:
		return 0, fmt.Errorf("invalid layer: %s (must be transport, container, transaction, or session)", s)
	}
}

// ParseDirectionFlag parses a direction string from command-line flag (case-insensitive).
func ParseDirectionFlag(s string) (log.Direction, error) {
	return parseDirection(s)
}

// parseDirection parses a direction string (case-insensitive).
func parseDirection(s string) (log.Direction, error) {
	switch strings.ToLower(s) {
	case "in":
		return log.DirectionIn, nil
	case "out":
		return log.DirectionOut, nil
	default:
		return 0, fmt.Errorf("invalid direction: %s (must be in or out)", s)
	}
}

// ParseCategoryFlag parses a category string from command-line flag (case-insensitive).
func ParseCategoryFlag(s string) (log.Category, error) {
	return parseCategory(s)
}

// parseCategory parses a category string (case-insensitive).
func parseCategory(s string) (log.Category, error) {
	switch strings.ToLower(s) {
	case "message":
		return log.CategoryMessage, nil
	case "state":
		return log.CategoryState, nil
	case "error":
		return log.CategoryError, nil
	default:
		return 0, fmt.Errorf("invalid category: %s (must be message, state, or error)", s)
	}
}

// RunView executes the view command.
func RunView(path string, filter ViewFilter, output io.Writer) error {
	reader, err := log.NewReader(path)
	if err != nil {
		return fmt.Errorf("failed to open capture file: %w", err)
	}
	defer reader.Close()

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}

		// Apply filter
		if filter.Layer != nil && event.Layer != *filter.Layer {
			continue
		}
		if filter.Direction != nil && event.Direction != *filter.Direction {
			continue
		}
		if filter.Category != nil && event.Category != *filter.Category {
			continue
		}

		formatEvent(output, event)
	}

	return nil
}
