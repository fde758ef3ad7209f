package commands

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/ptplink/ptplink-go/pkg/log"
	"github.com/ptplink/ptplink-go/pkg/wire"
)

// Stats holds aggregate statistics about a capture file.
type Stats struct {
	TotalEvents       int
	EventsByLayer     map[log.Layer]int
	EventsByCategory  map[log.Category]int
	EventsByDirection map[log.Direction]int
	BytesByDirection  map[log.Direction]int
	Operations        map[wire.OpCode]int
	Responses         map[wire.RespCode]int
	Links             map[string]*LinkStats
	Errors            int
	TimeRange         struct {
		Start time.Time
		End   time.Time
	}
}

// LinkStats holds statistics for a single camera link.
type LinkStats struct {
	FirstSeen    time.Time
	LastSeen     time.Time
	Events       int
	Transactions int
}

// RunStats analyzes the capture file and prints statistics.
func RunStats(path string, w io.Writer) error {
	reader, err := log.NewReader(path)
	if err != nil {
		return fmt.Errorf("failed to open capture file: %w", err)
	}
	defer reader.Close()

	stats := &Stats{
		EventsByLayer:     make(map[log.Layer]int),
		EventsByCategory:  make(map[log.Category]int),
		EventsByDirection: make(map[log.Direction]int),
		BytesByDirection:  make(map[log.Direction]int),
		Operations:        make(map[wire.OpCode]int),
		Responses:         make(map[wire.RespCode]int),
		Links:             make(map[string]*LinkStats),
	}

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}

		stats.TotalEvents++
		stats.EventsByLayer[event.Layer]++
		stats.EventsByCategory[event.Category]++
		stats.EventsByDirection[event.Direction]++

		// Container sizes are the on-wire byte counts; summing any other
		// layer would double count the same traffic.
		if event.Layer == log.LayerContainer {
			stats.BytesByDirection[event.Direction] += event.Size
		}

		// Per-code tallies
		if event.Category == log.CategoryMessage {
			if event.Layer == log.LayerTransaction {
				stats.Operations[wire.OpCode(event.Code)]++
			}
			if event.Layer == log.LayerContainer && event.Kind == wire.KindResponse {
				stats.Responses[wire.RespCode(event.Code)]++
			}
		}

		// Track time range
		if stats.TimeRange.Start.IsZero() || event.Time.Before(stats.TimeRange.Start) {
			stats.TimeRange.Start = event.Time
		}
		if event.Time.After(stats.TimeRange.End) {
			stats.TimeRange.End = event.Time
		}

		// Track link stats
		link, ok := stats.Links[event.LinkID]
		if !ok {
			link = &LinkStats{
				FirstSeen: event.Time,
				LastSeen:  event.Time,
			}
			stats.Links[event.LinkID] = link
		}
		link.Events++
		if event.Time.After(link.LastSeen) {
			link.LastSeen = event.Time
		}
		if event.Layer == log.LayerTransaction {
			link.Transactions++
		}

		// Count errors
		if event.Category == log.CategoryError {
			stats.Errors++
		}
	}

	printStats(w, stats)
	return nil
}

func printStats(w io.Writer, stats *Stats) {
	fmt.Fprintln(w, "=== PTP Capture Statistics ===")
	fmt.Fprintln(w)

	// Time range
	if stats.TotalEvents > 0 {
		fmt.Fprintf(w, "Time Range: %s to %s\n",
			stats.TimeRange.Start.Format(time.RFC3339),
			stats.TimeRange.End.Format(time.RFC3339))
		fmt.Fprintf(w, "Duration:   %s\n", stats.TimeRange.End.Sub(stats.TimeRange.Start).Round(time.Second))
		fmt.Fprintln(w)
	}

	// Total events
	fmt.Fprintf(w, "Total Events: %d\n", stats.TotalEvents)
	fmt.Fprintln(w)

	// Events by layer
	fmt.Fprintln(w, "Events by Layer:")
	for _, layer := range []log.Layer{log.LayerTransport, log.LayerContainer, log.LayerTransaction, log.LayerSession} {
		if count := stats.EventsByLayer[layer]; count > 0 {
			fmt.Fprintf(w, "  %-12s %d\n", layer.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	// Events by category
	fmt.Fprintln(w, "Events by Category:")
	for _, cat := range []log.Category{log.CategoryMessage, log.CategoryState, log.CategoryError} {
		if count := stats.EventsByCategory[cat]; count > 0 {
			fmt.Fprintf(w, "  %-12s %d\n", cat.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	// Events and bytes by direction
	fmt.Fprintln(w, "Events by Direction:")
	for _, dir := range []log.Direction{log.DirectionOut, log.DirectionIn} {
		if count := stats.EventsByDirection[dir]; count > 0 {
			fmt.Fprintf(w, "  %-12s %d\n", dir.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	if len(stats.BytesByDirection) > 0 {
		fmt.Fprintln(w, "Container Bytes:")
		for _, dir := range []log.Direction{log.DirectionOut, log.DirectionIn} {
			if bytes := stats.BytesByDirection[dir]; bytes > 0 {
				fmt.Fprintf(w, "  %-12s %d\n", dir.String()+":", bytes)
			}
		}
		fmt.Fprintln(w)
	}

	// Operations by code
	if len(stats.Operations) > 0 {
		fmt.Fprintln(w, "Operations:")
		codes := make([]wire.OpCode, 0, len(stats.Operations))
		for c := range stats.Operations {
			codes = append(codes, c)
		}
		sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })
		for _, c := range codes {
			fmt.Fprintf(w, "  %-22s %d\n", c.String()+":", stats.Operations[c])
		}
		fmt.Fprintln(w)
	}

	// Responses by code
	if len(stats.Responses) > 0 {
		fmt.Fprintln(w, "Responses:")
		codes := make([]wire.RespCode, 0, len(stats.Responses))
		for c := range stats.Responses {
			codes = append(codes, c)
		}
		sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })
		for _, c := range codes {
			fmt.Fprintf(w, "  %-22s %d\n", c.String()+":", stats.Responses[c])
		}
		fmt.Fprintln(w)
	}

	// Links
	fmt.Fprintf(w, "Links: %d\n", len(stats.Links))
	if len(stats.Links) > 0 {
		// Sort by first seen time
		type linkInfo struct {
			id    string
			stats *LinkStats
		}
		links := make([]linkInfo, 0, len(stats.Links))
		for id, ls := range stats.Links {
			links = append(links, linkInfo{id, ls})
		}
		sort.Slice(links, func(i, j int) bool {
			return links[i].stats.FirstSeen.Before(links[j].stats.FirstSeen)
		})

		fmt.Fprintln(w, "")
		for _, l := range links {
			duration := l.stats.LastSeen.Sub(l.stats.FirstSeen).Round(time.Millisecond)
			shortID := l.id
			if len(shortID) > 8 {
				shortID = shortID[:8]
			}
			fmt.Fprintf(w, "  [%s] %d events, duration %s\n", shortID, l.stats.Events, duration)
			if l.stats.Transactions > 0 {
				fmt.Fprintf(w, "           Transactions: %d\n", l.stats.Transactions)
			}
		}
	}

	// Errors
	if stats.Errors > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Errors: %d\n", stats.Errors)
	}
}
