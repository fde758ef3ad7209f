package log

import (
	"context"
	"log/slog"

	"github.com/ptplink/ptplink-go/pkg/wire"
)

// SlogAdapter writes capture events to an slog.Logger. Useful during
// development to watch the protocol on the console.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a SlogAdapter over the given slog.Logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event at Debug level with typed attributes.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("link_id", event.LinkID),
		slog.String("layer", event.Layer.String()),
	}

	if event.Direction != DirectionNone {
		attrs = append(attrs, slog.String("direction", event.Direction.String()))
	}
	if event.Category != CategoryMessage {
		attrs = append(attrs, slog.String("category", event.Category.String()))
	}
	if event.Kind != 0 {
		attrs = append(attrs, slog.String("kind", event.Kind.String()))
	}
	if event.Code != 0 {
		attrs = append(attrs, slog.String("code", codeName(event.Kind, event.Code)))
	}
	if event.TID != 0 || event.Kind != 0 {
		attrs = append(attrs, slog.Uint64("tid", uint64(event.TID)))
	}
	if event.Size > 0 {
		attrs = append(attrs, slog.Int("size", event.Size))
	}
	if len(event.Params) > 0 {
		attrs = append(attrs, slog.Any("params", event.Params))
	}
	if event.Truncated {
		attrs = append(attrs, slog.Bool("truncated", true))
	}
	if event.StateTo != "" {
		attrs = append(attrs,
			slog.String("state_from", event.StateFrom),
			slog.String("state_to", event.StateTo),
		)
	}
	if event.Detail != "" {
		attrs = append(attrs, slog.String("detail", event.Detail))
	}

	a.logger.LogAttrs(context.Background(), slog.LevelDebug, "capture", attrs...)
}

// codeName renders a code through the table matching the container
// kind. Transaction-layer events carry operation codes.
func codeName(kind wire.Kind, code uint16) string {
	switch kind {
	case wire.KindResponse:
		return wire.RespCode(code).String()
	case wire.KindEvent:
		return wire.EventCode(code).String()
	default:
		return wire.OpCode(code).String()
	}
}

// Compile-time interface satisfaction check.
var _ Logger = (*SlogAdapter)(nil)
