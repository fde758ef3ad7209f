package log

// Logger is the interface applications implement to receive capture
// events. Pass nil or NoopLogger to disable capture.
type Logger interface {
	// Log records a capture event. Implementations must be safe for
	// concurrent use and should return quickly.
	Log(event Event)
}

// NoopLogger discards all events. Usable as a zero value.
type NoopLogger struct{}

// Log discards the event.
func (NoopLogger) Log(Event) {}

// Compile-time interface satisfaction check.
var _ Logger = NoopLogger{}
