package session

// State represents the link lifecycle state.
type State uint8

const (
	// StateDisconnected indicates no device connection.
	StateDisconnected State = iota

	// StateConnected indicates an open transport without a session.
	StateConnected

	// StateSessionOpen indicates a protocol session is open.
	StateSessionOpen

	// StateError indicates an unrecoverable failure. Only Disconnect
	// leaves this state.
	StateError
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "DISCONNECTED"
	case StateConnected:
		return "CONNECTED"
	case StateSessionOpen:
		return "SESSION_OPEN"
	case StateError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}
