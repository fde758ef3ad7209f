// Package session wraps the transaction engine in a guarded lifecycle.
//
// An Adapter moves through the states
//
//	DISCONNECTED -> CONNECTED -> SESSION_OPEN
//
// via Connect, OpenSession and their inverses. ERROR is absorbing: an
// unrecoverable transport or framing failure parks the link there, and
// only Disconnect leads back out. Camera operations are accepted only
// with the session open; GetDeviceInfo is additionally allowed right
// after Connect, before any session exists, as the protocol permits.
//
// Calls outside the required state fail with ErrInvalidState. The
// adapter serializes all operations internally, so a single Adapter may
// be shared between goroutines even though the engine below it performs
// no locking of its own.
package session
