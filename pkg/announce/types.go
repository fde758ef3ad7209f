package announce

import (
	"errors"
	"strings"
	"time"
)

// Service type constants for mDNS.
const (
	// ServiceType is the service type for tether hosts.
	ServiceType = "_ptplink._tcp"

	// Domain is the mDNS domain.
	Domain = "local"

	// DefaultPort is the default forwarding port, the registered PTP-IP port.
	DefaultPort = 15740
)

// TXT record key constants.
const (
	TXTKeyVersion = "txtvers" // TXT schema version
	TXTKeyLink    = "link"    // link id of the active session
	TXTKeyLibrary = "lib"     // library user agent
	TXTKeyModel   = "model"   // camera model (optional until attached)
)

// TXTVersion is the TXT record schema version this library writes.
const TXTVersion = 1

// Limits.
const (
	// MaxInstanceNameLen is the DNS label limit.
	MaxInstanceNameLen = 63
)

// Announcement errors.
var (
	ErrInvalidTXTRecord    = errors.New("invalid TXT record format")
	ErrMissingRequired     = errors.New("missing required field")
	ErrNotAdvertising      = errors.New("service is not being advertised")
	ErrInstanceNameTooLong = errors.New("instance name exceeds 63 characters")
	ErrNotFound            = errors.New("service not found")
)

// Config configures advertiser and browser behavior.
type Config struct {
	// Interface specifies which network interface to use.
	// Empty string means all interfaces.
	Interface string

	// TTL is the DNS record TTL.
	// Default: 120 seconds.
	TTL time.Duration
}

// DefaultConfig returns the default announcement configuration.
func DefaultConfig() Config {
	return Config{
		Interface: "",
		TTL:       120 * time.Second,
	}
}

// Info describes the tether service to advertise.
type Info struct {
	// LinkID is the link id of the active camera session, a UUID minted
	// at connect time.
	LinkID string

	// Model is the attached camera model. Empty until a camera is
	// connected; set it via Advertiser.Update once DeviceInfo arrives.
	Model string

	// Port is the forwarding port. Zero means DefaultPort.
	Port uint16

	// Instance overrides the mDNS instance name. Empty derives the name
	// from LinkID.
	Instance string
}

// Validate checks if the Info is valid.
func (i *Info) Validate() error {
	if i.LinkID == "" {
		return ErrMissingRequired
	}
	if len(i.Instance) > MaxInstanceNameLen {
		return ErrInstanceNameTooLong
	}
	return nil
}

// instanceName returns the effective mDNS instance name.
func (i *Info) instanceName() string {
	if i.Instance != "" {
		return i.Instance
	}
	return InstanceName(i.LinkID)
}

// InstanceName derives the default mDNS instance name from a link id:
// "ptplink-" plus the id's first hyphen-separated group.
func InstanceName(linkID string) string {
	short := linkID
	if idx := strings.IndexByte(linkID, '-'); idx > 0 {
		short = linkID[:idx]
	}
	name := "ptplink-" + short
	if len(name) > MaxInstanceNameLen {
		name = name[:MaxInstanceNameLen]
	}
	return name
}

// Announcement is the decoded TXT view of a tether announcement.
type Announcement struct {
	// TXTVersion is the TXT schema version (from TXT "txtvers").
	TXTVersion uint8

	// LinkID is the link id of the announcing session (from TXT "link").
	LinkID string

	// Library is the announcing library user agent (from TXT "lib").
	Library string

	// Model is the camera model, if one is attached (from TXT "model").
	Model string
}

// Service represents a tether host found via browsing.
type Service struct {
	// InstanceName is the mDNS instance name (e.g., "ptplink-a1b2c3d4").
	InstanceName string

	// Host is the hostname (e.g., "tether-001.local").
	Host string

	// Port is the forwarding port.
	Port uint16

	// Addresses contains resolved IP addresses.
	Addresses []string

	// LinkID is the link id of the announcing session (from TXT "link").
	LinkID string

	// Library is the announcing library user agent (from TXT "lib").
	Library string

	// Model is the attached camera model, if any (from TXT "model").
	Model string
}
