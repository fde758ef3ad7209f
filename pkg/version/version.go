// Package version provides the library release version and PTP standard
// version helpers.
package version

import (
	"fmt"
	"strconv"
	"strings"
)

// Version is the library release version.
const Version = "0.4.0"

// PTPStandardVersion is the PTP standard version implemented by this
// library, in hundredths as reported in the DeviceInfo dataset (100 = 1.00).
const PTPStandardVersion Standard = 100

// UserAgent returns an identifier string for capture files and service
// announcements.
func UserAgent() string {
	return "ptplink-go/" + Version
}

// Standard is a PTP standard version code in hundredths, the encoding the
// DeviceInfo dataset uses on the wire (100 = 1.00, 110 = 1.1).
type Standard uint16

// ParseStandard parses a "major.fraction" version string into its wire code.
// A single fraction digit is read decimally, so "1.1" parses to 110.
func ParseStandard(s string) (Standard, error) {
	parts := strings.Split(s, ".")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid version %q: expected major.fraction", s)
	}

	major, err := strconv.ParseUint(parts[0], 10, 16)
	if err != nil || parts[0] == "" {
		return 0, fmt.Errorf("invalid version %q: bad major component", s)
	}

	frac := parts[1]
	if len(frac) < 1 || len(frac) > 2 {
		return 0, fmt.Errorf("invalid version %q: fraction must be 1 or 2 digits", s)
	}
	hundredths, err := strconv.ParseUint(frac, 10, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid version %q: bad fraction component", s)
	}
	if len(frac) == 1 {
		hundredths *= 10
	}

	code := major*100 + hundredths
	if code > 0xFFFF {
		return 0, fmt.Errorf("invalid version %q: out of range", s)
	}
	return Standard(code), nil
}

// String returns the version as "major.fraction" with two fraction digits.
func (v Standard) String() string {
	return fmt.Sprintf("%d.%02d", v/100, v%100)
}

// Major returns the major version component.
func (v Standard) Major() uint16 {
	return uint16(v / 100)
}

// Compatible reports whether the other version shares the same major
// version. A 1.00 initiator can talk to any 1.x responder.
func (v Standard) Compatible(other Standard) bool {
	return v.Major() == other.Major()
}
