package announce

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ptplink/ptplink-go/pkg/version"
)

// TXTRecordMap is a map of TXT record key-value pairs.
type TXTRecordMap map[string]string

// EncodeTXT creates the TXT records for a tether announcement.
func EncodeTXT(info *Info) TXTRecordMap {
	txt := make(TXTRecordMap)

	// Required fields
	txt[TXTKeyVersion] = strconv.Itoa(TXTVersion)
	txt[TXTKeyLink] = info.LinkID
	txt[TXTKeyLibrary] = version.UserAgent()

	// Optional fields
	if info.Model != "" {
		txt[TXTKeyModel] = info.Model
	}

	return txt
}

// DecodeTXT parses the TXT records of a tether announcement.
func DecodeTXT(txt TXTRecordMap) (*Announcement, error) {
	ann := &Announcement{}

	// Parse TXT schema version (required)
	vStr, ok := txt[TXTKeyVersion]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingRequired, TXTKeyVersion)
	}
	v, err := strconv.ParseUint(vStr, 10, 8)
	if err != nil {
		return nil, fmt.Errorf("%w: bad %s %q", ErrInvalidTXTRecord, TXTKeyVersion, vStr)
	}
	ann.TXTVersion = uint8(v)

	// Parse link id (required)
	ann.LinkID, ok = txt[TXTKeyLink]
	if !ok || ann.LinkID == "" {
		return nil, fmt.Errorf("%w: %s", ErrMissingRequired, TXTKeyLink)
	}

	// Optional fields
	ann.Library = txt[TXTKeyLibrary]
	ann.Model = txt[TXTKeyModel]

	return ann, nil
}

// TXTRecordsToStrings converts a TXTRecordMap to a slice of "key=value"
// strings, the format mDNS libraries expect.
func TXTRecordsToStrings(txt TXTRecordMap) []string {
	result := make([]string, 0, len(txt))
	for k, v := range txt {
		result = append(result, fmt.Sprintf("%s=%s", k, v))
	}
	return result
}

// StringsToTXTRecords parses a slice of "key=value" strings into a
// TXTRecordMap.
func StringsToTXTRecords(strs []string) TXTRecordMap {
	txt := make(TXTRecordMap)
	for _, s := range strs {
		parts := strings.SplitN(s, "=", 2)
		if len(parts) == 2 {
			txt[parts[0]] = parts[1]
		} else if len(parts) == 1 && parts[0] != "" {
			// Key without value (boolean flag)
			txt[parts[0]] = ""
		}
	}
	return txt
}
