// FILE: prospects/scan.go

package prospects

import (
	"errors"
	"strings"
)

// ErrMalformedPayload is returned for scanned codes that are not exactly
// two newline-separated fields.
var ErrMalformedPayload = errors.New("scan payload must be name and email on two lines")

// ParseScanPayload decodes a QR payload of the form "<name>\n<emailAddress>"
// into a new, uncontacted Prospect.
func ParseScanPayload(code string) (Prospect, error) {
	details := strings.Split(code, "\n")
	if len(details) != 2 {
		return Prospect{}, ErrMalformedPayload
	}
	return NewProspect(details[0], details[1]), nil
}

// ScanPayload encodes a prospect the way ParseScanPayload expects it.
func ScanPayload(p Prospect) string {
	return p.Name + "\n" + p.EmailAddress
}
