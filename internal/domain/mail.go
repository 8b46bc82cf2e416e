package domain

import (
	"errors"
	"regexp"
	"strings"
)

// ErrUnknownTrackingID is returned by the mail carrier when it has no letter
// with the given tracking id.
var ErrUnknownTrackingID = errors.New("unknown tracking id")

var bureauAddresses = map[Bureau]MailingAddress{
	BureauExperian: {
		Name:         "Experian Dispute Department",
		AddressLine1: "P.O. Box 4500",
		City:         "Allen",
		State:        "TX",
		ZipCode:      "75013",
	},
	BureauEquifax: {
		Name:         "Equifax Information Services LLC",
		AddressLine1: "P.O. Box 740256",
		City:         "Atlanta",
		State:        "GA",
		ZipCode:      "30374-0256",
	},
	BureauTransUnion: {
		Name:         "TransUnion Consumer Solutions",
		AddressLine1: "P.O. Box 2000",
		City:         "Chester",
		State:        "PA",
		ZipCode:      "19016",
	},
}

// BureauMailingAddress returns the dispute department address of a bureau.
func BureauMailingAddress(b Bureau) (MailingAddress, bool) {
	addr, ok := bureauAddresses[b]
	return addr, ok
}

// MailRequest is a rendered letter ready for the carrier.
// IdempotencyKey makes a repeated submission of the same letter a no-op at
// the carrier.
type MailRequest struct {
	To             MailingAddress
	From           MailingAddress
	Description    string
	Body           string
	IdempotencyKey string
}

var trackingIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{4,64}$`)

// ValidTrackingID reports whether id looks like a carrier tracking id.
// Empty values and the "N/A" placeholder written by failed sends are invalid.
func ValidTrackingID(id *string) bool {
	if id == nil {
		return false
	}
	v := strings.TrimSpace(*id)
	if strings.EqualFold(v, "N/A") {
		return false
	}
	return trackingIDPattern.MatchString(v)
}
