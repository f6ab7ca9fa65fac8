package sanitizer

import (
	"regexp"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

var (
	reValidPhone = regexp.MustCompile(`^(?:|\+[1-9]\d{7,14})$`)

	// Regions the resort serves; tried in order when formatting.
	supportedRegions = []string{"IN", "US"}
)

// SanitizePhone normalizes a contact phone to E.164. Input already failing
// the shape check is returned unchanged so the validator can reject it with
// a field-level message.
func SanitizePhone(phone string) string {
	phone = strings.TrimSpace(phone)

	if phone == "" || !reValidPhone.MatchString(phone) {
		return phone
	}

	for _, region := range supportedRegions {
		parsed, err := phonenumbers.Parse(phone, region)
		if err == nil {
			return phonenumbers.Format(parsed, phonenumbers.E164)
		}
	}
	return phone
}
