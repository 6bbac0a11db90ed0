package utils

import (
	"errors"
	"fmt"
	"strings"
)

// CountryCode is the fixed dialing prefix for all learner phone numbers.
const CountryCode = "91"

// ErrInvalidPhoneNumber indicates the raw value could not be reduced to a
// ten-digit national number.
var ErrInvalidPhoneNumber = errors.New("invalid phone number")

// NormalizePhone converts an operator-entered phone value into the canonical
// +91XXXXXXXXXX form used as the WhatsApp delivery address and the
// active-progress lookup key. It strips non-digits and corrects for a trunk
// zero or an explicit country code:
//
//	9876543210     -> +919876543210
//	09876543210    -> +919876543210
//	919876543210   -> +919876543210
//	0919876543210  -> +919876543210
//
// Anything longer falls back to the last ten digits; fewer than ten digits
// fails with ErrInvalidPhoneNumber.
func NormalizePhone(raw string) (string, error) {
	var digits strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	d := digits.String()

	var national string
	switch {
	case len(d) == 10:
		national = d
	case len(d) == 11 && d[0] == '0':
		national = d[1:]
	case len(d) == 12 && strings.HasPrefix(d, CountryCode):
		national = d[2:]
	case len(d) == 13 && strings.HasPrefix(d, "0"+CountryCode):
		national = d[3:]
	case len(d) > 10:
		national = d[len(d)-10:]
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidPhoneNumber, raw)
	}

	return "+" + CountryCode + national, nil
}
