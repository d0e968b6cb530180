package valueobject

import (
	"errors"
	"strings"
)

// ErrPhoneWithoutDigits is returned when a phone number has no digits at all
var ErrPhoneWithoutDigits = errors.New("phone number must contain digits")

// Phone is a contact phone number reduced to its digits
type Phone struct {
	digits string
}

// NormalizePhone strips every non-digit rune, so "(11) 98888-7777" becomes "11988887777"
func NormalizePhone(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// HasDigits reports whether raw contains at least one ASCII digit
func HasDigits(raw string) bool {
	return NormalizePhone(raw) != ""
}

// NewPhone creates a Phone from user input in any common formatting
func NewPhone(raw string) (Phone, error) {
	digits := NormalizePhone(raw)
	if digits == "" {
		return Phone{}, ErrPhoneWithoutDigits
	}
	return Phone{digits: digits}, nil
}

// Digits returns the normalized number
func (p Phone) Digits() string {
	return p.digits
}

// IsZero reports whether the phone was never set
func (p Phone) IsZero() bool {
	return p.digits == ""
}

// WithCountryCode prefixes the digits with a country calling code.
// The code is normalized too, so "+55" and "55" are equivalent.
func (p Phone) WithCountryCode(countryCode string) string {
	return NormalizePhone(countryCode) + p.digits
}

// String returns the normalized digits
func (p Phone) String() string {
	return p.digits
}
