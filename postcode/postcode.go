// Package postcode converts Dutch postal codes between their canonical
// six-character text form ("1234AB") and a compact integer encoding.
//
// The encoding multiplies the four-digit part into the letter space:
//
//	encoded = digits*676 + (letter0*26 + letter1)
//
// which preserves lexicographic order: for canonical postal codes a and b,
// a < b as strings exactly when Encode(a) < Encode(b). The database relies
// on this to binary-search the range table without decoding.
package postcode

import (
	"fmt"

	"github.com/tweedegolf/bag-address-lookup/errs"
)

const (
	codeLength  = 6
	letterSpace = 26 * 26

	// MaxEncoded is the largest value Encode can produce ("9999ZZ").
	MaxEncoded uint32 = 9999*letterSpace + letterSpace - 1
)

// Encode converts a canonical postal code into its integer encoding.
//
// The input must be exactly four ASCII digits followed by two ASCII
// uppercase letters; anything else returns errs.ErrInvalidPostalCode.
// Use Normalize first to accept lowercase user input.
func Encode(s string) (uint32, error) {
	if len(s) != codeLength {
		return 0, fmt.Errorf("%w: %q is not 6 characters", errs.ErrInvalidPostalCode, s)
	}

	var digits uint32
	for i := range 4 {
		c := s[i]
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("%w: %q has a non-digit in the number part", errs.ErrInvalidPostalCode, s)
		}
		digits = digits*10 + uint32(c-'0')
	}

	l0, l1 := s[4], s[5]
	if l0 < 'A' || l0 > 'Z' || l1 < 'A' || l1 > 'Z' {
		return 0, fmt.Errorf("%w: %q has a non-uppercase letter part", errs.ErrInvalidPostalCode, s)
	}

	return digits*letterSpace + uint32(l0-'A')*26 + uint32(l1-'A'), nil
}

// Decode converts an integer encoding back into its canonical text form.
// It returns errs.ErrInvalidPostalCode when code exceeds MaxEncoded.
func Decode(code uint32) (string, error) {
	if code > MaxEncoded {
		return "", fmt.Errorf("%w: encoded value %d out of range", errs.ErrInvalidPostalCode, code)
	}

	digits := code / letterSpace
	letters := code % letterSpace

	buf := [codeLength]byte{
		byte('0' + digits/1000),
		byte('0' + digits/100%10),
		byte('0' + digits/10%10),
		byte('0' + digits%10),
		byte('A' + letters/26),
		byte('A' + letters%26),
	}

	return string(buf[:]), nil
}

// Normalize uppercases ASCII letters in a six-character postal code.
//
// It reports false for input of any other length. It does not validate
// the character classes; Encode remains the gatekeeper.
func Normalize(s string) (string, bool) {
	if len(s) != codeLength {
		return "", false
	}

	var buf [codeLength]byte
	for i := range codeLength {
		c := s[i]
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		buf[i] = c
	}

	return string(buf[:]), true
}
