package utils

import (
	"errors"

	"github.com/ttacon/libphonenumber"
)

var ErrInvalidPhone = errors.New("phone number is not valid")

// NormalizePhone parses a phone number written the local or international
// way and returns it in E.164 form. region is the ISO country code used for
// numbers without a country prefix.
func NormalizePhone(raw, region string) (string, error) {
	p, err := libphonenumber.Parse(raw, region)
	if err != nil {
		return "", err
	}
	if !libphonenumber.IsValidNumber(p) {
		return "", ErrInvalidPhone
	}
	return libphonenumber.Format(p, libphonenumber.E164), nil
}
