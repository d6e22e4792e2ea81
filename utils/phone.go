package utils

import (
	"os"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// NormalizePhoneNumber normalizes a phone number to E.164 format. Numbers
// without a country code are parsed against DEFAULT_PHONE_REGION (US when
// unset).
func NormalizePhoneNumber(phone string) (string, error) {
	phone = strings.TrimSpace(phone)

	region := os.Getenv("DEFAULT_PHONE_REGION")
	if region == "" {
		region = "US"
	}

	num, err := phonenumbers.Parse(phone, region)
	if err != nil {
		return "", err
	}

	if !phonenumbers.IsValidNumber(num) {
		return "", phonenumbers.ErrNotANumber
	}

	return phonenumbers.Format(num, phonenumbers.E164), nil
}
