// Package phone provides the synthetic mobile-number record, its
// synthesizer and the distinct-digit fingerprint.
package phone

import (
	"strconv"
)

// RegionCodes are the east-African dialing codes records are drawn from.
var RegionCodes = []int64{254, 255, 256, 257, 258, 260, 261, 262}

const (
	countryFactor  int64 = 10_000_000_000 // 1e10
	providerFactor int64 = 10_000_000     // 1e7
	prefixDivisor  int64 = 10_000         // 1e4
)

// Components holds the structured parts of a phone number.
type Components struct {
	Country  int64 `json:"country"`
	Provider int64 `json:"provider"`
	Prefix   int64 `json:"prefix"`
	Number   int64 `json:"number"`
}

// PhoneRecord is a synthetic mobile number fixture.
type PhoneRecord struct {
	ID         int64      `json:"_id"`
	Components Components `json:"components"`
	Display    string     `json:"display"`
}

// ComputeID derives the record identifier: country*1e10 + provider*1e7 + number.
func ComputeID(country, provider, number int64) int64 {
	return country*countryFactor + provider*providerFactor + number
}

// ComputePrefix buckets number by 1e4. Numbers are non-negative, so
// truncating division is floor.
func ComputePrefix(number int64) int64 {
	return number / prefixDivisor
}

// FormatDisplay renders "+<country> <provider>-<number>".
func FormatDisplay(country, provider, number int64) string {
	b := make([]byte, 0, 24)
	b = append(b, '+')
	b = strconv.AppendInt(b, country, 10)
	b = append(b, ' ')
	b = strconv.AppendInt(b, provider, 10)
	b = append(b, '-')
	b = strconv.AppendInt(b, number, 10)
	return string(b)
}

// NewRecord builds a complete record from its three free inputs.
func NewRecord(country, provider, number int64) *PhoneRecord {
	return &PhoneRecord{
		ID: ComputeID(country, provider, number),
		Components: Components{
			Country:  country,
			Provider: provider,
			Prefix:   ComputePrefix(number),
			Number:   number,
		},
		Display: FormatDisplay(country, provider, number),
	}
}

// IsRegionCode reports whether code is one of RegionCodes.
func IsRegionCode(code int64) bool {
	for _, c := range RegionCodes {
		if c == code {
			return true
		}
	}
	return false
}
