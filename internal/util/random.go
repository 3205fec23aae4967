// Package util provides utility functions for the SwiftAid application.
package util

import (
	"math/rand/v2"
	"strings"
)

// GenerateRandomID generates a random ID with the specified prefix and hex length.
// The returned ID will be in the format: "{prefix}{hex_string}".
func GenerateRandomID(prefix string, hexLength int) string {
	return prefix + GenerateRandomHex(hexLength)
}

// GenerateRandomHex generates a random hexadecimal string of the specified length.
// Uses math/rand/v2; not intended for cryptographic purposes.
func GenerateRandomHex(length int) string {
	if length <= 0 {
		return ""
	}

	const hexChars = "0123456789abcdef"
	var builder strings.Builder
	builder.Grow(length)

	for i := 0; i < length; i++ {
		builder.WriteByte(hexChars[rand.IntN(16)])
	}

	return builder.String()
}

// GenerateRandomDigits generates a random numeric string of the specified
// length. Used for verification codes, so leading zeros are allowed.
func GenerateRandomDigits(length int) string {
	if length <= 0 {
		return ""
	}

	const digits = "0123456789"
	var builder strings.Builder
	builder.Grow(length)

	for i := 0; i < length; i++ {
		builder.WriteByte(digits[rand.IntN(10)])
	}

	return builder.String()
}

// GenerateSessionID generates a unique guidance session ID with "gs_" prefix.
func GenerateSessionID() string {
	return GenerateRandomID("gs_", 32)
}
