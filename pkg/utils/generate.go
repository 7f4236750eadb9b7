package utils

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	mrand "math/rand"
	"strconv"
	"time"
)

// ==================== CONFIRMATION TOKEN ====================

// GenerateConfirmationToken returns an opaque URL-safe secret used by the
// public confirm/cancel links. 32 random bytes, so the token cannot be
// guessed or enumerated.
func GenerateConfirmationToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate confirmation token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// ==================== BOOKING REFERENCE ====================

// GenerateBookingReference creates a human-readable reference shown to
// clients and staff. Format: APPT-YYYYMMDD-HHMMSS-RANDOM
func GenerateBookingReference() string {
	now := time.Now()

	datePart := now.Format("20060102")
	timePart := now.Format("150405")
	randomPart := fmt.Sprintf("%04d", mrand.Intn(10000))

	return fmt.Sprintf("APPT-%s-%s-%s", datePart, timePart, randomPart)
}

// ==================== QUERY HELPERS ====================

// ParseInt converts string to int with default value
func ParseInt(value string, defaultValue int) int {
	if value == "" {
		return defaultValue
	}

	result, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	if result < 1 {
		return defaultValue
	}

	return result
}
