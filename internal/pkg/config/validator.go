package config

import (
	"fmt"
	"strings"
	"time"
)

// ValidateDuration validates that a duration is within a specified range.
//
// Validation rules:
//   - duration must be >= min (inclusive)
//   - duration must be <= max (inclusive)
//   - min must be <= max (checked internally)
//
// Example:
//
//	// Connect delay between 10ms and 1m
//	err := ValidateDuration(delay, 10*time.Millisecond, time.Minute)
func ValidateDuration(duration, min, max time.Duration) error {
	if min > max {
		return fmt.Errorf("invalid range: min (%v) cannot be greater than max (%v)", min, max)
	}

	if duration < min {
		return fmt.Errorf("duration %v is below minimum %v", duration, min)
	}

	if duration > max {
		return fmt.Errorf("duration %v exceeds maximum %v", duration, max)
	}

	return nil
}

// ValidateIntRange validates that an integer value is within a specified range.
//
// Use cases:
//   - Port number validation (e.g., 1-65535)
//   - Connect attempt validation (e.g., 1-10000)
//   - Pool size validation (e.g., 1-100)
func ValidateIntRange(value, min, max int) error {
	if min > max {
		return fmt.Errorf("invalid range: min (%d) cannot be greater than max (%d)", min, max)
	}

	if value < min {
		return fmt.Errorf("value %d is below minimum %d", value, min)
	}

	if value > max {
		return fmt.Errorf("value %d exceeds maximum %d", value, max)
	}

	return nil
}

// ValidatePositiveDuration validates that a duration is strictly positive.
func ValidatePositiveDuration(duration time.Duration) error {
	if duration <= 0 {
		return fmt.Errorf("duration must be positive, got %v", duration)
	}

	return nil
}

// ValidateRatio validates that a value lies in [0, 1].
func ValidateRatio(value float64) error {
	if value < 0 || value > 1 {
		return fmt.Errorf("ratio %v must be between 0.0 and 1.0", value)
	}

	return nil
}

// ValidateOneOf returns a validator accepting only the given values,
// compared case-insensitively.
//
// Example:
//
//	validate := ValidateOneOf("json", "text")
//	err := validate("yaml") // error: must be one of [json text]
func ValidateOneOf(allowed ...string) func(string) error {
	return func(value string) error {
		for _, a := range allowed {
			if strings.EqualFold(strings.TrimSpace(value), a) {
				return nil
			}
		}
		return fmt.Errorf("value %q must be one of %v", value, allowed)
	}
}
