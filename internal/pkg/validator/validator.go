package validator

import (
	"regexp"
	"strings"
)

type ValidationError struct {
	Field   string
	Message string
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string)
	for _, err := range v {
		result[err.Field] = err.Message
	}
	return result
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Email validation
func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// Numeric validation
var numericRegex = regexp.MustCompile(`^[0-9]+$`)

func IsNumeric(s string) bool {
	return numericRegex.MatchString(s)
}

// Badge IDs are the numbers employees key in on the pad: digits only,
// 4 to 10 of them.
func IsValidBadgeID(id string) bool {
	return len(id) >= 4 && len(id) <= 10 && IsNumeric(id)
}

// Clock time validation: 12-hour wall-clock strings like "8:05 AM".
var clockTimeRegex = regexp.MustCompile(`^(1[0-2]|0?[1-9]):[0-5][0-9] (?i:AM|PM)$`)

func IsValidClockTime(s string) bool {
	return clockTimeRegex.MatchString(s)
}

// Date key validation: DD-MM-YYYY with hyphens.
var dateKeyRegex = regexp.MustCompile(`^\d{2}-\d{2}-\d{4}$`)

func IsValidDateKey(s string) bool {
	return dateKeyRegex.MatchString(s)
}

// Names and roles: letters (including accented), spaces, apostrophes, hyphens.
var nameRegex = regexp.MustCompile(`^[A-Za-zÀ-ÖØ-öø-ÿ\s'\-]+$`)

func IsValidName(s string) bool {
	return !IsEmpty(s) && nameRegex.MatchString(s)
}

// Slice contains check
func IsInSlice(value string, slice []string) bool {
	for _, item := range slice {
		if item == value {
			return true
		}
	}
	return false
}
