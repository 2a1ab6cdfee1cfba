package validator

import (
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ValidationError describes a single violated field constraint.
type ValidationError struct {
	Field   string
	Message string
}

func (v ValidationError) Error() string {
	return v.Field + " " + v.Message
}

// New returns a ValidationError as an error value.
func New(field, message string) error {
	return ValidationError{Field: field, Message: message}
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

// Common constraint messages.
const (
	MsgMustBePositive   = "must be positive"
	MsgCannotBeNegative = "cannot be negative"
	MsgCannotBeEmpty    = "cannot be null or empty"
	MsgCannotBeNull     = "cannot be null"
	MsgIsRequired       = "is required"
)

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

// PositiveInt returns a ValidationError when v is zero or negative.
func PositiveInt(field string, v int) error {
	if v <= 0 {
		return New(field, MsgMustBePositive)
	}
	return nil
}

// NonNegativeInt returns a ValidationError when v is negative.
func NonNegativeInt(field string, v int) error {
	if v < 0 {
		return New(field, MsgCannotBeNegative)
	}
	return nil
}

// NonNegativeDecimal returns a ValidationError when d is negative.
func NonNegativeDecimal(field string, d decimal.Decimal) error {
	if d.IsNegative() {
		return New(field, MsgCannotBeNegative)
	}
	return nil
}

// NotBlank returns a ValidationError when s is empty or whitespace only.
func NotBlank(field, s string) error {
	if IsEmpty(s) {
		return New(field, MsgCannotBeEmpty)
	}
	return nil
}

// Numeric validation
var numericRegex = regexp.MustCompile(`^[0-9]+$`)

func IsNumeric(s string) bool {
	return numericRegex.MatchString(s)
}

// Date validation
func IsValidDate(dateStr string) (time.Time, bool) {
	date, err := time.Parse("2006-01-02", dateStr)
	return date, err == nil
}

// Clock validation, "15:04" format.
func IsValidClock(clockStr string) (time.Time, bool) {
	t, err := time.Parse("15:04", clockStr)
	return t, err == nil
}

// IsValidDateTime checks if a string is a valid ISO8601 timestamp.
// Accepts formats like: "2024-01-15T10:30:00Z" or "2024-01-15T10:30:00+08:00"
func IsValidDateTime(dateTimeStr string) (time.Time, bool) {
	t, err := time.Parse(time.RFC3339, dateTimeStr)
	if err == nil {
		return t, true
	}

	t, err = time.Parse(time.RFC3339Nano, dateTimeStr)
	if err == nil {
		return t, true
	}

	return time.Time{}, false
}
