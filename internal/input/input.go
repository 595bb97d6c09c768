// Package input parses, validates and generates the integer sequences sorted by patienceviz.
package input

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// MinLength is the minimum number of elements accepted for a run.
const MinLength = 10

// Reason classifies why a sequence was rejected.
type Reason string

const (
	// ReasonEmpty means no values were supplied at all.
	ReasonEmpty Reason = "empty"
	// ReasonTooShort means fewer than MinLength values were supplied.
	ReasonTooShort Reason = "too_short"
	// ReasonNonPositive means at least one value is zero or negative.
	ReasonNonPositive Reason = "non_positive"
	// ReasonUnparseable means a token is not an integer.
	ReasonUnparseable Reason = "unparseable"
)

// ValidationError reports an input sequence that cannot be used for a run.
type ValidationError struct {
	// Reason is the rejection class.
	Reason Reason
	// Count is the number of values supplied (ReasonTooShort).
	Count int
	// Position is the zero-based position of the offending value or token.
	Position int
	// Value is the offending value (ReasonNonPositive).
	Value int
	// Token is the offending raw token (ReasonUnparseable).
	Token string
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "invalid input"
	}
	switch e.Reason {
	case ReasonEmpty:
		return "please enter an array"
	case ReasonTooShort:
		return fmt.Sprintf("array must have at least %d elements, got %d", MinLength, e.Count)
	case ReasonNonPositive:
		return fmt.Sprintf("all elements must be positive integers, got %d at position %d", e.Value, e.Position+1)
	case ReasonUnparseable:
		return fmt.Sprintf("invalid element %q at position %d, expected comma-separated integers", e.Token, e.Position+1)
	default:
		return "invalid input"
	}
}

// IsValidationError reports whether err is (or wraps) a ValidationError.
func IsValidationError(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

// Validate checks the length and positivity preconditions of a sequence.
func Validate(values []int) error {
	if len(values) == 0 {
		return &ValidationError{Reason: ReasonEmpty}
	}
	if len(values) < MinLength {
		return &ValidationError{Reason: ReasonTooShort, Count: len(values)}
	}
	for i, v := range values {
		if v <= 0 {
			return &ValidationError{Reason: ReasonNonPositive, Position: i, Value: v}
		}
	}
	return nil
}

// Parse converts a comma-separated list such as "5, 3, 8" into integers.
// Whitespace around tokens is ignored. Parse does not apply Validate.
func Parse(text string) ([]int, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, &ValidationError{Reason: ReasonEmpty}
	}
	parts := strings.Split(text, ",")
	values := make([]int, 0, len(parts))
	for i, part := range parts {
		token := strings.TrimSpace(part)
		v, err := strconv.Atoi(token)
		if err != nil {
			return nil, &ValidationError{Reason: ReasonUnparseable, Position: i, Token: token}
		}
		values = append(values, v)
	}
	return values, nil
}

// ParseAndValidate parses text and validates the resulting sequence.
func ParseAndValidate(text string) ([]int, error) {
	values, err := Parse(text)
	if err != nil {
		return nil, err
	}
	if err := Validate(values); err != nil {
		return nil, err
	}
	return values, nil
}

// Format renders values as a comma-separated list accepted by Parse.
func Format(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}
