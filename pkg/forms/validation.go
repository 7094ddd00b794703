// Package forms provides field validators and error collections for
// server-rendered forms.
package forms

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Common validation errors.
var (
	ErrRequired        = errors.New("required")
	ErrNotPositive     = errors.New("must be greater than 0")
	ErrPatternMismatch = errors.New("pattern mismatch")
)

// Validator validates a field value.
type Validator interface {
	// Validate checks if the value is valid.
	Validate(value any) error

	// Message returns the error message shown to the user.
	Message() string
}

// RequiredValidator validates that a field is not empty.
type RequiredValidator struct {
	Msg string
}

func (v RequiredValidator) Validate(value any) error {
	if value == nil {
		return ErrRequired
	}
	if s, ok := value.(string); ok && strings.TrimSpace(s) == "" {
		return ErrRequired
	}
	return nil
}

func (v RequiredValidator) Message() string {
	if v.Msg != "" {
		return v.Msg
	}
	return "This field is required"
}

// PositiveValidator validates that a numeric value is finite and > 0.
// Missing or non-numeric values fail.
type PositiveValidator struct {
	Msg string
}

func (v PositiveValidator) Validate(value any) error {
	f, ok := toFloat64(value)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) || f <= 0 {
		return ErrNotPositive
	}
	return nil
}

func (v PositiveValidator) Message() string {
	if v.Msg != "" {
		return v.Msg
	}
	return "Must be greater than 0"
}

// PatternValidator validates a string against a compiled expression.
// Empty strings fail; combine with Required for a distinct message.
type PatternValidator struct {
	Re  *regexp.Regexp
	Msg string
}

func (v PatternValidator) Validate(value any) error {
	str, ok := value.(string)
	if !ok || str == "" {
		return ErrPatternMismatch
	}
	if !v.Re.MatchString(str) {
		return ErrPatternMismatch
	}
	return nil
}

func (v PatternValidator) Message() string {
	if v.Msg != "" {
		return v.Msg
	}
	return "Invalid format"
}

// Required creates a required validator.
func Required(msg ...string) Validator {
	return RequiredValidator{Msg: first(msg)}
}

// Positive creates a validator for finite numbers greater than zero.
func Positive(msg ...string) Validator {
	return PositiveValidator{Msg: first(msg)}
}

// Pattern creates a validator from a regular expression. It panics if the
// expression does not compile, like regexp.MustCompile.
func Pattern(pattern string, msg ...string) Validator {
	return PatternValidator{Re: regexp.MustCompile(pattern), Msg: first(msg)}
}

// emailPart excludes @ and every character browsers treat as whitespace:
// ASCII space and controls \t \n \v \f \r, the Unicode separators and the
// byte order mark.
const emailPart = `[^\t\n\x0B\f\r\p{Z}\x{FEFF}@]+`

// Email matches anything of the form local@domain.tld with no whitespace.
func Email(msg ...string) Validator {
	return Pattern(`^`+emailPart+`@`+emailPart+`\.`+emailPart+`$`, msg...)
}

// CustomValidator wraps a validation function.
type CustomValidator struct {
	Fn  func(any) error
	Msg string
}

func (v CustomValidator) Validate(value any) error {
	return v.Fn(value)
}

func (v CustomValidator) Message() string {
	return v.Msg
}

// Custom creates a custom validator.
func Custom(fn func(any) error, msg string) Validator {
	return CustomValidator{Fn: fn, Msg: msg}
}

func first(msg []string) string {
	if len(msg) > 0 {
		return msg[0]
	}
	return ""
}

func toFloat64(value any) (float64, bool) {
	switch v := value.(type) {
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case float32:
		return float64(v), true
	case float64:
		return v, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil
	default:
		return 0, false
	}
}
