package livetest

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"testing"
)

// Assert provides assertion helpers for tests.
type Assert struct {
	t *testing.T
}

// NewAssert creates a new Assert instance.
func NewAssert(t *testing.T) *Assert {
	return &Assert{t: t}
}

// True asserts that a condition is true.
func (a *Assert) True(condition bool, msgAndArgs ...any) {
	a.t.Helper()
	if !condition {
		a.fail("Expected true but got false", msgAndArgs...)
	}
}

// Equal asserts that two values are equal.
func (a *Assert) Equal(expected, actual any, msgAndArgs ...any) {
	a.t.Helper()
	if !reflect.DeepEqual(expected, actual) {
		a.fail(fmt.Sprintf("Expected %v (%T) but got %v (%T)", expected, expected, actual, actual), msgAndArgs...)
	}
}

// NoError asserts that an error is nil.
func (a *Assert) NoError(err error, msgAndArgs ...any) {
	a.t.Helper()
	if err != nil {
		a.fail(fmt.Sprintf("Expected no error but got: %v", err), msgAndArgs...)
	}
}

// ErrorIs asserts that err matches target with errors.Is.
func (a *Assert) ErrorIs(err, target error, msgAndArgs ...any) {
	a.t.Helper()
	if !errors.Is(err, target) {
		a.fail(fmt.Sprintf("Expected error %v but got %v", target, err), msgAndArgs...)
	}
}

// Contains asserts that a string contains a substring.
func (a *Assert) Contains(str, substring string, msgAndArgs ...any) {
	a.t.Helper()
	if !strings.Contains(str, substring) {
		a.fail(fmt.Sprintf("Expected output to contain %q", substring), msgAndArgs...)
	}
}

// NotContains asserts that a string does not contain a substring.
func (a *Assert) NotContains(str, substring string, msgAndArgs ...any) {
	a.t.Helper()
	if strings.Contains(str, substring) {
		a.fail(fmt.Sprintf("Expected output not to contain %q", substring), msgAndArgs...)
	}
}

// Matches asserts that a string matches a regex pattern.
func (a *Assert) Matches(pattern, str string, msgAndArgs ...any) {
	a.t.Helper()
	matched, err := regexp.MatchString(pattern, str)
	if err != nil {
		a.fail(fmt.Sprintf("Invalid regex pattern: %v", err), msgAndArgs...)
		return
	}
	if !matched {
		a.fail(fmt.Sprintf("Expected output to match pattern %q", pattern), msgAndArgs...)
	}
}

func (a *Assert) fail(message string, msgAndArgs ...any) {
	a.t.Helper()
	if len(msgAndArgs) > 0 {
		message = fmt.Sprintf("%s: %s", message, fmt.Sprint(msgAndArgs...))
	}
	a.t.Error(message)
}

// HTMLAssert provides HTML-specific assertions.
type HTMLAssert struct {
	*Assert
	html string
}

// NewHTMLAssert creates a new HTML assertion helper.
func NewHTMLAssert(t *testing.T, html string) *HTMLAssert {
	return &HTMLAssert{
		Assert: NewAssert(t),
		html:   html,
	}
}

// HasText asserts that the HTML contains specific text.
func (ha *HTMLAssert) HasText(text string) *HTMLAssert {
	ha.t.Helper()
	ha.Contains(ha.html, text)
	return ha
}

// NoText asserts that the HTML does not contain text.
func (ha *HTMLAssert) NoText(text string) *HTMLAssert {
	ha.t.Helper()
	ha.NotContains(ha.html, text)
	return ha
}

// HasClass asserts that some element carries class.
func (ha *HTMLAssert) HasClass(class string) *HTMLAssert {
	ha.t.Helper()
	ha.Matches(fmt.Sprintf(`class="([^"]* )?%s( [^"]*)?"`, regexp.QuoteMeta(class)), ha.html)
	return ha
}

// HasID asserts that the HTML contains an element with a specific ID.
func (ha *HTMLAssert) HasID(id string) *HTMLAssert {
	ha.t.Helper()
	ha.Contains(ha.html, fmt.Sprintf(`id="%s"`, id))
	return ha
}

// HasSlot asserts that a data-slot element with id exists.
func (ha *HTMLAssert) HasSlot(id string) *HTMLAssert {
	ha.t.Helper()
	ha.Contains(ha.html, fmt.Sprintf(`data-slot="%s"`, id))
	return ha
}

// Count returns the number of occurrences of s.
func (ha *HTMLAssert) Count(s string) int {
	return strings.Count(ha.html, s)
}
