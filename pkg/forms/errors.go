package forms

import (
	"maps"
	"sort"
)

// Errors maps field names to the first failing validator's message.
type Errors map[string]string

// Validate runs validators against value in order and records the first
// failure under field. It reports whether the value passed.
func (e Errors) Validate(field string, value any, validators ...Validator) bool {
	for _, v := range validators {
		if err := v.Validate(value); err != nil {
			e[field] = v.Message()
			return false
		}
	}
	return true
}

// Add records a message for field, replacing any previous one.
func (e Errors) Add(field, msg string) {
	e[field] = msg
}

// Get returns the message for field, or "".
func (e Errors) Get(field string) string {
	return e[field]
}

// Has reports whether field has an error.
func (e Errors) Has(field string) bool {
	_, ok := e[field]
	return ok
}

// Empty reports whether there are no errors.
func (e Errors) Empty() bool {
	return len(e) == 0
}

// Fields returns the names of the failing fields, sorted.
func (e Errors) Fields() []string {
	out := make([]string, 0, len(e))
	for k := range e {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Clone returns an independent copy.
func (e Errors) Clone() Errors {
	if e == nil {
		return Errors{}
	}
	return maps.Clone(e)
}
