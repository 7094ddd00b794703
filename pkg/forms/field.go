package forms

// FieldType identifies the input type of a form field.
type FieldType string

const (
	FieldText   FieldType = "text"
	FieldEmail  FieldType = "email"
	FieldNumber FieldType = "number"
)

// Field describes one input as presented to a renderer.
type Field struct {
	// Name is the field name sent back with change events.
	Name string

	// Type is the HTML input type.
	Type FieldType

	Label       string
	Placeholder string

	// Prefix is shown inside the input before the value (e.g. "$").
	Prefix string

	// Hint is help text shown below the field.
	Hint string

	// Min is the HTML min attribute for number fields.
	Min string

	// Value is the current value formatted for display.
	Value string

	// Error is the current error message, if any.
	Error string
}

// HasError reports whether the field carries an error message.
func (f Field) HasError() bool {
	return f.Error != ""
}

// ID returns the DOM id used for the input.
func (f Field) ID() string {
	return "field-" + f.Name
}
