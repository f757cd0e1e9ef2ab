// Package modal implements the JSON envelope protocol used by the
// client-side modal dialogs: forms and confirmation fragments are rendered
// server-side to HTML strings and shipped inside JSON responses, together
// with validation state and metadata about the affected record.
package modal

import (
	"net/url"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// NewValidator builds a validator whose error field names come from the
// `form` struct tag, so validation failures land on the matching form field
// instead of the form-level error.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		if name := fld.Tag.Get("form"); name != "" {
			return name
		}
		return fld.Name
	})
	return v
}

// Option is a selectable choice for a select widget.
type Option struct {
	Value string
	Label string
}

// Field describes a single form input for template rendering.
type Field struct {
	Name     string
	Label    string
	Widget   string // text, textarea, number, checkbox, select
	Help     string
	Required bool
	Value    string
	Options  []Option
	Error    string
}

// Form carries field definitions, bound input values and validation state.
// It is created per request and discarded with the response.
type Form struct {
	Fields []Field

	// NonFieldError holds a form-level failure, e.g. a uniqueness conflict
	// reported by the repository after field validation passed.
	NonFieldError string

	bound bool
}

// NewForm builds an unbound form from field definitions.
func NewForm(fields ...Field) *Form {
	return &Form{Fields: fields}
}

// Bind copies submitted values onto the fields and marks the form bound.
func (f *Form) Bind(values url.Values) {
	for i := range f.Fields {
		name := f.Fields[i].Name
		if f.Fields[i].Widget == "checkbox" {
			// Unchecked boxes are absent from the submitted set.
			f.Fields[i].Value = checkboxValue(values, name)
			continue
		}
		if vs, ok := values[name]; ok && len(vs) > 0 {
			f.Fields[i].Value = vs[0]
		}
	}
	f.bound = true
}

// SetValues pre-populates field values from existing record data, keyed by
// field name. Used by update views before the form is shown.
func (f *Form) SetValues(values map[string]string) {
	for i := range f.Fields {
		if v, ok := values[f.Fields[i].Name]; ok {
			f.Fields[i].Value = v
		}
	}
}

// Value returns the bound value of a named field.
func (f *Form) Value(name string) string {
	for i := range f.Fields {
		if f.Fields[i].Name == name {
			return f.Fields[i].Value
		}
	}
	return ""
}

// SetError attaches a validation message to a field. An empty field name
// records a form-level error.
func (f *Form) SetError(field, message string) {
	if field == "" {
		f.NonFieldError = message
		return
	}
	for i := range f.Fields {
		if f.Fields[i].Name == field {
			f.Fields[i].Error = message
			return
		}
	}
	f.NonFieldError = message
}

// Valid reports whether the form is bound and free of errors.
func (f *Form) Valid() bool {
	if !f.bound {
		return false
	}
	if f.NonFieldError != "" {
		return false
	}
	for i := range f.Fields {
		if f.Fields[i].Error != "" {
			return false
		}
	}
	return true
}

// ApplyValidation maps validator.ValidationErrors onto form fields. Field
// names reported by the validator (the `form` tag under NewValidator, the
// struct field name otherwise) are matched case-insensitively against form
// field names.
func (f *Form) ApplyValidation(err error) {
	if err == nil {
		return
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		f.NonFieldError = err.Error()
		return
	}
	for _, fe := range verrs {
		f.SetError(strings.ToLower(fe.Field()), validationMessage(fe))
	}
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "max":
		return "Value is too long"
	case "min":
		return "Value is too short"
	case "gte":
		return "Value must not be negative"
	case "email":
		return "Enter a valid email address"
	case "url":
		return "Enter a valid URL"
	default:
		return "Invalid value"
	}
}

func checkboxValue(values url.Values, name string) string {
	switch strings.ToLower(values.Get(name)) {
	case "on", "true", "1", "yes":
		return "true"
	default:
		return "false"
	}
}
