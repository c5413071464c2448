// Copyright (c) 2026 Local Library. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package validate

import (
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/taibuivan/locallibrary/internal/platform/apperr"
)

// # Schema Definition

// Field declares the rule set of one form field.
//
// Rules always run in the same order, whatever order the builder methods are
// called in: trim, required, minimum length, alphanumeric, one-of, predicate, date.
type Field struct {
	name         string
	defaultValue string

	required     string
	minLen       int
	minLenMsg    string
	alphanumeric string
	oneOfMsg     string
	oneOf        []string
	satisfies    func(string) bool
	satisfiesMsg string
	date         string
}

// String declares a trimmed text field with the given wire name.
func String(name string) *Field {
	return &Field{name: name}
}

// Name returns the wire name of the field.
func (f *Field) Name() string { return f.name }

// Required rejects an empty (post-trim) value with message.
func (f *Field) Required(message string) *Field {
	f.required = message
	return f
}

// MinLen rejects values with fewer than n characters.
func (f *Field) MinLen(n int, message string) *Field {
	f.minLen, f.minLenMsg = n, message
	return f
}

// Alphanumeric rejects values containing non-alphanumeric characters.
func (f *Field) Alphanumeric(message string) *Field {
	f.alphanumeric = message
	return f
}

// OneOf rejects non-empty values outside allowed.
func (f *Field) OneOf(message string, allowed ...string) *Field {
	f.oneOfMsg, f.oneOf = message, allowed
	return f
}

// Satisfies rejects non-empty values for which predicate returns false.
func (f *Field) Satisfies(message string, predicate func(string) bool) *Field {
	f.satisfiesMsg, f.satisfies = message, predicate
	return f
}

// Default substitutes value when the submitted value is empty.
func (f *Field) Default(value string) *Field {
	f.defaultValue = value
	return f
}

// Date marks the field as an optional calendar date.
func (f *Field) Date(message string) *Field {
	f.date = message
	return f
}

// Schema is the ordered rule set for one form. The declaration order of its
// fields fixes the order of the reported errors.
type Schema struct {
	fields []*Field
	index  map[string]int
}

// NewSchema builds a [Schema] from fields in declaration order.
func NewSchema(fields ...*Field) *Schema {
	index := make(map[string]int, len(fields))
	for i, f := range fields {
		index[f.name] = i
	}
	return &Schema{fields: fields, index: index}
}

// # Schema Application

/*
Apply validates a raw submission against the schema.

Description: Every field is normalized and every rule evaluated; errors are
accumulated across all fields rather than stopping at the first failure.
Absent fields behave exactly like empty ones.

Parameters:
  - input: url.Values (Raw form values; only the first value of each field is read)

Returns:
  - *Result: Normalized values, parsed dates and the ordered error list
*/
func (s *Schema) Apply(input url.Values) *Result {
	result := &Result{
		values: make(map[string]string, len(s.fields)),
		dates:  make(map[string]time.Time),
		schema: s,
	}
	validator := &Validator{}

	for _, field := range s.fields {

		// 1. Trim
		value := strings.TrimSpace(input.Get(field.name))
		if value == "" && field.defaultValue != "" {
			value = field.defaultValue
		}
		result.values[field.name] = value

		// 2. Presence and shape
		if field.required != "" {
			validator.Required(field.name, value, field.required)
		}
		if field.minLenMsg != "" {
			validator.MinLen(field.name, value, field.minLen, field.minLenMsg)
		}
		if field.alphanumeric != "" {
			validator.Alphanumeric(field.name, value, field.alphanumeric)
		}
		if field.oneOfMsg != "" {
			validator.OneOf(field.name, value, field.oneOfMsg, field.oneOf...)
		}
		if field.satisfies != nil {
			validator.Custom(field.name, value != "" && !field.satisfies(value), field.satisfiesMsg)
		}

		// 3. Optional date: empty means absent
		if field.date != "" {
			if parsed, ok := ParseDate(value); ok {
				result.dates[field.name] = parsed
			}
			validator.Date(field.name, value, field.date)
		}
	}

	result.errs = validator.Errors()
	return result
}

// # Validation Result

// Result is the outcome of applying a [Schema]: the normalized values to echo
// back on the form and the field errors to display next to them.
type Result struct {
	values map[string]string
	dates  map[string]time.Time
	errs   []apperr.FieldError
	schema *Schema
}

// Value returns the normalized (trimmed) value of field.
func (r *Result) Value(field string) string {
	return r.values[field]
}

// Date returns the parsed date of field, or nil when absent or invalid.
func (r *Result) Date(field string) *time.Time {
	parsed, ok := r.dates[field]
	if !ok {
		return nil
	}
	return &parsed
}

// Values returns a copy of all normalized values keyed by field name.
func (r *Result) Values() map[string]string {
	out := make(map[string]string, len(r.values))
	for k, v := range r.values {
		out[k] = v
	}
	return out
}

// Reject records a failure discovered after the schema ran (for example a
// reference that does not resolve). Errors stay in field declaration order.
func (r *Result) Reject(field, message string) {
	r.errs = append(r.errs, apperr.FieldError{Field: field, Message: message})
}

// Errors returns the failures ordered by field declaration order. Failures on
// the same field keep the order in which they were recorded.
func (r *Result) Errors() []apperr.FieldError {
	out := make([]apperr.FieldError, len(r.errs))
	copy(out, r.errs)
	sort.SliceStable(out, func(i, j int) bool {
		return r.position(out[i].Field) < r.position(out[j].Field)
	})
	return out
}

// Valid reports whether no rule failed.
func (r *Result) Valid() bool {
	return len(r.errs) == 0
}

// Err returns the failures as a VALIDATION_ERROR [apperr.AppError], or nil.
func (r *Result) Err() error {
	if r.Valid() {
		return nil
	}
	return apperr.ValidationError("Validation failed", r.Errors()...)
}

// position returns the declaration index of field; undeclared fields sort last.
func (r *Result) position(field string) int {
	if r.schema == nil {
		return 0
	}
	if i, ok := r.schema.index[field]; ok {
		return i
	}
	return len(r.schema.fields)
}
