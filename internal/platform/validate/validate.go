// Copyright (c) 2026 Local Library. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package validate provides the field validation layer for catalog forms.
//
// # Architecture
//
// A [Validator] collects field-level errors through a fluent, chainable API.
// A [Schema] declares the ordered rule set of one form and drives a Validator
// over a raw submission, producing a [Result] with normalized values and the
// accumulated errors. Individual rules delegate to ozzo-validation.
//
// This package is used exclusively in the service layer and never touches storage.
package validate

import (
	"time"
	"unicode/utf8"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/taibuivan/locallibrary/internal/platform/apperr"
)

// DateLayout is the canonical ISO-8601 calendar date layout accepted by forms.
const DateLayout = "2006-01-02"

// Validator collects field-level validation errors via a fluent, chainable API.
//
// # Concurrency
//
// Validator is not safe for concurrent use. A new instance must be created
// for every request/operation.
type Validator struct {
	errs []apperr.FieldError
}

// Required fails if the value is empty. Callers trim before validating.
func (v *Validator) Required(field, value, message string) *Validator {
	if err := validation.Validate(value, validation.Required); err != nil {
		v.add(field, message)
	}
	return v
}

// MinLen fails if the Unicode character count is below min.
//
// Unlike most rules it does not skip empty values: an empty value is shorter
// than any positive minimum.
func (v *Validator) MinLen(field, value string, min int, message string) *Validator {
	if utf8.RuneCountInString(value) < min {
		v.add(field, message)
	}
	return v
}

// Alphanumeric fails if a non-empty value contains anything but ASCII letters and digits.
func (v *Validator) Alphanumeric(field, value, message string) *Validator {
	if err := validation.Validate(value, is.Alphanumeric); err != nil {
		v.add(field, message)
	}
	return v
}

// OneOf fails if a non-empty value is not in the allowed set.
func (v *Validator) OneOf(field, value, message string, allowed ...string) *Validator {
	candidates := make([]any, len(allowed))
	for i, a := range allowed {
		candidates[i] = a
	}
	if err := validation.Validate(value, validation.In(candidates...)); err != nil {
		v.add(field, message)
	}
	return v
}

// Date fails if a non-empty value is not an ISO-8601 date. An empty value is
// treated as "not provided" and passes.
func (v *Validator) Date(field, value, message string) *Validator {
	if _, ok := ParseDate(value); !ok && value != "" {
		v.add(field, message)
	}
	return v
}

// Custom adds a failure with a custom message if the condition is true.
//
// # Example
//
//	v.Custom("name", fold.Key(name) == "", "Genre name must contain letters or digits")
func (v *Validator) Custom(field string, failed bool, message string) *Validator {
	if failed {
		v.add(field, message)
	}
	return v
}

// Err returns a VALIDATION_ERROR [apperr.AppError] if any rule failed, or nil.
func (v *Validator) Err() error {
	if len(v.errs) == 0 {
		return nil
	}
	return apperr.ValidationError("Validation failed", v.errs...)
}

// HasErrors reports whether any validation rule has failed so far.
func (v *Validator) HasErrors() bool {
	return len(v.errs) > 0
}

// Errors returns the accumulated failures in the order they were recorded.
func (v *Validator) Errors() []apperr.FieldError {
	return v.errs
}

// add appends a [apperr.FieldError] to the internal slice.
func (v *Validator) add(field, message string) {
	v.errs = append(v.errs, apperr.FieldError{Field: field, Message: message})
}

// ParseDate parses an ISO-8601 date ("2006-01-02") or, as a fallback, an
// RFC 3339 timestamp truncated to its calendar date. Empty input is not a date.
func ParseDate(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	if validation.Validate(value, validation.Date(DateLayout)) == nil {
		parsed, _ := time.Parse(DateLayout, value)
		return parsed, true
	}
	if validation.Validate(value, validation.Date(time.RFC3339)) == nil {
		parsed, _ := time.Parse(time.RFC3339, value)
		year, month, day := parsed.Date()
		return time.Date(year, month, day, 0, 0, 0, 0, time.UTC), true
	}
	return time.Time{}, false
}
