// Copyright (c) 2026 Local Library. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package view renders the HTML pages of the catalog.

Handlers never touch templates directly. They hand a page name and a view
model to a [Renderer]; the production [HTML] renderer executes embedded
html/template files, and [Recorder] captures the call in tests.

Values are stored exactly as submitted and escaped here, at render time.
*/
package view

import (
	"io"

	"github.com/taibuivan/locallibrary/internal/platform/apperr"
)

// Renderer writes the named page for data.
type Renderer interface {
	Render(writer io.Writer, name string, data any) error
}

// # Shared View Models

// Form is the view model shared by every create and update form.
//
// Values holds the normalized submission (or the stored entity on an update
// GET) keyed by form field name; Errors is empty on first display.
type Form struct {
	Title  string
	Values map[string]string
	Errors []apperr.FieldError
}

// Value returns the value of one form field.
func (f Form) Value(field string) string {
	return f.Values[field]
}

// ErrorsFor returns the messages recorded against one field.
func (f Form) ErrorsFor(field string) []string {
	var messages []string
	for _, e := range f.Errors {
		if e.Field == field {
			messages = append(messages, e.Message)
		}
	}
	return messages
}

// ErrorPage is the view model of the error page.
type ErrorPage struct {
	Title   string
	Status  int
	Message string
}
