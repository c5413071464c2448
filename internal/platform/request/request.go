// Copyright (c) 2026 Local Library. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and the form
decoding used by every catalog handler.
*/
package requestutil

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/locallibrary/internal/platform/apperr"
	"github.com/taibuivan/locallibrary/internal/platform/constants"
)

/*
ID retrieves a named URL parameter from the request.
*/
func ID(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
Form parses a urlencoded or multipart form body.

Parameters:
  - writer: http.ResponseWriter (Needed to cap the body size)
  - request: *http.Request

Returns:
  - url.Values: The posted values (query string excluded)
  - error: apperr.BadRequest when the body is malformed or too large
*/
func Form(writer http.ResponseWriter, request *http.Request) (url.Values, error) {
	request.Body = http.MaxBytesReader(writer, request.Body, constants.MaxFormBytes)
	if err := request.ParseForm(); err != nil {
		return nil, apperr.BadRequest("Malformed form submission")
	}
	return request.PostForm, nil
}

/*
TargetID resolves the id a delete submission acts on.

The id posted in the body field wins; the URL parameter is the fallback.
*/
func TargetID(request *http.Request, form url.Values, field, param string) string {
	if id := strings.TrimSpace(form.Get(field)); id != "" {
		return id
	}
	return ID(request, param)
}
