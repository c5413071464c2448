// Copyright (c) 2026 Local Library. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package respond provides HTTP response helpers used by all handlers.
//
// # Architecture
//
// Catalog pages are rendered HTML ([Page]); successful writes answer with a
// 303 redirect ([Redirect]); every failure goes through [Error], which maps
// an [apperr.AppError] to its status and renders the error page. Health
// probes are the only JSON responses ([JSON], [OK]).
package respond

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/taibuivan/locallibrary/internal/platform/apperr"
	"github.com/taibuivan/locallibrary/internal/platform/constants"
	"github.com/taibuivan/locallibrary/internal/platform/ctxutil"
	"github.com/taibuivan/locallibrary/internal/platform/view"
)

// SuccessEnvelope is the JSON envelope for successful probe responses.
type SuccessEnvelope struct {
	Data interface{} `json:"data"`
}

// # HTML

// Page renders a page with 200 OK.
func Page(writer http.ResponseWriter, request *http.Request, renderer view.Renderer, name string, data any) {
	PageStatus(writer, request, renderer, http.StatusOK, name, data)
}

/*
PageStatus renders a page with the given status.

Description: The page is rendered into a buffer first, so a template failure
still produces a clean 500 instead of a half-written body.
*/
func PageStatus(writer http.ResponseWriter, request *http.Request, renderer view.Renderer, status int, name string, data any) {
	var buffer bytes.Buffer
	if err := renderer.Render(&buffer, name, data); err != nil {
		ctxutil.GetLogger(request.Context()).ErrorContext(request.Context(), "view_render_failed",
			slog.String("page", name),
			slog.String("error", err.Error()),
		)
		http.Error(writer, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	writer.Header().Set(constants.HeaderContentType, constants.ContentTypeHTML)
	writer.WriteHeader(status)
	_, _ = buffer.WriteTo(writer)
}

// Redirect answers a successful form submission with 303 See Other.
func Redirect(writer http.ResponseWriter, request *http.Request, location string) {
	http.Redirect(writer, request, location, http.StatusSeeOther)
}

// Error converts any Go error into the rendered error page.
func Error(writer http.ResponseWriter, request *http.Request, renderer view.Renderer, err error) {
	appError := resolve(request, err)

	PageStatus(writer, request, renderer, appError.HTTPStatus, "error", view.ErrorPage{
		Title:   http.StatusText(appError.HTTPStatus),
		Status:  appError.HTTPStatus,
		Message: appError.Message,
	})
}

// # JSON

// JSON writes a JSON response with the given status code.
func JSON(writer http.ResponseWriter, statusCode int, payload interface{}) {
	writer.Header().Set(constants.HeaderContentType, constants.ContentTypeJSON)
	writer.WriteHeader(statusCode)
	_ = json.NewEncoder(writer).Encode(payload)
}

// OK writes a 200 OK response with data wrapped in the standard success envelope.
func OK(writer http.ResponseWriter, data interface{}) {
	JSON(writer, http.StatusOK, SuccessEnvelope{Data: data})
}

// resolve normalizes err into an [apperr.AppError] and logs server-side failures.
func resolve(request *http.Request, err error) *apperr.AppError {
	logger := ctxutil.GetLogger(request.Context())

	var appError *apperr.AppError
	if !errors.As(err, &appError) {
		// Unexpected internal error: log full details but hide them from the client.
		logger.ErrorContext(request.Context(), "unhandled_error_swallowed",
			slog.String("error", err.Error()),
			slog.String("request_id", ctxutil.GetRequestID(request.Context())),
		)
		appError = apperr.Internal(err)
	}

	// Always log 5xx errors as they indicate server-side issues.
	if appError.HTTPStatus >= http.StatusInternalServerError {
		logger.ErrorContext(request.Context(), "server_error",
			slog.String("code", appError.Code),
			slog.String("request_id", ctxutil.GetRequestID(request.Context())),
			slog.Any("cause", appError.Cause),
		)
	}

	return appError
}
