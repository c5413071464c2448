// Copyright (c) 2026 Local Library. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dberr_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/locallibrary/internal/platform/apperr"
	"github.com/taibuivan/locallibrary/internal/platform/dberr"
)

/*
TestWrap_Classification maps driver errors onto the application taxonomy.
*/
func TestWrap_Classification(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		code   string
		status int
	}{
		{"no_rows", pgx.ErrNoRows, "NOT_FOUND", http.StatusNotFound},
		{"foreign_key", &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation}, "CONFLICT", http.StatusConflict},
		{"unique", &pgconn.PgError{Code: pgerrcode.UniqueViolation}, "CONFLICT", http.StatusConflict},
		{"unknown", errors.New("connection reset"), "INTERNAL_ERROR", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ae := apperr.As(dberr.Wrap(tt.err, "Author", "get_author"))
			require.NotNil(t, ae)
			assert.Equal(t, tt.code, ae.Code)
			assert.Equal(t, tt.status, ae.HTTPStatus)
		})
	}
}

/*
TestWrap_Nil passes nil through untouched.
*/
func TestWrap_Nil(t *testing.T) {
	assert.NoError(t, dberr.Wrap(nil, "Author", "get_author"))
}

/*
TestWrap_NotFoundMessage names the resource.
*/
func TestWrap_NotFoundMessage(t *testing.T) {
	err := dberr.Wrap(pgx.ErrNoRows, "Genre", "get_genre")
	assert.Equal(t, "Genre not found", err.Error())
	assert.True(t, apperr.IsNotFound(err))
}
