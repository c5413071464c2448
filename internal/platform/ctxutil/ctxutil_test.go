// Copyright (c) 2026 Local Library. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package ctxutil_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/locallibrary/internal/platform/ctxutil"
)

func TestRequestID(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, ctxutil.GetRequestID(ctx))

	ctx = ctxutil.WithRequestID(ctx, "0192f1a0-req")
	assert.Equal(t, "0192f1a0-req", ctxutil.GetRequestID(ctx))
}

/*
TestLogger covers the default, the explicit fallback and an attached logger.
*/
func TestLogger(t *testing.T) {
	ctx := context.Background()
	fallback := slog.New(slog.NewTextHandler(io.Discard, nil))
	attached := slog.New(slog.NewJSONHandler(io.Discard, nil))

	assert.Same(t, slog.Default(), ctxutil.GetLogger(ctx))
	assert.Same(t, fallback, ctxutil.LoggerOr(ctx, fallback))

	ctx = ctxutil.WithLogger(ctx, attached)
	assert.Same(t, attached, ctxutil.GetLogger(ctx))
	assert.Same(t, attached, ctxutil.LoggerOr(ctx, fallback))
}
