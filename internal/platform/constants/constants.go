// Copyright (c) 2026 Local Library. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package constants provides centralized, immutable values for the entire platform.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Rate Limiting: Default limiter settings and IP tracking TTLs.
  - HTTP: Header names and form limits shared by middleware and handlers.
  - Cache: Key taxonomy of the summary cache.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "locallibrary"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 5 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 10 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second

	// ReadinessTimeout bounds each dependency ping of the readiness probe.
	ReadinessTimeout = 2 * time.Second
)

// # Rate Limiting

const (
	// DefaultRateLimitRPS is the requests per second allowed per IP.
	DefaultRateLimitRPS = 20.0

	// DefaultRateLimitBurst is the maximum burst allowed for the rate limiter.
	DefaultRateLimitBurst = 40

	// RateLimitCleanupInterval is how often old IP entries are removed from memory.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute
)

// # HTTP

const (
	HeaderXRequestID  = "X-Request-ID"
	HeaderContentType = "Content-Type"
	HeaderRetryAfter  = "Retry-After"

	ContentTypeHTML = "text/html; charset=utf-8"
	ContentTypeJSON = "application/json; charset=utf-8"

	// MaxFormBytes caps the size of a submitted form body.
	MaxFormBytes = 1 << 20
)

// # JSON Field Identifiers

const (
	FieldData    = "data"
	FieldError   = "error"
	FieldCode    = "code"
	FieldMessage = "message"
	FieldStatus  = "status"
	FieldApp     = "app"
	FieldVersion = "version"
	FieldChecks  = "checks"
)

// # Cache Taxonomy

const (
	// CacheKeySummary holds the serialized catalog counts of the home page.
	CacheKeySummary = "locallibrary:summary:counts"

	// CacheKeySummaryVersion counts summary invalidations. Cached counts are
	// tagged with the value read before they were computed.
	CacheKeySummaryVersion = "locallibrary:summary:version"

	// DefaultSummaryTTL is how long cached counts are served before a recount.
	DefaultSummaryTTL = 30 * time.Second
)
