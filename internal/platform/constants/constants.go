// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package constants provides centralized, immutable values for the entire platform.

Categories:

  - Server Timing: Read/Idle timeouts for the HTTP server.
  - HTTP: Header names shared by middleware.
  - Envelope: JSON field names and status words.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "jmcomic-api"
	AppVersion = "0.2.0"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 10 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	// Downloads still running after it are abandoned.
	ShutdownTimeout = 30 * time.Second

	// DomainProbeTimeout bounds the whole /health/domains probe.
	DomainProbeTimeout = 20 * time.Second
)

// # HTTP Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderOrigin        = "Origin"
)

// # JSON Envelope

const (
	FieldStatus           = "status"
	FieldData             = "data"
	FieldMessage          = "message"
	FieldDownloadPathHint = "download_path_hint"

	StatusSuccess = "success"
	StatusError   = "error"
	StatusOK      = "ok"
)

// # Cache Taxonomy

const (
	RedisPrefixDetail = "jm:detail:"
)
