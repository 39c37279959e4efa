// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package apperr defines the centralized error handling framework for the
jmcomic API.

It provides a rich error type that bridges the gap between collaborator errors
(network, parsing, disk) and high-level HTTP responses.

Architecture:

  - Kind: A closed enumeration of failure buckets. Nothing else is classified.
  - AppError: A struct carrying the Kind, a client-visible message and the cause.
  - Mapping: Each Kind maps to exactly one HTTP status code.

Every error that leaves the service layer is either an [AppError] or gets
wrapped as [Upstream] by the respond package.
*/
package apperr

import (
	"errors"
	"net/http"
)

// # Error Kinds

// Kind classifies an [AppError]. The set is closed.
type Kind uint8

const (
	// KindValidation is a client input problem (missing or malformed field).
	KindValidation Kind = iota + 1

	// KindUpstreamUnavailable means the library option never loaded, so no
	// client can be constructed.
	KindUpstreamUnavailable

	// KindUpstream is any failure raised inside the collaborator layer.
	KindUpstream
)

// String returns the machine-readable code of the kind.
func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "VALIDATION_ERROR"
	case KindUpstreamUnavailable:
		return "UPSTREAM_UNAVAILABLE"
	case KindUpstream:
		return "UPSTREAM_ERROR"
	}
	return "UNKNOWN"
}

// HTTPStatus returns the status code the kind is always answered with.
func (k Kind) HTTPStatus() int {
	if k == KindValidation {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// AppError is the canonical error type of the API.
//
// # Visibility
//
// Unlike a typical public API, upstream failures are reported verbatim:
// Message for [KindUpstream] is the cause's own string so callers can tell
// what went wrong on the serving side.
type AppError struct {
	// Kind selects the bucket and therefore the HTTP status.
	Kind Kind
	// Message is the human-readable text placed in the envelope.
	Message string
	// Cause is the underlying error, used for server-side logging.
	Cause error
}

// Error implements the error interface. It returns the client-visible message.
func (e *AppError) Error() string { return e.Message }

// Unwrap allows [errors.Is] and [errors.As] to traverse the cause chain.
func (e *AppError) Unwrap() error { return e.Cause }

// HTTPStatus is a shortcut for e.Kind.HTTPStatus().
func (e *AppError) HTTPStatus() int { return e.Kind.HTTPStatus() }

// # Constructors

// Validation creates a 400 [AppError].
//
// Example:
//
//	apperr.Validation("Missing 'keyword' parameter")
func Validation(msg string) *AppError {
	return &AppError{Kind: KindValidation, Message: msg}
}

// UpstreamUnavailable creates a 500 [AppError] with a fixed message.
func UpstreamUnavailable(msg string) *AppError {
	return &AppError{Kind: KindUpstreamUnavailable, Message: msg}
}

// Upstream wraps a collaborator error. The message is cause.Error().
// A nil cause yields nil.
func Upstream(cause error) *AppError {
	if cause == nil {
		return nil
	}
	return &AppError{Kind: KindUpstream, Message: cause.Error(), Cause: cause}
}

// # Helpers

// As extracts the [*AppError] from err's chain. It returns nil if not found.
func As(err error) *AppError {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}

// From returns err as an [*AppError], wrapping unclassified errors as [Upstream].
func From(err error) *AppError {
	if ae := As(err); ae != nil {
		return ae
	}
	return Upstream(err)
}

// Is reports whether err carries an [AppError] of the given kind.
func Is(err error, kind Kind) bool {
	ae := As(err)
	return ae != nil && ae.Kind == kind
}
