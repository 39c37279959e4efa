// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package requestutil provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling.
*/
package requestutil

import (
	"encoding/json"
	"mime"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/jmcomic-api/internal/platform/apperr"
)

var (
	// ErrNotJSON is returned when the request does not declare a JSON body.
	ErrNotJSON = apperr.Validation("Request body must be JSON")

	// ErrInvalidJSON is returned when the request body cannot be decoded.
	ErrInvalidJSON = apperr.Validation("Invalid JSON payload")
)

/*
IsJSON reports whether the request declares a JSON media type
(application/json or any application/*+json).
*/
func IsJSON(request *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(request.Header.Get("Content-Type"))
	if err != nil {
		return false
	}
	return mediaType == "application/json" ||
		(strings.HasPrefix(mediaType, "application/") && strings.HasSuffix(mediaType, "+json"))
}

/*
DecodeJSON checks the content type and decodes the body into target.

Returns:
  - error: ErrNotJSON or ErrInvalidJSON, otherwise nil
*/
func DecodeJSON(request *http.Request, target any) error {
	if !IsJSON(request) {
		return ErrNotJSON
	}

	decoder := json.NewDecoder(request.Body)
	decoder.UseNumber()
	if err := decoder.Decode(target); err != nil {
		return ErrInvalidJSON
	}
	return nil
}

/*
Param retrieves a named URL parameter from the request, trimmed.
*/
func Param(request *http.Request, name string) string {
	return strings.TrimSpace(chi.URLParam(request, name))
}

/*
Query retrieves a query string value, falling back to def when empty.
*/
func Query(request *http.Request, name, def string) string {
	if value := request.URL.Query().Get(name); value != "" {
		return value
	}
	return def
}
