// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package respond provides HTTP response helpers used by all API handlers.
//
// # Architecture
//
// Every response, success or error, is written through this package so the
// JSON envelope stays uniform:
//
//	{"status": "success", "data": ...}
//	{"status": "error", "message": "..."}
package respond

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/taibuivan/jmcomic-api/internal/platform/apperr"
	"github.com/taibuivan/jmcomic-api/internal/platform/constants"
	"github.com/taibuivan/jmcomic-api/internal/platform/ctxutil"
)

// Envelope is the JSON body of every response.
//
// Extra carries route-specific top-level fields (e.g. download_path_hint)
// and is flattened into the object when encoded.
type Envelope struct {
	Status  string
	Data    any
	Message string
	Extra   map[string]any
}

// MarshalJSON flattens the envelope into a single object, omitting empty parts.
func (e Envelope) MarshalJSON() ([]byte, error) {
	body := make(map[string]any, 3+len(e.Extra))
	for key, value := range e.Extra {
		body[key] = value
	}

	body[constants.FieldStatus] = e.Status
	if e.Data != nil {
		body[constants.FieldData] = e.Data
	}
	if e.Message != "" {
		body[constants.FieldMessage] = e.Message
	}

	return json.Marshal(body)
}

// JSON writes a JSON response with the given status code.
func JSON(writer http.ResponseWriter, statusCode int, payload any) {
	writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	writer.WriteHeader(statusCode)
	_ = json.NewEncoder(writer).Encode(payload)
}

// OK writes a 200 response with data wrapped in the success envelope.
func OK(writer http.ResponseWriter, data any) {
	JSON(writer, http.StatusOK, Envelope{Status: constants.StatusSuccess, Data: data})
}

// Success writes a 200 success envelope carrying a message and extra fields.
func Success(writer http.ResponseWriter, message string, extra map[string]any) {
	JSON(writer, http.StatusOK, Envelope{Status: constants.StatusSuccess, Message: message, Extra: extra})
}

// Status writes an envelope with an arbitrary status word, as used by /health.
func Status(writer http.ResponseWriter, statusCode int, status, message string) {
	JSON(writer, statusCode, Envelope{Status: status, Message: message})
}

// Fail writes an error envelope with a fixed code and message.
func Fail(writer http.ResponseWriter, statusCode int, message string) {
	Status(writer, statusCode, constants.StatusError, message)
}

// Error converts any Go error into the error envelope.
//
// Unclassified errors are treated as [apperr.KindUpstream]: the raw error
// text becomes the message.
func Error(writer http.ResponseWriter, request *http.Request, err error) {
	appError := apperr.From(err)

	// Always log 5xx errors as they indicate server-side issues.
	if appError.HTTPStatus() >= http.StatusInternalServerError {
		logger := ctxutil.GetLogger(request.Context())
		logger.ErrorContext(request.Context(), "api_server_error",
			slog.String("code", appError.Kind.String()),
			slog.String("request_id", ctxutil.GetRequestID(request.Context())),
			slog.String("message", appError.Message),
			slog.Any("cause", appError.Cause),
		)
	}

	Fail(writer, appError.HTTPStatus(), appError.Message)
}
