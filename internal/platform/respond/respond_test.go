// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package respond_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/jmcomic-api/internal/platform/apperr"
	"github.com/taibuivan/jmcomic-api/internal/platform/respond"
)

func decode(t *testing.T, recorder *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	return body
}

/*
TestOK wraps data in the success envelope.
*/
func TestOK(t *testing.T) {
	recorder := httptest.NewRecorder()
	respond.OK(recorder, []string{"a", "b"})

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "application/json; charset=utf-8", recorder.Header().Get("Content-Type"))

	body := decode(t, recorder)
	assert.Equal(t, "success", body["status"])
	assert.Equal(t, []any{"a", "b"}, body["data"])
	assert.NotContains(t, body, "message")
}

/*
TestSuccess flattens extra fields next to status and message.
*/
func TestSuccess(t *testing.T) {
	recorder := httptest.NewRecorder()
	respond.Success(recorder, "done", map[string]any{"download_path_hint": "/data"})

	body := decode(t, recorder)
	assert.Equal(t, "success", body["status"])
	assert.Equal(t, "done", body["message"])
	assert.Equal(t, "/data", body["download_path_hint"])
	assert.NotContains(t, body, "data")
}

/*
TestError maps every kind to its status and keeps the message.
*/
func TestError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"validation", apperr.Validation("Missing 'keyword' parameter"), http.StatusBadRequest, "Missing 'keyword' parameter"},
		{"unavailable", apperr.UpstreamUnavailable("not initialized"), http.StatusInternalServerError, "not initialized"},
		{"raw_error", errors.New("upstream exploded"), http.StatusInternalServerError, "upstream exploded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			request := httptest.NewRequest(http.MethodGet, "/", nil)

			respond.Error(recorder, request, tt.err)

			assert.Equal(t, tt.status, recorder.Code)
			body := decode(t, recorder)
			assert.Equal(t, "error", body["status"])
			assert.Equal(t, tt.message, body["message"])
		})
	}
}
