// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package jmclient_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/jmcomic-api/pkg/jmclient"
)

/*
TestClient_Search sends keyword and client_type and decodes the data array.
*/
func TestClient_Search(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "cats", r.URL.Query().Get("keyword"))
		assert.Equal(t, "api", r.URL.Query().Get("client_type"))

		fmt.Fprint(w, `{"status":"success","data":[{"id":"1","title":"Cat","cover_url":null,"source_site":"N/A"}]}`)
	}))
	defer server.Close()

	client := jmclient.New(jmclient.Config{BaseURL: server.URL + "/", ClientType: "api"})
	items, err := client.Search(context.Background(), "cats")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Cat", items[0].Title)
	assert.Nil(t, items[0].CoverURL)
}

/*
TestClient_Detail decodes the nested chapters.
*/
func TestClient_Detail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/comic/123", r.URL.Path)
		assert.Equal(t, "html", r.URL.Query().Get("client_type"))

		fmt.Fprint(w, `{"status":"success","data":{"id":"123","title":"T","chapters":[{"id":"1","title":"c","index":"N/A","page_count":0}]}}`)
	}))
	defer server.Close()

	detail, err := jmclient.New(jmclient.Config{BaseURL: server.URL}).Detail(context.Background(), "123")
	require.NoError(t, err)
	require.Len(t, detail.Chapters, 1)
	assert.Equal(t, "N/A", detail.Chapters[0].Index)
}

/*
TestClient_Download posts chapter_ids and returns the hint.
*/
func TestClient_Download(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string][]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, []string{"1", "2"}, body["chapter_ids"])

		fmt.Fprint(w, `{"status":"success","message":"done","download_path_hint":"/data"}`)
	}))
	defer server.Close()

	result, err := jmclient.New(jmclient.Config{BaseURL: server.URL}).Download(context.Background(), "123", []string{"1", "2"})
	require.NoError(t, err)
	assert.Equal(t, "done", result.Message)
	assert.Equal(t, "/data", result.DownloadPathHint)
}

/*
TestClient_Errors maps error envelopes and bare failures to APIError.
*/
func TestClient_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		message string
	}{
		{"envelope", http.StatusInternalServerError, `{"status":"error","message":"all domains unavailable"}`, "all domains unavailable"},
		{"plain", http.StatusBadGateway, `upstream down`, "upstream down"},
		{"empty", http.StatusServiceUnavailable, ``, "Service Unavailable"},
		{"status_error_200", http.StatusOK, `{"status":"error","message":"odd"}`, "odd"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				fmt.Fprint(w, tt.body)
			}))
			defer server.Close()

			err := jmclient.New(jmclient.Config{BaseURL: server.URL}).Health(context.Background())

			var apiErr *jmclient.APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.message, apiErr.Message)
		})
	}
}

/*
TestClient_CallerDeadlineOutlivesTimeout lets a long download finish when the
caller allows more time than the configured timeout.
*/
func TestClient_CallerDeadlineOutlivesTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		fmt.Fprint(w, `{"status":"success","message":"done","download_path_hint":"/data"}`)
	}))
	defer server.Close()

	client := jmclient.New(jmclient.Config{BaseURL: server.URL, Timeout: 100 * time.Millisecond})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result, err := client.Download(ctx, "123", []string{"1", "2", "3"})
	require.NoError(t, err)
	assert.Equal(t, "done", result.Message)
}

/*
TestClient_TimeoutWithoutDeadline applies the configured timeout when the
caller sets no deadline.
*/
func TestClient_TimeoutWithoutDeadline(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	client := jmclient.New(jmclient.Config{BaseURL: server.URL, Timeout: 100 * time.Millisecond})

	started := time.Now()
	err := client.Health(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(started), 3*time.Second)
}
