// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package jmclient is a typed Go client of the jmcomic HTTP API.

Usage:

	client := jmclient.New(jmclient.Config{BaseURL: "http://localhost:5000"})
	items, err := client.Search(ctx, "keyword")

Every request carries the configured client_type. Error envelopes and
non-2xx answers are returned as [*APIError].
*/
package jmclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// Defaults applied by [New].
const (
	DefaultBaseURL    = "http://localhost:5000"
	DefaultClientType = "html"
	DefaultTimeout    = 30 * time.Second
)

// Config configures a [Client].
type Config struct {
	BaseURL    string
	ClientType string
	Timeout    time.Duration
}

// # Response Types

// SearchItem is one search result.
type SearchItem struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Author      string  `json:"author"`
	Tags        string  `json:"tags"`
	Description string  `json:"description"`
	CoverURL    *string `json:"cover_url"`
	SourceSite  string  `json:"source_site"`
}

// Chapter is one chapter of a [ComicDetail].
type Chapter struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Index     string `json:"index"`
	PageCount int    `json:"page_count"`
}

// ComicDetail is an album with its chapters.
type ComicDetail struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Author      string    `json:"author"`
	Tags        string    `json:"tags"`
	Description string    `json:"description"`
	CoverURL    *string   `json:"cover_url"`
	Chapters    []Chapter `json:"chapters"`
	SourceSite  string    `json:"source_site"`
}

// DownloadResult is the answer to a download request.
type DownloadResult struct {
	Message          string
	DownloadPathHint string
}

// APIError is an error answered by the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("jmcomic api error (HTTP %d): %s", e.StatusCode, e.Message)
}

// envelope is the JSON body of every response.
type envelope struct {
	Status           string          `json:"status"`
	Data             json.RawMessage `json:"data"`
	Message          string          `json:"message"`
	DownloadPathHint string          `json:"download_path_hint"`
}

// # Client

// Client talks to one API server. It is safe for concurrent use.
//
// Timeout bounds calls whose context carries no deadline. A caller deadline,
// shorter or longer, always wins.
type Client struct {
	http       *resty.Client
	clientType string
	timeout    time.Duration
}

// New builds a [Client], filling zero config values with the defaults.
func New(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.ClientType == "" {
		cfg.ClientType = DefaultClientType
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	restyClient := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetHeader("Accept", "application/json")

	return &Client{http: restyClient, clientType: cfg.ClientType, timeout: cfg.Timeout}
}

// Health returns nil when the server reports a loaded configuration.
func (c *Client) Health(ctx context.Context) error {
	_, err := c.do(ctx, c.http.R(), http.MethodGet, "/health")
	return err
}

// Search returns every result for keyword.
func (c *Client) Search(ctx context.Context, keyword string) ([]SearchItem, error) {
	body, err := c.do(ctx, c.http.R().SetQueryParam("keyword", keyword), http.MethodGet, "/search")
	if err != nil {
		return nil, err
	}

	var items []SearchItem
	if err := json.Unmarshal(body.Data, &items); err != nil {
		return nil, fmt.Errorf("jmclient: decode search results: %w", err)
	}
	return items, nil
}

// Detail returns one album with its chapters.
func (c *Client) Detail(ctx context.Context, albumID string) (*ComicDetail, error) {
	body, err := c.do(ctx, c.http.R(), http.MethodGet, "/comic/"+url.PathEscape(albumID))
	if err != nil {
		return nil, err
	}

	var detail ComicDetail
	if err := json.Unmarshal(body.Data, &detail); err != nil {
		return nil, fmt.Errorf("jmclient: decode comic detail: %w", err)
	}
	return &detail, nil
}

// Download asks the server to download chapters and waits for it to finish.
func (c *Client) Download(ctx context.Context, albumID string, chapterIDs []string) (*DownloadResult, error) {
	request := c.http.R().
		SetHeader("Content-Type", "application/json").
		SetBody(map[string][]string{"chapter_ids": chapterIDs})

	body, err := c.do(ctx, request, http.MethodPost, "/download/"+url.PathEscape(albumID))
	if err != nil {
		return nil, err
	}
	return &DownloadResult{Message: body.Message, DownloadPathHint: body.DownloadPathHint}, nil
}

// do executes request and unwraps the envelope.
func (c *Client) do(ctx context.Context, request *resty.Request, method, path string) (*envelope, error) {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	resp, err := request.
		SetContext(ctx).
		SetQueryParam("client_type", c.clientType).
		Execute(method, path)
	if err != nil {
		return nil, fmt.Errorf("jmclient: %s %s: %w", method, path, err)
	}

	var body envelope
	decodeErr := json.Unmarshal(resp.Body(), &body)

	if resp.StatusCode() >= http.StatusBadRequest || body.Status == "error" {
		message := body.Message
		if decodeErr != nil || message == "" {
			message = strings.TrimSpace(string(resp.Body()))
		}
		if message == "" {
			message = http.StatusText(resp.StatusCode())
		}
		return nil, &APIError{StatusCode: resp.StatusCode(), Message: message}
	}

	if decodeErr != nil {
		return nil, fmt.Errorf("jmclient: decode %s response: %w", path, decodeErr)
	}
	return &body, nil
}
