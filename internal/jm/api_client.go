// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package jm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"iter"
	"net/url"
	"strconv"
	"strings"

	"github.com/taibuivan/jmcomic-api/pkg/convert"
	"github.com/taibuivan/jmcomic-api/pkg/pointer"
)

// APIError is a non-zero code in the {code, data} envelope of the JSON endpoints.
type APIError struct {
	Code    int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("jm api error %d: %s", e.Code, e.Message)
}

// apiEnvelope is the body of every /api/v1 response.
type apiEnvelope struct {
	Code         int             `json:"code"`
	ErrorMessage string          `json:"errorMsg"`
	Data         json.RawMessage `json:"data"`
}

// flexString accepts a JSON string or number.
type flexString string

func (s *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var value string
		if err := json.Unmarshal(data, &value); err != nil {
			return err
		}
		*s = flexString(value)
		return nil
	}

	var number json.Number
	if err := json.Unmarshal(data, &number); err != nil {
		return fmt.Errorf("jm: expected string or number, got %s", data)
	}
	*s = flexString(number.String())
	return nil
}

// flexList accepts a JSON list of strings or a single comma separated string.
type flexList []string

func (l *flexList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var values []flexString
		if err := json.Unmarshal(data, &values); err != nil {
			return err
		}
		list := make(flexList, 0, len(values))
		for _, value := range values {
			list = append(list, string(value))
		}
		*l = list
		return nil
	}

	var single flexString
	if err := json.Unmarshal(data, &single); err != nil {
		return err
	}
	*l = strings.Split(string(single), ",")
	return nil
}

type apiSearchPage struct {
	Total   flexString     `json:"total"`
	Content []apiAlbumItem `json:"content"`
}

type apiAlbumItem struct {
	ID          flexString `json:"id"`
	Name        string     `json:"name"`
	Author      flexList   `json:"author"`
	Tags        flexList   `json:"tags"`
	Description string     `json:"description"`
	Image       string     `json:"image"`
}

type apiAlbum struct {
	apiAlbumItem
	Series []apiSeries `json:"series"`
}

type apiSeries struct {
	ID    flexString `json:"id"`
	Name  string     `json:"name"`
	Sort  flexString `json:"sort"`
	Pages flexString `json:"pages"`
}

type apiChapter struct {
	ID     flexString `json:"id"`
	Images []string   `json:"images"`
}

// apiClient talks to the JSON endpoints under /api/v1.
type apiClient struct {
	fetch *fetcher
}

func (c *apiClient) Kind() ClientKind { return KindAPI }

// call fetches path and decodes the data part of the envelope into target.
func (c *apiClient) call(ctx context.Context, path string, query map[string]string, target any) (string, error) {
	var served string

	err := c.fetch.get(ctx, path, query, func(body []byte, domain string) error {
		var envelope apiEnvelope
		if err := json.Unmarshal(body, &envelope); err != nil {
			return fmt.Errorf("jm: decode %s: %w", path, err)
		}
		if envelope.Code != 0 {
			return terminal(&APIError{Code: envelope.Code, Message: envelope.ErrorMessage})
		}
		if err := json.Unmarshal(envelope.Data, target); err != nil {
			return fmt.Errorf("jm: decode %s data: %w", path, err)
		}
		served = domain
		return nil
	})

	return served, err
}

// Search walks the result pages until total results were seen. Every
// iteration of the returned sequence starts over from the first page.
func (c *apiClient) Search(ctx context.Context, keyword string) iter.Seq2[AlbumSummary, error] {
	return func(yield func(AlbumSummary, error) bool) {
		seen := 0
		c.searchPages(ctx, keyword, &seen)(yield)
	}
}

func (c *apiClient) searchPages(ctx context.Context, keyword string, seen *int) iter.Seq2[AlbumSummary, error] {
	return paginate(c.fetch.option.Client.SearchPages, func(page int) ([]AlbumSummary, bool, error) {
		var result apiSearchPage
		domain, err := c.call(ctx, "/api/v1/search", map[string]string{
			"search_query": keyword,
			"page":         strconv.Itoa(page),
		}, &result)
		if err != nil {
			return nil, false, err
		}

		items := make([]AlbumSummary, 0, len(result.Content))
		for _, item := range result.Content {
			items = append(items, AlbumSummary{
				ID:          string(item.ID),
				Title:       item.Name,
				Authors:     item.Author,
				Tags:        item.Tags,
				Description: pointer.NonZero(strings.TrimSpace(item.Description)),
				CoverURL:    pointer.NonZero(c.absolute(domain, item.Image)),
				SourceSite:  pointer.To(domain),
			})
		}

		*seen += len(items)
		total := convert.ToIntD(string(result.Total), 0)
		return items, total == 0 || *seen < total, nil
	})
}

func (c *apiClient) AlbumDetail(ctx context.Context, albumID string) (*AlbumDetail, error) {
	var album apiAlbum
	domain, err := c.call(ctx, "/api/v1/album/"+url.PathEscape(albumID), nil, &album)
	if err != nil {
		return nil, err
	}

	detail := &AlbumDetail{
		ID:          pointer.Fallback(pointer.NonZero(string(album.ID)), albumID),
		Title:       album.Name,
		Authors:     album.Author,
		Tags:        album.Tags,
		Description: strings.TrimSpace(album.Description),
		CoverURL:    pointer.NonZero(c.absolute(domain, album.Image)),
		SourceSite:  pointer.To(domain),
	}

	for position, series := range album.Series {
		chapter := Chapter{
			ID:    string(series.ID),
			Title: series.Name,
			Index: pointer.To(position + 1),
		}
		if sort := convert.ToIntPtr(string(series.Sort)); sort != nil {
			chapter.Index = sort
		}
		chapter.PageCount = convert.ToIntPtr(string(series.Pages))
		detail.Chapters = append(detail.Chapters, chapter)
	}

	if len(detail.Chapters) == 0 {
		detail.Chapters = []Chapter{{ID: detail.ID, Title: detail.Title, Index: pointer.To(1)}}
	}

	return detail, nil
}

func (c *apiClient) chapterImages(ctx context.Context, chapterID string) ([]Image, error) {
	var chapter apiChapter
	domain, err := c.call(ctx, "/api/v1/chapter/"+url.PathEscape(chapterID), nil, &chapter)
	if err != nil {
		return nil, err
	}

	images := make([]Image, 0, len(chapter.Images))
	for position, source := range chapter.Images {
		images = append(images, Image{
			ChapterID: chapterID,
			Index:     position + 1,
			URL:       c.absolute(domain, source),
		})
	}
	return images, nil
}

// absolute resolves a possibly relative reference against the serving domain.
func (c *apiClient) absolute(domain, ref string) string {
	return resolveURL(c.fetch.baseURL(domain), ref)
}

// resolveURL joins ref onto base. Blank refs stay blank.
func resolveURL(base, ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ""
	}

	baseURL, err := url.Parse(base + "/")
	if err != nil {
		return ref
	}
	refURL, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return baseURL.ResolveReference(refURL).String()
}
