// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package jm is the client library for the JM comic source.

It owns everything the HTTP API delegates: the library [Option] loaded from
jm.yaml, the three client variants, and text normalization.

Client Variants:

  - html: scrapes the public web pages (default).
  - api: talks to the JSON endpoints under /api/v1.
  - image: a download client built on top of one retrieval variant.

Clients are cheap. Build one per request from the shared [Option] with a
[Factory] and drop it afterwards; nothing is shared between clients except
the read-only option.
*/
package jm

import (
	"context"
	"iter"
	"strings"
)

// # Client Kinds

// ClientKind selects a client variant.
type ClientKind string

const (
	KindHTML  ClientKind = "html"
	KindAPI   ClientKind = "api"
	KindImage ClientKind = "image"
)

// ParseClientKind maps a caller supplied mode string to a [ClientKind].
//
// An empty value yields fallback. Unknown values yield [KindHTML].
func ParseClientKind(value string, fallback ClientKind) ClientKind {
	switch ClientKind(strings.ToLower(strings.TrimSpace(value))) {
	case "":
		return fallback
	case KindAPI:
		return KindAPI
	case KindImage:
		return KindImage
	default:
		return KindHTML
	}
}

// # Result Objects

// AlbumSummary is one search hit. Pointer fields are optional: nil means the
// source did not provide the value.
type AlbumSummary struct {
	ID          string
	Title       string
	Authors     []string
	Tags        []string
	Description *string
	CoverURL    *string
	SourceSite  *string
}

// AlbumDetail is a full album with its chapter list.
type AlbumDetail struct {
	ID          string
	Title       string
	Authors     []string
	Tags        []string
	Description string
	CoverURL    *string
	SourceSite  *string
	Chapters    []Chapter
}

// Chapter is one episode of an album.
type Chapter struct {
	ID        string
	Title     string
	Index     *int
	PageCount *int
}

// Image is one page of a chapter.
type Image struct {
	ChapterID string
	Index     int
	URL       string
}

// DownloadReport describes what a download call wrote to disk.
//
// On failure the report still lists the chapters completed before the error.
type DownloadReport struct {
	AlbumID   string
	Directory string
	Chapters  []ChapterDownload
}

// ChapterDownload is the outcome of one fully downloaded chapter.
type ChapterDownload struct {
	ID        string
	Directory string
	Images    int
	Skipped   int
}

// CompletedIDs lists the chapter ids that finished.
func (r *DownloadReport) CompletedIDs() []string {
	if r == nil {
		return nil
	}
	ids := make([]string, 0, len(r.Chapters))
	for _, chapter := range r.Chapters {
		ids = append(ids, chapter.ID)
	}
	return ids
}

// # Client Contracts

// RetrievalClient reads albums from the upstream source.
type RetrievalClient interface {
	// Kind reports the variant of the client.
	Kind() ClientKind

	// Search lazily walks the result pages for keyword. The sequence stops at
	// the first error, which is yielded with a zero summary.
	Search(ctx context.Context, keyword string) iter.Seq2[AlbumSummary, error]

	// AlbumDetail fetches one album with its chapters.
	AlbumDetail(ctx context.Context, albumID string) (*AlbumDetail, error)
}

// DownloadClient is the image client. DownloadAlbum blocks until every
// requested chapter is on disk or one of them failed.
type DownloadClient interface {
	RetrievalClient
	DownloadAlbum(ctx context.Context, albumID string, chapterIDs []string) (*DownloadReport, error)
}

// chapterSource resolves the page images of a chapter.
type chapterSource interface {
	RetrievalClient
	chapterImages(ctx context.Context, chapterID string) ([]Image, error)
}

// Collect materializes a lazy sequence, stopping at the first error.
func Collect[T any](seq iter.Seq2[T, error]) ([]T, error) {
	var items []T
	for item, err := range seq {
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// pageFunc fetches one result page; more reports whether another page exists.
type pageFunc func(page int) (items []AlbumSummary, more bool, err error)

// paginate turns a page fetcher into a lazy sequence capped at maxPages.
func paginate(maxPages int, fetch pageFunc) iter.Seq2[AlbumSummary, error] {
	return func(yield func(AlbumSummary, error) bool) {
		for page := 1; page <= maxPages; page++ {
			items, more, err := fetch(page)
			if err != nil {
				yield(AlbumSummary{}, err)
				return
			}

			for _, item := range items {
				if !yield(item, nil) {
					return
				}
			}

			if len(items) == 0 || !more {
				return
			}
		}
	}
}
