// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comic

import (
	"strconv"

	"github.com/taibuivan/jmcomic-api/internal/jm"
	"github.com/taibuivan/jmcomic-api/pkg/pointer"
	"github.com/taibuivan/jmcomic-api/pkg/slice"
)

// Placeholder for values the upstream source did not provide.
const notAvailable = "N/A"

// # Response Views

// SearchItem is one element of the GET /search data array.
type SearchItem struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Author      string  `json:"author"`
	Tags        string  `json:"tags"`
	Description string  `json:"description"`
	CoverURL    *string `json:"cover_url"`
	SourceSite  string  `json:"source_site"`
}

// DetailView is the data object of GET /comic/{album_id}.
type DetailView struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Author      string        `json:"author"`
	Tags        string        `json:"tags"`
	Description string        `json:"description"`
	CoverURL    *string       `json:"cover_url"`
	Chapters    []ChapterView `json:"chapters"`
	SourceSite  string        `json:"source_site"`
}

// ChapterView is one chapter of a [DetailView].
//
// Index is a string so that an unknown position can read "N/A".
type ChapterView struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Index     string `json:"index"`
	PageCount int    `json:"page_count"`
}

// # Mapping

// newSearchItem maps a summary through text normalization.
func newSearchItem(text *jm.Text, summary jm.AlbumSummary) SearchItem {
	description := notAvailable
	if summary.Description != nil {
		description = text.ParseText(*summary.Description)
	}

	return SearchItem{
		ID:          summary.ID,
		Title:       text.ParseText(summary.Title),
		Author:      text.JoinList(summary.Authors),
		Tags:        text.JoinList(summary.Tags),
		Description: description,
		CoverURL:    summary.CoverURL,
		SourceSite:  pointer.Fallback(summary.SourceSite, notAvailable),
	}
}

// newDetailView maps an album and its chapters through text normalization.
func newDetailView(text *jm.Text, detail *jm.AlbumDetail) *DetailView {
	chapters := slice.Map(detail.Chapters, func(chapter jm.Chapter) ChapterView {
		index := notAvailable
		if chapter.Index != nil {
			index = strconv.Itoa(*chapter.Index)
		}

		return ChapterView{
			ID:        chapter.ID,
			Title:     text.ParseText(chapter.Title),
			Index:     index,
			PageCount: pointer.Fallback(chapter.PageCount, 0),
		}
	})

	return &DetailView{
		ID:          detail.ID,
		Title:       text.ParseText(detail.Title),
		Author:      text.JoinList(detail.Authors),
		Tags:        text.JoinList(detail.Tags),
		Description: text.ParseText(detail.Description),
		CoverURL:    detail.CoverURL,
		Chapters:    chapters,
		SourceSite:  pointer.Fallback(detail.SourceSite, notAvailable),
	}
}
