// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package jm

import (
	"bytes"
	"context"
	"fmt"
	"iter"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/taibuivan/jmcomic-api/pkg/convert"
	"github.com/taibuivan/jmcomic-api/pkg/pointer"
)

var (
	reAlbumHref = regexp.MustCompile(`/album/(\d+)`)
	rePhotoHref = regexp.MustCompile(`/photo/(\d+)`)
)

// htmlClient scrapes the public web pages.
type htmlClient struct {
	fetch *fetcher
}

func (c *htmlClient) Kind() ClientKind { return KindHTML }

// page fetches path and parses it, returning the domain that served it.
func (c *htmlClient) page(ctx context.Context, path string, query map[string]string, check func(*goquery.Document) error) (*goquery.Document, string, error) {
	var (
		doc    *goquery.Document
		served string
	)

	err := c.fetch.get(ctx, path, query, func(body []byte, domain string) error {
		parsed, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
		if err != nil {
			return fmt.Errorf("jm: parse %s: %w", path, err)
		}
		if check != nil {
			if err := check(parsed); err != nil {
				return err
			}
		}
		doc, served = parsed, domain
		return nil
	})

	return doc, served, err
}

func (c *htmlClient) Search(ctx context.Context, keyword string) iter.Seq2[AlbumSummary, error] {
	return paginate(c.fetch.option.Client.SearchPages, func(page int) ([]AlbumSummary, bool, error) {
		doc, domain, err := c.page(ctx, "/search/photos", map[string]string{
			"search_query": keyword,
			"page":         strconv.Itoa(page),
		}, nil)
		if err != nil {
			return nil, false, err
		}

		base := c.fetch.baseURL(domain)
		var items []AlbumSummary

		doc.Find("div.album-item").Each(func(_ int, item *goquery.Selection) {
			href, _ := item.Find(`a[href*="/album/"]`).First().Attr("href")
			match := reAlbumHref.FindStringSubmatch(href)
			if match == nil {
				return
			}

			items = append(items, AlbumSummary{
				ID:          match[1],
				Title:       strings.TrimSpace(item.Find(".album-title").First().Text()),
				Authors:     texts(item.Find(".album-author a")),
				Tags:        texts(item.Find(".tags a.tag")),
				Description: pointer.NonZero(strings.TrimSpace(item.Find(".album-description").First().Text())),
				CoverURL:    pointer.NonZero(resolveURL(base, imageSource(item.Find("img").First()))),
				SourceSite:  pointer.To(domain),
			})
		})

		more := doc.Find(`.pagination a[rel="next"]`).Length() > 0
		return items, more, nil
	})
}

func (c *htmlClient) AlbumDetail(ctx context.Context, albumID string) (*AlbumDetail, error) {
	doc, domain, err := c.page(ctx, "/album/"+url.PathEscape(albumID), nil, requireSelector("h1#book-name"))
	if err != nil {
		return nil, err
	}

	detail := &AlbumDetail{
		ID:          albumID,
		Title:       strings.TrimSpace(doc.Find("h1#book-name").First().Text()),
		Authors:     texts(doc.Find(`span[itemprop="author"] a`)),
		Tags:        texts(doc.Find(`span[itemprop="genre"] a`)),
		Description: strings.TrimSpace(doc.Find("div.album-description").First().Text()),
		CoverURL:    pointer.NonZero(resolveURL(c.fetch.baseURL(domain), imageSource(doc.Find("div.album-cover img").First()))),
		SourceSite:  pointer.To(domain),
	}

	doc.Find(`div.episode a[href*="/photo/"]`).Each(func(_ int, link *goquery.Selection) {
		href, _ := link.Attr("href")
		match := rePhotoHref.FindStringSubmatch(href)
		if match == nil {
			return
		}

		chapter := Chapter{
			ID:    match[1],
			Title: strings.TrimSpace(link.Text()),
			Index: pointer.To(len(detail.Chapters) + 1),
		}
		if title, ok := link.Attr("data-title"); ok && strings.TrimSpace(title) != "" {
			chapter.Title = strings.TrimSpace(title)
		}
		if pages, ok := link.Attr("data-pages"); ok {
			chapter.PageCount = convert.ToIntPtr(pages)
		}
		detail.Chapters = append(detail.Chapters, chapter)
	})

	// A single-chapter album is its own chapter.
	if len(detail.Chapters) == 0 {
		detail.Chapters = []Chapter{{ID: albumID, Title: detail.Title, Index: pointer.To(1)}}
	}

	return detail, nil
}

func (c *htmlClient) chapterImages(ctx context.Context, chapterID string) ([]Image, error) {
	doc, domain, err := c.page(ctx, "/photo/"+url.PathEscape(chapterID), nil, nil)
	if err != nil {
		return nil, err
	}

	base := c.fetch.baseURL(domain)
	var images []Image

	doc.Find("div.scramble-page img").Each(func(_ int, img *goquery.Selection) {
		source := resolveURL(base, imageSource(img))
		if source == "" {
			return
		}
		images = append(images, Image{
			ChapterID: chapterID,
			Index:     len(images) + 1,
			URL:       source,
		})
	})

	if len(images) == 0 {
		return nil, fmt.Errorf("jm: chapter %s has no images", chapterID)
	}
	return images, nil
}

// requireSelector rejects pages that lack the element every valid page has,
// such as challenge pages served with status 200.
func requireSelector(selector string) func(*goquery.Document) error {
	return func(doc *goquery.Document) error {
		if doc.Find(selector).Length() == 0 {
			return fmt.Errorf("jm: page is missing %s", selector)
		}
		return nil
	}
}

// imageSource prefers the lazy-load attribute over src.
func imageSource(img *goquery.Selection) string {
	for _, key := range []string{"data-original", "data-src", "src"} {
		if value, ok := img.Attr(key); ok && strings.TrimSpace(value) != "" {
			return strings.TrimSpace(value)
		}
	}
	return ""
}

func texts(selection *goquery.Selection) []string {
	return selection.Map(func(_ int, item *goquery.Selection) string {
		return item.Text()
	})
}
