// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comic_test

import (
	"context"
	"io"
	"iter"
	"log/slog"
	"sync"

	"github.com/taibuivan/jmcomic-api/internal/comic"
	"github.com/taibuivan/jmcomic-api/internal/jm"
)

// stubClient is a scripted library client.
type stubClient struct {
	kind        jm.ClientKind
	summaries   []jm.AlbumSummary
	detail      *jm.AlbumDetail
	err         error
	downloadErr error

	mu          sync.Mutex
	downloads   [][]string
	detailCalls int
}

func (c *stubClient) Kind() jm.ClientKind { return c.kind }

func (c *stubClient) Search(_ context.Context, _ string) iter.Seq2[jm.AlbumSummary, error] {
	return func(yield func(jm.AlbumSummary, error) bool) {
		for _, summary := range c.summaries {
			if !yield(summary, nil) {
				return
			}
		}
		if c.err != nil {
			yield(jm.AlbumSummary{}, c.err)
		}
	}
}

func (c *stubClient) AlbumDetail(_ context.Context, _ string) (*jm.AlbumDetail, error) {
	c.mu.Lock()
	c.detailCalls++
	c.mu.Unlock()

	if c.err != nil {
		return nil, c.err
	}
	return c.detail, nil
}

func (c *stubClient) DownloadAlbum(_ context.Context, albumID string, chapterIDs []string) (*jm.DownloadReport, error) {
	c.mu.Lock()
	c.downloads = append(c.downloads, chapterIDs)
	c.mu.Unlock()

	report := &jm.DownloadReport{AlbumID: albumID}
	if c.downloadErr != nil {
		report.Chapters = []jm.ChapterDownload{{ID: chapterIDs[0]}}
		return report, c.downloadErr
	}
	for _, id := range chapterIDs {
		report.Chapters = append(report.Chapters, jm.ChapterDownload{ID: id})
	}
	return report, nil
}

// stubFactory hands out the same client and records what was asked for.
type stubFactory struct {
	client *stubClient

	mu         sync.Mutex
	kinds      []jm.ClientKind
	imageCalls int
}

func (f *stubFactory) Retrieval(_ *jm.Option, kind jm.ClientKind) (jm.RetrievalClient, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.kinds = append(f.kinds, kind)
	return f.client, nil
}

func (f *stubFactory) Image(_ *jm.Option) (jm.DownloadClient, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.imageCalls++
	return f.client, nil
}

func (f *stubFactory) retrievalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.kinds)
}

// memoryCache is an in-process [comic.DetailCache].
type memoryCache struct {
	mu     sync.Mutex
	views  map[string]*comic.DetailView
	getErr error
}

func newMemoryCache() *memoryCache {
	return &memoryCache{views: map[string]*comic.DetailView{}}
}

func (c *memoryCache) Get(_ context.Context, kind jm.ClientKind, albumID string) (*comic.DetailView, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	view, ok := c.views[string(kind)+":"+albumID]
	return view, ok, nil
}

func (c *memoryCache) Set(_ context.Context, kind jm.ClientKind, albumID string, view *comic.DetailView) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.views[string(kind)+":"+albumID] = view
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
