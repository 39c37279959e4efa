// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comic

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/taibuivan/jmcomic-api/internal/jm"
	"github.com/taibuivan/jmcomic-api/internal/platform/apperr"
	"github.com/taibuivan/jmcomic-api/internal/platform/ctxutil"
	"github.com/taibuivan/jmcomic-api/internal/platform/validate"
	"github.com/taibuivan/jmcomic-api/pkg/slice"
)

// Validation messages returned to API callers.
const (
	msgMissingKeyword    = "Missing 'keyword' parameter"
	msgMissingAlbumID    = "Missing 'album_id' in path"
	msgInvalidChapterIDs = "Missing or invalid 'chapter_ids' (must be a list of strings)"
)

// ErrOptionNotInitialized is returned by every operation when jm.yaml failed to load.
var ErrOptionNotInitialized = apperr.UpstreamUnavailable("JMComic global option not initialized. Check jm.yaml.")

// ClientFactory builds per-request clients from the shared option.
//
// [jm.Factory] is the production implementation.
type ClientFactory interface {
	Retrieval(option *jm.Option, kind jm.ClientKind) (jm.RetrievalClient, error)
	Image(option *jm.Option) (jm.DownloadClient, error)
}

// DownloadResult is what POST /download reports back.
type DownloadResult struct {
	Message          string
	DownloadPathHint string
}

// # Service Layer

// Service translates API operations into library calls.
//
// # Concurrency
//
// Service is safe for concurrent use: the option is read-only and every call
// builds its own client.
type Service struct {
	option  *jm.Option
	factory ClientFactory
	cache   DetailCache
	logger  *slog.Logger
}

// NewService constructs a [Service].
//
// A nil option is allowed and makes every operation fail with
// [ErrOptionNotInitialized]. A nil cache disables detail caching.
func NewService(option *jm.Option, factory ClientFactory, cache DetailCache, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{option: option, factory: factory, cache: cache, logger: logger}
}

// Ready reports whether the option was loaded at startup.
func (service *Service) Ready() bool {
	return service.option != nil
}

/*
Search runs a keyword search and materializes every result.

Parameters:
  - ctx: context.Context
  - keyword: string (required)
  - clientType: string (html, api or image; empty uses client.impl)

Returns:
  - []SearchItem: Normalized results, never nil
  - error: Validation, ErrOptionNotInitialized or the raw library error
*/
func (service *Service) Search(ctx context.Context, keyword, clientType string) ([]SearchItem, error) {
	validator := &validate.Validator{}
	validator.Required(keyword, msgMissingKeyword)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	client, kind, err := service.retrieval(clientType)
	if err != nil {
		return nil, err
	}

	logger := ctxutil.GetLogger(ctx)
	logger.InfoContext(ctx, "comic_search", slog.String("keyword", keyword), slog.String("client", string(kind)))

	summaries, err := jm.Collect(client.Search(ctx, keyword))
	if err != nil {
		return nil, err
	}

	text := service.option.Text()
	items := slice.Map(summaries, func(summary jm.AlbumSummary) SearchItem {
		return newSearchItem(text, summary)
	})

	logger.InfoContext(ctx, "comic_search_done", slog.String("keyword", keyword), slog.Int("results", len(items)))
	return items, nil
}

/*
Detail fetches one album with its chapter list.

Description: When a cache is configured, a hit skips the upstream call and a
fresh result is stored. Cache failures are logged and otherwise ignored.
*/
func (service *Service) Detail(ctx context.Context, albumID, clientType string) (*DetailView, error) {
	validator := &validate.Validator{}
	validator.Required(albumID, msgMissingAlbumID)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	kind, err := service.kind(clientType)
	if err != nil {
		return nil, err
	}

	logger := ctxutil.GetLogger(ctx)

	if service.cache != nil {
		view, ok, err := service.cache.Get(ctx, kind, albumID)
		if err != nil {
			logger.WarnContext(ctx, "detail_cache_get_failed", slog.String("album_id", albumID), slog.Any("error", err))
		}
		if ok {
			logger.DebugContext(ctx, "detail_cache_hit", slog.String("album_id", albumID))
			return view, nil
		}
	}

	logger.InfoContext(ctx, "comic_detail", slog.String("album_id", albumID), slog.String("client", string(kind)))

	client, err := service.factory.Retrieval(service.option, kind)
	if err != nil {
		return nil, err
	}

	detail, err := client.AlbumDetail(ctx, albumID)
	if err != nil {
		return nil, err
	}

	view := newDetailView(service.option.Text(), detail)

	if service.cache != nil {
		if err := service.cache.Set(ctx, kind, albumID, view); err != nil {
			logger.WarnContext(ctx, "detail_cache_set_failed", slog.String("album_id", albumID), slog.Any("error", err))
		}
	}

	return view, nil
}

/*
Download writes the requested chapters to disk and blocks until done.

Description: Always uses the image client. A failure part way through is
reported as a failure of the whole call; the chapters that did complete are
logged.

Parameters:
  - ctx: context.Context
  - albumID: string
  - chapterIDs: []string (already validated by the handler)
*/
func (service *Service) Download(ctx context.Context, albumID string, chapterIDs []string) (*DownloadResult, error) {
	validator := &validate.Validator{}
	validator.
		Required(albumID, msgMissingAlbumID).
		Custom(len(chapterIDs) == 0, msgInvalidChapterIDs)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if service.option == nil {
		return nil, ErrOptionNotInitialized
	}

	client, err := service.factory.Image(service.option)
	if err != nil {
		return nil, err
	}

	logger := ctxutil.GetLogger(ctx)
	logger.InfoContext(ctx, "comic_download", slog.String("album_id", albumID), slog.Any("chapter_ids", chapterIDs))

	report, err := client.DownloadAlbum(ctx, albumID, chapterIDs)
	if err != nil {
		logger.ErrorContext(ctx, "comic_download_failed",
			slog.String("album_id", albumID),
			slog.Any("completed", report.CompletedIDs()),
			slog.Any("error", err),
		)
		return nil, err
	}

	logger.InfoContext(ctx, "comic_download_done",
		slog.String("album_id", albumID),
		slog.Any("completed", report.CompletedIDs()),
	)

	return &DownloadResult{
		Message:          fmt.Sprintf("Album %s chapters [%s] downloaded.", albumID, strings.Join(chapterIDs, ", ")),
		DownloadPathHint: "Check API server's configured download directory: " + service.option.BaseDir(),
	}, nil
}

// kind resolves the requested client variant against client.impl.
func (service *Service) kind(clientType string) (jm.ClientKind, error) {
	if service.option == nil {
		return "", ErrOptionNotInitialized
	}
	return jm.ParseClientKind(clientType, service.option.Client.Impl), nil
}

// retrieval resolves the client kind and builds the client.
func (service *Service) retrieval(clientType string) (jm.RetrievalClient, jm.ClientKind, error) {
	kind, err := service.kind(clientType)
	if err != nil {
		return nil, "", err
	}

	client, err := service.factory.Retrieval(service.option, kind)
	if err != nil {
		return nil, kind, err
	}
	return client, kind, nil
}
