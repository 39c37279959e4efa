// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package jm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/taibuivan/jmcomic-api/pkg/slice"
)

var reUnsafeName = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)

var imageExtensions = map[string]struct{}{
	".jpg": {}, ".jpeg": {}, ".png": {}, ".gif": {}, ".webp": {},
}

// imageClient downloads albums on top of a retrieval variant.
type imageClient struct {
	chapterSource

	option  *Option
	fetch   *fetcher
	limiter *rate.Limiter
	logger  *slog.Logger
}

func newImageClient(option *Option, source chapterSource, fetch *fetcher, logger *slog.Logger) *imageClient {
	return &imageClient{
		chapterSource: source,
		option:        option,
		fetch:         fetch,
		limiter:       rate.NewLimiter(rate.Limit(option.Download.RequestsPerSecond), option.Download.ImageWorkers),
		logger:        logger,
	}
}

func (c *imageClient) Kind() ClientKind { return KindImage }

// DownloadAlbum writes the requested chapters under the option's base directory.
//
// Chapters are processed one after another in request order. An empty
// chapterIDs downloads every chapter of the album.
func (c *imageClient) DownloadAlbum(ctx context.Context, albumID string, chapterIDs []string) (*DownloadReport, error) {
	detail, err := c.AlbumDetail(ctx, albumID)
	if err != nil {
		return nil, err
	}

	chapters, err := selectChapters(detail, chapterIDs)
	if err != nil {
		return nil, err
	}

	albumDir, err := c.childDir(c.option.BaseDir(), detail.ID, detail.Title)
	if err != nil {
		return nil, err
	}

	report := &DownloadReport{AlbumID: detail.ID, Directory: albumDir}

	for _, chapter := range chapters {
		result, err := c.downloadChapter(ctx, report.Directory, chapter)
		if err != nil {
			return report, err
		}
		report.Chapters = append(report.Chapters, *result)

		c.logger.InfoContext(ctx, "jm_chapter_downloaded",
			slog.String("album_id", detail.ID),
			slog.String("chapter_id", chapter.ID),
			slog.Int("images", result.Images),
			slog.Int("skipped", result.Skipped),
		)
	}

	return report, nil
}

func (c *imageClient) downloadChapter(ctx context.Context, albumDir string, chapter Chapter) (*ChapterDownload, error) {
	images, err := c.chapterImages(ctx, chapter.ID)
	if err != nil {
		return nil, fmt.Errorf("chapter %s: %w", chapter.ID, err)
	}

	dir, err := c.childDir(albumDir, chapter.ID, chapter.Title)
	if err != nil {
		return nil, fmt.Errorf("chapter %s: %w", chapter.ID, err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	var skipped atomic.Int64
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(c.option.Download.ImageWorkers)

	for _, image := range images {
		dest := filepath.Join(dir, fmt.Sprintf("%05d%s", image.Index, imageExtension(image.URL)))

		group.Go(func() error {
			if _, err := os.Stat(dest); err == nil {
				skipped.Add(1)
				return nil
			} else if !errors.Is(err, os.ErrNotExist) {
				return err
			}

			if err := c.limiter.Wait(groupCtx); err != nil {
				return err
			}
			return c.fetch.download(groupCtx, image.URL, dest)
		})
	}

	if err := group.Wait(); err != nil {
		return nil, fmt.Errorf("chapter %s: %w", chapter.ID, err)
	}

	return &ChapterDownload{
		ID:        chapter.ID,
		Directory: dir,
		Images:    len(images),
		Skipped:   int(skipped.Load()),
	}, nil
}

// childDir names the directory of an album or chapter under parent.
//
// dir_rule.rule picks the title or the id; an unusable title falls back to
// the id. Both come from the upstream source and are sanitized, and the
// result must stay inside parent.
func (c *imageClient) childDir(parent, id, title string) (string, error) {
	name := ""
	if c.option.DirRule.Rule == DirRuleTitle {
		name = sanitizeName(c.option.Text().ParseText(title))
	}
	if name == "" {
		name = sanitizeName(id)
	}
	if name == "" {
		return "", fmt.Errorf("jm: no usable directory name for id %q", id)
	}

	dir := filepath.Join(parent, name)
	rel, err := filepath.Rel(parent, dir)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("jm: directory %q escapes %s", name, parent)
	}
	return dir, nil
}

// selectChapters returns the requested chapters in request order, without duplicates.
func selectChapters(detail *AlbumDetail, chapterIDs []string) ([]Chapter, error) {
	if len(chapterIDs) == 0 {
		return detail.Chapters, nil
	}

	byID := make(map[string]Chapter, len(detail.Chapters))
	for _, chapter := range detail.Chapters {
		byID[chapter.ID] = chapter
	}

	selected := make([]Chapter, 0, len(chapterIDs))
	for _, id := range slice.Unique(chapterIDs) {
		chapter, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("chapter %s not found in album %s", id, detail.ID)
		}
		selected = append(selected, chapter)
	}
	return selected, nil
}

// sanitizeName makes name a single path element. Names made only of dots
// and spaces come back empty.
func sanitizeName(name string) string {
	name = reUnsafeName.ReplaceAllString(strings.TrimSpace(name), "_")
	return strings.Trim(name, " .")
}

func imageExtension(rawURL string) string {
	clean := rawURL
	if index := strings.IndexAny(clean, "?#"); index >= 0 {
		clean = clean[:index]
	}

	ext := strings.ToLower(path.Ext(clean))
	if _, ok := imageExtensions[ext]; ok {
		return ext
	}
	return ".jpg"
}
