// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package cli implements jmctl, a command-line front-end of the jmcomic API.

Commands:

	jmctl search <keyword...>
	jmctl detail <album>
	jmctl download <album> <chapter...>
	jmctl <album> <chapter...>        shortcut for download
	jmctl health
*/
package cli

import (
	"context"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/spf13/cobra"

	"github.com/taibuivan/jmcomic-api/internal/platform/constants"
	"github.com/taibuivan/jmcomic-api/pkg/jmclient"
)

var reAlbumID = regexp.MustCompile(`^(jm)?\d+$`)

// IsAlbumID reports whether s looks like an album id (12345 or JM12345).
func IsAlbumID(s string) bool {
	return reAlbumID.MatchString(strings.ToLower(s))
}

// app carries what every command needs.
type app struct {
	cfg    Config
	client *jmclient.Client
	out    io.Writer
}

// NewRootCommand builds the jmctl command tree writing to out.
func NewRootCommand(cfg Config, out io.Writer) *cobra.Command {
	a := &app{cfg: cfg, out: out}

	root := &cobra.Command{
		Use:           "jmctl",
		Short:         "Search, inspect and download JM albums through the jmcomic API",
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			a.client = jmclient.New(jmclient.Config{
				BaseURL:    a.cfg.BaseURL,
				ClientType: a.cfg.ClientType,
				Timeout:    a.cfg.Timeout,
			})
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) >= 2 && IsAlbumID(args[0]) {
				return a.download(cmd.Context(), args[0], args[1:])
			}
			if len(args) > 0 {
				return fmt.Errorf("unknown command %q, run 'jmctl help'", args[0])
			}
			return cmd.Help()
		},
	}

	root.SetOut(out)
	root.PersistentFlags().StringVar(&a.cfg.BaseURL, "base-url", cfg.BaseURL, "API server base URL")
	root.PersistentFlags().StringVar(&a.cfg.ClientType, "client-type", cfg.ClientType, "retrieval client: html or api")

	root.AddCommand(
		&cobra.Command{
			Use:   "search <keyword...>",
			Short: "Search albums",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.search(cmd.Context(), strings.Join(args, " "))
			},
		},
		&cobra.Command{
			Use:   "detail <album>",
			Short: "Show an album and its chapters",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.detail(cmd.Context(), args[0])
			},
		},
		&cobra.Command{
			Use:   "download <album> <chapter...>",
			Short: "Download chapters on the API server",
			Args:  cobra.MinimumNArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.download(cmd.Context(), args[0], args[1:])
			},
		},
		&cobra.Command{
			Use:   "health",
			Short: "Check that the API server is up and configured",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return a.health(cmd.Context())
			},
		},
		&cobra.Command{
			Use:   "version",
			Short: "Show the jmctl version",
			Run: func(cmd *cobra.Command, _ []string) {
				fmt.Fprintln(a.out, "jmctl version:", constants.AppVersion)
			},
		},
	)

	return root
}

func (a *app) search(ctx context.Context, keyword string) error {
	ctx, cancel := context.WithTimeout(ctx, a.cfg.Timeout)
	defer cancel()

	items, err := a.client.Search(ctx, keyword)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if len(items) == 0 {
		fmt.Fprintf(a.out, "No albums found for %q.\n", keyword)
		return nil
	}

	fmt.Fprintf(a.out, "Found %d results:\n", len(items))
	for i, item := range items {
		if i >= a.cfg.MaxSearchResults {
			fmt.Fprintf(a.out, "... %d results in total.\n", len(items))
			break
		}
		fmt.Fprintf(a.out, "%d. %s (ID: %s)\n   Author: %s\n", i+1, item.Title, item.ID, item.Author)
	}
	fmt.Fprintln(a.out, "\nUse 'jmctl detail <album>' to list chapters.")
	return nil
}

func (a *app) detail(ctx context.Context, albumID string) error {
	ctx, cancel := context.WithTimeout(ctx, a.cfg.Timeout)
	defer cancel()

	detail, err := a.client.Detail(ctx, albumID)
	if err != nil {
		return fmt.Errorf("detail failed: %w", err)
	}

	fmt.Fprintf(a.out, "Album: %s (ID: %s)\nAuthor: %s\nTags: %s\n", detail.Title, detail.ID, detail.Author, detail.Tags)
	fmt.Fprintf(a.out, "Description: %s\n", truncate(detail.Description, 200))

	fmt.Fprintln(a.out, "\nChapters:")
	for i, chapter := range detail.Chapters {
		if i >= a.cfg.MaxChapters {
			fmt.Fprintf(a.out, "... %d chapters in total.\n", len(detail.Chapters))
			break
		}
		fmt.Fprintf(a.out, "%d. %s (chapter ID: %s, pages: %d)\n", i+1, chapter.Title, chapter.ID, chapter.PageCount)
	}
	fmt.Fprintf(a.out, "\nUse 'jmctl download %s <chapter...>' or 'jmctl %s <chapter...>' to download.\n", albumID, albumID)
	return nil
}

func (a *app) download(ctx context.Context, albumID string, chapterIDs []string) error {
	ctx, cancel := context.WithTimeout(ctx, DownloadTimeout(a.cfg.Timeout, len(chapterIDs)))
	defer cancel()

	fmt.Fprintf(a.out, "Downloading album %s chapters %s ...\n", albumID, strings.Join(chapterIDs, ", "))

	result, err := a.client.Download(ctx, albumID, chapterIDs)
	if err != nil {
		return fmt.Errorf("download failed: %w", err)
	}

	fmt.Fprintln(a.out, result.Message)
	if result.DownloadPathHint != "" {
		fmt.Fprintln(a.out, result.DownloadPathHint)
	}
	fmt.Fprintln(a.out, "Files stay on the API server.")
	return nil
}

func (a *app) health(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, a.cfg.Timeout)
	defer cancel()

	if err := a.client.Health(ctx); err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	fmt.Fprintln(a.out, "API service is running")
	return nil
}

// truncate cuts s to limit runes.
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
