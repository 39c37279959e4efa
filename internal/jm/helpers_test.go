// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package jm_test

import (
	"fmt"
	"io"
	"log/slog"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/taibuivan/jmcomic-api/internal/jm"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// domainOf strips the scheme of an httptest server URL.
func domainOf(server *httptest.Server) string {
	return strings.TrimPrefix(server.URL, "http://")
}

// optionSettings are the jm.yaml knobs tests vary.
type optionSettings struct {
	rule        string
	searchPages int
	extra       string
}

// testOption writes a jm.yaml pointing at the given domains and loads it.
// Directories are named by id.
func testOption(t *testing.T, extra string, domains ...string) *jm.Option {
	t.Helper()
	return testOptionWith(t, optionSettings{rule: "id", extra: extra}, domains...)
}

func testOptionWith(t *testing.T, settings optionSettings, domains ...string) *jm.Option {
	t.Helper()

	if settings.searchPages == 0 {
		settings.searchPages = 1
	}

	dir := t.TempDir()
	var builder strings.Builder
	builder.WriteString("client:\n  scheme: http\n  retry_times: 2\n  retry_delay: 1ms\n  timeout: 5s\n")
	fmt.Fprintf(&builder, "  search_pages: %d\n  domains:\n", settings.searchPages)
	for _, domain := range domains {
		fmt.Fprintf(&builder, "    - %q\n", domain)
	}
	fmt.Fprintf(&builder, "dir_rule:\n  base_dir: %q\n  rule: %s\n", filepath.Join(dir, "downloads"), settings.rule)
	builder.WriteString(settings.extra)

	path := filepath.Join(dir, "jm.yaml")
	require.NoError(t, os.WriteFile(path, []byte(builder.String()), 0o600))

	option, err := jm.LoadOption(path, jm.Overrides{}, discardLogger())
	require.NoError(t, err)
	return option
}
