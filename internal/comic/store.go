// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comic

import (
	"context"

	"github.com/taibuivan/jmcomic-api/internal/jm"
)

// DetailCache stores mapped album details between requests.
//
// # Architecture
//
// The cache is optional. The service works without one and treats every
// cache error as a miss, so an implementation never decides the outcome of
// a request.
type DetailCache interface {
	// Get returns the cached view, or ok=false on a miss.
	Get(ctx context.Context, kind jm.ClientKind, albumID string) (view *DetailView, ok bool, err error)

	// Set stores view for the configured TTL.
	Set(ctx context.Context, kind jm.ClientKind, albumID string, view *DetailView) error
}
