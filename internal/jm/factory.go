// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package jm

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Factory builds clients from a shared [Option].
type Factory struct {
	logger *slog.Logger
}

// NewFactory returns a factory logging through logger.
func NewFactory(logger *slog.Logger) *Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &Factory{logger: logger}
}

// Retrieval builds a client of the given kind. [KindImage] yields the
// download client, which also retrieves.
func (f *Factory) Retrieval(option *Option, kind ClientKind) (RetrievalClient, error) {
	if option == nil {
		return nil, ErrOptionMissing
	}

	switch kind {
	case KindImage:
		return f.Image(option)
	case KindAPI:
		return &apiClient{fetch: newFetcher(option, f.logger)}, nil
	default:
		return &htmlClient{fetch: newFetcher(option, f.logger)}, nil
	}
}

// Image builds the download client. Retrieval inside it uses download.client.
func (f *Factory) Image(option *Option) (DownloadClient, error) {
	if option == nil {
		return nil, ErrOptionMissing
	}

	fetch := newFetcher(option, f.logger)

	var source chapterSource = &htmlClient{fetch: fetch}
	if option.Download.Client == KindAPI {
		source = &apiClient{fetch: fetch}
	}

	return newImageClient(option, source, fetch, f.logger), nil
}

// DomainStatus is the reachability of one configured domain.
type DomainStatus struct {
	Domain  string
	OK      bool
	Error   string
	Latency time.Duration
}

// ProbeDomains requests the root page of every configured domain concurrently,
// once each and without retry. Results keep the configuration order.
func (f *Factory) ProbeDomains(ctx context.Context, option *Option) ([]DomainStatus, error) {
	if option == nil {
		return nil, ErrOptionMissing
	}

	fetch := newFetcher(option, f.logger)
	results := make([]DomainStatus, len(option.Client.Domains))

	var wg sync.WaitGroup
	for index, domain := range option.Client.Domains {
		wg.Add(1)
		go func() {
			defer wg.Done()

			started := time.Now()
			status := DomainStatus{Domain: domain}

			resp, err := fetch.http.R().SetContext(ctx).Get(fetch.baseURL(domain) + "/")
			status.Latency = time.Since(started)

			switch {
			case err != nil:
				status.Error = err.Error()
			case resp.StatusCode() >= 400:
				status.Error = resp.Status()
			default:
				status.OK = true
			}

			results[index] = status
		}()
	}
	wg.Wait()

	return results, nil
}
