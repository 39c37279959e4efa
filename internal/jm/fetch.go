// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package jm

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/avast/retry-go"
	"github.com/go-resty/resty/v2"
)

// ErrNotFound marks a resource the upstream source reports as missing.
var ErrNotFound = errors.New("not found")

// terminalError stops the domain failover: every other domain would answer
// the same way.
type terminalError struct {
	err error
}

func (e *terminalError) Error() string { return e.err.Error() }
func (e *terminalError) Unwrap() error { return e.err }

func terminal(err error) error {
	return &terminalError{err: err}
}

// fetcher performs upstream requests with per-domain retry and failover.
type fetcher struct {
	option *Option
	http   *resty.Client
	logger *slog.Logger
}

func newFetcher(option *Option, logger *slog.Logger) *fetcher {
	client := resty.New().
		SetTimeout(option.Client.Timeout).
		SetHeader("User-Agent", option.Client.UserAgent)

	if option.Client.Proxy != "" {
		client.SetProxy(option.Client.Proxy)
	}

	return &fetcher{option: option, http: client, logger: logger}
}

// baseURL is the scheme and host of one configured domain.
func (f *fetcher) baseURL(domain string) string {
	return f.option.Client.Scheme + "://" + domain
}

// retryOptions builds the per-domain retry policy from the option.
func (f *fetcher) retryOptions(ctx context.Context, target string) []retry.Option {
	return []retry.Option{
		retry.Context(ctx),
		retry.Attempts(uint(f.option.Client.RetryTimes)),
		retry.Delay(f.option.Client.RetryDelay),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(attempt uint, err error) {
			f.logger.DebugContext(ctx, "jm_retry",
				slog.String("target", target),
				slog.Uint64("attempt", uint64(attempt)+1),
				slog.Any("error", err),
			)
		}),
	}
}

// get requests path on every domain in order until accept succeeds.
//
// accept receives the body and the domain that served it. Errors from accept
// move on to the next domain unless they are terminal.
func (f *fetcher) get(ctx context.Context, path string, query map[string]string, accept func(body []byte, domain string) error) error {
	var lastErr error

	for _, domain := range f.option.Client.Domains {
		target := f.baseURL(domain) + path

		err := retry.Do(func() error {
			resp, err := f.http.R().
				SetContext(ctx).
				SetQueryParams(query).
				Get(target)
			if err != nil {
				return err
			}

			if err := checkStatus(resp.StatusCode(), target); err != nil {
				return err
			}

			if err := accept(resp.Body(), domain); err != nil {
				return retry.Unrecoverable(err)
			}
			return nil
		}, f.retryOptions(ctx, target)...)

		if err == nil {
			return nil
		}

		var term *terminalError
		if errors.As(err, &term) {
			return term.err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		f.logger.WarnContext(ctx, "jm_domain_failed", slog.String("domain", domain), slog.Any("error", err))
		lastErr = err
	}

	return fmt.Errorf("all domains unavailable | last error: %w", lastErr)
}

// download streams rawURL into dest through a temporary .part file.
func (f *fetcher) download(ctx context.Context, rawURL, dest string) error {
	return retry.Do(func() error {
		resp, err := f.http.R().
			SetContext(ctx).
			SetDoNotParseResponse(true).
			Get(rawURL)
		if err != nil {
			return err
		}

		body := resp.RawBody()
		defer body.Close()

		if err := checkStatus(resp.StatusCode(), rawURL); err != nil {
			return err
		}

		return writeFile(dest, body)
	}, f.retryOptions(ctx, rawURL)...)
}

func writeFile(dest string, body io.Reader) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return err
	}

	partial := dest + ".part"
	file, err := os.Create(partial)
	if err != nil {
		return err
	}

	if _, err := io.Copy(file, body); err != nil {
		file.Close()
		os.Remove(partial)
		return fmt.Errorf("write %s: %w", filepath.Base(dest), err)
	}
	if err := file.Close(); err != nil {
		os.Remove(partial)
		return err
	}

	return os.Rename(partial, dest)
}

// checkStatus classifies an upstream status code for the retry policy.
func checkStatus(statusCode int, target string) error {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return nil

	case statusCode == http.StatusNotFound:
		return retry.Unrecoverable(terminal(fmt.Errorf("%w: %s", ErrNotFound, target)))

	case statusCode == http.StatusTooManyRequests, statusCode >= 500:
		return fmt.Errorf("server error from %s: status code %d", target, statusCode)

	default:
		return retry.Unrecoverable(fmt.Errorf("unexpected response from %s: status code %d", target, statusCode))
	}
}
