// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package jm

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Directory naming rules of downloaded albums and chapters.
const (
	DirRuleTitle = "title"
	DirRuleID    = "id"
)

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"

// ErrOptionMissing is returned by constructors that receive a nil [*Option].
var ErrOptionMissing = errors.New("jm: option not initialized")

// Option is the library configuration loaded from jm.yaml.
//
// An Option is immutable once returned by [LoadOption] or [DefaultOption]
// and may be shared by any number of clients.
type Option struct {
	Client      ClientOption   `yaml:"client"`
	DirRule     DirRule        `yaml:"dir_rule"`
	Download    DownloadOption `yaml:"download"`
	FilterWords []string       `yaml:"filter_words"`

	configPath string
	text       *Text
}

// ClientOption holds connection and retry settings toward the upstream source.
type ClientOption struct {
	// Impl is the retrieval variant used when a caller does not pick one.
	Impl ClientKind `yaml:"impl"`

	// Domains are tried in order; each gets RetryTimes attempts.
	Domains    []string      `yaml:"domains"`
	Scheme     string        `yaml:"scheme"`
	RetryTimes int           `yaml:"retry_times"`
	RetryDelay time.Duration `yaml:"retry_delay"`
	Timeout    time.Duration `yaml:"timeout"`
	Proxy      string        `yaml:"proxy"`
	UserAgent  string        `yaml:"user_agent"`

	// SearchPages caps how many result pages one search walks through.
	SearchPages int `yaml:"search_pages"`
}

// DirRule decides where downloads land.
type DirRule struct {
	BaseDir string `yaml:"base_dir"`
	Rule    string `yaml:"rule"`
}

// DownloadOption tunes the image client.
type DownloadOption struct {
	ImageWorkers      int        `yaml:"image_workers"`
	RequestsPerSecond float64    `yaml:"requests_per_second"`
	Client            ClientKind `yaml:"client"`
}

// Overrides are process-level settings applied on top of jm.yaml.
type Overrides struct {
	// Proxy replaces client.proxy when non-empty (JM_PROXY).
	Proxy string
}

// DefaultOption returns the built-in settings used when jm.yaml is absent.
func DefaultOption() *Option {
	option := &Option{
		Client: ClientOption{
			Impl:        KindHTML,
			Domains:     []string{"jmcomic1.me", "18comic.vip", "jmcomic.me"},
			Scheme:      "https",
			RetryTimes:  3,
			RetryDelay:  time.Second,
			Timeout:     15 * time.Second,
			UserAgent:   defaultUserAgent,
			SearchPages: 1,
		},
		DirRule: DirRule{
			BaseDir: "./downloads",
			Rule:    DirRuleTitle,
		},
		Download: DownloadOption{
			ImageWorkers:      4,
			RequestsPerSecond: 8,
			Client:            KindHTML,
		},
	}
	option.text = NewText(nil)
	return option
}

// LoadOption reads jm.yaml at path on top of [DefaultOption].
//
// A missing file is not an error: a warning is logged and defaults are used.
// Any other read, parse or validation failure is returned. On success the
// download base directory exists.
func LoadOption(path string, overrides Overrides, logger *slog.Logger) (*Option, error) {
	option := DefaultOption()

	content, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		logger.Warn("jm.yaml not found, using default jmcomic settings", slog.String("path", path))
	case err != nil:
		return nil, fmt.Errorf("jm: read option file: %w", err)
	default:
		if err := yaml.Unmarshal(content, option); err != nil {
			return nil, fmt.Errorf("jm: parse %s: %w", path, err)
		}
		option.configPath = path
	}

	if overrides.Proxy != "" {
		option.Client.Proxy = overrides.Proxy
	}

	if err := option.normalize(); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(option.DirRule.BaseDir, 0o755); err != nil {
		return nil, fmt.Errorf("jm: create base dir: %w", err)
	}

	return option, nil
}

// BaseDir is the absolute root under which downloads are written.
func (o *Option) BaseDir() string {
	return o.DirRule.BaseDir
}

// ConfigFilePath is the jm.yaml that was read, or "" when defaults are in use.
func (o *Option) ConfigFilePath() string {
	return o.configPath
}

// Text returns the normalizer configured with the option's filter words.
func (o *Option) Text() *Text {
	if o.text == nil {
		return NewText(o.FilterWords)
	}
	return o.text
}

// normalize fills zero values, resolves paths and rejects unusable settings.
func (o *Option) normalize() error {
	client := &o.Client

	client.Impl = ParseClientKind(string(client.Impl), KindHTML)
	if client.Impl == KindImage {
		return fmt.Errorf("jm: client.impl must be %q or %q", KindHTML, KindAPI)
	}

	domains := client.Domains[:0]
	for _, domain := range client.Domains {
		if domain = strings.TrimSpace(domain); domain != "" {
			domains = append(domains, domain)
		}
	}
	client.Domains = domains
	if len(client.Domains) == 0 {
		return errors.New("jm: client.domains must not be empty")
	}

	if client.Scheme != "http" && client.Scheme != "https" {
		return fmt.Errorf("jm: unsupported client.scheme %q", client.Scheme)
	}
	if client.RetryTimes < 1 {
		return errors.New("jm: client.retry_times must be at least 1")
	}
	if client.Timeout <= 0 {
		return errors.New("jm: client.timeout must be positive")
	}
	if client.SearchPages < 1 {
		return errors.New("jm: client.search_pages must be at least 1")
	}
	if client.UserAgent == "" {
		client.UserAgent = defaultUserAgent
	}
	if client.Proxy != "" {
		if _, err := url.Parse(client.Proxy); err != nil {
			return fmt.Errorf("jm: invalid client.proxy: %w", err)
		}
	}

	if o.DirRule.BaseDir == "" {
		return errors.New("jm: dir_rule.base_dir must not be empty")
	}
	baseDir, err := filepath.Abs(o.DirRule.BaseDir)
	if err != nil {
		return fmt.Errorf("jm: resolve base dir: %w", err)
	}
	o.DirRule.BaseDir = baseDir

	if o.DirRule.Rule == "" {
		o.DirRule.Rule = DirRuleTitle
	}
	if o.DirRule.Rule != DirRuleTitle && o.DirRule.Rule != DirRuleID {
		return fmt.Errorf("jm: unsupported dir_rule.rule %q", o.DirRule.Rule)
	}

	if o.Download.ImageWorkers < 1 {
		return errors.New("jm: download.image_workers must be at least 1")
	}
	if o.Download.RequestsPerSecond <= 0 {
		return errors.New("jm: download.requests_per_second must be positive")
	}
	o.Download.Client = ParseClientKind(string(o.Download.Client), KindHTML)
	if o.Download.Client == KindImage {
		o.Download.Client = KindHTML
	}

	o.text = NewText(o.FilterWords)
	return nil
}
