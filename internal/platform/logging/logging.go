// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package logging builds the process-wide structured logger.
//
// Output is JSON on stdout. When a log file is configured the same stream is
// also written to a size-rotated file.
package logging

import (
	"io"
	"log/slog"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/taibuivan/jmcomic-api/internal/platform/constants"
)

// Rotation limits of the optional log file.
const (
	maxSizeMB  = 50
	maxBackups = 5
	maxAgeDays = 14
)

// Options selects level and destinations.
type Options struct {
	Debug   bool
	LogFile string
}

// New returns a JSON logger tagged with the application name, plus a closer
// for the rotating file (a no-op when no file is configured).
func New(options Options) (*slog.Logger, io.Closer) {
	return NewWithWriter(os.Stdout, options)
}

// NewWithWriter is [New] with an explicit primary writer.
func NewWithWriter(primary io.Writer, options Options) (*slog.Logger, io.Closer) {
	level := slog.LevelInfo
	if options.Debug {
		level = slog.LevelDebug
	}

	var closer io.Closer = nopCloser{}
	writer := primary

	if options.LogFile != "" {
		file := &lumberjack.Logger{
			Filename:   options.LogFile,
			MaxSize:    maxSizeMB,
			MaxBackups: maxBackups,
			MaxAge:     maxAgeDays,
			Compress:   true,
		}
		writer = io.MultiWriter(primary, file)
		closer = file
	}

	logger := slog.New(slog.NewJSONHandler(writer, &slog.HandlerOptions{Level: level}))
	return logger.With(slog.String("app", constants.AppName)), closer
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
