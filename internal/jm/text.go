// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package jm

import (
	"html"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/taibuivan/jmcomic-api/pkg/slice"
)

// filterMask replaces every filtered word.
const filterMask = "***"

// Text normalizes human-readable strings coming from the upstream source.
//
// # Transformation Pipeline
//
// 1. Unescapes HTML entities (&amp; → &).
// 2. Normalizes to NFKC (full-width letters and digits fold to ASCII).
// 3. Collapses whitespace runs and trims.
// 4. Masks filter words.
type Text struct {
	filterWords []string
}

// NewText returns a normalizer masking the given words. Blank words are ignored.
func NewText(filterWords []string) *Text {
	words := make([]string, 0, len(filterWords))
	for _, word := range filterWords {
		if word = strings.TrimSpace(word); word != "" {
			words = append(words, norm.NFKC.String(word))
		}
	}
	return &Text{filterWords: words}
}

// ParseText normalizes a single value.
func (t *Text) ParseText(value string) string {
	value = html.UnescapeString(value)
	value = norm.NFKC.String(value)
	value = strings.Join(strings.Fields(value), " ")

	for _, word := range t.filterWords {
		value = strings.ReplaceAll(value, word, filterMask)
	}
	return value
}

// ParseList normalizes every element, dropping empty ones and duplicates
// while keeping the original order.
func (t *Text) ParseList(values []string) []string {
	parsed := slice.Map(values, t.ParseText)
	return slice.Unique(slice.Filter(parsed, func(value string) bool { return value != "" }))
}

// JoinList is ParseList joined with ", ".
func (t *Text) JoinList(values []string) string {
	return strings.Join(t.ParseList(values), ", ")
}
