// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package validate provides a chainable Validator that collects input
// failures before returning a single [apperr.AppError].
//
// # Architecture
//
// Handlers validate raw HTTP input here before any client is constructed, so
// an invalid request never reaches the upstream source.
package validate

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/taibuivan/jmcomic-api/internal/platform/apperr"
)

// Validator collects validation failures via a fluent, chainable API.
//
// # Concurrency
//
// Validator is not safe for concurrent use. A new instance must be created
// for every request.
type Validator struct {
	errs []string
}

// Required fails with message if the trimmed value is empty.
func (v *Validator) Required(value, message string) *Validator {
	if strings.TrimSpace(value) == "" {
		v.errs = append(v.errs, message)
	}
	return v
}

// Custom adds message if the condition is true.
func (v *Validator) Custom(failed bool, message string) *Validator {
	if failed {
		v.errs = append(v.errs, message)
	}
	return v
}

// Err returns a VALIDATION_ERROR [apperr.AppError] if any rule failed, or nil.
//
// Messages of several failures are joined with "; ".
func (v *Validator) Err() error {
	if len(v.errs) == 0 {
		return nil
	}
	return apperr.Validation(strings.Join(v.errs, "; "))
}

// HasErrors reports whether any validation rule has failed so far.
func (v *Validator) HasErrors() bool {
	return len(v.errs) > 0
}

// StringList converts a decoded JSON value into a non-empty list of strings.
//
// Numbers are accepted and kept in their literal form, so [1, "2"] yields
// ["1", "2"]. Anything else (absent, not a list, empty list, nested values,
// blank strings) reports false.
func StringList(raw any) ([]string, bool) {
	items, ok := raw.([]any)
	if !ok || len(items) == 0 {
		return nil, false
	}

	values := make([]string, 0, len(items))
	for _, item := range items {
		switch typed := item.(type) {
		case string:
			if strings.TrimSpace(typed) == "" {
				return nil, false
			}
			values = append(values, strings.TrimSpace(typed))
		case json.Number:
			values = append(values, typed.String())
		case float64:
			values = append(values, strconv.FormatFloat(typed, 'f', -1, 64))
		default:
			return nil, false
		}
	}

	return values, true
}
