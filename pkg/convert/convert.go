// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package convert provides fault-tolerant string to number conversions.

Upstream payloads carry counts as loosely formatted strings (" 12", "", "n/a").
These helpers turn them into numbers without failing the whole response.

Do not use this package if distinguishing between malformed data and zero values
is important in your domain logic; use explicit standard libraries instead.
*/
package convert

import (
	"strconv"
	"strings"
)

// ToIntD converts a string to an int, returning def if parsing fails or the string is blank.
func ToIntD(str string, def int) int {
	if v, err := strconv.Atoi(strings.TrimSpace(str)); err == nil {
		return v
	}
	return def
}

// ToIntPtr converts a string to an int pointer, or nil when it is not a number.
func ToIntPtr(str string) *int {
	v, err := strconv.Atoi(strings.TrimSpace(str))
	if err != nil {
		return nil
	}
	return &v
}
