// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package convert provides fault-tolerant type conversions.

Records from the remote catalog and from stored favorites arrive as loosely
typed JSON, so numbers may show up as float64, json.Number, int or even a
numeric string. The helpers here collapse those shapes into Go integers and
report whether a usable value was found.

Do not use this package if distinguishing between malformed data and zero values
is important in your domain logic; use explicit standard libraries instead.
*/
package convert

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// ToIntD converts a string to an int, returning the provided default if parsing fails or string is empty.
func ToIntD(str string, def int) int {
	str = strings.TrimSpace(str)
	if str == "" {
		return def
	}

	if v, err := strconv.Atoi(str); err == nil {
		return v
	}

	return def
}

// AnyToInt extracts an integer from a decoded JSON value.
//
// Fractional numbers are rejected rather than truncated.
func AnyToInt(value any) (int, bool) {
	switch typed := value.(type) {
	case int:
		return typed, true
	case int32:
		return int(typed), true
	case int64:
		return int(typed), true
	case float64:
		if math.IsNaN(typed) || math.IsInf(typed, 0) || typed != math.Trunc(typed) {
			return 0, false
		}
		return int(typed), true
	case json.Number:
		n, err := typed.Int64()
		if err != nil {
			return 0, false
		}
		return int(n), true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(typed))
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

// AnyToKey renders an identifier: strings as-is, whole numbers in base 10.
// Anything else, including fractions, yields "".
func AnyToKey(value any) string {
	if s, ok := value.(string); ok {
		return s
	}
	if n, ok := AnyToInt(value); ok {
		return strconv.Itoa(n)
	}
	return ""
}

// AnyToString returns value when it is a string, otherwise "".
func AnyToString(value any) string {
	if s, ok := value.(string); ok {
		return s
	}
	return ""
}
