// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package slice compliments the standard [slices] package by providing functional
programming utilities (Map, Filter) leveraging generics.

These helpers always return a non-nil slice so that JSON encoders emit []
instead of null.
*/
package slice

// Map maps a slice of type T to a slice of type U using the provided transformation function.
func Map[T any, U any](input []T, transform func(T) U) []U {
	result := make([]U, len(input))
	for i, v := range input {
		result[i] = transform(v)
	}
	return result
}

// Filter returns only elements where the predicate evaluates to true.
func Filter[T any](input []T, predicate func(T) bool) []T {
	result := make([]T, 0, len(input))
	for _, v := range input {
		if predicate(v) {
			result = append(result, v)
		}
	}
	return result
}

// Take returns at most n leading elements. A non-positive n returns everything.
func Take[T any](input []T, n int) []T {
	if n <= 0 || n >= len(input) {
		return input
	}
	return input[:n]
}

// Window returns the elements for a 0-based offset and limit.
// A negative offset or non-positive limit yields an empty slice.
func Window[T any](input []T, offset, limit int) []T {
	if offset < 0 || limit <= 0 || offset >= len(input) {
		return []T{}
	}
	end := len(input)
	if limit < end-offset {
		end = offset + limit
	}
	return input[offset:end]
}
