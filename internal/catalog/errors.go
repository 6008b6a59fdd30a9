// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
)

// ErrBlankID is returned by [Client.Detail] when no id is given. No request is made.
var ErrBlankID = errors.New("catalog: blank volume id")

// ErrorKind classifies a failed catalog request for logs and metrics.
type ErrorKind string

const (
	KindTimeout     ErrorKind = "timeout"
	KindCanceled    ErrorKind = "canceled"
	KindConnection  ErrorKind = "connection"
	KindRateLimited ErrorKind = "rate_limited"
	KindStatus      ErrorKind = "status"
	KindDecode      ErrorKind = "decode"
	KindUnknown     ErrorKind = "unknown"
)

// RequestError is a classified failure of one catalog call.
type RequestError struct {
	Kind       ErrorKind
	StatusCode int
	Err        error
}

func (e *RequestError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("catalog %s (status %d): %v", e.Kind, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("catalog %s: %v", e.Kind, e.Err)
}

func (e *RequestError) Unwrap() error { return e.Err }

// Retryable reports whether another attempt could succeed.
func (e *RequestError) Retryable() bool {
	switch e.Kind {
	case KindTimeout, KindConnection, KindRateLimited:
		return true
	case KindStatus:
		return e.StatusCode >= http.StatusInternalServerError
	default:
		return false
	}
}

// KindOf extracts the classification from err, or [KindUnknown].
func KindOf(err error) ErrorKind {
	var requestErr *RequestError
	if errors.As(err, &requestErr) {
		return requestErr.Kind
	}
	return KindUnknown
}

// classifyError maps a transport error or an unexpected status to a [RequestError].
func classifyError(err error, statusCode int) *RequestError {
	if err == nil && statusCode == 0 {
		return nil
	}

	if errors.Is(err, context.Canceled) {
		return &RequestError{Kind: KindCanceled, Err: err}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &RequestError{Kind: KindTimeout, Err: err}
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &RequestError{Kind: KindTimeout, Err: err}
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return &RequestError{Kind: KindConnection, Err: err}
	}

	if statusCode != 0 {
		wrapped := err
		if wrapped == nil {
			wrapped = fmt.Errorf("unexpected status code: %d", statusCode)
		}
		if statusCode == http.StatusTooManyRequests {
			return &RequestError{Kind: KindRateLimited, StatusCode: statusCode, Err: wrapped}
		}
		return &RequestError{Kind: KindStatus, StatusCode: statusCode, Err: wrapped}
	}

	// Any other transport failure (DNS, TLS, reset) is a connection problem.
	return &RequestError{Kind: KindConnection, Err: err}
}
