package forecast

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies every terminal outcome the engine can produce.
type Kind int

const (
	KindOK Kind = iota
	KindInvalidHour
	KindInvalidLocation
	KindQuotaExhausted
	KindConnectionFailed
	KindTimeout
	KindRateLimited
	KindForbidden
	KindNotFound
	KindServerError
	KindServiceUnavailable
	KindUnknownHTTP
	KindIndexOutOfRange
	KindStorage
	KindMalformedPayload
)

func (k Kind) String() string {
	switch k {
	case KindOK:
		return "ok"
	case KindInvalidHour:
		return "invalid hour"
	case KindInvalidLocation:
		return "invalid location"
	case KindQuotaExhausted:
		return "quota exhausted"
	case KindConnectionFailed:
		return "connection failed"
	case KindTimeout:
		return "timeout"
	case KindRateLimited:
		return "rate limited"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not found"
	case KindServerError:
		return "server error"
	case KindServiceUnavailable:
		return "service unavailable"
	case KindUnknownHTTP:
		return "unknown http error"
	case KindIndexOutOfRange:
		return "index out of range"
	case KindStorage:
		return "storage error"
	case KindMalformedPayload:
		return "malformed payload"
	default:
		return "unknown"
	}
}

// Error is the domain error returned by every failing engine operation.
// Status is set only for kinds derived from an HTTP response.
type Error struct {
	Kind   Kind
	Status int
	Err    error
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Status != 0 {
		msg = fmt.Sprintf("%s (%d)", msg, e.Status)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Errf builds a domain error with a formatted cause.
func Errf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Err: fmt.Errorf(format, args...)}
}

// StorageErr wraps a persistence failure.
func StorageErr(err error) *Error {
	return &Error{Kind: KindStorage, Err: err}
}

// ClassifyStatus maps an HTTP status code to an error kind.
func ClassifyStatus(status int) Kind {
	switch {
	case status >= 200 && status < 300:
		return KindOK
	case status == http.StatusTooManyRequests:
		return KindRateLimited
	case status == http.StatusForbidden:
		return KindForbidden
	case status == http.StatusNotFound:
		return KindNotFound
	case status == http.StatusInternalServerError:
		return KindServerError
	case status == http.StatusServiceUnavailable:
		return KindServiceUnavailable
	default:
		return KindUnknownHTTP
	}
}

// StatusError builds a domain error for a non-2xx HTTP response.
func StatusError(status int) *Error {
	return &Error{Kind: ClassifyStatus(status), Status: status}
}

// ClassifyErr normalizes an arbitrary error into a domain error.
// Already-classified errors pass through untouched; context deadline
// expiry becomes Timeout; everything else is a transport-level failure.
func ClassifyErr(err error) *Error {
	var de *Error
	if errors.As(err, &de) {
		return de
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &Error{Kind: KindTimeout, Err: err}
	}
	return &Error{Kind: KindConnectionFailed, Err: err}
}

// KindOf extracts the kind from an error, KindConnectionFailed when the
// error carries no classification, KindOK for nil.
func KindOf(err error) Kind {
	if err == nil {
		return KindOK
	}
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindConnectionFailed
}
