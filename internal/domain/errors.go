package domain

import (
	"errors"
	"fmt"
)

// ErrorKind enumerates the failure classes surfaced by a weather lookup.
type ErrorKind int

const (
	KindNetwork ErrorKind = iota + 1
	KindCityNotFound
	KindAPIKey
	KindRateLimitExceeded
	KindServer
	KindEmptyResponse
	KindLocation
)

func (k ErrorKind) String() string {
	switch k {
	case KindNetwork:
		return "network_error"
	case KindCityNotFound:
		return "city_not_found"
	case KindAPIKey:
		return "api_key_error"
	case KindRateLimitExceeded:
		return "rate_limit_exceeded"
	case KindServer:
		return "server_error"
	case KindEmptyResponse:
		return "empty_response"
	case KindLocation:
		return "location_error"
	default:
		return "unknown"
	}
}

// User-facing messages for kinds whose text does not depend on the failure.
const (
	MsgNetwork           = "Unable to reach the weather service. Check your connection and try again."
	MsgCityNotFound      = "City not found. Check the spelling and try again."
	MsgAPIKey            = "Weather service rejected the API key."
	MsgRateLimitExceeded = "Too many requests. Please wait a moment and try again."
	MsgEmptyResponse     = "Weather service returned no data."
	MsgLocation          = "Unable to determine current location."
)

// ClassifiedError is a lookup failure with a message intended for direct display.
// Cause is kept for errors.Is/As inspection and is never rendered by Error.
type ClassifiedError struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

func (e *ClassifiedError) Error() string { return e.Message }

func (e *ClassifiedError) Unwrap() error { return e.Cause }

// Is matches any ClassifiedError of the same kind, so the Err* sentinels
// below work with errors.Is.
func (e *ClassifiedError) Is(target error) bool {
	var t *ClassifiedError
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

// Sentinels for errors.Is comparisons.
var (
	ErrNetwork           = &ClassifiedError{Kind: KindNetwork, Message: MsgNetwork}
	ErrCityNotFound      = &ClassifiedError{Kind: KindCityNotFound, Message: MsgCityNotFound}
	ErrAPIKey            = &ClassifiedError{Kind: KindAPIKey, Message: MsgAPIKey}
	ErrRateLimitExceeded = &ClassifiedError{Kind: KindRateLimitExceeded, Message: MsgRateLimitExceeded}
	ErrServer            = &ClassifiedError{Kind: KindServer}
	ErrEmptyResponse     = &ClassifiedError{Kind: KindEmptyResponse, Message: MsgEmptyResponse}
	ErrLocation          = &ClassifiedError{Kind: KindLocation, Message: MsgLocation}
)

// NetworkError hides cause behind the fixed network message.
func NetworkError(cause error) *ClassifiedError {
	return &ClassifiedError{Kind: KindNetwork, Message: MsgNetwork, Cause: cause}
}

// ServerError reports an unexpected provider status.
func ServerError(status int) *ClassifiedError {
	return &ClassifiedError{
		Kind:    KindServer,
		Message: fmt.Sprintf("Weather service error (HTTP %d). Please try again later.", status),
	}
}

// LocationError passes a locator failure through with its own message.
func LocationError(cause error) *ClassifiedError {
	msg := MsgLocation
	if cause != nil && cause.Error() != "" {
		msg = cause.Error()
	}
	return &ClassifiedError{Kind: KindLocation, Message: msg, Cause: cause}
}

// ClassifyStatus maps a non-success provider status to its error kind.
func ClassifyStatus(status int) *ClassifiedError {
	switch status {
	case 404:
		return &ClassifiedError{Kind: KindCityNotFound, Message: MsgCityNotFound}
	case 401:
		return &ClassifiedError{Kind: KindAPIKey, Message: MsgAPIKey}
	case 429:
		return &ClassifiedError{Kind: KindRateLimitExceeded, Message: MsgRateLimitExceeded}
	default:
		return ServerError(status)
	}
}

// KindOf returns the classified kind of err, or 0 when err is not classified.
func KindOf(err error) ErrorKind {
	var ce *ClassifiedError
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return 0
}
