package segmind

import (
	"errors"
	"fmt"
)

// ConfigurationError reports a client that cannot be constructed, typically a
// missing API key. It is never retried.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "segmind: " + e.Reason
}

// ValidationError reports malformed caller input, raised before any network
// activity.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "segmind: " + e.Reason
}

// TransportError wraps a network-layer failure (connection refused, timeout,
// DNS). Retryable under the same policy as rate limiting.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return "segmind: request failed: " + e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// APIError is a non-2xx response from the service. The message carries the
// status code and the server-supplied `error` detail when present.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// RateLimitError is the retryable 429 subtype of APIError.
type RateLimitError struct {
	APIError
}

func (e *RateLimitError) Unwrap() error {
	return &e.APIError
}

// DecodeError reports a response body that does not match its declared
// content type.
type DecodeError struct {
	ContentType string
	Err         error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("segmind: decoding %q response: %v", e.ContentType, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// NotFoundError reports a referenced local image file that does not exist.
type NotFoundError struct {
	Path string
	Err  error
}

func (e *NotFoundError) Error() string {
	return "segmind: image file not found: " + e.Path
}

func (e *NotFoundError) Unwrap() error {
	return e.Err
}

func apiErrorMessage(status int, detail string) string {
	msg := fmt.Sprintf("API request failed with status code %d", status)
	if detail != "" {
		msg += ": " + detail
	}
	return msg
}

func retryableError(err error) bool {
	var rle *RateLimitError
	if errors.As(err, &rle) {
		return true
	}
	var te *TransportError
	return errors.As(err, &te)
}
