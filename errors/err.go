package errors

import (
	"fmt"
)

var (
	ErrInvalidConfig  = fmt.Errorf("soar: invalid config")
	ErrInvalidRequest = fmt.Errorf("soar: invalid request")
	ErrTransport      = fmt.Errorf("soar: transport failure")
	ErrHTTPStatus     = fmt.Errorf("soar: unexpected http status")
	ErrDecode         = fmt.Errorf("soar: decode failure")
	ErrClosed         = fmt.Errorf("soar: closed")
)

// StatusError is returned when a remote service answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: %d", ErrHTTPStatus.Error(), e.StatusCode)
	}
	return fmt.Sprintf("%s: %d: %s", ErrHTTPStatus.Error(), e.StatusCode, e.Body)
}

func (e *StatusError) Unwrap() error {
	return ErrHTTPStatus
}

func HTTPStatus(statusCode int, body string) error {
	return WithStack(&StatusError{StatusCode: statusCode, Body: body})
}

func InvalidRequest(cause error, format string, args ...any) error {
	return wrapKind(ErrInvalidRequest, cause, format, args...)
}

func Transport(cause error, format string, args ...any) error {
	return wrapKind(ErrTransport, cause, format, args...)
}

func Decode(cause error, format string, args ...any) error {
	return wrapKind(ErrDecode, cause, format, args...)
}

// wrapKind keeps both the sentinel and the cause reachable through errors.Is.
func wrapKind(kind error, cause error, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	if cause == nil {
		return Wrapf(kind, "%s", msg)
	}
	return WithStack(fmt.Errorf("%w: %s: %w", kind, msg, cause))
}
