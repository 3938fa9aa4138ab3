package repository

import (
	"errors"
	"fmt"
)

// Failure classes of a directory fetch
var (
	// ErrNetwork indicates the request failed or the response status was not 2xx
	ErrNetwork = errors.New("network error")

	// ErrDecode indicates the response body did not match the expected document
	ErrDecode = errors.New("decode error")
)

// NetworkError is returned when the request could not be completed:
// transport failure, timeout, cancellation, oversize body or non-2xx status.
type NetworkError struct {
	URL        string
	StatusCode int // 0 when no response was received
	Err        error
}

func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("network error: GET %s: status %d: %v", e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("network error: GET %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error        { return e.Err }
func (e *NetworkError) Is(target error) bool { return target == ErrNetwork }

// DecodeError is returned when the body is not valid JSON or does not match
// the directory document. Field is the offending path when known,
// e.g. "relays[2].fingerprint".
type DecodeError struct {
	Field string
	Err   error
}

func (e *DecodeError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("decode error at %s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("decode error: %v", e.Err)
}

func (e *DecodeError) Unwrap() error        { return e.Err }
func (e *DecodeError) Is(target error) bool { return target == ErrDecode }

// IsNetwork checks if an error is a network failure
func IsNetwork(err error) bool {
	return errors.Is(err, ErrNetwork)
}

// IsDecode checks if an error is a decode failure
func IsDecode(err error) bool {
	return errors.Is(err, ErrDecode)
}
