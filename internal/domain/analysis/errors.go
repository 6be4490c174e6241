package analysis

import (
	"errors"
	"fmt"
)

// ErrorKind tells why an analysis could not produce a Result.
type ErrorKind string

const (
	// NetworkError: the request could not be completed or returned non-2xx.
	NetworkError ErrorKind = "network_error"
	// BadResponse: the response could not be parsed into a Result.
	BadResponse ErrorKind = "bad_response"
)

// Error is returned by the upload flow. The holder is never touched when one
// of these is produced.
type Error struct {
	Kind ErrorKind
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the kind of an analysis error anywhere in err's chain.
func KindOf(err error) (ErrorKind, bool) {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind, true
	}
	return "", false
}

var (
	// ErrUnsupportedFormat is returned when no text can be extracted from a file type.
	ErrUnsupportedFormat = errors.New("unsupported document format")
	// ErrNoAnalysis means the session has no document analyzed yet.
	ErrNoAnalysis = errors.New("no document analyzed")
)
