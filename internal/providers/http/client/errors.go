package client

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrInvalidMethod is returned for a method outside the supported verb set
	ErrInvalidMethod = errors.New("invalid http method")
	// ErrInvalidFileParam is returned when the reserved "file" parameter does
	// not carry a FilePart
	ErrInvalidFileParam = errors.New(`parameter "file" must be a FilePart`)
)

// RemoteError is returned for every response with status >= 400.
type RemoteError struct {
	Message string
	Code    int
	// Type is the service's error type identifier, when the body carries one
	Type string
	Body []byte
}

func (e *RemoteError) Error() string {
	if e.Type != "" {
		return fmt.Sprintf("appwrite: %s (%d %s)", e.Message, e.Code, e.Type)
	}
	return fmt.Sprintf("appwrite: %s (%d)", e.Message, e.Code)
}

// DecodeError is returned when a response declared as JSON cannot be parsed.
type DecodeError struct {
	ContentType string
	Err         error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s response: %v", e.ContentType, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// TransportError wraps a failure that prevented any response from arriving.
type TransportError struct {
	Method string
	Path   string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.Path, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// StatusCode returns the HTTP status carried by err, or 0 if err is not a
// RemoteError.
func StatusCode(err error) int {
	var remote *RemoteError
	if errors.As(err, &remote) {
		return remote.Code
	}
	return 0
}

// IsNotFound reports whether err is a 404 from the service
func IsNotFound(err error) bool {
	return StatusCode(err) == http.StatusNotFound
}

// IsClientError reports whether err is a 4xx from the service
func IsClientError(err error) bool {
	code := StatusCode(err)
	return code >= 400 && code < 500
}
