package client

import (
	"bytes"
	"net/http"
	"strings"

	"github.com/GriffinCanCode/appwrite-go/internal/shared/types"
)

const (
	mimeJSON      = "application/json"
	mimeBinary    = "application/octet-stream"
	mimeMultipart = "multipart/form-data"
)

// PayloadKind classifies a successful response
type PayloadKind int

const (
	PayloadEmpty PayloadKind = iota
	PayloadJSON
	PayloadBinary
)

// String returns the payload kind name
func (k PayloadKind) String() string {
	switch k {
	case PayloadJSON:
		return "json"
	case PayloadBinary:
		return "binary"
	default:
		return "empty"
	}
}

// Response is a classified successful response. Exactly one of Object and
// Bytes is set, depending on Kind.
type Response struct {
	Kind       PayloadKind
	Object     types.Object
	Bytes      []byte
	StatusCode int
	Header     http.Header
}

// IsJSON reports whether the response carried a JSON object
func (r *Response) IsJSON() bool {
	return r != nil && r.Kind == PayloadJSON
}

// classify turns a raw status, content type and body into a Response or an
// error. The status check runs first, so an error body is never returned as
// a payload.
func classify(status int, header http.Header, body []byte) (*Response, error) {
	contentType := header.Get("Content-Type")
	isJSON := strings.Contains(contentType, mimeJSON)
	isBinary := strings.Contains(contentType, mimeBinary)

	if status >= 400 {
		return nil, remoteError(status, isJSON, body)
	}

	resp := &Response{StatusCode: status, Header: header}
	switch {
	case isJSON:
		if len(bytes.TrimSpace(body)) == 0 {
			return resp, nil
		}
		obj, err := types.ParseObject(body)
		if err != nil {
			return nil, &DecodeError{ContentType: contentType, Err: err}
		}
		resp.Kind = PayloadJSON
		resp.Object = obj
	case isBinary:
		resp.Kind = PayloadBinary
		resp.Bytes = body
	}
	return resp, nil
}

// remoteError extracts the message from a JSON error body, falling back to
// the raw body text.
func remoteError(status int, isJSON bool, body []byte) *RemoteError {
	err := &RemoteError{
		Message: string(body),
		Code:    status,
		Body:    body,
	}
	if !isJSON {
		return err
	}

	obj, parseErr := types.ParseObject(body)
	if parseErr != nil {
		return err
	}
	if msg, ok := obj.Get("message"); ok && !msg.IsNull() {
		err.Message = msg.Text()
	}
	err.Type = obj.String("type")
	return err
}
