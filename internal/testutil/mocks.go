// Package testutil provides testing utilities and helpers for client tests.
package testutil

import (
	"context"
	"net/http"
	"testing"

	"github.com/GriffinCanCode/appwrite-go/internal/providers/http/client"
	"github.com/GriffinCanCode/appwrite-go/internal/shared/types"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockCaller is a mock implementation of client.Caller
type MockCaller struct {
	mock.Mock
}

// Call mocks the Call method.
func (m *MockCaller) Call(ctx context.Context, method, path string, headers map[string]string, params map[string]any) (*client.Response, error) {
	args := m.Called(ctx, method, path, headers, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*client.Response), args.Error(1)
}

// JSONResponse builds a JSON response from a document literal
func JSONResponse(t *testing.T, doc string) *client.Response {
	t.Helper()
	obj, err := types.ParseObject([]byte(doc))
	require.NoError(t, err)

	header := http.Header{}
	header.Set("Content-Type", "application/json")
	return &client.Response{
		Kind:       client.PayloadJSON,
		Object:     obj,
		StatusCode: http.StatusOK,
		Header:     header,
	}
}

// BinaryResponse builds an octet-stream response
func BinaryResponse(data []byte) *client.Response {
	header := http.Header{}
	header.Set("Content-Type", "application/octet-stream")
	return &client.Response{
		Kind:       client.PayloadBinary,
		Bytes:      data,
		StatusCode: http.StatusOK,
		Header:     header,
	}
}

// EmptyResponse builds a 204 response
func EmptyResponse() *client.Response {
	return &client.Response{StatusCode: http.StatusNoContent, Header: http.Header{}}
}
