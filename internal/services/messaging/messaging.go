// Package messaging wraps the read-only message endpoints.
package messaging

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/GriffinCanCode/appwrite-go/internal/providers/http/client"
	"github.com/GriffinCanCode/appwrite-go/internal/types"
)

// ErrMissingMessageID is returned when GetMessage is called without an id
var ErrMissingMessageID = errors.New("missing required parameter: messageId")

const messagesPath = "/messaging/messages"

var jsonHeaders = map[string]string{"content-type": "application/json"}

// Service wraps the messaging endpoints
type Service struct {
	caller client.Caller
}

// New creates a messaging service
func New(caller client.Caller) *Service {
	return &Service{caller: caller}
}

// GetMessage fetches one message
func (s *Service) GetMessage(ctx context.Context, messageID string) (types.Message, error) {
	if messageID == "" {
		return types.Message{}, ErrMissingMessageID
	}
	path := messagesPath + "/" + url.PathEscape(messageID)
	return client.CallAs(ctx, s.caller, http.MethodGet, path, jsonHeaders, nil, types.MessageFrom)
}

// ListMessages lists messages. Empty queries and search are omitted.
func (s *Service) ListMessages(ctx context.Context, queries []string, search string) (types.MessageList, error) {
	params := map[string]any{}
	if len(queries) > 0 {
		params["queries"] = queries
	}
	if search != "" {
		params["search"] = search
	}
	return client.CallAs(ctx, s.caller, http.MethodGet, messagesPath, jsonHeaders, params, types.MessageListFrom)
}
