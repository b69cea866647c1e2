package messaging

import (
	"context"
	"net/http"
	"testing"

	"github.com/GriffinCanCode/appwrite-go/internal/infrastructure/config"
	"github.com/GriffinCanCode/appwrite-go/internal/providers/http/client"
	"github.com/GriffinCanCode/appwrite-go/internal/testutil"
	"github.com/GriffinCanCode/appwrite-go/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestGetMessage(t *testing.T) {
	m := new(testutil.MockCaller)
	m.On("Call", mock.Anything, http.MethodGet, "/messaging/messages/m1", mock.Anything, mock.Anything).
		Return(testutil.JSONResponse(t, `{"$id": "m1", "providerType": "push", "status": "scheduled", "scheduledAt": "2024-05-01T00:00:00.000+00:00"}`), nil).
		Once()

	msg, err := New(m).GetMessage(context.Background(), "m1")
	require.NoError(t, err)
	assert.Equal(t, types.MessageScheduled, msg.Status)
	require.NotNil(t, msg.ScheduledAt)
	m.AssertExpectations(t)

	_, err = New(m).GetMessage(context.Background(), "")
	assert.ErrorIs(t, err, ErrMissingMessageID)
}

func TestListMessagesParams(t *testing.T) {
	m := new(testutil.MockCaller)
	m.On("Call", mock.Anything, http.MethodGet, "/messaging/messages", mock.Anything,
		map[string]any{"queries": []string{`equal("status", ["sent"])`}},
	).Return(testutil.JSONResponse(t, `{"total": 0, "messages": []}`), nil).Once()

	list, err := New(m).ListMessages(context.Background(), []string{`equal("status", ["sent"])`}, "")
	require.NoError(t, err)
	assert.Zero(t, list.Total)
	m.AssertExpectations(t)
}

func TestMessagesAgainstServer(t *testing.T) {
	srv := testutil.NewFakeServer(t, testutil.ServerConfig{})
	srv.AddMessage(map[string]any{
		"$id":            "welcome",
		"providerType":   "email",
		"topics":         []string{"onboarding"},
		"users":          []string{},
		"targets":        []string{"t1"},
		"deliveredTotal": 1,
		"data":           map[string]any{"subject": "Welcome"},
		"status":         "sent",
	})
	srv.AddMessage(map[string]any{
		"$id":          "reminder",
		"providerType": "sms",
		"status":       "draft",
		"description":  "weekly",
	})

	cfg := config.Default()
	cfg.Endpoint = srv.Endpoint()
	c, err := client.New(cfg, client.WithLogger(zaptest.NewLogger(t)))
	require.NoError(t, err)
	svc := New(c)
	ctx := context.Background()

	msg, err := svc.GetMessage(ctx, "welcome")
	require.NoError(t, err)
	assert.Equal(t, "email", msg.ProviderType)
	assert.Equal(t, []string{"onboarding"}, msg.Topics)
	assert.Equal(t, int64(1), msg.DeliveredTotal)
	assert.Equal(t, "Welcome", msg.Data.String("subject"))

	list, err := svc.ListMessages(ctx, nil, "")
	require.NoError(t, err)
	require.Len(t, list.Messages, 2)
	assert.Equal(t, "reminder", list.Messages[0].ID)
	require.NotNil(t, list.Messages[0].Description)
	assert.Equal(t, "weekly", *list.Messages[0].Description)

	_, err = svc.GetMessage(ctx, "missing")
	require.Error(t, err)
	assert.True(t, client.IsNotFound(err))
}
