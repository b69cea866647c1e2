package types

import (
	"testing"

	shared "github.com/GriffinCanCode/appwrite-go/internal/shared/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, doc string) shared.Object {
	t.Helper()
	obj, err := shared.ParseObject([]byte(doc))
	require.NoError(t, err)
	return obj
}

func TestFileFrom(t *testing.T) {
	obj := parse(t, `{
		"$id": "f1",
		"bucketId": "photos",
		"$createdAt": "2024-01-01T00:00:00.000+00:00",
		"$updatedAt": "2024-01-02T00:00:00.000+00:00",
		"$permissions": ["read(\"any\")"],
		"name": "cat.png",
		"signature": "abc",
		"mimeType": "image/png",
		"sizeOriginal": 12582912,
		"chunksTotal": 3,
		"chunksUploaded": 3
	}`)

	file, err := FileFrom(obj)
	require.NoError(t, err)

	assert.Equal(t, "f1", file.ID)
	assert.Equal(t, "photos", file.BucketID)
	assert.Equal(t, []string{`read("any")`}, file.Permissions)
	assert.Equal(t, int64(12582912), file.SizeOriginal)
	assert.Equal(t, int64(3), file.ChunksTotal)
	assert.True(t, file.Complete())

	m := file.ToMap()
	assert.Equal(t, "cat.png", m["name"])
	assert.Equal(t, int64(3), m["chunksUploaded"])
}

func TestFileFromMissingID(t *testing.T) {
	_, err := FileFrom(parse(t, `{"bucketId": "b"}`))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingField)
	assert.Contains(t, err.Error(), "$id")
}

func TestFileComplete(t *testing.T) {
	assert.False(t, File{}.Complete())
	assert.False(t, File{ChunksTotal: 3, ChunksUploaded: 2}.Complete())
	assert.True(t, File{ChunksTotal: 1, ChunksUploaded: 1}.Complete())
}

func TestFileListFrom(t *testing.T) {
	list, err := FileListFrom(parse(t, `{
		"total": 2,
		"files": [
			{"$id": "a", "bucketId": "b"},
			{"$id": "c", "bucketId": "b"}
		]
	}`))
	require.NoError(t, err)
	assert.Equal(t, int64(2), list.Total)
	require.Len(t, list.Files, 2)
	assert.Equal(t, "c", list.Files[1].ID)

	_, err = FileListFrom(parse(t, `{"total": 1, "files": [3]}`))
	assert.Error(t, err)

	_, err = FileListFrom(parse(t, `{"total": 1, "files": [{"bucketId": "b"}]}`))
	assert.ErrorIs(t, err, ErrMissingField)
}

func TestMessageFrom(t *testing.T) {
	msg, err := MessageFrom(parse(t, `{
		"$id": "m1",
		"$createdAt": "2024-01-01T00:00:00.000+00:00",
		"$updatedAt": "2024-01-01T00:00:00.000+00:00",
		"providerType": "email",
		"topics": ["news"],
		"users": [],
		"targets": ["t1", "t2"],
		"scheduledAt": null,
		"deliveredAt": "2024-01-01T01:00:00.000+00:00",
		"deliveredTotal": 2,
		"data": {"subject": "hi"},
		"status": "sent"
	}`))
	require.NoError(t, err)

	assert.Equal(t, "m1", msg.ID)
	assert.Equal(t, []string{"news"}, msg.Topics)
	assert.Empty(t, msg.Users)
	assert.Len(t, msg.Targets, 2)
	assert.Nil(t, msg.ScheduledAt)
	require.NotNil(t, msg.DeliveredAt)
	assert.Equal(t, "2024-01-01T01:00:00.000+00:00", *msg.DeliveredAt)
	assert.Nil(t, msg.Description)
	assert.Equal(t, int64(2), msg.DeliveredTotal)
	assert.Equal(t, "hi", msg.Data.String("subject"))
	assert.Equal(t, MessageSent, msg.Status)

	m := msg.ToMap()
	assert.Equal(t, "sent", m["status"])
	assert.Equal(t, map[string]interface{}{"subject": "hi"}, m["data"])
}

func TestMessageListFrom(t *testing.T) {
	list, err := MessageListFrom(parse(t, `{
		"total": 1,
		"messages": [{"$id": "m1", "providerType": "sms", "status": "draft"}]
	}`))
	require.NoError(t, err)
	require.Len(t, list.Messages, 1)
	assert.Equal(t, MessageDraft, list.Messages[0].Status)

	_, err = MessageListFrom(parse(t, `{"total": 0}`))
	assert.ErrorIs(t, err, ErrMissingField)
}
