package files

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/GriffinCanCode/appwrite-go/internal/providers/http/client"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDownload(t *testing.T) {
	t.Run("writes binary payload", func(t *testing.T) {
		caller := &fakeCaller{respond: func(recordedCall, int) (*client.Response, error) {
			return &client.Response{Kind: client.PayloadBinary, Bytes: []byte("payload")}, nil
		}}
		dest := filepath.Join(t.TempDir(), "nested", "out.bin")

		n, err := Download(context.Background(), caller, "/storage/buckets/b/files/f/download", nil, dest)
		require.NoError(t, err)
		assert.Equal(t, int64(7), n)

		data, err := os.ReadFile(dest)
		require.NoError(t, err)
		assert.Equal(t, "payload", string(data))

		require.Len(t, caller.calls, 1)
		assert.Equal(t, "GET", caller.calls[0].method)
		assert.Equal(t, "application/octet-stream", caller.calls[0].headers["content-type"])
	})

	t.Run("rejects non binary payload", func(t *testing.T) {
		caller := &fakeCaller{}
		dest := filepath.Join(t.TempDir(), "out.bin")

		_, err := Download(context.Background(), caller, "/x", nil, dest)
		var decodeErr *client.DecodeError
		assert.ErrorAs(t, err, &decodeErr)
		assert.NoFileExists(t, dest)
	})

	t.Run("propagates remote errors", func(t *testing.T) {
		caller := &fakeCaller{respond: func(recordedCall, int) (*client.Response, error) {
			return nil, &client.RemoteError{Message: "missing", Code: 404}
		}}

		_, err := Download(context.Background(), caller, "/x", nil, filepath.Join(t.TempDir(), "out"))
		assert.True(t, client.IsNotFound(err))
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		caller := &fakeCaller{}
		_, err := Download(ctx, caller, "/x", nil, filepath.Join(t.TempDir(), "out"))
		assert.ErrorIs(t, err, context.Canceled)
		assert.Empty(t, caller.calls)
	})

	t.Run("leaves no temp files", func(t *testing.T) {
		caller := &fakeCaller{respond: func(recordedCall, int) (*client.Response, error) {
			return &client.Response{Kind: client.PayloadBinary, Bytes: []byte{1, 2}}, nil
		}}
		dir := t.TempDir()

		_, err := Download(context.Background(), caller, "/x", nil, filepath.Join(dir, "out.bin"))
		require.NoError(t, err)

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Len(t, entries, 1)
	})
}
