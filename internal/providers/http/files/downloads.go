package files

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/GriffinCanCode/appwrite-go/internal/providers/http/client"
)

// Download fetches a binary payload from path and writes it to dest,
// creating parent directories. A partial file is removed on failure.
func Download(ctx context.Context, caller client.Caller, path string, params map[string]any, dest string) (int64, error) {
	// Check for context cancellation before starting
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("download cancelled: %w", err)
	}

	resp, err := caller.Call(ctx, http.MethodGet, path, map[string]string{
		"content-type": "application/octet-stream",
	}, params)
	if err != nil {
		return 0, err
	}
	if resp.Kind != client.PayloadBinary {
		return 0, &client.DecodeError{
			ContentType: resp.Header.Get("Content-Type"),
			Err:         fmt.Errorf("expected binary payload, got %s", resp.Kind),
		}
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return 0, fmt.Errorf("failed to create directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dest), "."+filepath.Base(dest)+".*")
	if err != nil {
		return 0, fmt.Errorf("failed to create file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(resp.Bytes); err != nil {
		tmp.Close()
		return 0, fmt.Errorf("failed to write %s: %w", dest, err)
	}
	if err := tmp.Close(); err != nil {
		return 0, fmt.Errorf("failed to write %s: %w", dest, err)
	}
	if err := os.Rename(tmp.Name(), dest); err != nil {
		return 0, fmt.Errorf("failed to move download into place: %w", err)
	}

	return int64(len(resp.Bytes)), nil
}
