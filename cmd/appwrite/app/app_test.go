package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/GriffinCanCode/appwrite-go/internal/providers/http/client"
	"github.com/GriffinCanCode/appwrite-go/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := NewAppwriteCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestUploadAndCall(t *testing.T) {
	srv := testutil.NewFakeServer(t, testutil.ServerConfig{Project: "cli"})

	path := filepath.Join(t.TempDir(), "big.bin")
	require.NoError(t, os.WriteFile(path, make([]byte, 6*1024*1024), 0o600))

	out, err := execute(t, "--endpoint", srv.Endpoint(), "--project", "cli",
		"upload", "videos", path, "--permission", `read("any")`)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Contains(t, lines[0], " 83.33%  1/2 chunks  5.0 MiB")
	assert.Contains(t, lines[1], "100.00%  2/2 chunks  6.0 MiB")
	assert.Contains(t, out, `"name": "big.bin"`)
	assert.Contains(t, out, `"chunksUploaded": 2`)

	out, err = execute(t, "--endpoint", srv.Endpoint(), "--project", "cli",
		"call", "get", "/storage/buckets/videos/files", "--json", `queries=["limit(1)"]`, "-p", "search=big")
	require.NoError(t, err)
	assert.Contains(t, out, `"total": 1`)
}

func TestCallErrors(t *testing.T) {
	srv := testutil.NewFakeServer(t, testutil.ServerConfig{Project: "cli"})

	_, err := execute(t, "--endpoint", srv.Endpoint(), "--project", "cli",
		"call", "GET", "/storage/buckets/videos/files/nope")
	require.Error(t, err)
	assert.True(t, client.IsNotFound(err))

	_, err = execute(t, "--endpoint", srv.Endpoint(), "call", "GET", "/x", "-p", "novalue")
	assert.ErrorContains(t, err, "expected key=value")

	_, err = execute(t, "--endpoint", "ftp://nowhere", "call", "GET", "/x")
	assert.Error(t, err)
}

func TestUploadRejectsInvalidFileID(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.txt")
	require.NoError(t, os.WriteFile(path, []byte("a"), 0o600))

	_, err := execute(t, "--endpoint", "http://127.0.0.1:1/v1", "upload", "b", path, "--file-id", "_bad id")
	assert.Error(t, err)
}

func TestParseParams(t *testing.T) {
	path := filepath.Join(t.TempDir(), "part.txt")
	require.NoError(t, os.WriteFile(path, []byte("content"), 0o600))

	params, err := parseParams(
		[]string{"name=a=b"},
		[]string{`limit=25`, `tags=["x","y"]`},
		[]string{"file=" + path},
	)
	require.NoError(t, err)

	assert.Equal(t, "a=b", params["name"])
	assert.EqualValues(t, 25, params["limit"])
	assert.Equal(t, []interface{}{"x", "y"}, params["tags"])

	part, ok := params["file"].(client.FilePart)
	require.True(t, ok)
	assert.Equal(t, "part.txt", part.Filename)
	assert.Equal(t, "content", string(part.Data))

	_, err = parseParams(nil, []string{"bad={"}, nil)
	assert.Error(t, err)
}

func TestFormatSize(t *testing.T) {
	assert.Equal(t, "512 B", formatSize(512))
	assert.Equal(t, "1.5 KiB", formatSize(1536))
	assert.Equal(t, "12.0 MiB", formatSize(12*1024*1024))
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "AppwriteGoSDK/")
}

func TestExpandPaths(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "a", "b"), 0o755))
	for _, name := range []string{"one.png", "a/two.png", "a/b/three.png", "a/skip.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(name), 0o600))
	}

	paths, err := expandPaths([]string{filepath.Join(dir, "**", "*.png")})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		filepath.Join(dir, "one.png"),
		filepath.Join(dir, "a", "two.png"),
		filepath.Join(dir, "a", "b", "three.png"),
	}, paths)

	paths, err = expandPaths([]string{filepath.Join(dir, "missing.bin")})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "missing.bin")}, paths)
}

func TestUploadGlob(t *testing.T) {
	srv := testutil.NewFakeServer(t, testutil.ServerConfig{Project: "cli"})

	dir := t.TempDir()
	for _, name := range []string{"a.txt", "b.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(name), 0o600))
	}

	out, err := execute(t, "--endpoint", srv.Endpoint(), "--project", "cli",
		"upload", "docs", filepath.Join(dir, "*.txt"))
	require.NoError(t, err)
	assert.Contains(t, out, "==> "+filepath.Join(dir, "a.txt"))
	assert.Contains(t, out, `"name": "b.txt"`)

	_, err = execute(t, "--endpoint", srv.Endpoint(), "--project", "cli",
		"upload", "docs", filepath.Join(dir, "*.txt"), "--file-id", "fixed")
	assert.ErrorContains(t, err, "single file")
}

func TestDownload(t *testing.T) {
	srv := testutil.NewFakeServer(t, testutil.ServerConfig{Project: "cli"})

	dir := t.TempDir()
	src := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(src, []byte("hello appwrite"), 0o600))

	_, err := execute(t, "--endpoint", srv.Endpoint(), "--project", "cli",
		"upload", "docs", src, "--file-id", "notes")
	require.NoError(t, err)

	dest := filepath.Join(dir, "out", "copy.txt")
	require.NoError(t, os.MkdirAll(filepath.Dir(dest), 0o755))
	out, err := execute(t, "--endpoint", srv.Endpoint(), "--project", "cli",
		"download", "docs", "notes", dest)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote 14 B to "+dest)

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "hello appwrite", string(data))

	_, err = execute(t, "--endpoint", srv.Endpoint(), "--project", "cli",
		"download", "docs", "missing", dest)
	assert.True(t, client.IsNotFound(err))
}

func TestInvalidEnvironment(t *testing.T) {
	t.Setenv("APPWRITE_TIMEOUT", "soon")

	_, err := execute(t, "--endpoint", "http://127.0.0.1:1/v1", "call", "GET", "/health")
	assert.ErrorContains(t, err, "failed to load config")
	assert.ErrorContains(t, err, "soon")
}

func TestUploadHelpExplainsResume(t *testing.T) {
	out, err := execute(t, "upload", "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "keep unique() for a first upload")
	assert.Contains(t, out, "using the id printed in its progress lines")
}
