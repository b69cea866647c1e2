package storage

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/GriffinCanCode/appwrite-go/internal/providers/http/client"
	"github.com/GriffinCanCode/appwrite-go/internal/providers/http/files"
	"github.com/GriffinCanCode/appwrite-go/internal/shared/id"
	"github.com/GriffinCanCode/appwrite-go/internal/types"
)

// ErrMissingParam is returned when a required path parameter is empty
var ErrMissingParam = errors.New("missing required parameter")

var jsonHeaders = map[string]string{"content-type": "application/json"}

// Service wraps the storage endpoints
type Service struct {
	caller client.Caller
	engine *files.Engine
}

// New creates a storage service. Engine options apply to CreateFile.
func New(caller client.Caller, opts ...files.Option) *Service {
	return &Service{
		caller: caller,
		engine: files.NewEngine(caller, opts...),
	}
}

// CreateFileParams describes a file upload
type CreateFileParams struct {
	BucketID string
	// FileID is a custom id or id.Unique(). A custom id makes the upload
	// resumable.
	FileID      string
	File        files.InputFile
	Permissions []string
	OnProgress  files.ProgressFunc
}

// CreateFile uploads a file, chunking it when it exceeds files.ChunkSize
func (s *Service) CreateFile(ctx context.Context, p CreateFileParams) (types.File, error) {
	if err := required("bucketId", p.BucketID); err != nil {
		return types.File{}, err
	}
	fileID := p.FileID
	if fileID == "" {
		fileID = id.Unique()
	}

	params := map[string]any{
		"fileId":         fileID,
		client.FileParam: p.File,
	}
	if p.Permissions != nil {
		params["permissions"] = p.Permissions
	}

	return files.UploadAs(ctx, s.engine, files.Request{
		Path:        filesPath(p.BucketID),
		Headers:     map[string]string{"content-type": "multipart/form-data"},
		Params:      params,
		IDFieldName: "fileId",
		OnProgress:  p.OnProgress,
	}, types.FileFrom)
}

// GetFile fetches file metadata
func (s *Service) GetFile(ctx context.Context, bucketID, fileID string) (types.File, error) {
	path, err := filePath(bucketID, fileID)
	if err != nil {
		return types.File{}, err
	}
	return client.CallAs(ctx, s.caller, http.MethodGet, path, jsonHeaders, nil, types.FileFrom)
}

// ListFiles lists the files of a bucket. Empty queries and search are omitted.
func (s *Service) ListFiles(ctx context.Context, bucketID string, queries []string, search string) (types.FileList, error) {
	if err := required("bucketId", bucketID); err != nil {
		return types.FileList{}, err
	}

	params := map[string]any{}
	if len(queries) > 0 {
		params["queries"] = queries
	}
	if search != "" {
		params["search"] = search
	}
	return client.CallAs(ctx, s.caller, http.MethodGet, filesPath(bucketID), jsonHeaders, params, types.FileListFrom)
}

// DeleteFile removes a file
func (s *Service) DeleteFile(ctx context.Context, bucketID, fileID string) error {
	path, err := filePath(bucketID, fileID)
	if err != nil {
		return err
	}
	_, err = s.caller.Call(ctx, http.MethodDelete, path, jsonHeaders, nil)
	return err
}

// GetFileDownload returns the file content
func (s *Service) GetFileDownload(ctx context.Context, bucketID, fileID string) ([]byte, error) {
	path, err := filePath(bucketID, fileID)
	if err != nil {
		return nil, err
	}

	resp, err := s.caller.Call(ctx, http.MethodGet, path+"/download", map[string]string{
		"content-type": "application/octet-stream",
	}, nil)
	if err != nil {
		return nil, err
	}
	if resp.Kind != client.PayloadBinary {
		return nil, &client.DecodeError{
			ContentType: resp.Header.Get("Content-Type"),
			Err:         fmt.Errorf("expected binary payload, got %s", resp.Kind),
		}
	}
	return resp.Bytes, nil
}

// DownloadFile writes the file content to dest and returns the byte count
func (s *Service) DownloadFile(ctx context.Context, bucketID, fileID, dest string) (int64, error) {
	path, err := filePath(bucketID, fileID)
	if err != nil {
		return 0, err
	}
	return files.Download(ctx, s.caller, path+"/download", nil, dest)
}

func filesPath(bucketID string) string {
	return "/storage/buckets/" + url.PathEscape(bucketID) + "/files"
}

func filePath(bucketID, fileID string) (string, error) {
	if err := required("bucketId", bucketID); err != nil {
		return "", err
	}
	if err := required("fileId", fileID); err != nil {
		return "", err
	}
	return filesPath(bucketID) + "/" + url.PathEscape(fileID), nil
}

func required(name, value string) error {
	if value == "" {
		return fmt.Errorf("%w: %s", ErrMissingParam, name)
	}
	return nil
}
