package files

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/GriffinCanCode/appwrite-go/internal/infrastructure/logging"
	"github.com/GriffinCanCode/appwrite-go/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/appwrite-go/internal/infrastructure/tracing"
	"github.com/GriffinCanCode/appwrite-go/internal/providers/http/client"
	"github.com/GriffinCanCode/appwrite-go/internal/shared/id"
	"github.com/GriffinCanCode/appwrite-go/internal/shared/types"
	"go.uber.org/zap"
)

// ChunkSize is the size of every chunk but the last
const ChunkSize int64 = 5 * 1024 * 1024

const (
	headerContentRange = "Content-Range"
	headerUploadID     = "x-appwrite-id"
)

var (
	// ErrMissingInput is returned when the upload field holds no InputFile
	ErrMissingInput = errors.New("upload field does not hold an InputFile")
	// ErrInvalidResumeID is returned when the id field is not a non-empty string
	ErrInvalidResumeID = errors.New("resume id must be a non-empty string")
)

// Request describes one upload
type Request struct {
	// Path is the collection path, e.g. /storage/buckets/{bucketId}/files
	Path    string
	Headers map[string]string
	// Params must hold an InputFile under FieldName
	Params map[string]any
	// FieldName defaults to "file"
	FieldName string
	// IDFieldName names the param holding the resumable id. When empty or
	// when the id is "unique()", the upload starts from zero.
	IDFieldName string
	OnProgress  ProgressFunc
}

// Engine moves inputs to the server in ChunkSize pieces. Chunks of one
// upload are sent strictly in order; separate uploads may run concurrently.
type Engine struct {
	caller  client.Caller
	logger  *zap.Logger
	metrics *monitoring.Metrics
}

// Option configures an Engine
type Option func(*Engine)

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithMetrics records upload metrics
func WithMetrics(metrics *monitoring.Metrics) Option {
	return func(e *Engine) {
		e.metrics = metrics
	}
}

// NewEngine creates an upload engine on top of caller
func NewEngine(caller client.Caller, opts ...Option) *Engine {
	e := &Engine{caller: caller}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = logging.OrNop(e.logger)
	return e
}

// upload is the state of one Upload call
type upload struct {
	req      Request
	field    string
	input    InputFile
	src      *source
	mimeType string
	headers  map[string]string
	params   map[string]any
	trace    string
	log      *zap.Logger
}

// Upload sends the input and returns the JSON payload of the last response.
// Inputs smaller than ChunkSize go out in one request; larger ones are
// chunked with a Content-Range per chunk and resumed from the server's
// chunksUploaded when a resumable id is given. The caller's maps are not
// modified.
func (e *Engine) Upload(ctx context.Context, req Request) (types.Object, error) {
	u, err := e.prepare(req)
	if err != nil {
		return nil, err
	}
	defer u.src.Close()
	ctx = tracing.WithTrace(ctx, tracing.TraceID(u.trace))

	e.metrics.UploadStarted()
	result := monitoring.UploadFailed
	defer func() { e.metrics.UploadFinished(result) }()

	if u.src.size < ChunkSize {
		obj, err := e.single(ctx, u)
		if err != nil {
			return nil, err
		}
		result = monitoring.UploadCompleted
		u.finished()
		return obj, nil
	}

	offset, last, err := e.resume(ctx, u)
	if err != nil {
		return nil, err
	}

	done := monitoring.UploadCompleted
	if offset > 0 {
		done = monitoring.UploadResumed
	}
	if offset >= u.src.size {
		u.log.Info("Upload already complete on server", zap.Int64("size", u.src.size))
		result = done
		return last, nil
	}

	last, err = e.chunks(ctx, u, offset)
	if err != nil {
		return nil, err
	}
	result = done
	u.finished()
	return last, nil
}

// finished logs the upload's wall time, measured from its trace id
func (u *upload) finished() {
	fields := []zap.Field{zap.Int64("size", u.src.size)}
	if started, err := id.Timestamp(u.trace); err == nil {
		fields = append(fields, zap.Duration("elapsed", time.Since(started)))
	}
	u.log.Info("Upload completed", fields...)
}

// UploadAs runs Upload and converts the final payload with convert
func UploadAs[T any](ctx context.Context, e *Engine, req Request, convert func(types.Object) (T, error)) (T, error) {
	var zero T

	obj, err := e.Upload(ctx, req)
	if err != nil {
		return zero, err
	}
	return convert(obj)
}

func (e *Engine) prepare(req Request) (*upload, error) {
	field := req.FieldName
	if field == "" {
		field = client.FileParam
	}

	input, ok := inputParam(req.Params, field)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrMissingInput, field)
	}

	src, err := input.open()
	if err != nil {
		return nil, err
	}

	mimeType := input.mimeType
	if mimeType == "" {
		if mimeType, err = src.sniff(); err != nil {
			src.Close()
			return nil, err
		}
	}

	headers := make(map[string]string, len(req.Headers)+2)
	hasContentType := false
	for k, v := range req.Headers {
		headers[k] = v
		if strings.EqualFold(k, "content-type") {
			hasContentType = true
		}
	}
	if !hasContentType {
		headers["content-type"] = "multipart/form-data"
	}

	params := make(map[string]any, len(req.Params))
	for k, v := range req.Params {
		params[k] = v
	}

	trace := id.NewUploadTrace()
	return &upload{
		req:      req,
		field:    field,
		input:    input,
		src:      src,
		mimeType: mimeType,
		headers:  headers,
		params:   params,
		trace:    trace,
		log: e.logger.With(
			zap.String("upload", trace),
			zap.String("path", req.Path),
			zap.Stringer("source", input.Kind()),
		),
	}, nil
}

func inputParam(params map[string]any, field string) (InputFile, bool) {
	switch v := params[field].(type) {
	case InputFile:
		return v, true
	case *InputFile:
		if v != nil {
			return *v, true
		}
	}
	return InputFile{}, false
}

// single sends the whole input as one multipart request
func (e *Engine) single(ctx context.Context, u *upload) (types.Object, error) {
	data, err := u.src.read(0, u.src.size)
	if err != nil {
		return nil, err
	}

	u.params[u.field] = u.part(data)
	resp, err := e.caller.Call(ctx, http.MethodPost, u.req.Path, u.headers, u.params)
	if err != nil {
		return nil, err
	}

	obj, err := jsonPayload(resp)
	if err != nil {
		return nil, err
	}

	e.metrics.RecordChunk(u.src.size)
	u.log.Debug("Uploaded in a single request", zap.Int64("size", u.src.size))
	return obj, nil
}

// resume asks the server how many chunks it already holds. It returns the
// byte offset to continue from and the probe payload.
func (e *Engine) resume(ctx context.Context, u *upload) (int64, types.Object, error) {
	if u.req.IDFieldName == "" {
		return 0, nil, nil
	}

	resumeID, ok := u.params[u.req.IDFieldName].(string)
	if !ok || resumeID == "" {
		return 0, nil, fmt.Errorf("%w: %q", ErrInvalidResumeID, u.req.IDFieldName)
	}
	if id.IsUnique(resumeID) {
		return 0, nil, nil
	}

	probeHeaders := make(map[string]string, len(u.headers))
	for k, v := range u.headers {
		if strings.EqualFold(k, "content-type") {
			continue
		}
		probeHeaders[k] = v
	}
	probeHeaders["content-type"] = "application/json"

	resp, err := e.caller.Call(ctx, http.MethodGet, u.req.Path+"/"+url.PathEscape(resumeID), probeHeaders, map[string]any{})
	if err != nil {
		return 0, nil, fmt.Errorf("resume probe for %s: %w", resumeID, err)
	}
	current, err := jsonPayload(resp)
	if err != nil {
		return 0, nil, fmt.Errorf("resume probe for %s: %w", resumeID, err)
	}

	if serverID := current.String("$id"); serverID != "" {
		u.headers[headerUploadID] = serverID
	}

	uploaded := current.Int("chunksUploaded")
	offset := uploaded * ChunkSize
	u.log.Info("Resuming upload",
		zap.String("id", resumeID),
		zap.Int64("chunks_uploaded", uploaded),
		zap.Int64("offset", offset))
	return offset, current, nil
}

// chunks sends the input from offset to the end, one chunk per request
func (e *Engine) chunks(ctx context.Context, u *upload, offset int64) (types.Object, error) {
	size := u.src.size
	total := (size + ChunkSize - 1) / ChunkSize

	var last types.Object
	for offset < size {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		end := min(offset+ChunkSize, size)
		index := offset/ChunkSize + 1

		data, err := u.src.read(offset, end-offset)
		if err != nil {
			return nil, err
		}

		u.params[u.field] = u.part(data)
		u.headers[headerContentRange] = fmt.Sprintf("bytes %d-%d/%d", offset, end-1, size)

		// each call gets its own maps; a caller may hold on to them
		resp, err := e.caller.Call(ctx, http.MethodPost, u.req.Path, maps.Clone(u.headers), maps.Clone(u.params))
		if err != nil {
			return nil, fmt.Errorf("upload chunk %d/%d: %w", index, total, err)
		}
		chunk, err := jsonPayload(resp)
		if err != nil {
			return nil, fmt.Errorf("upload chunk %d/%d: %w", index, total, err)
		}

		offset += ChunkSize
		if serverID := chunk.String("$id"); serverID != "" {
			u.headers[headerUploadID] = serverID
		}

		e.metrics.RecordChunk(int64(len(data)))
		u.log.Debug("Chunk uploaded",
			zap.Int64("chunk", index),
			zap.Int64("chunks_total", total),
			zap.String("range", u.headers[headerContentRange]))

		if u.req.OnProgress != nil {
			u.req.OnProgress(newProgress(chunk, offset, size))
		}
		last = chunk
	}
	return last, nil
}

func (u *upload) part(data []byte) client.FilePart {
	return client.FilePart{
		Filename:    u.input.Filename(),
		ContentType: u.mimeType,
		Data:        data,
	}
}

func jsonPayload(resp *client.Response) (types.Object, error) {
	if !resp.IsJSON() {
		kind := client.PayloadEmpty
		if resp != nil {
			kind = resp.Kind
		}
		return nil, &client.DecodeError{
			ContentType: "application/json",
			Err:         fmt.Errorf("expected a JSON object, got %s payload", kind),
		}
	}
	return resp.Object, nil
}
