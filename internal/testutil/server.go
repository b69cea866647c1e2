package testutil

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/klauspost/compress/gzhttp"
)

// ServerConfig configures a FakeServer
type ServerConfig struct {
	// Project, when set, must match the X-Appwrite-Project header
	Project string
	// RateLimit enables a global limiter answering 429
	RateLimit *RateLimitConfig
	// Compress gzips responses for clients that accept it
	Compress bool
}

// RecordedRequest is a request as the fake server saw it
type RecordedRequest struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
}

// FakeServer is an in-memory stand-in for the storage and messaging
// endpoints. It speaks the chunked upload protocol: Content-Range chunks,
// x-appwrite-id continuation and chunksUploaded in every file document.
type FakeServer struct {
	cfg    ServerConfig
	server *httptest.Server

	mu          sync.Mutex
	files       map[string]*storedFile
	messages    map[string]gin.H
	faults      []int
	chunkFaults map[int64]int
	requests    []RecordedRequest
}

// NewFakeServer starts a fake server that is closed with the test
func NewFakeServer(t testing.TB, cfg ServerConfig) *FakeServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	s := &FakeServer{
		cfg:         cfg,
		files:       make(map[string]*storedFile),
		messages:    make(map[string]gin.H),
		chunkFaults: make(map[int64]int),
	}

	router := gin.New()
	router.Use(gin.Recovery(), s.recordMiddleware(), corsMiddleware(), s.faultMiddleware())
	if cfg.RateLimit != nil {
		router.Use(rateLimitMiddleware(*cfg.RateLimit))
	}
	if cfg.Project != "" {
		router.Use(projectMiddleware(cfg.Project))
	}

	v1 := router.Group("/v1")

	// Storage
	v1.POST("/storage/buckets/:bucketId/files", s.createFile)
	v1.GET("/storage/buckets/:bucketId/files", s.listFiles)
	v1.GET("/storage/buckets/:bucketId/files/:fileId", s.getFile)
	v1.DELETE("/storage/buckets/:bucketId/files/:fileId", s.deleteFile)
	v1.GET("/storage/buckets/:bucketId/files/:fileId/download", s.downloadFile)

	// Messaging
	v1.GET("/messaging/messages", s.listMessages)
	v1.GET("/messaging/messages/:messageId", s.getMessage)

	var handler http.Handler = router
	if cfg.Compress {
		handler = gzhttp.GzipHandler(router)
	}
	s.server = httptest.NewServer(handler)
	t.Cleanup(s.server.Close)
	return s
}

// Endpoint returns the API root, including the /v1 prefix
func (s *FakeServer) Endpoint() string {
	return s.server.URL + "/v1"
}

// FailNext makes the next requests fail with the given statuses, in order
func (s *FakeServer) FailNext(statuses ...int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.faults = append(s.faults, statuses...)
}

// FailChunk makes the upload chunk with the given zero-based index fail
// once with status
func (s *FakeServer) FailChunk(index int64, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chunkFaults[index] = status
}

// Requests returns the requests seen so far
func (s *FakeServer) Requests() []RecordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]RecordedRequest, len(s.requests))
	copy(out, s.requests)
	return out
}

// ChunkRanges returns the Content-Range headers of upload requests, in order
func (s *FakeServer) ChunkRanges() []string {
	var ranges []string
	for _, req := range s.Requests() {
		if req.Method == http.MethodPost {
			if r := req.Header.Get("Content-Range"); r != "" {
				ranges = append(ranges, r)
			}
		}
	}
	return ranges
}

// FileData returns the stored bytes of a file
func (s *FakeServer) FileData(bucketID, fileID string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.files[fileKey(bucketID, fileID)]
	if !ok {
		return nil, false
	}
	return append([]byte(nil), f.data...), true
}

// AddMessage seeds a message document. $id is required.
func (s *FakeServer) AddMessage(doc map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	msgID, _ := doc["$id"].(string)
	s.messages[msgID] = gin.H(doc)
}

// newID mimics server-generated ids: 20 lowercase hex characters
func newID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:20]
}

func timestamp() string {
	return time.Now().UTC().Format("2006-01-02T15:04:05.000-07:00")
}
