package testutil

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/GriffinCanCode/appwrite-go/internal/providers/http/files"
	"github.com/GriffinCanCode/appwrite-go/internal/shared/id"
	"github.com/gin-gonic/gin"
)

type storedFile struct {
	bucketID    string
	id          string
	name        string
	mimeType    string
	permissions []string
	createdAt   string
	updatedAt   string
	size        int64
	chunksTotal int64
	received    map[int64]bool
	data        []byte
}

func (f *storedFile) complete() bool {
	return int64(len(f.received)) >= f.chunksTotal
}

func (f *storedFile) document() gin.H {
	perms := f.permissions
	if perms == nil {
		perms = []string{}
	}
	return gin.H{
		"$id":            f.id,
		"bucketId":       f.bucketID,
		"$createdAt":     f.createdAt,
		"$updatedAt":     f.updatedAt,
		"$permissions":   perms,
		"name":           f.name,
		"signature":      "",
		"mimeType":       f.mimeType,
		"sizeOriginal":   f.size,
		"chunksTotal":    f.chunksTotal,
		"chunksUploaded": int64(len(f.received)),
	}
}

func fileKey(bucketID, fileID string) string {
	return bucketID + "/" + fileID
}

func (s *FakeServer) createFile(c *gin.Context) {
	bucketID := c.Param("bucketId")

	form, err := c.MultipartForm()
	if err != nil {
		abort(c, http.StatusBadRequest, "storage_invalid_file", err.Error())
		return
	}
	header, err := c.FormFile("file")
	if err != nil {
		abort(c, http.StatusBadRequest, "storage_file_empty", "No file sent")
		return
	}
	data, err := readPart(header)
	if err != nil {
		abort(c, http.StatusBadRequest, "storage_invalid_file", err.Error())
		return
	}

	fileID := c.PostForm("fileId")
	if uploadID := c.GetHeader("x-appwrite-id"); uploadID != "" {
		fileID = uploadID
	}
	if fileID == "" || id.IsUnique(fileID) {
		fileID = newID()
	}

	start, end, total := int64(0), int64(len(data))-1, int64(len(data))
	if rng := c.GetHeader("Content-Range"); rng != "" {
		if start, end, total, err = parseContentRange(rng); err != nil {
			abort(c, http.StatusRequestedRangeNotSatisfiable, "storage_invalid_content_range", err.Error())
			return
		}
		if end-start+1 != int64(len(data)) {
			abort(c, http.StatusBadRequest, "storage_invalid_content_range", "Chunk size does not match Content-Range")
			return
		}
	}
	index := start / files.ChunkSize

	s.mu.Lock()
	defer s.mu.Unlock()

	if status, ok := s.chunkFaults[index]; ok {
		delete(s.chunkFaults, index)
		abort(c, status, "general_server_error", http.StatusText(status))
		return
	}

	key := fileKey(bucketID, fileID)
	f, exists := s.files[key]
	if exists && f.complete() {
		abort(c, http.StatusConflict, "storage_file_already_exists", "A storage file with the requested ID already exists.")
		return
	}
	if !exists {
		now := timestamp()
		f = &storedFile{
			bucketID:    bucketID,
			id:          fileID,
			name:        header.Filename,
			mimeType:    header.Header.Get("Content-Type"),
			permissions: indexedValues(form.Value, "permissions"),
			createdAt:   now,
			updatedAt:   now,
			size:        total,
			chunksTotal: (total + files.ChunkSize - 1) / files.ChunkSize,
			received:    make(map[int64]bool),
			data:        make([]byte, total),
		}
		if f.chunksTotal == 0 {
			f.chunksTotal = 1
		}
		s.files[key] = f
	}
	if total != f.size {
		abort(c, http.StatusBadRequest, "storage_invalid_content_range", "Total size changed between chunks")
		return
	}

	copy(f.data[start:], data)
	f.received[index] = true
	f.updatedAt = timestamp()

	c.JSON(http.StatusCreated, f.document())
}

func (s *FakeServer) getFile(c *gin.Context) {
	s.mu.Lock()
	f, ok := s.files[fileKey(c.Param("bucketId"), c.Param("fileId"))]
	var doc gin.H
	if ok {
		doc = f.document()
	}
	s.mu.Unlock()

	if !ok {
		abort(c, http.StatusNotFound, "storage_file_not_found", "The requested file could not be found.")
		return
	}
	c.JSON(http.StatusOK, doc)
}

func (s *FakeServer) listFiles(c *gin.Context) {
	bucketID := c.Param("bucketId")
	search := c.Query("search")

	s.mu.Lock()
	docs := make([]gin.H, 0)
	ids := make([]string, 0, len(s.files))
	for key, f := range s.files {
		if f.bucketID == bucketID && strings.Contains(f.name, search) {
			ids = append(ids, key)
		}
	}
	sort.Strings(ids)
	for _, key := range ids {
		docs = append(docs, s.files[key].document())
	}
	s.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{"total": len(docs), "files": docs})
}

func (s *FakeServer) deleteFile(c *gin.Context) {
	key := fileKey(c.Param("bucketId"), c.Param("fileId"))

	s.mu.Lock()
	_, ok := s.files[key]
	delete(s.files, key)
	s.mu.Unlock()

	if !ok {
		abort(c, http.StatusNotFound, "storage_file_not_found", "The requested file could not be found.")
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *FakeServer) downloadFile(c *gin.Context) {
	s.mu.Lock()
	f, ok := s.files[fileKey(c.Param("bucketId"), c.Param("fileId"))]
	var data []byte
	if ok && f.complete() {
		data = append([]byte(nil), f.data...)
	}
	s.mu.Unlock()

	if data == nil {
		abort(c, http.StatusNotFound, "storage_file_not_found", "The requested file could not be found.")
		return
	}
	c.Data(http.StatusOK, "application/octet-stream", data)
}

// parseContentRange parses "bytes start-end/total"
func parseContentRange(value string) (start, end, total int64, err error) {
	spec, ok := strings.CutPrefix(value, "bytes ")
	if !ok {
		return 0, 0, 0, fmt.Errorf("invalid Content-Range %q", value)
	}
	rng, size, ok := strings.Cut(spec, "/")
	if !ok {
		return 0, 0, 0, fmt.Errorf("invalid Content-Range %q", value)
	}
	first, last, ok := strings.Cut(rng, "-")
	if !ok {
		return 0, 0, 0, fmt.Errorf("invalid Content-Range %q", value)
	}

	if start, err = strconv.ParseInt(first, 10, 64); err != nil {
		return 0, 0, 0, err
	}
	if end, err = strconv.ParseInt(last, 10, 64); err != nil {
		return 0, 0, 0, err
	}
	if total, err = strconv.ParseInt(size, 10, 64); err != nil {
		return 0, 0, 0, err
	}
	if start < 0 || end < start || end >= total {
		return 0, 0, 0, fmt.Errorf("range %d-%d outside %d bytes", start, end, total)
	}
	return start, end, total, nil
}

// indexedValues collects key[0], key[1]... in index order
func indexedValues(values map[string][]string, key string) []string {
	type entry struct {
		index int
		value string
	}
	var entries []entry
	for k, v := range values {
		raw, ok := strings.CutPrefix(k, key+"[")
		if !ok || len(v) == 0 {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSuffix(raw, "]"))
		if err != nil {
			continue
		}
		entries = append(entries, entry{n, v[0]})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].index < entries[j].index })

	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.value)
	}
	return out
}

func readPart(header *multipart.FileHeader) ([]byte, error) {
	f, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
