package files

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"
)

// sniffLimit bounds the bytes read for content type detection
const sniffLimit = 3072

// SourceKind discriminates the variants of InputFile
type SourceKind int

const (
	SourcePath SourceKind = iota
	SourceStream
	SourceBytes
)

// String returns the source kind name
func (k SourceKind) String() string {
	switch k {
	case SourcePath:
		return "path"
	case SourceStream:
		return "stream"
	case SourceBytes:
		return "bytes"
	default:
		return "unknown"
	}
}

// InputFile is the payload of an upload: a file on disk, a caller-owned
// stream of known length, or an in-memory buffer. The engine never closes
// a caller's stream.
type InputFile struct {
	kind     SourceKind
	path     string
	stream   io.ReadSeeker
	data     []byte
	size     int64
	filename string
	mimeType string
}

// FromPath uploads the file at path. Its size is read when the upload
// starts and the file is opened and closed by the engine.
func FromPath(path string) InputFile {
	return InputFile{
		kind:     SourcePath,
		path:     path,
		filename: filepath.Base(path),
	}
}

// FromStream uploads size bytes from r, starting at offset 0
func FromStream(r io.ReadSeeker, filename string, size int64) InputFile {
	return InputFile{
		kind:     SourceStream,
		stream:   r,
		size:     size,
		filename: filename,
	}
}

// FromBytes uploads data
func FromBytes(data []byte, filename string) InputFile {
	return InputFile{
		kind:     SourceBytes,
		data:     data,
		size:     int64(len(data)),
		filename: filename,
	}
}

// WithMimeType overrides content type detection for the file part
func (f InputFile) WithMimeType(mimeType string) InputFile {
	f.mimeType = mimeType
	return f
}

// Kind returns the source variant
func (f InputFile) Kind() SourceKind { return f.kind }

// Filename returns the name sent with the multipart field
func (f InputFile) Filename() string { return f.filename }

// Path returns the file path of a SourcePath input
func (f InputFile) Path() string { return f.path }

// source is an opened InputFile
type source struct {
	kind   SourceKind
	reader io.ReadSeeker
	data   []byte
	size   int64
	closer io.Closer
}

func (f InputFile) open() (*source, error) {
	switch f.kind {
	case SourcePath:
		file, err := os.Open(f.path)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", f.path, err)
		}
		info, err := file.Stat()
		if err != nil {
			file.Close()
			return nil, fmt.Errorf("stat %s: %w", f.path, err)
		}
		if info.IsDir() {
			file.Close()
			return nil, fmt.Errorf("%s is a directory", f.path)
		}
		return &source{kind: f.kind, reader: file, size: info.Size(), closer: file}, nil

	case SourceStream:
		if f.stream == nil {
			return nil, errors.New("stream input has no reader")
		}
		if f.size < 0 {
			return nil, fmt.Errorf("stream input has negative size %d", f.size)
		}
		return &source{kind: f.kind, reader: f.stream, size: f.size}, nil

	case SourceBytes:
		return &source{kind: f.kind, data: f.data, size: f.size}, nil
	}

	return nil, fmt.Errorf("unknown input source %d", f.kind)
}

// read returns exactly n bytes starting at offset
func (s *source) read(offset, n int64) ([]byte, error) {
	if offset < 0 || n < 0 || offset+n > s.size {
		return nil, fmt.Errorf("read %d bytes at %d: out of range for size %d", n, offset, s.size)
	}

	if s.kind == SourceBytes {
		return s.data[offset : offset+n], nil
	}

	if _, err := s.reader.Seek(offset, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seek to %d: %w", offset, err)
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(s.reader, buf); err != nil {
		return nil, fmt.Errorf("read %d bytes at %d: %w", n, offset, err)
	}
	return buf, nil
}

// sniff detects the content type from the first bytes of the source
func (s *source) sniff() (string, error) {
	head, err := s.read(0, min(s.size, sniffLimit))
	if err != nil {
		return "", err
	}
	return mimetype.Detect(head).String(), nil
}

func (s *source) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}
