package files

import "github.com/GriffinCanCode/appwrite-go/internal/shared/types"

// UploadProgress is a snapshot emitted after every chunk
type UploadProgress struct {
	// ID is the server's file id, empty until the server assigns one
	ID string
	// Progress is the completed percentage, 0 to 100
	Progress       float64
	SizeUploaded   int64
	ChunksTotal    int64
	ChunksUploaded int64
}

// ProgressFunc receives upload progress. It runs on the uploading goroutine.
type ProgressFunc func(UploadProgress)

func newProgress(chunk types.Object, offset, size int64) UploadProgress {
	sent := min(offset, size)
	return UploadProgress{
		ID:             chunk.String("$id"),
		Progress:       float64(sent) / float64(size) * 100,
		SizeUploaded:   sent,
		ChunksTotal:    chunk.Int("chunksTotal"),
		ChunksUploaded: chunk.Int("chunksUploaded"),
	}
}
