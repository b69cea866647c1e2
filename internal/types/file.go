package types

import (
	shared "github.com/GriffinCanCode/appwrite-go/internal/shared/types"
)

// File represents a stored file
type File struct {
	ID             string   `json:"$id"`
	BucketID       string   `json:"bucketId"`
	CreatedAt      string   `json:"$createdAt"`
	UpdatedAt      string   `json:"$updatedAt"`
	Permissions    []string `json:"$permissions"`
	Name           string   `json:"name"`
	Signature      string   `json:"signature"`
	MimeType       string   `json:"mimeType"`
	SizeOriginal   int64    `json:"sizeOriginal"`
	ChunksTotal    int64    `json:"chunksTotal"`
	ChunksUploaded int64    `json:"chunksUploaded"`
}

// FileList is a page of files
type FileList struct {
	Total int64  `json:"total"`
	Files []File `json:"files"`
}

// FileFrom maps a response object to a File
func FileFrom(obj shared.Object) (File, error) {
	if err := requireKeys("file", obj, "$id", "bucketId"); err != nil {
		return File{}, err
	}

	return File{
		ID:             obj.String("$id"),
		BucketID:       obj.String("bucketId"),
		CreatedAt:      obj.String("$createdAt"),
		UpdatedAt:      obj.String("$updatedAt"),
		Permissions:    obj.Strings("$permissions"),
		Name:           obj.String("name"),
		Signature:      obj.String("signature"),
		MimeType:       obj.String("mimeType"),
		SizeOriginal:   obj.Int("sizeOriginal"),
		ChunksTotal:    obj.Int("chunksTotal"),
		ChunksUploaded: obj.Int("chunksUploaded"),
	}, nil
}

// Complete reports whether the server holds every chunk
func (f File) Complete() bool {
	return f.ChunksTotal > 0 && f.ChunksUploaded >= f.ChunksTotal
}

// ToMap returns the wire representation
func (f File) ToMap() map[string]any {
	return map[string]any{
		"$id":            f.ID,
		"bucketId":       f.BucketID,
		"$createdAt":     f.CreatedAt,
		"$updatedAt":     f.UpdatedAt,
		"$permissions":   f.Permissions,
		"name":           f.Name,
		"signature":      f.Signature,
		"mimeType":       f.MimeType,
		"sizeOriginal":   f.SizeOriginal,
		"chunksTotal":    f.ChunksTotal,
		"chunksUploaded": f.ChunksUploaded,
	}
}

// FileListFrom maps a list response to a FileList
func FileListFrom(obj shared.Object) (FileList, error) {
	if err := requireKeys("file list", obj, "total", "files"); err != nil {
		return FileList{}, err
	}

	items, err := objects("file list", obj, "files")
	if err != nil {
		return FileList{}, err
	}

	list := FileList{Total: obj.Int("total"), Files: make([]File, 0, len(items))}
	for _, item := range items {
		file, err := FileFrom(item)
		if err != nil {
			return FileList{}, err
		}
		list.Files = append(list.Files, file)
	}
	return list, nil
}
