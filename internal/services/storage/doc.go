/*
Package storage wraps the bucket file endpoints.

CreateFile goes through the chunked upload engine with "fileId" as the
resumable id field, so re-running an interrupted CreateFile with the same
custom id continues from the chunks the server already holds:

	svc := storage.New(c, files.WithLogger(logger))
	file, err := svc.CreateFile(ctx, storage.CreateFileParams{
		BucketID: "photos",
		FileID:   "holiday-2024",
		File:     files.FromPath("/tmp/holiday.mp4"),
	})
*/
package storage
