// Package files moves file payloads between the caller and the service.
//
// Uploads go through an Engine. An input smaller than ChunkSize (5 MiB)
// is sent in a single multipart request. Anything larger is split into
// ChunkSize pieces, each POSTed with
//
//	Content-Range: bytes {start}-{end}/{size}
//
// and, once the server has assigned one, an x-appwrite-id header tying the
// chunks together. When the request names a resumable id that is not
// "unique()", the engine first GETs {path}/{id} and continues from
// chunksUploaded * ChunkSize. A failed chunk aborts the upload; calling
// Upload again with the same id picks up where the server left off.
//
// Each upload gets an upl_ ULID trace id, so the probe and every chunk call
// log under the same trace_id.
//
// Example Usage:
//
//	engine := files.NewEngine(transport, files.WithLogger(logger))
//	obj, err := engine.Upload(ctx, files.Request{
//		Path:        "/storage/buckets/photos/files",
//		Params:      map[string]any{"fileId": "holiday", "file": files.FromPath("holiday.mp4")},
//		IDFieldName: "fileId",
//		OnProgress: func(p files.UploadProgress) {
//			fmt.Printf("%.1f%%\n", p.Progress)
//		},
//	})
package files
