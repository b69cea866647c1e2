// Package main is the entry point for the appwrite command-line client.
//
// Usage:
//
//	# Upload a file, printing progress per chunk
//	APPWRITE_ENDPOINT=https://cloud.appwrite.io/v1 APPWRITE_PROJECT=demo \
//	APPWRITE_KEY=... appwrite upload photos ./cat.png
//
//	# Raw call
//	appwrite --config appwrite.yaml call GET /storage/buckets/photos/files
//
// Signals:
//   - SIGINT, SIGTERM: cancel the running request; an interrupted upload
//     can be resumed with --file-id
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/GriffinCanCode/appwrite-go/cmd/appwrite/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.NewAppwriteCommand().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
