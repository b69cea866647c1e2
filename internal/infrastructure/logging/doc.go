// Package logging builds the zap loggers used by the transport, the upload
// engine and the CLI.
//
// Two modes:
//   - Production: JSON lines on stderr
//   - Development: colored console output at debug level
//
// Components accept a *zap.Logger and treat nil as a no-op logger (OrNop),
// so embedding applications can pass their own logger or none at all.
//
// Example Usage:
//
//	logger, err := logging.New(logging.DefaultConfig())
//	if err != nil {
//		return err
//	}
//	logger.Info("upload finished", zap.String("file_id", fileID))
package logging
