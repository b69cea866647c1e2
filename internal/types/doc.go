// Package types holds the typed response models.
//
// Each model has a From constructor that maps a shared.Object returned by
// the transport, failing with ErrMissingField when a required key is
// absent, and a ToMap method giving the wire representation back.
//
// Models:
//   - File, FileList: storage
//   - Message, MessageList: messaging
package types
