// Package client is the transport every other package builds on.
//
// One Call is one HTTP exchange:
//   - GET flattens params into the query string and sends no body
//   - other methods send params as JSON, or as multipart/form-data when the
//     effective content-type header says so
//   - the content-type header of a call negotiates Accept; the outgoing
//     Content-Type is derived from the body encoding
//   - status >= 400 becomes a *RemoteError, whatever the content type
//   - a 2xx is classified as a JSON object, raw bytes, or empty
//
// Built on go-resty/resty with a pooled transport from go-retryablehttp.
// Retries, client-side rate limiting and the circuit breaker are all off
// unless enabled in config.
//
// Example Usage:
//
//	c, err := client.New(cfg, client.WithLogger(logger))
//	resp, err := c.Call(ctx, "GET", "/storage/buckets/photos/files", nil, map[string]any{
//		"limit": 25,
//	})
//	if client.IsNotFound(err) {
//		// ...
//	}
package client
