// Package config provides the immutable client configuration.
//
// Configuration comes from one of three places:
//   - Default(): cloud endpoint, no credentials, no retries
//   - Load(): APPWRITE_* environment variables (12-factor)
//   - LoadFile(): a YAML or TOML file, chosen by extension
//
// A Config is built once and handed to the transport, which derives its
// default header set from Headers() at construction time.
//
// Environment Variables:
//   - APPWRITE_ENDPOINT, APPWRITE_PROJECT, APPWRITE_KEY, APPWRITE_JWT
//   - APPWRITE_LOCALE, APPWRITE_SESSION, APPWRITE_FORWARDED_FOR, APPWRITE_FORWARDED_USER_AGENT
//   - APPWRITE_SELF_SIGNED, APPWRITE_RESPONSE_FORMAT, APPWRITE_TIMEOUT
//   - APPWRITE_RETRY_MAX_RETRIES, APPWRITE_RETRY_MIN_WAIT, APPWRITE_RETRY_MAX_WAIT
//   - APPWRITE_RATE_LIMIT_REQUESTS_PER_SECOND, APPWRITE_RATE_LIMIT_BURST
//   - APPWRITE_BREAKER_ENABLED, APPWRITE_BREAKER_CONSECUTIVE_FAILURES, APPWRITE_BREAKER_TIMEOUT
//   - APPWRITE_LOGGING_LEVEL, APPWRITE_LOGGING_DEVELOPMENT
package config
