// Package id provides resource identifier helpers for the client.
//
// Two kinds of identifiers live here:
//   - Server identifiers: Unique() asks the server to assign an ID, Custom()
//     validates a caller-chosen one against the server's ID rules.
//   - Trace identifiers: prefixed ULIDs generated locally to correlate log
//     lines belonging to one upload. They never go on the wire.
package id

import (
	"crypto/rand"
	"fmt"
	"io"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// UniqueSentinel is the placeholder the server replaces with a generated ID
const UniqueSentinel = "unique()"

// MaxCustomLength is the longest custom ID the server accepts
const MaxCustomLength = 36

// customPattern allows a-z, A-Z, 0-9, period, hyphen and underscore, but not
// a leading special character
var customPattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._-]*$`)

// Trace prefixes
const (
	UploadPrefix = "upl"
	CallPrefix   = "call"
)

// Unique returns the sentinel asking the server to generate an ID
func Unique() string {
	return UniqueSentinel
}

// IsUnique reports whether value is the server-generated ID sentinel
func IsUnique(value string) bool {
	return value == UniqueSentinel
}

// Custom validates a caller-chosen ID
func Custom(value string) (string, error) {
	if value == "" {
		return "", fmt.Errorf("id cannot be empty")
	}
	if len(value) > MaxCustomLength {
		return "", fmt.Errorf("id exceeds %d characters", MaxCustomLength)
	}
	if !customPattern.MatchString(value) {
		return "", fmt.Errorf("id %q contains invalid characters", value)
	}
	return value, nil
}

// Generator generates ULIDs with optional prefixes
type Generator struct {
	entropy   io.Reader
	entropyMu sync.Mutex
}

var (
	defaultGenerator *Generator
	once             sync.Once
)

// Default returns the singleton generator instance
func Default() *Generator {
	once.Do(func() {
		defaultGenerator = NewGenerator()
	})
	return defaultGenerator
}

// NewGenerator creates a generator backed by crypto/rand
func NewGenerator() *Generator {
	return &Generator{entropy: rand.Reader}
}

// NewGeneratorWithEntropy creates a generator with a custom entropy source.
// Useful for deterministic tests.
func NewGeneratorWithEntropy(entropy io.Reader) *Generator {
	return &Generator{entropy: entropy}
}

// Generate creates a new ULID
func (g *Generator) Generate() ulid.ULID {
	g.entropyMu.Lock()
	defer g.entropyMu.Unlock()

	return ulid.MustNew(ulid.Timestamp(time.Now()), g.entropy)
}

// GenerateWithPrefix creates a prefixed ULID string
func (g *Generator) GenerateWithPrefix(prefix string) string {
	return fmt.Sprintf("%s_%s", prefix, g.Generate().String())
}

// NewUploadTrace returns a trace ID for one chunked upload
func NewUploadTrace() string {
	return Default().GenerateWithPrefix(UploadPrefix)
}

// NewCallTrace returns a trace ID for one transport call
func NewCallTrace() string {
	return Default().GenerateWithPrefix(CallPrefix)
}

// Timestamp extracts the creation time from a trace ID. A bare ULID is
// accepted as well.
func Timestamp(value string) (time.Time, error) {
	if i := strings.LastIndexByte(value, '_'); i >= 0 {
		value = value[i+1:]
	}
	parsed, err := ulid.Parse(value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid trace id: %w", err)
	}
	return ulid.Time(parsed.Time()), nil
}
