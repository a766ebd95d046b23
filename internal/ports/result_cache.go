package ports

import (
	"context"
	"encoding/json"
)

// Optional cache of raw engine payloads keyed by a digest of the built
// request body. A cache hit short-circuits the engine round trip but never
// the persistence of a fresh result record.
type ResultCache interface {
	// Look up a cached payload. The second return reports whether a value
	// was present.
	Get(ctx context.Context, key string) (json.RawMessage, bool, error)
	// Store a payload under key, subject to the cache's own TTL policy.
	Put(ctx context.Context, key string, result json.RawMessage) error
}
