package domain

import (
	"encoding/json"
	"time"
)

// Represents one stored optimization outcome. The payload is kept verbatim
// as returned by the external engine and is immutable once stored; only the
// identifier and creation timestamp are generated locally.
type OptimizationResult struct {
	ID        string
	Result    json.RawMessage
	CreatedAt time.Time
}
