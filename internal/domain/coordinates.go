package domain

import "fmt"

// Immutable geographic coordinates (latitude, longitude).
type Coordinates struct {
	Lat float64
	Lon float64
}

// Key returns the canonical "latitude,longitude" form with both values
// rounded to 6 fractional digits. Coordinates that agree at this precision
// share one key, which is the deduplication granularity for location
// indexing and the exact string sent to the optimization engine.
func (c Coordinates) Key() string {
	return fmt.Sprintf("%.6f,%.6f", c.Lat, c.Lon)
}
