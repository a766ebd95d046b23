package domain

// Represents a delivery resource with a fixed capacity and a working-time
// window. A Vehicle may be anchored to a start location; without one it is
// still a valid optimization vehicle, just with no fixed starting point.
type Vehicle struct {
	ID               string
	Capacity         int
	ShiftStart       int64
	ShiftEnd         int64
	StartLocationLat *float64
	StartLocationLon *float64
}

// StartLocation returns the vehicle's start coordinates, or nil when either
// component is missing.
func (v *Vehicle) StartLocation() *Coordinates {
	if v.StartLocationLat == nil || v.StartLocationLon == nil {
		return nil
	}
	return &Coordinates{Lat: *v.StartLocationLat, Lon: *v.StartLocationLon}
}
