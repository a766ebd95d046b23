package domain

// Represents a single delivery/service task handled by the system.
// A Job has a caller-supplied identifier, an optional location, a service
// duration, a delivery time window and an optional demand amount.
// Coordinates may be absent in storage; such jobs are excluded from
// optimization but remain listable and deletable.
type Job struct {
	ID              string
	Latitude        *float64
	Longitude       *float64
	ServiceTime     int
	TimeWindowStart int64
	TimeWindowEnd   int64
	Amount          *int64
}

// Location returns the job's coordinates, or nil when either component
// is missing.
func (j *Job) Location() *Coordinates {
	if j.Latitude == nil || j.Longitude == nil {
		return nil
	}
	return &Coordinates{Lat: *j.Latitude, Lon: *j.Longitude}
}
