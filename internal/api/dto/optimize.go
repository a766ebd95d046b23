package dto

// OptimizeRequest is the inbound optimize payload. Numeric fields use the
// lenient Number type: individual records with unusable coordinates are
// skipped downstream rather than rejecting the whole request.
type OptimizeRequest struct {
	Jobs     []OptimizeJobRequest     `json:"jobs"`
	Vehicles []OptimizeVehicleRequest `json:"vehicles"`
	Options  *OptimizeOptionsRequest  `json:"options"`
}

type OptimizeJobRequest struct {
	ID              string `json:"id"`
	Latitude        Number `json:"latitude"`
	Longitude       Number `json:"longitude"`
	ServiceTime     Number `json:"service_time"`
	TimeWindowStart Number `json:"time_window_start"`
	TimeWindowEnd   Number `json:"time_window_end"`
	Amount          Number `json:"amount"`
}

type OptimizeVehicleRequest struct {
	ID               string `json:"id"`
	Capacity         Number `json:"capacity"`
	ShiftStart       Number `json:"shift_start"`
	ShiftEnd         Number `json:"shift_end"`
	StartLocationLat Number `json:"start_location_lat"`
	StartLocationLon Number `json:"start_location_lon"`
}

type OptimizeOptionsRequest struct {
	MaxWaitingTime Number `json:"max_waiting_time"`
	MaxTasks       Number `json:"max_tasks"`
}
