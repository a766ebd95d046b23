package dto

type VehicleRequest struct {
	ID               string   `json:"id"`
	Capacity         int      `json:"capacity"`
	ShiftStart       int64    `json:"shift_start"`
	ShiftEnd         int64    `json:"shift_end"`
	StartLocationLat *float64 `json:"start_location_lat"`
	StartLocationLon *float64 `json:"start_location_lon"`
}

type VehicleResponse struct {
	ID               string   `json:"id"`
	Capacity         int      `json:"capacity"`
	ShiftStart       int64    `json:"shift_start"`
	ShiftEnd         int64    `json:"shift_end"`
	StartLocationLat *float64 `json:"start_location_lat"`
	StartLocationLon *float64 `json:"start_location_lon"`
}

type ListVehiclesResponse struct {
	Vehicles []VehicleResponse `json:"vehicles"`
}
