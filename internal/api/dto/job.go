package dto

type JobRequest struct {
	ID              string   `json:"id"`
	Latitude        *float64 `json:"latitude"`
	Longitude       *float64 `json:"longitude"`
	ServiceTime     int      `json:"service_time"`
	TimeWindowStart int64    `json:"time_window_start"`
	TimeWindowEnd   int64    `json:"time_window_end"`
	Amount          *int64   `json:"amount"`
}

type JobResponse struct {
	ID              string   `json:"id"`
	Latitude        *float64 `json:"latitude"`
	Longitude       *float64 `json:"longitude"`
	ServiceTime     int      `json:"service_time"`
	TimeWindowStart int64    `json:"time_window_start"`
	TimeWindowEnd   int64    `json:"time_window_end"`
	Amount          *int64   `json:"amount"`
}

type ListJobsResponse struct {
	Jobs []JobResponse `json:"jobs"`
}
