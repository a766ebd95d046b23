package ports

import (
	"context"
	"encoding/json"
)

// Job entry in the external request body. The location is referenced by its
// position in the request's Locations list, never by raw coordinates.
type RequestJob struct {
	ID            string     `json:"id"`
	LocationIndex int        `json:"location_index"`
	Service       int        `json:"service"`
	TimeWindows   [][2]int64 `json:"time_windows"`
	Amount        []int64    `json:"amount"`
}

// Vehicle entry in the external request body. StartIndex is omitted entirely
// for vehicles without a usable start location; the engine treats those as
// free-starting.
type RequestVehicle struct {
	ID         string   `json:"id"`
	Capacity   []int    `json:"capacity"`
	StartIndex *int     `json:"start_index,omitempty"`
	ShiftTime  [2]int64 `json:"shift_time"`
}

// Engine-level tuning knobs. MaxTasks is omitted when the caller did not
// provide a usable value so the engine stays unconstrained.
type RequestOptions struct {
	MaxWaitingTime int64  `json:"max_waiting_time"`
	MaxTasks       *int64 `json:"max_tasks,omitempty"`
}

// The complete request body accepted by the external optimization engine.
// Locations is the ordered list of unique "latitude,longitude" strings that
// job and vehicle indices refer to.
type OptimizationRequest struct {
	Locations []string         `json:"locations"`
	Jobs      []RequestJob     `json:"jobs"`
	Vehicles  []RequestVehicle `json:"vehicles"`
	Options   RequestOptions   `json:"options"`
}

// Contract for computing routes with the external optimization engine.
type Optimizer interface {
	// Submit the request and block until the engine reports a result or the
	// bounded polling budget is exhausted. Returns the raw result payload.
	Optimize(ctx context.Context, req *OptimizationRequest) (json.RawMessage, error)
}
