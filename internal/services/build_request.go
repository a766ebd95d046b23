package services

import (
	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/ports"
)

// defaultMaxWaitingTime is applied when the caller provides no usable
// max_waiting_time, in seconds.
const defaultMaxWaitingTime = 300

// OptimizeJob is one raw job record as submitted to the optimize endpoint.
// Location is nil when the caller sent missing or non-numeric coordinates;
// such jobs are excluded from the external payload without failing the
// request. Amount is nil when absent.
type OptimizeJob struct {
	ID              string
	Location        *domain.Coordinates
	ServiceTime     int
	TimeWindowStart int64
	TimeWindowEnd   int64
	Amount          *int64
}

// OptimizeVehicle is one raw vehicle record as submitted to the optimize
// endpoint. Start is nil when the caller sent missing or non-numeric start
// coordinates; the vehicle stays in the payload without a start index.
type OptimizeVehicle struct {
	ID         string
	Capacity   int
	ShiftStart int64
	ShiftEnd   int64
	Start      *domain.Coordinates
}

// OptimizeOptions are the caller-supplied engine knobs. Nil fields mean
// "not provided".
type OptimizeOptions struct {
	MaxWaitingTime *int64
	MaxTasks       *int64
}

// OptimizeRequest is the raw input of one optimize call.
type OptimizeRequest struct {
	Jobs     []OptimizeJob
	Vehicles []OptimizeVehicle
	Options  OptimizeOptions
}

// buildOptimizationRequest translates raw jobs, vehicles and options into
// the external engine's request body using the coordinate table from
// buildLocationIndex. Jobs whose coordinates were never indexed are skipped;
// the request only fails when nothing transformable remains.
func buildOptimizationRequest(req OptimizeRequest, li *locationIndex) (*ports.OptimizationRequest, error) {
	jobs := make([]ports.RequestJob, 0, len(req.Jobs))
	for _, j := range req.Jobs {
		if j.Location == nil {
			continue
		}
		idx, ok := li.lookup(*j.Location)
		if !ok {
			continue
		}

		amount := int64(0)
		if j.Amount != nil {
			amount = *j.Amount
		}

		jobs = append(jobs, ports.RequestJob{
			ID:            j.ID,
			LocationIndex: idx,
			Service:       j.ServiceTime,
			TimeWindows:   [][2]int64{{j.TimeWindowStart, j.TimeWindowEnd}},
			Amount:        []int64{amount},
		})
	}

	if len(jobs) == 0 {
		return nil, &domain.ValidationError{Detail: "no jobs with valid coordinates to optimize"}
	}

	vehicles := make([]ports.RequestVehicle, 0, len(req.Vehicles))
	for _, v := range req.Vehicles {
		rv := ports.RequestVehicle{
			ID:        v.ID,
			Capacity:  []int{v.Capacity},
			ShiftTime: [2]int64{v.ShiftStart, v.ShiftEnd},
		}

		// A missing or unparseable start location is not an error: the
		// vehicle simply has no fixed starting point. It must never fall
		// back to index 0.
		if v.Start != nil {
			if idx, ok := li.lookup(*v.Start); ok {
				rv.StartIndex = &idx
			}
		}

		vehicles = append(vehicles, rv)
	}

	options := ports.RequestOptions{MaxWaitingTime: defaultMaxWaitingTime}
	if req.Options.MaxWaitingTime != nil {
		options.MaxWaitingTime = *req.Options.MaxWaitingTime
	}
	if req.Options.MaxTasks != nil {
		options.MaxTasks = req.Options.MaxTasks
	}

	return &ports.OptimizationRequest{
		Locations: li.locations(),
		Jobs:      jobs,
		Vehicles:  vehicles,
		Options:   options,
	}, nil
}
