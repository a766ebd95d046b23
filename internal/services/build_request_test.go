package services

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"route-optimizer-service/internal/domain"
)

func i64(v int64) *int64 { return &v }

func TestBuildOptimizationRequestExample(t *testing.T) {
	req := OptimizeRequest{
		Jobs: []OptimizeJob{{
			ID:              "j1",
			Location:        coords(13.7563, 100.5018),
			ServiceTime:     300,
			TimeWindowStart: 0,
			TimeWindowEnd:   3600,
		}},
		Vehicles: []OptimizeVehicle{{
			ID:         "v1",
			Capacity:   100,
			ShiftStart: 0,
			ShiftEnd:   7200,
		}},
	}

	li, err := buildLocationIndex(req.Jobs, req.Vehicles)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	body, err := buildOptimizationRequest(req, li)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(body.Locations) != 1 || body.Locations[0] != "13.756300,100.501800" {
		t.Fatalf("locations = %v, want [13.756300,100.501800]", body.Locations)
	}

	if len(body.Jobs) != 1 {
		t.Fatalf("expected 1 job, got %d", len(body.Jobs))
	}
	j := body.Jobs[0]
	if j.ID != "j1" || j.LocationIndex != 0 || j.Service != 300 {
		t.Fatalf("job = %+v", j)
	}
	if len(j.TimeWindows) != 1 || j.TimeWindows[0] != [2]int64{0, 3600} {
		t.Fatalf("time windows = %v, want [[0 3600]]", j.TimeWindows)
	}
	if len(j.Amount) != 1 || j.Amount[0] != 0 {
		t.Fatalf("amount = %v, want [0] for absent amount", j.Amount)
	}

	if len(body.Vehicles) != 1 {
		t.Fatalf("expected 1 vehicle, got %d", len(body.Vehicles))
	}
	v := body.Vehicles[0]
	if v.ID != "v1" || len(v.Capacity) != 1 || v.Capacity[0] != 100 {
		t.Fatalf("vehicle = %+v", v)
	}
	if v.StartIndex != nil {
		t.Fatalf("vehicle without start location got start_index %d", *v.StartIndex)
	}
	if v.ShiftTime != [2]int64{0, 7200} {
		t.Fatalf("shift_time = %v, want [0 7200]", v.ShiftTime)
	}

	if body.Options.MaxWaitingTime != 300 {
		t.Fatalf("max_waiting_time = %d, want default 300", body.Options.MaxWaitingTime)
	}
	if body.Options.MaxTasks != nil {
		t.Fatalf("max_tasks = %d, want omitted", *body.Options.MaxTasks)
	}
}

func TestBuildOptimizationRequestSkipsUnindexedJobs(t *testing.T) {
	req := OptimizeRequest{
		Jobs: []OptimizeJob{
			{ID: "j1", Location: coords(1, 1), Amount: i64(5)},
			{ID: "j2"}, // dropped: no coordinates
		},
		Vehicles: []OptimizeVehicle{{ID: "v1", Capacity: 10}},
	}

	li, err := buildLocationIndex(req.Jobs, req.Vehicles)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	body, err := buildOptimizationRequest(req, li)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(body.Jobs) != 1 || body.Jobs[0].ID != "j1" {
		t.Fatalf("jobs = %+v, want only j1", body.Jobs)
	}
	if body.Jobs[0].Amount[0] != 5 {
		t.Fatalf("amount = %v, want [5]", body.Jobs[0].Amount)
	}
}

func TestBuildOptimizationRequestVehicleStartIndex(t *testing.T) {
	req := OptimizeRequest{
		Jobs: []OptimizeJob{{ID: "j1", Location: coords(1, 1)}},
		Vehicles: []OptimizeVehicle{
			{ID: "v1", Capacity: 10, Start: coords(2, 2)},
			{ID: "v2", Capacity: 10},
		},
	}

	li, err := buildLocationIndex(req.Jobs, req.Vehicles)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	body, err := buildOptimizationRequest(req, li)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if body.Vehicles[0].StartIndex == nil || *body.Vehicles[0].StartIndex != 1 {
		t.Fatalf("v1 start_index = %v, want 1", body.Vehicles[0].StartIndex)
	}
	if body.Vehicles[1].StartIndex != nil {
		t.Fatalf("v2 start_index = %d, want nil (never a fallback of 0)", *body.Vehicles[1].StartIndex)
	}
}

func TestBuildOptimizationRequestOptions(t *testing.T) {
	req := OptimizeRequest{
		Jobs:     []OptimizeJob{{ID: "j1", Location: coords(1, 1)}},
		Vehicles: []OptimizeVehicle{{ID: "v1", Capacity: 10}},
		Options:  OptimizeOptions{MaxWaitingTime: i64(600), MaxTasks: i64(4)},
	}

	li, err := buildLocationIndex(req.Jobs, req.Vehicles)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	body, err := buildOptimizationRequest(req, li)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if body.Options.MaxWaitingTime != 600 {
		t.Fatalf("max_waiting_time = %d, want 600", body.Options.MaxWaitingTime)
	}
	if body.Options.MaxTasks == nil || *body.Options.MaxTasks != 4 {
		t.Fatalf("max_tasks = %v, want 4", body.Options.MaxTasks)
	}
}

func TestBuildOptimizationRequestOmitsMaxTasksFromJSON(t *testing.T) {
	req := OptimizeRequest{
		Jobs:     []OptimizeJob{{ID: "j1", Location: coords(1, 1)}},
		Vehicles: []OptimizeVehicle{{ID: "v1", Capacity: 10}},
	}

	li, err := buildLocationIndex(req.Jobs, req.Vehicles)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	body, err := buildOptimizationRequest(req, li)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	if strings.Contains(string(payload), "max_tasks") {
		t.Fatalf("payload should omit max_tasks entirely: %s", payload)
	}
}

func TestBuildOptimizationRequestNoTransformableJobs(t *testing.T) {
	// The only indexed coordinate belongs to a vehicle, so the transformed
	// job list ends up empty.
	req := OptimizeRequest{
		Jobs:     []OptimizeJob{{ID: "j1"}},
		Vehicles: []OptimizeVehicle{{ID: "v1", Capacity: 10, Start: coords(1, 1)}},
	}

	li, err := buildLocationIndex(req.Jobs, req.Vehicles)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = buildOptimizationRequest(req, li)
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("error = %v, want ValidationError", err)
	}
}
