package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"route-optimizer-service/internal/adapters/engine"
	"route-optimizer-service/internal/api/dto"
	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/platform/metrics"
	"route-optimizer-service/internal/ports"
	"route-optimizer-service/internal/services"
)

// OptimizeHandler runs the full optimize pipeline: payload translation,
// engine submission with polling, and result persistence.
type OptimizeHandler struct {
	Optimizer ports.Optimizer
	Results   ports.ResultRepository
	Cache     ports.ResultCache // optional
	Metrics   *metrics.Metrics
}

func (h *OptimizeHandler) Optimize(w http.ResponseWriter, r *http.Request) {
	var req dto.OptimizeRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		h.finish(w, r, http.StatusBadRequest, "validation_error", "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		h.finish(w, r, http.StatusBadRequest, "validation_error", "body must contain only one JSON object")
		return
	}

	record, err := services.Optimize(r.Context(), toOptimizeRequest(&req), h.Optimizer, h.Results, h.Cache)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.Metrics.OptimizeRequests.WithLabelValues("ok").Inc()
	writeJSON(w, r, http.StatusOK, dto.ResultResponse{
		ID:        record.ID,
		Result:    record.Result,
		CreatedAt: record.CreatedAt,
	})
}

// fail maps pipeline errors onto the error taxonomy: caller mistakes are
// 400s, engine protocol violations and polling exhaustion are distinct
// 500-class kinds, and store failures after a successful optimization get
// their own kind since retrying the whole call is the only recovery.
func (h *OptimizeHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		h.finish(w, r, http.StatusBadRequest, "validation_error", verr.Detail)
		return
	}

	log.Printf("optimize failed: %v", err)

	switch {
	case errors.Is(err, engine.ErrMissingJobID):
		h.finish(w, r, http.StatusBadGateway, "upstream_protocol_error", "optimization engine returned no job id")
	case errors.Is(err, engine.ErrResultTimeout):
		h.finish(w, r, http.StatusGatewayTimeout, "upstream_timeout_error", "optimization result not ready in time")
	default:
		var perr *domain.PersistenceError
		if errors.As(err, &perr) {
			h.finish(w, r, http.StatusInternalServerError, "persistence_error", "failed to store optimization result")
			return
		}
		h.finish(w, r, http.StatusInternalServerError, "internal_error", "optimization failed")
	}
}

func (h *OptimizeHandler) finish(w http.ResponseWriter, r *http.Request, status int, kind, details string) {
	h.Metrics.OptimizeRequests.WithLabelValues(kind).Inc()
	writeError(w, r, status, kind, details)
}

// toOptimizeRequest converts the lenient inbound payload into the service
// input. Records with unusable coordinates keep a nil location so the
// pipeline can skip them per its own rules.
func toOptimizeRequest(req *dto.OptimizeRequest) services.OptimizeRequest {
	out := services.OptimizeRequest{
		Jobs:     make([]services.OptimizeJob, 0, len(req.Jobs)),
		Vehicles: make([]services.OptimizeVehicle, 0, len(req.Vehicles)),
	}

	for _, j := range req.Jobs {
		out.Jobs = append(out.Jobs, services.OptimizeJob{
			ID:              j.ID,
			Location:        toCoordinates(j.Latitude, j.Longitude),
			ServiceTime:     int(j.ServiceTime.IntOr(0)),
			TimeWindowStart: j.TimeWindowStart.IntOr(0),
			TimeWindowEnd:   j.TimeWindowEnd.IntOr(0),
			Amount:          j.Amount.IntPtr(),
		})
	}

	for _, v := range req.Vehicles {
		out.Vehicles = append(out.Vehicles, services.OptimizeVehicle{
			ID:         v.ID,
			Capacity:   int(v.Capacity.IntOr(0)),
			ShiftStart: v.ShiftStart.IntOr(0),
			ShiftEnd:   v.ShiftEnd.IntOr(0),
			Start:      toCoordinates(v.StartLocationLat, v.StartLocationLon),
		})
	}

	if req.Options != nil {
		out.Options = services.OptimizeOptions{
			MaxWaitingTime: req.Options.MaxWaitingTime.IntPtr(),
			MaxTasks:       req.Options.MaxTasks.IntPtr(),
		}
	}

	return out
}

func toCoordinates(lat, lon dto.Number) *domain.Coordinates {
	if !lat.Valid || !lon.Valid {
		return nil
	}
	return &domain.Coordinates{Lat: lat.Value, Lon: lon.Value}
}
