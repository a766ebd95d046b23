package handlers

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strings"

	"route-optimizer-service/internal/api/dto"
	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/ports"
)

// VehicleHandler exposes the vehicle CRUD endpoints.
type VehicleHandler struct {
	Repo ports.VehicleRepository
}

func (h *VehicleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.VehicleRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "validation_error", "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "validation_error", "body must contain only one JSON object")
		return
	}

	if detail := validateVehicle(&req); detail != "" {
		writeError(w, r, http.StatusBadRequest, "validation_error", detail)
		return
	}

	vehicle := &domain.Vehicle{
		ID:               strings.TrimSpace(req.ID),
		Capacity:         req.Capacity,
		ShiftStart:       req.ShiftStart,
		ShiftEnd:         req.ShiftEnd,
		StartLocationLat: req.StartLocationLat,
		StartLocationLon: req.StartLocationLon,
	}

	stored, err := h.Repo.CreateVehicle(r.Context(), vehicle)
	if err != nil {
		log.Printf("create vehicle failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal_error", "failed to create vehicle")
		return
	}

	writeJSON(w, r, http.StatusCreated, vehicleResponse(stored))
}

func (h *VehicleHandler) List(w http.ResponseWriter, r *http.Request) {
	vehicles, err := h.Repo.ListVehicles(r.Context())
	if err != nil {
		log.Printf("list vehicles failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal_error", "failed to list vehicles")
		return
	}

	res := dto.ListVehiclesResponse{Vehicles: make([]dto.VehicleResponse, 0, len(vehicles))}
	for _, v := range vehicles {
		res.Vehicles = append(res.Vehicles, vehicleResponse(v))
	}

	writeJSON(w, r, http.StatusOK, res)
}

func (h *VehicleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if strings.TrimSpace(id) == "" {
		writeError(w, r, http.StatusBadRequest, "validation_error", "vehicle id is required")
		return
	}

	if err := h.Repo.DeleteVehicle(r.Context(), id); err != nil {
		log.Printf("delete vehicle failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal_error", "failed to delete vehicle")
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]string{"message": "Vehicle deleted"})
}

// validateVehicle returns the first violated constraint, or "".
func validateVehicle(req *dto.VehicleRequest) string {
	if strings.TrimSpace(req.ID) == "" {
		return "id is required"
	}
	if req.Capacity <= 0 {
		return "capacity must be positive"
	}
	if req.ShiftStart > req.ShiftEnd {
		return "shift_start must not exceed shift_end"
	}
	if (req.StartLocationLat == nil) != (req.StartLocationLon == nil) {
		return "start_location_lat and start_location_lon must be provided together"
	}
	return ""
}

func vehicleResponse(v *domain.Vehicle) dto.VehicleResponse {
	return dto.VehicleResponse{
		ID:               v.ID,
		Capacity:         v.Capacity,
		ShiftStart:       v.ShiftStart,
		ShiftEnd:         v.ShiftEnd,
		StartLocationLat: v.StartLocationLat,
		StartLocationLon: v.StartLocationLon,
	}
}
