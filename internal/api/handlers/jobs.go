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

// JobHandler exposes the job CRUD endpoints.
type JobHandler struct {
	Repo ports.JobRepository
}

func (h *JobHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.JobRequest

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

	if detail := validateJob(&req); detail != "" {
		writeError(w, r, http.StatusBadRequest, "validation_error", detail)
		return
	}

	job := &domain.Job{
		ID:              strings.TrimSpace(req.ID),
		Latitude:        req.Latitude,
		Longitude:       req.Longitude,
		ServiceTime:     req.ServiceTime,
		TimeWindowStart: req.TimeWindowStart,
		TimeWindowEnd:   req.TimeWindowEnd,
		Amount:          req.Amount,
	}

	stored, err := h.Repo.CreateJob(r.Context(), job)
	if err != nil {
		log.Printf("create job failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal_error", "failed to create job")
		return
	}

	writeJSON(w, r, http.StatusCreated, jobResponse(stored))
}

func (h *JobHandler) List(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.Repo.ListJobs(r.Context())
	if err != nil {
		log.Printf("list jobs failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal_error", "failed to list jobs")
		return
	}

	res := dto.ListJobsResponse{Jobs: make([]dto.JobResponse, 0, len(jobs))}
	for _, j := range jobs {
		res.Jobs = append(res.Jobs, jobResponse(j))
	}

	writeJSON(w, r, http.StatusOK, res)
}

func (h *JobHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if strings.TrimSpace(id) == "" {
		writeError(w, r, http.StatusBadRequest, "validation_error", "job id is required")
		return
	}

	if err := h.Repo.DeleteJob(r.Context(), id); err != nil {
		log.Printf("delete job failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal_error", "failed to delete job")
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]string{"message": "Job deleted"})
}

// validateJob returns the first violated constraint, or "".
func validateJob(req *dto.JobRequest) string {
	if strings.TrimSpace(req.ID) == "" {
		return "id is required"
	}
	if req.ServiceTime < 0 {
		return "service_time must be non-negative"
	}
	if req.TimeWindowStart > req.TimeWindowEnd {
		return "time_window_start must not exceed time_window_end"
	}
	if req.Amount != nil && *req.Amount < 0 {
		return "amount must be non-negative"
	}
	// Coordinates may be absent (the job is stored but skipped by
	// optimization), but a half-specified pair is a caller mistake.
	if (req.Latitude == nil) != (req.Longitude == nil) {
		return "latitude and longitude must be provided together"
	}
	return ""
}

func jobResponse(j *domain.Job) dto.JobResponse {
	return dto.JobResponse{
		ID:              j.ID,
		Latitude:        j.Latitude,
		Longitude:       j.Longitude,
		ServiceTime:     j.ServiceTime,
		TimeWindowStart: j.TimeWindowStart,
		TimeWindowEnd:   j.TimeWindowEnd,
		Amount:          j.Amount,
	}
}
