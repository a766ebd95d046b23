package handlers

import (
	"log"
	"net/http"

	"route-optimizer-service/internal/api/dto"
	"route-optimizer-service/internal/ports"
)

// ResultHandler exposes read-only optimization history retrieval.
type ResultHandler struct {
	Repo ports.ResultRepository
}

func (h *ResultHandler) List(w http.ResponseWriter, r *http.Request) {
	results, err := h.Repo.ListResults(r.Context())
	if err != nil {
		log.Printf("list results failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal_error", "failed to list results")
		return
	}

	res := dto.ListResultsResponse{Results: make([]dto.ResultResponse, 0, len(results))}
	for _, rec := range results {
		res.Results = append(res.Results, dto.ResultResponse{
			ID:        rec.ID,
			Result:    rec.Result,
			CreatedAt: rec.CreatedAt,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
