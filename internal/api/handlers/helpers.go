package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/kwadwoankamah/duesflow/internal/constants"
	"github.com/kwadwoankamah/duesflow/internal/dto"
	svc "github.com/kwadwoankamah/duesflow/internal/services"
)

type envelope map[string]any

func (h *Handlers) writeJSON(w http.ResponseWriter, status int, data interface{}, headers http.Header) error {
	for key, value := range headers {
		w.Header()[key] = value
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(map[string]any{
		"data":   data,
		"status": status,
	}); err != nil {
		return err
	}

	return nil
}

// getMemberFiltersQuery reads the directory view's filter controls. Region
// defaults to the "All Regions" sentinel.
func (h *Handlers) getMemberFiltersQuery(r *http.Request) dto.MemberFilters {
	filters := dto.MemberFilters{Region: constants.AllRegions}

	if v := r.URL.Query().Get("region"); v != "" {
		filters.Region = v
	}
	if v := r.URL.Query().Get("search"); v != "" {
		filters.Search = v
	}

	return filters
}

func (h *Handlers) uuidParam(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		h.errorResponse(w, r, &svc.APIError{
			Status:  http.StatusBadRequest,
			Message: "invalid " + name,
		})
		return uuid.Nil, false
	}
	return id, true
}
