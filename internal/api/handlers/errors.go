package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/kwadwoankamah/duesflow/internal/services"
)

func (h *Handlers) logError(r *http.Request, err error) {
	h.factory.Logger.Error().
		Str("path", r.URL.Path).
		Err(err).
		Msg("request_error")
}

func (h *Handlers) errorResponse(w http.ResponseWriter, r *http.Request, message any) {
	env := envelope{"error": message}

	status := http.StatusInternalServerError
	var fieldErrors []services.FieldError
	if apiErr, ok := message.(*services.APIError); ok {
		status = apiErr.Status
		env["error"] = apiErr.Message
		fieldErrors = apiErr.Errors
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	body := map[string]any{
		"message": env["error"],
		"status":  status,
	}
	if len(fieldErrors) > 0 {
		body["errors"] = fieldErrors
	}

	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logError(r, fmt.Errorf("failed to write error response: %w", err))
		return
	}

	if status >= http.StatusInternalServerError {
		h.logError(r, fmt.Errorf("%v", message))
	}
}
