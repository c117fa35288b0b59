package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	svc "github.com/kwadwoankamah/duesflow/internal/services"
)

func (h *Handlers) decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, 1048576)

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		h.errorResponse(w, r, &svc.APIError{
			Status:  http.StatusBadRequest,
			Message: fmt.Sprintf("invalid request body: %v", err),
		})
		return false
	}

	if err := h.factory.Validator.Struct(dst); err != nil {
		h.errorResponse(w, r, &svc.APIError{
			Status:  http.StatusBadRequest,
			Message: "Input validation failed",
			Errors:  h.factory.Validator.Translate(err),
		})
		return false
	}

	return true
}

// decode reads a body without running struct validation, for drafts that go
// through the validation module's field-keyed path instead.
func (h *Handlers) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, 1048576)

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		h.errorResponse(w, r, &svc.APIError{
			Status:  http.StatusBadRequest,
			Message: fmt.Sprintf("invalid request body: %v", err),
		})
		return false
	}
	return true
}
