package handlers

import (
	"net/http"

	"github.com/kwadwoankamah/duesflow/internal/dto"
)

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var input dto.LoginInput
	if !h.decodeAndValidate(w, r, &input) {
		return
	}

	authResponse, err := h.factory.Services.User.Login(r.Context(), &input)
	if err != nil {
		h.errorResponse(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, authResponse, http.Header{})
}

func (h *Handlers) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var input dto.RefreshInput
	if !h.decodeAndValidate(w, r, &input) {
		return
	}

	authResponse, err := h.factory.Services.User.Refresh(r.Context(), &input)
	if err != nil {
		h.errorResponse(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, authResponse, http.Header{})
}

// Logout acknowledges the client discarding its tokens. Nothing is tracked
// server-side for the short-lived pairs this service issues.
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, envelope{"message": "logged out"}, http.Header{})
}
