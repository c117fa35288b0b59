package handlers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/kwadwoankamah/duesflow/internal/dto"
	svc "github.com/kwadwoankamah/duesflow/internal/services"
	"github.com/kwadwoankamah/duesflow/internal/services/users"
)

// StartPayment opens a payment session for the member in the URL
// (admin-side record-payment modal).
func (h *Handlers) StartPayment(w http.ResponseWriter, r *http.Request) {
	memberID, ok := h.uuidParam(w, r, "id")
	if !ok {
		return
	}

	session, err := h.factory.Services.Payments.Start(r.Context(), memberID)
	if err != nil {
		h.errorResponse(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, session, http.Header{})
}

// StartMyPayment opens a payment session for the calling member's own dues.
func (h *Handlers) StartMyPayment(w http.ResponseWriter, r *http.Request) {
	user, ok := users.FromContext(r.Context())
	if !ok || user.MemberID == nil {
		h.errorResponse(w, r, &svc.APIError{
			Status:  http.StatusNotFound,
			Message: "No member profile linked to this account",
		})
		return
	}

	session, err := h.factory.Services.Payments.Start(r.Context(), *user.MemberID)
	if err != nil {
		h.errorResponse(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, session, http.Header{})
}

// sessionAccess rejects callers acting on a payment session for a member
// that is not theirs. Admins may act on any session.
func (h *Handlers) sessionAccess(w http.ResponseWriter, r *http.Request, sessionID uuid.UUID) bool {
	user, ok := users.FromContext(r.Context())
	if !ok {
		h.errorResponse(w, r, &svc.APIError{
			Status:  http.StatusUnauthorized,
			Message: "Unauthorized",
		})
		return false
	}
	if user.IsAdmin() {
		return true
	}

	memberID, open := h.factory.Services.Payments.MemberForSession(sessionID)
	if !open {
		h.errorResponse(w, r, &svc.APIError{
			Status:  http.StatusNotFound,
			Message: "Payment session not found",
		})
		return false
	}
	if user.MemberID == nil || *user.MemberID != memberID {
		h.errorResponse(w, r, &svc.APIError{
			Status:  http.StatusForbidden,
			Message: "You don't have permission to access this resource",
		})
		return false
	}
	return true
}

func (h *Handlers) SubmitPayment(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.uuidParam(w, r, "sessionID")
	if !ok {
		return
	}
	if !h.sessionAccess(w, r, sessionID) {
		return
	}

	var input dto.PaymentDraft
	if !h.decode(w, r, &input) {
		return
	}

	session, err := h.factory.Services.Payments.Submit(r.Context(), sessionID, input)
	if err != nil {
		h.errorResponse(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, session, http.Header{})
}

func (h *Handlers) ConfirmPayment(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.uuidParam(w, r, "sessionID")
	if !ok {
		return
	}
	if !h.sessionAccess(w, r, sessionID) {
		return
	}

	session, err := h.factory.Services.Payments.Confirm(r.Context(), sessionID)
	if err != nil {
		h.errorResponse(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, session, http.Header{})
}

func (h *Handlers) GetPayment(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.uuidParam(w, r, "sessionID")
	if !ok {
		return
	}
	if !h.sessionAccess(w, r, sessionID) {
		return
	}

	session, err := h.factory.Services.Payments.Get(r.Context(), sessionID)
	if err != nil {
		h.errorResponse(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, session, http.Header{})
}

func (h *Handlers) CancelPayment(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.uuidParam(w, r, "sessionID")
	if !ok {
		return
	}
	if !h.sessionAccess(w, r, sessionID) {
		return
	}

	if err := h.factory.Services.Payments.Cancel(r.Context(), sessionID); err != nil {
		h.errorResponse(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, envelope{"message": "payment cancelled"}, http.Header{})
}
