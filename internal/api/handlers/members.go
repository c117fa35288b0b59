package handlers

import (
	"net/http"

	"github.com/kwadwoankamah/duesflow/internal/dto"
	svc "github.com/kwadwoankamah/duesflow/internal/services"
	"github.com/kwadwoankamah/duesflow/internal/services/users"
)

func (h *Handlers) CreateMember(w http.ResponseWriter, r *http.Request) {
	var input dto.MemberDraft
	if !h.decode(w, r, &input) {
		return
	}

	createdMember, err := h.factory.Services.Member.Create(r.Context(), input)
	if err != nil {
		h.errorResponse(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, createdMember, http.Header{})
}

func (h *Handlers) ListMembers(w http.ResponseWriter, r *http.Request) {
	members, err := h.factory.Services.Member.List(r.Context(), h.getMemberFiltersQuery(r))
	if err != nil {
		h.errorResponse(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, dto.ListResponse[dto.Member]{
		Items: members,
		Total: len(members),
	}, http.Header{})
}

func (h *Handlers) GetMember(w http.ResponseWriter, r *http.Request) {
	id, ok := h.uuidParam(w, r, "id")
	if !ok {
		return
	}

	member, err := h.factory.Services.Member.Get(r.Context(), id)
	if err != nil {
		h.errorResponse(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, member, http.Header{})
}

func (h *Handlers) UpdateMember(w http.ResponseWriter, r *http.Request) {
	id, ok := h.uuidParam(w, r, "id")
	if !ok {
		return
	}

	var input dto.UpdateMemberInput
	if !h.decode(w, r, &input) {
		return
	}

	member, err := h.factory.Services.Member.Update(r.Context(), id, input)
	if err != nil {
		h.errorResponse(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, member, http.Header{})
}

func (h *Handlers) DeleteMember(w http.ResponseWriter, r *http.Request) {
	id, ok := h.uuidParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.factory.Services.Member.Delete(r.Context(), id); err != nil {
		h.errorResponse(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, envelope{"message": "member deleted"}, http.Header{})
}

func (h *Handlers) MemberStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.factory.Services.Member.Stats(r.Context())
	if err != nil {
		h.errorResponse(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, stats, http.Header{})
}

// Me returns the calling member's own profile and payment history.
func (h *Handlers) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := users.FromContext(r.Context())
	if !ok || user.MemberID == nil {
		h.errorResponse(w, r, &svc.APIError{
			Status:  http.StatusNotFound,
			Message: "No member profile linked to this account",
		})
		return
	}

	member, err := h.factory.Services.Member.Get(r.Context(), *user.MemberID)
	if err != nil {
		h.errorResponse(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, member, http.Header{})
}

// UpdateMe lets a member edit their own profile. Status changes stay an
// admin-only affair.
func (h *Handlers) UpdateMe(w http.ResponseWriter, r *http.Request) {
	user, ok := users.FromContext(r.Context())
	if !ok || user.MemberID == nil {
		h.errorResponse(w, r, &svc.APIError{
			Status:  http.StatusNotFound,
			Message: "No member profile linked to this account",
		})
		return
	}

	var input dto.UpdateMemberInput
	if !h.decode(w, r, &input) {
		return
	}
	input.Status = nil

	member, err := h.factory.Services.Member.Update(r.Context(), *user.MemberID, input)
	if err != nil {
		h.errorResponse(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, member, http.Header{})
}
