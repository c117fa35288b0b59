package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/kwadwoankamah/duesflow/internal/dto"
	svc "github.com/kwadwoankamah/duesflow/internal/services"
	"github.com/kwadwoankamah/duesflow/pkg/imagestore"
)

// UploadImage accepts a multipart profile picture and returns its reference.
// The 5MB cap is enforced here and again by the store.
func (h *Handlers) UploadImage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, imagestore.MaxImageSize+4096)

	if err := r.ParseMultipartForm(imagestore.MaxImageSize); err != nil {
		h.errorResponse(w, r, &svc.APIError{
			Status:  http.StatusRequestEntityTooLarge,
			Message: "Image must be less than 5MB",
		})
		return
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		h.errorResponse(w, r, &svc.APIError{
			Status:  http.StatusBadRequest,
			Message: "image file is required",
		})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.errorResponse(w, r, err)
		return
	}

	img, err := h.factory.Images.Put(data)
	if err != nil {
		switch {
		case errors.Is(err, imagestore.ErrTooLarge):
			h.errorResponse(w, r, &svc.APIError{
				Status:  http.StatusRequestEntityTooLarge,
				Message: "Image must be less than 5MB",
			})
		case errors.Is(err, imagestore.ErrNotImage):
			h.errorResponse(w, r, &svc.APIError{
				Status:  http.StatusBadRequest,
				Message: "uploaded file is not an image",
			})
		default:
			h.errorResponse(w, r, err)
		}
		return
	}

	h.writeJSON(w, http.StatusCreated, dto.ImageUploadResponse{
		ID:  img.ID,
		URL: fmt.Sprintf("/api/v1/images/%s", img.ID),
	}, http.Header{})
}

func (h *Handlers) GetImage(w http.ResponseWriter, r *http.Request) {
	id, ok := h.uuidParam(w, r, "id")
	if !ok {
		return
	}

	img, err := h.factory.Images.Get(id)
	if err != nil {
		h.errorResponse(w, r, &svc.APIError{
			Status:  http.StatusNotFound,
			Message: "Image not found",
		})
		return
	}

	w.Header().Set("Content-Type", img.ContentType)
	w.WriteHeader(http.StatusOK)
	w.Write(img.Data)
}
