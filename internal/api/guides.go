package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/neexbeast/trip-planner/internal/flash"
	"github.com/neexbeast/trip-planner/internal/guide"
)

const maxUploadBytes = 10 << 20

// ListGuides handles GET /local_guide.
func (h *Handlers) ListGuides(w http.ResponseWriter, r *http.Request) {
	guides, err := h.guides.List(r.Context())
	if err != nil {
		h.log.Error("listing guides failed", "err", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.render(w, http.StatusOK, "local_guide", page{
		Title:   "Local guides",
		Flashes: h.popFlashes(w, r),
		Data:    guides,
	})
}

// AddGuide handles POST /local_guide (multipart form with a photo).
func (h *Handlers) AddGuide(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		h.redirectWithFlash(w, r, "/local_guide", flash.Error("All fields are required."))
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	form := guide.Form{
		Name:            r.PostForm.Get("name"),
		Age:             r.PostForm.Get("age"),
		Gender:          r.PostForm.Get("gender"),
		YearsExperience: r.PostForm.Get("years_experience"),
		City:            r.PostForm.Get("city"),
		CityCondition:   r.PostForm.Get("city_condition"),
	}

	var photo *guide.Photo
	if f, hdr, err := r.FormFile("photo"); err == nil {
		defer f.Close()
		photo = &guide.Photo{Filename: hdr.Filename, Content: f}
	}

	_, err := h.guides.Add(r.Context(), form, photo)
	switch {
	case err == nil:
		h.redirectWithFlash(w, r, "/local_guide", flash.Success("Local guide added successfully!"))
	case errors.Is(err, guide.ErrValidation):
		h.redirectWithFlash(w, r, "/local_guide", flash.Error("All fields are required."))
	case errors.Is(err, guide.ErrFileType):
		h.redirectWithFlash(w, r, "/local_guide", flash.Error("Invalid file type. Allowed types: png, jpg, jpeg, gif."))
	default:
		h.log.Error("adding guide failed", "err", err)
		h.redirectWithFlash(w, r, "/local_guide", flash.Error("Error: could not save the guide."))
	}
}

// UpdateCityCondition handles POST /update_city_condition/{guideID}.
func (h *Handlers) UpdateCityCondition(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "guideID")
	if err := r.ParseForm(); err != nil {
		h.redirectWithFlash(w, r, "/local_guide", flash.Error("All fields are required."))
		return
	}

	err := h.guides.UpdateCityCondition(r.Context(), id, r.PostForm.Get("city_condition"))
	switch {
	case err == nil:
		h.redirectWithFlash(w, r, "/local_guide", flash.Success("City condition updated successfully!"))
	case errors.Is(err, guide.ErrNotFound):
		h.redirectWithFlash(w, r, "/local_guide", flash.Error("Guide not found."))
	case errors.Is(err, guide.ErrValidation):
		h.redirectWithFlash(w, r, "/local_guide", flash.Error("All fields are required."))
	default:
		h.log.Error("updating city condition failed", "guide_id", id, "err", err)
		h.redirectWithFlash(w, r, "/local_guide", flash.Error("Error: could not update the guide."))
	}
}
