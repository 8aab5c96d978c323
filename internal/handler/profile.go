package handler

import (
	"net/http"

	"github.com/fyzahq/fyza/internal/model"
	"github.com/fyzahq/fyza/internal/service"
)

type ProfileHandler struct {
	profileService *service.ProfileService
}

func NewProfileHandler(profileService *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
	}
}

func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt64(r, "user_id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	profile, err := h.profileService.ByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

func (h *ProfileHandler) Create(w http.ResponseWriter, r *http.Request) {
	var profile model.Profile
	err := decodeJSON(w, r, &profile)
	if err != nil {
		writeError(w, r, err)
		return
	}

	err = h.profileService.Create(r.Context(), &profile)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, profile)
}

func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt64(r, "user_id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var profile model.Profile
	err = decodeJSON(w, r, &profile)
	if err != nil {
		writeError(w, r, err)
		return
	}

	err = h.profileService.Update(r.Context(), id, &profile)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, profile)
}
