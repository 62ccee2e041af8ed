package api

import (
	"net/http"

	"github.com/vytor/studyflash/internal/logger"
)

type createProfileRequest struct {
	Username    string `json:"username" validate:"required,max=64"`
	DisplayName string `json:"display_name" validate:"max=100"`
}

type updateProfileRequest struct {
	DisplayName string `json:"display_name" validate:"max=100"`
}

func (s *Server) handleListProfiles(w http.ResponseWriter, r *http.Request) {
	profiles, err := s.ProfileService.ListProfiles(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, profiles)
}

// handleCreateProfile also selects the profile through the profile cookie.
func (s *Server) handleCreateProfile(w http.ResponseWriter, r *http.Request) {
	var req createProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	profile, err := s.ProfileService.CreateProfile(r.Context(), req.Username, req.DisplayName)
	if err != nil {
		handleError(w, r, err)
		return
	}

	logger.FromContext(r.Context()).Info("profile ready: id=%d, username=%s", profile.ID, profile.Username)
	setProfileCookie(w, profile.ID)
	writeJSON(w, r, http.StatusCreated, profile)
}

func (s *Server) handleCurrentProfile(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, profileFromContext(r.Context()))
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req updateProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	profile, err := s.ProfileService.UpdateDisplayName(r.Context(), profileFromContext(r.Context()).ID, req.DisplayName)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, profile)
}

func (s *Server) handleDeleteProfile(w http.ResponseWriter, r *http.Request) {
	id := profileFromContext(r.Context()).ID
	if err := s.ProfileService.DeleteProfile(r.Context(), id); err != nil {
		handleError(w, r, err)
		return
	}
	if s.GenerationLimiter != nil {
		s.GenerationLimiter.Forget(id)
	}
	clearProfileCookie(w)
	w.WriteHeader(http.StatusNoContent)
}
