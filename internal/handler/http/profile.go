package http

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/bytehacks/bumblebee_service/internal/errors"
	"github.com/bytehacks/bumblebee_service/internal/service"
	"github.com/bytehacks/bumblebee_service/pkg/response"
)

// ProfileHandler serves the child personalization profile.
type ProfileHandler struct {
	log            zerolog.Logger
	profileService *service.ProfileService
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(log zerolog.Logger, profileService *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{
		log:            log,
		profileService: profileService,
	}
}

// Get handles GET /profile.
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	profile, err := h.profileService.GetProfile(r.Context())
	if err != nil {
		h.handleError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, profile)
}

func (h *ProfileHandler) handleError(w http.ResponseWriter, err error) {
	appErr, ok := err.(*errors.AppError)
	if !ok {
		appErr = errors.Internal("internal server error")
	}
	if appErr.HTTPStatus() >= http.StatusInternalServerError {
		h.log.Error().Err(err).Msg("Failed to serve profile")
	}
	response.Error(w, appErr.HTTPStatus(), appErr.Message)
}
