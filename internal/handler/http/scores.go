package http

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/bytehacks/bumblebee_service/internal/errors"
	"github.com/bytehacks/bumblebee_service/internal/repository"
	"github.com/bytehacks/bumblebee_service/internal/service"
	"github.com/bytehacks/bumblebee_service/pkg/response"
)

// ScoresHandler serves the daily score history.
type ScoresHandler struct {
	log          zerolog.Logger
	scoreService *service.ScoreService
}

// NewScoresHandler creates a new ScoresHandler.
func NewScoresHandler(log zerolog.Logger, scoreService *service.ScoreService) *ScoresHandler {
	return &ScoresHandler{
		log:          log,
		scoreService: scoreService,
	}
}

// ScoresResponse wraps the daily score records.
type ScoresResponse struct {
	Scores []repository.DailyScore `json:"scores"`
}

// List handles GET /scores.
func (h *ScoresHandler) List(w http.ResponseWriter, r *http.Request) {
	scores, err := h.scoreService.ListScores(r.Context())
	if err != nil {
		h.handleError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, ScoresResponse{Scores: scores})
}

func (h *ScoresHandler) handleError(w http.ResponseWriter, err error) {
	appErr, ok := err.(*errors.AppError)
	if !ok {
		appErr = errors.Internal("internal server error")
	}
	if appErr.HTTPStatus() >= http.StatusInternalServerError {
		h.log.Error().Err(err).Msg("Failed to serve scores")
	}
	response.Error(w, appErr.HTTPStatus(), appErr.Message)
}
