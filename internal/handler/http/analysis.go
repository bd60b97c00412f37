package http

import (
	"io"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/bytehacks/bumblebee_service/internal/errors"
	"github.com/bytehacks/bumblebee_service/internal/service"
	"github.com/bytehacks/bumblebee_service/pkg/response"
)

// AnalysisHandler handles the pronunciation analysis endpoint.
type AnalysisHandler struct {
	log             zerolog.Logger
	analysisService *service.AnalysisService
	maxUploadSize   int64
}

// NewAnalysisHandler creates a new AnalysisHandler.
func NewAnalysisHandler(log zerolog.Logger, analysisService *service.AnalysisService, maxUploadSize int64) *AnalysisHandler {
	return &AnalysisHandler{
		log:             log,
		analysisService: analysisService,
		maxUploadSize:   maxUploadSize,
	}
}

// Analyze handles POST /analyze.
// Accepts a multipart form with a "transcript" text field and an "audio" file field.
func (h *AnalysisHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)

	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		h.handleError(w, errors.Validation("invalid multipart form"))
		return
	}

	transcript := r.FormValue("transcript")
	if transcript == "" {
		h.handleError(w, errors.Validation("No transcript provided"))
		return
	}

	// A file input submitted with no file chosen arrives as a value part with
	// an empty filename, so it never shows up under MultipartForm.File.
	headers := r.MultipartForm.File["audio"]
	if len(headers) == 0 {
		if _, ok := r.MultipartForm.Value["audio"]; ok {
			h.handleError(w, errors.Validation("No audio file selected"))
		} else {
			h.handleError(w, errors.Validation("No audio file provided"))
		}
		return
	}

	file, err := headers[0].Open()
	if err != nil {
		h.handleError(w, errors.Validation("failed to open audio file"))
		return
	}
	defer file.Close()

	clip, err := io.ReadAll(file)
	if err != nil {
		h.handleError(w, errors.Validation("failed to read audio file"))
		return
	}

	result, err := h.analysisService.Analyze(r.Context(), transcript, clip)
	if err != nil {
		h.handleError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, result)
}

func (h *AnalysisHandler) handleError(w http.ResponseWriter, err error) {
	appErr, ok := err.(*errors.AppError)
	if !ok {
		appErr = errors.Internal("internal server error")
	}
	if appErr.HTTPStatus() >= http.StatusInternalServerError {
		h.log.Error().Err(err).Msg("Analysis failed")
	}
	response.Error(w, appErr.HTTPStatus(), appErr.Message)
}
