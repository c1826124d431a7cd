package handlers

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/nijaru/yt-filter/auth"
	"github.com/nijaru/yt-filter/middleware"
	"github.com/nijaru/yt-filter/models"
	"github.com/nijaru/yt-filter/services/preview"
	"github.com/nijaru/yt-filter/validation"
)

type PreviewHandler struct {
	service preview.Service
	logger  *logrus.Logger
}

func NewPreviewHandler(service preview.Service, logger *logrus.Logger) *PreviewHandler {
	return &PreviewHandler{
		service: service,
		logger:  logger,
	}
}

// HandlePreview handles POST /api/preview
func (h *PreviewHandler) HandlePreview(w http.ResponseWriter, r *http.Request) {
	if err := validation.ValidateRequest(r, validation.RequestValidationOpts{
		MaxContentLength: maxBodyBytes,
		AllowedMethods:   []string{http.MethodPost},
		RequireJSON:      true,
	}); err != nil {
		respondError(w, r, err)
		return
	}

	var req models.PreviewRequest
	if err := readJSON(w, r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	result, err := h.service.Preview(r.Context(), auth.FromContext(r.Context()), req)
	if err != nil {
		respondError(w, r, err)
		return
	}

	middleware.GetLogger(r.Context()).WithFields(logrus.Fields{
		"youtube_id":  result.YouTubeID,
		"status":      result.Status,
		"credit_cost": result.CreditCost,
		"cached":      result.Cached,
	}).Info("Preview served")

	respondJSON(w, r, http.StatusOK, result)
}
