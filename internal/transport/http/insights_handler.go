package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "ratepulse/internal/errors"
	"ratepulse/internal/services"
	apiv1 "ratepulse/pkg/contracts/api/v1"
)

// InsightsHandler handles trend insight requests.
type InsightsHandler struct {
	service      *services.InsightService
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewInsightsHandler creates a new insights handler.
func NewInsightsHandler(service *services.InsightService, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *InsightsHandler {
	return &InsightsHandler{
		service:      service,
		logger:       logger.With(slog.String("handler", "insights")),
		errorHandler: errorHandler,
	}
}

// Routes returns the insight routes.
func (h *InsightsHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/", h.GetInsights)

	return r
}

// GetInsights handles GET /api/insights
func (h *InsightsHandler) GetInsights(w http.ResponseWriter, r *http.Request) {
	city := r.URL.Query().Get("city")

	result, err := h.service.Trends(r.Context(), city)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, apiv1.InsightsResponse{
		Trends:      result.Trends,
		User:        result.User,
		Competitors: result.Competitors,
	})
}
