package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	apierrors "ratepulse/internal/errors"
	"ratepulse/internal/services"
	apiv1 "ratepulse/pkg/contracts/api/v1"
)

// ComparisonHandler handles comparison and revenue-ranking requests.
type ComparisonHandler struct {
	service      *services.ComparisonService
	validator    *validator.Validate
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewComparisonHandler creates a new comparison handler.
func NewComparisonHandler(service *services.ComparisonService, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *ComparisonHandler {
	return &ComparisonHandler{
		service:      service,
		validator:    newValidator(),
		logger:       logger.With(slog.String("handler", "comparison")),
		errorHandler: errorHandler,
	}
}

// Routes returns the comparison routes.
func (h *ComparisonHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Post("/", h.BuildComparison)
	r.Get("/revenue", h.RevenueRanking)

	return r
}

// BuildComparison handles POST /api/comparison
func (h *ComparisonHandler) BuildComparison(w http.ResponseWriter, r *http.Request) {
	var req apiv1.ComparisonRequest
	if err := decodeAndValidate(r, h.validator, &req); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	result, err := h.service.BuildComparison(r.Context(), services.ComparisonOptions{
		Date:     req.Date,
		Stars:    req.Stars,
		RoomType: req.RoomType,
		City:     req.City,
	})
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, apiv1.ComparisonResponse{
		Date:            result.Date,
		Rows:            result.Rows,
		CompetitorCount: result.CompetitorCount,
		Currency:        result.Currency,
		ExchangeRate:    result.ExchangeRate,
	})
}

// RevenueRanking handles GET /api/comparison/revenue
func (h *ComparisonHandler) RevenueRanking(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := apiv1.RevenueRequest{
		Date: query.Get("date"),
		City: query.Get("city"),
	}
	if err := h.validator.Struct(req); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidationFailed)
		return
	}

	standing, err := h.service.RevenueRanking(r.Context(), services.ComparisonOptions{
		Date: req.Date,
		City: req.City,
	})
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, apiv1.RevenueResponse{
		Date:     req.Date,
		Standing: *standing,
	})
}
