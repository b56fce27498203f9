package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	apierrors "ratepulse/internal/errors"
	"ratepulse/internal/exporter"
	"ratepulse/internal/infrastructure"
	"ratepulse/internal/services"
	apiv1 "ratepulse/pkg/contracts/api/v1"
)

// ExportHandler writes comparison reports to the reports directory.
type ExportHandler struct {
	service      *services.ComparisonService
	exporter     *exporter.ComparisonExporter
	metrics      *infrastructure.ComparisonMetrics
	validator    *validator.Validate
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewExportHandler creates a new export handler. metrics may be nil.
func NewExportHandler(service *services.ComparisonService, exp *exporter.ComparisonExporter, metrics *infrastructure.ComparisonMetrics, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *ExportHandler {
	return &ExportHandler{
		service:      service,
		exporter:     exp,
		metrics:      metrics,
		validator:    newValidator(),
		logger:       logger.With(slog.String("handler", "export")),
		errorHandler: errorHandler,
	}
}

// Routes returns the export routes.
func (h *ExportHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Post("/comparison", h.ExportComparison)

	return r
}

// ExportComparison handles POST /api/export/comparison
func (h *ExportHandler) ExportComparison(w http.ResponseWriter, r *http.Request) {
	var req apiv1.ExportComparisonRequest
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

	var path string
	switch req.Format {
	case "xlsx":
		path, err = h.exporter.ExportComparisonXLSX(result.Date, result.Rows)
	default:
		path, err = h.exporter.ExportComparisonCSV(result.Date, result.Rows)
	}
	if err != nil {
		h.logger.ErrorContext(r.Context(), "export failed",
			slog.String("format", req.Format),
			slog.String("error", err.Error()))
		h.errorHandler.HandleError(w, r, apierrors.ExportError(err))
		return
	}

	if h.metrics != nil {
		h.metrics.ExportsTotal.Add(r.Context(), 1)
	}

	render.JSON(w, r, apiv1.ExportResponse{
		Path:   path,
		Format: req.Format,
		Date:   result.Date,
	})
}
