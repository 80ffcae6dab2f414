// Package http contains the chi HTTP handlers for the scan API.
package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	apierrors "leadpulse/internal/errors"
	"leadpulse/internal/middleware"
	"leadpulse/internal/services"
)

// ScanHandler handles agent scan HTTP requests.
type ScanHandler struct {
	service      *services.ScanService
	validate     *validator.Validate
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewScanHandler creates a new scan handler.
func NewScanHandler(service *services.ScanService, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *ScanHandler {
	return &ScanHandler{
		service:      service,
		validate:     validator.New(),
		logger:       logger.With(slog.String("component", "scan_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the scan routes.
func (h *ScanHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Post("/", h.ScanSimple)
	r.Post("/elite", h.ScanElite)

	return r
}

// ScanSimple handles POST /api/scan: the frustration pipeline.
func (h *ScanHandler) ScanSimple(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req services.ScanRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrInvalidRequest)
		return
	}
	if apiErr := h.validateRequest(req); apiErr != nil {
		h.errorHandler.HandleError(w, r, apiErr)
		return
	}

	h.logger.InfoContext(ctx, "starting simple scan",
		slog.String("request_id", middleware.GetReqID(ctx)),
		slog.String("zip_code", req.ZipCode),
		slog.Int("tag_filters", len(req.TagFilters)),
	)

	result, err := h.service.ScanSimple(ctx, req)
	if err != nil {
		h.errorHandler.HandleError(w, r, h.mapServiceError(err))
		return
	}

	render.JSON(w, r, result)
}

// ScanElite handles POST /api/scan/elite: the wholesale/investment pipeline.
func (h *ScanHandler) ScanElite(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req services.EliteScanRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrInvalidRequest)
		return
	}
	if apiErr := h.validateRequest(req); apiErr != nil {
		h.errorHandler.HandleError(w, r, apiErr)
		return
	}

	h.logger.InfoContext(ctx, "starting elite scan",
		slog.String("request_id", middleware.GetReqID(ctx)),
		slog.String("zip_code", req.ZipCode),
		slog.String("preset", req.Preset),
	)

	result, err := h.service.ScanElite(ctx, req)
	if err != nil {
		h.errorHandler.HandleError(w, r, h.mapServiceError(err))
		return
	}

	render.JSON(w, r, result)
}

// AgentActivity handles GET /api/agents/activity?zip=NNNNN, a diagnostic
// surface over the provider's raw agent-activity extractor.
func (h *ScanHandler) AgentActivity(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	zip := r.URL.Query().Get("zip")
	if zip == "" {
		h.errorHandler.HandleError(w, r, apierrors.ErrZipCodeRequired)
		return
	}

	rows, err := h.service.AgentActivity(ctx, zip)
	if err != nil {
		h.errorHandler.HandleError(w, r, h.mapServiceError(err))
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"success":  true,
		"zip_code": zip,
		"count":    len(rows),
		"agents":   rows,
	})
}

// validateRequest runs struct validation and converts the first failure into
// an APIError.
func (h *ScanHandler) validateRequest(req interface{}) *apierrors.APIError {
	err := h.validate.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		if fe.Field() == "ZipCode" && fe.Tag() == "required" {
			return apierrors.ErrZipCodeRequired
		}
		return apierrors.ValidationError(fe.Field(), "failed on "+fe.Tag())
	}
	return apierrors.ErrValidationFailed
}

// mapServiceError converts service-layer errors to API errors.
func (h *ScanHandler) mapServiceError(err error) error {
	if errors.Is(err, services.ErrZipCodeRequired) {
		return apierrors.ErrZipCodeRequired
	}
	var collab *services.CollaboratorError
	if errors.As(err, &collab) {
		return apierrors.CollaboratorError(collab)
	}
	return err
}
