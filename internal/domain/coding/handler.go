package coding

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// Handler provides the REST endpoint for coding analysis.
type Handler struct {
	svc    *Service
	logger zerolog.Logger
}

// NewHandler creates a new coding handler.
func NewHandler(svc *Service, logger zerolog.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// RegisterRoutes registers the analyze route. Extra middleware (rate
// limiting) applies to this route only.
func (h *Handler) RegisterRoutes(e *echo.Echo, mw ...echo.MiddlewareFunc) {
	e.POST("/analyze", h.Analyze, mw...)
}

// Analyze handles POST /analyze
func (h *Handler) Analyze(c echo.Context) error {
	rid, _ := c.Get("request_id").(string)

	var req AnalysisRequest
	if err := c.Bind(&req); err != nil {
		if tooLarge := bodyTooLarge(err); tooLarge != nil {
			return tooLarge
		}
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	h.logger.Info().
		Str("request_id", rid).
		Int("characters", utf8.RuneCountInString(strings.TrimSpace(req.Description))).
		Int("max_cpt_codes", req.MaxCPTCodes).
		Int("max_icd_codes", req.MaxICDCodes).
		Int("max_hcpcs_codes", req.MaxHCPCSCodes).
		Msg("received analysis request")

	resp, err := h.svc.Analyze(c.Request().Context(), &req)
	if err != nil {
		return h.mapError(rid, err)
	}

	h.logger.Info().
		Str("request_id", rid).
		Str("report_id", resp.ReportID).
		Msg("analysis completed")
	return c.JSON(http.StatusOK, resp)
}

// bodyTooLarge finds the 413 raised by the body limit reader. The binder
// may return it as is or wrapped in a 400 as the internal error.
func bodyTooLarge(err error) error {
	for err != nil {
		var he *echo.HTTPError
		if !errors.As(err, &he) {
			return nil
		}
		if he.Code == http.StatusRequestEntityTooLarge {
			return he
		}
		err = he.Internal
	}
	return nil
}

func (h *Handler) mapError(rid string, err error) error {
	switch {
	case errors.Is(err, ErrDescriptionRequired):
		return echo.NewHTTPError(http.StatusBadRequest, "Description is required")
	case errors.Is(err, ErrDescriptionTooShort):
		return echo.NewHTTPError(http.StatusBadRequest, "Description too short")
	case errors.Is(err, ErrDescriptionTooLong):
		return echo.NewHTTPError(http.StatusBadRequest, "Description too long")
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return echo.NewHTTPError(http.StatusServiceUnavailable, "Request cancelled")
	}
	h.logger.Error().Err(err).Str("request_id", rid).Msg("analysis failed")
	return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
}
