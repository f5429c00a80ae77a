package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/aicv/cv-service/internal/api/metrics"
	"github.com/aicv/cv-service/internal/core/domain"
	"github.com/aicv/cv-service/internal/core/ports"
)

// GenerateHandler handles HTTP requests for CV generation and quota reads.
type GenerateHandler struct {
	service ports.GenerationService
}

func NewGenerateHandler(service ports.GenerationService) *GenerateHandler {
	return &GenerateHandler{service: service}
}

// Generate handles POST /v1/cv/generate.
//
// @Summary      Generate a tailored CV for a job description
// @Tags         cv
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      generateCVRequest  true  "Profile, job description and target language"
// @Success      200   {object}  generateCVResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      402   {object}  quotaExhaustedResponse
// @Failure      429   {object}  map[string]string
// @Failure      502   {object}  map[string]string
// @Router       /v1/cv/generate [post]
func (h *GenerateHandler) Generate(c echo.Context) error {
	accountID, err := ctxAccountID(c)
	if err != nil {
		return err
	}

	var req generateCVRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	lang := string(domain.NormalizeLanguage(req.TargetLang))
	start := time.Now()

	result, err := h.service.Generate(c.Request().Context(), ports.GenerateCVInput{
		AccountID:      accountID,
		Profile:        req.Profile.toDomain(),
		JobDescription: req.JobDescription,
		TargetLang:     req.TargetLang,
	})
	if err != nil {
		metrics.GenerationDuration.WithLabelValues("error").Observe(time.Since(start).Seconds())
		return h.generateError(c, err, lang)
	}

	metrics.GenerationsTotal.WithLabelValues(lang, "success").Inc()
	metrics.GenerationDuration.WithLabelValues("success").Observe(time.Since(start).Seconds())

	return c.JSON(http.StatusOK, generateCVResponse{
		Text:      result.Text,
		Remaining: result.Remaining,
	})
}

// generateError records outcome metrics and renders the failure. The 402
// envelope is rendered here because it carries fields the shared error
// handler does not know about; everything else flows through it.
func (h *GenerateHandler) generateError(c echo.Context, err error, lang string) error {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		metrics.GenerationsTotal.WithLabelValues(lang, "invalid_request").Inc()
	case errors.Is(err, domain.ErrQuotaExhausted):
		metrics.GenerationsTotal.WithLabelValues(lang, "quota_exhausted").Inc()
		return c.JSON(http.StatusPaymentRequired, quotaExhaustedResponse{
			Error:     "no generation credits left",
			Remaining: 0,
			Code:      codeNoCredits,
		})
	case errors.Is(err, domain.ErrUpstreamUnavailable):
		metrics.GenerationsTotal.WithLabelValues(lang, "upstream_error").Inc()
		metrics.UpstreamErrorsTotal.WithLabelValues("unavailable").Inc()
	case errors.Is(err, domain.ErrMalformedUpstreamResponse):
		metrics.GenerationsTotal.WithLabelValues(lang, "upstream_error").Inc()
		metrics.UpstreamErrorsTotal.WithLabelValues("malformed").Inc()
	case errors.Is(err, domain.ErrStoreUnavailable):
		metrics.GenerationsTotal.WithLabelValues(lang, "store_error").Inc()
	}
	return err
}

// Quota handles GET /v1/quota.
//
// @Summary      Read the caller's remaining generation credits
// @Tags         cv
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  quotaResponse
// @Failure      401  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Router       /v1/quota [get]
func (h *GenerateHandler) Quota(c echo.Context) error {
	accountID, err := ctxAccountID(c)
	if err != nil {
		return err
	}

	remaining, err := h.service.Remaining(c.Request().Context(), accountID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, quotaResponse{Remaining: remaining})
}
