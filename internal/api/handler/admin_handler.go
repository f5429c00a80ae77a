package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/aicv/cv-service/internal/core/ports"
)

// AdminHandler exposes the generation audit trail to operators.
type AdminHandler struct {
	generations ports.GenerationRepository
}

func NewAdminHandler(generations ports.GenerationRepository) *AdminHandler {
	return &AdminHandler{generations: generations}
}

type generationRecordResponse struct {
	AccountID  string    `json:"account_id"`
	TargetLang string    `json:"target_lang"`
	Remaining  int       `json:"remaining"`
	DurationMs int64     `json:"duration_ms"`
	CreatedAt  time.Time `json:"created_at"`
}

type listGenerationsResponse struct {
	Data []generationRecordResponse `json:"data"`
}

// ListGenerations handles GET /v1/admin/generations.
//
// @Summary      List recent generation audit records
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query     int  false  "Maximum records to return (default 100)"
// @Success      200    {object}  listGenerationsResponse
// @Failure      401    {object}  map[string]string
// @Failure      403    {object}  map[string]string
// @Router       /v1/admin/generations [get]
func (h *AdminHandler) ListGenerations(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	records, err := h.generations.ListRecent(c.Request().Context(), limit)
	if err != nil {
		return err
	}

	data := make([]generationRecordResponse, 0, len(records))
	for _, r := range records {
		data = append(data, generationRecordResponse{
			AccountID:  r.AccountID,
			TargetLang: string(r.TargetLang),
			Remaining:  r.Remaining,
			DurationMs: r.DurationMs,
			CreatedAt:  r.CreatedAt,
		})
	}

	return c.JSON(http.StatusOK, listGenerationsResponse{Data: data})
}
