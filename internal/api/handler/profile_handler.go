package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/aicv/cv-service/internal/core/ports"
)

// ProfileHandler handles HTTP requests for the résumé profile.
type ProfileHandler struct {
	service ports.ProfileService
}

func NewProfileHandler(service ports.ProfileService) *ProfileHandler {
	return &ProfileHandler{service: service}
}

// Get handles GET /v1/profile.
//
// @Summary      Get the caller's profile
// @Tags         profile
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  getProfileResponse
// @Failure      401  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Router       /v1/profile [get]
func (h *ProfileHandler) Get(c echo.Context) error {
	accountID, err := ctxAccountID(c)
	if err != nil {
		return err
	}

	view, err := h.service.Get(c.Request().Context(), accountID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, getProfileResponse{
		Profile:  profileToPayload(view.Profile),
		Complete: view.Complete,
	})
}

// Update handles PUT /v1/profile.
//
// @Summary      Replace the caller's profile
// @Tags         profile
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      profilePayload  true  "Full profile document"
// @Success      200   {object}  getProfileResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      502   {object}  map[string]string
// @Router       /v1/profile [put]
func (h *ProfileHandler) Update(c echo.Context) error {
	accountID, err := ctxAccountID(c)
	if err != nil {
		return err
	}

	var req profilePayload
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	profile := req.toDomain()
	if err := h.service.Update(c.Request().Context(), accountID, profile); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, getProfileResponse{
		Profile:  profileToPayload(profile),
		Complete: profile.IsComplete(),
	})
}
