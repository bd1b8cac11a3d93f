package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tahiry-dev/lalana-api/internal/application/dto"
	"github.com/tahiry-dev/lalana-api/internal/application/usecase"
)

// StatsHandler estadísticas del dashboard.
type StatsHandler struct {
	uc *usecase.StatsUseCase
}

// NewStatsHandler construye el handler de estadísticas.
func NewStatsHandler(uc *usecase.StatsUseCase) *StatsHandler {
	return &StatsHandler{uc: uc}
}

// Global godoc
// @Summary      Agregados globales
// @Tags         stats
// @Produce      json
// @Success      200  {object}  dto.StatsResponse
// @Router       /api/stats [get]
func (h *StatsHandler) Global(c *fiber.Ctx) error {
	out, err := h.uc.Global(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Traitement godoc
// @Summary      Tiempos medios de tratamiento entre etapas
// @Tags         stats
// @Produce      json
// @Success      200  {object}  dto.TraitementStatsResponse
// @Router       /api/stats/traitement [get]
func (h *StatsHandler) Traitement(c *fiber.Ctx) error {
	out, err := h.uc.Traitement(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
