package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/tahiry-dev/lalana-api/internal/application/dto"
	"github.com/tahiry-dev/lalana-api/internal/application/usecase"
	"github.com/tahiry-dev/lalana-api/internal/domain"
)

// SignalementHandler CRUD de signalements.
type SignalementHandler struct {
	uc *usecase.SignalementUseCase
}

// NewSignalementHandler construye el handler de signalements.
func NewSignalementHandler(uc *usecase.SignalementUseCase) *SignalementHandler {
	return &SignalementHandler{uc: uc}
}

// Create godoc
// @Summary      Crear signalement
// @Tags         signalements
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSignalementRequest  true  "signalement"
// @Success      201   {object}  dto.SignalementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/signalements [post]
func (h *SignalementHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSignalementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar signalements
// @Tags         signalements
// @Produce      json
// @Success      200  {array}  dto.SignalementResponse
// @Router       /api/signalements [get]
func (h *SignalementHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener signalement por ID
// @Tags         signalements
// @Produce      json
// @Param        id  path  int  true  "ID canónico"
// @Success      200  {object}  dto.SignalementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/signalements/{id} [get]
func (h *SignalementHandler) GetByID(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return signalementError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Editar signalement (merge parcial)
// @Tags         signalements
// @Accept       json
// @Produce      json
// @Param        id    path  int                           true  "ID canónico"
// @Param        body  body  dto.UpdateSignalementRequest  true  "campos a modificar"
// @Success      200   {object}  dto.SignalementResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/signalements/{id} [put]
func (h *SignalementHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	var in dto.UpdateSignalementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return signalementError(c, err)
	}
	return c.JSON(out)
}

// UpdateStatus godoc
// @Summary      Cambiar estado de un signalement
// @Tags         signalements
// @Accept       json
// @Produce      json
// @Param        id    path  int                      true  "ID canónico"
// @Param        body  body  dto.UpdateStatusRequest  true  "nuevo estado"
// @Success      200   {object}  dto.SignalementResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/signalements/{id}/status [put]
func (h *SignalementHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	var in dto.UpdateStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Value() == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "status es requerido"})
	}
	out, err := h.uc.UpdateStatus(c.UserContext(), id, in.Value())
	if err != nil {
		return signalementError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar signalement
// @Tags         signalements
// @Produce      json
// @Param        id  path  int  true  "ID canónico"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/signalements/{id} [delete]
func (h *SignalementHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return signalementError(c, err)
	}
	return c.JSON(dto.MessageResponse{Success: true, Message: "signalement eliminado"})
}

func parseID(c *fiber.Ctx) (int64, error) {
	return strconv.ParseInt(c.Params("id"), 10, 64)
}

func signalementError(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "signalement no encontrado"})
	}
	if errors.Is(err, domain.ErrInvalidInput) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
