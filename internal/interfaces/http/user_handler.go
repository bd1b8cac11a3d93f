package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/tahiry-dev/lalana-api/internal/application/dto"
	"github.com/tahiry-dev/lalana-api/internal/application/usecase"
	"github.com/tahiry-dev/lalana-api/internal/domain"
)

// UserHandler administración de cuentas.
type UserHandler struct {
	uc *usecase.UserUseCase
}

// NewUserHandler construye el handler de usuarios.
func NewUserHandler(uc *usecase.UserUseCase) *UserHandler {
	return &UserHandler{uc: uc}
}

// List godoc
// @Summary      Listar cuentas
// @Tags         users
// @Produce      json
// @Success      200  {array}  dto.UserResponse
// @Router       /api/users [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Lock godoc
// @Summary      Bloquear cuenta
// @Tags         users
// @Produce      json
// @Param        id  path  string  true  "ID de la cuenta"
// @Success      200  {object}  dto.UserResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/admin/users/{id}/lock [put]
func (h *UserHandler) Lock(c *fiber.Ctx) error {
	out, err := h.uc.Lock(c.UserContext(), c.Params("id"))
	if err != nil {
		return userError(c, err)
	}
	return c.JSON(out)
}

// Unlock godoc
// @Summary      Desbloquear cuenta y reiniciar intentos fallidos
// @Tags         users
// @Produce      json
// @Param        id  path  string  true  "ID de la cuenta"
// @Success      200  {object}  dto.UserResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/admin/users/{id}/unlock [put]
func (h *UserHandler) Unlock(c *fiber.Ctx) error {
	out, err := h.uc.Unlock(c.UserContext(), c.Params("id"))
	if err != nil {
		return userError(c, err)
	}
	return c.JSON(out)
}

// Sync godoc
// @Summary      Espejar las cuentas user pendientes al almacén de documentos
// @Tags         users
// @Produce      json
// @Success      200  {object}  dto.UserSyncResult
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/users/sync [post]
func (h *UserHandler) Sync(c *fiber.Ctx) error {
	res, err := h.uc.SyncEligible(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "SYNC_FAILED", Message: err.Error()})
	}
	return c.JSON(res)
}

func userError(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrUserNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "USER_NOT_FOUND", Message: "cuenta no encontrada"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
