package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/tahiry-dev/lalana-api/internal/application/dto"
	"github.com/tahiry-dev/lalana-api/internal/application/usecase"
	"github.com/tahiry-dev/lalana-api/internal/domain"
)

// PhotoHandler gestión de referencias de fotos de signalements.
type PhotoHandler struct {
	uc *usecase.PhotoUseCase
}

// NewPhotoHandler construye el handler de fotos.
func NewPhotoHandler(uc *usecase.PhotoUseCase) *PhotoHandler {
	return &PhotoHandler{uc: uc}
}

// Add godoc
// @Summary      Asociar foto por URL a un signalement
// @Tags         photos
// @Accept       json
// @Produce      json
// @Param        id    path  int                      true  "ID del signalement"
// @Param        body  body  dto.AddPhotoByURLRequest true  "url de la foto"
// @Success      201   {object}  dto.PhotoResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/signalements/{id}/photos/url [post]
func (h *PhotoHandler) Add(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	var in dto.AddPhotoByURLRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.AddByURL(c.UserContext(), id, in.URL)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "signalement no encontrado"})
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar fotos de un signalement
// @Tags         photos
// @Produce      json
// @Param        id  path  int  true  "ID del signalement"
// @Success      200  {array}  dto.PhotoResponse
// @Router       /api/signalements/{id}/photos [get]
func (h *PhotoHandler) List(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	out, err := h.uc.ListBySignalement(c.UserContext(), id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Count godoc
// @Summary      Contar fotos de un signalement
// @Tags         photos
// @Produce      json
// @Param        id  path  int  true  "ID del signalement"
// @Success      200  {object}  dto.PhotoCountResponse
// @Router       /api/signalements/{id}/photos/count [get]
func (h *PhotoHandler) Count(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	count, err := h.uc.CountBySignalement(c.UserContext(), id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.PhotoCountResponse{Count: count})
}

// Delete godoc
// @Summary      Eliminar referencia de foto
// @Tags         photos
// @Produce      json
// @Param        id       path  int  true  "ID del signalement"
// @Param        photoId  path  int  true  "ID de la foto"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/signalements/{id}/photos/{photoId} [delete]
func (h *PhotoHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	photoID, err := strconv.ParseInt(c.Params("photoId"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id de foto inválido"})
	}
	if err := h.uc.Delete(c.UserContext(), id, photoID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "foto no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.MessageResponse{Success: true, Message: "foto eliminada"})
}
