package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tahiry-dev/lalana-api/internal/application/dto"
	appsync "github.com/tahiry-dev/lalana-api/internal/application/sync"
)

// SyncHandler barridos manuales de sincronización con el almacén de
// documentos del móvil.
type SyncHandler struct {
	uc *appsync.UseCase
}

// NewSyncHandler construye el handler de sincronización.
func NewSyncHandler(uc *appsync.UseCase) *SyncHandler {
	return &SyncHandler{uc: uc}
}

// Export godoc
// @Summary      Exportar todos los signalements al almacén de documentos
// @Tags         sync
// @Produce      json
// @Success      200  {object}  dto.ExportResult
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/firebase/signalements/sync [post]
func (h *SyncHandler) Export(c *fiber.Ctx) error {
	res, err := h.uc.ExportAll(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "SYNC_FAILED", Message: err.Error()})
	}
	return c.JSON(res)
}

// Import godoc
// @Summary      Importar los documentos sin contraparte relacional
// @Tags         sync
// @Produce      json
// @Success      200  {object}  dto.ImportResult
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/firebase/signalements/import [post]
func (h *SyncHandler) Import(c *fiber.Ctx) error {
	res, err := h.uc.ImportUnimported(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "SYNC_FAILED", Message: err.Error()})
	}
	return c.JSON(res)
}

// PullAll godoc
// @Summary      Leer la colección de documentos normalizada
// @Tags         sync
// @Produce      json
// @Success      200  {array}  dto.DocumentSignalement
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/firebase/signalements [get]
func (h *SyncHandler) PullAll(c *fiber.Ctx) error {
	docs, err := h.uc.PullAll(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "SYNC_FAILED", Message: err.Error()})
	}
	return c.JSON(docs)
}
