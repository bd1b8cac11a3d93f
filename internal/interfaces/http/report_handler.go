package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tahiry-dev/lalana-api/internal/application/dto"
	"github.com/tahiry-dev/lalana-api/internal/application/report"
)

// ReportHandler descarga del reporte PDF de signalements.
type ReportHandler struct {
	uc *report.UseCase
}

// NewReportHandler construye el handler de reportes.
func NewReportHandler(uc *report.UseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// PDF godoc
// @Summary      Descargar el reporte PDF de signalements
// @Tags         reports
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Router       /api/signalements/report/pdf [get]
func (h *ReportHandler) PDF(c *fiber.Ctx) error {
	pdfBytes, err := h.uc.BuildPDF(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="rapport-signalements.pdf"`)
	return c.Send(pdfBytes)
}
