package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/cosmolab/akompta-api/internal/application/dto"
	"github.com/cosmolab/akompta-api/internal/application/reporting"
)

// ReportHandler gère la génération et la distribution des rapports PDF (protégé).
type ReportHandler struct {
	uc *reporting.ReportUseCase
}

// NewReportHandler construit le handler.
func NewReportHandler(uc *reporting.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Generate godoc
// @Summary      Générer un rapport PDF
// @Description  Fige les agrégats de la période (journalière, hebdomadaire,
//               mensuelle ou annuelle) et produit le PDF correspondant.
// @Tags         reports
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.GenerateReportRequest  true  "report_type"
// @Success      201   {object}  dto.ReportResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/reports/generate [post]
func (h *ReportHandler) Generate(c *fiber.Ctx) error {
	var in dto.GenerateReportRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.ReportType == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "report_type est requis (daily, weekly, monthly ou annual)"})
	}
	out, err := h.uc.Generate(c.Context(), GetUserID(c), in.ReportType)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Lister les rapports générés
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ReportResponse
// @Router       /api/reports [get]
func (h *ReportHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Download godoc
// @Summary      Télécharger le PDF d'un rapport
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID du rapport"
// @Success      200  {file}  file
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/reports/{id}/download [get]
func (h *ReportHandler) Download(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	report, err := h.uc.Download(c.Context(), GetUserID(c), id)
	if err != nil {
		return respondError(c, err)
	}
	filename := fmt.Sprintf("rapport_%s_%s.pdf", report.ReportType, report.PeriodStart.Format("2006-01-02"))
	return c.Download(report.FilePath, filename)
}

// Delete godoc
// @Summary      Supprimer un rapport
// @Description  Supprime la ligne et le fichier PDF associé.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID du rapport"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/reports/{id} [delete]
func (h *ReportHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	if err := h.uc.Delete(c.Context(), GetUserID(c), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "rapport supprimé"})
}
