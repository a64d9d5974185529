package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cosmolab/akompta-api/internal/application/reporting"
)

// DashboardHandler gère les lectures agrégées du tableau de bord (protégé).
type DashboardHandler struct {
	uc *reporting.DashboardUseCase
}

// NewDashboardHandler construit le handler.
func NewDashboardHandler(uc *reporting.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Dashboard godoc
// @Summary      Tableau de bord
// @Description  Agrégats de la période avec tendances par rapport à la
//               période précédente de même longueur.
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Param        period  query  string  false  "today | week | month"  default(today)
// @Success      200  {object}  dto.DashboardResponse
// @Router       /api/dashboard [get]
func (h *DashboardHandler) Dashboard(c *fiber.Ctx) error {
	out, err := h.uc.Dashboard(c.Context(), GetUserID(c), c.Query("period", reporting.PeriodToday))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Summary godoc
// @Summary      Résumé du jour
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardSummaryResponse
// @Router       /api/dashboard/summary [get]
func (h *DashboardHandler) Summary(c *fiber.Ctx) error {
	out, err := h.uc.Summary(c.Context(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
