package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cosmolab/akompta-api/internal/application/dto"
	"github.com/cosmolab/akompta-api/internal/application/usecase"
)

// ExpenseHandler gère les requêtes HTTP des dépenses (protégé).
type ExpenseHandler struct {
	uc *usecase.ExpenseUseCase
}

// NewExpenseHandler construit le handler.
func NewExpenseHandler(uc *usecase.ExpenseUseCase) *ExpenseHandler {
	return &ExpenseHandler{uc: uc}
}

// Create godoc
// @Summary      Enregistrer une dépense
// @Description  Une catégorie inconnue est reclassée en "autres".
// @Tags         expenses
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateExpenseRequest  true  "description, amount"
// @Success      201   {object}  dto.ExpenseResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/expenses [post]
func (h *ExpenseHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateExpenseRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.Description == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "description est requise"})
	}
	out, err := h.uc.Create(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Lister les dépenses
// @Tags         expenses
// @Security     Bearer
// @Produce      json
// @Param        category  query  string  false  "Filtre catégorie (all = toutes)"
// @Param        period    query  string  false  "today | week | month | all"  default(all)
// @Param        page      query  int     false  "Page"      default(1)
// @Param        per_page  query  int     false  "Par page"  default(20)
// @Success      200  {object}  dto.ExpenseListResponse
// @Router       /api/expenses [get]
func (h *ExpenseHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	out, err := h.uc.List(c.Context(), GetUserID(c), c.Query("category"), c.Query("period", usecase.FilterAll), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Stats godoc
// @Summary      Statistiques de dépenses
// @Tags         expenses
// @Security     Bearer
// @Produce      json
// @Param        period  query  string  false  "today | week | month | all"  default(all)
// @Success      200  {object}  dto.ExpenseStatsResponse
// @Router       /api/expenses/stats [get]
func (h *ExpenseHandler) Stats(c *fiber.Ctx) error {
	out, err := h.uc.Stats(c.Context(), GetUserID(c), c.Query("period", usecase.FilterAll))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Categories godoc
// @Summary      Catalogue des catégories de dépense
// @Tags         expenses
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ExpenseCategoryItem
// @Router       /api/expenses/categories [get]
func (h *ExpenseHandler) Categories(c *fiber.Ctx) error {
	return c.JSON(h.uc.Categories())
}

// GetByID godoc
// @Summary      Obtenir une dépense par ID
// @Tags         expenses
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la dépense"
// @Success      200  {object}  dto.ExpenseResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/expenses/{id} [get]
func (h *ExpenseHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	out, err := h.uc.Get(c.Context(), GetUserID(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Mettre à jour une dépense
// @Tags         expenses
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la dépense"
// @Param        body  body  dto.UpdateExpenseRequest  true  "Champs à modifier"
// @Success      200   {object}  dto.ExpenseResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/expenses/{id} [put]
func (h *ExpenseHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	var in dto.UpdateExpenseRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.Context(), GetUserID(c), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Supprimer une dépense
// @Tags         expenses
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la dépense"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/expenses/{id} [delete]
func (h *ExpenseHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	if err := h.uc.Delete(c.Context(), GetUserID(c), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "dépense supprimée"})
}
