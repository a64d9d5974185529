package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cosmolab/akompta-api/internal/application/dto"
	"github.com/cosmolab/akompta-api/internal/application/usecase"
)

// SavingsHandler gère les requêtes HTTP de l'épargne Mobile Money (protégé).
type SavingsHandler struct {
	uc *usecase.SavingsUseCase
}

// NewSavingsHandler construit le handler.
func NewSavingsHandler(uc *usecase.SavingsUseCase) *SavingsHandler {
	return &SavingsHandler{uc: uc}
}

// Create godoc
// @Summary      Enregistrer une transaction d'épargne
// @Description  La transaction démarre en statut pending ; le passage à
//               completed ou failed est définitif.
// @Tags         savings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSavingsRequest  true  "amount, transaction_type"
// @Success      201   {object}  dto.SavingsResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/savings [post]
func (h *SavingsHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSavingsRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.TransactionType == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "transaction_type est requis (deposit ou withdrawal)"})
	}
	out, err := h.uc.Create(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Lister les transactions d'épargne
// @Tags         savings
// @Security     Bearer
// @Produce      json
// @Param        type      query  string  false  "deposit | withdrawal"
// @Param        status    query  string  false  "pending | completed | failed"
// @Param        page      query  int     false  "Page"      default(1)
// @Param        per_page  query  int     false  "Par page"  default(20)
// @Success      200  {object}  dto.SavingsListResponse
// @Router       /api/savings [get]
func (h *SavingsHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	out, err := h.uc.List(c.Context(), GetUserID(c), c.Query("type"), c.Query("status"), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Balance godoc
// @Summary      Solde d'épargne
// @Description  Seules les transactions completed comptent dans le solde ;
//               les retraits pending sont déduits du solde disponible.
// @Tags         savings
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SavingsBalanceResponse
// @Router       /api/savings/balance [get]
func (h *SavingsHandler) Balance(c *fiber.Ctx) error {
	out, err := h.uc.Balance(c.Context(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Providers godoc
// @Summary      Opérateurs Mobile Money supportés
// @Tags         savings
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  momo.Provider
// @Router       /api/savings/providers [get]
func (h *SavingsHandler) Providers(c *fiber.Ctx) error {
	return c.JSON(h.uc.Providers())
}

// GetByID godoc
// @Summary      Obtenir une transaction d'épargne par ID
// @Tags         savings
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la transaction"
// @Success      200  {object}  dto.SavingsResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/savings/{id} [get]
func (h *SavingsHandler) GetByID(c *fiber.Ctx) error {
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
// @Summary      Mettre à jour une transaction d'épargne
// @Description  Le statut ne peut que progresser : pending vers completed ou
//               failed. Les notes et l'id externe restent modifiables.
// @Tags         savings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la transaction"
// @Param        body  body  dto.UpdateSavingsRequest  true  "status, transaction_id, notes"
// @Success      200   {object}  dto.SavingsResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/savings/{id} [put]
func (h *SavingsHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	var in dto.UpdateSavingsRequest
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
// @Summary      Supprimer une transaction d'épargne
// @Description  Une transaction completed fait partie de l'historique
//               financier et ne peut pas être supprimée.
// @Tags         savings
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la transaction"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/savings/{id} [delete]
func (h *SavingsHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	if err := h.uc.Delete(c.Context(), GetUserID(c), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "transaction supprimée"})
}
