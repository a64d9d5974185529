// Package usecase regroupe les cas d'usage CRUD : produits, ventes,
// dépenses, épargne. Toute variation de stock passe par le moteur
// transactionnel du package ledger, jamais par une écriture directe.
package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/cosmolab/akompta-api/internal/application/dto"
	"github.com/cosmolab/akompta-api/internal/application/ledger"
	"github.com/cosmolab/akompta-api/internal/domain"
	"github.com/cosmolab/akompta-api/internal/domain/entity"
	"github.com/cosmolab/akompta-api/internal/domain/repository"
)

// ProductUseCase cas d'usage du catalogue produits.
type ProductUseCase struct {
	productRepo  repository.ProductRepository
	movementRepo repository.StockMovementRepository
	applier      *ledger.Applier
}

// NewProductUseCase construit le cas d'usage produits.
func NewProductUseCase(
	productRepo repository.ProductRepository,
	movementRepo repository.StockMovementRepository,
	applier *ledger.Applier,
) *ProductUseCase {
	return &ProductUseCase{productRepo: productRepo, movementRepo: movementRepo, applier: applier}
}

// Create enregistre un produit. Un stock initial non nul est journalisé
// comme mouvement entrant initial_stock.
func (uc *ProductUseCase) Create(ctx context.Context, userID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: le nom est requis", domain.ErrInvalidInput)
	}
	if in.Price.IsNegative() {
		return nil, fmt.Errorf("%w: le prix ne peut pas être négatif", domain.ErrInvalidInput)
	}
	if in.StockQuantity < 0 {
		return nil, fmt.Errorf("%w: le stock initial ne peut pas être négatif", domain.ErrInvalidInput)
	}

	threshold := entity.DefaultMinStockThreshold
	if in.MinStockThreshold != nil {
		if *in.MinStockThreshold < 0 {
			return nil, fmt.Errorf("%w: le seuil d'alerte ne peut pas être négatif", domain.ErrInvalidInput)
		}
		threshold = *in.MinStockThreshold
	}

	now := time.Now().UTC()
	product := &entity.Product{
		ID:                uuid.New().String(),
		UserID:            userID,
		Name:              name,
		Description:       in.Description,
		Price:             in.Price,
		StockQuantity:     0,
		MinStockThreshold: threshold,
		ImageURL:          in.ImageURL,
		Category:          in.Category,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := uc.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	if in.StockQuantity > 0 {
		movement, err := uc.applier.ApplyStockAdjustment(ctx, userID, ledger.AdjustmentInput{
			ProductID: product.ID,
			Quantity:  in.StockQuantity,
			Direction: entity.MovementTypeIn,
			Reason:    entity.ReasonInitialStock,
		})
		if err != nil {
			return nil, err
		}
		product.StockQuantity = movement.NewStock
	}
	return dto.ToProductResponse(product), nil
}

// Get retourne un produit du user.
func (uc *ProductUseCase) Get(ctx context.Context, userID, id string) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return dto.ToProductResponse(product), nil
}

// List retourne tous les produits du user.
func (uc *ProductUseCase) List(ctx context.Context, userID string) ([]*dto.ProductResponse, error) {
	products, err := uc.productRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, dto.ToProductResponse(p))
	}
	return out, nil
}

// ListLowStock retourne les produits sous leur seuil d'alerte.
func (uc *ProductUseCase) ListLowStock(ctx context.Context, userID string) ([]*dto.ProductResponse, error) {
	products, err := uc.productRepo.ListLowStock(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, dto.ToProductResponse(p))
	}
	return out, nil
}

// Update modifie les champs fournis. StockQuantity fixe le stock à une
// valeur cible : l'écart avec le stock courant est appliqué comme ajustement
// journalisé, jamais comme écriture directe.
func (uc *ProductUseCase) Update(ctx context.Context, userID, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: le nom ne peut pas être vide", domain.ErrInvalidInput)
		}
		product.Name = name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, fmt.Errorf("%w: le prix ne peut pas être négatif", domain.ErrInvalidInput)
		}
		product.Price = *in.Price
	}
	if in.MinStockThreshold != nil {
		if *in.MinStockThreshold < 0 {
			return nil, fmt.Errorf("%w: le seuil d'alerte ne peut pas être négatif", domain.ErrInvalidInput)
		}
		product.MinStockThreshold = *in.MinStockThreshold
	}
	if in.ImageURL != nil {
		product.ImageURL = *in.ImageURL
	}
	if in.Category != nil {
		product.Category = *in.Category
	}
	product.UpdatedAt = time.Now().UTC()

	if err := uc.productRepo.UpdateInfo(ctx, product); err != nil {
		return nil, err
	}

	if in.StockQuantity != nil {
		if *in.StockQuantity < 0 {
			return nil, fmt.Errorf("%w: le stock cible ne peut pas être négatif", domain.ErrInvalidInput)
		}
		// L'écart est résolu sous verrou dans le moteur comptable.
		if _, err := uc.applier.ApplyStockTarget(ctx, userID, ledger.TargetInput{
			ProductID: product.ID,
			Target:    *in.StockQuantity,
			Notes:     in.StockNotes,
		}); err != nil {
			return nil, err
		}
		product.StockQuantity = *in.StockQuantity
	}
	return dto.ToProductResponse(product), nil
}

// UpdateStock applique un ajustement manuel de stock (in/out) sur le produit.
func (uc *ProductUseCase) UpdateStock(ctx context.Context, userID, id string, in dto.StockUpdateRequest) (*dto.MovementResponse, error) {
	movement, err := uc.applier.ApplyStockAdjustment(ctx, userID, ledger.AdjustmentInput{
		ProductID: id,
		Quantity:  in.Quantity,
		Direction: in.MovementType,
		Reason:    in.Reason,
		Notes:     in.Notes,
	})
	if err != nil {
		return nil, err
	}
	return dto.ToMovementResponse(movement), nil
}

// Movements retourne l'historique des mouvements d'un produit.
func (uc *ProductUseCase) Movements(ctx context.Context, userID, id string, page dto.PageRequest) ([]*dto.MovementResponse, error) {
	product, err := uc.productRepo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	page.DefaultPage()
	movements, err := uc.movementRepo.ListByProduct(ctx, userID, id, page.PerPage, page.Offset())
	if err != nil {
		return nil, err
	}
	out := make([]*dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		out = append(out, dto.ToMovementResponse(m))
	}
	return out, nil
}

// Delete supprime le produit. L'historique des ventes associées garde le
// nom du produit dénormalisé, les mouvements partent en cascade.
func (uc *ProductUseCase) Delete(ctx context.Context, userID, id string) error {
	product, err := uc.productRepo.GetByID(ctx, userID, id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	return uc.productRepo.Delete(ctx, userID, id)
}
