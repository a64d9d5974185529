package repository

import (
	"context"

	"github.com/cosmolab/akompta-api/internal/domain/entity"
)

// StockMovementRepository définit le port de persistance pour StockMovement (DIP).
// Journal append-only : pas d'Update ni de Delete, la cascade produit s'en charge.
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	ListByProduct(ctx context.Context, userID, productID string, limit, offset int) ([]*entity.StockMovement, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.StockMovement, error)
}
