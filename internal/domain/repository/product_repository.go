package repository

import (
	"context"

	"github.com/cosmolab/akompta-api/internal/domain/entity"
)

// ProductRepository définit le port de persistance pour Product (DIP).
// Toutes les lectures sont restreintes au user propriétaire.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, userID, id string) (*entity.Product, error)
	// GetForUpdate lit le produit en verrouillant sa ligne (SELECT ... FOR UPDATE).
	// À n'utiliser que dans une transaction : sérialise les read-modify-write du stock.
	GetForUpdate(ctx context.Context, userID, id string) (*entity.Product, error)
	ListByUser(ctx context.Context, userID string) ([]*entity.Product, error)
	ListLowStock(ctx context.Context, userID string) ([]*entity.Product, error)
	UpdateInfo(ctx context.Context, product *entity.Product) error
	// UpdateStock écrit la nouvelle quantité. Réservé au moteur de stock :
	// tout appel doit s'accompagner d'un StockMovement dans la même transaction.
	UpdateStock(ctx context.Context, id string, newStock int) error
	Delete(ctx context.Context, userID, id string) error
}
