package repository

import (
	"context"
	"time"

	"github.com/cosmolab/akompta-api/internal/domain/entity"
)

// SaleRepository définit le port de persistance pour Sale (DIP).
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	GetByID(ctx context.Context, userID, id string) (*entity.Sale, error)
	// List retourne les ventes du user, les plus récentes d'abord, avec le
	// nom de produit joint. since=nil signifie sans borne de date.
	List(ctx context.Context, userID string, since *time.Time, limit, offset int) ([]*entity.Sale, int, error)
	Delete(ctx context.Context, id string) error
}
