package repository

import (
	"context"

	"github.com/cosmolab/akompta-api/internal/domain/entity"
)

// ReportRepository définit le port de persistance pour Report (DIP).
// Les totaux d'un rapport sont figés : pas d'Update des agrégats.
type ReportRepository interface {
	Create(ctx context.Context, report *entity.Report) error
	GetByID(ctx context.Context, userID, id string) (*entity.Report, error)
	ListByUser(ctx context.Context, userID string) ([]*entity.Report, error)
	Delete(ctx context.Context, userID, id string) error
}
