package repository

import (
	"context"

	"github.com/cosmolab/akompta-api/internal/domain/entity"
)

// SavingsFilter critères de listage des transactions d'épargne.
type SavingsFilter struct {
	TransactionType string // vide = tous
	Status          string // vide = tous
	Limit           int
	Offset          int
}

// SavingsRepository définit le port de persistance pour Savings (DIP).
type SavingsRepository interface {
	Create(ctx context.Context, savings *entity.Savings) error
	GetByID(ctx context.Context, userID, id string) (*entity.Savings, error)
	List(ctx context.Context, userID string, filter SavingsFilter) ([]*entity.Savings, int, error)
	Update(ctx context.Context, savings *entity.Savings) error
	Delete(ctx context.Context, userID, id string) error
}
