package repository

import (
	"context"
	"time"

	"github.com/cosmolab/akompta-api/internal/domain/entity"
)

// ExpenseFilter critères de listage des dépenses.
type ExpenseFilter struct {
	Category string     // vide ou "all" = toutes
	Since    *time.Time // nil = sans borne
	Limit    int
	Offset   int
}

// ExpenseRepository définit le port de persistance pour Expense (DIP).
type ExpenseRepository interface {
	Create(ctx context.Context, expense *entity.Expense) error
	GetByID(ctx context.Context, userID, id string) (*entity.Expense, error)
	List(ctx context.Context, userID string, filter ExpenseFilter) ([]*entity.Expense, int, error)
	Update(ctx context.Context, expense *entity.Expense) error
	Delete(ctx context.Context, userID, id string) error
}
