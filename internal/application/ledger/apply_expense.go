package ledger

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cosmolab/akompta-api/internal/domain"
	"github.com/cosmolab/akompta-api/internal/domain/entity"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExpenseInput est une demande de dépense, API directe ou chemin vocal.
type ExpenseInput struct {
	Amount        decimal.Decimal
	Description   string
	Category      string
	PaymentMethod string
	ExpenseDate   *time.Time
	Notes         string
	VoiceCommand  string
}

// ApplyExpense valide et enregistre une dépense. La catégorie est normalisée :
// toute valeur inconnue retombe sur "autres" plutôt que d'être rejetée, le
// chemin vocal produisant des catégories approximatives.
func (a *Applier) ApplyExpense(ctx context.Context, userID string, input ExpenseInput) (*entity.Expense, error) {
	if !input.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: le montant doit être positif", domain.ErrInvalidInput)
	}
	description := strings.TrimSpace(input.Description)
	if description == "" {
		return nil, fmt.Errorf("%w: la description est requise", domain.ErrInvalidInput)
	}

	expenseDate := time.Now().UTC()
	if input.ExpenseDate != nil {
		expenseDate = *input.ExpenseDate
	}

	expense := &entity.Expense{
		ID:            uuid.New().String(),
		UserID:        userID,
		Amount:        input.Amount,
		Description:   description,
		Category:      entity.NormalizeExpenseCategory(input.Category),
		PaymentMethod: input.PaymentMethod,
		ExpenseDate:   expenseDate,
		Notes:         input.Notes,
		VoiceCommand:  input.VoiceCommand,
	}
	if err := a.expenseRepo.Create(ctx, expense); err != nil {
		return nil, err
	}
	return expense, nil
}
