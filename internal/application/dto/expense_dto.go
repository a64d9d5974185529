package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/cosmolab/akompta-api/internal/domain/entity"
)

// CreateExpenseRequest corps de POST /api/expenses.
type CreateExpenseRequest struct {
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
	Category      string          `json:"category"`
	PaymentMethod string          `json:"payment_method"`
	ReceiptURL    string          `json:"receipt_url"`
	Notes         string          `json:"notes"`
	ExpenseDate   *time.Time      `json:"expense_date"`
}

// UpdateExpenseRequest corps de PUT /api/expenses/:id. Les champs nil sont inchangés.
type UpdateExpenseRequest struct {
	Description   *string          `json:"description"`
	Amount        *decimal.Decimal `json:"amount"`
	Category      *string          `json:"category"`
	PaymentMethod *string          `json:"payment_method"`
	ReceiptURL    *string          `json:"receipt_url"`
	Notes         *string          `json:"notes"`
	ExpenseDate   *time.Time       `json:"expense_date"`
}

// ExpenseResponse représentation publique d'une dépense.
type ExpenseResponse struct {
	ID            string          `json:"id"`
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
	Category      string          `json:"category"`
	ExpenseDate   time.Time       `json:"expense_date"`
	PaymentMethod string          `json:"payment_method"`
	ReceiptURL    string          `json:"receipt_url,omitempty"`
	Notes         string          `json:"notes,omitempty"`
	VoiceCommand  string          `json:"voice_command,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// ToExpenseResponse convertit l'entité en réponse.
func ToExpenseResponse(e *entity.Expense) *ExpenseResponse {
	if e == nil {
		return nil
	}
	return &ExpenseResponse{
		ID:            e.ID,
		Description:   e.Description,
		Amount:        e.Amount,
		Category:      e.Category,
		ExpenseDate:   e.ExpenseDate,
		PaymentMethod: e.PaymentMethod,
		ReceiptURL:    e.ReceiptURL,
		Notes:         e.Notes,
		VoiceCommand:  e.VoiceCommand,
		CreatedAt:     e.CreatedAt,
	}
}

// ExpenseListResponse réponse paginée de GET /api/expenses.
type ExpenseListResponse struct {
	Expenses []*ExpenseResponse `json:"expenses"`
	PageResponse
}

// CategoryStat agrégat de dépenses par catégorie.
type CategoryStat struct {
	Category string          `json:"category"`
	Count    int64           `json:"count"`
	Amount   decimal.Decimal `json:"amount"`
}

// ExpenseStatsResponse réponse de GET /api/expenses/stats.
type ExpenseStatsResponse struct {
	Period             string              `json:"period"`
	TotalExpenses      decimal.Decimal     `json:"total_expenses"`
	TotalTransactions  int64               `json:"total_transactions"`
	AverageTransaction decimal.Decimal     `json:"average_transaction"`
	CategoryStats      []CategoryStat      `json:"category_stats"`
	PaymentStats       []PaymentMethodStat `json:"payment_stats"`
}

// ExpenseCategoryItem entrée du catalogue de catégories.
type ExpenseCategoryItem struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
