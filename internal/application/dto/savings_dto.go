package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/cosmolab/akompta-api/internal/domain/entity"
)

// CreateSavingsRequest corps de POST /api/savings.
type CreateSavingsRequest struct {
	Amount                decimal.Decimal `json:"amount"`
	TransactionType       string          `json:"transaction_type"` // deposit | withdrawal
	PaymentMethod         string          `json:"payment_method"`
	MobileMoneyProvider   string          `json:"mobile_money_provider"`
	ExternalTransactionID string          `json:"transaction_id"`
	TransactionDate       *time.Time      `json:"transaction_date"`
	Notes                 string          `json:"notes"`
}

// UpdateSavingsRequest corps de PUT /api/savings/:id.
// Seuls le statut (transition à sens unique), l'id externe et les notes sont modifiables.
type UpdateSavingsRequest struct {
	Status                *string `json:"status"`
	ExternalTransactionID *string `json:"transaction_id"`
	Notes                 *string `json:"notes"`
}

// SavingsResponse représentation publique d'une transaction d'épargne.
type SavingsResponse struct {
	ID                    string          `json:"id"`
	Amount                decimal.Decimal `json:"amount"`
	TransactionType       string          `json:"transaction_type"`
	PaymentMethod         string          `json:"payment_method"`
	MobileMoneyProvider   string          `json:"mobile_money_provider,omitempty"`
	ExternalTransactionID string          `json:"transaction_id,omitempty"`
	TransactionDate       time.Time       `json:"transaction_date"`
	Status                string          `json:"status"`
	Notes                 string          `json:"notes,omitempty"`
	CreatedAt             time.Time       `json:"created_at"`
}

// ToSavingsResponse convertit l'entité en réponse.
func ToSavingsResponse(s *entity.Savings) *SavingsResponse {
	if s == nil {
		return nil
	}
	return &SavingsResponse{
		ID:                    s.ID,
		Amount:                s.Amount,
		TransactionType:       s.TransactionType,
		PaymentMethod:         s.PaymentMethod,
		MobileMoneyProvider:   s.MobileMoneyProvider,
		ExternalTransactionID: s.ExternalTransactionID,
		TransactionDate:       s.TransactionDate,
		Status:                s.Status,
		Notes:                 s.Notes,
		CreatedAt:             s.CreatedAt,
	}
}

// SavingsListResponse réponse paginée de GET /api/savings.
type SavingsListResponse struct {
	Savings []*SavingsResponse `json:"savings"`
	PageResponse
}

// SavingsBalanceResponse réponse de GET /api/savings/balance.
// Seules les transactions completed comptent dans Balance ; les montants
// pending sont exposés à part, AvailableBalance = Balance - PendingWithdrawals.
type SavingsBalanceResponse struct {
	Balance            decimal.Decimal `json:"balance"`
	TotalDeposits      decimal.Decimal `json:"total_deposits"`
	TotalWithdrawals   decimal.Decimal `json:"total_withdrawals"`
	PendingDeposits    decimal.Decimal `json:"pending_deposits"`
	PendingWithdrawals decimal.Decimal `json:"pending_withdrawals"`
	AvailableBalance   decimal.Decimal `json:"available_balance"`
}
