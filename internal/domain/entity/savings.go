package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Types de transaction d'épargne.
const (
	SavingsDeposit    = "deposit"
	SavingsWithdrawal = "withdrawal"
)

// Méthodes de paiement acceptées pour l'épargne.
const (
	SavingsPaymentMobileMoney = "mobile_money"
	SavingsPaymentCash        = "cash"
	SavingsPaymentBank        = "bank"
)

// Statuts d'une transaction d'épargne. Machine à états à sens unique :
// pending -> completed | failed. Seul completed compte dans le solde.
const (
	SavingsStatusPending   = "pending"
	SavingsStatusCompleted = "completed"
	SavingsStatusFailed    = "failed"
)

// Savings représente une transaction d'épargne (dépôt ou retrait),
// généralement via Mobile Money.
type Savings struct {
	ID                    string
	UserID                string
	Amount                decimal.Decimal
	TransactionType       string // deposit, withdrawal
	PaymentMethod         string // mobile_money, cash, bank
	MobileMoneyProvider   string // mtn_momo, orange_money, moov_money ; vide sinon
	ExternalTransactionID string // id de transaction Mobile Money
	TransactionDate       time.Time
	Status                string // pending, completed, failed
	Notes                 string
	CreatedAt             time.Time
}

// CanTransitionTo indique si le passage vers le statut cible est permis.
// Les transitions partent uniquement de pending ; completed et failed sont terminaux.
func (s *Savings) CanTransitionTo(target string) bool {
	if s.Status != SavingsStatusPending {
		return false
	}
	return target == SavingsStatusCompleted || target == SavingsStatusFailed
}

// IsDeletable indique si la transaction peut être supprimée.
// Une transaction completed est immuable à la suppression.
func (s *Savings) IsDeletable() bool {
	return s.Status != SavingsStatusCompleted
}

// IsValidSavingsType indique si le type de transaction est reconnu.
func IsValidSavingsType(t string) bool {
	return t == SavingsDeposit || t == SavingsWithdrawal
}

// IsValidSavingsPaymentMethod indique si la méthode de paiement est acceptée pour l'épargne.
func IsValidSavingsPaymentMethod(m string) bool {
	switch m {
	case SavingsPaymentMobileMoney, SavingsPaymentCash, SavingsPaymentBank:
		return true
	}
	return false
}

// IsValidSavingsStatus indique si le statut est reconnu.
func IsValidSavingsStatus(s string) bool {
	switch s {
	case SavingsStatusPending, SavingsStatusCompleted, SavingsStatusFailed:
		return true
	}
	return false
}
