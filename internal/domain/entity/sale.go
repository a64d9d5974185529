package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Méthodes de paiement acceptées pour une vente.
const (
	SalePaymentCash        = "cash"
	SalePaymentMobileMoney = "mobile_money"
	SalePaymentCard        = "card"
)

// Sale représente une vente. Créée atomiquement avec exactement un
// StockMovement(out, reason=sale) référençant son ID. TotalAmount est
// toujours recalculé côté serveur : Quantity × UnitPrice.
type Sale struct {
	ID            string
	ProductID     string
	UserID        string
	Quantity      int
	UnitPrice     decimal.Decimal
	TotalAmount   decimal.Decimal
	SaleDate      time.Time
	PaymentMethod string // cash, mobile_money, card
	Notes         string
	VoiceCommand  string
	ProductName   string // dérivé à la lecture (jointure), non stocké
	CreatedAt     time.Time
}

// IsValidSalePaymentMethod indique si la méthode de paiement est acceptée pour une vente.
func IsValidSalePaymentMethod(m string) bool {
	switch m {
	case SalePaymentCash, SalePaymentMobileMoney, SalePaymentCard:
		return true
	}
	return false
}
