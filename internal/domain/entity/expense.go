package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Catégories de dépense reconnues (ensemble fixe).
const (
	ExpenseCategoryTransport     = "transport"
	ExpenseCategoryAchatStock    = "achat_stock"
	ExpenseCategoryEquipement    = "equipement"
	ExpenseCategoryCommunication = "communication"
	ExpenseCategoryMarketing     = "marketing"
	ExpenseCategoryMaintenance   = "maintenance"
	ExpenseCategoryFormation     = "formation"
	ExpenseCategoryAutres        = "autres"
)

// ExpenseCategories liste ordonnée des catégories reconnues.
var ExpenseCategories = []string{
	ExpenseCategoryTransport,
	ExpenseCategoryAchatStock,
	ExpenseCategoryEquipement,
	ExpenseCategoryCommunication,
	ExpenseCategoryMarketing,
	ExpenseCategoryMaintenance,
	ExpenseCategoryFormation,
	ExpenseCategoryAutres,
}

// Expense représente une dépense. Aucune interaction avec le stock.
type Expense struct {
	ID            string
	UserID        string
	Description   string
	Amount        decimal.Decimal // > 0
	Category      string          // une des ExpenseCategories, "autres" par défaut
	ExpenseDate   time.Time
	PaymentMethod string
	ReceiptURL    string
	Notes         string
	VoiceCommand  string
	CreatedAt     time.Time
}

// NormalizeExpenseCategory retourne la catégorie si elle est reconnue, sinon "autres".
func NormalizeExpenseCategory(c string) string {
	for _, known := range ExpenseCategories {
		if c == known {
			return c
		}
	}
	return ExpenseCategoryAutres
}
