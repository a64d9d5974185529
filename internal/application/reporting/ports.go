// Package reporting couvre les lectures agrégées : tableau de bord,
// statistiques et génération de rapports PDF. Tout est en lecture seule,
// aucune écriture de stock ni de transaction n'en sort.
package reporting

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/cosmolab/akompta-api/internal/domain/entity"
)

// ReportSnapshot est la photographie d'une période, figée au moment de la
// génération : le PDF et la ligne de rapport persistée en dérivent tous deux.
type ReportSnapshot struct {
	Owner       *entity.User
	ReportType  string
	PeriodStart time.Time
	PeriodEnd   time.Time
	GeneratedAt time.Time

	TotalSales    decimal.Decimal
	TotalExpenses decimal.Decimal
	NetProfit     decimal.Decimal
	TotalSavings  decimal.Decimal

	// Détail tronqué pour le PDF. SalesCount et ExpensesCount portent le
	// nombre total de lignes de la période, au-delà de la troncature.
	Sales         []*entity.Sale
	SalesCount    int
	Expenses      []*entity.Expense
	ExpensesCount int
}

// PDFGenerator définit le port de rendu PDF. L'implémentation vit dans
// infrastructure/pdf.
type PDFGenerator interface {
	Generate(snapshot *ReportSnapshot) ([]byte, error)
}
