package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// SalesTotals agrégats de ventes sur une fenêtre.
type SalesTotals struct {
	Amount   decimal.Decimal
	Quantity int64
	Count    int64
}

// ExpenseTotals agrégats de dépenses sur une fenêtre.
type ExpenseTotals struct {
	Amount decimal.Decimal
	Count  int64
}

// SavingsTotals agrégats d'épargne (status=completed uniquement) sur une fenêtre.
type SavingsTotals struct {
	Deposits    decimal.Decimal
	Withdrawals decimal.Decimal
}

// SavingsBalance solde d'épargne toutes périodes confondues.
type SavingsBalance struct {
	Deposits           decimal.Decimal // completed
	Withdrawals        decimal.Decimal // completed
	PendingDeposits    decimal.Decimal
	PendingWithdrawals decimal.Decimal
}

// TopProductRow ligne du classement des produits par chiffre de vente.
// L'ordre secondaire en cas d'égalité de montant est celui du stockage
// (non spécifié, dépendant de l'implémentation).
type TopProductRow struct {
	ProductID   string
	ProductName string
	Quantity    int64
	Amount      decimal.Decimal
	SalesCount  int64
}

// CategoryBreakdownRow regroupement count + somme par catégorie de dépense.
type CategoryBreakdownRow struct {
	Category string
	Count    int64
	Amount   decimal.Decimal
}

// PaymentMethodRow regroupement count + somme par méthode de paiement.
type PaymentMethodRow struct {
	PaymentMethod string
	Count         int64
	Amount        decimal.Decimal
}

// AnalyticsRepository requêtes d'agrégation en lecture seule, toutes
// restreintes au user propriétaire et bornées par fenêtre [start, end).
type AnalyticsRepository interface {
	GetSalesTotals(ctx context.Context, userID string, start, end time.Time) (SalesTotals, error)
	GetExpenseTotals(ctx context.Context, userID string, start, end time.Time) (ExpenseTotals, error)
	GetSavingsTotals(ctx context.Context, userID string, start, end time.Time) (SavingsTotals, error)
	GetSavingsBalance(ctx context.Context, userID string) (SavingsBalance, error)
	GetTopProducts(ctx context.Context, userID string, start, end time.Time, limit int) ([]TopProductRow, error)
	GetExpensesByCategory(ctx context.Context, userID string, start, end time.Time) ([]CategoryBreakdownRow, error)
	GetSalesByPaymentMethod(ctx context.Context, userID string, start, end time.Time) ([]PaymentMethodRow, error)
	GetExpensesByPaymentMethod(ctx context.Context, userID string, start, end time.Time) ([]PaymentMethodRow, error)
	CountProducts(ctx context.Context, userID string) (int64, error)
	CountLowStockProducts(ctx context.Context, userID string) (int64, error)
}
