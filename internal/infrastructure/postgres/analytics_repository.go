package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cosmolab/akompta-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo requêtes d'agrégation en lecture seule pour le tableau de
// bord, les statistiques et les rapports.
type AnalyticsRepo struct {
	pool *pgxpool.Pool
}

// NewAnalyticsRepository construit l'adaptateur d'agrégats.
func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepo {
	return &AnalyticsRepo{pool: pool}
}

// GetSalesTotals agrège montant, quantités et nombre de ventes sur [start, end).
func (r *AnalyticsRepo) GetSalesTotals(ctx context.Context, userID string, start, end time.Time) (repository.SalesTotals, error) {
	const query = `
		SELECT COALESCE(SUM(total_amount), 0), COALESCE(SUM(quantity), 0), COUNT(*)
		FROM sales
		WHERE user_id = $1 AND sale_date >= $2 AND sale_date < $3`
	var t repository.SalesTotals
	err := r.pool.QueryRow(ctx, query, userID, start, end).Scan(&t.Amount, &t.Quantity, &t.Count)
	if err != nil {
		return t, fmt.Errorf("sales totals: %w", err)
	}
	return t, nil
}

// GetExpenseTotals agrège montant et nombre de dépenses sur [start, end).
func (r *AnalyticsRepo) GetExpenseTotals(ctx context.Context, userID string, start, end time.Time) (repository.ExpenseTotals, error) {
	const query = `
		SELECT COALESCE(SUM(amount), 0), COUNT(*)
		FROM expenses
		WHERE user_id = $1 AND expense_date >= $2 AND expense_date < $3`
	var t repository.ExpenseTotals
	err := r.pool.QueryRow(ctx, query, userID, start, end).Scan(&t.Amount, &t.Count)
	if err != nil {
		return t, fmt.Errorf("expense totals: %w", err)
	}
	return t, nil
}

// GetSavingsTotals agrège dépôts et retraits completed sur [start, end).
func (r *AnalyticsRepo) GetSavingsTotals(ctx context.Context, userID string, start, end time.Time) (repository.SavingsTotals, error) {
	const query = `
		SELECT
			COALESCE(SUM(amount) FILTER (WHERE transaction_type = 'deposit'), 0),
			COALESCE(SUM(amount) FILTER (WHERE transaction_type = 'withdrawal'), 0)
		FROM savings
		WHERE user_id = $1 AND status = 'completed'
		  AND transaction_date >= $2 AND transaction_date < $3`
	var t repository.SavingsTotals
	err := r.pool.QueryRow(ctx, query, userID, start, end).Scan(&t.Deposits, &t.Withdrawals)
	if err != nil {
		return t, fmt.Errorf("savings totals: %w", err)
	}
	return t, nil
}

// GetSavingsBalance retourne le solde d'épargne toutes périodes, completed
// et pending séparés.
func (r *AnalyticsRepo) GetSavingsBalance(ctx context.Context, userID string) (repository.SavingsBalance, error) {
	const query = `
		SELECT
			COALESCE(SUM(amount) FILTER (WHERE status = 'completed' AND transaction_type = 'deposit'), 0),
			COALESCE(SUM(amount) FILTER (WHERE status = 'completed' AND transaction_type = 'withdrawal'), 0),
			COALESCE(SUM(amount) FILTER (WHERE status = 'pending' AND transaction_type = 'deposit'), 0),
			COALESCE(SUM(amount) FILTER (WHERE status = 'pending' AND transaction_type = 'withdrawal'), 0)
		FROM savings
		WHERE user_id = $1`
	var b repository.SavingsBalance
	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&b.Deposits, &b.Withdrawals, &b.PendingDeposits, &b.PendingWithdrawals,
	)
	if err != nil {
		return b, fmt.Errorf("savings balance: %w", err)
	}
	return b, nil
}

// GetTopProducts classe les produits par chiffre de vente décroissant sur
// [start, end). Le nom dénormalisé couvre les produits supprimés.
func (r *AnalyticsRepo) GetTopProducts(ctx context.Context, userID string, start, end time.Time, limit int) ([]repository.TopProductRow, error) {
	const query = `
		SELECT COALESCE(product_id::TEXT, ''), product_name,
		       SUM(quantity), SUM(total_amount), COUNT(*)
		FROM sales
		WHERE user_id = $1 AND sale_date >= $2 AND sale_date < $3
		GROUP BY product_id, product_name
		ORDER BY SUM(total_amount) DESC
		LIMIT $4`
	rows, err := r.pool.Query(ctx, query, userID, start, end, limit)
	if err != nil {
		return nil, fmt.Errorf("top products: %w", err)
	}
	defer rows.Close()

	var out []repository.TopProductRow
	for rows.Next() {
		var row repository.TopProductRow
		if err := rows.Scan(&row.ProductID, &row.ProductName, &row.Quantity, &row.Amount, &row.SalesCount); err != nil {
			return nil, fmt.Errorf("scan top product: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// GetExpensesByCategory regroupe les dépenses par catégorie sur [start, end),
// les plus lourdes d'abord.
func (r *AnalyticsRepo) GetExpensesByCategory(ctx context.Context, userID string, start, end time.Time) ([]repository.CategoryBreakdownRow, error) {
	const query = `
		SELECT category, COUNT(*), COALESCE(SUM(amount), 0)
		FROM expenses
		WHERE user_id = $1 AND expense_date >= $2 AND expense_date < $3
		GROUP BY category
		ORDER BY SUM(amount) DESC`
	rows, err := r.pool.Query(ctx, query, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("expenses by category: %w", err)
	}
	defer rows.Close()

	var out []repository.CategoryBreakdownRow
	for rows.Next() {
		var row repository.CategoryBreakdownRow
		if err := rows.Scan(&row.Category, &row.Count, &row.Amount); err != nil {
			return nil, fmt.Errorf("scan category breakdown: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (r *AnalyticsRepo) paymentBreakdown(ctx context.Context, query, userID string, start, end time.Time) ([]repository.PaymentMethodRow, error) {
	rows, err := r.pool.Query(ctx, query, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("payment breakdown: %w", err)
	}
	defer rows.Close()

	var out []repository.PaymentMethodRow
	for rows.Next() {
		var row repository.PaymentMethodRow
		if err := rows.Scan(&row.PaymentMethod, &row.Count, &row.Amount); err != nil {
			return nil, fmt.Errorf("scan payment breakdown: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// GetSalesByPaymentMethod regroupe les ventes par méthode de paiement sur [start, end).
func (r *AnalyticsRepo) GetSalesByPaymentMethod(ctx context.Context, userID string, start, end time.Time) ([]repository.PaymentMethodRow, error) {
	const query = `
		SELECT payment_method, COUNT(*), COALESCE(SUM(total_amount), 0)
		FROM sales
		WHERE user_id = $1 AND sale_date >= $2 AND sale_date < $3
		GROUP BY payment_method
		ORDER BY SUM(total_amount) DESC`
	return r.paymentBreakdown(ctx, query, userID, start, end)
}

// GetExpensesByPaymentMethod regroupe les dépenses par méthode de paiement sur [start, end).
func (r *AnalyticsRepo) GetExpensesByPaymentMethod(ctx context.Context, userID string, start, end time.Time) ([]repository.PaymentMethodRow, error) {
	const query = `
		SELECT COALESCE(NULLIF(payment_method, ''), 'cash'), COUNT(*), COALESCE(SUM(amount), 0)
		FROM expenses
		WHERE user_id = $1 AND expense_date >= $2 AND expense_date < $3
		GROUP BY 1
		ORDER BY SUM(amount) DESC`
	return r.paymentBreakdown(ctx, query, userID, start, end)
}

// CountProducts compte les produits du user.
func (r *AnalyticsRepo) CountProducts(ctx context.Context, userID string) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM products WHERE user_id = $1`, userID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return n, nil
}

// CountLowStockProducts compte les produits sous leur seuil d'alerte.
func (r *AnalyticsRepo) CountLowStockProducts(ctx context.Context, userID string) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM products WHERE user_id = $1 AND stock_quantity <= min_stock_threshold`,
		userID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count low stock: %w", err)
	}
	return n, nil
}
