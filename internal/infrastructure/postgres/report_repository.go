package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/cosmolab/akompta-api/internal/domain"
	"github.com/cosmolab/akompta-api/internal/domain/entity"
	"github.com/cosmolab/akompta-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

const reportColumns = `id, user_id, report_type, period_start, period_end,
	total_sales, total_expenses, net_profit, total_savings, file_path, status, generated_at`

// ReportRepo implémentation du port ReportRepository sur PostgreSQL.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construit l'adaptateur rapports. Accepte pool ou tx (Querier).
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// Create persiste un rapport, totaux figés.
func (r *ReportRepo) Create(ctx context.Context, report *entity.Report) error {
	query := `
		INSERT INTO reports (` + reportColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		report.ID, report.UserID, report.ReportType, report.PeriodStart, report.PeriodEnd,
		report.TotalSales, report.TotalExpenses, report.NetProfit, report.TotalSavings,
		report.FilePath, report.Status, report.GeneratedAt,
	)
	if err != nil {
		return fmt.Errorf("insert report: %w", err)
	}
	return nil
}

func scanReport(row pgx.Row) (*entity.Report, error) {
	var rep entity.Report
	err := row.Scan(
		&rep.ID, &rep.UserID, &rep.ReportType, &rep.PeriodStart, &rep.PeriodEnd,
		&rep.TotalSales, &rep.TotalExpenses, &rep.NetProfit, &rep.TotalSavings,
		&rep.FilePath, &rep.Status, &rep.GeneratedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan report: %w", err)
	}
	return &rep, nil
}

// GetByID retourne le rapport du user, nil s'il n'existe pas.
func (r *ReportRepo) GetByID(ctx context.Context, userID, id string) (*entity.Report, error) {
	query := `SELECT ` + reportColumns + ` FROM reports WHERE id = $1 AND user_id = $2`
	return scanReport(r.q.QueryRow(ctx, query, id, userID))
}

// ListByUser retourne les rapports du user, les plus récents d'abord.
func (r *ReportRepo) ListByUser(ctx context.Context, userID string) ([]*entity.Report, error) {
	query := `SELECT ` + reportColumns + ` FROM reports WHERE user_id = $1 ORDER BY generated_at DESC`
	rows, err := r.q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	defer rows.Close()

	var out []*entity.Report
	for rows.Next() {
		rep, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rep)
	}
	return out, rows.Err()
}

// Delete supprime le rapport du user.
func (r *ReportRepo) Delete(ctx context.Context, userID, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM reports WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("delete report: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
