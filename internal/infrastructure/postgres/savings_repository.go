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

var _ repository.SavingsRepository = (*SavingsRepo)(nil)

const savingsColumns = `id, user_id, amount, transaction_type, payment_method,
	mobile_money_provider, external_transaction_id, transaction_date, status, notes, created_at`

// SavingsRepo implémentation du port SavingsRepository sur PostgreSQL.
type SavingsRepo struct {
	q Querier
}

// NewSavingsRepository construit l'adaptateur épargne. Accepte pool ou tx (Querier).
func NewSavingsRepository(q Querier) *SavingsRepo {
	return &SavingsRepo{q: q}
}

// Create persiste une transaction d'épargne.
func (r *SavingsRepo) Create(ctx context.Context, savings *entity.Savings) error {
	query := `
		INSERT INTO savings (id, user_id, amount, transaction_type, payment_method,
			mobile_money_provider, external_transaction_id, transaction_date, status, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		savings.ID, savings.UserID, savings.Amount, savings.TransactionType, savings.PaymentMethod,
		savings.MobileMoneyProvider, savings.ExternalTransactionID, savings.TransactionDate,
		savings.Status, savings.Notes,
	)
	if err != nil {
		return fmt.Errorf("insert savings: %w", err)
	}
	return nil
}

func scanSavings(row pgx.Row) (*entity.Savings, error) {
	var s entity.Savings
	err := row.Scan(
		&s.ID, &s.UserID, &s.Amount, &s.TransactionType, &s.PaymentMethod,
		&s.MobileMoneyProvider, &s.ExternalTransactionID, &s.TransactionDate,
		&s.Status, &s.Notes, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan savings: %w", err)
	}
	return &s, nil
}

// GetByID retourne la transaction du user, nil si elle n'existe pas.
func (r *SavingsRepo) GetByID(ctx context.Context, userID, id string) (*entity.Savings, error) {
	query := `SELECT ` + savingsColumns + ` FROM savings WHERE id = $1 AND user_id = $2`
	return scanSavings(r.q.QueryRow(ctx, query, id, userID))
}

// List retourne les transactions paginées selon le filtre, les plus
// récentes d'abord, avec le total pour la pagination.
func (r *SavingsRepo) List(ctx context.Context, userID string, filter repository.SavingsFilter) ([]*entity.Savings, int, error) {
	where := `WHERE user_id = $1`
	args := []any{userID}
	if filter.TransactionType != "" {
		args = append(args, filter.TransactionType)
		where += fmt.Sprintf(` AND transaction_type = $%d`, len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		where += fmt.Sprintf(` AND status = $%d`, len(args))
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM savings `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count savings: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM savings %s ORDER BY transaction_date DESC LIMIT $%d OFFSET $%d`,
		savingsColumns, where, len(args)+1, len(args)+2)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list savings: %w", err)
	}
	defer rows.Close()

	var out []*entity.Savings
	for rows.Next() {
		s, err := scanSavings(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, s)
	}
	return out, total, rows.Err()
}

// Update persiste le statut, l'id externe et les notes.
func (r *SavingsRepo) Update(ctx context.Context, savings *entity.Savings) error {
	query := `
		UPDATE savings
		SET status = $2, external_transaction_id = $3, notes = $4
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		savings.ID, savings.Status, savings.ExternalTransactionID, savings.Notes,
	)
	if err != nil {
		return fmt.Errorf("update savings: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete supprime la transaction du user. La garde métier (jamais une
// transaction completed) vit dans le use case.
func (r *SavingsRepo) Delete(ctx context.Context, userID, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM savings WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("delete savings: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
