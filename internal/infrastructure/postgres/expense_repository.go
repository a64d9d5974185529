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

var _ repository.ExpenseRepository = (*ExpenseRepo)(nil)

const expenseColumns = `id, user_id, description, amount, category, expense_date,
	payment_method, receipt_url, notes, voice_command, created_at`

// ExpenseRepo implémentation du port ExpenseRepository sur PostgreSQL.
type ExpenseRepo struct {
	q Querier
}

// NewExpenseRepository construit l'adaptateur dépenses. Accepte pool ou tx (Querier).
func NewExpenseRepository(q Querier) *ExpenseRepo {
	return &ExpenseRepo{q: q}
}

// Create persiste une dépense.
func (r *ExpenseRepo) Create(ctx context.Context, expense *entity.Expense) error {
	query := `
		INSERT INTO expenses (id, user_id, description, amount, category, expense_date,
			payment_method, receipt_url, notes, voice_command)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		expense.ID, expense.UserID, expense.Description, expense.Amount, expense.Category,
		expense.ExpenseDate, expense.PaymentMethod, expense.ReceiptURL, expense.Notes,
		expense.VoiceCommand,
	)
	if err != nil {
		return fmt.Errorf("insert expense: %w", err)
	}
	return nil
}

func scanExpense(row pgx.Row) (*entity.Expense, error) {
	var e entity.Expense
	err := row.Scan(
		&e.ID, &e.UserID, &e.Description, &e.Amount, &e.Category, &e.ExpenseDate,
		&e.PaymentMethod, &e.ReceiptURL, &e.Notes, &e.VoiceCommand, &e.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan expense: %w", err)
	}
	return &e, nil
}

// GetByID retourne la dépense du user, nil si elle n'existe pas.
func (r *ExpenseRepo) GetByID(ctx context.Context, userID, id string) (*entity.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE id = $1 AND user_id = $2`
	return scanExpense(r.q.QueryRow(ctx, query, id, userID))
}

// List retourne les dépenses paginées du user selon le filtre, les plus
// récentes d'abord, avec le total pour la pagination.
func (r *ExpenseRepo) List(ctx context.Context, userID string, filter repository.ExpenseFilter) ([]*entity.Expense, int, error) {
	where := `WHERE user_id = $1`
	args := []any{userID}
	if filter.Category != "" && filter.Category != "all" {
		args = append(args, filter.Category)
		where += fmt.Sprintf(` AND category = $%d`, len(args))
	}
	if filter.Since != nil {
		args = append(args, *filter.Since)
		where += fmt.Sprintf(` AND expense_date >= $%d`, len(args))
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM expenses `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count expenses: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM expenses %s ORDER BY expense_date DESC LIMIT $%d OFFSET $%d`,
		expenseColumns, where, len(args)+1, len(args)+2)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()

	var out []*entity.Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, e)
	}
	return out, total, rows.Err()
}

// Update persiste les champs modifiables d'une dépense.
func (r *ExpenseRepo) Update(ctx context.Context, expense *entity.Expense) error {
	query := `
		UPDATE expenses
		SET description = $2, amount = $3, category = $4, expense_date = $5,
		    payment_method = $6, receipt_url = $7, notes = $8
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		expense.ID, expense.Description, expense.Amount, expense.Category, expense.ExpenseDate,
		expense.PaymentMethod, expense.ReceiptURL, expense.Notes,
	)
	if err != nil {
		return fmt.Errorf("update expense: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete supprime la dépense du user.
func (r *ExpenseRepo) Delete(ctx context.Context, userID, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM expenses WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
