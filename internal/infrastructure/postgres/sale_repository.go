package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/cosmolab/akompta-api/internal/domain"
	"github.com/cosmolab/akompta-api/internal/domain/entity"
	"github.com/cosmolab/akompta-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// product_id est nullable : la suppression d'un produit détache ses ventes
// (SET NULL) et le nom dénormalisé garde l'historique lisible.
const saleColumns = `id, COALESCE(product_id::TEXT, ''), user_id, quantity, unit_price,
	total_amount, sale_date, payment_method, notes, voice_command, product_name, created_at`

// SaleRepo implémentation du port SaleRepository sur PostgreSQL.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construit l'adaptateur ventes. Accepte pool ou tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create persiste une vente, nom du produit dénormalisé à l'insertion.
func (r *SaleRepo) Create(ctx context.Context, sale *entity.Sale) error {
	query := `
		INSERT INTO sales (id, product_id, user_id, quantity, unit_price, total_amount,
			sale_date, payment_method, notes, voice_command, product_name)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		sale.ID, sale.ProductID, sale.UserID, sale.Quantity, sale.UnitPrice, sale.TotalAmount,
		sale.SaleDate, sale.PaymentMethod, sale.Notes, sale.VoiceCommand, sale.ProductName,
	)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

func scanSale(row pgx.Row) (*entity.Sale, error) {
	var s entity.Sale
	err := row.Scan(
		&s.ID, &s.ProductID, &s.UserID, &s.Quantity, &s.UnitPrice, &s.TotalAmount,
		&s.SaleDate, &s.PaymentMethod, &s.Notes, &s.VoiceCommand, &s.ProductName, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan sale: %w", err)
	}
	return &s, nil
}

// GetByID retourne la vente du user, nil si elle n'existe pas.
func (r *SaleRepo) GetByID(ctx context.Context, userID, id string) (*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE id = $1 AND user_id = $2`
	return scanSale(r.q.QueryRow(ctx, query, id, userID))
}

// List retourne les ventes paginées du user, les plus récentes d'abord,
// avec le total pour la pagination. since=nil signifie sans borne de date.
func (r *SaleRepo) List(ctx context.Context, userID string, since *time.Time, limit, offset int) ([]*entity.Sale, int, error) {
	where := `WHERE user_id = $1`
	args := []any{userID}
	if since != nil {
		where += ` AND sale_date >= $2`
		args = append(args, *since)
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM sales `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count sales: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM sales %s ORDER BY sale_date DESC LIMIT $%d OFFSET $%d`,
		saleColumns, where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()

	var out []*entity.Sale
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, s)
	}
	return out, total, rows.Err()
}

// Delete supprime une vente.
func (r *SaleRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM sales WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete sale: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
