package postgres

import (
	"context"
	"fmt"

	"github.com/cosmolab/akompta-api/internal/domain/entity"
	"github.com/cosmolab/akompta-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implémentation du port StockMovementRepository sur
// PostgreSQL. Journal append-only.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construit l'adaptateur mouvements. Accepte pool ou tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create journalise un mouvement de stock.
func (r *StockMovementRepo) Create(ctx context.Context, movement *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (id, product_id, user_id, movement_type, quantity,
			previous_stock, new_stock, reason, reference_id, notes, voice_command)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NULLIF($9, ''), $10, $11)`
	_, err := r.q.Exec(ctx, query,
		movement.ID, movement.ProductID, movement.UserID, movement.Type, movement.Quantity,
		movement.PreviousStock, movement.NewStock, movement.Reason, movement.ReferenceID,
		movement.Notes, movement.VoiceCommand,
	)
	if err != nil {
		return fmt.Errorf("insert stock movement: %w", err)
	}
	return nil
}

const movementSelect = `
	SELECT m.id, m.product_id, m.user_id, m.movement_type, m.quantity,
	       m.previous_stock, m.new_stock, m.reason, COALESCE(m.reference_id::TEXT, ''),
	       m.notes, m.voice_command, p.name, m.created_at
	FROM stock_movements m
	JOIN products p ON p.id = m.product_id`

func (r *StockMovementRepo) list(ctx context.Context, query string, args ...any) ([]*entity.StockMovement, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()

	var out []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		err := rows.Scan(
			&m.ID, &m.ProductID, &m.UserID, &m.Type, &m.Quantity,
			&m.PreviousStock, &m.NewStock, &m.Reason, &m.ReferenceID,
			&m.Notes, &m.VoiceCommand, &m.ProductName, &m.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}

// ListByProduct retourne l'historique d'un produit, le plus récent d'abord.
func (r *StockMovementRepo) ListByProduct(ctx context.Context, userID, productID string, limit, offset int) ([]*entity.StockMovement, error) {
	query := movementSelect + `
	WHERE m.user_id = $1 AND m.product_id = $2
	ORDER BY m.created_at DESC
	LIMIT $3 OFFSET $4`
	return r.list(ctx, query, userID, productID, limit, offset)
}

// ListByUser retourne les mouvements du user tous produits confondus.
func (r *StockMovementRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.StockMovement, error) {
	query := movementSelect + `
	WHERE m.user_id = $1
	ORDER BY m.created_at DESC
	LIMIT $2 OFFSET $3`
	return r.list(ctx, query, userID, limit, offset)
}
