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

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, user_id, name, description, price, stock_quantity,
	min_stock_threshold, image_url, category, created_at, updated_at`

// ProductRepo implémentation du port ProductRepository sur PostgreSQL.
type ProductRepo struct {
	q Querier
}

// NewProductRepository construit l'adaptateur produits. Accepte pool ou tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nouveau produit.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		product.ID, product.UserID, product.Name, product.Description, product.Price,
		product.StockQuantity, product.MinStockThreshold, product.ImageURL, product.Category,
		product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID, &p.UserID, &p.Name, &p.Description, &p.Price, &p.StockQuantity,
		&p.MinStockThreshold, &p.ImageURL, &p.Category, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan product: %w", err)
	}
	return &p, nil
}

// GetByID retourne le produit du user, nil s'il n'existe pas.
func (r *ProductRepo) GetByID(ctx context.Context, userID, id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1 AND user_id = $2`
	return scanProduct(r.q.QueryRow(ctx, query, id, userID))
}

// GetForUpdate lit le produit en verrouillant sa ligne. À n'utiliser que
// dans une transaction.
func (r *ProductRepo) GetForUpdate(ctx context.Context, userID, id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1 AND user_id = $2 FOR UPDATE`
	return scanProduct(r.q.QueryRow(ctx, query, id, userID))
}

func (r *ProductRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var out []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// ListByUser retourne tous les produits du user, par nom.
func (r *ProductRepo) ListByUser(ctx context.Context, userID string) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE user_id = $1 ORDER BY name`
	return r.list(ctx, query, userID)
}

// ListLowStock retourne les produits sous leur seuil d'alerte, les plus
// critiques d'abord.
func (r *ProductRepo) ListLowStock(ctx context.Context, userID string) ([]*entity.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE user_id = $1 AND stock_quantity <= min_stock_threshold
		ORDER BY stock_quantity ASC, name`
	return r.list(ctx, query, userID)
}

// UpdateInfo persiste les champs descriptifs du produit, sans toucher au stock.
func (r *ProductRepo) UpdateInfo(ctx context.Context, product *entity.Product) error {
	query := `
		UPDATE products
		SET name = $2, description = $3, price = $4, min_stock_threshold = $5,
		    image_url = $6, category = $7, updated_at = $8
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		product.ID, product.Name, product.Description, product.Price,
		product.MinStockThreshold, product.ImageURL, product.Category, product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateStock écrit la nouvelle quantité. Réservé au moteur de stock.
func (r *ProductRepo) UpdateStock(ctx context.Context, id string, newStock int) error {
	query := `UPDATE products SET stock_quantity = $2, updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, id, newStock)
	if err != nil {
		return fmt.Errorf("update stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete supprime le produit du user. Les mouvements partent en cascade,
// les ventes gardent le nom dénormalisé.
func (r *ProductRepo) Delete(ctx context.Context, userID, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
