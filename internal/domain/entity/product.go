package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultMinStockThreshold seuil d'alerte stock bas appliqué à la création si absent.
const DefaultMinStockThreshold = 5

// Product représente un produit du commerce d'un utilisateur.
// StockQuantity n'est jamais modifié directement : toute variation passe par
// un StockMovement appliqué dans la même transaction.
type Product struct {
	ID                string
	UserID            string
	Name              string
	Description       string
	Price             decimal.Decimal // prix de vente unitaire (FCFA)
	StockQuantity     int
	MinStockThreshold int
	ImageURL          string
	Category          string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// IsLowStock indique si le stock est au niveau ou sous le seuil d'alerte (dérivé, non stocké).
func (p *Product) IsLowStock() bool {
	return p.StockQuantity <= p.MinStockThreshold
}
