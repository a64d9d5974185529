package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/cosmolab/akompta-api/internal/domain/entity"
)

// CreateProductRequest corps de POST /api/products.
type CreateProductRequest struct {
	Name              string          `json:"name"`
	Description       string          `json:"description"`
	Price             decimal.Decimal `json:"price"`
	StockQuantity     int             `json:"stock_quantity"`
	MinStockThreshold *int            `json:"min_stock_threshold"`
	ImageURL          string          `json:"image_url"`
	Category          string          `json:"category"`
}

// UpdateProductRequest corps de PUT /api/products/:id. Les champs nil sont inchangés.
// StockQuantity fixe le stock à une valeur cible : l'écart est enregistré
// comme mouvement d'ajustement.
type UpdateProductRequest struct {
	Name              *string          `json:"name"`
	Description       *string          `json:"description"`
	Price             *decimal.Decimal `json:"price"`
	MinStockThreshold *int             `json:"min_stock_threshold"`
	ImageURL          *string          `json:"image_url"`
	Category          *string          `json:"category"`
	StockQuantity     *int             `json:"stock_quantity"`
	StockNotes        string           `json:"stock_notes"`
}

// ProductResponse représentation publique d'un produit.
type ProductResponse struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	Description       string          `json:"description"`
	Price             decimal.Decimal `json:"price"`
	StockQuantity     int             `json:"stock_quantity"`
	MinStockThreshold int             `json:"min_stock_threshold"`
	ImageURL          string          `json:"image_url"`
	Category          string          `json:"category"`
	IsLowStock        bool            `json:"is_low_stock"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// ToProductResponse convertit l'entité en réponse.
func ToProductResponse(p *entity.Product) *ProductResponse {
	if p == nil {
		return nil
	}
	return &ProductResponse{
		ID:                p.ID,
		Name:              p.Name,
		Description:       p.Description,
		Price:             p.Price,
		StockQuantity:     p.StockQuantity,
		MinStockThreshold: p.MinStockThreshold,
		ImageURL:          p.ImageURL,
		Category:          p.Category,
		IsLowStock:        p.IsLowStock(),
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}

// StockUpdateRequest corps de POST /api/products/:id/stock (ajustement manuel).
type StockUpdateRequest struct {
	Quantity     int    `json:"quantity"`
	MovementType string `json:"movement_type"` // in | out
	Reason       string `json:"reason"`
	Notes        string `json:"notes"`
}

// MovementResponse représentation publique d'un mouvement de stock.
type MovementResponse struct {
	ID            string    `json:"id"`
	ProductID     string    `json:"product_id"`
	ProductName   string    `json:"product_name,omitempty"`
	Type          string    `json:"movement_type"`
	Quantity      int       `json:"quantity"`
	PreviousStock int       `json:"previous_stock"`
	NewStock      int       `json:"new_stock"`
	Reason        string    `json:"reason"`
	ReferenceID   string    `json:"reference_id,omitempty"`
	Notes         string    `json:"notes,omitempty"`
	VoiceCommand  string    `json:"voice_command,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// ToMovementResponse convertit l'entité en réponse.
func ToMovementResponse(m *entity.StockMovement) *MovementResponse {
	if m == nil {
		return nil
	}
	return &MovementResponse{
		ID:            m.ID,
		ProductID:     m.ProductID,
		ProductName:   m.ProductName,
		Type:          m.Type,
		Quantity:      m.Quantity,
		PreviousStock: m.PreviousStock,
		NewStock:      m.NewStock,
		Reason:        m.Reason,
		ReferenceID:   m.ReferenceID,
		Notes:         m.Notes,
		VoiceCommand:  m.VoiceCommand,
		CreatedAt:     m.CreatedAt,
	}
}
