package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/cosmolab/akompta-api/internal/domain/entity"
)

// CreateSaleRequest corps de POST /api/sales (chemin API direct : produit par ID).
// UnitPrice nil = prix catalogue du produit. TotalAmount n'est jamais accepté
// du client : toujours recalculé côté serveur.
type CreateSaleRequest struct {
	ProductID     string           `json:"product_id"`
	Quantity      int              `json:"quantity"`
	UnitPrice     *decimal.Decimal `json:"unit_price"`
	PaymentMethod string           `json:"payment_method"`
	Notes         string           `json:"notes"`
}

// SaleResponse représentation publique d'une vente.
type SaleResponse struct {
	ID            string          `json:"id"`
	ProductID     string          `json:"product_id"`
	ProductName   string          `json:"product_name"`
	Quantity      int             `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	SaleDate      time.Time       `json:"sale_date"`
	PaymentMethod string          `json:"payment_method"`
	Notes         string          `json:"notes,omitempty"`
	VoiceCommand  string          `json:"voice_command,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// ToSaleResponse convertit l'entité en réponse.
func ToSaleResponse(s *entity.Sale) *SaleResponse {
	if s == nil {
		return nil
	}
	return &SaleResponse{
		ID:            s.ID,
		ProductID:     s.ProductID,
		ProductName:   s.ProductName,
		Quantity:      s.Quantity,
		UnitPrice:     s.UnitPrice,
		TotalAmount:   s.TotalAmount,
		SaleDate:      s.SaleDate,
		PaymentMethod: s.PaymentMethod,
		Notes:         s.Notes,
		VoiceCommand:  s.VoiceCommand,
		CreatedAt:     s.CreatedAt,
	}
}

// SaleListResponse réponse paginée de GET /api/sales.
type SaleListResponse struct {
	Sales []*SaleResponse `json:"sales"`
	PageResponse
}

// ProductSalesStat agrégat de ventes par produit.
type ProductSalesStat struct {
	ProductName  string          `json:"product_name"`
	Quantity     int64           `json:"quantity"`
	Amount       decimal.Decimal `json:"amount"`
	Transactions int64           `json:"transactions"`
}

// PaymentMethodStat agrégat par méthode de paiement.
type PaymentMethodStat struct {
	PaymentMethod string          `json:"payment_method"`
	Count         int64           `json:"count"`
	Amount        decimal.Decimal `json:"amount"`
}

// SaleStatsResponse réponse de GET /api/sales/stats.
type SaleStatsResponse struct {
	Period             string              `json:"period"`
	TotalSales         decimal.Decimal     `json:"total_sales"`
	TotalQuantity      int64               `json:"total_quantity"`
	TotalTransactions  int64               `json:"total_transactions"`
	AverageTransaction decimal.Decimal     `json:"average_transaction"`
	ProductStats       []ProductSalesStat  `json:"product_stats"`
	PaymentStats       []PaymentMethodStat `json:"payment_stats"`
}
