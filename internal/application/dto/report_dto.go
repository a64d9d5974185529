package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/cosmolab/akompta-api/internal/domain/entity"
)

// GenerateReportRequest corps de POST /api/reports/generate.
type GenerateReportRequest struct {
	ReportType string `json:"report_type"` // daily | weekly | monthly | annual
}

// ReportResponse représentation publique d'un rapport.
type ReportResponse struct {
	ID            string          `json:"id"`
	ReportType    string          `json:"report_type"`
	PeriodStart   time.Time       `json:"report_period_start"`
	PeriodEnd     time.Time       `json:"report_period_end"`
	TotalSales    decimal.Decimal `json:"total_sales"`
	TotalExpenses decimal.Decimal `json:"total_expenses"`
	NetProfit     decimal.Decimal `json:"net_profit"`
	TotalSavings  decimal.Decimal `json:"total_savings"`
	Status        string          `json:"status"`
	GeneratedAt   time.Time       `json:"generated_at"`
}

// ToReportResponse convertit l'entité en réponse.
func ToReportResponse(r *entity.Report) *ReportResponse {
	if r == nil {
		return nil
	}
	return &ReportResponse{
		ID:            r.ID,
		ReportType:    r.ReportType,
		PeriodStart:   r.PeriodStart,
		PeriodEnd:     r.PeriodEnd,
		TotalSales:    r.TotalSales,
		TotalExpenses: r.TotalExpenses,
		NetProfit:     r.NetProfit,
		TotalSavings:  r.TotalSavings,
		Status:        r.Status,
		GeneratedAt:   r.GeneratedAt,
	}
}
