package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Types de rapport et leur fenêtre de repli (sans alignement calendaire :
// "monthly" = 30 jours glissants, "annual" = 365 jours).
const (
	ReportDaily   = "daily"   // depuis 0h00 aujourd'hui
	ReportWeekly  = "weekly"  // 7 jours glissants
	ReportMonthly = "monthly" // 30 jours glissants
	ReportAnnual  = "annual"  // 365 jours glissants
)

// Statuts d'un rapport généré.
const (
	ReportStatusGenerated = "generated"
	ReportStatusSent      = "sent"
	ReportStatusArchived  = "archived"
)

// Report instantané financier d'une période. Les totaux sont figés à la
// génération et ne sont jamais recalculés, même si les ventes ou dépenses
// sous-jacentes changent ensuite.
type Report struct {
	ID            string
	UserID        string
	ReportType    string // daily, weekly, monthly, annual
	PeriodStart   time.Time
	PeriodEnd     time.Time
	TotalSales    decimal.Decimal
	TotalExpenses decimal.Decimal
	NetProfit     decimal.Decimal // TotalSales - TotalExpenses
	TotalSavings  decimal.Decimal // dépôts - retraits, completed uniquement
	FilePath      string          // chemin du PDF généré
	Status        string
	GeneratedAt   time.Time
}

// IsValidReportType indique si le type de rapport est reconnu.
func IsValidReportType(t string) bool {
	switch t {
	case ReportDaily, ReportWeekly, ReportMonthly, ReportAnnual:
		return true
	}
	return false
}
