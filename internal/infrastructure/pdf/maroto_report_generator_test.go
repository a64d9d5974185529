package pdf

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cosmolab/akompta-api/internal/application/reporting"
	"github.com/cosmolab/akompta-api/internal/domain/entity"
)

func snapshotFor(reportType string) *reporting.ReportSnapshot {
	start := time.Date(2025, time.June, 4, 0, 0, 0, 0, time.UTC)
	return &reporting.ReportSnapshot{
		Owner:         &entity.User{Username: "awa", BusinessName: "Boutique Awa"},
		ReportType:    reportType,
		PeriodStart:   start,
		PeriodEnd:     start.AddDate(0, 0, 7),
		GeneratedAt:   start.AddDate(0, 0, 7).Add(9 * time.Hour),
		TotalSales:    decimal.NewFromInt(45000),
		TotalExpenses: decimal.NewFromInt(12000),
		NetProfit:     decimal.NewFromInt(33000),
		TotalSavings:  decimal.NewFromInt(5000),
		Sales: []*entity.Sale{
			{
				ProductName: "Savon de Marseille",
				Quantity:    3,
				UnitPrice:   decimal.NewFromInt(500),
				TotalAmount: decimal.NewFromInt(1500),
				SaleDate:    start.Add(26 * time.Hour),
			},
		},
		SalesCount: 12,
		Expenses: []*entity.Expense{
			{
				Description: "taxi pour le marché",
				Category:    "transport",
				Amount:      decimal.NewFromInt(2000),
				ExpenseDate: start.Add(30 * time.Hour),
			},
		},
		ExpensesCount: 4,
	}
}

func TestGenerate_RendLeDocumentPourChaqueType(t *testing.T) {
	g := NewMarotoReportGenerator()
	for _, reportType := range []string{
		entity.ReportDaily, entity.ReportWeekly, entity.ReportMonthly, entity.ReportAnnual,
	} {
		doc, err := g.Generate(snapshotFor(reportType))
		require.NoError(t, err, "le rapport %s doit se générer", reportType)
		assert.NotEmpty(t, doc, "le PDF %s ne doit pas être vide", reportType)
	}
}

func TestGenerate_PeriodeVide(t *testing.T) {
	snapshot := snapshotFor(entity.ReportDaily)
	snapshot.Sales = nil
	snapshot.SalesCount = 0
	snapshot.Expenses = nil
	snapshot.ExpensesCount = 0

	doc, err := NewMarotoReportGenerator().Generate(snapshot)
	require.NoError(t, err)
	assert.NotEmpty(t, doc)
}

func TestFcfa_SeparateurDeMilliers(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{0, "0 FCFA"},
		{500, "500 FCFA"},
		{1500, "1 500 FCFA"},
		{25000, "25 000 FCFA"},
		{1000000, "1 000 000 FCFA"},
		{-12500, "-12 500 FCFA"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, fcfa(decimal.NewFromInt(c.in)))
	}
}

func TestFcfa_ArrondiSansDecimales(t *testing.T) {
	assert.Equal(t, "1 500 FCFA", fcfa(decimal.NewFromFloat(1499.6)))
}
