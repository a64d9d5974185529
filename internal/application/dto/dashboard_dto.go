package dto

import "github.com/shopspring/decimal"

// DashboardResponse réponse de GET /api/dashboard.
// Les tendances comparent la fenêtre courante à la fenêtre précédente de
// même longueur : up si strictement supérieure, down si strictement
// inférieure, stable sinon.
type DashboardResponse struct {
	Period string `json:"period"`

	TotalBalance  decimal.Decimal `json:"total_balance"`
	TotalSales    decimal.Decimal `json:"total_sales"`
	TotalExpenses decimal.Decimal `json:"total_expenses"`
	TotalSavings  decimal.Decimal `json:"total_savings"`
	NetProfit     decimal.Decimal `json:"net_profit"`
	TotalProducts int64           `json:"total_products"`

	SalesTrend            string          `json:"sales_trend"`    // up | down | stable
	ExpensesTrend         string          `json:"expenses_trend"` // up | down | stable
	SalesChangePercent    decimal.Decimal `json:"sales_change_percent"`
	ExpensesChangePercent decimal.Decimal `json:"expenses_change_percent"`

	SalesCount    int64 `json:"sales_count"`
	ExpensesCount int64 `json:"expenses_count"`

	RecentSales      []*SaleResponse    `json:"recent_sales"`
	LowStockProducts []*ProductResponse `json:"low_stock_products"`
	TopProducts      []TopProductStat   `json:"top_products"`
	ExpenseBreakdown []CategoryStat     `json:"expense_categories"`
}

// TopProductStat ligne du classement des produits les plus vendus.
type TopProductStat struct {
	Name       string          `json:"name"`
	Quantity   int64           `json:"total_quantity"`
	Amount     decimal.Decimal `json:"total_amount"`
	SalesCount int64           `json:"sales_count"`
}

// DashboardSummaryResponse réponse de GET /api/dashboard/summary (résumé du jour).
type DashboardSummaryResponse struct {
	TotalProducts       int64           `json:"total_products"`
	LowStockCount       int64           `json:"low_stock_count"`
	TodaySalesAmount    decimal.Decimal `json:"today_sales_amount"`
	TodaySalesCount     int64           `json:"today_sales_count"`
	TodayExpensesAmount decimal.Decimal `json:"today_expenses_amount"`
	TodayProfit         decimal.Decimal `json:"today_profit"`
}
