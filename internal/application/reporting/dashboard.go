package reporting

import (
	"context"
	"time"

	"github.com/cosmolab/akompta-api/internal/application/dto"
	"github.com/cosmolab/akompta-api/internal/domain/repository"
)

// DashboardUseCase assemble le tableau de bord du commerçant à partir des
// requêtes d'agrégation.
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	saleRepo      repository.SaleRepository
	productRepo   repository.ProductRepository
	now           func() time.Time
}

// NewDashboardUseCase construit le use case du tableau de bord.
func NewDashboardUseCase(
	analyticsRepo repository.AnalyticsRepository,
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
) *DashboardUseCase {
	return &DashboardUseCase{
		analyticsRepo: analyticsRepo,
		saleRepo:      saleRepo,
		productRepo:   productRepo,
		now:           time.Now,
	}
}

const (
	recentSalesLimit = 5
	topProductsLimit = 5
)

// Dashboard retourne la vue complète pour la période demandée (today par
// défaut), avec tendances calculées contre la fenêtre précédente de même
// longueur.
func (uc *DashboardUseCase) Dashboard(ctx context.Context, userID, period string) (*dto.DashboardResponse, error) {
	if period != PeriodToday && period != PeriodWeek && period != PeriodMonth {
		period = PeriodToday
	}
	window := DashboardWindow(period, uc.now())
	previous := window.Previous()

	sales, err := uc.analyticsRepo.GetSalesTotals(ctx, userID, window.Start, window.End)
	if err != nil {
		return nil, err
	}
	prevSales, err := uc.analyticsRepo.GetSalesTotals(ctx, userID, previous.Start, previous.End)
	if err != nil {
		return nil, err
	}
	expenses, err := uc.analyticsRepo.GetExpenseTotals(ctx, userID, window.Start, window.End)
	if err != nil {
		return nil, err
	}
	prevExpenses, err := uc.analyticsRepo.GetExpenseTotals(ctx, userID, previous.Start, previous.End)
	if err != nil {
		return nil, err
	}
	savings, err := uc.analyticsRepo.GetSavingsTotals(ctx, userID, window.Start, window.End)
	if err != nil {
		return nil, err
	}
	totalProducts, err := uc.analyticsRepo.CountProducts(ctx, userID)
	if err != nil {
		return nil, err
	}

	recentSales, _, err := uc.saleRepo.List(ctx, userID, &window.Start, recentSalesLimit, 0)
	if err != nil {
		return nil, err
	}
	lowStock, err := uc.productRepo.ListLowStock(ctx, userID)
	if err != nil {
		return nil, err
	}
	topProducts, err := uc.analyticsRepo.GetTopProducts(ctx, userID, window.Start, window.End, topProductsLimit)
	if err != nil {
		return nil, err
	}
	breakdown, err := uc.analyticsRepo.GetExpensesByCategory(ctx, userID, window.Start, window.End)
	if err != nil {
		return nil, err
	}

	netSavings := savings.Deposits.Sub(savings.Withdrawals)
	netProfit := sales.Amount.Sub(expenses.Amount)

	response := &dto.DashboardResponse{
		Period: period,

		// Le solde est la trésorerie disponible : le bénéfice moins ce qui
		// a été mis de côté en épargne sur la période.
		TotalBalance:  netProfit.Sub(netSavings),
		TotalSales:    sales.Amount,
		TotalExpenses: expenses.Amount,
		TotalSavings:  netSavings,
		NetProfit:     netProfit,
		TotalProducts: totalProducts,

		SalesTrend:            Trend(sales.Amount, prevSales.Amount),
		ExpensesTrend:         Trend(expenses.Amount, prevExpenses.Amount),
		SalesChangePercent:    ChangePercent(sales.Amount, prevSales.Amount),
		ExpensesChangePercent: ChangePercent(expenses.Amount, prevExpenses.Amount),

		SalesCount:    sales.Count,
		ExpensesCount: expenses.Count,
	}

	response.RecentSales = make([]*dto.SaleResponse, 0, len(recentSales))
	for _, s := range recentSales {
		response.RecentSales = append(response.RecentSales, dto.ToSaleResponse(s))
	}
	response.LowStockProducts = make([]*dto.ProductResponse, 0, len(lowStock))
	for _, p := range lowStock {
		response.LowStockProducts = append(response.LowStockProducts, dto.ToProductResponse(p))
	}
	response.TopProducts = make([]dto.TopProductStat, 0, len(topProducts))
	for _, row := range topProducts {
		response.TopProducts = append(response.TopProducts, dto.TopProductStat{
			Name:       row.ProductName,
			Quantity:   row.Quantity,
			Amount:     row.Amount,
			SalesCount: row.SalesCount,
		})
	}
	response.ExpenseBreakdown = make([]dto.CategoryStat, 0, len(breakdown))
	for _, row := range breakdown {
		response.ExpenseBreakdown = append(response.ExpenseBreakdown, dto.CategoryStat{
			Category: row.Category,
			Count:    row.Count,
			Amount:   row.Amount,
		})
	}
	return response, nil
}

// Summary retourne le résumé rapide du jour (écran d'accueil mobile).
func (uc *DashboardUseCase) Summary(ctx context.Context, userID string) (*dto.DashboardSummaryResponse, error) {
	window := DashboardWindow(PeriodToday, uc.now())

	totalProducts, err := uc.analyticsRepo.CountProducts(ctx, userID)
	if err != nil {
		return nil, err
	}
	lowStockCount, err := uc.analyticsRepo.CountLowStockProducts(ctx, userID)
	if err != nil {
		return nil, err
	}
	sales, err := uc.analyticsRepo.GetSalesTotals(ctx, userID, window.Start, window.End)
	if err != nil {
		return nil, err
	}
	expenses, err := uc.analyticsRepo.GetExpenseTotals(ctx, userID, window.Start, window.End)
	if err != nil {
		return nil, err
	}

	return &dto.DashboardSummaryResponse{
		TotalProducts:       totalProducts,
		LowStockCount:       lowStockCount,
		TodaySalesAmount:    sales.Amount,
		TodaySalesCount:     sales.Count,
		TodayExpensesAmount: expenses.Amount,
		TodayProfit:         sales.Amount.Sub(expenses.Amount),
	}, nil
}
