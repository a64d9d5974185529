package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cosmolab/akompta-api/internal/application/dto"
	"github.com/cosmolab/akompta-api/internal/application/ledger"
	"github.com/cosmolab/akompta-api/internal/application/reporting"
	"github.com/cosmolab/akompta-api/internal/domain"
	"github.com/cosmolab/akompta-api/internal/domain/repository"
)

// Périodes de filtrage des listes et statistiques.
const (
	FilterToday = "today"
	FilterWeek  = "week"
	FilterMonth = "month"
	FilterAll   = "all"
)

// periodSince traduit une période de filtrage en borne basse, nil pour "all"
// ou une valeur inconnue.
func periodSince(period string, now time.Time) *time.Time {
	switch period {
	case FilterToday, FilterWeek, FilterMonth:
		w := reporting.DashboardWindow(period, now)
		return &w.Start
	default:
		return nil
	}
}

const statsTopProducts = 5

// SaleUseCase cas d'usage des ventes. L'enregistrement et l'annulation
// passent par le moteur transactionnel.
type SaleUseCase struct {
	saleRepo      repository.SaleRepository
	analyticsRepo repository.AnalyticsRepository
	applier       *ledger.Applier
	now           func() time.Time
}

// NewSaleUseCase construit le cas d'usage ventes.
func NewSaleUseCase(
	saleRepo repository.SaleRepository,
	analyticsRepo repository.AnalyticsRepository,
	applier *ledger.Applier,
) *SaleUseCase {
	return &SaleUseCase{
		saleRepo:      saleRepo,
		analyticsRepo: analyticsRepo,
		applier:       applier,
		now:           time.Now,
	}
}

// Create enregistre une vente via le moteur transactionnel : stock revérifié
// sous verrou, total recalculé côté serveur.
func (uc *SaleUseCase) Create(ctx context.Context, userID string, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if in.ProductID == "" {
		return nil, domain.ErrInvalidInput
	}
	result, err := uc.applier.ApplySale(ctx, userID, ledger.SaleInput{
		ProductID:     in.ProductID,
		Quantity:      in.Quantity,
		UnitPrice:     in.UnitPrice,
		PaymentMethod: in.PaymentMethod,
		Notes:         in.Notes,
	})
	if err != nil {
		return nil, err
	}
	return dto.ToSaleResponse(result.Sale), nil
}

// Get retourne une vente du user.
func (uc *SaleUseCase) Get(ctx context.Context, userID, id string) (*dto.SaleResponse, error) {
	sale, err := uc.saleRepo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	return dto.ToSaleResponse(sale), nil
}

// List retourne les ventes paginées, filtrées par période (today, week,
// month, all), les plus récentes d'abord.
func (uc *SaleUseCase) List(ctx context.Context, userID, period string, page dto.PageRequest) (*dto.SaleListResponse, error) {
	page.DefaultPage()
	since := periodSince(period, uc.now())

	sales, total, err := uc.saleRepo.List(ctx, userID, since, page.PerPage, page.Offset())
	if err != nil {
		return nil, err
	}

	out := &dto.SaleListResponse{
		Sales:        make([]*dto.SaleResponse, 0, len(sales)),
		PageResponse: dto.NewPageResponse(total, page.PerPage, page.Page),
	}
	for _, s := range sales {
		out.Sales = append(out.Sales, dto.ToSaleResponse(s))
	}
	return out, nil
}

// Delete annule une vente : suppression et restitution du stock via le
// moteur transactionnel.
func (uc *SaleUseCase) Delete(ctx context.Context, userID, id string) error {
	return uc.applier.ReverseSale(ctx, userID, id)
}

// Stats retourne les agrégats de ventes de la période : totaux, panier
// moyen, classement produits et répartition par méthode de paiement.
func (uc *SaleUseCase) Stats(ctx context.Context, userID, period string) (*dto.SaleStatsResponse, error) {
	now := uc.now()
	window := reporting.DashboardWindow(period, now)
	if period != FilterToday && period != FilterWeek && period != FilterMonth {
		period = FilterAll
		// toutes périodes: borne basse à l'époque Unix
		window.Start = time.Unix(0, 0)
	}

	totals, err := uc.analyticsRepo.GetSalesTotals(ctx, userID, window.Start, window.End)
	if err != nil {
		return nil, err
	}
	topProducts, err := uc.analyticsRepo.GetTopProducts(ctx, userID, window.Start, window.End, statsTopProducts)
	if err != nil {
		return nil, err
	}
	byPayment, err := uc.analyticsRepo.GetSalesByPaymentMethod(ctx, userID, window.Start, window.End)
	if err != nil {
		return nil, err
	}

	average := decimal.Zero
	if totals.Count > 0 {
		average = totals.Amount.Div(decimal.NewFromInt(totals.Count)).Round(2)
	}

	stats := &dto.SaleStatsResponse{
		Period:             period,
		TotalSales:         totals.Amount,
		TotalQuantity:      totals.Quantity,
		TotalTransactions:  totals.Count,
		AverageTransaction: average,
		ProductStats:       make([]dto.ProductSalesStat, 0, len(topProducts)),
		PaymentStats:       make([]dto.PaymentMethodStat, 0, len(byPayment)),
	}
	for _, row := range topProducts {
		stats.ProductStats = append(stats.ProductStats, dto.ProductSalesStat{
			ProductName:  row.ProductName,
			Quantity:     row.Quantity,
			Amount:       row.Amount,
			Transactions: row.SalesCount,
		})
	}
	for _, row := range byPayment {
		stats.PaymentStats = append(stats.PaymentStats, dto.PaymentMethodStat{
			PaymentMethod: row.PaymentMethod,
			Count:         row.Count,
			Amount:        row.Amount,
		})
	}
	return stats, nil
}
