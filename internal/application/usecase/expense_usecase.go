package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cosmolab/akompta-api/internal/application/dto"
	"github.com/cosmolab/akompta-api/internal/application/ledger"
	"github.com/cosmolab/akompta-api/internal/application/reporting"
	"github.com/cosmolab/akompta-api/internal/domain"
	"github.com/cosmolab/akompta-api/internal/domain/entity"
	"github.com/cosmolab/akompta-api/internal/domain/repository"
)

// ExpenseUseCase cas d'usage des dépenses.
type ExpenseUseCase struct {
	expenseRepo   repository.ExpenseRepository
	analyticsRepo repository.AnalyticsRepository
	applier       *ledger.Applier
	now           func() time.Time
}

// NewExpenseUseCase construit le cas d'usage dépenses.
func NewExpenseUseCase(
	expenseRepo repository.ExpenseRepository,
	analyticsRepo repository.AnalyticsRepository,
	applier *ledger.Applier,
) *ExpenseUseCase {
	return &ExpenseUseCase{
		expenseRepo:   expenseRepo,
		analyticsRepo: analyticsRepo,
		applier:       applier,
		now:           time.Now,
	}
}

// Create enregistre une dépense.
func (uc *ExpenseUseCase) Create(ctx context.Context, userID string, in dto.CreateExpenseRequest) (*dto.ExpenseResponse, error) {
	expense, err := uc.applier.ApplyExpense(ctx, userID, ledger.ExpenseInput{
		Amount:        in.Amount,
		Description:   in.Description,
		Category:      in.Category,
		PaymentMethod: in.PaymentMethod,
		ExpenseDate:   in.ExpenseDate,
		Notes:         in.Notes,
	})
	if err != nil {
		return nil, err
	}
	if in.ReceiptURL != "" {
		expense.ReceiptURL = in.ReceiptURL
		if err := uc.expenseRepo.Update(ctx, expense); err != nil {
			return nil, err
		}
	}
	return dto.ToExpenseResponse(expense), nil
}

// Get retourne une dépense du user.
func (uc *ExpenseUseCase) Get(ctx context.Context, userID, id string) (*dto.ExpenseResponse, error) {
	expense, err := uc.expenseRepo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if expense == nil {
		return nil, domain.ErrNotFound
	}
	return dto.ToExpenseResponse(expense), nil
}

// List retourne les dépenses paginées, filtrées par catégorie et période.
func (uc *ExpenseUseCase) List(ctx context.Context, userID, category, period string, page dto.PageRequest) (*dto.ExpenseListResponse, error) {
	page.DefaultPage()
	filter := repository.ExpenseFilter{
		Since:  periodSince(period, uc.now()),
		Limit:  page.PerPage,
		Offset: page.Offset(),
	}
	if category != "" && category != "all" {
		filter.Category = entity.NormalizeExpenseCategory(category)
	}

	expenses, total, err := uc.expenseRepo.List(ctx, userID, filter)
	if err != nil {
		return nil, err
	}

	out := &dto.ExpenseListResponse{
		Expenses:     make([]*dto.ExpenseResponse, 0, len(expenses)),
		PageResponse: dto.NewPageResponse(total, page.PerPage, page.Page),
	}
	for _, e := range expenses {
		out.Expenses = append(out.Expenses, dto.ToExpenseResponse(e))
	}
	return out, nil
}

// Update modifie les champs fournis d'une dépense existante.
func (uc *ExpenseUseCase) Update(ctx context.Context, userID, id string, in dto.UpdateExpenseRequest) (*dto.ExpenseResponse, error) {
	expense, err := uc.expenseRepo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if expense == nil {
		return nil, domain.ErrNotFound
	}

	if in.Description != nil {
		description := strings.TrimSpace(*in.Description)
		if description == "" {
			return nil, fmt.Errorf("%w: la description ne peut pas être vide", domain.ErrInvalidInput)
		}
		expense.Description = description
	}
	if in.Amount != nil {
		if !in.Amount.IsPositive() {
			return nil, fmt.Errorf("%w: le montant doit être positif", domain.ErrInvalidInput)
		}
		expense.Amount = *in.Amount
	}
	if in.Category != nil {
		expense.Category = entity.NormalizeExpenseCategory(*in.Category)
	}
	if in.PaymentMethod != nil {
		expense.PaymentMethod = *in.PaymentMethod
	}
	if in.ReceiptURL != nil {
		expense.ReceiptURL = *in.ReceiptURL
	}
	if in.Notes != nil {
		expense.Notes = *in.Notes
	}
	if in.ExpenseDate != nil {
		expense.ExpenseDate = *in.ExpenseDate
	}

	if err := uc.expenseRepo.Update(ctx, expense); err != nil {
		return nil, err
	}
	return dto.ToExpenseResponse(expense), nil
}

// Delete supprime une dépense.
func (uc *ExpenseUseCase) Delete(ctx context.Context, userID, id string) error {
	expense, err := uc.expenseRepo.GetByID(ctx, userID, id)
	if err != nil {
		return err
	}
	if expense == nil {
		return domain.ErrNotFound
	}
	return uc.expenseRepo.Delete(ctx, userID, id)
}

// Stats retourne les agrégats de dépenses de la période : totaux, moyenne,
// répartitions par catégorie et méthode de paiement.
func (uc *ExpenseUseCase) Stats(ctx context.Context, userID, period string) (*dto.ExpenseStatsResponse, error) {
	now := uc.now()
	window := reporting.DashboardWindow(period, now)
	if period != FilterToday && period != FilterWeek && period != FilterMonth {
		period = FilterAll
		window.Start = time.Unix(0, 0)
	}

	totals, err := uc.analyticsRepo.GetExpenseTotals(ctx, userID, window.Start, window.End)
	if err != nil {
		return nil, err
	}
	byCategory, err := uc.analyticsRepo.GetExpensesByCategory(ctx, userID, window.Start, window.End)
	if err != nil {
		return nil, err
	}
	byPayment, err := uc.analyticsRepo.GetExpensesByPaymentMethod(ctx, userID, window.Start, window.End)
	if err != nil {
		return nil, err
	}

	average := decimal.Zero
	if totals.Count > 0 {
		average = totals.Amount.Div(decimal.NewFromInt(totals.Count)).Round(2)
	}

	stats := &dto.ExpenseStatsResponse{
		Period:             period,
		TotalExpenses:      totals.Amount,
		TotalTransactions:  totals.Count,
		AverageTransaction: average,
		CategoryStats:      make([]dto.CategoryStat, 0, len(byCategory)),
		PaymentStats:       make([]dto.PaymentMethodStat, 0, len(byPayment)),
	}
	for _, row := range byCategory {
		stats.CategoryStats = append(stats.CategoryStats, dto.CategoryStat{
			Category: row.Category,
			Count:    row.Count,
			Amount:   row.Amount,
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

// Categories retourne le catalogue des catégories de dépense.
func (uc *ExpenseUseCase) Categories() []dto.ExpenseCategoryItem {
	labels := map[string]string{
		entity.ExpenseCategoryTransport:     "Transport",
		entity.ExpenseCategoryAchatStock:    "Achat de stock",
		entity.ExpenseCategoryEquipement:    "Équipement",
		entity.ExpenseCategoryCommunication: "Communication",
		entity.ExpenseCategoryMarketing:     "Marketing",
		entity.ExpenseCategoryMaintenance:   "Maintenance",
		entity.ExpenseCategoryFormation:     "Formation",
		entity.ExpenseCategoryAutres:        "Autres",
	}
	out := make([]dto.ExpenseCategoryItem, 0, len(entity.ExpenseCategories))
	for _, id := range entity.ExpenseCategories {
		out = append(out, dto.ExpenseCategoryItem{ID: id, Name: labels[id]})
	}
	return out
}
