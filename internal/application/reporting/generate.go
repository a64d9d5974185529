package reporting

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/cosmolab/akompta-api/internal/application/dto"
	"github.com/cosmolab/akompta-api/internal/domain"
	"github.com/cosmolab/akompta-api/internal/domain/entity"
	"github.com/cosmolab/akompta-api/internal/domain/repository"
)

// reportDetailRows nombre de lignes de détail embarquées dans le PDF.
const reportDetailRows = 10

// ReportUseCase génère, liste et sert les rapports financiers PDF.
type ReportUseCase struct {
	reportRepo    repository.ReportRepository
	analyticsRepo repository.AnalyticsRepository
	saleRepo      repository.SaleRepository
	expenseRepo   repository.ExpenseRepository
	userRepo      repository.UserRepository
	pdf           PDFGenerator
	outputDir     string
	log           zerolog.Logger
	now           func() time.Time
}

// NewReportUseCase construit le use case des rapports. outputDir est le
// répertoire où les PDF générés sont écrits.
func NewReportUseCase(
	reportRepo repository.ReportRepository,
	analyticsRepo repository.AnalyticsRepository,
	saleRepo repository.SaleRepository,
	expenseRepo repository.ExpenseRepository,
	userRepo repository.UserRepository,
	pdf PDFGenerator,
	outputDir string,
	log zerolog.Logger,
) *ReportUseCase {
	return &ReportUseCase{
		reportRepo:    reportRepo,
		analyticsRepo: analyticsRepo,
		saleRepo:      saleRepo,
		expenseRepo:   expenseRepo,
		userRepo:      userRepo,
		pdf:           pdf,
		outputDir:     outputDir,
		log:           log.With().Str("component", "reports").Logger(),
		now:           time.Now,
	}
}

// Generate fige les agrégats de la période, rend le PDF, l'écrit sur disque
// et persiste la ligne de rapport. Les totaux du rapport ne seront jamais
// recalculés, même si les données sous-jacentes changent ensuite.
func (uc *ReportUseCase) Generate(ctx context.Context, userID, reportType string) (*dto.ReportResponse, error) {
	now := uc.now()
	window, err := ReportWindow(reportType, now)
	if err != nil {
		return nil, err
	}

	owner, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, domain.ErrUserNotFound
	}

	sales, err := uc.analyticsRepo.GetSalesTotals(ctx, userID, window.Start, window.End)
	if err != nil {
		return nil, err
	}
	expenses, err := uc.analyticsRepo.GetExpenseTotals(ctx, userID, window.Start, window.End)
	if err != nil {
		return nil, err
	}
	savings, err := uc.analyticsRepo.GetSavingsTotals(ctx, userID, window.Start, window.End)
	if err != nil {
		return nil, err
	}

	saleRows, salesCount, err := uc.saleRepo.List(ctx, userID, &window.Start, reportDetailRows, 0)
	if err != nil {
		return nil, err
	}
	expenseRows, expensesCount, err := uc.expenseRepo.List(ctx, userID, repository.ExpenseFilter{
		Since: &window.Start,
		Limit: reportDetailRows,
	})
	if err != nil {
		return nil, err
	}

	snapshot := &ReportSnapshot{
		Owner:         owner,
		ReportType:    reportType,
		PeriodStart:   window.Start,
		PeriodEnd:     window.End,
		GeneratedAt:   now,
		TotalSales:    sales.Amount,
		TotalExpenses: expenses.Amount,
		NetProfit:     sales.Amount.Sub(expenses.Amount),
		TotalSavings:  savings.Deposits.Sub(savings.Withdrawals),
		Sales:         saleRows,
		SalesCount:    salesCount,
		Expenses:      expenseRows,
		ExpensesCount: expensesCount,
	}

	pdfBytes, err := uc.pdf.Generate(snapshot)
	if err != nil {
		return nil, fmt.Errorf("génération du PDF: %w", err)
	}

	reportID := uuid.New().String()
	filePath := filepath.Join(uc.outputDir, fmt.Sprintf("rapport_%s_%s.pdf", reportType, reportID))
	if err := os.MkdirAll(uc.outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("répertoire des rapports: %w", err)
	}
	if err := os.WriteFile(filePath, pdfBytes, 0o644); err != nil {
		return nil, fmt.Errorf("écriture du PDF: %w", err)
	}

	report := &entity.Report{
		ID:            reportID,
		UserID:        userID,
		ReportType:    reportType,
		PeriodStart:   window.Start,
		PeriodEnd:     window.End,
		TotalSales:    snapshot.TotalSales,
		TotalExpenses: snapshot.TotalExpenses,
		NetProfit:     snapshot.NetProfit,
		TotalSavings:  snapshot.TotalSavings,
		FilePath:      filePath,
		Status:        entity.ReportStatusGenerated,
		GeneratedAt:   now,
	}
	if err := uc.reportRepo.Create(ctx, report); err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("report_id", report.ID).
		Str("type", reportType).
		Str("file", filePath).
		Msg("rapport généré")

	return dto.ToReportResponse(report), nil
}

// List retourne les rapports du user, les plus récents d'abord.
func (uc *ReportUseCase) List(ctx context.Context, userID string) ([]*dto.ReportResponse, error) {
	reports, err := uc.reportRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ReportResponse, 0, len(reports))
	for _, r := range reports {
		out = append(out, dto.ToReportResponse(r))
	}
	return out, nil
}

// Download retourne le rapport et vérifie que son PDF existe encore sur
// disque. ErrNotFound si le rapport ou le fichier a disparu.
func (uc *ReportUseCase) Download(ctx context.Context, userID, id string) (*entity.Report, error) {
	report, err := uc.reportRepo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if report == nil {
		return nil, domain.ErrNotFound
	}
	if _, err := os.Stat(report.FilePath); err != nil {
		return nil, fmt.Errorf("%w: fichier PDF introuvable", domain.ErrNotFound)
	}
	return report, nil
}

// Delete supprime le rapport et son PDF. Un fichier déjà absent n'est pas
// une erreur.
func (uc *ReportUseCase) Delete(ctx context.Context, userID, id string) error {
	report, err := uc.reportRepo.GetByID(ctx, userID, id)
	if err != nil {
		return err
	}
	if report == nil {
		return domain.ErrNotFound
	}
	if err := uc.reportRepo.Delete(ctx, userID, id); err != nil {
		return err
	}
	if report.FilePath != "" {
		if err := os.Remove(report.FilePath); err != nil && !os.IsNotExist(err) {
			uc.log.Warn().Err(err).Str("file", report.FilePath).Msg("PDF non supprimé")
		}
	}
	return nil
}
