package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cosmolab/akompta-api/internal/application/dto"
	"github.com/cosmolab/akompta-api/internal/application/usecase"
	"github.com/cosmolab/akompta-api/internal/domain"
	"github.com/cosmolab/akompta-api/internal/domain/entity"
	"github.com/cosmolab/akompta-api/internal/domain/repository"
	"github.com/cosmolab/akompta-api/pkg/momo"
)

const testUserID = "user-1"

type fakeSavingsRepo struct {
	items map[string]*entity.Savings
}

func newFakeSavingsRepo() *fakeSavingsRepo {
	return &fakeSavingsRepo{items: make(map[string]*entity.Savings)}
}

func (r *fakeSavingsRepo) Create(_ context.Context, s *entity.Savings) error {
	r.items[s.ID] = s
	return nil
}

func (r *fakeSavingsRepo) GetByID(_ context.Context, userID, id string) (*entity.Savings, error) {
	s, ok := r.items[id]
	if !ok || s.UserID != userID {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *fakeSavingsRepo) List(_ context.Context, userID string, filter repository.SavingsFilter) ([]*entity.Savings, int, error) {
	var out []*entity.Savings
	for _, s := range r.items {
		if s.UserID != userID {
			continue
		}
		if filter.TransactionType != "" && s.TransactionType != filter.TransactionType {
			continue
		}
		if filter.Status != "" && s.Status != filter.Status {
			continue
		}
		cp := *s
		out = append(out, &cp)
	}
	return out, len(out), nil
}

func (r *fakeSavingsRepo) Update(_ context.Context, s *entity.Savings) error {
	r.items[s.ID] = s
	return nil
}

func (r *fakeSavingsRepo) Delete(_ context.Context, userID, id string) error {
	delete(r.items, id)
	return nil
}

// stubAnalytics ne sert que GetSavingsBalance dans ces tests.
type stubAnalytics struct {
	balance repository.SavingsBalance
}

func (s *stubAnalytics) GetSalesTotals(_ context.Context, _ string, _, _ time.Time) (repository.SalesTotals, error) {
	return repository.SalesTotals{}, nil
}

func (s *stubAnalytics) GetExpenseTotals(_ context.Context, _ string, _, _ time.Time) (repository.ExpenseTotals, error) {
	return repository.ExpenseTotals{}, nil
}

func (s *stubAnalytics) GetSavingsTotals(_ context.Context, _ string, _, _ time.Time) (repository.SavingsTotals, error) {
	return repository.SavingsTotals{}, nil
}

func (s *stubAnalytics) GetSavingsBalance(_ context.Context, _ string) (repository.SavingsBalance, error) {
	return s.balance, nil
}

func (s *stubAnalytics) GetTopProducts(_ context.Context, _ string, _, _ time.Time, _ int) ([]repository.TopProductRow, error) {
	return nil, nil
}

func (s *stubAnalytics) GetExpensesByCategory(_ context.Context, _ string, _, _ time.Time) ([]repository.CategoryBreakdownRow, error) {
	return nil, nil
}

func (s *stubAnalytics) GetSalesByPaymentMethod(_ context.Context, _ string, _, _ time.Time) ([]repository.PaymentMethodRow, error) {
	return nil, nil
}

func (s *stubAnalytics) GetExpensesByPaymentMethod(_ context.Context, _ string, _, _ time.Time) ([]repository.PaymentMethodRow, error) {
	return nil, nil
}

func (s *stubAnalytics) CountProducts(_ context.Context, _ string) (int64, error) { return 0, nil }

func (s *stubAnalytics) CountLowStockProducts(_ context.Context, _ string) (int64, error) {
	return 0, nil
}

func newSavingsUC() (*usecase.SavingsUseCase, *fakeSavingsRepo, *stubAnalytics) {
	repo := newFakeSavingsRepo()
	analytics := &stubAnalytics{}
	return usecase.NewSavingsUseCase(repo, analytics), repo, analytics
}

func strPtr(v string) *string { return &v }

// ── Création ──────────────────────────────────────────────────────────────────

func TestSavingsCreate_DemarreEnPending(t *testing.T) {
	uc, repo, _ := newSavingsUC()

	resp, err := uc.Create(context.Background(), testUserID, dto.CreateSavingsRequest{
		Amount:              decimal.NewFromInt(10000),
		TransactionType:     entity.SavingsDeposit,
		MobileMoneyProvider: momo.ProviderMTN,
	})
	require.NoError(t, err)

	assert.Equal(t, entity.SavingsStatusPending, resp.Status,
		"toute transaction démarre en pending")
	assert.Equal(t, entity.SavingsPaymentMobileMoney, resp.PaymentMethod,
		"mobile_money par défaut")
	assert.Len(t, repo.items, 1)
}

func TestSavingsCreate_TypeInvalide(t *testing.T) {
	uc, _, _ := newSavingsUC()
	_, err := uc.Create(context.Background(), testUserID, dto.CreateSavingsRequest{
		Amount:          decimal.NewFromInt(1000),
		TransactionType: "transfer",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSavingsCreate_MontantNonPositif(t *testing.T) {
	uc, _, _ := newSavingsUC()
	_, err := uc.Create(context.Background(), testUserID, dto.CreateSavingsRequest{
		Amount:          decimal.Zero,
		TransactionType: entity.SavingsDeposit,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSavingsCreate_OperateurInconnu(t *testing.T) {
	uc, _, _ := newSavingsUC()
	_, err := uc.Create(context.Background(), testUserID, dto.CreateSavingsRequest{
		Amount:              decimal.NewFromInt(1000),
		TransactionType:     entity.SavingsDeposit,
		MobileMoneyProvider: "wave",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ── Machine à états ───────────────────────────────────────────────────────────

func seedSavings(repo *fakeSavingsRepo, id, status string) {
	repo.items[id] = &entity.Savings{
		ID:              id,
		UserID:          testUserID,
		Amount:          decimal.NewFromInt(5000),
		TransactionType: entity.SavingsDeposit,
		PaymentMethod:   entity.SavingsPaymentMobileMoney,
		Status:          status,
	}
}

func TestSavingsUpdate_PendingVersCompleted(t *testing.T) {
	uc, repo, _ := newSavingsUC()
	seedSavings(repo, "s1", entity.SavingsStatusPending)

	resp, err := uc.Update(context.Background(), testUserID, "s1", dto.UpdateSavingsRequest{
		Status:                strPtr(entity.SavingsStatusCompleted),
		ExternalTransactionID: strPtr("MP240611.1542.A12345"),
	})
	require.NoError(t, err)
	assert.Equal(t, entity.SavingsStatusCompleted, resp.Status)
	assert.Equal(t, "MP240611.1542.A12345", resp.ExternalTransactionID)
}

func TestSavingsUpdate_PendingVersFailed(t *testing.T) {
	uc, repo, _ := newSavingsUC()
	seedSavings(repo, "s1", entity.SavingsStatusPending)

	resp, err := uc.Update(context.Background(), testUserID, "s1", dto.UpdateSavingsRequest{
		Status: strPtr(entity.SavingsStatusFailed),
	})
	require.NoError(t, err)
	assert.Equal(t, entity.SavingsStatusFailed, resp.Status)
}

func TestSavingsUpdate_CompletedEstTerminal(t *testing.T) {
	uc, repo, _ := newSavingsUC()
	seedSavings(repo, "s1", entity.SavingsStatusCompleted)

	_, err := uc.Update(context.Background(), testUserID, "s1", dto.UpdateSavingsRequest{
		Status: strPtr(entity.SavingsStatusPending),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidState,
		"completed ne revient jamais en pending")
}

func TestSavingsUpdate_FailedEstTerminal(t *testing.T) {
	uc, repo, _ := newSavingsUC()
	seedSavings(repo, "s1", entity.SavingsStatusFailed)

	_, err := uc.Update(context.Background(), testUserID, "s1", dto.UpdateSavingsRequest{
		Status: strPtr(entity.SavingsStatusCompleted),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestSavingsUpdate_NotesSansChangementDeStatut(t *testing.T) {
	uc, repo, _ := newSavingsUC()
	seedSavings(repo, "s1", entity.SavingsStatusCompleted)

	resp, err := uc.Update(context.Background(), testUserID, "s1", dto.UpdateSavingsRequest{
		Notes: strPtr("reçu vérifié"),
	})
	require.NoError(t, err, "les notes restent modifiables sur un état terminal")
	assert.Equal(t, "reçu vérifié", resp.Notes)
}

// ── Suppression ───────────────────────────────────────────────────────────────

func TestSavingsDelete_PendingSupprimable(t *testing.T) {
	uc, repo, _ := newSavingsUC()
	seedSavings(repo, "s1", entity.SavingsStatusPending)

	require.NoError(t, uc.Delete(context.Background(), testUserID, "s1"))
	assert.Empty(t, repo.items)
}

func TestSavingsDelete_CompletedRefusee(t *testing.T) {
	uc, repo, _ := newSavingsUC()
	seedSavings(repo, "s1", entity.SavingsStatusCompleted)

	err := uc.Delete(context.Background(), testUserID, "s1")
	assert.ErrorIs(t, err, domain.ErrInvalidState)
	assert.Len(t, repo.items, 1, "la transaction completed reste en place")
}

// ── Solde ─────────────────────────────────────────────────────────────────────

func TestSavingsBalance_SeulCompletedCompte(t *testing.T) {
	uc, _, analytics := newSavingsUC()
	analytics.balance = repository.SavingsBalance{
		Deposits:           decimal.NewFromInt(50000),
		Withdrawals:        decimal.NewFromInt(20000),
		PendingDeposits:    decimal.NewFromInt(10000),
		PendingWithdrawals: decimal.NewFromInt(5000),
	}

	resp, err := uc.Balance(context.Background(), testUserID)
	require.NoError(t, err)

	assert.True(t, decimal.NewFromInt(30000).Equal(resp.Balance),
		"solde = dépôts completed - retraits completed")
	assert.True(t, decimal.NewFromInt(25000).Equal(resp.AvailableBalance),
		"disponible = solde - retraits pending")
	assert.True(t, decimal.NewFromInt(10000).Equal(resp.PendingDeposits))
}

func TestSavingsProviders_CatalogueComplet(t *testing.T) {
	uc, _, _ := newSavingsUC()
	providers := uc.Providers()
	require.Len(t, providers, 3)
	assert.Equal(t, momo.ProviderMTN, providers[0].ID)
}
