package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/cosmolab/akompta-api/internal/application/dto"
	"github.com/cosmolab/akompta-api/internal/domain"
	"github.com/cosmolab/akompta-api/internal/domain/entity"
	"github.com/cosmolab/akompta-api/internal/domain/repository"
	"github.com/cosmolab/akompta-api/pkg/momo"
)

// SavingsUseCase cas d'usage de l'épargne. Le suivi Mobile Money est
// déclaratif : aucune intégration de paiement, le commerçant saisit ses
// transactions et fait évoluer leur statut.
type SavingsUseCase struct {
	savingsRepo   repository.SavingsRepository
	analyticsRepo repository.AnalyticsRepository
}

// NewSavingsUseCase construit le cas d'usage épargne.
func NewSavingsUseCase(savingsRepo repository.SavingsRepository, analyticsRepo repository.AnalyticsRepository) *SavingsUseCase {
	return &SavingsUseCase{savingsRepo: savingsRepo, analyticsRepo: analyticsRepo}
}

// Create enregistre une transaction d'épargne en statut pending.
func (uc *SavingsUseCase) Create(ctx context.Context, userID string, in dto.CreateSavingsRequest) (*dto.SavingsResponse, error) {
	if !in.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: le montant doit être positif", domain.ErrInvalidInput)
	}
	if !entity.IsValidSavingsType(in.TransactionType) {
		return nil, fmt.Errorf("%w: type de transaction invalide: %s", domain.ErrInvalidInput, in.TransactionType)
	}
	paymentMethod := in.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = entity.SavingsPaymentMobileMoney
	}
	if !entity.IsValidSavingsPaymentMethod(paymentMethod) {
		return nil, fmt.Errorf("%w: méthode de paiement invalide: %s", domain.ErrInvalidInput, paymentMethod)
	}
	if paymentMethod == entity.SavingsPaymentMobileMoney && in.MobileMoneyProvider != "" &&
		!momo.IsValid(in.MobileMoneyProvider) {
		return nil, fmt.Errorf("%w: opérateur Mobile Money inconnu: %s", domain.ErrInvalidInput, in.MobileMoneyProvider)
	}

	transactionDate := time.Now().UTC()
	if in.TransactionDate != nil {
		transactionDate = *in.TransactionDate
	}

	savings := &entity.Savings{
		ID:                    uuid.New().String(),
		UserID:                userID,
		Amount:                in.Amount,
		TransactionType:       in.TransactionType,
		PaymentMethod:         paymentMethod,
		MobileMoneyProvider:   in.MobileMoneyProvider,
		ExternalTransactionID: in.ExternalTransactionID,
		TransactionDate:       transactionDate,
		Status:                entity.SavingsStatusPending,
		Notes:                 in.Notes,
	}
	if err := uc.savingsRepo.Create(ctx, savings); err != nil {
		return nil, err
	}
	return dto.ToSavingsResponse(savings), nil
}

// Get retourne une transaction d'épargne du user.
func (uc *SavingsUseCase) Get(ctx context.Context, userID, id string) (*dto.SavingsResponse, error) {
	savings, err := uc.savingsRepo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if savings == nil {
		return nil, domain.ErrNotFound
	}
	return dto.ToSavingsResponse(savings), nil
}

// List retourne les transactions paginées, filtrées par type et statut.
func (uc *SavingsUseCase) List(ctx context.Context, userID, transactionType, status string, page dto.PageRequest) (*dto.SavingsListResponse, error) {
	page.DefaultPage()
	filter := repository.SavingsFilter{
		TransactionType: transactionType,
		Status:          status,
		Limit:           page.PerPage,
		Offset:          page.Offset(),
	}

	items, total, err := uc.savingsRepo.List(ctx, userID, filter)
	if err != nil {
		return nil, err
	}

	out := &dto.SavingsListResponse{
		Savings:      make([]*dto.SavingsResponse, 0, len(items)),
		PageResponse: dto.NewPageResponse(total, page.PerPage, page.Page),
	}
	for _, s := range items {
		out.Savings = append(out.Savings, dto.ToSavingsResponse(s))
	}
	return out, nil
}

// Update fait évoluer une transaction. Le statut suit une machine à sens
// unique : seule une transaction pending peut passer à completed ou failed,
// les états terminaux sont immuables (ErrInvalidState).
func (uc *SavingsUseCase) Update(ctx context.Context, userID, id string, in dto.UpdateSavingsRequest) (*dto.SavingsResponse, error) {
	savings, err := uc.savingsRepo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if savings == nil {
		return nil, domain.ErrNotFound
	}

	if in.Status != nil && *in.Status != savings.Status {
		if !entity.IsValidSavingsStatus(*in.Status) {
			return nil, fmt.Errorf("%w: statut invalide: %s", domain.ErrInvalidInput, *in.Status)
		}
		if !savings.CanTransitionTo(*in.Status) {
			return nil, fmt.Errorf("%w: transition %s -> %s interdite",
				domain.ErrInvalidState, savings.Status, *in.Status)
		}
		savings.Status = *in.Status
	}
	if in.ExternalTransactionID != nil {
		savings.ExternalTransactionID = *in.ExternalTransactionID
	}
	if in.Notes != nil {
		savings.Notes = *in.Notes
	}

	if err := uc.savingsRepo.Update(ctx, savings); err != nil {
		return nil, err
	}
	return dto.ToSavingsResponse(savings), nil
}

// Delete supprime une transaction non aboutie. Une transaction completed
// fait partie du solde et n'est jamais supprimable.
func (uc *SavingsUseCase) Delete(ctx context.Context, userID, id string) error {
	savings, err := uc.savingsRepo.GetByID(ctx, userID, id)
	if err != nil {
		return err
	}
	if savings == nil {
		return domain.ErrNotFound
	}
	if !savings.IsDeletable() {
		return fmt.Errorf("%w: une transaction completed ne peut pas être supprimée", domain.ErrInvalidState)
	}
	return uc.savingsRepo.Delete(ctx, userID, id)
}

// Balance retourne le solde d'épargne : seules les transactions completed
// comptent, les montants pending sont exposés à part.
func (uc *SavingsUseCase) Balance(ctx context.Context, userID string) (*dto.SavingsBalanceResponse, error) {
	balance, err := uc.analyticsRepo.GetSavingsBalance(ctx, userID)
	if err != nil {
		return nil, err
	}
	net := balance.Deposits.Sub(balance.Withdrawals)
	return &dto.SavingsBalanceResponse{
		Balance:            net,
		TotalDeposits:      balance.Deposits,
		TotalWithdrawals:   balance.Withdrawals,
		PendingDeposits:    balance.PendingDeposits,
		PendingWithdrawals: balance.PendingWithdrawals,
		AvailableBalance:   net.Sub(balance.PendingWithdrawals),
	}, nil
}

// Providers retourne le catalogue des opérateurs Mobile Money supportés.
func (uc *SavingsUseCase) Providers() []momo.Provider {
	return momo.Providers
}
