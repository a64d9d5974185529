package ledger_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cosmolab/akompta-api/internal/application/ledger"
	"github.com/cosmolab/akompta-api/internal/domain"
	"github.com/cosmolab/akompta-api/internal/domain/entity"
	"github.com/cosmolab/akompta-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en mémoire pour le moteur transactionnel. Le TxRunner fake exécute la
// closure directement sur les mêmes stores : pas de vraie transaction, mais le
// contrat (mêmes repos dedans et dehors) est respecté.
// ──────────────────────────────────────────────────────────────────────────────

const testUserID = "user-1"

type memStore struct {
	products  map[string]*entity.Product
	sales     map[string]*entity.Sale
	expenses  map[string]*entity.Expense
	movements []*entity.StockMovement
}

func newMemStore() *memStore {
	return &memStore{
		products: make(map[string]*entity.Product),
		sales:    make(map[string]*entity.Sale),
		expenses: make(map[string]*entity.Expense),
	}
}

type fakeProductRepo struct{ store *memStore }

func (r *fakeProductRepo) Create(_ context.Context, p *entity.Product) error {
	r.store.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) GetByID(_ context.Context, userID, id string) (*entity.Product, error) {
	p, ok := r.store.products[id]
	if !ok || p.UserID != userID {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) GetForUpdate(ctx context.Context, userID, id string) (*entity.Product, error) {
	// Même contrat que l'adaptateur Postgres : la colonne id est de type
	// uuid, une chaîne vide est rejetée avant même la recherche.
	if id == "" {
		return nil, errors.New("syntaxe invalide pour le type uuid: \"\"")
	}
	return r.GetByID(ctx, userID, id)
}

func (r *fakeProductRepo) ListByUser(_ context.Context, userID string) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.store.products {
		if p.UserID == userID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) ListLowStock(_ context.Context, userID string) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.store.products {
		if p.UserID == userID && p.IsLowStock() {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) UpdateInfo(_ context.Context, p *entity.Product) error {
	r.store.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) UpdateStock(_ context.Context, id string, newStock int) error {
	p, ok := r.store.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.StockQuantity = newStock
	return nil
}

func (r *fakeProductRepo) Delete(_ context.Context, userID, id string) error {
	delete(r.store.products, id)
	return nil
}

type fakeSaleRepo struct{ store *memStore }

func (r *fakeSaleRepo) Create(_ context.Context, s *entity.Sale) error {
	r.store.sales[s.ID] = s
	return nil
}

func (r *fakeSaleRepo) GetByID(_ context.Context, userID, id string) (*entity.Sale, error) {
	s, ok := r.store.sales[id]
	if !ok || s.UserID != userID {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *fakeSaleRepo) List(_ context.Context, userID string, since *time.Time, limit, offset int) ([]*entity.Sale, int, error) {
	var out []*entity.Sale
	for _, s := range r.store.sales {
		if s.UserID == userID {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out, len(out), nil
}

func (r *fakeSaleRepo) Delete(_ context.Context, id string) error {
	delete(r.store.sales, id)
	return nil
}

type fakeMovementRepo struct{ store *memStore }

func (r *fakeMovementRepo) Create(_ context.Context, m *entity.StockMovement) error {
	r.store.movements = append(r.store.movements, m)
	return nil
}

func (r *fakeMovementRepo) ListByProduct(_ context.Context, userID, productID string, limit, offset int) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range r.store.movements {
		if m.UserID == userID && m.ProductID == productID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeMovementRepo) ListByUser(_ context.Context, userID string, limit, offset int) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range r.store.movements {
		if m.UserID == userID {
			out = append(out, m)
		}
	}
	return out, nil
}

type fakeExpenseRepo struct{ store *memStore }

func (r *fakeExpenseRepo) Create(_ context.Context, e *entity.Expense) error {
	r.store.expenses[e.ID] = e
	return nil
}

func (r *fakeExpenseRepo) GetByID(_ context.Context, userID, id string) (*entity.Expense, error) {
	e, ok := r.store.expenses[id]
	if !ok || e.UserID != userID {
		return nil, nil
	}
	cp := *e
	return &cp, nil
}

func (r *fakeExpenseRepo) List(_ context.Context, userID string, filter repository.ExpenseFilter) ([]*entity.Expense, int, error) {
	var out []*entity.Expense
	for _, e := range r.store.expenses {
		if e.UserID == userID {
			cp := *e
			out = append(out, &cp)
		}
	}
	return out, len(out), nil
}

func (r *fakeExpenseRepo) Update(_ context.Context, e *entity.Expense) error {
	r.store.expenses[e.ID] = e
	return nil
}

func (r *fakeExpenseRepo) Delete(_ context.Context, userID, id string) error {
	delete(r.store.expenses, id)
	return nil
}

type fakeTxRunner struct {
	products  *fakeProductRepo
	sales     *fakeSaleRepo
	movements *fakeMovementRepo
}

func (tr *fakeTxRunner) Run(_ context.Context, fn func(repository.ProductRepository, repository.SaleRepository, repository.StockMovementRepository) error) error {
	return fn(tr.products, tr.sales, tr.movements)
}

func newTestApplier() (*ledger.Applier, *memStore) {
	store := newMemStore()
	products := &fakeProductRepo{store: store}
	sales := &fakeSaleRepo{store: store}
	movements := &fakeMovementRepo{store: store}
	expenses := &fakeExpenseRepo{store: store}
	runner := &fakeTxRunner{products: products, sales: sales, movements: movements}
	return ledger.NewApplier(runner, products, sales, expenses), store
}

func seedProduct(store *memStore, id, name string, price float64, stock int) *entity.Product {
	p := &entity.Product{
		ID:                id,
		UserID:            testUserID,
		Name:              name,
		Price:             decimal.NewFromFloat(price),
		StockQuantity:     stock,
		MinStockThreshold: entity.DefaultMinStockThreshold,
	}
	store.products[id] = p
	return p
}

// ── Ventes ────────────────────────────────────────────────────────────────────

func TestApplySale_DecrementeLeStockEtJournalise(t *testing.T) {
	applier, store := newTestApplier()
	seedProduct(store, "p1", "Savon", 500, 10)

	result, err := applier.ApplySale(context.Background(), testUserID, ledger.SaleInput{
		ProductID: "p1",
		Quantity:  3,
	})
	require.NoError(t, err)

	assert.Equal(t, 7, store.products["p1"].StockQuantity, "le stock doit passer de 10 à 7")
	assert.True(t, decimal.NewFromInt(1500).Equal(result.Sale.TotalAmount),
		"le total doit être recalculé côté serveur: 3 × 500")
	assert.Equal(t, entity.SalePaymentCash, result.Sale.PaymentMethod,
		"la méthode de paiement par défaut est cash")

	require.Len(t, store.movements, 1)
	m := store.movements[0]
	assert.Equal(t, entity.MovementTypeOut, m.Type)
	assert.Equal(t, entity.ReasonSale, m.Reason)
	assert.Equal(t, result.Sale.ID, m.ReferenceID, "le mouvement doit référencer la vente")
	assert.Equal(t, 10, m.PreviousStock)
	assert.Equal(t, 7, m.NewStock)
}

func TestApplySale_PrixUnitairePersonnalise(t *testing.T) {
	applier, store := newTestApplier()
	seedProduct(store, "p1", "Savon", 500, 10)

	override := decimal.NewFromInt(450)
	result, err := applier.ApplySale(context.Background(), testUserID, ledger.SaleInput{
		ProductID: "p1",
		Quantity:  2,
		UnitPrice: &override,
	})
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(900).Equal(result.Sale.TotalAmount),
		"le prix fourni remplace le prix catalogue")
}

func TestApplySale_StockInsuffisantRejette(t *testing.T) {
	applier, store := newTestApplier()
	seedProduct(store, "p1", "Savon", 500, 2)

	_, err := applier.ApplySale(context.Background(), testUserID, ledger.SaleInput{
		ProductID: "p1",
		Quantity:  5,
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Equal(t, 2, store.products["p1"].StockQuantity, "le stock ne doit pas bouger")
	assert.Empty(t, store.sales, "aucune vente ne doit être enregistrée")
	assert.Empty(t, store.movements, "aucun mouvement ne doit être journalisé")
}

func TestApplySale_QuantiteInvalide(t *testing.T) {
	applier, store := newTestApplier()
	seedProduct(store, "p1", "Savon", 500, 10)

	_, err := applier.ApplySale(context.Background(), testUserID, ledger.SaleInput{
		ProductID: "p1",
		Quantity:  0,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestApplySale_ProduitInconnu(t *testing.T) {
	applier, _ := newTestApplier()

	_, err := applier.ApplySale(context.Background(), testUserID, ledger.SaleInput{
		ProductID: "absent",
		Quantity:  1,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestApplySale_ResolutionParNom(t *testing.T) {
	applier, store := newTestApplier()
	seedProduct(store, "p1", "Savon de Marseille", 500, 10)
	seedProduct(store, "p2", "Riz parfumé", 300, 10)

	result, err := applier.ApplySale(context.Background(), testUserID, ledger.SaleInput{
		ProductName: "savon",
		Quantity:    1,
	})
	require.NoError(t, err)
	assert.Equal(t, "p1", result.Sale.ProductID, "le nom partiel doit résoudre le bon produit")
}

// ── Annulation de vente ───────────────────────────────────────────────────────

func TestReverseSale_RestitueLeStock(t *testing.T) {
	applier, store := newTestApplier()
	seedProduct(store, "p1", "Savon", 500, 10)

	result, err := applier.ApplySale(context.Background(), testUserID, ledger.SaleInput{
		ProductID: "p1",
		Quantity:  4,
	})
	require.NoError(t, err)
	require.Equal(t, 6, store.products["p1"].StockQuantity)

	err = applier.ReverseSale(context.Background(), testUserID, result.Sale.ID)
	require.NoError(t, err)

	assert.Equal(t, 10, store.products["p1"].StockQuantity, "le stock doit être restitué")
	assert.Empty(t, store.sales, "la vente doit être supprimée")

	require.Len(t, store.movements, 2)
	comp := store.movements[1]
	assert.Equal(t, entity.MovementTypeIn, comp.Type)
	assert.Equal(t, entity.ReasonSaleCancellation, comp.Reason)
	assert.Equal(t, result.Sale.ID, comp.ReferenceID)
}

func TestReverseSale_ProduitSupprimeEntreTemps(t *testing.T) {
	applier, store := newTestApplier()
	seedProduct(store, "p1", "Savon", 500, 10)

	result, err := applier.ApplySale(context.Background(), testUserID, ledger.SaleInput{
		ProductID: "p1",
		Quantity:  2,
	})
	require.NoError(t, err)

	delete(store.products, "p1")

	err = applier.ReverseSale(context.Background(), testUserID, result.Sale.ID)
	require.NoError(t, err, "l'annulation réussit même si le produit a disparu")
	assert.Empty(t, store.sales)
	assert.Len(t, store.movements, 1, "pas de mouvement compensatoire sans produit")
}

func TestReverseSale_ReferenceProduitMiseANull(t *testing.T) {
	applier, store := newTestApplier()
	seedProduct(store, "p1", "Savon", 500, 10)

	result, err := applier.ApplySale(context.Background(), testUserID, ledger.SaleInput{
		ProductID: "p1",
		Quantity:  2,
	})
	require.NoError(t, err)

	// ON DELETE SET NULL : la vente survit au produit avec un ProductID vide.
	delete(store.products, "p1")
	store.sales[result.Sale.ID].ProductID = ""

	err = applier.ReverseSale(context.Background(), testUserID, result.Sale.ID)
	require.NoError(t, err, "aucune requête produit ne doit partir avec un id vide")
	assert.Empty(t, store.sales)
	assert.Len(t, store.movements, 1, "pas de mouvement compensatoire sans produit")
}

func TestReverseSale_VenteInconnue(t *testing.T) {
	applier, _ := newTestApplier()
	err := applier.ReverseSale(context.Background(), testUserID, "absent")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ── Ajustements de stock ──────────────────────────────────────────────────────

func TestApplyStockAdjustment_Entree(t *testing.T) {
	applier, store := newTestApplier()
	seedProduct(store, "p1", "Savon", 500, 10)

	movement, err := applier.ApplyStockAdjustment(context.Background(), testUserID, ledger.AdjustmentInput{
		ProductID: "p1",
		Quantity:  15,
		Direction: entity.MovementTypeIn,
	})
	require.NoError(t, err)

	assert.Equal(t, 25, store.products["p1"].StockQuantity)
	assert.Equal(t, entity.ReasonManualAdjustment, movement.Reason,
		"raison par défaut hors chemin vocal")
}

func TestApplyStockAdjustment_SortieEcreteeAZero(t *testing.T) {
	applier, store := newTestApplier()
	seedProduct(store, "p1", "Savon", 500, 3)

	movement, err := applier.ApplyStockAdjustment(context.Background(), testUserID, ledger.AdjustmentInput{
		ProductID: "p1",
		Quantity:  10,
		Direction: entity.MovementTypeOut,
	})
	require.NoError(t, err)

	assert.Equal(t, 0, store.products["p1"].StockQuantity,
		"une sortie excédentaire écrête à zéro au lieu de rejeter")
	assert.Equal(t, 3, movement.PreviousStock)
	assert.Equal(t, 0, movement.NewStock)
}

func TestApplyStockAdjustment_RaisonVocale(t *testing.T) {
	applier, store := newTestApplier()
	seedProduct(store, "p1", "Savon", 500, 10)

	movement, err := applier.ApplyStockAdjustment(context.Background(), testUserID, ledger.AdjustmentInput{
		ProductID:    "p1",
		Quantity:     5,
		Direction:    entity.MovementTypeIn,
		VoiceCommand: "ajoute 5 savons au stock",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.ReasonVoiceCommand, movement.Reason)
}

func TestApplyStockAdjustment_DirectionInvalide(t *testing.T) {
	applier, store := newTestApplier()
	seedProduct(store, "p1", "Savon", 500, 10)

	_, err := applier.ApplyStockAdjustment(context.Background(), testUserID, ledger.AdjustmentInput{
		ProductID: "p1",
		Quantity:  5,
		Direction: "sideways",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestApplyStockAdjustment_QuantiteNulle(t *testing.T) {
	applier, store := newTestApplier()
	seedProduct(store, "p1", "Savon", 500, 10)

	_, err := applier.ApplyStockAdjustment(context.Background(), testUserID, ledger.AdjustmentInput{
		ProductID: "p1",
		Quantity:  0,
		Direction: entity.MovementTypeOut,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 10, store.products["p1"].StockQuantity)
}

// ── Stock cible ───────────────────────────────────────────────────────────────

func TestApplyStockTarget_EcartResoluSousVerrou(t *testing.T) {
	applier, store := newTestApplier()
	seedProduct(store, "p1", "Savon", 500, 10)

	// Un mouvement concurrent a déjà porté le stock à 25 : l'écart doit être
	// calculé sur cette valeur, pas sur une lecture antérieure à 10.
	store.products["p1"].StockQuantity = 25

	movement, err := applier.ApplyStockTarget(context.Background(), testUserID, ledger.TargetInput{
		ProductID: "p1",
		Target:    20,
	})
	require.NoError(t, err)
	require.NotNil(t, movement)

	assert.Equal(t, entity.MovementTypeOut, movement.Type)
	assert.Equal(t, 5, movement.Quantity)
	assert.Equal(t, 25, movement.PreviousStock)
	assert.Equal(t, 20, movement.NewStock)
	assert.Equal(t, 20, store.products["p1"].StockQuantity)
}

func TestApplyStockTarget_StockDejaALaCible(t *testing.T) {
	applier, store := newTestApplier()
	seedProduct(store, "p1", "Savon", 500, 10)

	movement, err := applier.ApplyStockTarget(context.Background(), testUserID, ledger.TargetInput{
		ProductID: "p1",
		Target:    10,
	})
	require.NoError(t, err)
	assert.Nil(t, movement, "aucun mouvement quand l'écart est nul")
	assert.Empty(t, store.movements)
}

func TestApplyStockTarget_CibleNegative(t *testing.T) {
	applier, _ := newTestApplier()

	_, err := applier.ApplyStockTarget(context.Background(), testUserID, ledger.TargetInput{
		ProductID: "p1",
		Target:    -1,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestApplyStockTarget_ProduitInconnu(t *testing.T) {
	applier, _ := newTestApplier()

	_, err := applier.ApplyStockTarget(context.Background(), testUserID, ledger.TargetInput{
		ProductID: "absent",
		Target:    5,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ── Dépenses ──────────────────────────────────────────────────────────────────

func TestApplyExpense_CategorieNormalisee(t *testing.T) {
	applier, _ := newTestApplier()

	expense, err := applier.ApplyExpense(context.Background(), testUserID, ledger.ExpenseInput{
		Amount:      decimal.NewFromInt(2000),
		Description: "Taxi pour le marché",
		Category:    "deplacement",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.ExpenseCategoryAutres, expense.Category,
		"une catégorie inconnue retombe sur autres")
}

func TestApplyExpense_CategorieReconnueConservee(t *testing.T) {
	applier, _ := newTestApplier()

	expense, err := applier.ApplyExpense(context.Background(), testUserID, ledger.ExpenseInput{
		Amount:      decimal.NewFromInt(5000),
		Description: "Réapprovisionnement savons",
		Category:    entity.ExpenseCategoryAchatStock,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.ExpenseCategoryAchatStock, expense.Category)
}

func TestApplyExpense_MontantNonPositif(t *testing.T) {
	applier, _ := newTestApplier()

	_, err := applier.ApplyExpense(context.Background(), testUserID, ledger.ExpenseInput{
		Amount:      decimal.Zero,
		Description: "Rien",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestApplyExpense_DescriptionRequise(t *testing.T) {
	applier, _ := newTestApplier()

	_, err := applier.ApplyExpense(context.Background(), testUserID, ledger.ExpenseInput{
		Amount:      decimal.NewFromInt(100),
		Description: "   ",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
