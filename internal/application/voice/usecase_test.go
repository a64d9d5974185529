package voice_test

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cosmolab/akompta-api/internal/application/ledger"
	"github.com/cosmolab/akompta-api/internal/application/voice"
	"github.com/cosmolab/akompta-api/internal/domain"
	"github.com/cosmolab/akompta-api/internal/domain/entity"
	"github.com/cosmolab/akompta-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Interpréteur stub : retourne une intention fixée, enregistre ce qu'on lui
// passe. Les repos fakes sont les mêmes que ceux du moteur transactionnel,
// redéclarés ici en version minimale.
// ──────────────────────────────────────────────────────────────────────────────

const testUserID = "user-1"

type stubInterpreter struct {
	transcription string
	transcribeErr error
	intent        *voice.Intent
	interpretErr  error

	gotText     string
	gotProducts []string
}

func (s *stubInterpreter) Transcribe(_ context.Context, _ io.Reader, _ string) (string, error) {
	return s.transcription, s.transcribeErr
}

func (s *stubInterpreter) Interpret(_ context.Context, text string, productNames []string) (*voice.Intent, error) {
	s.gotText = text
	s.gotProducts = productNames
	return s.intent, s.interpretErr
}

type memProducts struct {
	items map[string]*entity.Product
}

func (r *memProducts) Create(_ context.Context, p *entity.Product) error {
	r.items[p.ID] = p
	return nil
}

func (r *memProducts) GetByID(_ context.Context, userID, id string) (*entity.Product, error) {
	p, ok := r.items[id]
	if !ok || p.UserID != userID {
		return nil, nil
	}
	return p, nil
}

func (r *memProducts) GetForUpdate(ctx context.Context, userID, id string) (*entity.Product, error) {
	return r.GetByID(ctx, userID, id)
}

func (r *memProducts) ListByUser(_ context.Context, userID string) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.items {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *memProducts) ListLowStock(_ context.Context, userID string) ([]*entity.Product, error) {
	return nil, nil
}

func (r *memProducts) UpdateInfo(_ context.Context, p *entity.Product) error {
	r.items[p.ID] = p
	return nil
}

func (r *memProducts) UpdateStock(_ context.Context, id string, newStock int) error {
	p, ok := r.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.StockQuantity = newStock
	return nil
}

func (r *memProducts) Delete(_ context.Context, userID, id string) error {
	delete(r.items, id)
	return nil
}

type memSales struct{ items map[string]*entity.Sale }

func (r *memSales) Create(_ context.Context, s *entity.Sale) error {
	r.items[s.ID] = s
	return nil
}

func (r *memSales) GetByID(_ context.Context, userID, id string) (*entity.Sale, error) {
	s, ok := r.items[id]
	if !ok || s.UserID != userID {
		return nil, nil
	}
	return s, nil
}

func (r *memSales) List(_ context.Context, userID string, since *time.Time, limit, offset int) ([]*entity.Sale, int, error) {
	return nil, 0, nil
}

func (r *memSales) Delete(_ context.Context, id string) error {
	delete(r.items, id)
	return nil
}

type memMovements struct{ items []*entity.StockMovement }

func (r *memMovements) Create(_ context.Context, m *entity.StockMovement) error {
	r.items = append(r.items, m)
	return nil
}

func (r *memMovements) ListByProduct(_ context.Context, userID, productID string, limit, offset int) ([]*entity.StockMovement, error) {
	return r.items, nil
}

func (r *memMovements) ListByUser(_ context.Context, userID string, limit, offset int) ([]*entity.StockMovement, error) {
	return r.items, nil
}

type memExpenses struct{ items map[string]*entity.Expense }

func (r *memExpenses) Create(_ context.Context, e *entity.Expense) error {
	r.items[e.ID] = e
	return nil
}

func (r *memExpenses) GetByID(_ context.Context, userID, id string) (*entity.Expense, error) {
	e, ok := r.items[id]
	if !ok || e.UserID != userID {
		return nil, nil
	}
	return e, nil
}

func (r *memExpenses) List(_ context.Context, userID string, filter repository.ExpenseFilter) ([]*entity.Expense, int, error) {
	return nil, 0, nil
}

func (r *memExpenses) Update(_ context.Context, e *entity.Expense) error {
	r.items[e.ID] = e
	return nil
}

func (r *memExpenses) Delete(_ context.Context, userID, id string) error {
	delete(r.items, id)
	return nil
}

type passthroughTx struct {
	products  repository.ProductRepository
	sales     repository.SaleRepository
	movements repository.StockMovementRepository
}

func (tx *passthroughTx) Run(_ context.Context, fn func(repository.ProductRepository, repository.SaleRepository, repository.StockMovementRepository) error) error {
	return fn(tx.products, tx.sales, tx.movements)
}

type testEnv struct {
	uc        *voice.UseCase
	interp    *stubInterpreter
	products  *memProducts
	sales     *memSales
	movements *memMovements
	expenses  *memExpenses
}

func newTestEnv(interp *stubInterpreter) *testEnv {
	products := &memProducts{items: make(map[string]*entity.Product)}
	sales := &memSales{items: make(map[string]*entity.Sale)}
	movements := &memMovements{}
	expenses := &memExpenses{items: make(map[string]*entity.Expense)}
	applier := ledger.NewApplier(
		&passthroughTx{products: products, sales: sales, movements: movements},
		products, sales, expenses,
	)
	uc := voice.NewUseCase(interp, applier, products, zerolog.Nop())
	return &testEnv{uc: uc, interp: interp, products: products, sales: sales, movements: movements, expenses: expenses}
}

func (env *testEnv) seedProduct(id, name string, price float64, stock int) {
	env.products.items[id] = &entity.Product{
		ID:            id,
		UserID:        testUserID,
		Name:          name,
		Price:         decimal.NewFromFloat(price),
		StockQuantity: stock,
	}
}

func intPtr(v int) *int { return &v }

func decPtr(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

// ── Ventes vocales ────────────────────────────────────────────────────────────

func TestProcessText_VenteComplete(t *testing.T) {
	env := newTestEnv(&stubInterpreter{intent: &voice.Intent{
		Type:       voice.IntentSale,
		Product:    "savon",
		Quantity:   intPtr(3),
		Price:      decPtr(500),
		Confidence: 0.95,
	}})
	env.seedProduct("p1", "Savon", 500, 10)

	resp, err := env.uc.ProcessText(context.Background(), testUserID, "j'ai vendu 3 savons à 500 francs")
	require.NoError(t, err)

	assert.True(t, resp.Success)
	require.NotNil(t, resp.Sale)
	assert.Equal(t, 3, resp.Sale.Quantity)
	assert.Equal(t, 7, env.products.items["p1"].StockQuantity)
	assert.Contains(t, resp.Message, "1500", "le message confirme le montant total")
	assert.ElementsMatch(t, []string{"Savon"}, env.interp.gotProducts,
		"le catalogue est transmis à l'interpréteur")
}

func TestProcessText_VenteQuantiteParDefaut(t *testing.T) {
	env := newTestEnv(&stubInterpreter{intent: &voice.Intent{
		Type:    voice.IntentSale,
		Product: "savon",
	}})
	env.seedProduct("p1", "Savon", 500, 10)

	resp, err := env.uc.ProcessText(context.Background(), testUserID, "j'ai vendu un savon")
	require.NoError(t, err)
	require.True(t, resp.Success)
	assert.Equal(t, 1, resp.Sale.Quantity, "quantité absente: une unité par défaut")
}

func TestProcessText_VenteStockInsuffisant(t *testing.T) {
	env := newTestEnv(&stubInterpreter{intent: &voice.Intent{
		Type:     voice.IntentSale,
		Product:  "savon",
		Quantity: intPtr(20),
	}})
	env.seedProduct("p1", "Savon", 500, 2)

	resp, err := env.uc.ProcessText(context.Background(), testUserID, "j'ai vendu 20 savons")
	require.NoError(t, err, "un échec métier n'est pas une erreur de pipeline")

	assert.False(t, resp.Success)
	assert.Contains(t, resp.Error, "Stock insuffisant")
	assert.Equal(t, 2, env.products.items["p1"].StockQuantity)
	assert.Empty(t, env.sales.items)
}

func TestProcessText_VenteProduitInconnu(t *testing.T) {
	env := newTestEnv(&stubInterpreter{intent: &voice.Intent{
		Type:     voice.IntentSale,
		Product:  "tomates",
		Quantity: intPtr(2),
	}})
	env.seedProduct("p1", "Savon", 500, 10)

	resp, err := env.uc.ProcessText(context.Background(), testUserID, "j'ai vendu 2 tomates")
	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Error, "tomates", "le message nomme le produit introuvable")
}

// ── Dépenses vocales ──────────────────────────────────────────────────────────

func TestProcessText_DepenseAvecTotal(t *testing.T) {
	env := newTestEnv(&stubInterpreter{intent: &voice.Intent{
		Type:        voice.IntentExpense,
		Total:       decPtr(2000),
		Description: "transport marché",
		Category:    "transport",
	}})

	resp, err := env.uc.ProcessText(context.Background(), testUserID, "j'ai dépensé 2000 francs de transport")
	require.NoError(t, err)
	require.True(t, resp.Success)
	require.NotNil(t, resp.Expense)
	assert.True(t, decimal.NewFromInt(2000).Equal(resp.Expense.Amount))
	assert.Equal(t, "transport", resp.Expense.Category)
}

func TestProcessText_DepenseTotalPrimeSurPrix(t *testing.T) {
	env := newTestEnv(&stubInterpreter{intent: &voice.Intent{
		Type:        voice.IntentExpense,
		Price:       decPtr(500),
		Total:       decPtr(1500),
		Description: "recharges",
	}})

	resp, err := env.uc.ProcessText(context.Background(), testUserID, "3 recharges à 500, 1500 en tout")
	require.NoError(t, err)
	require.True(t, resp.Success)
	assert.True(t, decimal.NewFromInt(1500).Equal(resp.Expense.Amount),
		"le total déclaré prime sur le prix unitaire")
}

func TestProcessText_DepenseSansMontant(t *testing.T) {
	env := newTestEnv(&stubInterpreter{intent: &voice.Intent{
		Type:        voice.IntentExpense,
		Description: "transport",
	}})

	resp, err := env.uc.ProcessText(context.Background(), testUserID, "j'ai payé le transport")
	require.NoError(t, err)
	assert.False(t, resp.Success, "sans montant, la dépense est refusée")
}

// ── Mouvements de stock vocaux ────────────────────────────────────────────────

func TestProcessText_EntreeDeStock(t *testing.T) {
	env := newTestEnv(&stubInterpreter{intent: &voice.Intent{
		Type:     voice.IntentStockIn,
		Product:  "savon",
		Quantity: intPtr(12),
	}})
	env.seedProduct("p1", "Savon", 500, 3)

	resp, err := env.uc.ProcessText(context.Background(), testUserID, "j'ai reçu 12 savons")
	require.NoError(t, err)
	require.True(t, resp.Success)
	assert.Equal(t, 15, env.products.items["p1"].StockQuantity)
	require.NotNil(t, resp.Movement)
	assert.Equal(t, entity.ReasonVoiceCommand, resp.Movement.Reason)
}

func TestProcessText_SortieDeStockEcretee(t *testing.T) {
	env := newTestEnv(&stubInterpreter{intent: &voice.Intent{
		Type:     voice.IntentStockOut,
		Product:  "savon",
		Quantity: intPtr(10),
	}})
	env.seedProduct("p1", "Savon", 500, 4)

	resp, err := env.uc.ProcessText(context.Background(), testUserID, "retire 10 savons, ils sont périmés")
	require.NoError(t, err)
	require.True(t, resp.Success)
	assert.Equal(t, 0, env.products.items["p1"].StockQuantity,
		"la sortie vocale écrête à zéro au lieu de rejeter")
}

// ── Pipeline ──────────────────────────────────────────────────────────────────

func TestProcessText_CommandeNonReconnue(t *testing.T) {
	env := newTestEnv(&stubInterpreter{intent: &voice.Intent{
		Type:        voice.IntentUnknown,
		Description: "quel temps fait-il",
	}})

	resp, err := env.uc.ProcessText(context.Background(), testUserID, "quel temps fait-il")
	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.NotEmpty(t, resp.Error, "une commande non reconnue est signalée, jamais ignorée")
	assert.Equal(t, voice.IntentUnknown, resp.ParsedData.Type)
}

func TestProcessText_EnonceVide(t *testing.T) {
	env := newTestEnv(&stubInterpreter{})
	_, err := env.uc.ProcessText(context.Background(), testUserID, "   ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProcessText_PanneInterpreteur(t *testing.T) {
	env := newTestEnv(&stubInterpreter{interpretErr: errors.New("timeout")})
	_, err := env.uc.ProcessText(context.Background(), testUserID, "j'ai vendu 3 savons")
	assert.ErrorIs(t, err, domain.ErrUpstream)
}

func TestProcessAudio_PanneTranscription(t *testing.T) {
	env := newTestEnv(&stubInterpreter{transcribeErr: errors.New("unavailable")})
	_, err := env.uc.ProcessAudio(context.Background(), testUserID, nil, "note.ogg")
	assert.ErrorIs(t, err, domain.ErrUpstream)
}

func TestProcessAudio_TranscritPuisApplique(t *testing.T) {
	env := newTestEnv(&stubInterpreter{
		transcription: "j'ai vendu 2 savons",
		intent: &voice.Intent{
			Type:     voice.IntentSale,
			Product:  "savon",
			Quantity: intPtr(2),
		},
	})
	env.seedProduct("p1", "Savon", 500, 10)

	resp, err := env.uc.ProcessAudio(context.Background(), testUserID, nil, "note.ogg")
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, "j'ai vendu 2 savons", resp.Transcription)
	assert.Equal(t, "j'ai vendu 2 savons", env.interp.gotText)
}

func TestParseOnly_NAppliqueRien(t *testing.T) {
	env := newTestEnv(&stubInterpreter{intent: &voice.Intent{
		Type:     voice.IntentSale,
		Product:  "savon",
		Quantity: intPtr(3),
	}})
	env.seedProduct("p1", "Savon", 500, 10)

	intent, err := env.uc.ParseOnly(context.Background(), testUserID, "j'ai vendu 3 savons")
	require.NoError(t, err)
	assert.Equal(t, voice.IntentSale, intent.Type)
	assert.Equal(t, 10, env.products.items["p1"].StockQuantity, "l'interprétation seule ne touche pas le stock")
	assert.Empty(t, env.sales.items)
}
