// Package ledger contient le cœur transactionnel : l'application atomique
// d'une transaction métier (vente, dépense, ajustement de stock) et le moteur
// de stock, seul composant autorisé à faire varier la quantité d'un produit.
package ledger

import (
	"context"

	"github.com/cosmolab/akompta-api/internal/domain"
	"github.com/cosmolab/akompta-api/internal/domain/entity"
	"github.com/cosmolab/akompta-api/internal/domain/repository"
)

// Applier valide et applique une transaction métier comme unité atomique.
// L'entrée peut venir de l'API directe (produit par ID) ou du chemin vocal
// (produit par nom, intention non fiable) : les règles de validation sont
// identiques, seule la résolution du produit diffère.
type Applier struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	saleRepo    repository.SaleRepository
	expenseRepo repository.ExpenseRepository
}

// NewApplier construit l'applicateur de transactions.
func NewApplier(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
	expenseRepo repository.ExpenseRepository,
) *Applier {
	return &Applier{
		txRunner:    txRunner,
		productRepo: productRepo,
		saleRepo:    saleRepo,
		expenseRepo: expenseRepo,
	}
}

// resolveProduct résout la référence produit : par ID (API directe) ou par
// nom avec désambiguïsation (chemin vocal). ErrNotFound si aucune
// correspondance, ou si le nom est ambigu.
func (a *Applier) resolveProduct(ctx context.Context, userID, productID, productName string) (*entity.Product, error) {
	if productID != "" {
		product, err := a.productRepo.GetByID(ctx, userID, productID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrNotFound
		}
		return product, nil
	}
	if productName == "" {
		return nil, domain.ErrInvalidInput
	}
	products, err := a.productRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	product := MatchProduct(products, productName)
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return product, nil
}
