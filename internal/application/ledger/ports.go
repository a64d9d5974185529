package ledger

import (
	"context"

	"github.com/cosmolab/akompta-api/internal/domain/repository"
)

// TxRunner exécute une fonction dans une transaction DB, en passant des
// repositories liés à cette transaction. Garantit l'atomicité vente +
// mouvement de stock : aucun état partiel n'est jamais commité.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
		movementRepo repository.StockMovementRepository,
	) error) error
}
