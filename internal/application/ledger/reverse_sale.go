package ledger

import (
	"context"
	"fmt"

	"github.com/cosmolab/akompta-api/internal/domain"
	"github.com/cosmolab/akompta-api/internal/domain/entity"
	"github.com/cosmolab/akompta-api/internal/domain/repository"
)

// ReverseSale supprime une vente et restitue le stock par un mouvement
// entrant compensatoire. Si le produit a été supprimé entre-temps, la vente
// est supprimée sans compensation : on ne recrée jamais un produit.
func (a *Applier) ReverseSale(ctx context.Context, userID, saleID string) error {
	sale, err := a.saleRepo.GetByID(ctx, userID, saleID)
	if err != nil {
		return err
	}
	if sale == nil {
		return domain.ErrNotFound
	}

	return a.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
		movementRepo repository.StockMovementRepository,
	) error {
		if err := saleRepo.Delete(ctx, sale.ID); err != nil {
			return err
		}

		// ProductID vide = FK passée à NULL à la suppression du produit.
		// On ne consulte pas la table : '' n'est pas un uuid valide.
		if sale.ProductID == "" {
			return nil
		}

		product, err := productRepo.GetForUpdate(ctx, userID, sale.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return nil
		}

		_, err = applyMovementLocked(ctx, productRepo, movementRepo, product, movementSpec{
			Type:        entity.MovementTypeIn,
			Quantity:    sale.Quantity,
			Reason:      entity.ReasonSaleCancellation,
			ReferenceID: sale.ID,
			Notes:       fmt.Sprintf("Annulation de la vente %s", sale.ID),
		})
		return err
	})
}
