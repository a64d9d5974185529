package ledger

import (
	"context"

	"github.com/cosmolab/akompta-api/internal/domain"
	"github.com/cosmolab/akompta-api/internal/domain/entity"
	"github.com/cosmolab/akompta-api/internal/domain/repository"
)

// AdjustmentInput est une demande d'ajustement de stock hors vente
// (réapprovisionnement, correction manuelle, commande vocale).
type AdjustmentInput struct {
	ProductID    string
	ProductName  string
	Quantity     int
	Direction    string // MovementTypeIn ou MovementTypeOut
	Reason       string
	Notes        string
	VoiceCommand string
}

// ApplyStockAdjustment applique un mouvement de stock isolé dans une
// transaction. Contrairement à la vente, une sortie excédant le stock n'est
// pas rejetée : elle est écrêtée à zéro par le moteur de stock.
func (a *Applier) ApplyStockAdjustment(ctx context.Context, userID string, input AdjustmentInput) (*entity.StockMovement, error) {
	if input.Direction != entity.MovementTypeIn && input.Direction != entity.MovementTypeOut {
		return nil, domain.ErrInvalidInput
	}

	product, err := a.resolveProduct(ctx, userID, input.ProductID, input.ProductName)
	if err != nil {
		return nil, err
	}

	reason := input.Reason
	if reason == "" {
		if input.VoiceCommand != "" {
			reason = entity.ReasonVoiceCommand
		} else {
			reason = entity.ReasonManualAdjustment
		}
	}

	var movement *entity.StockMovement
	err = a.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
		movementRepo repository.StockMovementRepository,
	) error {
		locked, err := productRepo.GetForUpdate(ctx, userID, product.ID)
		if err != nil {
			return err
		}
		if locked == nil {
			return domain.ErrNotFound
		}
		movement, err = applyMovementLocked(ctx, productRepo, movementRepo, locked, movementSpec{
			Type:         input.Direction,
			Quantity:     input.Quantity,
			Reason:       reason,
			Notes:        input.Notes,
			VoiceCommand: input.VoiceCommand,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	movement.ProductName = product.Name
	return movement, nil
}

// TargetInput fixe le stock d'un produit à une valeur cible.
type TargetInput struct {
	ProductID string
	Target    int
	Notes     string
}

// ApplyStockTarget amène le stock à la valeur cible. L'écart est calculé sur
// la ligne verrouillée, pas sur une lecture antérieure : un mouvement
// concurrent entre la lecture de l'appelant et la transaction ne fausse donc
// pas l'ajustement. Retourne nil sans erreur quand le stock est déjà à la
// cible.
func (a *Applier) ApplyStockTarget(ctx context.Context, userID string, input TargetInput) (*entity.StockMovement, error) {
	if input.Target < 0 {
		return nil, domain.ErrInvalidInput
	}

	var movement *entity.StockMovement
	err := a.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
		movementRepo repository.StockMovementRepository,
	) error {
		locked, err := productRepo.GetForUpdate(ctx, userID, input.ProductID)
		if err != nil {
			return err
		}
		if locked == nil {
			return domain.ErrNotFound
		}

		delta := input.Target - locked.StockQuantity
		if delta == 0 {
			return nil
		}
		direction := entity.MovementTypeIn
		if delta < 0 {
			direction = entity.MovementTypeOut
			delta = -delta
		}
		movement, err = applyMovementLocked(ctx, productRepo, movementRepo, locked, movementSpec{
			Type:     direction,
			Quantity: delta,
			Reason:   entity.ReasonManualAdjustment,
			Notes:    input.Notes,
		})
		if err != nil {
			return err
		}
		movement.ProductName = locked.Name
		return nil
	})
	if err != nil {
		return nil, err
	}
	return movement, nil
}
