package ledger

import (
	"context"
	"fmt"

	"github.com/cosmolab/akompta-api/internal/domain"
	"github.com/cosmolab/akompta-api/internal/domain/entity"
	"github.com/cosmolab/akompta-api/internal/domain/repository"
	"github.com/google/uuid"
)

// movementSpec décrit un mouvement de stock à appliquer sur un produit
// déjà verrouillé (SELECT FOR UPDATE) dans la transaction courante.
type movementSpec struct {
	Type         string
	Quantity     int
	Reason       string
	ReferenceID  string
	Notes        string
	VoiceCommand string
}

// applyMovementLocked fait varier le stock du produit et journalise le
// mouvement dans la même transaction. Une sortie ne descend jamais sous
// zéro : la quantité effective est écrêtée au stock disponible. Le mouvement
// enregistre la variation réellement appliquée, pas la quantité demandée.
func applyMovementLocked(
	ctx context.Context,
	productRepo repository.ProductRepository,
	movementRepo repository.StockMovementRepository,
	product *entity.Product,
	spec movementSpec,
) (*entity.StockMovement, error) {
	if spec.Quantity <= 0 {
		return nil, fmt.Errorf("%w: la quantité doit être positive", domain.ErrInvalidInput)
	}

	previous := product.StockQuantity
	var next int
	switch spec.Type {
	case entity.MovementTypeIn:
		next = previous + spec.Quantity
	case entity.MovementTypeOut:
		next = previous - spec.Quantity
		if next < 0 {
			next = 0
		}
	default:
		return nil, fmt.Errorf("%w: type de mouvement invalide: %s", domain.ErrInvalidInput, spec.Type)
	}

	if err := productRepo.UpdateStock(ctx, product.ID, next); err != nil {
		return nil, err
	}
	product.StockQuantity = next

	movement := &entity.StockMovement{
		ID:            uuid.New().String(),
		ProductID:     product.ID,
		UserID:        product.UserID,
		Type:          spec.Type,
		Quantity:      spec.Quantity,
		PreviousStock: previous,
		NewStock:      next,
		Reason:        spec.Reason,
		ReferenceID:   spec.ReferenceID,
		Notes:         spec.Notes,
		VoiceCommand:  spec.VoiceCommand,
	}
	if err := movementRepo.Create(ctx, movement); err != nil {
		return nil, err
	}
	return movement, nil
}
