package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/cosmolab/akompta-api/internal/domain"
	"github.com/cosmolab/akompta-api/internal/domain/entity"
	"github.com/cosmolab/akompta-api/internal/domain/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SaleInput est une demande de vente à valider et enregistrer. Le produit est
// référencé par ID ou, pour le chemin vocal, par nom. Le montant total est
// toujours recalculé côté serveur, jamais accepté du client.
type SaleInput struct {
	ProductID     string
	ProductName   string
	Quantity      int
	UnitPrice     *decimal.Decimal
	PaymentMethod string
	Notes         string
	VoiceCommand  string
}

// SaleResult regroupe la vente enregistrée et le mouvement de stock associé.
type SaleResult struct {
	Sale     *entity.Sale
	Movement *entity.StockMovement
}

// ApplySale valide la demande puis, dans une transaction unique, verrouille le
// produit, revérifie le stock, enregistre la vente, décrémente le stock et
// journalise le mouvement sortant. Une vente ne s'écrête jamais : un stock
// insuffisant au moment du verrou rejette toute l'opération.
func (a *Applier) ApplySale(ctx context.Context, userID string, input SaleInput) (*SaleResult, error) {
	if input.Quantity <= 0 {
		return nil, fmt.Errorf("%w: la quantité doit être positive", domain.ErrInvalidInput)
	}
	paymentMethod := input.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = entity.SalePaymentCash
	}
	if !entity.IsValidSalePaymentMethod(paymentMethod) {
		return nil, fmt.Errorf("%w: méthode de paiement invalide: %s", domain.ErrInvalidInput, paymentMethod)
	}

	product, err := a.resolveProduct(ctx, userID, input.ProductID, input.ProductName)
	if err != nil {
		return nil, err
	}
	if product.StockQuantity < input.Quantity {
		return nil, fmt.Errorf("%w: stock disponible %d, demandé %d",
			domain.ErrInsufficientStock, product.StockQuantity, input.Quantity)
	}

	unitPrice := product.Price
	if input.UnitPrice != nil {
		if input.UnitPrice.IsNegative() {
			return nil, fmt.Errorf("%w: le prix unitaire ne peut pas être négatif", domain.ErrInvalidInput)
		}
		unitPrice = *input.UnitPrice
	}

	var result SaleResult
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
		if locked.StockQuantity < input.Quantity {
			return fmt.Errorf("%w: stock disponible %d, demandé %d",
				domain.ErrInsufficientStock, locked.StockQuantity, input.Quantity)
		}

		sale := &entity.Sale{
			ID:            uuid.New().String(),
			ProductID:     locked.ID,
			UserID:        userID,
			Quantity:      input.Quantity,
			UnitPrice:     unitPrice,
			TotalAmount:   unitPrice.Mul(decimal.NewFromInt(int64(input.Quantity))),
			SaleDate:      time.Now().UTC(),
			PaymentMethod: paymentMethod,
			Notes:         input.Notes,
			VoiceCommand:  input.VoiceCommand,
			ProductName:   locked.Name,
		}
		if err := saleRepo.Create(ctx, sale); err != nil {
			return err
		}

		movement, err := applyMovementLocked(ctx, productRepo, movementRepo, locked, movementSpec{
			Type:         entity.MovementTypeOut,
			Quantity:     input.Quantity,
			Reason:       entity.ReasonSale,
			ReferenceID:  sale.ID,
			VoiceCommand: input.VoiceCommand,
		})
		if err != nil {
			return err
		}

		result.Sale = sale
		result.Movement = movement
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}
