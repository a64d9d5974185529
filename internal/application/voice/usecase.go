package voice

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/cosmolab/akompta-api/internal/application/dto"
	"github.com/cosmolab/akompta-api/internal/application/ledger"
	"github.com/cosmolab/akompta-api/internal/domain"
	"github.com/cosmolab/akompta-api/internal/domain/entity"
	"github.com/cosmolab/akompta-api/internal/domain/repository"
)

// UseCase orchestre le pipeline vocal : transcription, interprétation,
// application via le moteur transactionnel.
type UseCase struct {
	interpreter Interpreter
	applier     *ledger.Applier
	productRepo repository.ProductRepository
	log         zerolog.Logger
}

// NewUseCase construit le use case vocal.
func NewUseCase(interpreter Interpreter, applier *ledger.Applier, productRepo repository.ProductRepository, log zerolog.Logger) *UseCase {
	return &UseCase{
		interpreter: interpreter,
		applier:     applier,
		productRepo: productRepo,
		log:         log.With().Str("component", "voice").Logger(),
	}
}

// ProcessAudio transcrit l'enregistrement puis traite l'énoncé comme du texte.
// Une panne du service de transcription remonte en ErrUpstream.
func (uc *UseCase) ProcessAudio(ctx context.Context, userID string, audio io.Reader, filename string) (*dto.VoiceCommandResponse, error) {
	transcription, err := uc.interpreter.Transcribe(ctx, audio, filename)
	if err != nil {
		uc.log.Error().Err(err).Msg("échec de la transcription audio")
		return nil, fmt.Errorf("%w: transcription: %v", domain.ErrUpstream, err)
	}
	return uc.ProcessText(ctx, userID, transcription)
}

// ProcessText interprète l'énoncé et applique la transaction correspondante.
// Les échecs métier (stock insuffisant, produit introuvable, énoncé non
// reconnu) ne sont pas des erreurs : ils produisent une réponse Success=false
// avec la transcription et l'intention, pour que le commerçant comprenne ce
// qui a été compris. Seules les pannes (IA, base) remontent en erreur.
func (uc *UseCase) ProcessText(ctx context.Context, userID, text string) (*dto.VoiceCommandResponse, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: énoncé vide", domain.ErrInvalidInput)
	}

	productNames, err := uc.catalogueNames(ctx, userID)
	if err != nil {
		return nil, err
	}

	intent, err := uc.interpreter.Interpret(ctx, text, productNames)
	if err != nil {
		uc.log.Error().Err(err).Msg("échec de l'interprétation")
		return nil, fmt.Errorf("%w: interprétation: %v", domain.ErrUpstream, err)
	}

	uc.log.Info().
		Str("intent", intent.Type).
		Str("product", intent.Product).
		Float64("confidence", intent.Confidence).
		Msg("commande vocale interprétée")

	response := &dto.VoiceCommandResponse{
		Transcription: text,
		ParsedData:    toIntentResponse(intent),
	}

	switch intent.Type {
	case IntentSale:
		uc.dispatchSale(ctx, userID, text, intent, response)
	case IntentExpense:
		uc.dispatchExpense(ctx, userID, text, intent, response)
	case IntentStockIn:
		uc.dispatchAdjustment(ctx, userID, text, intent, entity.MovementTypeIn, response)
	case IntentStockOut:
		uc.dispatchAdjustment(ctx, userID, text, intent, entity.MovementTypeOut, response)
	default:
		response.Success = false
		response.Error = "Commande non reconnue. Essayez par exemple : « j'ai vendu 3 savons à 500 francs »."
	}
	return response, nil
}

func (uc *UseCase) catalogueNames(ctx context.Context, userID string) ([]string, error) {
	products, err := uc.productRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(products))
	for _, p := range products {
		names = append(names, p.Name)
	}
	return names, nil
}

func (uc *UseCase) dispatchSale(ctx context.Context, userID, text string, intent *Intent, response *dto.VoiceCommandResponse) {
	quantity := 1
	if intent.Quantity != nil {
		quantity = *intent.Quantity
	}
	result, err := uc.applier.ApplySale(ctx, userID, ledger.SaleInput{
		ProductName:  intent.Product,
		Quantity:     quantity,
		UnitPrice:    intent.Price,
		VoiceCommand: text,
	})
	if err != nil {
		response.Success = false
		response.Error = businessErrorMessage(err, intent.Product)
		return
	}
	response.Success = true
	response.Sale = dto.ToSaleResponse(result.Sale)
	response.Message = fmt.Sprintf("Vente enregistrée : %d × %s pour %s FCFA.",
		result.Sale.Quantity, result.Sale.ProductName, result.Sale.TotalAmount.StringFixed(0))
}

func (uc *UseCase) dispatchExpense(ctx context.Context, userID, text string, intent *Intent, response *dto.VoiceCommandResponse) {
	// L'énoncé donne parfois un total, parfois un prix unitaire. Le total prime.
	var amount decimal.Decimal
	switch {
	case intent.Total != nil:
		amount = *intent.Total
	case intent.Price != nil:
		amount = *intent.Price
	}

	description := intent.Description
	if description == "" {
		description = text
	}

	expense, err := uc.applier.ApplyExpense(ctx, userID, ledger.ExpenseInput{
		Amount:       amount,
		Description:  description,
		Category:     intent.Category,
		VoiceCommand: text,
	})
	if err != nil {
		response.Success = false
		response.Error = businessErrorMessage(err, "")
		return
	}
	response.Success = true
	response.Expense = dto.ToExpenseResponse(expense)
	response.Message = fmt.Sprintf("Dépense enregistrée : %s FCFA (%s).",
		expense.Amount.StringFixed(0), expense.Category)
}

func (uc *UseCase) dispatchAdjustment(ctx context.Context, userID, text string, intent *Intent, direction string, response *dto.VoiceCommandResponse) {
	quantity := 0
	if intent.Quantity != nil {
		quantity = *intent.Quantity
	}
	movement, err := uc.applier.ApplyStockAdjustment(ctx, userID, ledger.AdjustmentInput{
		ProductName:  intent.Product,
		Quantity:     quantity,
		Direction:    direction,
		Reason:       entity.ReasonVoiceCommand,
		VoiceCommand: text,
	})
	if err != nil {
		response.Success = false
		response.Error = businessErrorMessage(err, intent.Product)
		return
	}
	response.Success = true
	response.Movement = dto.ToMovementResponse(movement)
	verb := "ajoutées au"
	if direction == entity.MovementTypeOut {
		verb = "retirées du"
	}
	response.Message = fmt.Sprintf("Stock mis à jour : %d unités %s stock de %s (nouveau stock : %d).",
		movement.Quantity, verb, movement.ProductName, movement.NewStock)
}

// businessErrorMessage traduit une erreur métier en message pour le
// commerçant. Tout le reste est traité comme une erreur générique.
func businessErrorMessage(err error, productName string) string {
	switch {
	case productName != "" && errors.Is(err, domain.ErrNotFound):
		return fmt.Sprintf("Produit « %s » introuvable dans votre catalogue.", productName)
	case errors.Is(err, domain.ErrNotFound):
		return "Élément introuvable."
	case errors.Is(err, domain.ErrInsufficientStock):
		return "Stock insuffisant pour cette vente."
	case errors.Is(err, domain.ErrInvalidInput):
		return "Commande incomplète : " + err.Error()
	default:
		return "Impossible d'enregistrer la transaction."
	}
}

func toIntentResponse(intent *Intent) dto.IntentResponse {
	out := dto.IntentResponse{
		Type:        intent.Type,
		Product:     intent.Product,
		Description: intent.Description,
		Category:    intent.Category,
		Confidence:  intent.Confidence,
	}
	if intent.Quantity != nil {
		out.Quantity = *intent.Quantity
	}
	if intent.Price != nil {
		out.Price = intent.Price.String()
	}
	if intent.Total != nil {
		out.Total = intent.Total.String()
	}
	return out
}

// ParseOnly interprète un énoncé sans rien appliquer (endpoint de test).
func (uc *UseCase) ParseOnly(ctx context.Context, userID, text string) (*dto.IntentResponse, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: énoncé vide", domain.ErrInvalidInput)
	}
	productNames, err := uc.catalogueNames(ctx, userID)
	if err != nil {
		return nil, err
	}
	intent, err := uc.interpreter.Interpret(ctx, text, productNames)
	if err != nil {
		return nil, fmt.Errorf("%w: interprétation: %v", domain.ErrUpstream, err)
	}
	out := toIntentResponse(intent)
	return &out, nil
}
