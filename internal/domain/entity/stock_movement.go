package entity

import "time"

// Types de mouvement de stock.
const (
	MovementTypeIn         = "in"         // entrée
	MovementTypeOut        = "out"        // sortie
	MovementTypeAdjustment = "adjustment" // ajustement
)

// Raisons standards des mouvements de stock.
const (
	ReasonSale             = "sale"
	ReasonSaleCancellation = "sale_cancellation"
	ReasonInitialStock     = "initial_stock"
	ReasonManualAdjustment = "manual_adjustment"
	ReasonVoiceCommand     = "voice_command"
)

// StockMovement journal immuable d'une variation de stock d'un produit.
// Invariant : NewStock = PreviousStock ± Quantity, avec NewStock borné à 0
// pour les sorties. Jamais modifié ni supprimé, sauf cascade à la suppression
// du produit.
type StockMovement struct {
	ID            string
	ProductID     string
	UserID        string
	Type          string // in, out, adjustment
	Quantity      int    // toujours positif
	PreviousStock int
	NewStock      int
	Reason        string
	ReferenceID   string // id de la vente à l'origine du mouvement, vide sinon
	Notes         string
	VoiceCommand  string // commande vocale d'origine, vide sinon
	ProductName   string // dérivé à la lecture (jointure), non stocké
	CreatedAt     time.Time
}

// IsValidMovementType indique si le type de mouvement est reconnu.
func IsValidMovementType(t string) bool {
	switch t {
	case MovementTypeIn, MovementTypeOut, MovementTypeAdjustment:
		return true
	}
	return false
}
