// Package voice implémente le pipeline de commande vocale : transcription
// audio, interprétation en intention structurée, puis dispatch vers le moteur
// transactionnel. Le modèle de langage ne touche jamais les données : il
// produit une intention, et seules les règles métier décident de l'appliquer.
package voice

import (
	"context"
	"io"

	"github.com/shopspring/decimal"
)

// Types d'intention produits par l'interpréteur.
const (
	IntentSale     = "sale"
	IntentExpense  = "expense"
	IntentStockIn  = "stock_in"
	IntentStockOut = "stock_out"
	IntentUnknown  = "unknown"
)

// Intent est le résultat structuré de l'interprétation d'un énoncé.
// Les champs numériques sont optionnels : l'interpréteur ne remplit que ce
// que l'énoncé contient réellement.
type Intent struct {
	Type        string
	Product     string
	Quantity    *int
	Price       *decimal.Decimal
	Total       *decimal.Decimal
	Description string
	Category    string
	Confidence  float64
}

// Interpreter définit le port vers le service d'IA (transcription et
// interprétation). L'implémentation vit dans infrastructure/ai.
type Interpreter interface {
	// Transcribe convertit un enregistrement audio en texte.
	Transcribe(ctx context.Context, audio io.Reader, filename string) (string, error)
	// Interpret analyse un énoncé en français (ou langue locale mélangée) et
	// retourne l'intention structurée. productNames aide le modèle à
	// normaliser les noms de produits vers le catalogue du commerçant.
	// Un énoncé incompréhensible retourne une intention de type unknown,
	// pas une erreur : l'erreur est réservée aux pannes du service.
	Interpret(ctx context.Context, text string, productNames []string) (*Intent, error)
}
