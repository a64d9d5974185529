package ai

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cosmolab/akompta-api/internal/application/voice"
)

// ════════════════════════════════════════════════════════════
// extractJSON
// ════════════════════════════════════════════════════════════

func TestExtractJSON_ObjetNu(t *testing.T) {
	raw := extractJSON(`{"type": "sale"}`)
	assert.Equal(t, `{"type": "sale"}`, raw)
}

func TestExtractJSON_BlocMarkdown(t *testing.T) {
	raw := extractJSON("```json\n{\"type\": \"expense\"}\n```")
	assert.Equal(t, `{"type": "expense"}`, raw)
}

func TestExtractJSON_TexteAutour(t *testing.T) {
	raw := extractJSON(`Voici le résultat : {"type": "sale", "confidence": 0.9} voilà.`)
	assert.Equal(t, `{"type": "sale", "confidence": 0.9}`, raw)
}

func TestExtractJSON_SansObjet(t *testing.T) {
	assert.Empty(t, extractJSON("je n'ai pas compris la demande"))
}

// ════════════════════════════════════════════════════════════
// decodeIntent
// ════════════════════════════════════════════════════════════

func TestDecodeIntent_VenteComplete(t *testing.T) {
	content := `{"type": "sale", "product": "Savon", "quantity": 3, "price": 500, "total": 1500,
		"description": "vente de savons", "category": "", "confidence": 0.92}`

	intent := decodeIntent(content, "j'ai vendu 3 savons à 500 francs")

	assert.Equal(t, voice.IntentSale, intent.Type)
	assert.Equal(t, "Savon", intent.Product)
	require.NotNil(t, intent.Quantity)
	assert.Equal(t, 3, *intent.Quantity)
	require.NotNil(t, intent.Price)
	assert.True(t, decimal.NewFromInt(500).Equal(*intent.Price), "le prix unitaire doit être décodé")
	require.NotNil(t, intent.Total)
	assert.True(t, decimal.NewFromInt(1500).Equal(*intent.Total))
	assert.InDelta(t, 0.92, intent.Confidence, 0.001)
}

func TestDecodeIntent_ChampsAbsentsRestentNil(t *testing.T) {
	content := `{"type": "expense", "description": "transport", "category": "transport", "confidence": 0.7}`

	intent := decodeIntent(content, "j'ai payé le taxi")

	assert.Equal(t, voice.IntentExpense, intent.Type)
	assert.Nil(t, intent.Quantity)
	assert.Nil(t, intent.Price)
	assert.Nil(t, intent.Total)
	assert.Equal(t, "transport", intent.Category)
}

func TestDecodeIntent_JSONIllisibleDonneUnknown(t *testing.T) {
	intent := decodeIntent("désolé, je ne peux pas répondre", "blabla incompréhensible")

	assert.Equal(t, voice.IntentUnknown, intent.Type)
	assert.Equal(t, "blabla incompréhensible", intent.Description)
	assert.Zero(t, intent.Confidence)
}

func TestDecodeIntent_TypeInconnuNormalise(t *testing.T) {
	intent := decodeIntent(`{"type": "greeting", "confidence": 0.8}`, "bonjour")
	assert.Equal(t, voice.IntentUnknown, intent.Type)

	intent = decodeIntent(`{"type": " Stock_In ", "product": "Riz"}`, "j'ai reçu du riz")
	assert.Equal(t, voice.IntentStockIn, intent.Type)
}
