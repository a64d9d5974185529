// Package ai contient l'adaptateur OpenAI du pipeline vocal : Whisper pour
// la transcription, un modèle de chat pour l'interprétation en intention
// structurée.
package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/shopspring/decimal"

	"github.com/cosmolab/akompta-api/internal/application/voice"
)

var _ voice.Interpreter = (*OpenAIService)(nil)

const interpretSystemPrompt = `Tu es l'assistant comptable d'un petit commerçant en Afrique de l'Ouest (montants en FCFA).
On te donne un énoncé en français, parfois mélangé de langues locales, décrivant une opération commerciale.
Réponds UNIQUEMENT avec un objet JSON valide (sans markdown, sans bloc de code) de cette forme exacte :
{
  "type": "<sale | expense | stock_in | stock_out | unknown>",
  "product": "<nom du produit, ou chaîne vide>",
  "quantity": <nombre entier, ou null si absent>,
  "price": <prix unitaire en FCFA, ou null si absent>,
  "total": <montant total en FCFA, ou null si absent>,
  "description": "<description courte de l'opération>",
  "category": "<pour une dépense : transport, achat_stock, equipement, communication, marketing, maintenance, formation ou autres>",
  "confidence": <nombre entre 0.0 et 1.0>
}

Règles :
- "j'ai vendu", "vente de" => type sale. "j'ai acheté", "j'ai payé", "j'ai dépensé" => type expense.
- "j'ai reçu", "ajoute au stock" => type stock_in. "retire du stock", "perte", "périmé" => type stock_out.
- Si le produit mentionné ressemble à un nom du catalogue fourni, utilise exactement le nom du catalogue.
- N'invente jamais de montant : laisse null ce que l'énoncé ne contient pas.
- Si l'énoncé n'est pas une opération commerciale, type unknown.
- Aucun texte hors du JSON.`

// OpenAIService implémente voice.Interpreter via l'API OpenAI.
type OpenAIService struct {
	client          *openai.Client
	chatModel       string
	transcribeModel string
}

// NewOpenAIService construit l'adaptateur. chatModel du genre "gpt-4o-mini",
// transcribeModel du genre "whisper-1".
func NewOpenAIService(apiKey, chatModel, transcribeModel string) *OpenAIService {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &OpenAIService{
		client:          &client,
		chatModel:       chatModel,
		transcribeModel: transcribeModel,
	}
}

// Transcribe envoie l'enregistrement à Whisper et retourne le texte.
func (s *OpenAIService) Transcribe(ctx context.Context, audio io.Reader, filename string) (string, error) {
	transcription, err := s.client.Audio.Transcriptions.New(ctx, openai.AudioTranscriptionNewParams{
		Model:    openai.AudioModel(s.transcribeModel),
		File:     openai.File(audio, filename, "application/octet-stream"),
		Language: openai.String("fr"),
	})
	if err != nil {
		return "", fmt.Errorf("transcription whisper: %w", err)
	}
	return strings.TrimSpace(transcription.Text), nil
}

// Interpret envoie l'énoncé au modèle de chat et décode l'intention.
// Un JSON illisible donne une intention unknown, pas une erreur : seule une
// panne de l'API remonte en erreur.
func (s *OpenAIService) Interpret(ctx context.Context, text string, productNames []string) (*voice.Intent, error) {
	userPrompt := text
	if len(productNames) > 0 {
		userPrompt = fmt.Sprintf("Catalogue du commerçant : %s\n\nÉnoncé : %s",
			strings.Join(productNames, ", "), text)
	}

	completion, err := s.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(s.chatModel),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(interpretSystemPrompt),
			openai.UserMessage(userPrompt),
		},
		Temperature: openai.Float(0.1),
	})
	if err != nil {
		return nil, fmt.Errorf("interprétation chat: %w", err)
	}
	if len(completion.Choices) == 0 {
		return nil, fmt.Errorf("interprétation chat: réponse vide")
	}

	return decodeIntent(completion.Choices[0].Message.Content, text), nil
}

// intentWire forme JSON brute renvoyée par le modèle.
type intentWire struct {
	Type        string   `json:"type"`
	Product     string   `json:"product"`
	Quantity    *int     `json:"quantity"`
	Price       *float64 `json:"price"`
	Total       *float64 `json:"total"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Confidence  float64  `json:"confidence"`
}

// decodeIntent extrait et décode le JSON de la réponse du modèle. Toute
// réponse illisible retombe sur une intention unknown de confiance nulle.
func decodeIntent(content, originalText string) *voice.Intent {
	raw := extractJSON(content)
	var wire intentWire
	if raw == "" || json.Unmarshal([]byte(raw), &wire) != nil {
		return &voice.Intent{Type: voice.IntentUnknown, Description: originalText}
	}

	intent := &voice.Intent{
		Type:        normalizeIntentType(wire.Type),
		Product:     strings.TrimSpace(wire.Product),
		Quantity:    wire.Quantity,
		Description: wire.Description,
		Category:    wire.Category,
		Confidence:  wire.Confidence,
	}
	if wire.Price != nil {
		d := decimal.NewFromFloat(*wire.Price)
		intent.Price = &d
	}
	if wire.Total != nil {
		d := decimal.NewFromFloat(*wire.Total)
		intent.Total = &d
	}
	return intent
}

func normalizeIntentType(t string) string {
	t = strings.TrimSpace(strings.ToLower(t))
	switch t {
	case voice.IntentSale, voice.IntentExpense, voice.IntentStockIn, voice.IntentStockOut:
		return t
	default:
		return voice.IntentUnknown
	}
}

// jsonBlockRe extrait le premier objet JSON même si le modèle l'enveloppe
// dans un bloc markdown.
var jsonBlockRe = regexp.MustCompile(`(?s)\{.*\}`)

func extractJSON(content string) string {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	return jsonBlockRe.FindString(content)
}
