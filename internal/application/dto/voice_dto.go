package dto

// ParseTextRequest corps de POST /api/voice/test-parse (développement :
// interprétation seule, sans application).
type ParseTextRequest struct {
	Text string `json:"text"`
}

// IntentResponse intention structurée décodée par l'interpréteur.
// Confidence est consultatif : il n'est pas utilisé comme seuil de validation.
type IntentResponse struct {
	Type        string  `json:"type"` // sale | expense | stock_in | stock_out | unknown
	Product     string  `json:"product,omitempty"`
	Quantity    int     `json:"quantity,omitempty"`
	Price       string  `json:"price,omitempty"`
	Total       string  `json:"total,omitempty"`
	Description string  `json:"description,omitempty"`
	Category    string  `json:"category,omitempty"`
	Confidence  float64 `json:"confidence"`
}

// VoiceCommandResponse résultat complet du traitement d'une commande vocale.
// Success=false avec Error renseigné couvre aussi le cas "commande non
// reconnue" : aucune commande n'est silencieusement ignorée.
type VoiceCommandResponse struct {
	Transcription string            `json:"transcription"`
	ParsedData    IntentResponse    `json:"parsed_data"`
	Success       bool              `json:"success"`
	Message       string            `json:"message,omitempty"`
	Error         string            `json:"error,omitempty"`
	Sale          *SaleResponse     `json:"sale,omitempty"`
	Expense       *ExpenseResponse  `json:"expense,omitempty"`
	Movement      *MovementResponse `json:"movement,omitempty"`
}
