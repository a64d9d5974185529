package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cosmolab/akompta-api/internal/application/dto"
	"github.com/cosmolab/akompta-api/internal/application/voice"
)

// Taille maximale acceptée pour un enregistrement vocal (10 Mo).
const maxAudioSize = 10 << 20

// VoiceHandler gère le pipeline de commandes vocales (protégé).
type VoiceHandler struct {
	uc *voice.UseCase
}

// NewVoiceHandler construit le handler.
func NewVoiceHandler(uc *voice.UseCase) *VoiceHandler {
	return &VoiceHandler{uc: uc}
}

// ProcessAudio godoc
// @Summary      Traiter une commande vocale audio
// @Description  Transcrit l'enregistrement, interprète l'énoncé et applique
//               l'opération (vente, dépense ou mouvement de stock). Une
//               commande non reconnue donne success=false, jamais une erreur.
// @Tags         voice
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        audio  formData  file  true  "Enregistrement audio (max 10 Mo)"
// @Success      200  {object}  dto.VoiceCommandResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/voice/process [post]
func (h *VoiceHandler) ProcessAudio(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("audio")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_AUDIO", Message: "champ multipart 'audio' requis"})
	}
	if fileHeader.Size > maxAudioSize {
		return c.Status(fiber.StatusRequestEntityTooLarge).JSON(dto.ErrorResponse{Code: "AUDIO_TOO_LARGE", Message: "enregistrement trop volumineux (max 10 Mo)"})
	}
	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_AUDIO", Message: "fichier audio illisible"})
	}
	defer file.Close()

	out, err := h.uc.ProcessAudio(c.Context(), GetUserID(c), file, fileHeader.Filename)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ProcessText godoc
// @Summary      Traiter une commande en texte libre
// @Description  Même pipeline que l'audio, sans l'étape de transcription.
// @Tags         voice
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ParseTextRequest  true  "Énoncé en français"
// @Success      200   {object}  dto.VoiceCommandResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Router       /api/voice/text [post]
func (h *VoiceHandler) ProcessText(c *fiber.Ctx) error {
	var in dto.ParseTextRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.ProcessText(c.Context(), GetUserID(c), in.Text)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// TestParse godoc
// @Summary      Interpréter sans appliquer
// @Description  Retourne l'intention décodée sans toucher aux données.
//               Destiné au développement et au réglage des énoncés.
// @Tags         voice
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ParseTextRequest  true  "Énoncé en français"
// @Success      200   {object}  dto.IntentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/voice/test-parse [post]
func (h *VoiceHandler) TestParse(c *fiber.Ctx) error {
	var in dto.ParseTextRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.ParseOnly(c.Context(), GetUserID(c), in.Text)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
