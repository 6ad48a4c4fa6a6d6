package handlers

import (
	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/mock-interview/internal/models"
	"alfredoptarigan/mock-interview/internal/services"
)

type SpeechHandler struct {
	ttsService services.TTSService
}

func NewSpeechHandler(ttsService services.TTSService) *SpeechHandler {
	return &SpeechHandler{
		ttsService: ttsService,
	}
}

// HandleTTS handles POST /tts
func (h *SpeechHandler) HandleTTS(c *fiber.Ctx) error {
	var req models.TTSRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request payload")
	}

	audio, err := h.ttsService.Synthesize(c.UserContext(), req.Text)
	if err != nil {
		return respondError(c, err)
	}

	c.Set(fiber.HeaderContentType, "audio/mpeg")
	return c.Send(audio)
}
