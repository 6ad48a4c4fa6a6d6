package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/mock-interview/internal/apperrors"
	"alfredoptarigan/mock-interview/internal/logging"
)

type TTSService interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

type voiceSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
}

type ttsRequest struct {
	Text          string        `json:"text"`
	ModelID       string        `json:"model_id"`
	VoiceSettings voiceSettings `json:"voice_settings"`
}

type elevenLabsService struct {
	apiKey  string
	voiceID string
	modelID string
	baseURL string
	timeout time.Duration
	logger  *logging.Logger
}

func NewElevenLabsService(apiKey, voiceID, modelID, baseURL string, timeout time.Duration) TTSService {
	return &elevenLabsService{
		apiKey:  apiKey,
		voiceID: voiceID,
		modelID: modelID,
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
		logger:  logging.NewLogger("tts"),
	}
}

// Synthesize implements TTSService. It returns MP3 audio.
// The fiber Agent does not watch ctx once the request is sent, so the request
// timeout is the configured one, shortened to the ctx deadline when that is sooner.
func (s *elevenLabsService) Synthesize(ctx context.Context, text string) ([]byte, error) {
	if strings.TrimSpace(text) == "" {
		return nil, apperrors.NewInvalidInputError("Text is required")
	}
	timeout, err := s.requestTimeout(ctx)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/v1/text-to-speech/%s", s.baseURL, s.voiceID)
	s.logger.Debug("sending request", "voice", s.voiceID, "chars", len(text))

	agent := fiber.Post(url)
	agent.Set("accept", "audio/mpeg")
	agent.Set("xi-api-key", s.apiKey)
	agent.JSON(ttsRequest{
		Text:    text,
		ModelID: s.modelID,
		VoiceSettings: voiceSettings{
			Stability:       0.5,
			SimilarityBoost: 0.5,
		},
	})
	if timeout > 0 {
		agent.Timeout(timeout)
	}

	status, body, errs := agent.Bytes()
	if len(errs) > 0 {
		s.logger.Error("request failed", "error", errors.Join(errs...))
		return nil, fmt.Errorf("failed to call ElevenLabs: %w", errors.Join(errs...))
	}

	if status != fiber.StatusOK {
		s.logger.Error("upstream error", "status", status, "body", string(body))
		return nil, apperrors.NewTTSFailedError(status, string(body))
	}

	s.logger.Debug("audio received", "bytes", len(body))
	return body, nil
}

func (s *elevenLabsService) requestTimeout(ctx context.Context) (time.Duration, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	deadline, ok := ctx.Deadline()
	if !ok {
		return s.timeout, nil
	}
	remaining := time.Until(deadline)
	if remaining <= 0 {
		return 0, context.DeadlineExceeded
	}
	if s.timeout <= 0 || remaining < s.timeout {
		return remaining, nil
	}
	return s.timeout, nil
}
