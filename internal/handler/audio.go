package handler

import (
	"context"

	"github.com/set-night/aibridge/internal/domain"
	"github.com/set-night/aibridge/internal/provider"
)

func (h *Handler) transcribeAudio(ctx context.Context, req domain.Request, emit EmitFunc) error {
	text, err := h.client.Transcribe(ctx, req.APIKey, provider.TranscriptionRequest{
		FilePath:    req.Audio.FilePath,
		Model:       req.Audio.Model,
		Prompt:      req.Audio.Prompt,
		Temperature: req.Audio.Temperature,
		Language:    req.Audio.Language,
	})
	if err != nil {
		return err
	}

	emit(domain.Message{
		TransactionID: req.TransactionID,
		Kind:          domain.MessageAudio,
		Audio:         &domain.AudioResult{Text: text},
		Options:       req.Options,
	})
	return nil
}
