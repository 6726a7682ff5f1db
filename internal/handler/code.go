package handler

import (
	"context"

	"github.com/set-night/aibridge/internal/codestore"
	"github.com/set-night/aibridge/internal/config"
	"github.com/set-night/aibridge/internal/domain"
	"github.com/set-night/aibridge/internal/provider"
)

// generateCode serves GENERATE_CODE, EDIT_CODE and the two-step
// GENERATE_CODE_FROM_AUDIO composition. An edit replays the persisted code
// as a prior turn so the model rewrites it instead of starting over. The
// completion must contain exactly one fenced code block, which is persisted
// before the CODE message is emitted.
func (h *Handler) generateCode(ctx context.Context, req domain.Request, emit EmitFunc) error {
	payload := req.Code
	codeName := req.Options.Code.CodeName
	userText := payload.Prompt

	var messages []provider.ChatMessage
	if req.Kind == domain.RequestEditCode {
		existing, err := h.code.Load(codeName)
		if err != nil {
			return err
		}
		messages = append(messages, provider.ChatMessage{Role: "user", Content: existing})
	}

	if req.Kind == domain.RequestGenerateCodeFromAudio {
		transcript, err := h.client.Transcribe(ctx, req.APIKey, provider.TranscriptionRequest{
			FilePath:    payload.AudioFilePath,
			Model:       payload.AudioModel,
			Temperature: config.DefaultAudioTemperature,
			Language:    payload.AudioLanguage,
		})
		if err != nil {
			return err
		}
		userText = transcript
		codeName = truncateName(transcript, config.MaxCodeNameLen)

		// Echo the derived name so the poller can locate the saved file.
		updated := *req.Options.Code
		updated.CodeName = codeName
		req.Options.Code = &updated
	}

	messages = append(messages, provider.ChatMessage{Role: "user", Content: userText})
	for _, cond := range payload.Conditions {
		messages = append(messages, provider.ChatMessage{Role: "system", Content: cond})
	}

	content, tokens, err := h.client.ChatCompletion(ctx, req.APIKey, provider.ChatRequest{
		Model:    payload.Model,
		Messages: messages,
	})
	if err != nil {
		return err
	}
	h.usage.Record(req.Kind, tokens)

	body, err := codestore.ExtractSingleCodeBlock(content)
	if err != nil {
		return err
	}
	if _, err := h.code.Save(codeName, body); err != nil {
		return err
	}

	emit(domain.Message{
		TransactionID: req.TransactionID,
		Kind:          domain.MessageCode,
		Options:       req.Options,
	})
	return nil
}

func truncateName(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
