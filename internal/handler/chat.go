package handler

import (
	"context"

	"github.com/set-night/aibridge/internal/chatlog"
	"github.com/set-night/aibridge/internal/domain"
	"github.com/set-night/aibridge/internal/provider"
)

func (h *Handler) chat(ctx context.Context, req domain.Request, emit EmitFunc) error {
	opts := req.Options.Chat

	var log *chatlog.Log
	if opts.NewTopic {
		log = h.chats.New(opts.Topic)
	} else {
		var err error
		log, err = h.chats.Load(opts.Topic)
		if err != nil {
			return err
		}
	}

	// Record the new turn immediately with an empty response, so a crash
	// mid-request leaves a recoverable partial part.
	log.AddPart(req.Chat.UserText, req.Chat.Conditions)
	if err := log.Save(); err != nil {
		return err
	}

	emit(domain.Message{
		TransactionID: req.TransactionID,
		Kind:          domain.MessageChat,
		Options:       req.Options,
	})

	messages := replayMessages(log, opts.HiddenConditions, req.Chat.UserText, req.Chat.Conditions)
	content, tokens, err := h.client.ChatCompletion(ctx, req.APIKey, provider.ChatRequest{
		Model:    req.Chat.Model,
		Messages: messages,
	})
	if err != nil {
		return err
	}
	h.usage.Record(domain.RequestChat, tokens)

	if err := log.SetAssistant(log.NumParts()-1, content); err != nil {
		return err
	}
	if err := log.Save(); err != nil {
		return err
	}

	emit(domain.Message{
		TransactionID: req.TransactionID,
		Kind:          domain.MessageChat,
		Options:       req.Options,
	})
	return nil
}

// replayMessages builds the wire message list: full prior history in
// chronological part order, then the hidden conditions, then the new user
// turn with its visible conditions.
func replayMessages(log *chatlog.Log, hidden []string, userText string, conditions []string) []provider.ChatMessage {
	var messages []provider.ChatMessage

	for i := 0; i < log.NumParts()-1; i++ {
		part, err := log.Part(i)
		if err != nil {
			continue
		}
		messages = append(messages, provider.ChatMessage{Role: "user", Content: part.User})
		for _, cond := range part.System {
			messages = append(messages, provider.ChatMessage{Role: "system", Content: cond})
		}
		messages = append(messages, provider.ChatMessage{Role: "assistant", Content: part.Assistant})
	}

	for _, cond := range hidden {
		messages = append(messages, provider.ChatMessage{Role: "system", Content: cond})
	}

	messages = append(messages, provider.ChatMessage{Role: "user", Content: userText})
	for _, cond := range conditions {
		messages = append(messages, provider.ChatMessage{Role: "system", Content: cond})
	}
	return messages
}
