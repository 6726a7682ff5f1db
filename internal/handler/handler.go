// Package handler implements the per-kind request handlers. A handler turns
// one outbound request into provider calls, persists any durable artifact
// before the corresponding message is emitted, and finishes with the
// transaction's terminal message. Handlers let errors propagate; the worker
// boundary converts them into ERROR + END_OF_TRANSACTION.
package handler

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/set-night/aibridge/internal/chatlog"
	"github.com/set-night/aibridge/internal/codestore"
	"github.com/set-night/aibridge/internal/domain"
	"github.com/set-night/aibridge/internal/provider"
	"github.com/set-night/aibridge/internal/usage"
)

// EmitFunc delivers one result message. Asynchronously it appends to the
// inbound queue; in synchronous mode it applies the message inline on the
// caller's goroutine.
type EmitFunc func(domain.Message)

// Handler holds the dependencies shared by all request kinds.
type Handler struct {
	client   *provider.Client
	chats    *chatlog.Store
	code     *codestore.Store
	usage    *usage.Tracker
	imageDir string
}

// Deps contains all dependencies required to construct a Handler.
type Deps struct {
	Client  *provider.Client
	Chats   *chatlog.Store
	Code    *codestore.Store
	Usage   *usage.Tracker
	DataDir string
}

// New creates a new Handler from the provided dependencies.
func New(deps Deps) *Handler {
	return &Handler{
		client:   deps.Client,
		chats:    deps.Chats,
		code:     deps.Code,
		usage:    deps.Usage,
		imageDir: filepath.Join(deps.DataDir, "image"),
	}
}

// Handle dispatches a request to its kind handler and, if it succeeds, emits
// the END_OF_TRANSACTION message. Exactly one terminal message per request
// is the liveness invariant of the whole system: on error the caller emits
// the ERROR + END_OF_TRANSACTION pair instead.
func (h *Handler) Handle(ctx context.Context, req domain.Request, emit EmitFunc) error {
	var err error
	switch req.Kind {
	case domain.RequestGenerateImage:
		err = h.generateImage(ctx, req, emit)
	case domain.RequestEditImage:
		err = h.editImage(ctx, req, emit)
	case domain.RequestGenerateVariationImage:
		err = h.generateVariationImage(ctx, req, emit)
	case domain.RequestTranscribeAudio:
		err = h.transcribeAudio(ctx, req, emit)
	case domain.RequestChat:
		err = h.chat(ctx, req, emit)
	case domain.RequestGenerateCode, domain.RequestEditCode, domain.RequestGenerateCodeFromAudio:
		err = h.generateCode(ctx, req, emit)
	default:
		err = fmt.Errorf("%w: %s", domain.ErrUnknownKind, req.Kind)
	}
	if err != nil {
		return err
	}

	emit(domain.Message{
		TransactionID: req.TransactionID,
		Kind:          domain.MessageEndOfTransaction,
		Options:       req.Options,
	})
	return nil
}
