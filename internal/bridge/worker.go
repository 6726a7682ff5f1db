package bridge

import (
	"fmt"
	"log/slog"

	"github.com/set-night/aibridge/internal/domain"
)

// worker is the single background dispatch loop. It blocks on the request
// channel, fully serializes handler execution, and is the only place where
// handler failures are converted into messages: every request, successful or
// not, yields exactly one END_OF_TRANSACTION.
func (b *Bridge) worker() {
	defer close(b.workerDone)
	slog.Info("dispatch worker started")

	for {
		select {
		case <-b.ctx.Done():
			slog.Info("dispatch worker stopped")
			return
		case req := <-b.requests:
			b.dispatch(req)
		}
	}
}

func (b *Bridge) dispatch(req domain.Request) {
	slog.Info("processing request", "kind", req.Kind, "transaction_id", req.TransactionID)

	err := b.handleSafely(req)
	if err == nil {
		return
	}

	slog.Error("request failed", "kind", req.Kind, "transaction_id", req.TransactionID, "error", err)
	b.inbound.Push(domain.Message{
		TransactionID: req.TransactionID,
		Kind:          domain.MessageError,
		Err:           err,
		Options:       req.Options,
	})
	b.inbound.Push(domain.Message{
		TransactionID: req.TransactionID,
		Kind:          domain.MessageEndOfTransaction,
		Options:       req.Options,
	})
}

// handleSafely runs the handler and converts panics into errors, so a
// faulty handler can never orphan its ledger entry.
func (b *Bridge) handleSafely(req domain.Request) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panic: %v", r)
		}
	}()
	return b.handler.Handle(b.ctx, req, b.inbound.Push)
}
