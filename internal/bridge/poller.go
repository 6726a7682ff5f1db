package bridge

import (
	"log/slog"

	"github.com/set-night/aibridge/internal/domain"
)

// startPollerLocked lazily registers the recurring drain callback with the
// host. Starting while already running is a no-op, so concurrent
// transactions share one timer and one drain loop.
func (b *Bridge) startPollerLocked() {
	if b.timer != nil {
		return
	}
	b.ledger.ResetStats()
	b.timer = b.hostApp.AddTimer(b.pollInterval, b.tick)
	slog.Debug("poller started")
}

func (b *Bridge) stopPollerLocked() {
	if b.timer == nil {
		return
	}
	b.hostApp.RemoveTimer(b.timer)
	b.timer = nil
	slog.Debug("poller stopped")
}

// CancelPolling performs the best-effort cleanup for a user cancel: the
// timer is removed without waiting for outstanding requests. In-flight
// provider calls are not interrupted; their eventual results stay undrained.
func (b *Bridge) CancelPolling() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.stopPollerLocked()
}

// tick runs on the host main loop. It drains at most one message, applies
// it, and on a terminal message retires the transaction; once the ledger
// empties the poller unregisters itself.
func (b *Bridge) tick() {
	msg, ok := b.inbound.Pop()
	if !ok {
		return
	}

	b.apply(msg)

	if msg.Kind != domain.MessageEndOfTransaction {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.ledger.End(msg.TransactionID)
	if b.ledger.Size() == 0 {
		b.stopPollerLocked()
	}
}
