// Package ledger tracks in-flight transactions from enqueue until their
// terminal message is drained by the poller.
package ledger

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/set-night/aibridge/internal/domain"
)

// Ledger is an ordered mapping from transaction id to its metadata, plus the
// consumed/total counters surfaced in status snapshots. In steady state both
// Begin and End run on the host main loop; the lock is defensive.
type Ledger struct {
	mu      sync.Mutex
	order   []uuid.UUID
	entries map[uuid.UUID]domain.Transaction

	total    int
	consumed int
}

func New() *Ledger {
	return &Ledger{entries: make(map[uuid.UUID]domain.Transaction)}
}

// Begin registers a fresh transaction and returns its identifier.
func (l *Ledger) Begin(kind domain.RequestKind, title string) uuid.UUID {
	l.mu.Lock()
	defer l.mu.Unlock()

	id := uuid.New()
	l.order = append(l.order, id)
	l.entries[id] = domain.Transaction{ID: id, Kind: kind, Title: title}
	l.total++
	return id
}

// End removes a transaction. Ending an unknown id is a programming error:
// it means a terminal message was produced twice or never registered.
func (l *Ledger) End(id uuid.UUID) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.entries[id]; !ok {
		panic(fmt.Sprintf("ledger: end of unknown transaction %s", id))
	}
	delete(l.entries, id)
	for i, v := range l.order {
		if v == id {
			l.order = append(l.order[:i], l.order[i+1:]...)
			break
		}
	}
	l.consumed++
}

// Size reports how many transactions are still outstanding.
func (l *Ledger) Size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Snapshot returns up to limit outstanding transactions in begin order,
// oldest first, together with the consumed/total counters.
func (l *Ledger) Snapshot(limit int) (txs []domain.Transaction, consumed, total int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, id := range l.order {
		if limit >= 0 && len(txs) >= limit {
			break
		}
		txs = append(txs, l.entries[id])
	}
	return txs, l.consumed, l.total
}

// ResetStats restarts the consumed/total counters, called when the poller is
// (re)started with an empty ledger.
func (l *Ledger) ResetStats() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.total = len(l.entries)
	l.consumed = 0
}
