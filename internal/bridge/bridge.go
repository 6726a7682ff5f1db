// Package bridge is the asynchronous request/response coordination core: a
// single dispatch worker serializing provider calls, a transaction ledger,
// an inbound message queue, and a main-loop poller that applies results to
// host state. All of it hangs off one process-scoped Bridge object.
package bridge

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/set-night/aibridge/internal/codestore"
	"github.com/set-night/aibridge/internal/config"
	"github.com/set-night/aibridge/internal/domain"
	"github.com/set-night/aibridge/internal/errstore"
	"github.com/set-night/aibridge/internal/handler"
	"github.com/set-night/aibridge/internal/host"
	"github.com/set-night/aibridge/internal/ledger"
	"github.com/set-night/aibridge/internal/queue"
	"github.com/set-night/aibridge/internal/usage"
)

// Bridge owns the shared mutable structures of the core. The outbound
// request channel, the inbound queue and the ledger each have independent
// synchronization; no lock is ever held across a network call or another
// lock.
type Bridge struct {
	hostApp host.Host
	handler *handler.Handler
	code    *codestore.Store
	errors  *errstore.Store
	usage   *usage.Tracker

	ledger   *ledger.Ledger
	inbound  *queue.Queue[domain.Message]
	requests chan domain.Request

	pollInterval time.Duration

	ctx        context.Context
	cancel     context.CancelFunc
	workerDone chan struct{}

	mu     sync.Mutex
	timer  host.TimerHandle
	closed bool
}

// Deps contains all dependencies required to construct a Bridge.
type Deps struct {
	Host         host.Host
	Handler      *handler.Handler
	Code         *codestore.Store
	Errors       *errstore.Store
	Usage        *usage.Tracker
	PollInterval time.Duration
}

// New creates a Bridge and starts its dispatch worker.
func New(deps Deps) *Bridge {
	ctx, cancel := context.WithCancel(context.Background())
	b := &Bridge{
		hostApp:      deps.Host,
		handler:      deps.Handler,
		code:         deps.Code,
		errors:       deps.Errors,
		usage:        deps.Usage,
		ledger:       ledger.New(),
		inbound:      queue.New[domain.Message](),
		requests:     make(chan domain.Request, config.RequestQueueCapacity),
		pollInterval: deps.PollInterval,
		ctx:          ctx,
		cancel:       cancel,
		workerDone:   make(chan struct{}),
	}
	go b.worker()
	return b
}

// SubmitAsync registers a transaction, enqueues the request for the worker
// and lazily starts the poller. It never blocks: a full queue fails with
// ErrQueueFull instead of stalling the main thread.
func (b *Bridge) SubmitAsync(req domain.Request, title string) (uuid.UUID, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return uuid.Nil, domain.ErrBridgeClosed
	}

	id := b.ledger.Begin(req.Kind, truncateTitle(title))
	req.TransactionID = id

	select {
	case b.requests <- req:
	default:
		b.ledger.End(id)
		return uuid.Nil, domain.ErrQueueFull
	}

	b.startPollerLocked()
	return id, nil
}

// SubmitSync runs the same handler logic inline on the caller's goroutine,
// bypassing the queues and the ledger. The caller blocks for the duration of
// the provider calls; errors are returned instead of funneled into ERROR
// messages.
func (b *Bridge) SubmitSync(req domain.Request) error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return domain.ErrBridgeClosed
	}
	b.mu.Unlock()

	req.TransactionID = uuid.Nil
	return b.handler.Handle(b.ctx, req, b.apply)
}

// Status reports the outstanding transactions and the consumed/total
// counters for the current polling run.
type Status struct {
	Outstanding []domain.Transaction
	Consumed    int
	Total       int
}

func (b *Bridge) Status() Status {
	txs, consumed, total := b.ledger.Snapshot(config.StatusSnapshotLimit)
	return Status{Outstanding: txs, Consumed: consumed, Total: total}
}

// Usage exposes the token/cost tracker.
func (b *Bridge) Usage() *usage.Tracker {
	return b.usage
}

// Errors exposes the generated-code execution error store.
func (b *Bridge) Errors() *errstore.Store {
	return b.errors
}

// Outstanding reports how many transactions have not yet drained their
// terminal message.
func (b *Bridge) Outstanding() int {
	return b.ledger.Size()
}

// Close tears the core down: the worker context is cancelled, aborting any
// in-flight provider call, and the worker is joined with a bounded wait.
// Undrained messages and ledger entries are dropped.
func (b *Bridge) Close() error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil
	}
	b.closed = true
	b.stopPollerLocked()
	b.mu.Unlock()

	b.cancel()
	select {
	case <-b.workerDone:
		return nil
	case <-time.After(config.ShutdownTimeout):
		return domain.ErrBridgeClosed
	}
}

func truncateTitle(s string) string {
	runes := []rune(s)
	if len(runes) <= config.MaxTitleLen {
		return s
	}
	return string(runes[:config.MaxTitleLen])
}
