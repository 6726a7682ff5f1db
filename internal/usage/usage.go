// Package usage accounts token consumption and cost per request kind.
package usage

import (
	"sync"

	"github.com/shopspring/decimal"

	"github.com/set-night/aibridge/internal/domain"
)

// Tokens is the usage block returned by completion and transcription
// endpoints.
type Tokens struct {
	Prompt     int
	Completion int
	Total      int
}

type entry struct {
	prompt     int
	completion int
	requests   int
}

// Tracker accumulates usage from the worker thread and is read from the host
// main loop, so it carries its own lock.
type Tracker struct {
	mu              sync.Mutex
	byKind          map[domain.RequestKind]entry
	promptPrice     decimal.Decimal // per 1M tokens
	completionPrice decimal.Decimal // per 1M tokens
}

func NewTracker(promptPricePer1M, completionPricePer1M float64) *Tracker {
	return &Tracker{
		byKind:          make(map[domain.RequestKind]entry),
		promptPrice:     decimal.NewFromFloat(promptPricePer1M),
		completionPrice: decimal.NewFromFloat(completionPricePer1M),
	}
}

func (t *Tracker) Record(kind domain.RequestKind, tokens Tokens) {
	t.mu.Lock()
	defer t.mu.Unlock()

	e := t.byKind[kind]
	e.prompt += tokens.Prompt
	e.completion += tokens.Completion
	e.requests++
	t.byKind[kind] = e
}

// Cost returns the accumulated cost for one kind.
func (t *Tracker) Cost(kind domain.RequestKind) decimal.Decimal {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cost(t.byKind[kind])
}

// TotalCost returns the accumulated cost across all kinds.
func (t *Tracker) TotalCost() decimal.Decimal {
	t.mu.Lock()
	defer t.mu.Unlock()

	total := decimal.Zero
	for _, e := range t.byKind {
		total = total.Add(t.cost(e))
	}
	return total
}

// Requests returns how many priced responses were recorded for a kind.
func (t *Tracker) Requests(kind domain.RequestKind) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.byKind[kind].requests
}

func (t *Tracker) cost(e entry) decimal.Decimal {
	million := decimal.NewFromInt(1_000_000)
	promptCost := decimal.NewFromInt(int64(e.prompt)).Mul(t.promptPrice).Div(million)
	completionCost := decimal.NewFromInt(int64(e.completion)).Mul(t.completionPrice).Div(million)
	return promptCost.Add(completionCost)
}
