package usage

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/set-night/aibridge/internal/domain"
)

func TestRecordAndCost(t *testing.T) {
	tr := NewTracker(30.0, 60.0)

	tr.Record(domain.RequestChat, Tokens{Prompt: 1_000_000, Completion: 500_000, Total: 1_500_000})
	tr.Record(domain.RequestChat, Tokens{Prompt: 1_000_000, Completion: 500_000, Total: 1_500_000})

	// 2 * (1M * $30/1M + 0.5M * $60/1M) = 2 * $60 = $120
	assert.True(t, tr.Cost(domain.RequestChat).Equal(decimal.NewFromInt(120)),
		"got %s", tr.Cost(domain.RequestChat))
	assert.Equal(t, 2, tr.Requests(domain.RequestChat))
}

func TestTotalCostAcrossKinds(t *testing.T) {
	tr := NewTracker(10.0, 20.0)

	tr.Record(domain.RequestChat, Tokens{Prompt: 100_000, Completion: 100_000})
	tr.Record(domain.RequestGenerateCode, Tokens{Prompt: 200_000, Completion: 0})

	// chat: 0.1*10 + 0.1*20 = $3; code: 0.2*10 = $2
	assert.True(t, tr.TotalCost().Equal(decimal.NewFromInt(5)), "got %s", tr.TotalCost())
}

func TestUnknownKindIsZero(t *testing.T) {
	tr := NewTracker(30.0, 60.0)
	assert.True(t, tr.Cost(domain.RequestGenerateImage).IsZero())
	assert.Equal(t, 0, tr.Requests(domain.RequestGenerateImage))
}
