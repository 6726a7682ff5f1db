package ledger

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/set-night/aibridge/internal/domain"
)

func TestBeginEndSize(t *testing.T) {
	l := New()
	assert.Equal(t, 0, l.Size())

	id1 := l.Begin(domain.RequestChat, "first")
	id2 := l.Begin(domain.RequestGenerateImage, "second")
	require.NotEqual(t, id1, id2)
	assert.Equal(t, 2, l.Size())

	l.End(id1)
	assert.Equal(t, 1, l.Size())
	l.End(id2)
	assert.Equal(t, 0, l.Size())
}

func TestEndUnknownPanics(t *testing.T) {
	l := New()
	assert.Panics(t, func() {
		l.End(uuid.New())
	})
}

func TestEndTwicePanics(t *testing.T) {
	l := New()
	id := l.Begin(domain.RequestChat, "once")
	l.End(id)
	assert.Panics(t, func() {
		l.End(id)
	})
}

func TestSnapshotOrderAndStats(t *testing.T) {
	l := New()
	l.ResetStats()

	id1 := l.Begin(domain.RequestChat, "a")
	l.Begin(domain.RequestGenerateCode, "b")
	l.Begin(domain.RequestTranscribeAudio, "c")

	txs, consumed, total := l.Snapshot(2)
	require.Len(t, txs, 2)
	assert.Equal(t, "a", txs[0].Title)
	assert.Equal(t, "b", txs[1].Title)
	assert.Equal(t, 0, consumed)
	assert.Equal(t, 3, total)

	l.End(id1)
	txs, consumed, _ = l.Snapshot(-1)
	require.Len(t, txs, 2)
	assert.Equal(t, "b", txs[0].Title)
	assert.Equal(t, 1, consumed)
}
