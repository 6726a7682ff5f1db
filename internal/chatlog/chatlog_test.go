package chatlog

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/set-night/aibridge/internal/domain"
)

func TestSaveLoadRoundtrip(t *testing.T) {
	store := NewStore(t.TempDir())

	log := store.New("demo")
	log.AddPart("hello", []string{"be brief"})
	require.NoError(t, log.Save())

	loaded, err := store.Load("demo")
	require.NoError(t, err)
	require.Equal(t, 1, loaded.NumParts())

	part, err := loaded.Part(0)
	require.NoError(t, err)
	assert.Equal(t, "hello", part.User)
	assert.Equal(t, []string{"be brief"}, part.System)
	assert.Empty(t, part.Assistant)
}

func TestOnDiskShape(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)

	log := store.New("demo")
	log.AddPart("hello", nil)
	require.NoError(t, log.SetAssistant(0, "hi there"))
	require.NoError(t, log.Save())

	raw, err := os.ReadFile(filepath.Join(dir, "chat", "topics", "demo.json"))
	require.NoError(t, err)

	var file struct {
		Topic struct {
			Parts []struct {
				User      string   `json:"user"`
				System    []string `json:"system"`
				Assistant string   `json:"assistant"`
			} `json:"parts"`
		} `json:"topic"`
	}
	require.NoError(t, json.Unmarshal(raw, &file))
	require.Len(t, file.Topic.Parts, 1)
	assert.Equal(t, "hello", file.Topic.Parts[0].User)
	assert.Equal(t, "hi there", file.Topic.Parts[0].Assistant)
}

func TestAssistantFilledExactlyOnce(t *testing.T) {
	store := NewStore(t.TempDir())

	log := store.New("demo")
	log.AddPart("u1", nil)
	require.NoError(t, log.Save())

	// Rewriting the part with its response must survive a reload.
	require.NoError(t, log.SetAssistant(0, "a1"))
	require.NoError(t, log.Save())

	loaded, err := store.Load("demo")
	require.NoError(t, err)
	part, err := loaded.Part(0)
	require.NoError(t, err)
	assert.Equal(t, "a1", part.Assistant)

	require.ErrorIs(t, loaded.SetAssistant(3, "x"), domain.ErrPartOutOfRange)
}

func TestTopicsAndRemove(t *testing.T) {
	store := NewStore(t.TempDir())

	topics, err := store.Topics()
	require.NoError(t, err)
	assert.Empty(t, topics)

	for _, name := range []string{"alpha", "beta"} {
		log := store.New(name)
		log.AddPart("hi", nil)
		require.NoError(t, log.Save())
	}

	topics, err = store.Topics()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"alpha", "beta"}, topics)

	require.NoError(t, store.Remove("alpha"))
	require.ErrorIs(t, store.Remove("alpha"), domain.ErrTopicNotFound)

	_, err = store.Load("alpha")
	require.ErrorIs(t, err, domain.ErrTopicNotFound)
}
